// Package sched runs wall-clock timers on the caller's goroutine.
//
// A Scheduler never fires callbacks on its own: the owning loop calls RunDue once per
// frame, so timer callbacks and frame updates mutate shared state from a single goroutine.
package sched

import (
	"container/heap"
	"time"
)

// minPeriod bounds repeating timers so a zero period cannot spin RunDue forever.
const minPeriod = time.Millisecond

// Timer is a pending one-shot or repeating callback.
type Timer struct {
	due    time.Time
	period time.Duration // 0 for one-shot
	fn     func()
	seq    uint64
	index  int // heap index, -1 when not queued
	s      *Scheduler
}

// Stop cancels the timer. It reports whether the timer was still pending.
// Stopping a nil or already stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.s.queue, t.index)
	return true
}

// Active reports whether the timer is still pending.
func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

// Scheduler is a queue of timers ordered by due time.
// It is not safe for concurrent use.
type Scheduler struct {
	clock Clock
	queue timerQueue
	seq   uint64
}

// New creates a scheduler reading time from clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc schedules fn to run once, d after now.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	return s.push(d, 0, fn)
}

// Every schedules fn to run every d, first firing d after now.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d < minPeriod {
		d = minPeriod
	}
	return s.push(d, d, fn)
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for len(s.queue) > 0 {
		heap.Pop(&s.queue)
	}
}

// RunDue fires every timer due at or before the current time, in due order.
// Timers scheduled by a callback fire in the same call if they are already due.
// Repeating timers that fell behind fire once per missed period.
// Returns the number of callbacks run.
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	fired := 0
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.due.After(now) {
			break
		}
		if t.period > 0 {
			t.due = t.due.Add(t.period)
			s.seq++
			t.seq = s.seq
			heap.Fix(&s.queue, 0)
		} else {
			heap.Pop(&s.queue)
		}
		t.fn()
		fired++
	}
	return fired
}

func (s *Scheduler) push(d, period time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{
		due:    s.clock.Now().Add(d),
		period: period,
		fn:     fn,
		seq:    s.seq,
		index:  -1,
		s:      s,
	}
	heap.Push(&s.queue, t)
	return t
}

// timerQueue implements heap.Interface; ties on due time fire in scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
