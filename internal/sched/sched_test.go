package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAfterFunc_FiresOnceWhenDue(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	calls := 0
	timer := s.AfterFunc(time.Second, func() { calls++ })
	require.True(t, timer.Active())

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, s.RunDue())
	assert.Equal(t, 0, calls)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.RunDue())
	assert.Equal(t, 1, calls)
	assert.False(t, timer.Active())

	clock.Advance(time.Hour)
	s.RunDue()
	assert.Equal(t, 1, calls)
}

func TestEvery_RepeatsAndCatchesUp(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	calls := 0
	s.Every(time.Second, func() { calls++ })

	clock.Advance(time.Second)
	s.RunDue()
	assert.Equal(t, 1, calls)

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3, s.RunDue())
	assert.Equal(t, 4, calls)
	assert.Equal(t, 1, s.Len())
}

func TestStop_CancelsPendingTimer(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	calls := 0
	timer := s.Every(time.Second, func() { calls++ })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, s.Len())

	clock.Advance(5 * time.Second)
	s.RunDue()
	assert.Equal(t, 0, calls)
}

func TestStop_FromOwnCallback(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	calls := 0
	var timer *Timer
	timer = s.Every(time.Second, func() {
		calls++
		if calls == 2 {
			timer.Stop()
		}
	})

	clock.Advance(10 * time.Second)
	s.RunDue()
	assert.Equal(t, 2, calls)
	assert.False(t, timer.Active())
}

func TestStop_NilTimer(t *testing.T) {
	var timer *Timer
	assert.False(t, timer.Stop())
	assert.False(t, timer.Active())
}

func TestRunDue_OrdersByDueThenScheduling(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	var order []string
	s.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	s.AfterFunc(time.Second, func() { order = append(order, "first") })
	s.AfterFunc(time.Second, func() { order = append(order, "second") })

	clock.Advance(2 * time.Second)
	s.RunDue()
	assert.Equal(t, []string{"first", "second", "late"}, order)
}

func TestRunDue_FiresTimersScheduledByCallbacks(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	var order []string
	s.AfterFunc(time.Second, func() {
		order = append(order, "outer")
		s.AfterFunc(0, func() { order = append(order, "inner") })
	})

	clock.Advance(time.Second)
	assert.Equal(t, 2, s.RunDue())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestEvery_ClampsNonPositivePeriod(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	calls := 0
	s.Every(0, func() { calls++ })
	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, 5, s.RunDue())
	assert.Equal(t, 5, calls)
}

func TestStopAll(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)

	a := s.AfterFunc(time.Second, func() {})
	b := s.Every(time.Second, func() {})
	s.StopAll()

	assert.Equal(t, 0, s.Len())
	assert.False(t, a.Active())
	assert.False(t, b.Active())
}

func TestNew_DefaultsToRealClock(t *testing.T) {
	s := New(nil)
	assert.WithinDuration(t, time.Now(), s.Now(), time.Second)
}
