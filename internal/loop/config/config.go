// Package config holds the fixed parameters of a terminal session: view geometry,
// frame pacing and the timeouts that end idle or orphaned sessions.
package config

import "time"

// The scene is projected into a ViewWidth x ViewHeight logical space, which the
// canvas scales to the terminal. Height is in half-cell pixels.
const (
	ViewWidth  = 120
	ViewHeight = 80
)

// Terminals larger than this get a centered, bordered render area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// MaxUsernameLength caps the nickname typed on the name screen.
const MaxUsernameLength = 16

// Session timeouts.
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
	ShutdownDisplay      = 10 * time.Second // Shutdown screen before auto-disconnect
)

// Frame pacing.
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server housekeeping.
const (
	ShutdownPollInterval = 200 * time.Millisecond
	EventBufferSize      = 16
)
