// Package logging builds the structured logger shared by the binaries.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix tags every line written by the game processes.
const Prefix = "dodge"

// New returns a timestamped logger writing to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// ParseLevel maps debug, info, warn and error (any case) to a log level.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
