// Package clock provides the time sources used by the services.
package clock

import (
	"time"

	"journal/internal/domain/service"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the wall time in UTC.
func NewSystemClock() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a clock frozen at one instant, for tests and reproducible runs.
type Fixed struct {
	At time.Time
}

func (c *Fixed) Now() time.Time {
	return c.At.UTC()
}

// Advance moves the clock forward by d.
func (c *Fixed) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}
