package clock

import "time"

// Clock provides wall-clock time so match timers can be driven in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns whole seconds elapsed since t according to c, never negative
func Since(c Clock, t time.Time) int {
	elapsed := c.Now().Sub(t)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Second)
}
