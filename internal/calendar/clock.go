package calendar

import "time"

// Clock provides the current time.
// Code that needs "today" takes a Clock instead of calling time.Now() so tests can pin the day.
type Clock interface {
	Now() time.Time
}

// RealClock returns the local system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// ClockFunc wraps a function as a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
