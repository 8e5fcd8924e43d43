package booking

import "time"

// Clock supplies the current time; injected so the past-check-in rule is
// testable against a pinned day.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the wall clock
func NewSystemClock() Clock { return systemClock{} }
