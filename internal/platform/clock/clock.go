package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local wall-clock time. The reminder schedule and
// task dates are compared in the user's local zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
