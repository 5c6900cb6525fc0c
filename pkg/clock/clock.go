// Package clock lets the collector pace requests against a replaceable time source
package clock

import "time"

// SystemClock reads the wall clock. Tests substitute their own implementation.
type SystemClock struct{}

// After fires once d has passed; the pacing pause between lookups waits on it
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (SystemClock) Now() time.Time {
	return time.Now()
}
