package service

import "time"

// Clock supplies the current timestamp. Contest timing depends on wall
// clock time, so services take a Clock instead of reading time.Now
// directly. Tests swap in a fixed clock.
type Clock func() time.Time

func RealClock() time.Time {
	return time.Now().UTC()
}
