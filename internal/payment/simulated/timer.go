package simulated

import "time"

// newTimer fires immediately for non-positive delays so tests can run
// with a zero-valued config.
func newTimer(d time.Duration) *time.Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return time.NewTimer(d)
}
