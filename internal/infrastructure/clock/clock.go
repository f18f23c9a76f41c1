// Package clock provides the wall-clock time source for income accrual.
package clock

import "time"

// SystemClock reads the current Unix time. Epoch-day arithmetic downstream
// only ever sees whole seconds.
type SystemClock struct{}

// NowSeconds returns the current Unix timestamp in seconds.
func (SystemClock) NowSeconds() int64 {
	return time.Now().Unix()
}
