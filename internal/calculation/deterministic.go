package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism). The
// engine reads the clock only to seed already-amortized balances from
// historical loan start dates; a projection never consults it mid-run.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }
