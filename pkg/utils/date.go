package utils

import "time"

// NowUTC truncates to milliseconds, the precision BSON datetimes keep, so values
// read back from the store compare equal to the ones written.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
