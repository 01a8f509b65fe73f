package services

import "time"

// stamp returns the current instant as persisted: UTC, millisecond precision,
// which both store backends keep without loss.
func stamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}

// nextUpdate returns a stamp strictly after prev.
func nextUpdate(now func() time.Time, prev time.Time) time.Time {
	t := stamp(now)
	if !t.After(prev) {
		t = prev.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return t
}
