package services

import "time"

// startOfDay truncates to midnight in t's location. Day boundaries are
// server-local throughout.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// minutesBetween returns whole minutes from a to b, truncated toward zero.
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}
