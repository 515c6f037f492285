package session

import "time"

// Scheduler runs f once after d has elapsed
type Scheduler func(d time.Duration, f func())

// AfterFunc schedules with time.AfterFunc
func AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
