package util

import "time"

// Timer measures how long a processing stage takes.
type Timer struct {
	start time.Time
}

// StartTimer begins measuring from the current time.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the duration since the timer started.
func (t Timer) Elapsed() time.Duration {
	if t.start.IsZero() {
		return 0
	}
	return time.Since(t.start)
}

// ElapsedMs returns the elapsed milliseconds since the timer started.
func (t Timer) ElapsedMs() int64 {
	return t.Elapsed().Milliseconds()
}
