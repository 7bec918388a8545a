package interpreter

import "time"

// gcTimer decides when the next collection is due. A zero interval makes
// every statement boundary a collection point; a negative one disables
// collection.
type gcTimer struct {
	interval time.Duration
	enabled  bool
	start    time.Time
	now      func() time.Time
}

func newGCTimer(seconds float64) *gcTimer {
	t := &gcTimer{
		interval: time.Duration(seconds * float64(time.Second)),
		enabled:  seconds >= 0,
		now:      time.Now,
	}
	t.Reset()
	return t
}

// Due reports whether the interval has elapsed since the last reset
func (t *gcTimer) Due() bool {
	return t.enabled && t.Elapsed() >= t.interval
}

// Elapsed returns the time since the last reset
func (t *gcTimer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Reset restarts the timer
func (t *gcTimer) Reset() {
	t.start = t.now()
}
