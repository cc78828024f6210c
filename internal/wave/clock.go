package wave

import "time"

// Clock converts host frame timestamps into elapsed seconds and per-frame deltas.
type Clock struct {
	then    float64
	started bool
}

// Reset makes ts the reference for the next delta.
func (c *Clock) Reset(ts time.Duration) {
	c.then = ts.Seconds()
	c.started = true
}

// Advance records ts and returns the current time in seconds and the delta since the previous call.
// The first call after construction reports a zero delta.
func (c *Clock) Advance(ts time.Duration) (now, delta float64) {
	now = ts.Seconds()
	if !c.started {
		c.Reset(ts)
	}
	delta = now - c.then
	c.then = now
	return now, delta
}
