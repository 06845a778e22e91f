// internal/sched/clock.go

package sched

// SimClock is the simulated time source of a run. It only moves forward.
type SimClock struct {
	now int
}

// Now returns the current simulated tick.
func (c *SimClock) Now() int { return c.now }

// Advance moves the clock forward by d ticks.
func (c *SimClock) Advance(d int) {
	if d > 0 {
		c.now += d
	}
}

// AdvanceTo jumps the clock to t if t lies in the future and reports
// whether the clock moved (i.e. the CPU sat idle).
func (c *SimClock) AdvanceTo(t int) bool {
	if t <= c.now {
		return false
	}
	c.now = t
	return true
}

// Reset sets the clock back to zero.
func (c *SimClock) Reset() { c.now = 0 }
