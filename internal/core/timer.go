package core

// StepClock converts variable frame deltas into fixed-size simulation
// substeps. The physics space and the terrain rules both assume a constant
// dt, so the accumulator absorbs render-rate jitter.
type StepClock struct {
	step        float64
	accumulator float64
	maxSubsteps int
}

// NewStepClock constructs a clock producing substeps of the given duration in
// seconds. maxSubsteps caps the work done after a long stall.
func NewStepClock(step float64, maxSubsteps int) *StepClock {
	if step <= 0 {
		step = 1.0 / 60.0
	}
	if maxSubsteps <= 0 {
		maxSubsteps = 4
	}
	return &StepClock{step: step, maxSubsteps: maxSubsteps}
}

// Step returns the fixed substep duration in seconds.
func (c *StepClock) Step() float64 { return c.step }

// Advance accumulates dt and returns how many fixed substeps to run now.
func (c *StepClock) Advance(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	c.accumulator += dt
	n := 0
	for c.accumulator >= c.step && n < c.maxSubsteps {
		c.accumulator -= c.step
		n++
	}
	if n == c.maxSubsteps {
		// Drop the backlog instead of spiraling after a hitch.
		c.accumulator = 0
	}
	return n
}
