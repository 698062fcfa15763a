package forces

// Clock is the simulation time owned by the driver and passed to anything
// that needs absolute time.
type Clock struct {
	Frame   uint64
	Elapsed float64
}

// Advance moves the clock forward by one frame of dt seconds.
func (c *Clock) Advance(dt float64) {
	c.Frame++
	c.Elapsed += dt
}

func (c *Clock) Reset() { *c = Clock{} }
