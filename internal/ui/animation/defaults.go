package animation

// DefaultConfig returns the stock breathing-circle bounds.
func DefaultConfig() Config {
	return Config{
		MinScale: 0.35,
		MaxScale: 0.92,
	}
}
