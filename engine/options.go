package engine

// Option configures a State at creation time.
type Option func(*config)

type config struct {
	maxDepth   int
	stackLimit int
}

func defaultConfig() config {
	return config{
		maxDepth:   200,
		stackLimit: 4096,
	}
}

// WithMaxDepth sets the maximum nested call depth. Exceeding it raises a
// memory error through the protected-call primitive.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithStackLimit caps the evaluation stack height during script execution.
func WithStackLimit(n int) Option {
	return func(c *config) {
		c.stackLimit = n
	}
}
