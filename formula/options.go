package formula

type config struct {
	label string
}

// Option configures a Cell, Cache, Result or Reference.
type Option func(*config)

// WithLabel names the value in panics, logs and tracking frame labels.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
