package validate

// Options controls [Validate] behavior.
type Options struct {
	// StrictMode promotes warnings to errors at the boundary of the
	// validator's return value. Individual rules never change severity
	// internally; promotion happens once, after all three phases run.
	StrictMode bool
}

// Option configures an [Options] value.
type Option func(*Options)

// WithStrictMode toggles strict mode.
func WithStrictMode(strict bool) Option {
	return func(o *Options) { o.StrictMode = strict }
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
