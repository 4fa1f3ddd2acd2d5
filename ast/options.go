package ast

// Options controls [Lower] behavior.
type Options struct {
	// IncludeComments retains comment text (when the CST itself retained
	// Comment nodes) into [Document.Comments]. Default false.
	IncludeComments bool
}

// Option configures an [Options] value.
type Option func(*Options)

// WithIncludeComments toggles comment retention.
func WithIncludeComments(include bool) Option {
	return func(o *Options) { o.IncludeComments = include }
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
