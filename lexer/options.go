package lexer

// Options controls [Lex] behavior.
type Options struct {
	// IncludeComments keeps Comment tokens in the output stream. Default false.
	IncludeComments bool

	// CollectMetrics populates [Result.Metrics] with timing and throughput data.
	// Default false, since the timing itself carries a small but nonzero cost.
	CollectMetrics bool

	// EnhancedErrors enables the pattern-error suggestion table, attaching a
	// [diag.Issue] hint for recognized erroneous prefixes (`@0`, `&-`, `<-`).
	EnhancedErrors bool
}

// Option configures an [Options] value.
type Option func(*Options)

// WithIncludeComments toggles comment retention.
func WithIncludeComments(include bool) Option {
	return func(o *Options) { o.IncludeComments = include }
}

// WithCollectMetrics toggles metrics collection.
func WithCollectMetrics(collect bool) Option {
	return func(o *Options) { o.CollectMetrics = collect }
}

// WithEnhancedErrors toggles pattern-error suggestion hints.
func WithEnhancedErrors(enabled bool) Option {
	return func(o *Options) { o.EnhancedErrors = enabled }
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// Metrics reports lexer performance characteristics for a single [Lex] call.
// Populated only when [Options.CollectMetrics] is true; otherwise zero.
type Metrics struct {
	LexTimeMS             float64
	TokenCount            int
	ThroughputCharsPerSec float64
}

// SourceInfo describes the tokenized source text.
type SourceInfo struct {
	Length    int
	LineCount int
	Encoding  string
}
