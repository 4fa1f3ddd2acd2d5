package cst

import "time"

// Options controls [Builder] construction and [Builder.Parse] behavior.
type Options struct {
	// CacheCapacity bounds the number of cached parses. Zero selects the
	// default of 100.
	CacheCapacity int

	// CacheTTL bounds how long a cached parse stays valid. Zero selects the
	// default of five minutes.
	CacheTTL time.Duration

	// Registry holds named grammar extensions consulted at construction
	// time. Nil selects an empty registry.
	Registry *GrammarRegistry

	// CollectMetrics populates [Result.Metrics] with timing data.
	CollectMetrics bool

	// IncludeComments retains Comment tokens from the lexer (and therefore
	// Comment nodes in the parsed tree) instead of discarding them.
	IncludeComments bool
}

// Option configures an [Options] value.
type Option func(*Options)

// WithCacheCapacity overrides the parse cache's entry capacity.
func WithCacheCapacity(capacity int) Option {
	return func(o *Options) { o.CacheCapacity = capacity }
}

// WithCacheTTL overrides the parse cache's entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *Options) { o.CacheTTL = ttl }
}

// WithGrammarRegistry supplies a pre-populated extension registry.
func WithGrammarRegistry(registry *GrammarRegistry) Option {
	return func(o *Options) { o.Registry = registry }
}

// WithCollectMetrics toggles metrics collection.
func WithCollectMetrics(collect bool) Option {
	return func(o *Options) { o.CollectMetrics = collect }
}

// WithIncludeComments toggles comment retention in both the token stream
// and the resulting concrete syntax tree.
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

// ParseOptions controls a single [Builder.Parse] call.
type ParseOptions struct {
	// BypassCache skips the cache lookup for this call but still stores the
	// freshly computed result afterward.
	BypassCache bool
}

// ParseOption configures a [ParseOptions] value.
type ParseOption func(*ParseOptions)

// WithBypassCache skips the cache lookup (but not the cache write) for a
// single [Builder.Parse] call.
func WithBypassCache(bypass bool) ParseOption {
	return func(o *ParseOptions) { o.BypassCache = bypass }
}

func resolveParseOptions(opts []ParseOption) ParseOptions {
	var o ParseOptions
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
