package json

// Adapter reads and writes [graphmodel.Graph] JSON snapshots.
//
// Thread Safety: Adapter is safe for concurrent Read/WriteGraph calls
// after construction. No shared mutable state exists; all state flows
// through parameters.
type Adapter struct {
	strictJSON bool
}

// Option configures Adapter behavior.
type Option func(*Adapter)

// NewAdapter creates a new JSON snapshot adapter with the given options.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		strictJSON: false, // use jsonc preprocessing by default
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithStrictJSON configures whether to use strict JSON parsing (no
// comments or trailing commas).
//
// When strict is true:
//   - Parses input directly with encoding/json (via [graphmodel.FromJSON])
//   - No jsonc preprocessing at runtime
//   - Comments and trailing commas are parse errors
//
// When strict is false (default):
//   - Preprocesses input with tidwall/jsonc
//   - Strips comments and trailing commas before parsing
func WithStrictJSON(strict bool) Option {
	return func(a *Adapter) {
		a.strictJSON = strict
	}
}
