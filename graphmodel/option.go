package graphmodel

import "log/slog"

// GraphOption configures [New].
type GraphOption func(*graphConfig)

type graphConfig struct {
	strict          bool
	autoGenerateIDs bool
	allowSelfLoops  bool
	maxNodes        int
	maxEdges        int
	defaultMetadata map[string]any
	logger          *slog.Logger
}

// WithStrict records a strict flag in the graph's configuration. No graph
// operation reads it: graph-level operations report errors only, never
// warnings, so setting it changes no result.
func WithStrict(strict bool) GraphOption {
	return func(cfg *graphConfig) { cfg.strict = strict }
}

// WithAutoGenerateIDs causes [Graph.AddNode] to generate an ID for a
// partial node whose ID is empty, rather than reporting an error. IDs
// generated this way are not the LFF node ID scheme (that is §4.5's
// concern); they are only guaranteed unique within this Graph.
func WithAutoGenerateIDs(auto bool) GraphOption {
	return func(cfg *graphConfig) { cfg.autoGenerateIDs = auto }
}

// WithAllowSelfLoops permits an edge whose From equals its To. Disallowed
// by default, matching the graph-level invariant in §3.4.
func WithAllowSelfLoops(allow bool) GraphOption {
	return func(cfg *graphConfig) { cfg.allowSelfLoops = allow }
}

// WithMaxNodes caps the number of nodes [Graph.AddNode] will accept,
// reporting MAX_NODES_EXCEEDED once reached. Zero (the default) means
// unlimited.
func WithMaxNodes(max int) GraphOption {
	return func(cfg *graphConfig) { cfg.maxNodes = max }
}

// WithMaxEdges caps the number of edges [Graph.AddEdge] will accept,
// reporting MAX_EDGES_EXCEEDED once reached. Zero (the default) means
// unlimited.
func WithMaxEdges(max int) GraphOption {
	return func(cfg *graphConfig) { cfg.maxEdges = max }
}

// WithDefaultMetadata seeds the graph's metadata map at construction. d is
// cloned; later mutation of d does not affect the graph.
func WithDefaultMetadata(d map[string]any) GraphOption {
	return func(cfg *graphConfig) { cfg.defaultMetadata = d }
}

// WithLogger enables debug logging for graph operations (node/edge
// mutation, layer moves). Pass nil to disable logging (the default).
func WithLogger(logger *slog.Logger) GraphOption {
	return func(cfg *graphConfig) { cfg.logger = logger }
}
