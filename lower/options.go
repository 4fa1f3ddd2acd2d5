package lower

// Options configures [Lower] (§4.5's to_graph options).
type Options struct {
	// DefaultNodeType is used for a node with no declared types.
	DefaultNodeType string

	// DefaultEdgeType is used for an edge with a simple ("->") arrow,
	// which carries no semantic name of its own.
	DefaultEdgeType string

	// PreserveLFFMetadata adds an "lff" sub-map to each node's metadata
	// recording original_name, anchor, additional_types, level_spec, and
	// location — everything the serializer needs to reconstruct LFF
	// source from the graph.
	PreserveLFFMetadata bool

	// GenerateUniqueIDs selects the ID-generation strategy: true assigns
	// globally-unique synthetic IDs; false derives an ID by sanitizing
	// the node's name, reporting DUPLICATE_NODE_ID on collision.
	GenerateUniqueIDs bool

	// StrictMode promotes warnings to errors before the graph is
	// returned.
	StrictMode bool
}

// Option configures a single field of [Options].
type Option func(*Options)

// WithDefaultNodeType overrides the fallback node type.
func WithDefaultNodeType(t string) Option { return func(o *Options) { o.DefaultNodeType = t } }

// WithDefaultEdgeType overrides the fallback edge type for simple arrows.
func WithDefaultEdgeType(t string) Option { return func(o *Options) { o.DefaultEdgeType = t } }

// WithPreserveLFFMetadata toggles the "lff" metadata sub-map.
func WithPreserveLFFMetadata(preserve bool) Option {
	return func(o *Options) { o.PreserveLFFMetadata = preserve }
}

// WithGenerateUniqueIDs toggles synthetic vs. name-derived node IDs.
func WithGenerateUniqueIDs(generate bool) Option {
	return func(o *Options) { o.GenerateUniqueIDs = generate }
}

// WithStrictMode toggles warning-to-error promotion.
func WithStrictMode(strict bool) Option { return func(o *Options) { o.StrictMode = strict } }

func resolveOptions(opts []Option) Options {
	o := Options{
		DefaultNodeType:     "component",
		DefaultEdgeType:     "connection",
		PreserveLFFMetadata: true,
		GenerateUniqueIDs:   true,
		StrictMode:          false,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
