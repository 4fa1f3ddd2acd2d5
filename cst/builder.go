package cst

import (
	"time"

	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/lexer"
	"github.com/layerflow-org/lff/location"
)

// Builder parses LayerFlow Format source into concrete syntax trees. A
// Builder owns its parse cache and grammar registry; neither is shared
// across Builder instances, matching the per-instance resource model.
type Builder struct {
	cache           *parseCache
	registry        *GrammarRegistry
	metrics         bool
	includeComments bool
}

// NewBuilder constructs a Builder. A supplied [WithGrammarRegistry] is
// consulted now, at construction time, and never again: there is no
// mechanism for registering extension rules against an already-built
// Builder.
func NewBuilder(opts ...Option) *Builder {
	o := resolveOptions(opts)
	registry := o.Registry
	if registry == nil {
		registry = NewGrammarRegistry()
	}
	return &Builder{
		cache:           newParseCache(o.CacheCapacity, o.CacheTTL),
		registry:        registry,
		metrics:         o.CollectMetrics,
		includeComments: o.IncludeComments,
	}
}

// Registry returns the grammar registry consulted at construction.
func (b *Builder) Registry() *GrammarRegistry {
	return b.registry
}

// Metrics reports timing and cache-hit information for a single
// [Builder.Parse] call. Populated only when [Options.CollectMetrics] is
// true via [NewBuilder]; otherwise zero.
type Metrics struct {
	LexTimeMS   float64
	ParseTimeMS float64
	TotalTimeMS float64
	FromCache   bool
	TokenCount  int
}

// Result is the output of [Builder.Parse].
type Result struct {
	CST         *Node
	Diagnostics diag.Result
	Metrics     Metrics
	SourceInfo  lexer.SourceInfo
}

// Parse builds a concrete syntax tree for src, identified by sourceID.
//
// Parse never aborts: malformed lines are recorded as [diag.SYNTAX_ERROR]
// diagnostics and recovered from locally, so Result.CST is never nil. A
// cache hit (keyed on the content hash of src) skips both lexing and
// parsing entirely; pass [WithBypassCache] to force a fresh parse while
// still refreshing the cache entry afterward.
func (b *Builder) Parse(sourceID location.SourceID, src string, opts ...ParseOption) Result {
	o := resolveParseOptions(opts)

	var totalStart time.Time
	if b.metrics {
		totalStart = time.Now()
	}

	key := contentHash(src)
	if !o.BypassCache {
		if entry, ok := b.cache.get(key); ok {
			result := Result{CST: entry.root, Diagnostics: entry.diagnostics}
			if b.metrics {
				result.Metrics = Metrics{
					FromCache:   true,
					TokenCount:  entry.tokenCount,
					TotalTimeMS: millisSince(totalStart),
				}
			}
			return result
		}
	}

	var lexStart time.Time
	if b.metrics {
		lexStart = time.Now()
	}
	lexResult := lexer.Lex(sourceID, src, lexer.WithIncludeComments(b.includeComments))
	var lexTimeMS float64
	if b.metrics {
		lexTimeMS = millisSince(lexStart)
	}

	collector := diag.NewCollectorUnlimited()
	collector.Merge(lexResult.Diagnostics)

	var parseStart time.Time
	if b.metrics {
		parseStart = time.Now()
	}

	var root *Node
	if len(lexResult.Tokens) == 0 {
		collector.Collect(diag.NewIssue(diag.Fatal, diag.LEXER_NOT_INITIALIZED,
			"CST builder invoked without a token stream").Build())
		root = &Node{Kind: KindDocument}
	} else {
		p := newParser(sourceID, lexResult.Tokens, collector)
		root = p.parseDocument()
	}

	var parseTimeMS float64
	if b.metrics {
		parseTimeMS = millisSince(parseStart)
	}

	diagResult := collector.Result()
	b.cache.put(key, cacheEntry{root: root, diagnostics: diagResult, tokenCount: len(lexResult.Tokens)})

	result := Result{
		CST:         root,
		Diagnostics: diagResult,
		SourceInfo:  lexResult.SourceInfo,
	}
	if b.metrics {
		result.Metrics = Metrics{
			LexTimeMS:   lexTimeMS,
			ParseTimeMS: parseTimeMS,
			TotalTimeMS: millisSince(totalStart),
			TokenCount:  len(lexResult.Tokens),
		}
	}
	return result
}

func millisSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
