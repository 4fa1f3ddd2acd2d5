package lff

import (
	"fmt"
	"log/slog"

	"github.com/layerflow-org/lff/ast"
	"github.com/layerflow-org/lff/cst"
	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/lower"
	"github.com/layerflow-org/lff/validate"
)

// Options configures the full pipeline exposed by this package's entry
// points, assembled from the per-stage option structs.
type Options struct {
	CST      []cst.Option
	AST      []ast.Option
	Validate []validate.Option
	Lower    []lower.Option

	// Logger, when set, is forwarded to internal/trace spans around each
	// stage. Nil means no-op tracing.
	Logger *slog.Logger
}

// Option configures an [Options] value.
type Option func(*Options)

// WithCSTOptions appends CST builder options.
func WithCSTOptions(opts ...cst.Option) Option {
	return func(o *Options) { o.CST = append(o.CST, opts...) }
}

// WithASTOptions appends AST lowering options.
func WithASTOptions(opts ...ast.Option) Option {
	return func(o *Options) { o.AST = append(o.AST, opts...) }
}

// WithValidateOptions appends semantic validator options.
func WithValidateOptions(opts ...validate.Option) Option {
	return func(o *Options) { o.Validate = append(o.Validate, opts...) }
}

// WithLowerOptions appends AST-to-graph lowering options.
func WithLowerOptions(opts ...lower.Option) Option {
	return func(o *Options) { o.Lower = append(o.Lower, opts...) }
}

// WithLogger attaches a logger for internal/trace spans.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// knownOptionKeys enumerates the map keys recognized by
// [OptionsFromMap], for tooling (CLI flags, LSP initialization options)
// that receives configuration as a loosely-typed map rather than typed
// Go options.
var knownOptionKeys = map[string]bool{
	"strict":              true,
	"preserve_metadata":   true,
	"generate_unique_ids": true,
	"include_comments":    true,
	"cache_capacity":      true,
}

// OptionsFromMap translates a loosely-typed option map (as arrives from
// CLI flags or an LSP client's initializationOptions) into typed
// [Option] values. Unrecognized keys are ignored and reported as a
// [diag.W_UNKNOWN_OPTION] warning rather than rejected outright, per
// spec.md §6.3.
func OptionsFromMap(m map[string]any) ([]Option, []diag.Issue) {
	var opts []Option
	var issues []diag.Issue

	for key, raw := range m {
		if !knownOptionKeys[key] {
			issues = append(issues, diag.NewIssue(diag.Warning, diag.W_UNKNOWN_OPTION,
				fmt.Sprintf("unrecognized option %q ignored", key)).Build())
			continue
		}
		switch key {
		case "strict":
			if b, ok := raw.(bool); ok {
				opts = append(opts, WithValidateOptions(validate.WithStrictMode(b)))
				opts = append(opts, WithLowerOptions(lower.WithStrictMode(b)))
			}
		case "preserve_metadata":
			if b, ok := raw.(bool); ok {
				opts = append(opts, WithLowerOptions(lower.WithPreserveLFFMetadata(b)))
			}
		case "generate_unique_ids":
			if b, ok := raw.(bool); ok {
				opts = append(opts, WithLowerOptions(lower.WithGenerateUniqueIDs(b)))
			}
		case "include_comments":
			if b, ok := raw.(bool); ok {
				opts = append(opts, WithCSTOptions(cst.WithIncludeComments(b)))
				opts = append(opts, WithASTOptions(ast.WithIncludeComments(b)))
			}
		case "cache_capacity":
			switch v := raw.(type) {
			case int:
				opts = append(opts, WithCSTOptions(cst.WithCacheCapacity(v)))
			case float64:
				opts = append(opts, WithCSTOptions(cst.WithCacheCapacity(int(v))))
			}
		}
	}
	return opts, issues
}
