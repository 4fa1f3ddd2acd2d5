package lff

import (
	"context"

	"github.com/layerflow-org/lff/ast"
	"github.com/layerflow-org/lff/cst"
	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/graphmodel"
	"github.com/layerflow-org/lff/internal/trace"
	"github.com/layerflow-org/lff/location"
	"github.com/layerflow-org/lff/lower"
	"github.com/layerflow-org/lff/serialize"
	"github.com/layerflow-org/lff/validate"
)

// ParseToAST parses src (identified by sourceID) through the lexer, CST
// builder, and AST lowering stages, returning the resulting AST document
// and a merged diagnostic result. Never fails outright: a document with
// only fatal/error diagnostics is still returned (likely sparse or
// empty), so callers should check the diagnostic result before trusting
// the document's shape.
func ParseToAST(ctx context.Context, sourceID location.SourceID, src string, opts ...Option) (ast.Document, diag.Result) {
	cfg := resolveOptions(opts)
	op := trace.Begin(ctx, cfg.Logger, "lff.ParseToAST")
	defer op.End(nil)

	builder := cst.NewBuilder(cfg.CST...)
	cstResult := builder.Parse(sourceID, src)
	doc, astDiag := ast.Lower(cstResult.CST, cstResult.SourceInfo, cfg.AST...)

	collector := diag.NewCollectorUnlimited()
	collector.Merge(cstResult.Diagnostics)
	collector.Merge(astDiag)
	return doc, collector.Result()
}

// ValidateResult is the outcome of [Validate]: the combined parse and
// semantic-validation diagnostics for a source document.
type ValidateResult struct {
	Valid    bool
	Errors   []diag.Issue
	Warnings []diag.Issue
}

// Validate parses src and runs the semantic validator over the result,
// merging parse-stage diagnostics (lexical/syntax errors, the
// W_INLINE_VALUE warning, etc.) with the validator's own findings.
func Validate(ctx context.Context, sourceID location.SourceID, src string, opts ...Option) ValidateResult {
	cfg := resolveOptions(opts)
	op := trace.Begin(ctx, cfg.Logger, "lff.Validate")
	defer op.End(nil)

	doc, parseDiag := ParseToAST(ctx, sourceID, src, opts...)
	vr := validate.Validate(doc, cfg.Validate...)

	result := ValidateResult{
		Valid: vr.Valid && !parseDiag.HasErrors() && !parseDiag.HasFatal(),
	}
	result.Errors = append(result.Errors, parseDiag.ErrorsSlice()...)
	result.Errors = append(result.Errors, vr.Errors...)
	result.Warnings = append(result.Warnings, parseDiag.WarningsSlice()...)
	result.Warnings = append(result.Warnings, vr.Warnings...)
	return result
}

// GraphResult is the outcome of [ParseToGraph]: the lowered graph (nil
// on any error across parse, validation, or lowering) plus every
// diagnostic collected along the way.
type GraphResult struct {
	Graph    *graphmodel.Graph
	Errors   []diag.Issue
	Warnings []diag.Issue
	Metrics  lower.Metrics
}

// ParseToGraph runs the complete pipeline — parse, validate, lower — and
// returns the resulting graph. The graph is nil if parsing, validation,
// or lowering produced any error; Errors/Warnings always report every
// diagnostic collected across all three stages.
func ParseToGraph(ctx context.Context, sourceID location.SourceID, src string, opts ...Option) GraphResult {
	cfg := resolveOptions(opts)
	op := trace.Begin(ctx, cfg.Logger, "lff.ParseToGraph")
	defer op.End(nil)

	doc, parseDiag := ParseToAST(ctx, sourceID, src, opts...)
	result := GraphResult{
		Errors:   append([]diag.Issue{}, parseDiag.ErrorsSlice()...),
		Warnings: append([]diag.Issue{}, parseDiag.WarningsSlice()...),
	}
	if parseDiag.HasFatal() || parseDiag.HasErrors() {
		return result
	}

	vr := validate.Validate(doc, cfg.Validate...)
	result.Errors = append(result.Errors, vr.Errors...)
	result.Warnings = append(result.Warnings, vr.Warnings...)
	if !vr.Valid {
		return result
	}

	lowerResult := lower.Lower(doc, cfg.Lower...)
	result.Graph = lowerResult.Graph
	result.Errors = append(result.Errors, lowerResult.Errors...)
	result.Warnings = append(result.Warnings, lowerResult.Warnings...)
	result.Metrics = lowerResult.Metrics
	return result
}

// Serialize renders graph to LFF source text under opts. A thin
// passthrough to [serialize.Serialize], kept here so callers depending
// only on this package's entry points never need a direct import of
// serialize for the common case.
func Serialize(g *graphmodel.Graph, opts serialize.Options) string {
	return serialize.Serialize(g, opts)
}
