// Package lff provides a parser, validator, and serializer for the
// LayerFlow Format (LFF): a human-authored, indentation-sensitive DSL for
// describing layered architecture graphs.
//
// LFF source is tokenized, parsed into a concrete syntax tree, lowered
// into an AST, semantically validated, and lowered again into a graph
// model suitable for traversal, querying, and re-serialization back to
// LFF source.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - location: Source positions, spans, and canonical paths
//	  - diag: Structured diagnostics with stable error codes
//	  - immutable: Read-only wrappers for safe data sharing
//
//	Pipeline tier (each depends only on tiers above it):
//	  - lexer: Tokenizes LFF source
//	  - cst: Builds a concrete syntax tree from tokens
//	  - ast: Lowers the CST into an LFF AST
//	  - validate: Semantic validation of the AST
//	  - lower: Lowers a validated AST into a graph
//	  - serialize: Renders a graph back to LFF source text
//	  - graphmodel: The in-memory graph collaborator lower/serialize share
//
//	Adapter tier:
//	  - adapter/json: JSONC-based graph snapshot I/O
//
// # Entry Points
//
// Parsing to an AST:
//
//	import "github.com/layerflow-org/lff"
//
//	doc, result := lff.ParseToAST(ctx, sourceID, src)
//	if result.HasErrors() {
//	    // lexical or syntax errors
//	}
//
// Validating:
//
//	result := lff.Validate(ctx, sourceID, src)
//	if !result.Valid {
//	    // result.Errors / result.Warnings
//	}
//
// Parsing all the way to a graph:
//
//	result := lff.ParseToGraph(ctx, sourceID, src)
//	if result.Graph == nil {
//	    // result.Errors explains why
//	}
//
// Serializing a graph back to source:
//
//	text := lff.Serialize(result.Graph, serialize.Pretty())
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/layerflow-org/lff/diag]: Structured diagnostics
//   - [github.com/layerflow-org/lff/location]: Source location tracking
//   - [github.com/layerflow-org/lff/immutable]: Read-only data wrappers
//   - [github.com/layerflow-org/lff/lexer]: Tokenizer
//   - [github.com/layerflow-org/lff/cst]: Concrete syntax tree builder
//   - [github.com/layerflow-org/lff/ast]: AST lowering
//   - [github.com/layerflow-org/lff/validate]: Semantic validator
//   - [github.com/layerflow-org/lff/lower]: AST-to-graph lowering
//   - [github.com/layerflow-org/lff/serialize]: Graph-to-source serializer
//   - [github.com/layerflow-org/lff/graphmodel]: Graph collaborator
//   - [github.com/layerflow-org/lff/adapter/json]: JSONC graph snapshot adapter
package lff
