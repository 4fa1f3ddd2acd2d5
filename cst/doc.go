// Package cst implements the concrete syntax tree builder for LayerFlow
// Format: a hand-written recursive-descent parser over the token stream
// produced by [github.com/layerflow-org/lff/lexer].
//
// # Error recovery
//
// A malformed line never aborts the parse. The offending construct is
// recorded as a [diag.SYNTAX_ERROR] diagnostic and the parser discards
// tokens up to and including the next Newline before resuming, so one bad
// line costs at most that line's contribution to the tree.
//
// # Grammar decisions
//
// Distinguishing a Node from an Edge requires looking only one token past
// the leading identifier (is it an arrow?); every other production in the
// grammar is resolved with at most that much lookahead, keeping the parser
// single-pass with no backtracking.
//
// # Caching
//
// [Builder] keeps a bounded, TTL-expiring cache of recent parses keyed on
// the content hash of the input text, so re-parsing unchanged source (a
// common pattern in editor tooling) is close to free.
package cst
