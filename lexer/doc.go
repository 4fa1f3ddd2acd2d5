// Package lexer tokenizes LayerFlow Format source text into a flat, ordered
// stream of [Token] values.
//
// The lexer never aborts: malformed input still yields a best-effort token
// list alongside [diag.Issue] diagnostics describing what was wrong. This
// lets downstream stages (see [github.com/layerflow-org/lff/cst]) recover
// from local lexical errors instead of failing the whole document.
//
// # Indentation
//
// Leading whitespace is interpreted in two-space units, up to 16 units (32
// spaces). Tabs in indentation are rejected (but tolerated) via
// [diag.TAB_CHARACTER]; odd leading-space counts are rounded down via
// [diag.ODD_INDENTATION]. A blank line produces no [KindIndent] token, and
// neither does a comment-only line when comments are dropped.
//
// # Longest match
//
// Arrow, level-spec, directive, and boolean-literal ambiguities are resolved
// by priority order: three-character arrows are checked before two-character
// ones, level specs are checked before directive names, and boolean literals
// are recognized only when the greedily-scanned identifier equals exactly
// "true" or "false" (so "trueish" lexes as a single Identifier).
package lexer
