// Package lexer tokenizes LayerFlow Format source text.
package lexer

import "github.com/layerflow-org/lff/location"

// Kind identifies the lexical category of a [Token].
type Kind uint8

const (
	// KindInvalid is the zero value and never appears in a produced token stream.
	KindInvalid Kind = iota

	KindWhitespace
	KindNewline
	KindIndent
	KindComment

	KindIdentifier
	KindStringLiteral
	KindNumberLiteral
	KindBooleanTrue
	KindBooleanFalse

	KindColon
	KindComma
	KindBracketOpen
	KindBracketClose

	KindArrowSimple
	KindArrowMultiple
	KindArrowBidirectional
	KindArrowDashed

	KindDirective
	KindLevelSpec
	KindAnchorDef
	KindAnchorRef

	// KindEOF marks the synthetic end-of-stream token appended by [Lex].
	KindEOF
)

// String returns the canonical label for the kind.
func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "Whitespace"
	case KindNewline:
		return "Newline"
	case KindIndent:
		return "Indent"
	case KindComment:
		return "Comment"
	case KindIdentifier:
		return "Identifier"
	case KindStringLiteral:
		return "StringLiteral"
	case KindNumberLiteral:
		return "NumberLiteral"
	case KindBooleanTrue:
		return "BooleanTrue"
	case KindBooleanFalse:
		return "BooleanFalse"
	case KindColon:
		return "Colon"
	case KindComma:
		return "Comma"
	case KindBracketOpen:
		return "BracketOpen"
	case KindBracketClose:
		return "BracketClose"
	case KindArrowSimple:
		return "ArrowSimple"
	case KindArrowMultiple:
		return "ArrowMultiple"
	case KindArrowBidirectional:
		return "ArrowBidirectional"
	case KindArrowDashed:
		return "ArrowDashed"
	case KindDirective:
		return "Directive"
	case KindLevelSpec:
		return "LevelSpec"
	case KindAnchorDef:
		return "AnchorDef"
	case KindAnchorRef:
		return "AnchorRef"
	case KindEOF:
		return "EOF"
	default:
		return "Invalid"
	}
}

// Token is a single lexical unit: a kind, the verbatim source slice, and the
// span it occupies. Image always holds the raw text, even for tokens whose
// semantic value requires further processing (e.g. a StringLiteral's quotes
// and escapes are resolved later, during AST lowering).
type Token struct {
	Kind  Kind
	Image string
	Span  location.Span

	// Indent is populated only on KindIndent tokens: the number of two-space
	// indentation units recognized (see §6.1.5). Odd leftover columns are not
	// represented here; they produce a diagnostic instead.
	Indent int
}

// IsArrow reports whether the token is one of the four arrow kinds.
func (t Token) IsArrow() bool {
	switch t.Kind {
	case KindArrowSimple, KindArrowMultiple, KindArrowBidirectional, KindArrowDashed:
		return true
	default:
		return false
	}
}
