// Package serialize implements C6: rendering a [graphmodel.Graph] back to
// LFF source text (§4.6).
package serialize

// IndentType selects the whitespace unit used for indentation.
type IndentType uint8

const (
	IndentSpaces IndentType = iota
	IndentTabs
)

// LineEnding selects the line terminator written between lines.
type LineEnding uint8

const (
	LF LineEnding = iota
	CRLF
	CR
)

func (e LineEnding) text() string {
	switch e {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	default:
		return "\n"
	}
}

// QuoteStyle selects how string literals are quoted.
type QuoteStyle uint8

const (
	QuoteSmart QuoteStyle = iota
	QuoteSingle
	QuoteDouble
)

// Indentation configures indentation type and width.
type Indentation struct {
	Type IndentType
	Size int
}

// Quotes configures string-literal quoting.
type Quotes struct {
	Style       QuoteStyle
	ForceQuotes bool
}

// Spacing configures whitespace around tokens and between sections.
type Spacing struct {
	AroundColons    bool
	AroundArrows    bool
	BetweenSections int
}

// Sorting configures stable sorting of each construct kind.
type Sorting struct {
	Nodes      bool
	Edges      bool
	Directives bool
	Properties bool
}

// Formatting configures line-wrapping and alignment.
type Formatting struct {
	MaxLineLength int
	WrapArrays    bool
	AlignValues   bool
}

// Include configures which optional content is emitted.
type Include struct {
	Comments       bool
	LFFMetadata    bool
	ParserMetadata bool
}

// Options is the full serializer option surface (§4.6's merged option
// table). Build one from scratch, start from a preset and override
// fields, or pass a preset directly to [Serialize].
type Options struct {
	Indentation Indentation
	LineEndings LineEnding
	Quotes      Quotes
	Spacing     Spacing
	Sorting     Sorting
	Formatting  Formatting
	Include     Include
}

// Compact favors small output: no sorting, no alignment, no metadata.
func Compact() Options {
	return Options{
		Indentation: Indentation{Type: IndentSpaces, Size: 2},
		LineEndings: LF,
		Quotes:      Quotes{Style: QuoteSmart},
		Spacing:     Spacing{AroundColons: true, AroundArrows: true, BetweenSections: 0},
		Formatting:  Formatting{MaxLineLength: 120},
	}
}

// Pretty is the default, human-readable preset: aligned values, wrapped
// long arrays, and retained LFF metadata for round-tripping.
func Pretty() Options {
	return Options{
		Indentation: Indentation{Type: IndentSpaces, Size: 2},
		LineEndings: LF,
		Quotes:      Quotes{Style: QuoteSmart},
		Spacing:     Spacing{AroundColons: true, AroundArrows: true, BetweenSections: 1},
		Formatting:  Formatting{MaxLineLength: 80, WrapArrays: true, AlignValues: true},
		Include:     Include{Comments: true, LFFMetadata: true},
	}
}

// Strict is a canonical form: everything sorted, quotes forced, metadata
// retained, suited to diffable output.
func Strict() Options {
	return Options{
		Indentation: Indentation{Type: IndentSpaces, Size: 2},
		LineEndings: LF,
		Quotes:      Quotes{Style: QuoteDouble, ForceQuotes: true},
		Spacing:     Spacing{AroundColons: true, AroundArrows: true, BetweenSections: 1},
		Sorting:     Sorting{Nodes: true, Edges: true, Directives: true, Properties: true},
		Formatting:  Formatting{MaxLineLength: 100, WrapArrays: true},
		Include:     Include{LFFMetadata: true, ParserMetadata: true},
	}
}

// Minimal drops everything not required to reconstruct the graph shape:
// no comments, no metadata, tightest spacing.
func Minimal() Options {
	return Options{
		Indentation: Indentation{Type: IndentSpaces, Size: 1},
		LineEndings: LF,
		Quotes:      Quotes{Style: QuoteSmart},
	}
}
