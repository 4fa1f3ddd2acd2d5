package lexer

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/location"
)

const (
	maxIndentUnits  = 16
	maxAnchorLen    = 32
	maxDirectiveLen = 32
	maxIdentLen     = 64
)

// patternSuggestions maps common erroneous prefixes to hint text. Checked
// only after the normal scan path has already classified a construct as
// malformed; this table exists purely to improve the message, not to change
// tokenization or the emitted diagnostic code.
var patternSuggestions = map[string]string{
	"@0": "level specs start at @1; did you mean to omit the level entirely?",
	"&-": "anchor names must start with a letter",
	"<-": "did you mean <->?",
}

// Result is the output of [Lex]: a flat token stream plus accumulated
// diagnostics, metrics, and source statistics.
type Result struct {
	Tokens      []Token
	Diagnostics diag.Result
	Metrics     Metrics
	SourceInfo  SourceInfo
}

// Lex tokenizes src, a document identified by sourceID, per the surface
// syntax in the language's indentation and literal rules.
//
// Lex never fails outright: even malformed input yields a best-effort token
// list alongside diagnostics describing what went wrong. Tokens always ends
// with a synthetic EOF token; for empty input that token is the only one.
func Lex(sourceID location.SourceID, src string, opts ...Option) Result {
	o := resolveOptions(opts)

	var start time.Time
	if o.CollectMetrics {
		start = time.Now()
	}

	collector := diag.NewCollectorUnlimited()
	sc := &scanner{
		src:         src,
		sourceID:    sourceID,
		line:        1,
		col:         1,
		collector:   collector,
		opts:        o,
		atLineStart: true,
	}
	sc.run()

	result := Result{
		Tokens:      sc.tokens,
		Diagnostics: collector.Result(),
		SourceInfo: SourceInfo{
			Length:    len(src),
			LineCount: sc.line,
			Encoding:  "utf-8",
		},
	}

	if o.CollectMetrics {
		elapsed := time.Since(start)
		ms := float64(elapsed) / float64(time.Millisecond)
		result.Metrics = Metrics{
			LexTimeMS:  ms,
			TokenCount: len(sc.tokens),
		}
		if ms > 0 {
			result.Metrics.ThroughputCharsPerSec = float64(len(src)) / (ms / 1000)
		}
	}

	return result
}

// scanner holds the mutable state of a single tokenization pass.
type scanner struct {
	src         string
	sourceID    location.SourceID
	byteOff     int
	line        int
	col         int
	atLineStart bool

	tokens    []Token
	collector *diag.Collector
	opts      Options
}

func (s *scanner) pos() location.Position {
	return location.Position{Line: s.line, Column: s.col, Byte: s.byteOff}
}

func (s *scanner) eof() bool {
	return s.byteOff >= len(s.src)
}

// peekRune returns the rune at the cursor and its byte width, or (0, 0) at EOF.
func (s *scanner) peekRune() (rune, int) {
	if s.eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(s.src[s.byteOff:])
	return r, size
}

func (s *scanner) peekAt(offset int) byte {
	i := s.byteOff + offset
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// advance consumes one rune and updates line/column bookkeeping.
func (s *scanner) advance() rune {
	r, size := s.peekRune()
	if size == 0 {
		return 0
	}
	s.byteOff += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) emit(kind Kind, start location.Position, image string) {
	tok := Token{
		Kind:  kind,
		Image: image,
		Span:  location.Span{Source: s.sourceID, Start: start, End: s.pos()},
	}
	s.tokens = append(s.tokens, tok)
}

func (s *scanner) report(severity diag.Severity, code diag.Code, span location.Span, message string) {
	b := diag.NewIssue(severity, code, message).WithSpan(span)
	if s.opts.EnhancedErrors {
		if hint, ok := s.suggestionFor(span); ok {
			b = b.WithHint(hint)
		}
	}
	s.collector.Collect(b.Build())
}

func (s *scanner) suggestionFor(span location.Span) (string, bool) {
	start := span.Start.Byte
	if start < 0 || start+2 > len(s.src) {
		return "", false
	}
	if hint, ok := patternSuggestions[s.src[start:start+2]]; ok {
		return hint, true
	}
	return "", false
}

func (s *scanner) run() {
	for {
		if s.atLineStart {
			s.scanLineStart()
			s.atLineStart = false
		}
		if s.eof() {
			break
		}
		r, _ := s.peekRune()
		switch {
		case r == '\n':
			s.scanNewline()
		case r == '\r':
			s.scanCarriageReturn()
		case r == ' ' || r == '\t':
			s.scanInlineWhitespace()
		case r == '#':
			s.scanComment()
		case r == '"':
			s.scanString()
		case isDigit(r):
			s.scanNumber()
		case r == '@':
			s.scanAt()
		case r == '&':
			s.scanSigil('&', KindAnchorDef, diag.INVALID_ANCHOR_START)
		case r == '*':
			s.scanSigil('*', KindAnchorRef, diag.INVALID_ANCHOR_START)
		case r == ':':
			s.scanSingle(KindColon)
		case r == ',':
			s.scanSingle(KindComma)
		case r == '[':
			s.scanSingle(KindBracketOpen)
		case r == ']':
			s.scanSingle(KindBracketClose)
		case r == '-':
			s.scanDash()
		case r == '=':
			s.scanEquals()
		case r == '<':
			s.scanLessThan()
		case isIdentStart(r):
			s.scanIdentifier()
		default:
			s.scanUnrecognized()
		}
	}
	s.emit(KindEOF, s.pos(), "")
}

// scanLineStart consumes leading indentation and emits an Indent token for
// any line carrying subsequent content. Blank lines get no Indent token, and
// neither do comment-only lines when comments are dropped.
func (s *scanner) scanLineStart() {
	start := s.pos()
	spaceCount := 0
	sawTab := false
	for {
		r, _ := s.peekRune()
		switch r {
		case ' ':
			s.advance()
			spaceCount++
		case '\t':
			tabStart := s.pos()
			s.advance()
			if !sawTab {
				sawTab = true
				s.report(diag.Error, diag.TAB_CHARACTER,
					location.Span{Source: s.sourceID, Start: tabStart, End: s.pos()},
					"tab character in indentation is not converted to spaces")
			}
		default:
			goto doneScanning
		}
	}
doneScanning:
	r, _ := s.peekRune()
	if r == 0 || r == '\n' || r == '\r' || (r == '#' && !s.opts.IncludeComments) {
		// Blank line (or a comment line whose comment is dropped): no
		// structural content, no Indent token needed.
		return
	}

	units := spaceCount / 2
	if spaceCount%2 != 0 {
		s.report(diag.Warning, diag.ODD_INDENTATION,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"odd number of leading spaces; rounding down to the nearest indent unit")
	}
	if units > maxIndentUnits {
		s.report(diag.Error, diag.MAX_INDENT_EXCEEDED,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"indentation exceeds the maximum depth of 16 levels (32 spaces)")
		units = maxIndentUnits
	}

	tok := Token{
		Kind:   KindIndent,
		Image:  s.src[start.Byte:s.byteOff],
		Span:   location.Span{Source: s.sourceID, Start: start, End: s.pos()},
		Indent: units,
	}
	s.tokens = append(s.tokens, tok)
}

func (s *scanner) scanNewline() {
	start := s.pos()
	s.advance()
	s.emit(KindNewline, start, "\n")
	s.atLineStart = true
}

func (s *scanner) scanCarriageReturn() {
	start := s.pos()
	s.advance()
	image := "\r"
	if r, _ := s.peekRune(); r == '\n' {
		s.advance()
		image = "\r\n"
	}
	s.emit(KindNewline, start, image)
	s.atLineStart = true
}

// scanInlineWhitespace consumes a run of spaces/tabs appearing after the
// first token on a line. Tabs are flagged; trailing runs (immediately
// preceding a newline or EOF) are flagged separately.
func (s *scanner) scanInlineWhitespace() {
	start := s.pos()
	for {
		r, _ := s.peekRune()
		switch r {
		case ' ':
			s.advance()
		case '\t':
			tabStart := s.pos()
			s.advance()
			s.report(diag.Error, diag.TAB_CHARACTER,
				location.Span{Source: s.sourceID, Start: tabStart, End: s.pos()},
				"tab character is not converted to spaces")
		default:
			r2, _ := s.peekRune()
			if r2 == 0 || r2 == '\n' || r2 == '\r' {
				s.report(diag.Warning, diag.TRAILING_WHITESPACE,
					location.Span{Source: s.sourceID, Start: start, End: s.pos()},
					"trailing whitespace")
			}
			return
		}
	}
}

func (s *scanner) scanComment() {
	start := s.pos()
	var b strings.Builder
	for {
		r, _ := s.peekRune()
		if r == 0 || r == '\n' || r == '\r' {
			break
		}
		b.WriteRune(r)
		s.advance()
	}
	if s.opts.IncludeComments {
		s.emit(KindComment, start, b.String())
	}
}

func (s *scanner) scanSingle(kind Kind) {
	start := s.pos()
	s.advance()
	s.emit(kind, start, s.src[start.Byte:s.byteOff])
}

func (s *scanner) scanUnrecognized() {
	start := s.pos()
	r := s.advance()
	s.report(diag.Error, diag.UNRECOGNIZED_CHARACTER,
		location.Span{Source: s.sourceID, Start: start, End: s.pos()},
		"unrecognized character "+quoteRune(r))
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '_' || r == '-'
}

// scanIdentifier scans [A-Za-z][A-Za-z0-9_-]{0,63} and classifies the
// maximal match as a boolean literal or a plain identifier. Longer-alternative
// matching is implicit: the greedy loop never stops early just because a
// prefix happens to equal "true" or "false".
func (s *scanner) scanIdentifier() {
	start := s.pos()
	runes := 0
	for {
		r, _ := s.peekRune()
		if runes >= maxIdentLen || !isIdentCont(r) {
			break
		}
		if runes == 0 && !isIdentStart(r) {
			break
		}
		s.advance()
		runes++
	}
	image := s.src[start.Byte:s.byteOff]
	switch image {
	case "true":
		s.emit(KindBooleanTrue, start, image)
	case "false":
		s.emit(KindBooleanFalse, start, image)
	default:
		s.emit(KindIdentifier, start, image)
	}
}

// scanSigil handles '&' (AnchorDef) and '*' (AnchorRef), which share a name
// grammar and validation rules.
func (s *scanner) scanSigil(ch rune, kind Kind, invalidStartCode diag.Code) {
	start := s.pos()
	s.advance() // consume '&' or '*'

	r, _ := s.peekRune()
	if !isIdentStart(r) {
		s.report(diag.Error, invalidStartCode,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"anchor name must start with a letter, immediately after "+string(ch))
		return
	}

	nameStart := s.pos()
	runes := 0
	for {
		r, _ := s.peekRune()
		if !isIdentCont(r) {
			break
		}
		s.advance()
		runes++
	}
	image := s.src[start.Byte:s.byteOff]
	if runes > maxAnchorLen {
		s.report(diag.Error, diag.ANCHOR_NAME_TOO_LONG,
			location.Span{Source: s.sourceID, Start: nameStart, End: s.pos()},
			"anchor name exceeds the 32 character limit")
	}
	s.emit(kind, start, image)
}

// scanAt handles '@', disambiguating Directive from LevelSpec. A bare '@0'
// is accepted as a LevelSpec token (best-effort) but flagged immediately;
// range validation (@N-M with N<M) is deferred to AST lowering.
func (s *scanner) scanAt() {
	start := s.pos()
	s.advance() // consume '@'

	r, _ := s.peekRune()
	switch {
	case isDigit(r):
		s.scanLevelSpec(start)
	case isIdentStart(r):
		s.scanDirective(start)
	default:
		s.report(diag.Error, diag.UNRECOGNIZED_CHARACTER,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"'@' must be followed by a directive name or a level spec")
	}
}

func (s *scanner) scanDigits() string {
	digitStart := s.byteOff
	for {
		r, _ := s.peekRune()
		if !isDigit(r) {
			break
		}
		s.advance()
	}
	return s.src[digitStart:s.byteOff]
}

func (s *scanner) scanLevelSpec(start location.Position) {
	n := s.scanDigits()

	if r, _ := s.peekRune(); r == '+' {
		s.advance()
	} else if r == '-' {
		s.advance()
		s.scanDigits()
	}

	image := s.src[start.Byte:s.byteOff]
	s.emit(KindLevelSpec, start, image)

	if n == "0" {
		s.report(diag.Error, diag.INVALID_LEVEL_ZERO,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"level spec @0 is invalid; levels start at 1")
	}
}

func (s *scanner) scanDirective(start location.Position) {
	nameStart := s.pos()
	runes := 0
	for {
		r, _ := s.peekRune()
		if !isIdentCont(r) {
			break
		}
		s.advance()
		runes++
	}
	image := s.src[start.Byte:s.byteOff]
	if runes > maxDirectiveLen {
		s.report(diag.Error, diag.ANCHOR_NAME_TOO_LONG,
			location.Span{Source: s.sourceID, Start: nameStart, End: s.pos()},
			"directive name exceeds the 32 character limit")
	}
	s.emit(KindDirective, start, image)
}

// scanDash handles '-', which introduces ArrowDashed ("-->") or ArrowSimple
// ("->"); any other continuation is unrecognized.
func (s *scanner) scanDash() {
	start := s.pos()
	if s.peekAt(1) == '-' && s.peekAt(2) == '>' {
		s.advance()
		s.advance()
		s.advance()
		s.emit(KindArrowDashed, start, "-->")
		return
	}
	if s.peekAt(1) == '>' {
		s.advance()
		s.advance()
		s.emit(KindArrowSimple, start, "->")
		return
	}
	s.advance()
	s.report(diag.Error, diag.UNRECOGNIZED_CHARACTER,
		location.Span{Source: s.sourceID, Start: start, End: s.pos()},
		"unrecognized character '-'")
}

func (s *scanner) scanEquals() {
	start := s.pos()
	if s.peekAt(1) == '>' {
		s.advance()
		s.advance()
		s.emit(KindArrowMultiple, start, "=>")
		return
	}
	s.advance()
	s.report(diag.Error, diag.UNRECOGNIZED_CHARACTER,
		location.Span{Source: s.sourceID, Start: start, End: s.pos()},
		"unrecognized character '='")
}

func (s *scanner) scanLessThan() {
	start := s.pos()
	if s.peekAt(1) == '-' && s.peekAt(2) == '>' {
		s.advance()
		s.advance()
		s.advance()
		s.emit(KindArrowBidirectional, start, "<->")
		return
	}
	if s.peekAt(1) == '-' {
		s.advance()
		s.advance()
		s.report(diag.Error, diag.INCOMPLETE_BIDIRECTIONAL_ARROW,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"incomplete bidirectional arrow; did you mean <->?")
		return
	}
	s.advance()
	s.report(diag.Error, diag.UNRECOGNIZED_CHARACTER,
		location.Span{Source: s.sourceID, Start: start, End: s.pos()},
		"unrecognized character '<'")
}

// scanString consumes a double-quoted string literal, validating (but not
// resolving) escape sequences. Resolution happens during AST lowering.
func (s *scanner) scanString() {
	start := s.pos()
	s.advance() // opening quote

	for {
		r, _ := s.peekRune()
		switch {
		case r == 0:
			s.report(diag.Error, diag.UNTERMINATED_STRING,
				location.Span{Source: s.sourceID, Start: start, End: s.pos()},
				"unterminated string literal")
			s.emit(KindStringLiteral, start, s.src[start.Byte:s.byteOff])
			return
		case r == '\n' || r == '\r':
			s.report(diag.Error, diag.UNTERMINATED_STRING,
				location.Span{Source: s.sourceID, Start: start, End: s.pos()},
				"unterminated string literal: newline before closing quote")
			s.emit(KindStringLiteral, start, s.src[start.Byte:s.byteOff])
			return
		case r == '\\':
			escStart := s.pos()
			s.advance()
			next, _ := s.peekRune()
			switch next {
			case 'n', 't', 'r', '\\', '"':
				s.advance()
			default:
				s.report(diag.Error, diag.INVALID_ESCAPE,
					location.Span{Source: s.sourceID, Start: escStart, End: s.pos()},
					"invalid escape sequence")
				if next != 0 {
					s.advance()
				}
			}
		case r == '"':
			s.advance()
			s.emit(KindStringLiteral, start, s.src[start.Byte:s.byteOff])
			return
		default:
			s.advance()
		}
	}
}

// scanNumber consumes `0 | [1-9][0-9]*(\.[0-9]+)?`, flagging leading zeros
// and malformed decimal tails as INVALID_NUMBER while still producing a
// best-effort token.
func (s *scanner) scanNumber() {
	start := s.pos()
	first := s.scanDigits()

	if len(first) > 1 && first[0] == '0' {
		s.report(diag.Error, diag.INVALID_NUMBER,
			location.Span{Source: s.sourceID, Start: start, End: s.pos()},
			"leading zeros are not permitted in number literals")
	}

	if r, _ := s.peekRune(); r == '.' {
		dotPos := s.pos()
		s.advance()
		frac := s.scanDigits()
		if frac == "" {
			s.report(diag.Error, diag.INVALID_NUMBER,
				location.Span{Source: s.sourceID, Start: dotPos, End: s.pos()},
				"decimal point must be followed by at least one digit")
		}
	}

	s.emit(KindNumberLiteral, start, s.src[start.Byte:s.byteOff])
}
