package serialize

import (
	"strconv"
	"strings"

	"github.com/layerflow-org/lff/immutable"
)

// needsQuoting implements the smart-quoting heuristic from §4.6: a string
// requires quotes if it is empty, contains a space, tab, CR or LF, or any
// of : [ ] # @ & *, or has leading/trailing whitespace.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	return strings.ContainsAny(s, " \t\r\n:[]#@&*")
}

// quoteString renders s as an LFF string literal under the given quote
// options. smart style prefers single quotes, switching to double only
// when s itself contains a single quote.
func quoteString(s string, q Quotes) string {
	if !q.ForceQuotes && !needsQuoting(s) {
		return s
	}
	style := q.Style
	if style == QuoteSmart {
		if strings.Contains(s, "'") {
			style = QuoteDouble
		} else {
			style = QuoteSingle
		}
	}
	if style == QuoteDouble {
		return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
	}
	return `'` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`) + `'`
}

// renderValue renders an arbitrary metadata value as an LFF literal.
func renderValue(v immutable.Value, q Quotes) string {
	if v.IsNil() {
		return "null"
	}
	if s, ok := v.String(); ok {
		return quoteString(s, q)
	}
	if b, ok := v.Bool(); ok {
		if b {
			return "true"
		}
		return "false"
	}
	if n, ok := v.Int(); ok {
		return strconv.FormatInt(n, 10)
	}
	if f, ok := v.Float(); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if sl, ok := v.Slice(); ok {
		parts := make([]string, 0, sl.Len())
		for item := range sl.Iter() {
			parts = append(parts, renderValue(item, q))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "null"
}

// renderValueIndented renders v the same as renderValue, except an array
// whose inline form would exceed opts.Formatting.MaxLineLength wraps one
// element per line at one extra indent level from prefix, per §4.6.
func renderValueIndented(v immutable.Value, opts Options, prefix string) string {
	inline := renderValue(v, opts.Quotes)
	if !opts.Formatting.WrapArrays || opts.Formatting.MaxLineLength <= 0 {
		return inline
	}
	if len(prefix)+len(inline) <= opts.Formatting.MaxLineLength {
		return inline
	}
	sl, ok := v.Slice()
	if !ok {
		return inline
	}
	inner := prefix + indentUnit(opts.Indentation)
	var lines []string
	for item := range sl.Iter() {
		lines = append(lines, inner+renderValue(item, opts.Quotes))
	}
	if len(lines) == 0 {
		return inline
	}
	return "[" + "\n" + strings.Join(lines, ",\n") + "\n" + prefix + "]"
}

func indentUnit(ind Indentation) string {
	if ind.Type == IndentTabs {
		return "\t"
	}
	size := ind.Size
	if size <= 0 {
		size = 2
	}
	return strings.Repeat(" ", size)
}

func arrowSymbol(edgeType string) string {
	switch edgeType {
	case "multiple":
		return "=>"
	case "bidirectional":
		return "<->"
	case "dashed":
		return "-->"
	default:
		return "->"
	}
}
