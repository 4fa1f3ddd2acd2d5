package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories represent the semantic domain of an error, not necessarily the
// pipeline stage that emits it. Most codes are emitted exclusively by their
// category's stage, but a handful are cross-cutting.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategoryLexical is for lexer (C1) errors and warnings.
	CategoryLexical

	// CategorySyntax is for CST builder (C2) parse errors.
	CategorySyntax

	// CategorySemantic is for AST lowering (C3) and semantic validation (C4)
	// diagnostics.
	CategorySemantic

	// CategoryGraph is for AST-to-graph lowering (C5) diagnostics.
	CategoryGraph

	// CategorySerialize is for serializer (C6) diagnostics.
	CategorySerialize
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryGraph:
		return "graph"
	case CategorySerialize:
		return "serialize"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes—only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "ODD_INDENTATION").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status. Callers may inject
	// this code manually when desired.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Lexical codes (spec.md §7 "Lexical").
var (
	// ODD_INDENTATION indicates a line's leading-space count is not a
	// multiple of two.
	ODD_INDENTATION = code("ODD_INDENTATION", CategoryLexical)

	// TAB_CHARACTER indicates a tab character was found in indentation.
	TAB_CHARACTER = code("TAB_CHARACTER", CategoryLexical)

	// TRAILING_WHITESPACE indicates trailing whitespace on a line.
	TRAILING_WHITESPACE = code("TRAILING_WHITESPACE", CategoryLexical)

	// MAX_INDENT_EXCEEDED indicates indentation depth exceeded 16 levels (32 spaces).
	MAX_INDENT_EXCEEDED = code("MAX_INDENT_EXCEEDED", CategoryLexical)

	// INVALID_LEVEL_ZERO indicates a "@0" level spec was used (rejected).
	INVALID_LEVEL_ZERO = code("INVALID_LEVEL_ZERO", CategoryLexical)

	// INCOMPLETE_BIDIRECTIONAL_ARROW indicates a lone "<-" was lexed.
	INCOMPLETE_BIDIRECTIONAL_ARROW = code("INCOMPLETE_BIDIRECTIONAL_ARROW", CategoryLexical)

	// INVALID_ANCHOR_START indicates an anchor/ref token starting with a
	// non-letter character (e.g. "&1abc").
	INVALID_ANCHOR_START = code("INVALID_ANCHOR_START", CategoryLexical)

	// ANCHOR_NAME_TOO_LONG indicates an anchor name exceeded 32 characters.
	ANCHOR_NAME_TOO_LONG = code("ANCHOR_NAME_TOO_LONG", CategoryLexical)

	// UNTERMINATED_STRING indicates a string literal was not closed.
	UNTERMINATED_STRING = code("UNTERMINATED_STRING", CategoryLexical)

	// INVALID_ESCAPE indicates an unrecognized escape sequence in a string.
	INVALID_ESCAPE = code("INVALID_ESCAPE", CategoryLexical)

	// INVALID_NUMBER indicates a malformed numeric literal (e.g. leading zero).
	INVALID_NUMBER = code("INVALID_NUMBER", CategoryLexical)

	// UNRECOGNIZED_CHARACTER indicates a character that matches no token grammar.
	UNRECOGNIZED_CHARACTER = code("UNRECOGNIZED_CHARACTER", CategoryLexical)

	// LEXER_NOT_INITIALIZED indicates the CST builder was invoked without a
	// successfully constructed lexer/token stream.
	LEXER_NOT_INITIALIZED = code("LEXER_NOT_INITIALIZED", CategoryLexical)
)

// Structural / syntax codes (spec.md §7 "Structural").
var (
	// SYNTAX_ERROR indicates a CST production could not be parsed; recovery
	// synchronized to the next newline.
	SYNTAX_ERROR = code("SYNTAX_ERROR", CategorySyntax)

	// MISSING_EDGE_ENDPOINT indicates an edge is missing its "from" or "to".
	MISSING_EDGE_ENDPOINT = code("MISSING_EDGE_ENDPOINT", CategorySyntax)

	// NODE_NAME_EMPTY indicates a node name was empty after string cleaning.
	NODE_NAME_EMPTY = code("NODE_NAME_EMPTY", CategorySyntax)

	// UNKNOWN_DIRECTIVE indicates a directive name outside the recognized list.
	UNKNOWN_DIRECTIVE = code("UNKNOWN_DIRECTIVE", CategorySyntax)

	// UNKNOWN_ARROW is defensive; unreachable if C1/C2 are correct.
	UNKNOWN_ARROW = code("UNKNOWN_ARROW", CategorySyntax)

	// INVALID_ANCHOR_NAME indicates an anchor name failed the name-format check.
	INVALID_ANCHOR_NAME = code("INVALID_ANCHOR_NAME", CategorySyntax)

	// INVALID_LEVEL_SPEC indicates a malformed or illegal level spec (e.g. "@3-1").
	INVALID_LEVEL_SPEC = code("INVALID_LEVEL_SPEC", CategorySyntax)

	// INVALID_TYPE_NAME indicates a type name in a type list fails the format check.
	INVALID_TYPE_NAME = code("INVALID_TYPE_NAME", CategorySyntax)

	// W_INLINE_VALUE indicates the ambiguous same-line inline node value form
	// ("Node: value") was used; see SPEC_FULL.md Open Question 1.
	W_INLINE_VALUE = code("W_INLINE_VALUE", CategorySyntax)

	// W_UNKNOWN_OPTION indicates an unrecognized option key was ignored.
	W_UNKNOWN_OPTION = code("W_UNKNOWN_OPTION", CategorySyntax)
)

// Semantic codes (spec.md §7 "Semantic").
var (
	// REFERENCE_ANCHOR_UNIQUE indicates an anchor name is defined more than once.
	REFERENCE_ANCHOR_UNIQUE = code("REFERENCE_ANCHOR_UNIQUE", CategorySemantic)

	// UNDEFINED_ANCHOR_REFERENCE indicates a "*anchor" has no matching "&anchor".
	UNDEFINED_ANCHOR_REFERENCE = code("UNDEFINED_ANCHOR_REFERENCE", CategorySemantic)

	// CIRCULAR_HIERARCHY indicates a node appears on its own ancestor path.
	CIRCULAR_HIERARCHY = code("CIRCULAR_HIERARCHY", CategorySemantic)

	// CIRCULAR_PARENT_REFERENCE indicates a parent_id cycle in the Graph AST.
	CIRCULAR_PARENT_REFERENCE = code("CIRCULAR_PARENT_REFERENCE", CategorySemantic)

	// DUPLICATE_DIRECTIVE indicates the same directive name appears more than once.
	DUPLICATE_DIRECTIVE = code("DUPLICATE_DIRECTIVE", CategorySemantic)

	// VERSION_FORMAT indicates an "@version" value does not match the
	// expected "\d+\.\d+(\.\d+)?" pattern.
	VERSION_FORMAT = code("VERSION_FORMAT", CategorySemantic)
)

// Lowering / graph codes (spec.md §7 "Lowering/graph").
var (
	// DUPLICATE_NODE_ID indicates two nodes were assigned the same ID
	// (only reachable in the non-unique, sanitize()-based ID path).
	DUPLICATE_NODE_ID = code("DUPLICATE_NODE_ID", CategoryGraph)

	// INVALID_NODE_REFERENCE indicates an edge endpoint or anchor reference
	// does not resolve to any node.
	INVALID_NODE_REFERENCE = code("INVALID_NODE_REFERENCE", CategoryGraph)

	// MAX_NODES_EXCEEDED indicates a node-count limit was exceeded.
	MAX_NODES_EXCEEDED = code("MAX_NODES_EXCEEDED", CategoryGraph)

	// MAX_EDGES_EXCEEDED indicates an edge-count limit was exceeded.
	MAX_EDGES_EXCEEDED = code("MAX_EDGES_EXCEEDED", CategoryGraph)

	// SELF_LOOP_EDGE indicates an edge with from == to when self-loops are
	// disallowed.
	SELF_LOOP_EDGE = code("SELF_LOOP_EDGE", CategoryGraph)

	// DUPLICATE_EDGE indicates a duplicate (from, to) ordered pair.
	DUPLICATE_EDGE = code("DUPLICATE_EDGE", CategoryGraph)

	// PARENT_NOT_FOUND indicates a parent_id referencing a node that does
	// not exist in the graph.
	PARENT_NOT_FOUND = code("PARENT_NOT_FOUND", CategoryGraph)
)

// Serializer codes.
var (
	// E_ROUND_TRIP_MISMATCH indicates ValidateRoundTrip detected a structural
	// difference between a graph and its serialize-then-reparse result.
	E_ROUND_TRIP_MISMATCH = code("E_ROUND_TRIP_MISMATCH", CategorySerialize)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	E_LIMIT_REACHED,
	E_INTERNAL,

	ODD_INDENTATION,
	TAB_CHARACTER,
	TRAILING_WHITESPACE,
	MAX_INDENT_EXCEEDED,
	INVALID_LEVEL_ZERO,
	INCOMPLETE_BIDIRECTIONAL_ARROW,
	INVALID_ANCHOR_START,
	ANCHOR_NAME_TOO_LONG,
	UNTERMINATED_STRING,
	INVALID_ESCAPE,
	INVALID_NUMBER,
	UNRECOGNIZED_CHARACTER,
	LEXER_NOT_INITIALIZED,

	SYNTAX_ERROR,
	MISSING_EDGE_ENDPOINT,
	NODE_NAME_EMPTY,
	UNKNOWN_DIRECTIVE,
	UNKNOWN_ARROW,
	INVALID_ANCHOR_NAME,
	INVALID_LEVEL_SPEC,
	INVALID_TYPE_NAME,
	W_INLINE_VALUE,
	W_UNKNOWN_OPTION,

	REFERENCE_ANCHOR_UNIQUE,
	UNDEFINED_ANCHOR_REFERENCE,
	CIRCULAR_HIERARCHY,
	CIRCULAR_PARENT_REFERENCE,
	DUPLICATE_DIRECTIVE,
	VERSION_FORMAT,

	DUPLICATE_NODE_ID,
	INVALID_NODE_REFERENCE,
	MAX_NODES_EXCEEDED,
	MAX_EDGES_EXCEEDED,
	SELF_LOOP_EDGE,
	DUPLICATE_EDGE,
	PARENT_NOT_FOUND,

	E_ROUND_TRIP_MISMATCH,
}

// AllCodes returns all defined codes.
//
// This function is useful for tooling and testing. The returned slice is a
// copy; modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
