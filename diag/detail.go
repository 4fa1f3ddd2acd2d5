package diag

import "strconv"

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyExpected is the expected value or form.
	DetailKeyExpected = "expected"

	// DetailKeyGot is the actual value or form received.
	DetailKeyGot = "got"

	// DetailKeyTypeName is a type name from a node's type list.
	DetailKeyTypeName = "type"

	// DetailKeyPropertyName is the property name involved.
	DetailKeyPropertyName = "property"

	// DetailKeyAnchorName is the anchor name involved (definition or reference).
	DetailKeyAnchorName = "anchor"

	// DetailKeyNodeID is the Graph AST node identifier involved.
	DetailKeyNodeID = "node_id"

	// DetailKeyLevelSpec is the raw level-spec text (e.g. "@3", "@2+", "@1-4").
	DetailKeyLevelSpec = "level_spec"

	// DetailKeyReason is the failure reason discriminant.
	DetailKeyReason = "reason"

	// DetailKeyDetail is the specific error description (grammar violation,
	// token context, parse error).
	DetailKeyDetail = "detail"

	// DetailKeyFormat is the adapter format identifier (e.g., "json").
	DetailKeyFormat = "format"

	// DetailKeyCycle is the cycle participants as a JSON array
	// (for circular hierarchy/parent-reference diagnostics).
	DetailKeyCycle = "cycle"

	// DetailKeyName is the invalid identifier name (for naming errors).
	DetailKeyName = "name"

	// DetailKeyContext is contextual information (e.g., "Lexer", "CSTBuilder").
	DetailKeyContext = "context"

	// DetailKeyId is the identifier value (e.g., synthetic SourceID).
	DetailKeyId = "id"

	// DetailKeyFirstLine is the line number of the first occurrence
	// (for duplicate-directive/duplicate-anchor diagnostics).
	DetailKeyFirstLine = "first_line"

	// DetailKeyDuplicateLine is the line number of the duplicate occurrence.
	DetailKeyDuplicateLine = "duplicate_line"

	// DetailKeyLimit is the configured limit value (for limit diagnostics).
	DetailKeyLimit = "limit"
)

// ExpectedGot creates a pair of details for mismatch diagnostics.
//
// This is the standard pattern for reporting "expected X, got Y" errors.
func ExpectedGot(expected, got string) []Detail {
	return []Detail{
		{Key: DetailKeyExpected, Value: expected},
		{Key: DetailKeyGot, Value: got},
	}
}

// AnchorRef creates detail entries for anchor reference diagnostics.
//
// Use for diagnostics like UNDEFINED_ANCHOR_REFERENCE and
// REFERENCE_ANCHOR_UNIQUE.
func AnchorRef(anchorName string) []Detail {
	return []Detail{
		{Key: DetailKeyAnchorName, Value: anchorName},
	}
}

// NodeLevel creates detail entries for level-spec diagnostics.
//
// Use for diagnostics involving a node's computed or requested level.
func NodeLevel(nodeID, levelSpec string) []Detail {
	return []Detail{
		{Key: DetailKeyNodeID, Value: nodeID},
		{Key: DetailKeyLevelSpec, Value: levelSpec},
	}
}

// DuplicateAt creates detail entries identifying a duplicate's first and
// second occurrence lines.
//
// Use for diagnostics like DUPLICATE_DIRECTIVE and REFERENCE_ANCHOR_UNIQUE.
func DuplicateAt(firstLine, duplicateLine int) []Detail {
	return []Detail{
		{Key: DetailKeyFirstLine, Value: strconv.Itoa(firstLine)},
		{Key: DetailKeyDuplicateLine, Value: strconv.Itoa(duplicateLine)},
	}
}
