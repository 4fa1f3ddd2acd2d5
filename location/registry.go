package location

// PositionRegistry provides byte-offset-to-position conversion.
//
// This interface is the bridge between format adapters (such as
// adapter/json) and whatever source content registry a caller maintains
// to perform the actual conversion. It enables adapters to obtain
// accurate Position values from byte offsets captured during parsing,
// without the adapter depending on a concrete registry type.
//
// Design rationale:
//
//  1. Foundation tier placement: PositionRegistry is defined in location
//     (foundation tier) because the interface operates on location.Position and
//     location.SourceID — natural cohesion with the location package.
//
//  2. Decouples adapters from any one registry implementation: adapters can use
//     any PositionRegistry implementation. This enables testing with mock
//     registries and supports alternative implementations.
//
//  3. Enables adapter independence: adapters can be used in contexts where a
//     full multi-file source registry isn't needed.
type PositionRegistry interface {
	// PositionAt converts a byte offset to a Position for the given source.
	//
	// Returns a zero Position (check via IsZero()) if:
	//   - The source is not registered
	//   - The byte offset is out of range
	//   - The byte offset is negative
	//
	// The returned Position has:
	//   - Line: 1-based line number
	//   - Column: 1-based rune offset from line start
	//   - Byte: The input byteOffset (echoed back for convenience)
	PositionAt(source SourceID, byteOffset int) Position
}

// RuneOffsetConverter provides rune-to-byte offset conversion.
//
// Some producers of positions (for example, a third-party parser that
// reports character indices) are rune-based, while lff's own lexer and
// CST builder use byte offsets for consistency with Go strings and UTF-8
// handling. This interface enables conversion between the two coordinate
// systems. No package in this module implements it yet.
type RuneOffsetConverter interface {
	// RuneToByteOffset converts a rune offset to a byte offset for the given source.
	//
	// Returns (byteOffset, true) on success.
	// Returns (0, false) if:
	//   - The source is not registered
	//   - The rune offset is out of range
	//   - The rune offset is negative
	RuneToByteOffset(source SourceID, runeOffset int) (byteOffset int, ok bool)
}
