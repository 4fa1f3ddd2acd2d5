package ast

import "github.com/layerflow-org/lff/location"

// ArrowKind identifies an edge's arrow symbol, per the fixed mapping in
// §4.3/§4.7: -> simple, => multiple, <-> bidirectional, --> dashed.
type ArrowKind uint8

const (
	ArrowSimple ArrowKind = iota
	ArrowMultiple
	ArrowBidirectional
	ArrowDashed
)

// String returns the semantic edge-type name used by C5/C6, not the arrow
// symbol itself.
func (a ArrowKind) String() string {
	switch a {
	case ArrowSimple:
		return "simple"
	case ArrowMultiple:
		return "multiple"
	case ArrowBidirectional:
		return "bidirectional"
	case ArrowDashed:
		return "dashed"
	default:
		return "unknown"
	}
}

// Symbol returns the source-syntax arrow for a, the inverse of the
// lowering table, used by the serializer.
func (a ArrowKind) Symbol() string {
	switch a {
	case ArrowSimple:
		return "->"
	case ArrowMultiple:
		return "=>"
	case ArrowBidirectional:
		return "<->"
	case ArrowDashed:
		return "-->"
	default:
		return "->"
	}
}

// Property is a single key/value entry on a [NodeDef], kept in source
// order so downstream stages that care about authoring order (the
// serializer's alignment and sorting options) have it available.
type Property struct {
	Key   string
	Value Value
	Span  location.Span
}

// NodeDef is the LFF AST's Node variant (§3.3).
type NodeDef struct {
	Name       string
	Anchor     string // "" if the node defines no anchor
	Types      []string
	LevelSpec  string // raw spec text ("@2", "@1+", "@3-5"); "" if absent or invalid
	Properties []Property
	Children   []NodeDef // nested nodes, source order
	Span       location.Span
}

// EdgeDef is the LFF AST's Edge variant (§3.3). From and To are either a
// plain node name or an anchor reference in the form "*name"; resolving
// anchor references to node IDs is C5's job, not C3's.
type EdgeDef struct {
	From  string
	To    string
	Arrow ArrowKind
	Label string // "" if the edge carries no label
	Span  location.Span
}

// DirectiveDef is the LFF AST's Directive variant (§3.3).
type DirectiveDef struct {
	Name  string
	Value Value
	Span  location.Span
}

// SourceInfo carries the same source statistics the lexer reports,
// threaded through to the lowered document for callers that only see the
// AST layer.
type SourceInfo struct {
	Length    int
	LineCount int
	Encoding  string
}

// Document is the LFF AST's top-level container (§3.3): every NodeDef,
// EdgeDef, and DirectiveDef recognized in a single source text, plus any
// retained comments.
//
// Directives always appear here regardless of their nesting depth in the
// source — a Directive encountered inside a node's block is promoted to
// the document level during lowering, matching §4.3's "directives always
// appear at the top level" policy.
type Document struct {
	Nodes      []NodeDef
	Edges      []EdgeDef
	Directives []DirectiveDef
	Comments   []string
	SourceInfo SourceInfo
}
