// Package cst implements the recursive-descent concrete syntax tree builder
// for LayerFlow Format source, consuming the token stream produced by
// [github.com/layerflow-org/lff/lexer].
package cst

import (
	"github.com/layerflow-org/lff/lexer"
	"github.com/layerflow-org/lff/location"
)

// NodeKind identifies which grammar production a [Node] instantiates.
type NodeKind uint8

const (
	KindDocument NodeKind = iota
	KindDirective
	KindNode
	KindEdge
	KindNodeIdent
	KindNodeRef
	KindTypeList
	KindArrow
	KindNodeBlock
	KindProperty
	KindValue
	KindArrayLiteral
	KindComment
	KindAnchorDef
	KindLevelSpec
)

// String returns the grammar production name, matching the core rule names
// recognized by [GrammarRegistry].
func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindDirective:
		return "Directive"
	case KindNode:
		return "Node"
	case KindEdge:
		return "Edge"
	case KindNodeIdent:
		return "NodeIdent"
	case KindNodeRef:
		return "NodeRef"
	case KindTypeList:
		return "TypeList"
	case KindArrow:
		return "Arrow"
	case KindNodeBlock:
		return "NodeBlock"
	case KindProperty:
		return "Property"
	case KindValue:
		return "Value"
	case KindArrayLiteral:
		return "ArrayLiteral"
	case KindComment:
		return "Comment"
	case KindAnchorDef:
		return "AnchorDef"
	case KindLevelSpec:
		return "LevelSpec"
	default:
		return "Unknown"
	}
}

// Node is a concrete syntax tree node. Leaf nodes (identifiers, literals,
// arrows, anchors, level specs) carry their source [lexer.Token] in Token;
// composite nodes carry ordered Children and a zero Token.
//
// The CST intentionally preserves every structural production, including
// ones AST lowering later discards (e.g. a NodeBlock wrapping a single
// Property), so that tooling built on top of the CST (formatters, linters)
// has access to the full concrete shape of the source.
type Node struct {
	Kind     NodeKind
	Token    lexer.Token
	Children []*Node
	Span     location.Span
}

// IsLeaf reports whether the node wraps a single token rather than children.
func (n *Node) IsLeaf() bool {
	return n.Token.Kind != lexer.KindInvalid
}

// Text returns the leaf token's image, or "" for composite nodes.
func (n *Node) Text() string {
	return n.Token.Image
}
