package graphmodel

import "github.com/layerflow-org/lff/immutable"

// GraphNode is the Graph AST's node type (§3.4). ID is unique and
// non-empty; Label is non-empty. Level and ParentID are optional — a zero
// Level is a valid level (the root), so HasLevel disambiguates "unset"
// from "level 0".
type GraphNode struct {
	ID       string
	Label    string
	Type     string
	Level    int
	HasLevel bool
	ParentID string
	Metadata immutable.Properties
}

// Edge is the Graph AST's edge type (§3.4). From and To must reference
// existing node IDs once added to a [Graph].
type Edge struct {
	From     string
	To       string
	Type     string
	Label    string
	Metadata immutable.Properties
}

// Layer groups nodes that share a hierarchy level under a name, per the
// layer CRUD operations in §6.2.
type Layer struct {
	Name     string
	Level    int
	Metadata immutable.Properties
}

type edgeKey struct {
	from string
	to   string
}
