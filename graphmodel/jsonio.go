package graphmodel

import (
	"encoding/json"

	"github.com/layerflow-org/lff/immutable"
)

// jsonGraph is the wire shape for [Graph.ToJSON] / [FromJSON]. Unlike
// adapter/json's comment-tolerant parsing of user-authored JSONC graph
// snapshots, this is a strict round-trip of already-validated internal
// state, so the standard library's encoding/json is the right tool here.
type jsonGraph struct {
	Nodes    []jsonNode     `json:"nodes"`
	Edges    []jsonEdge     `json:"edges"`
	Layers   []jsonLayer    `json:"layers,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type jsonNode struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Type     string         `json:"type,omitempty"`
	Level    *int           `json:"level,omitempty"`
	ParentID string         `json:"parent_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type jsonEdge struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Type     string         `json:"type,omitempty"`
	Label    string         `json:"label,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type jsonLayer struct {
	Name     string         `json:"name"`
	Level    int            `json:"level"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ToJSON serializes the graph to its wire JSON form (§6.2's to_json).
func (g *Graph) ToJSON() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := jsonGraph{
		Nodes:    make([]jsonNode, 0, len(g.nodeOrder)),
		Edges:    make([]jsonEdge, 0, len(g.edgeOrder)),
		Layers:   make([]jsonLayer, 0, len(g.layerOrder)),
		Metadata: g.metadata.Clone(),
	}
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		jn := jsonNode{ID: n.ID, Label: n.Label, Type: n.Type, ParentID: n.ParentID, Metadata: n.Metadata.Clone()}
		if n.HasLevel {
			lvl := n.Level
			jn.Level = &lvl
		}
		out.Nodes = append(out.Nodes, jn)
	}
	for _, k := range g.edgeOrder {
		e := g.edges[k]
		out.Edges = append(out.Edges, jsonEdge{From: e.From, To: e.To, Type: e.Type, Label: e.Label, Metadata: e.Metadata.Clone()})
	}
	for _, name := range g.layerOrder {
		l := g.layers[name]
		out.Layers = append(out.Layers, jsonLayer{Name: l.Name, Level: l.Level, Metadata: l.Metadata.Clone()})
	}
	return json.Marshal(out)
}

// FromJSON rebuilds a Graph from its wire JSON form (§6.2's from_json).
// The result is not re-validated against graph invariants; call
// [Graph.Validate] afterward if data is from an untrusted source.
func FromJSON(data []byte, opts ...GraphOption) (*Graph, error) {
	var in jsonGraph
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}

	g := New(opts...)
	for _, n := range in.Nodes {
		node := GraphNode{
			ID:       n.ID,
			Label:    n.Label,
			Type:     n.Type,
			ParentID: n.ParentID,
			Metadata: immutable.WrapPropertiesClone(n.Metadata),
		}
		if n.Level != nil {
			node.HasLevel = true
			node.Level = *n.Level
		}
		g.nodes[node.ID] = &node
		g.nodeOrder = append(g.nodeOrder, node.ID)
	}
	for _, e := range in.Edges {
		edge := Edge{From: e.From, To: e.To, Type: e.Type, Label: e.Label, Metadata: immutable.WrapPropertiesClone(e.Metadata)}
		key := edgeKey{from: e.From, to: e.To}
		g.edges[key] = &edge
		g.edgeOrder = append(g.edgeOrder, key)
	}
	for _, l := range in.Layers {
		layer := Layer{Name: l.Name, Level: l.Level, Metadata: immutable.WrapPropertiesClone(l.Metadata)}
		g.layers[layer.Name] = &layer
		g.layerOrder = append(g.layerOrder, layer.Name)
	}
	g.metadata = immutable.WrapPropertiesClone(in.Metadata)
	return g, nil
}
