package graphmodel

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/immutable"
)

// ErrEmptyNodeID indicates [Graph.AddNode] was called with an empty ID
// while auto-generation is disabled.
var ErrEmptyNodeID = fmt.Errorf("%w: node ID is empty and auto-generation is disabled", ErrInternal)

// Graph is an in-memory Graph AST (§3.4): nodes, edges, and layers, with
// hierarchy and level bookkeeping layered on top.
//
// Graph is safe for concurrent use from multiple goroutines; all exported
// methods take the internal lock for their full duration.
type Graph struct {
	mu     sync.RWMutex
	config graphConfig

	nodes     map[string]*GraphNode
	nodeOrder []string

	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey

	layers     map[string]*Layer
	layerOrder []string

	metadata   immutable.Properties
	createdAt  time.Time
	modifiedAt time.Time
}

// New constructs an empty Graph. The construction time is reported by
// [Graph.CreatedAt]; every subsequent mutation updates [Graph.ModifiedAt].
// Neither timestamp is written into the [Graph.Metadata] map.
func New(opts ...GraphOption) *Graph {
	cfg := graphConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	now := time.Now()
	return &Graph{
		config:     cfg,
		nodes:      make(map[string]*GraphNode),
		edges:      make(map[edgeKey]*Edge),
		layers:     make(map[string]*Layer),
		metadata:   immutable.WrapPropertiesClone(cfg.defaultMetadata),
		createdAt:  now,
		modifiedAt: now,
	}
}

// CreatedAt reports when the graph was constructed.
func (g *Graph) CreatedAt() time.Time { return g.createdAt }

// ModifiedAt reports the timestamp of the most recent mutation.
func (g *Graph) ModifiedAt() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.modifiedAt
}

// Metadata returns the graph-level metadata map (§3.4): reserved keys
// title, description, version, created, modified, tags, domain,
// directives, parser, lff.
func (g *Graph) Metadata() immutable.Properties {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.metadata
}

// SetMetadata replaces the graph-level metadata map and touches
// modifiedAt.
func (g *Graph) SetMetadata(m map[string]any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.metadata = immutable.WrapPropertiesClone(m)
	g.touchLocked()
}

func (g *Graph) touchLocked() {
	g.modifiedAt = time.Now()
	if g.config.logger != nil {
		g.config.logger.Debug("graphmodel: graph modified")
	}
}

func generateFallbackID() string {
	return "node_" + uuid.NewString()
}

// AddNode adds a node to the graph (§6.2's add_node). A caller-supplied
// empty ID is auto-generated when [WithAutoGenerateIDs] is set; otherwise
// it is [ErrEmptyNodeID], a programmer error, not a data diagnostic.
func (g *Graph) AddNode(partial GraphNode) (GraphNode, diag.Result, error) {
	if g == nil {
		return GraphNode{}, diag.OK(), ErrNilGraph
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	collector := diag.NewCollectorUnlimited()

	id := partial.ID
	if id == "" {
		if !g.config.autoGenerateIDs {
			return GraphNode{}, diag.OK(), ErrEmptyNodeID
		}
		id = generateFallbackID()
	}

	if _, exists := g.nodes[id]; exists {
		collector.Collect(diag.NewIssue(diag.Error, diag.DUPLICATE_NODE_ID,
			"node ID \""+id+"\" already exists").Build())
		return GraphNode{}, collector.Result(), nil
	}

	if g.config.maxNodes > 0 && len(g.nodes) >= g.config.maxNodes {
		collector.Collect(diag.NewIssue(diag.Error, diag.MAX_NODES_EXCEEDED,
			"node count limit reached").Build())
		return GraphNode{}, collector.Result(), nil
	}

	if partial.ParentID != "" {
		if _, ok := g.nodes[partial.ParentID]; !ok {
			collector.Collect(diag.NewIssue(diag.Error, diag.PARENT_NOT_FOUND,
				"parent \""+partial.ParentID+"\" does not exist").Build())
			return GraphNode{}, collector.Result(), nil
		}
	}

	node := partial
	node.ID = id
	g.nodes[id] = &node
	g.nodeOrder = append(g.nodeOrder, id)
	g.touchLocked()
	if g.config.logger != nil {
		g.config.logger.Debug("graphmodel: node added", "id", id, "label", node.Label)
	}
	return node, collector.Result(), nil
}

// NodePatch describes a partial update to a node (§6.2's update_node). A
// nil field is left unchanged; Clear* flags explicitly unset an optional
// field, distinguishing "leave alone" from "remove".
type NodePatch struct {
	Label      *string
	Type       *string
	Level      *int
	ClearLevel bool

	ParentID      *string
	ClearParentID bool

	// Metadata, when non-nil, is merged key-by-key into the existing
	// metadata map (new keys added, existing keys overwritten).
	Metadata map[string]any
}

// UpdateNode applies patch to the node identified by id. Changing
// ParentID is re-validated against the existing-parent and
// no-cycle invariants (§3.4); the node is left unchanged if either fails.
func (g *Graph) UpdateNode(id string, patch NodePatch) (GraphNode, diag.Result, error) {
	if g == nil {
		return GraphNode{}, diag.OK(), ErrNilGraph
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	collector := diag.NewCollectorUnlimited()
	node, ok := g.nodes[id]
	if !ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
			"node \""+id+"\" does not exist").Build())
		return GraphNode{}, collector.Result(), nil
	}

	newParentID := node.ParentID
	switch {
	case patch.ClearParentID:
		newParentID = ""
	case patch.ParentID != nil:
		newParentID = *patch.ParentID
	}
	if newParentID != "" && newParentID != node.ParentID {
		if _, ok := g.nodes[newParentID]; !ok {
			collector.Collect(diag.NewIssue(diag.Error, diag.PARENT_NOT_FOUND,
				"parent \""+newParentID+"\" does not exist").Build())
			return *node, collector.Result(), nil
		}
		if g.introducesCycleLocked(id, newParentID) {
			collector.Collect(diag.NewIssue(diag.Error, diag.CIRCULAR_PARENT_REFERENCE,
				"assigning parent \""+newParentID+"\" to \""+id+"\" would create a cycle").Build())
			return *node, collector.Result(), nil
		}
	}

	updated := *node
	if patch.Label != nil {
		updated.Label = *patch.Label
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	switch {
	case patch.ClearLevel:
		updated.HasLevel = false
		updated.Level = 0
	case patch.Level != nil:
		updated.HasLevel = true
		updated.Level = *patch.Level
	}
	updated.ParentID = newParentID
	if patch.Metadata != nil {
		merged := node.Metadata.Clone()
		if merged == nil {
			merged = make(map[string]any, len(patch.Metadata))
		}
		for k, v := range patch.Metadata {
			merged[k] = v
		}
		updated.Metadata = immutable.WrapPropertiesClone(merged)
	}

	g.nodes[id] = &updated
	g.touchLocked()
	return updated, collector.Result(), nil
}

// introducesCycleLocked reports whether making candidateParent the parent
// of id would put id on its own ancestor path. Caller must hold the lock.
func (g *Graph) introducesCycleLocked(id, candidateParent string) bool {
	visited := make(map[string]bool)
	cur := candidateParent
	for cur != "" {
		if cur == id {
			return true
		}
		if visited[cur] {
			return true // pre-existing cycle elsewhere; treat as blocking too
		}
		visited[cur] = true
		parent, ok := g.nodes[cur]
		if !ok {
			return false
		}
		cur = parent.ParentID
	}
	return false
}

// RemoveNode removes a node, any edges touching it, and reparents its
// direct children to the root (ParentID = ""). Reports whether the node
// existed.
func (g *Graph) RemoveNode(id string) bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)
	g.nodeOrder = removeString(g.nodeOrder, id)

	for _, n := range g.nodes {
		if n.ParentID == id {
			n.ParentID = ""
		}
	}

	var remainingEdges []edgeKey
	for _, k := range g.edgeOrder {
		if k.from == id || k.to == id {
			delete(g.edges, k)
			continue
		}
		remainingEdges = append(remainingEdges, k)
	}
	g.edgeOrder = remainingEdges

	g.touchLocked()
	return true
}

// GetNode returns the node with the given ID.
func (g *Graph) GetNode(id string) (GraphNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return GraphNode{}, false
	}
	return *n, true
}

// GetAllNodes returns every node in insertion order.
func (g *Graph) GetAllNodes() []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]GraphNode, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, *g.nodes[id])
	}
	return out
}

// AddEdge adds an edge to the graph (§6.2's add_edge), enforcing that both
// endpoints exist, self-loops are permitted only when configured, and the
// ordered (from, to) pair is not already present.
func (g *Graph) AddEdge(e Edge) (Edge, diag.Result, error) {
	if g == nil {
		return Edge{}, diag.OK(), ErrNilGraph
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	collector := diag.NewCollectorUnlimited()

	if _, ok := g.nodes[e.From]; !ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
			"edge \"from\" references unknown node \""+e.From+"\"").Build())
	}
	if _, ok := g.nodes[e.To]; !ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
			"edge \"to\" references unknown node \""+e.To+"\"").Build())
	}
	if collector.Result().HasErrors() {
		return Edge{}, collector.Result(), nil
	}

	if e.From == e.To && !g.config.allowSelfLoops {
		collector.Collect(diag.NewIssue(diag.Error, diag.SELF_LOOP_EDGE,
			"self-loop edge on \""+e.From+"\" is not allowed").Build())
		return Edge{}, collector.Result(), nil
	}

	key := edgeKey{from: e.From, to: e.To}
	if _, exists := g.edges[key]; exists {
		collector.Collect(diag.NewIssue(diag.Error, diag.DUPLICATE_EDGE,
			"duplicate edge from \""+e.From+"\" to \""+e.To+"\"").Build())
		return Edge{}, collector.Result(), nil
	}

	if g.config.maxEdges > 0 && len(g.edges) >= g.config.maxEdges {
		collector.Collect(diag.NewIssue(diag.Error, diag.MAX_EDGES_EXCEEDED,
			"edge count limit reached").Build())
		return Edge{}, collector.Result(), nil
	}

	g.edges[key] = &e
	g.edgeOrder = append(g.edgeOrder, key)
	g.touchLocked()
	return e, collector.Result(), nil
}

// RemoveEdge removes the edge for the ordered (from, to) pair, reporting
// whether it existed.
func (g *Graph) RemoveEdge(from, to string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := edgeKey{from: from, to: to}
	if _, ok := g.edges[key]; !ok {
		return false
	}
	delete(g.edges, key)
	g.edgeOrder = removeEdgeKey(g.edgeOrder, key)
	g.touchLocked()
	return true
}

// GetEdge returns the edge for the ordered (from, to) pair.
func (g *Graph) GetEdge(from, to string) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[edgeKey{from: from, to: to}]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// GetAllEdges returns every edge in insertion order.
func (g *Graph) GetAllEdges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, k := range g.edgeOrder {
		out = append(out, *g.edges[k])
	}
	return out
}

// GetConnectedEdges returns every edge touching id, in insertion order.
func (g *Graph) GetConnectedEdges(id string) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Edge
	for _, k := range g.edgeOrder {
		if k.from == id || k.to == id {
			out = append(out, *g.edges[k])
		}
	}
	return out
}

// GetChildNodes returns the direct children of id, in insertion order.
func (g *Graph) GetChildNodes(id string) []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []GraphNode
	for _, nid := range g.nodeOrder {
		n := g.nodes[nid]
		if n.ParentID == id {
			out = append(out, *n)
		}
	}
	return out
}

// GetParentNode returns id's parent, if it has one.
func (g *Graph) GetParentNode(id string) (GraphNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok || n.ParentID == "" {
		return GraphNode{}, false
	}
	parent, ok := g.nodes[n.ParentID]
	if !ok {
		return GraphNode{}, false
	}
	return *parent, true
}

// SetNodeParent reassigns id's parent, rejecting a parent that does not
// exist or would introduce a cycle.
func (g *Graph) SetNodeParent(id, parentID string) (diag.Result, error) {
	patch := NodePatch{ParentID: &parentID}
	if parentID == "" {
		patch = NodePatch{ClearParentID: true}
	}
	_, result, err := g.UpdateNode(id, patch)
	return result, err
}

// GetRootNodes returns every node with no parent, in insertion order.
func (g *Graph) GetRootNodes() []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []GraphNode
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		if n.ParentID == "" {
			out = append(out, *n)
		}
	}
	return out
}

// GetNodePath returns the chain of nodes from the root down to id,
// inclusive. Reports false if id does not exist.
func (g *Graph) GetNodePath(id string) ([]GraphNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	var chain []GraphNode
	visited := make(map[string]bool)
	for n != nil {
		if visited[n.ID] {
			break // defends against a parent cycle that slipped past SetNodeParent
		}
		visited[n.ID] = true
		chain = append(chain, *n)
		if n.ParentID == "" {
			break
		}
		n = g.nodes[n.ParentID]
	}
	slices.Reverse(chain)
	return chain, true
}

// GetNodesAtLevel returns every node whose level equals level, in
// insertion order.
func (g *Graph) GetNodesAtLevel(level int) []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []GraphNode
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		if n.HasLevel && n.Level == level {
			out = append(out, *n)
		}
	}
	return out
}

// GetAllLevels returns every distinct level present among the graph's
// nodes, ascending.
func (g *Graph) GetAllLevels() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[int]bool)
	var levels []int
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		if n.HasLevel && !seen[n.Level] {
			seen[n.Level] = true
			levels = append(levels, n.Level)
		}
	}
	slices.Sort(levels)
	return levels
}

// MoveNodeToLevel sets id's level.
func (g *Graph) MoveNodeToLevel(id string, level int) (diag.Result, error) {
	lvl := level
	_, result, err := g.UpdateNode(id, NodePatch{Level: &lvl})
	return result, err
}

// UpsertLayer adds or replaces a named layer.
func (g *Graph) UpsertLayer(l Layer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.layers[l.Name]; !exists {
		g.layerOrder = append(g.layerOrder, l.Name)
	}
	g.layers[l.Name] = &l
	g.touchLocked()
}

// GetLayer returns the named layer.
func (g *Graph) GetLayer(name string) (Layer, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	l, ok := g.layers[name]
	if !ok {
		return Layer{}, false
	}
	return *l, true
}

// RemoveLayer removes the named layer, reporting whether it existed.
func (g *Graph) RemoveLayer(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.layers[name]; !ok {
		return false
	}
	delete(g.layers, name)
	g.layerOrder = removeString(g.layerOrder, name)
	g.touchLocked()
	return true
}

// GetAllLayers returns every layer in insertion order.
func (g *Graph) GetAllLayers() []Layer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Layer, 0, len(g.layerOrder))
	for _, name := range g.layerOrder {
		out = append(out, *g.layers[name])
	}
	return out
}

// FindNodes returns every node for which predicate reports true, in
// insertion order.
func (g *Graph) FindNodes(predicate func(GraphNode) bool) []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []GraphNode
	for _, id := range g.nodeOrder {
		n := *g.nodes[id]
		if predicate(n) {
			out = append(out, n)
		}
	}
	return out
}

// FindNodesByType returns every node whose Type equals t.
func (g *Graph) FindNodesByType(t string) []GraphNode {
	return g.FindNodes(func(n GraphNode) bool { return n.Type == t })
}

// GetNeighbors returns every node reachable from id via one edge in either
// direction, deduplicated, sorted by ID for determinism.
func (g *Graph) GetNeighbors(id string) []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[string]bool)
	var neighborIDs []string
	for _, k := range g.edgeOrder {
		switch id {
		case k.from:
			if !seen[k.to] {
				seen[k.to] = true
				neighborIDs = append(neighborIDs, k.to)
			}
		case k.to:
			if !seen[k.from] {
				seen[k.from] = true
				neighborIDs = append(neighborIDs, k.from)
			}
		}
	}
	slices.SortFunc(neighborIDs, cmp.Compare)
	out := make([]GraphNode, 0, len(neighborIDs))
	for _, nid := range neighborIDs {
		if n, ok := g.nodes[nid]; ok {
			out = append(out, *n)
		}
	}
	return out
}

// Validate re-checks the graph-level invariants from §3.4 (node ID
// uniqueness, edge endpoint existence, parent chain acyclicity and
// existence, self-loop policy, duplicate edges). It is distinct from the
// LFF semantic validator (§4.4): this validates the Graph AST's own
// internal consistency, not LFF source semantics.
func (g *Graph) Validate() diag.Result {
	g.mu.RLock()
	defer g.mu.RUnlock()

	collector := diag.NewCollectorUnlimited()
	seenNodes := make(map[string]bool, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		if seenNodes[id] {
			collector.Collect(diag.NewIssue(diag.Error, diag.DUPLICATE_NODE_ID,
				"node ID \""+id+"\" appears more than once").Build())
			continue
		}
		seenNodes[id] = true
		n := g.nodes[id]
		if n.ParentID == "" {
			continue
		}
		if _, ok := g.nodes[n.ParentID]; !ok {
			collector.Collect(diag.NewIssue(diag.Error, diag.PARENT_NOT_FOUND,
				"node \""+id+"\" has parent \""+n.ParentID+"\" which does not exist").Build())
			continue
		}
		if g.introducesCycleLocked(id, n.ParentID) {
			collector.Collect(diag.NewIssue(diag.Error, diag.CIRCULAR_PARENT_REFERENCE,
				"node \""+id+"\" is on its own ancestor path").Build())
		}
	}
	seenEdges := make(map[edgeKey]bool, len(g.edgeOrder))
	for _, k := range g.edgeOrder {
		if seenEdges[k] {
			collector.Collect(diag.NewIssue(diag.Error, diag.DUPLICATE_EDGE,
				"duplicate edge from \""+k.from+"\" to \""+k.to+"\"").Build())
			continue
		}
		seenEdges[k] = true
		if _, ok := g.nodes[k.from]; !ok {
			collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
				"edge \"from\" references unknown node \""+k.from+"\"").Build())
		}
		if _, ok := g.nodes[k.to]; !ok {
			collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
				"edge \"to\" references unknown node \""+k.to+"\"").Build())
		}
		if k.from == k.to && !g.config.allowSelfLoops {
			collector.Collect(diag.NewIssue(diag.Error, diag.SELF_LOOP_EDGE,
				"self-loop edge on \""+k.from+"\" is not allowed").Build())
		}
	}
	return collector.Result()
}

func removeString(s []string, target string) []string {
	return slices.DeleteFunc(s, func(v string) bool { return v == target })
}

func removeEdgeKey(s []edgeKey, target edgeKey) []edgeKey {
	return slices.DeleteFunc(s, func(k edgeKey) bool { return k == target })
}
