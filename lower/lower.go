// Package lower implements C5, AST-to-Graph lowering (§4.5): it turns a
// parsed and validated [ast.Document] into a [graphmodel.Graph], assigning
// node IDs, computing hierarchy levels, resolving anchor references, and
// composing per-node and graph-level metadata.
package lower

import (
	"regexp"
	"strconv"
	"time"

	"github.com/layerflow-org/lff/ast"
	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/graphmodel"
	"github.com/layerflow-org/lff/immutable"
)

var (
	exactLevelPattern = regexp.MustCompile(`^@([0-9]+)$`)
	rangeLevelPattern = regexp.MustCompile(`^@([0-9]+)[+-]`)
)

// Metrics reports statistics about a lowering run (§4.5's "metrics").
type Metrics struct {
	NodeCount        int
	EdgeCount        int
	DroppedEdgeCount int
	DurationMS       float64
}

// Result is to_graph's return shape: the graph (nil unless lowering
// produced zero errors), the collected diagnostics, and run metrics.
type Result struct {
	Graph    *graphmodel.Graph
	Errors   []diag.Issue
	Warnings []diag.Issue
	Metrics  Metrics
}

var knownDirectiveMetadataKeys = map[string]bool{
	"title": true, "description": true, "version": true, "author": true, "domain": true,
}

// Lower runs C5 over doc, returning a populated graph unless strict-mode
// promotion or a structural failure (an unresolved anchor reference, a
// node ID collision) leaves at least one error.
func Lower(doc ast.Document, opts ...Option) Result {
	start := time.Now()
	o := resolveOptions(opts)

	l := &lowerer{
		doc:       doc,
		opts:      o,
		graph:     graphmodel.New(graphmodel.WithAllowSelfLoops(true)),
		collector: diag.NewCollectorUnlimited(),
		anchors:   make(map[string]string),
		names:     make(map[string]string),
		seenIDs:   make(map[string]bool),
	}

	l.assignGraphMetadata()
	l.lowerNodes(doc.Nodes, "")
	droppedEdges := l.lowerEdges()

	return l.buildResult(o, start, droppedEdges)
}

type lowerer struct {
	doc       ast.Document
	opts      Options
	graph     *graphmodel.Graph
	collector *diag.Collector

	// anchors maps every non-empty NodeDef.Anchor to the generated ID of
	// the node that declared it, built during lowerNodes before any edge
	// is resolved (the two-pass scheme from §4.5).
	anchors map[string]string

	// names maps a NodeDef.Name to the first node assigned that name, for
	// resolving plain (non-anchor) edge endpoints. First declaration
	// wins when a name is reused.
	names   map[string]string
	seenIDs map[string]bool
}

func (l *lowerer) buildResult(o Options, start time.Time, droppedEdges int) Result {
	var errs, warnings []diag.Issue
	for issue := range l.collector.Result().Issues() {
		sev := issue.Severity()
		if o.StrictMode && sev == diag.Warning {
			sev = diag.Error
		}
		if sev <= diag.Error {
			errs = append(errs, issue)
		} else {
			warnings = append(warnings, issue)
		}
	}

	metrics := Metrics{
		NodeCount:        len(l.graph.GetAllNodes()),
		EdgeCount:        len(l.graph.GetAllEdges()),
		DroppedEdgeCount: droppedEdges,
		DurationMS:       float64(time.Since(start).Microseconds()) / 1000.0,
	}

	result := Result{Errors: errs, Warnings: warnings, Metrics: metrics}
	if len(errs) == 0 {
		result.Graph = l.graph
	}
	return result
}

// assignGraphMetadata applies the directive-to-metadata mapping table
// (§4.7): title/description/version/author/domain become scalar graph
// metadata fields, tags becomes an array, strict becomes a coerced bool,
// and anything else is namespaced under metadata.directives[name].
func (l *lowerer) assignGraphMetadata() {
	meta := make(map[string]any)
	var directives map[string]any
	for _, d := range l.doc.Directives {
		name := directiveName(d.Name)
		switch {
		case name == "tags":
			meta["tags"] = toTagArray(meta["tags"], d.Value)
		case name == "strict":
			meta["strict"] = coerceBool(d.Value)
		case knownDirectiveMetadataKeys[name]:
			meta[name] = valueToAny(d.Value)
		default:
			if directives == nil {
				directives = make(map[string]any)
			}
			directives[name] = valueToAny(d.Value)
		}
	}
	if directives != nil {
		meta["directives"] = directives
	}
	l.graph.SetMetadata(meta)
}

func directiveName(raw string) string {
	if len(raw) > 0 && raw[0] == '@' {
		return raw[1:]
	}
	return raw
}

func toTagArray(existing any, v ast.Value) []any {
	var out []any
	if arr, ok := existing.([]any); ok {
		out = arr
	}
	if items, ok := v.Array(); ok {
		for _, item := range items {
			out = append(out, valueToAny(item))
		}
		return out
	}
	return append(out, valueToAny(v))
}

func coerceBool(v ast.Value) bool {
	if b, ok := v.Bool(); ok {
		return b
	}
	if s, ok := v.String(); ok {
		return s == "true" || s == "yes" || s == "1"
	}
	return false
}

func valueToAny(v ast.Value) any {
	switch v.Kind() {
	case ast.ValueString:
		s, _ := v.String()
		return s
	case ast.ValueNumber:
		n, _ := v.Number()
		return n
	case ast.ValueBool:
		b, _ := v.Bool()
		return b
	case ast.ValueArray:
		items, _ := v.Array()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, valueToAny(item))
		}
		return out
	default:
		return nil
	}
}

// lowerNodes walks nodes in pre-order, assigning each an ID before
// recursing into its children so a child's parent is always already
// present in the graph (graphmodel.AddNode requires an existing parent).
func (l *lowerer) lowerNodes(nodes []ast.NodeDef, parentID string) {
	var parentLevel int
	var hasParentLevel bool
	if parentID != "" {
		if parent, ok := l.graph.GetNode(parentID); ok {
			hasParentLevel = parent.HasLevel
			parentLevel = parent.Level
		}
	}

	for _, n := range nodes {
		id := l.assignID(n)
		if n.Anchor != "" {
			l.anchors[n.Anchor] = id
		}
		if _, exists := l.names[n.Name]; !exists {
			l.names[n.Name] = id
		}

		level, hasLevel := computeLevel(n.LevelSpec, parentLevel, hasParentLevel, parentID == "")

		nodeType := l.opts.DefaultNodeType
		var additionalTypes []string
		if len(n.Types) > 0 {
			nodeType = n.Types[0]
			additionalTypes = n.Types[1:]
		}

		metadata := l.composeNodeMetadata(n, additionalTypes)

		node := graphmodel.GraphNode{
			ID:       id,
			Label:    n.Name,
			Type:     nodeType,
			Level:    level,
			HasLevel: hasLevel,
			ParentID: parentID,
			Metadata: immutable.WrapPropertiesClone(metadata),
		}
		if _, result, err := l.graph.AddNode(node); err != nil {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.DUPLICATE_NODE_ID,
				"failed to add node \""+n.Name+"\": "+err.Error()).WithSpan(n.Span).Build())
		} else {
			for issue := range result.Issues() {
				l.collector.Collect(issue)
			}
		}

		l.lowerNodes(n.Children, id)
	}
}

func (l *lowerer) assignID(n ast.NodeDef) string {
	if l.opts.GenerateUniqueIDs {
		return generateUniqueID()
	}
	base := sanitizeID(n.Name)
	id := base
	suffix := 2
	for l.seenIDs[id] {
		l.collector.Collect(diag.NewIssue(diag.Warning, diag.DUPLICATE_NODE_ID,
			"sanitized ID \""+id+"\" for node \""+n.Name+"\" collides with an earlier node").
			WithSpan(n.Span).Build())
		id = base + "_" + strconv.Itoa(suffix)
		suffix++
	}
	l.seenIDs[id] = true
	return id
}

// computeLevel applies the three-rule level computation from §4.5: an
// exact "@N" spec wins outright; a range spec ("@N+" or "@N-M") sets the
// level to its lower bound; otherwise a node inherits parent level + 1,
// and a root defaults to level 0.
func computeLevel(spec string, parentLevel int, hasParentLevel, isRoot bool) (int, bool) {
	if m := exactLevelPattern.FindStringSubmatch(spec); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if m := rangeLevelPattern.FindStringSubmatch(spec); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if isRoot {
		return 0, true
	}
	if hasParentLevel {
		return parentLevel + 1, true
	}
	return 0, false
}

func (l *lowerer) composeNodeMetadata(n ast.NodeDef, additionalTypes []string) map[string]any {
	meta := make(map[string]any, len(n.Properties)+1)
	for _, p := range n.Properties {
		meta[p.Key] = valueToAny(p.Value)
	}
	if l.opts.PreserveLFFMetadata {
		lff := map[string]any{
			"original_name": n.Name,
			"location":      n.Span.String(),
		}
		if n.Anchor != "" {
			lff["anchor"] = n.Anchor
		}
		if len(additionalTypes) > 0 {
			types := make([]any, len(additionalTypes))
			for i, t := range additionalTypes {
				types[i] = t
			}
			lff["additional_types"] = types
		}
		if n.LevelSpec != "" {
			lff["level_spec"] = n.LevelSpec
		}
		meta["lff"] = lff
	}
	return meta
}

// lowerEdges resolves every EdgeDef in source order, after every node has
// been assigned an ID, and adds them to the graph. An endpoint that
// starts with "*" is an anchor reference, resolved against the map built
// in lowerNodes; an unresolved reference drops the edge and reports
// INVALID_NODE_REFERENCE. Returns the number of dropped edges.
func (l *lowerer) lowerEdges() int {
	dropped := 0
	for _, e := range l.doc.Edges {
		fromID, ok := l.resolveEndpoint(e.From)
		if !ok {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
				"edge \"from\" endpoint \""+e.From+"\" does not resolve to any node").
				WithSpan(e.Span).Build())
			dropped++
			continue
		}
		toID, ok := l.resolveEndpoint(e.To)
		if !ok {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
				"edge \"to\" endpoint \""+e.To+"\" does not resolve to any node").
				WithSpan(e.Span).Build())
			dropped++
			continue
		}

		edgeType := l.opts.DefaultEdgeType
		if e.Arrow != ast.ArrowSimple {
			edgeType = e.Arrow.String()
		}

		_, result, err := l.graph.AddEdge(graphmodel.Edge{
			From:  fromID,
			To:    toID,
			Type:  edgeType,
			Label: e.Label,
		})
		if err != nil {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_NODE_REFERENCE,
				"failed to add edge: "+err.Error()).WithSpan(e.Span).Build())
			dropped++
			continue
		}
		hasErr := false
		for issue := range result.Issues() {
			l.collector.Collect(issue)
			if issue.Severity() <= diag.Error {
				hasErr = true
			}
		}
		if hasErr {
			dropped++
		}
	}
	return dropped
}

// resolveEndpoint resolves an edge endpoint — either "*anchor" or a plain
// node name — to a generated node ID, using the maps lowerNodes built
// while assigning IDs (the two-pass scheme from §4.5).
func (l *lowerer) resolveEndpoint(ref string) (string, bool) {
	if len(ref) > 0 && ref[0] == '*' {
		id, ok := l.anchors[ref[1:]]
		return id, ok
	}
	id, ok := l.names[ref]
	return id, ok
}
