package serialize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/layerflow-org/lff/graphmodel"
	"github.com/layerflow-org/lff/immutable"
)

// directiveEntry is one rendered line in the directives section.
type directiveEntry struct {
	name  string
	value immutable.Value
}

// nodeEntry is the intermediate tree node built from the Graph AST,
// mirroring §3.3's NodeDef shape, used only for rendering.
type nodeEntry struct {
	label     string
	anchor    string
	types     []string
	levelSpec string
	props     []propEntry
	children  []*nodeEntry
}

type propEntry struct {
	key   string
	value immutable.Value
}

type edgeEntry struct {
	fromLabel string
	toLabel   string
	arrow     string
	label     string
}

// fixedDirectiveOrder is the order §4.6 specifies for well-known
// directive keys, before metadata.directives entries are appended.
var fixedDirectiveOrder = []string{"title", "description", "version", "author", "domain", "tags"}

// Serialize renders graph to LFF source text under opts (§4.6's
// serialize contract). It never fails: a graph with zero nodes renders
// to just its directive section (or an empty string).
func Serialize(g *graphmodel.Graph, opts Options) string {
	directives := buildDirectives(g, opts)
	roots := buildNodeTree(g, opts)
	edges := buildEdges(g, opts)

	var sections []string
	if s := renderDirectives(directives, opts); s != "" {
		sections = append(sections, s)
	}
	if s := renderNodes(roots, opts); s != "" {
		sections = append(sections, s)
	}
	if s := renderEdges(edges, opts); s != "" {
		sections = append(sections, s)
	}

	sep := strings.Repeat(opts.LineEndings.text(), opts.Spacing.BetweenSections+1)
	return strings.Join(sections, sep)
}

func buildDirectives(g *graphmodel.Graph, opts Options) []directiveEntry {
	meta := g.Metadata()
	var out []directiveEntry
	for _, key := range fixedDirectiveOrder {
		v, ok := meta.Get(key)
		if !ok {
			continue
		}
		out = append(out, directiveEntry{name: key, value: v})
	}
	if dv, ok := meta.Get("directives"); ok {
		if m, ok := dv.Map(); ok {
			var keys []string
			for k := range m.Keys() {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				val, _ := m.Get(k)
				out = append(out, directiveEntry{name: k, value: val})
			}
		}
	}
	if opts.Include.ParserMetadata {
		if pv, ok := meta.Get("parser"); ok {
			if m, ok := pv.Map(); ok {
				var keys []string
				for k := range m.Keys() {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					val, _ := m.Get(k)
					out = append(out, directiveEntry{name: k, value: val})
				}
			}
		}
	}
	if opts.Sorting.Directives {
		sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	}
	return out
}

func buildNodeTree(g *graphmodel.Graph, opts Options) []*nodeEntry {
	byID := make(map[string]*nodeEntry)
	for _, n := range g.GetAllNodes() {
		byID[n.ID] = nodeEntryFrom(n, opts)
	}
	var roots []*nodeEntry
	for _, n := range g.GetAllNodes() {
		entry := byID[n.ID]
		if n.ParentID == "" {
			roots = append(roots, entry)
			continue
		}
		if parent, ok := byID[n.ParentID]; ok {
			parent.children = append(parent.children, entry)
		} else {
			roots = append(roots, entry)
		}
	}
	sortNodeTree(roots, opts)
	return roots
}

func sortNodeTree(nodes []*nodeEntry, opts Options) {
	if opts.Sorting.Nodes {
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].label < nodes[j].label })
	}
	for _, n := range nodes {
		sortNodeTree(n.children, opts)
	}
}

func nodeEntryFrom(n graphmodel.GraphNode, opts Options) *nodeEntry {
	entry := &nodeEntry{label: n.Label}

	types := []string{}
	if n.Type != "" {
		types = append(types, n.Type)
	}

	var lffMeta map[string]any
	if opts.Include.LFFMetadata {
		if lv, ok := n.Metadata.Get("lff"); ok {
			if m, ok := lv.Map(); ok {
				lffMeta = m.Clone()
			}
		}
	}
	if lffMeta != nil {
		if anchor, ok := lffMeta["anchor"].(string); ok {
			entry.anchor = anchor
		}
		if spec, ok := lffMeta["level_spec"].(string); ok {
			entry.levelSpec = spec
		}
		if extra, ok := lffMeta["additional_types"].([]any); ok {
			for _, t := range extra {
				if s, ok := t.(string); ok {
					types = append(types, s)
				}
			}
		}
	}
	if entry.levelSpec == "" && n.HasLevel {
		entry.levelSpec = "@" + strconv.Itoa(n.Level)
	}
	entry.types = types

	for _, key := range n.Metadata.SortedKeys() {
		if key == "lff" || key == "parser" {
			continue
		}
		v, _ := n.Metadata.Get(key)
		entry.props = append(entry.props, propEntry{key: key, value: v})
	}
	return entry
}

func buildEdges(g *graphmodel.Graph, opts Options) []edgeEntry {
	labels := make(map[string]string)
	for _, n := range g.GetAllNodes() {
		labels[n.ID] = n.Label
	}
	all := g.GetAllEdges()
	out := make([]edgeEntry, 0, len(all))
	for _, e := range all {
		out = append(out, edgeEntry{
			fromLabel: labels[e.From],
			toLabel:   labels[e.To],
			arrow:     arrowSymbol(e.Type),
			label:     e.Label,
		})
	}
	if opts.Sorting.Edges {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].fromLabel+"-"+out[i].toLabel < out[j].fromLabel+"-"+out[j].toLabel
		})
	}
	return out
}

func renderDirectives(entries []directiveEntry, opts Options) string {
	if len(entries) == 0 {
		return ""
	}
	colon := ":"
	if opts.Spacing.AroundColons {
		colon = ": "
	}
	var lines []string
	for _, e := range entries {
		prefix := "@" + e.name + colon
		lines = append(lines, prefix+renderValueIndented(e.value, opts, prefix))
	}
	return strings.Join(lines, opts.LineEndings.text())
}

func renderNodes(roots []*nodeEntry, opts Options) string {
	if len(roots) == 0 {
		return ""
	}
	var lines []string
	for _, r := range roots {
		renderNode(r, 0, opts, &lines)
	}
	return strings.Join(lines, opts.LineEndings.text())
}

func renderNode(n *nodeEntry, depth int, opts Options, lines *[]string) {
	indent := strings.Repeat(indentUnit(opts.Indentation), depth)
	header := n.label
	if n.anchor != "" {
		header += "&" + n.anchor
	}
	if len(n.types) > 0 {
		header += " [" + strings.Join(n.types, ", ") + "]"
	}
	if n.levelSpec != "" {
		header += " " + n.levelSpec
	}
	if len(n.props) == 0 && len(n.children) == 0 {
		*lines = append(*lines, indent+header)
		return
	}
	header += ":"
	*lines = append(*lines, indent+header)

	colon := ":"
	if opts.Spacing.AroundColons {
		colon = ": "
	}
	propIndent := indent + indentUnit(opts.Indentation)
	propLines := make([]string, len(n.props))
	for i, p := range n.props {
		propLines[i] = propIndent + p.key + colon + renderValueIndented(p.value, opts, propIndent+p.key+colon)
	}
	wrapped := false
	for _, line := range propLines {
		if strings.Contains(line, "\n") {
			wrapped = true
		}
	}
	if opts.Formatting.AlignValues && len(propLines) > 0 && !wrapped {
		alignPropertyLines(n.props, propIndent, colon, opts, propLines)
	}
	*lines = append(*lines, propLines...)

	for _, child := range n.children {
		renderNode(child, depth+1, opts, lines)
	}
}

func alignPropertyLines(props []propEntry, prefix, colon string, opts Options, out []string) {
	maxKeyLen := 0
	for _, p := range props {
		if len(p.key) > maxKeyLen {
			maxKeyLen = len(p.key)
		}
	}
	for i, p := range props {
		padding := strings.Repeat(" ", maxKeyLen-len(p.key))
		out[i] = prefix + p.key + padding + colon + renderValue(p.value, opts.Quotes)
	}
}

func renderEdges(edges []edgeEntry, opts Options) string {
	if len(edges) == 0 {
		return ""
	}
	space := ""
	if opts.Spacing.AroundArrows {
		space = " "
	}
	var lines []string
	for _, e := range edges {
		line := e.fromLabel + space + e.arrow + space + e.toLabel
		if e.label != "" {
			colon := ":"
			if opts.Spacing.AroundColons {
				colon = ": "
			}
			line += colon + quoteString(e.label, opts.Quotes)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, opts.LineEndings.text())
}

