package ast

import (
	"regexp"
	"strconv"

	"github.com/layerflow-org/lff/cst"
	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/internal/textlit"
	"github.com/layerflow-org/lff/lexer"
	"github.com/layerflow-org/lff/location"
)

var (
	anchorNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,31}$`)
	levelSpecPattern  = regexp.MustCompile(`^@([1-9]\d*)(\+|-([1-9]\d*))?$`)
)

// Lower walks a concrete syntax tree produced by [cst.Builder.Parse] and
// builds the LFF AST (§3.3, §4.3). Lower never aborts: a malformed
// construct is recorded as a diagnostic and the rest of the tree is still
// lowered, mirroring the CST builder's own never-abort contract.
//
// Directives and edges encountered nested inside a node's block are
// promoted to the document's top level regardless of their source
// position (§4.3) — Lower is a single stateful pass over the whole tree
// for exactly this reason: a purely recursive per-node function has
// nowhere to put a directive found three levels deep.
func Lower(root *cst.Node, info lexer.SourceInfo, opts ...Option) (Document, diag.Result) {
	o := resolveOptions(opts)
	l := &lowerer{collector: diag.NewCollectorUnlimited(), opts: o}

	var nodes []NodeDef
	if root != nil {
		nodes = l.lowerBlock(root.Children)
	}

	doc := Document{
		Nodes:      nodes,
		Edges:      l.edges,
		Directives: l.directives,
		Comments:   l.comments,
		SourceInfo: SourceInfo{Length: info.Length, LineCount: info.LineCount, Encoding: info.Encoding},
	}
	return doc, l.collector.Result()
}

type lowerer struct {
	collector  *diag.Collector
	opts       Options
	directives []DirectiveDef
	edges      []EdgeDef
	comments   []string
}

// lowerBlock lowers one level of siblings (the document's top level, or a
// NodeBlock's children), returning only the NodeDefs among them: Directive
// and Edge siblings are accumulated onto the lowerer itself rather than
// returned, since both are promoted to the document's top level.
func (l *lowerer) lowerBlock(children []*cst.Node) []NodeDef {
	var nodes []NodeDef
	for _, child := range children {
		switch child.Kind {
		case cst.KindComment:
			if l.opts.IncludeComments {
				l.comments = append(l.comments, child.Text())
			}
		case cst.KindDirective:
			l.directives = append(l.directives, l.lowerDirective(child))
		case cst.KindEdge:
			l.edges = append(l.edges, l.lowerEdge(child))
		case cst.KindNode:
			nodes = append(nodes, l.lowerNode(child))
		case cst.KindProperty:
			// A bare top-level Property never occurs: the CST only produces
			// KindProperty for children nested inside a NodeBlock, and those
			// are consumed directly in lowerNode below. Reaching here would
			// mean a Property survived to this level unexpectedly; treat it
			// defensively as a node-shaped property is meaningless here, so
			// it is dropped with a diagnostic rather than silently ignored.
			l.collector.Collect(diag.NewIssue(diag.Error, diag.SYNTAX_ERROR,
				"property cannot appear outside a node block").WithSpan(child.Span).Build())
		}
	}
	return nodes
}

func (l *lowerer) lowerDirective(c *cst.Node) DirectiveDef {
	def := DirectiveDef{Name: c.Text(), Span: c.Span}
	if len(c.Children) > 0 {
		def.Value = l.lowerValue(c.Children[0])
	} else {
		def.Value = Null()
	}
	return def
}

func (l *lowerer) lowerEdge(c *cst.Node) EdgeDef {
	def := EdgeDef{Span: c.Span}
	if len(c.Children) < 3 {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.MISSING_EDGE_ENDPOINT,
			"edge is missing an endpoint").WithSpan(c.Span).Build())
		return def
	}
	def.From = l.refText(c.Children[0])
	def.Arrow = l.arrowKind(c.Children[1])
	def.To = l.refText(c.Children[2])
	if len(c.Children) > 3 {
		def.Label = l.lowerValue(c.Children[3]).Text()
	}
	return def
}

func (l *lowerer) arrowKind(c *cst.Node) ArrowKind {
	switch c.Token.Kind {
	case lexer.KindArrowSimple:
		return ArrowSimple
	case lexer.KindArrowMultiple:
		return ArrowMultiple
	case lexer.KindArrowBidirectional:
		return ArrowBidirectional
	case lexer.KindArrowDashed:
		return ArrowDashed
	default:
		l.collector.Collect(diag.NewIssue(diag.Error, diag.UNKNOWN_ARROW,
			"unrecognized arrow symbol "+c.Text()).WithSpan(c.Span).Build())
		return ArrowSimple
	}
}

// refText lowers a NodeRef: a StringLiteral endpoint is quote-stripped and
// unescaped like any other string value, while an Identifier or an
// AnchorRef's "*name" form is already the bare text C5 needs.
func (l *lowerer) refText(ref *cst.Node) string {
	if ref.Token.Kind == lexer.KindStringLiteral {
		return l.convertString(ref.Token.Image, ref.Span)
	}
	return ref.Token.Image
}

func (l *lowerer) convertString(image string, span location.Span) string {
	s, err := textlit.ConvertString(image)
	if err != nil {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_ESCAPE, err.Error()).WithSpan(span).Build())
		return image
	}
	return s
}

// lowerValue lowers a Value or ArrayLiteral CST node into an [ast.Value].
func (l *lowerer) lowerValue(c *cst.Node) Value {
	if c.Kind == cst.KindArrayLiteral {
		items := make([]Value, 0, len(c.Children))
		for _, item := range c.Children {
			items = append(items, l.lowerValue(item))
		}
		return NewArray(items)
	}

	tok := c.Token
	switch tok.Kind {
	case lexer.KindStringLiteral:
		return NewString(l.convertString(tok.Image, c.Span))
	case lexer.KindNumberLiteral:
		n, err := strconv.ParseFloat(tok.Image, 64)
		if err != nil {
			l.collector.Collect(diag.NewIssue(diag.Warning, diag.INVALID_NUMBER,
				"could not parse number literal "+tok.Image+"; defaulting to 0").WithSpan(c.Span).Build())
			n = 0
		}
		return NewNumber(n)
	case lexer.KindBooleanTrue:
		return NewBool(true)
	case lexer.KindBooleanFalse:
		return NewBool(false)
	default:
		// Identifier: either a bare word or, for directives, the joined
		// bareword phrase parseDirectiveValue produced.
		return NewString(tok.Image)
	}
}

// lowerNode lowers a Node CST node: its NodeIdent, optional AnchorDef,
// TypeList, and LevelSpec, and its trailing NodeBlock (or same-line inline
// value, per Open Question 1's resolution: the node is still a node, with
// a reserved "value" property and a W_INLINE_VALUE warning).
func (l *lowerer) lowerNode(c *cst.Node) NodeDef {
	def := NodeDef{Span: c.Span}
	if len(c.Children) == 0 {
		return def
	}

	ident := c.Children[0]
	def.Name = l.lowerNodeName(ident)

	for _, child := range c.Children[1:] {
		switch child.Kind {
		case cst.KindAnchorDef:
			def.Anchor = l.lowerAnchor(child)
		case cst.KindTypeList:
			for _, t := range child.Children {
				def.Types = append(def.Types, t.Text())
			}
		case cst.KindLevelSpec:
			def.LevelSpec = l.lowerLevelSpec(child)
		case cst.KindNodeBlock:
			def.Children, def.Properties = l.lowerNodeBlock(child.Children)
		case cst.KindValue:
			// A same-line inline value on a Node (not reinterpreted as a
			// Property because this Node also carries one of the optional
			// fields above, or sits at the document's top level).
			l.collector.Collect(diag.NewIssue(diag.Warning, diag.W_INLINE_VALUE,
				"node has an inline value; recorded as a \"value\" property").WithSpan(child.Span).Build())
			def.Properties = append(def.Properties, Property{
				Key: "value", Value: l.lowerValue(child), Span: child.Span,
			})
		}
	}
	return def
}

// lowerNodeBlock splits a NodeBlock's children into nested NodeDefs and
// Properties, preserving each group's source order. Directive and Edge
// children are promoted to the document's top level rather than returned
// here, matching lowerBlock's handling at every other depth.
func (l *lowerer) lowerNodeBlock(children []*cst.Node) ([]NodeDef, []Property) {
	var nodes []NodeDef
	var props []Property
	for _, child := range children {
		switch child.Kind {
		case cst.KindProperty:
			var value Value
			if len(child.Children) > 0 {
				value = l.lowerValue(child.Children[0])
			} else {
				value = Null()
			}
			props = append(props, Property{Key: child.Text(), Value: value, Span: child.Span})
		case cst.KindNode:
			nodes = append(nodes, l.lowerNode(child))
		case cst.KindDirective:
			l.directives = append(l.directives, l.lowerDirective(child))
		case cst.KindEdge:
			l.edges = append(l.edges, l.lowerEdge(child))
		case cst.KindComment:
			if l.opts.IncludeComments {
				l.comments = append(l.comments, child.Text())
			}
		}
	}
	return nodes, props
}

func (l *lowerer) lowerNodeName(ident *cst.Node) string {
	var name string
	if ident.Token.Kind == lexer.KindStringLiteral {
		name = l.convertString(ident.Token.Image, ident.Span)
	} else {
		name = ident.Token.Image
	}
	if name == "" {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.NODE_NAME_EMPTY,
			"node name is empty").WithSpan(ident.Span).Build())
	}
	return name
}

// lowerAnchor validates an AnchorDef's name against the full format rule
// (§4.3). The lexer already rejects an invalid start character outright (no
// AnchorDef token is even produced in that case) and flags an overlong name
// with its own diagnostic while still emitting the token; this is therefore
// mostly a defense-in-depth re-check, except for the overlong case, which
// does reach here and is rejected a second time under its own code.
func (l *lowerer) lowerAnchor(c *cst.Node) string {
	name := c.Text()[1:] // strip leading '&'
	if !anchorNamePattern.MatchString(name) {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_ANCHOR_NAME,
			"anchor name \""+name+"\" is invalid").WithSpan(c.Span).Build())
		return ""
	}
	return name
}

// lowerLevelSpec validates a LevelSpec's text against the full format rule,
// including the start < end constraint on a range form (§4.3). An invalid
// level spec is dropped: the node is still emitted with a missing level.
func (l *lowerer) lowerLevelSpec(c *cst.Node) string {
	text := c.Text()
	match := levelSpecPattern.FindStringSubmatch(text)
	if match == nil {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_LEVEL_SPEC,
			"level spec \""+text+"\" is invalid").WithSpan(c.Span).Build())
		return ""
	}
	if match[3] != "" {
		start, _ := strconv.Atoi(match[1])
		end, _ := strconv.Atoi(match[3])
		if start >= end {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.INVALID_LEVEL_SPEC,
				"level spec \""+text+"\" has a start not less than its end").WithSpan(c.Span).Build())
			return ""
		}
	}
	return text
}
