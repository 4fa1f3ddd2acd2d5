package cst

import (
	"strings"

	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/lexer"
	"github.com/layerflow-org/lff/location"
)

// parser is a cursor-based recursive-descent parser over a token stream
// already produced by [lexer.Lex]. It never aborts: a malformed production
// is recorded as a [diag.SYNTAX_ERROR] and parsing resumes at the next
// line, so one bad line does not take down the rest of the document.
type parser struct {
	tokens    []lexer.Token
	pos       int
	sourceID  location.SourceID
	collector *diag.Collector
}

func newParser(sourceID location.SourceID, tokens []lexer.Token, collector *diag.Collector) *parser {
	return &parser{tokens: tokens, sourceID: sourceID, collector: collector}
}

func (p *parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == lexer.KindEOF
}

func (p *parser) skipBlankLines() {
	for p.cur().Kind == lexer.KindNewline {
		p.advance()
	}
}

func (p *parser) consumeLineEnd() {
	if p.cur().Kind == lexer.KindNewline {
		p.advance()
	}
}

func (p *parser) syntaxError(message string) {
	issue := diag.NewIssue(diag.Error, diag.SYNTAX_ERROR, message).
		WithSpan(p.cur().Span).
		Build()
	p.collector.Collect(issue)
}

// synchronize recovers from a parse error by discarding tokens up to and
// including the next Newline, so the next parseBlock iteration starts
// fresh at the following line.
func (p *parser) synchronize() {
	for !p.atEOF() && p.cur().Kind != lexer.KindNewline {
		p.advance()
	}
	p.consumeLineEnd()
}

func (p *parser) expect(kind lexer.Kind, context string) (lexer.Token, bool) {
	if p.cur().Kind != kind {
		p.syntaxError("expected " + kind.String() + " " + context)
		return lexer.Token{}, false
	}
	return p.advance(), true
}

// parseDocument parses the entire token stream, recovering from any number
// of malformed lines along the way.
func (p *parser) parseDocument() *Node {
	children := p.parseBlock(0)
	return &Node{Kind: KindDocument, Children: children}
}

// parseBlock parses a maximal run of sibling items at exactly the given
// indent depth, returning control to the caller (without consuming
// anything further) as soon as a dedent or EOF is observed.
func (p *parser) parseBlock(indent int) []*Node {
	var items []*Node
	for {
		p.skipBlankLines()
		if p.atEOF() {
			return items
		}
		if p.cur().Kind != lexer.KindIndent {
			p.syntaxError("expected line to begin with indentation")
			p.synchronize()
			continue
		}
		lineIndent := p.cur().Indent
		if lineIndent < indent {
			return items
		}
		if lineIndent > indent {
			p.syntaxError("unexpected indentation")
			p.synchronize()
			continue
		}
		p.advance() // consume Indent
		if item := p.parseItem(indent); item != nil {
			items = append(items, item)
		}
	}
}

func (p *parser) parseItem(indent int) *Node {
	switch p.cur().Kind {
	case lexer.KindComment:
		return p.parseComment()
	case lexer.KindDirective:
		return p.parseDirective()
	case lexer.KindIdentifier, lexer.KindStringLiteral, lexer.KindAnchorRef:
		return p.parseNodeOrEdge(indent)
	default:
		p.syntaxError("expected a directive, node, or edge")
		p.synchronize()
		return nil
	}
}

func (p *parser) parseComment() *Node {
	tok := p.advance()
	node := &Node{Kind: KindComment, Token: tok, Span: tok.Span}
	p.consumeLineEnd()
	return node
}

func (p *parser) parseDirective() *Node {
	nameTok, ok := p.expect(lexer.KindDirective, "for directive name")
	if !ok {
		p.synchronize()
		return nil
	}
	node := &Node{Kind: KindDirective, Token: nameTok, Span: nameTok.Span}
	if _, ok := p.expect(lexer.KindColon, "after directive name"); !ok {
		p.synchronize()
		return node
	}
	if value := p.parseDirectiveValue(); value != nil {
		node.Children = append(node.Children, value)
		node.Span = location.Span{Source: node.Span.Source, Start: node.Span.Start, End: value.Span.End}
	}
	p.consumeLineEnd()
	return node
}

// parseDirectiveValue parses a directive's value. §6.1.2 states directive
// values "use the same grammar as property values", but directives are
// routinely authored as unquoted phrases (`@title: Simple System`); an
// array literal or a single scalar token is read as such, and anything else
// is read as a bare run of words to the end of the line.
func (p *parser) parseDirectiveValue() *Node {
	switch p.cur().Kind {
	case lexer.KindNewline, lexer.KindEOF:
		p.syntaxError("expected a directive value")
		return nil
	case lexer.KindBracketOpen:
		return p.parseArrayLiteral()
	case lexer.KindStringLiteral, lexer.KindNumberLiteral, lexer.KindBooleanTrue, lexer.KindBooleanFalse:
		tok := p.advance()
		return &Node{Kind: KindValue, Token: tok, Span: tok.Span}
	}

	start := p.cur()
	end := start
	var words []string
	for p.cur().Kind != lexer.KindNewline && p.cur().Kind != lexer.KindEOF {
		tok := p.advance()
		words = append(words, tok.Image)
		end = tok
	}
	span := location.Span{Source: start.Span.Source, Start: start.Span.Start, End: end.Span.End}
	return &Node{
		Kind:  KindValue,
		Token: lexer.Token{Kind: lexer.KindIdentifier, Image: strings.Join(words, " "), Span: span},
		Span:  span,
	}
}

// parseRef consumes a single NodeIdent/NodeRef leaf: an Identifier or
// StringLiteral always, an AnchorRef only when allowAnchorRef is set (edge
// endpoints permit `*name`; a node's own identity does not).
func (p *parser) parseRef(allowAnchorRef bool) *Node {
	tok := p.cur()
	switch tok.Kind {
	case lexer.KindIdentifier, lexer.KindStringLiteral:
		p.advance()
		return &Node{Kind: KindNodeRef, Token: tok, Span: tok.Span}
	case lexer.KindAnchorRef:
		if !allowAnchorRef {
			p.syntaxError("an anchor reference cannot begin a node definition")
			return nil
		}
		p.advance()
		return &Node{Kind: KindNodeRef, Token: tok, Span: tok.Span}
	default:
		p.syntaxError("expected an identifier, string, or anchor reference")
		return nil
	}
}

func (p *parser) parseNodeOrEdge(indent int) *Node {
	first := p.parseRef(true)
	if first == nil {
		p.synchronize()
		return nil
	}
	if p.cur().IsArrow() {
		return p.parseEdge(first)
	}
	if first.Token.Kind == lexer.KindAnchorRef {
		p.syntaxError("an anchor reference cannot begin a node definition")
		p.synchronize()
		return nil
	}
	first.Kind = KindNodeIdent
	return p.parseNode(first, indent)
}

func (p *parser) parseEdge(left *Node) *Node {
	arrowTok := p.advance()
	arrow := &Node{Kind: KindArrow, Token: arrowTok, Span: arrowTok.Span}
	right := p.parseRef(true)
	if right == nil {
		p.synchronize()
		return nil
	}
	edge := &Node{
		Kind:     KindEdge,
		Children: []*Node{left, arrow, right},
		Span:     location.Span{Source: left.Span.Source, Start: left.Span.Start, End: right.Span.End},
	}
	if p.cur().Kind == lexer.KindColon {
		p.advance()
		if value := p.parseValue(); value != nil {
			edge.Children = append(edge.Children, value)
			edge.Span.End = value.Span.End
		}
	}
	p.consumeLineEnd()
	return edge
}

// parseNode parses the optional AnchorDef, TypeList, LevelSpec, and
// trailing block/value that follow a NodeIdent, per §6.1.3.
func (p *parser) parseNode(ident *Node, indent int) *Node {
	node := &Node{Kind: KindNode, Children: []*Node{ident}, Span: ident.Span}

	if p.cur().Kind == lexer.KindAnchorDef {
		tok := p.advance()
		node.Children = append(node.Children, &Node{Kind: KindAnchorDef, Token: tok, Span: tok.Span})
		node.Span.End = tok.Span.End
	}

	if p.cur().Kind == lexer.KindBracketOpen {
		if types := p.parseTypeList(); types != nil {
			node.Children = append(node.Children, types)
			node.Span.End = types.Span.End
		}
	}

	if p.cur().Kind == lexer.KindLevelSpec {
		tok := p.advance()
		node.Children = append(node.Children, &Node{Kind: KindLevelSpec, Token: tok, Span: tok.Span})
		node.Span.End = tok.Span.End
	}

	if p.cur().Kind == lexer.KindColon {
		p.advance()
		if p.cur().Kind == lexer.KindNewline {
			p.advance()
			children := p.parseBlock(indent + 1)
			block := &Node{Kind: KindNodeBlock, Children: children}
			if len(children) > 0 {
				block.Span = location.Span{Source: node.Span.Source, Start: children[0].Span.Start, End: children[len(children)-1].Span.End}
			}
			node.Children = append(node.Children, block)
			node.Span.End = block.Span.End
			return node
		}
		if value := p.parseValue(); value != nil {
			node.Children = append(node.Children, value)
			node.Span.End = value.Span.End
			p.consumeLineEnd()
			return asProperty(node, ident, value, indent)
		}
	}

	p.consumeLineEnd()
	return node
}

// asProperty reinterprets a bare "Identifier: Value" Node as a Property,
// matching the grammar's separate Property production (§4.2). Only nodes
// nested inside a NodeBlock (indent > 0) are eligible: at the document's
// top level the same shape is a node with an inline same-line value (see
// the node same-line value handling in AST lowering). A Node that also
// carries an AnchorDef, TypeList, or LevelSpec — or whose identity is a
// string literal rather than a bare identifier — stays a Node regardless.
func asProperty(node, ident, value *Node, indent int) *Node {
	if indent == 0 || len(node.Children) != 2 || ident.Token.Kind != lexer.KindIdentifier {
		return node
	}
	return &Node{Kind: KindProperty, Token: ident.Token, Children: []*Node{value}, Span: node.Span}
}

func (p *parser) parseTypeList() *Node {
	openTok := p.advance() // '['
	list := &Node{Kind: KindTypeList, Span: openTok.Span}

	if p.cur().Kind == lexer.KindBracketClose {
		closeTok := p.advance()
		list.Span.End = closeTok.Span.End
		return list
	}

	for {
		tok, ok := p.expect(lexer.KindIdentifier, "in type list")
		if !ok {
			p.synchronize()
			return list
		}
		list.Children = append(list.Children, &Node{Kind: KindNodeRef, Token: tok, Span: tok.Span})
		if p.cur().Kind == lexer.KindComma {
			p.advance()
			continue
		}
		break
	}

	closeTok, ok := p.expect(lexer.KindBracketClose, "to close type list")
	if ok {
		list.Span.End = closeTok.Span.End
	}
	return list
}

func (p *parser) parseValue() *Node {
	tok := p.cur()
	switch tok.Kind {
	case lexer.KindStringLiteral, lexer.KindNumberLiteral, lexer.KindBooleanTrue, lexer.KindBooleanFalse, lexer.KindIdentifier:
		p.advance()
		return &Node{Kind: KindValue, Token: tok, Span: tok.Span}
	case lexer.KindBracketOpen:
		return p.parseArrayLiteral()
	default:
		p.syntaxError("expected a value")
		return nil
	}
}

func (p *parser) parseArrayLiteral() *Node {
	openTok := p.advance() // '['
	arr := &Node{Kind: KindArrayLiteral, Span: openTok.Span}

	if p.cur().Kind == lexer.KindBracketClose {
		closeTok := p.advance()
		arr.Span.End = closeTok.Span.End
		return arr
	}

	for {
		value := p.parseValue()
		if value == nil {
			p.synchronize()
			return arr
		}
		arr.Children = append(arr.Children, value)
		if p.cur().Kind == lexer.KindComma {
			p.advance()
			continue
		}
		break
	}

	closeTok, ok := p.expect(lexer.KindBracketClose, "to close array literal")
	if ok {
		arr.Span.End = closeTok.Span.End
	}
	return arr
}
