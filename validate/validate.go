package validate

import (
	"regexp"
	"strings"

	"github.com/layerflow-org/lff/ast"
	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/location"
)

var (
	typeNamePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	levelSpecPattern    = regexp.MustCompile(`^@([1-9]\d*)(\+|-([1-9]\d*))?$`)
	versionValuePattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
)

// knownDirectiveNames are the directive names recognized without a warning
// (§4.1): "title, version, description, author, domain, tags, strict,
// encoding", plus any other identifier is accepted by the lexer/C3 but
// flagged here.
var knownDirectiveNames = map[string]bool{
	"title": true, "version": true, "description": true, "author": true,
	"domain": true, "tags": true, "strict": true, "encoding": true,
}

// Result is the validator's output (§4.4). Valid is true iff Errors is
// empty — in strict mode that promotion already happened, so Warnings is
// empty whenever StrictMode was requested.
type Result struct {
	Valid    bool
	Errors   []diag.Issue
	Warnings []diag.Issue
}

type anchorRef struct {
	name string
	span location.Span
}

type validator struct {
	doc       ast.Document
	collector *diag.Collector
	refs      []anchorRef
	anchors   map[string]bool
}

// Validate runs all three phases over doc and returns the accumulated
// result. Validate never panics on malformed input; every check degrades to
// a diagnostic.
func Validate(doc ast.Document, opts ...Option) Result {
	o := resolveOptions(opts)
	v := &validator{
		doc:       doc,
		collector: diag.NewCollectorUnlimited(),
		anchors:   make(map[string]bool),
	}

	v.phase1Structural()
	v.phase2Semantic()
	v.phase3CrossReference()

	return v.buildResult(o)
}

func (v *validator) buildResult(o Options) Result {
	var errors, warnings []diag.Issue
	for issue := range v.collector.Result().Issues() {
		sev := issue.Severity()
		if o.StrictMode && sev == diag.Warning {
			sev = diag.Error
		}
		if sev <= diag.Error {
			errors = append(errors, issue)
		} else {
			warnings = append(warnings, issue)
		}
	}
	return Result{Valid: len(errors) == 0, Errors: errors, Warnings: warnings}
}

// phase1Structural checks each NodeDef, EdgeDef, and DirectiveDef in
// isolation, without regard to cross-references between them.
func (v *validator) phase1Structural() {
	walkNodes(v.doc.Nodes, func(n ast.NodeDef) {
		if n.Name == "" {
			v.collector.Collect(diag.NewIssue(diag.Error, diag.NODE_NAME_EMPTY,
				"node name is empty").WithSpan(n.Span).Build())
		}
		if n.Anchor != "" {
			if v.anchors[n.Anchor] {
				v.collector.Collect(diag.NewIssue(diag.Error, diag.REFERENCE_ANCHOR_UNIQUE,
					"anchor \""+n.Anchor+"\" is defined more than once").WithSpan(n.Span).Build())
			}
			v.anchors[n.Anchor] = true
		}
		for _, t := range n.Types {
			if !typeNamePattern.MatchString(t) {
				v.collector.Collect(diag.NewIssue(diag.Warning, diag.INVALID_TYPE_NAME,
					"type name \""+t+"\" does not match the expected format").WithSpan(n.Span).Build())
			}
		}
		if n.LevelSpec != "" && !levelSpecPattern.MatchString(n.LevelSpec) {
			v.collector.Collect(diag.NewIssue(diag.Warning, diag.INVALID_LEVEL_SPEC,
				"level spec \""+n.LevelSpec+"\" is invalid").WithSpan(n.Span).Build())
		}
	})

	for _, e := range v.doc.Edges {
		if e.From == "" || e.To == "" {
			v.collector.Collect(diag.NewIssue(diag.Error, diag.MISSING_EDGE_ENDPOINT,
				"edge is missing an endpoint").WithSpan(e.Span).Build())
		}
		if strings.HasPrefix(e.From, "*") {
			v.refs = append(v.refs, anchorRef{name: strings.TrimPrefix(e.From, "*"), span: e.Span})
		}
		if strings.HasPrefix(e.To, "*") {
			v.refs = append(v.refs, anchorRef{name: strings.TrimPrefix(e.To, "*"), span: e.Span})
		}
	}

	for _, d := range v.doc.Directives {
		name := strings.TrimPrefix(d.Name, "@")
		if name == "" {
			v.collector.Collect(diag.NewIssue(diag.Warning, diag.UNKNOWN_DIRECTIVE,
				"directive has no name").WithSpan(d.Span).Build())
			continue
		}
		if !knownDirectiveNames[name] {
			v.collector.Collect(diag.NewIssue(diag.Warning, diag.UNKNOWN_DIRECTIVE,
				"directive \"@"+name+"\" is not a recognized name").WithSpan(d.Span).Build())
		}
		if name == "version" {
			if !versionValuePattern.MatchString(d.Value.Text()) {
				v.collector.Collect(diag.NewIssue(diag.Warning, diag.VERSION_FORMAT,
					"@version value \""+d.Value.Text()+"\" does not match the expected format").WithSpan(d.Span).Build())
			}
		}
	}
}

// phase2Semantic detects hierarchy cycles and cross-directive duplication.
// A cycle is structurally unreachable through ordinary nesting (each NodeDef
// owns its Children tree outright) but the check still runs, matching §4.4
// and serving as defense-in-depth against a future AST source that does not
// preserve that invariant.
func (v *validator) phase2Semantic() {
	v.checkAcyclic(v.doc.Nodes, nil, make(map[string]bool))
	v.checkDuplicateDirectives()
}

func (v *validator) checkAcyclic(nodes []ast.NodeDef, path []string, active map[string]bool) {
	for _, n := range nodes {
		if active[n.Name] {
			chain := append(append([]string{}, path...), n.Name)
			v.collector.Collect(diag.NewIssue(diag.Error, diag.CIRCULAR_HIERARCHY,
				"circular hierarchy: "+strings.Join(chain, " -> ")).WithSpan(n.Span).Build())
			continue
		}
		active[n.Name] = true
		v.checkAcyclic(n.Children, append(path[:len(path):len(path)], n.Name), active)
		delete(active, n.Name)
	}
}

func (v *validator) checkDuplicateDirectives() {
	seen := make(map[string]bool)
	for _, d := range v.doc.Directives {
		name := strings.TrimPrefix(d.Name, "@")
		if name == "" {
			continue
		}
		if seen[name] {
			v.collector.Collect(diag.NewIssue(diag.Warning, diag.DUPLICATE_DIRECTIVE,
				"directive \"@"+name+"\" appears more than once").WithSpan(d.Span).Build())
			continue
		}
		seen[name] = true
	}
}

// phase3CrossReference resolves every "*name" reference collected in phase 1
// against the set of anchors defined anywhere in the document.
func (v *validator) phase3CrossReference() {
	for _, ref := range v.refs {
		if !v.anchors[ref.name] {
			v.collector.Collect(diag.NewIssue(diag.Error, diag.UNDEFINED_ANCHOR_REFERENCE,
				"reference to undefined anchor \"*"+ref.name+"\"").WithSpan(ref.span).Build())
		}
	}
}

func walkNodes(nodes []ast.NodeDef, fn func(ast.NodeDef)) {
	for _, n := range nodes {
		fn(n)
		walkNodes(n.Children, fn)
	}
}
