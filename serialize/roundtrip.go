package serialize

import (
	"github.com/layerflow-org/lff/ast"
	"github.com/layerflow-org/lff/cst"
	"github.com/layerflow-org/lff/diag"
	"github.com/layerflow-org/lff/graphmodel"
	"github.com/layerflow-org/lff/location"
	"github.com/layerflow-org/lff/lower"
)

// ValidateRoundTrip serializes g under opts, reparses the result through
// the full pipeline, and reports whether the reparsed graph's node and
// edge counts match the original (§8's round-trip laws). It is a
// placeholder-grade check — a count comparison, not a structural diff —
// matching the depth spec.md itself anticipates for this operation.
func ValidateRoundTrip(g *graphmodel.Graph, opts Options) (bool, []diag.Issue) {
	text := Serialize(g, opts)

	sourceID := location.NewSourceID("roundtrip://validate")
	builder := cst.NewBuilder()
	cstResult := builder.Parse(sourceID, text)
	doc, astDiag := ast.Lower(cstResult.CST, cstResult.SourceInfo)
	lowerResult := lower.Lower(doc)

	var issues []diag.Issue
	issues = append(issues, cstResult.Diagnostics.IssuesSlice()...)
	issues = append(issues, astDiag.IssuesSlice()...)
	issues = append(issues, lowerResult.Errors...)
	issues = append(issues, lowerResult.Warnings...)

	if lowerResult.Graph == nil {
		return false, issues
	}

	valid := len(g.GetAllNodes()) == len(lowerResult.Graph.GetAllNodes()) &&
		len(g.GetAllEdges()) == len(lowerResult.Graph.GetAllEdges())
	return valid, issues
}
