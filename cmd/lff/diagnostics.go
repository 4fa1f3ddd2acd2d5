package main

import (
	"fmt"
	"io"

	"github.com/layerflow-org/lff/diag"
)

// printIssues writes one line per issue to w, in the form:
//
//	<severity> <code>: <message> (<span>)
func printIssues(w io.Writer, issues []diag.Issue) {
	for _, issue := range issues {
		if issue.HasSpan() {
			fmt.Fprintf(w, "%s %s: %s (%s)\n", issue.Severity(), issue.Code(), issue.Message(), issue.Span())
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", issue.Severity(), issue.Code(), issue.Message())
	}
}
