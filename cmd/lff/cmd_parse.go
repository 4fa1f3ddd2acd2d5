package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/layerflow-org/lff"
	"github.com/layerflow-org/lff/adapter/json"
	"github.com/layerflow-org/lff/location"
)

var (
	parseJSON   bool
	parseIndent string
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse an LFF file into a graph and print a summary or JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the graph as a JSON snapshot instead of a summary")
	parseCmd.Flags().StringVar(&parseIndent, "indent", "  ", "indentation used for --json output (empty for compact)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	sourceID, err := location.SourceIDFromPath(path)
	if err != nil {
		return fmt.Errorf("resolve source id for %s: %w", path, err)
	}

	result := lff.ParseToGraph(context.Background(), sourceID, string(src))
	printIssues(cmd.ErrOrStderr(), result.Errors)
	printIssues(cmd.ErrOrStderr(), result.Warnings)

	if result.Graph == nil {
		return fmt.Errorf("parse %s: produced no graph", path)
	}

	if parseJSON {
		adapter := json.NewAdapter()
		data, err := adapter.MarshalGraph(result.Graph, json.WithIndent(parseIndent))
		if err != nil {
			return fmt.Errorf("marshal graph: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes, %d edges\n",
		path, len(result.Graph.GetAllNodes()), len(result.Graph.GetAllEdges()))
	return nil
}
