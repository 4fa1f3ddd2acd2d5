package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/layerflow-org/lff"
	"github.com/layerflow-org/lff/location"
	"github.com/layerflow-org/lff/serialize"
)

var (
	fmtPreset string
	fmtWrite  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Parse and re-serialize an LFF file under a formatting preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().StringVar(&fmtPreset, "preset", "pretty", "formatting preset: pretty|compact|strict|minimal")
	fmtCmd.Flags().BoolVar(&fmtWrite, "write", false, "write the formatted output back to FILE instead of stdout")
}

func presetOptions(name string) (serialize.Options, error) {
	switch name {
	case "pretty":
		return serialize.Pretty(), nil
	case "compact":
		return serialize.Compact(), nil
	case "strict":
		return serialize.Strict(), nil
	case "minimal":
		return serialize.Minimal(), nil
	default:
		return serialize.Options{}, fmt.Errorf("unknown preset %q (want pretty|compact|strict|minimal)", name)
	}
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	opts, err := presetOptions(fmtPreset)
	if err != nil {
		return err
	}

	sourceID, err := location.SourceIDFromPath(path)
	if err != nil {
		return fmt.Errorf("resolve source id for %s: %w", path, err)
	}

	result := lff.ParseToGraph(context.Background(), sourceID, string(src))
	printIssues(cmd.ErrOrStderr(), result.Errors)
	printIssues(cmd.ErrOrStderr(), result.Warnings)
	if result.Graph == nil {
		return fmt.Errorf("format %s: produced no graph", path)
	}

	text := lff.Serialize(result.Graph, opts)

	if fmtWrite {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
