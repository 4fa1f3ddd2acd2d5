package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/layerflow-org/lff"
	"github.com/layerflow-org/lff/location"
	"github.com/layerflow-org/lff/validate"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Run semantic validation over an LFF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	sourceID, err := location.SourceIDFromPath(path)
	if err != nil {
		return fmt.Errorf("resolve source id for %s: %w", path, err)
	}

	var opts []lff.Option
	if validateStrict {
		opts = append(opts, lff.WithValidateOptions(validate.WithStrictMode(true)))
	}

	result := lff.Validate(context.Background(), sourceID, string(src), opts...)
	printIssues(cmd.ErrOrStderr(), result.Errors)
	printIssues(cmd.OutOrStdout(), result.Warnings)

	if !result.Valid {
		return fmt.Errorf("%s: invalid", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
	return nil
}
