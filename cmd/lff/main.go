// Command lff is a command-line tool for parsing, validating, and
// formatting LayerFlow Format (LFF) source files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "lff",
	Short:   "lff - LayerFlow Format parser, validator, and formatter",
	Version: version,
	Long: `lff parses, validates, and formats LayerFlow Format (LFF) source:
a human-authored, indentation-sensitive DSL for layered architecture graphs.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fmtCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
