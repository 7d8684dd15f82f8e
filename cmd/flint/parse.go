package main

import (
	"os"

	"github.com/spf13/cobra"

	"flint/internal/diagfmt"
	"flint/internal/driver"
	"flint/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.fl",
	Short: "Parse a Flint source file",
	Long:  `Parse builds the syntax tree of a Flint source file and dumps it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("no-dump", false, "report diagnostics only, skip the tree dump")
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(driver.Config{
		InputPath:      args[0],
		MaxDiagnostics: maxDiagnostics(cmd),
	})
	if err != nil {
		return err
	}
	diagErr := printDiagnostics(cmd, result.Bag, result.FileSet)

	noDump, _ := cmd.Flags().GetBool("no-dump")
	if !noDump {
		if err := diagfmt.DumpAST(os.Stdout, result.Builder, result.FileID, source.Strings()); err != nil {
			return err
		}
	}
	return diagErr
}
