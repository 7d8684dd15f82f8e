package main

import (
	"os"

	"github.com/spf13/cobra"

	"flint/internal/diagfmt"
	"flint/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.fl",
	Short: "Tokenize a Flint source file",
	Long:  `Tokenize breaks a Flint source file into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := getFormat(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(driver.Config{
		InputPath:      args[0],
		MaxDiagnostics: maxDiagnostics(cmd),
	})
	if err != nil {
		return err
	}
	diagErr := printDiagnostics(cmd, result.Bag, result.FileSet)

	if format == "json" {
		if err := diagfmt.FormatTokensJSON(os.Stdout, result.Tokens); err != nil {
			return err
		}
		return diagErr
	}
	if err := diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet); err != nil {
		return err
	}
	return diagErr
}
