package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flint/internal/diag"
	"flint/internal/diagfmt"
	"flint/internal/source"
)

// errDiagnostics marks "compilation failed and the diagnostics were
// already printed": the exit status must be non-zero, but the message has
// no extra line to add.
var errDiagnostics = errors.New("diagnostics reported errors")

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}

// printDiagnostics sorts and renders a bag to stderr. It returns
// errDiagnostics when the bag holds errors so RunE propagates a failing
// exit status.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func getFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("cannot read format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
		return format, nil
	}
	return "", fmt.Errorf("unknown format: %s", format)
}
