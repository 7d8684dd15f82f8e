package main

import (
	"os"

	"github.com/spf13/cobra"

	"flint/internal/diagfmt"
	"flint/internal/driver"
	"flint/internal/mir"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.fl",
	Short: "Type-check a Flint source file",
	Long:  `Check runs the full front end without generating code`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("dump-ir", false, "print the lowered IR on success")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	checkCmd.Flags().Bool("timings", false, "report per-phase timings as info diagnostics")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := getFormat(cmd)
	if err != nil {
		return err
	}

	timings, _ := cmd.Flags().GetBool("timings")
	unit, err := driver.CompileUnit(driver.Config{
		InputPath:      args[0],
		MaxDiagnostics: maxDiagnostics(cmd),
		Timings:        timings,
	})
	if err != nil {
		return err
	}

	var diagErr error
	if format == "json" {
		unit.Bag.Sort()
		if err := diagfmt.JSON(os.Stdout, unit.Bag, unit.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
		if unit.Bag.HasErrors() {
			diagErr = errDiagnostics
		}
	} else {
		diagErr = printDiagnostics(cmd, unit.Bag, unit.FileSet)
	}
	if diagErr != nil {
		return diagErr
	}

	if dumpIR, _ := cmd.Flags().GetBool("dump-ir"); dumpIR && unit.Module != nil {
		if err := mir.DumpModule(os.Stdout, unit.Module, unit.Types); err != nil {
			return err
		}
	}
	return nil
}
