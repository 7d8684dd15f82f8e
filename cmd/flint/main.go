package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flint/internal/prof"
	"flint/internal/version"
)

var profSession *prof.Session

var rootCmd = &cobra.Command{
	Use:   "flint",
	Short: "Flint language compiler",
	Long:  `Flint compiles .fl source files to native executables`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")

	rootCmd.PersistentPreRunE = startProfiling
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) { profSession.Stop() }

	err := rootCmd.Execute()
	profSession.Stop()
	if err != nil {
		// Diagnostics were already rendered; anything else still needs a line.
		if err != errDiagnostics {
			fmt.Fprintln(os.Stderr, "flint: "+err.Error())
		}
		os.Exit(1)
	}
}

func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	cpuPath, _ := flags.GetString("cpu-profile")
	memPath, _ := flags.GetString("mem-profile")
	session, err := prof.Start(prof.Options{CPUPath: cpuPath, MemPath: memPath})
	if err != nil {
		return err
	}
	profSession = session
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
