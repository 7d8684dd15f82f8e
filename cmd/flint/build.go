package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flint/internal/buildpipeline"
	"flint/internal/diag"
	"flint/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.fl]",
	Short: "Build a Flint executable",
	Long: `Build compiles a source file and links a native executable.
Without an argument it looks for a flint.toml manifest upward from the
current directory and builds its [build].main file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output executable name")
	buildCmd.Flags().String("output-root", "", "directory for the target/ tree (default: project root or cwd)")
	buildCmd.Flags().String("profile", "debug", "build profile (subdirectory under target/)")
	buildCmd.Flags().String("cc", "", "C compiler to use (default: cc)")
	buildCmd.Flags().Bool("emit-ir", false, "keep a textual IR dump next to the intermediates")
	buildCmd.Flags().Bool("keep-tmp", false, "keep intermediate files")
	buildCmd.Flags().Bool("print-commands", false, "echo toolchain commands")
	buildCmd.Flags().Bool("timings", false, "report per-stage timings")
}

func runBuild(cmd *cobra.Command, args []string) error {
	bag := diag.NewBag(maxDiagnostics(cmd))
	reporter := diag.BagReporter{Bag: bag}

	inputPath, outputName, outputRoot, err := resolveBuildTarget(cmd, args, reporter)
	if err != nil {
		// Manifest problems are diagnostics too; render them the usual way.
		if bag.Len() > 0 {
			_ = printDiagnostics(cmd, bag, nil)
			return errDiagnostics
		}
		return err
	}

	showTimings, _ := cmd.Flags().GetBool("timings")
	req := &buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			InputPath:      inputPath,
			MaxDiagnostics: maxDiagnostics(cmd),
			Timings:        showTimings,
		},
		OutputName: outputName,
		OutputRoot: outputRoot,
	}
	req.Profile, _ = cmd.Flags().GetString("profile")
	req.CC, _ = cmd.Flags().GetString("cc")
	req.EmitIR, _ = cmd.Flags().GetBool("emit-ir")
	req.KeepTmp, _ = cmd.Flags().GetBool("keep-tmp")
	req.PrintCommands, _ = cmd.Flags().GetBool("print-commands")

	result, buildErr := buildpipeline.Build(cmd.Context(), req)

	if result.Unit != nil && result.Unit.Unit != nil {
		unit := result.Unit.Unit
		if diagErr := printDiagnostics(cmd, unit.Bag, unit.FileSet); diagErr != nil {
			return diagErr
		}
	}
	if buildErr != nil {
		return buildErr
	}

	if showTimings {
		printTimings(cmd, result.Timings)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.OutputPath)
	return nil
}

// resolveBuildTarget picks the input file and output name from the
// argument or, failing that, from the nearest manifest.
func resolveBuildTarget(cmd *cobra.Command, args []string, reporter diag.Reporter) (inputPath, outputName, outputRoot string, err error) {
	outputName, _ = cmd.Flags().GetString("output")
	outputRoot, _ = cmd.Flags().GetString("output-root")

	if len(args) == 1 {
		inputPath = args[0]
		if outputName == "" {
			base := filepath.Base(inputPath)
			outputName = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return inputPath, outputName, outputRoot, nil
	}

	manifestPath, ok, err := project.Find(".")
	if err != nil {
		return "", "", "", err
	}
	if !ok {
		return "", "", "", fmt.Errorf("no %s found; pass a file to build, e.g.: flint build main.fl", project.ManifestName)
	}
	manifest, err := project.Load(manifestPath, project.Options{Reporter: reporter})
	if err != nil {
		return "", "", "", err
	}
	inputPath, err = manifest.MainPath(project.Options{Reporter: reporter})
	if err != nil {
		return "", "", "", err
	}
	if outputName == "" {
		outputName = manifest.OutputName()
	}
	if outputRoot == "" {
		outputRoot = manifest.Root
	}
	return inputPath, outputName, outputRoot, nil
}

func printTimings(cmd *cobra.Command, t buildpipeline.Timings) {
	out := cmd.OutOrStdout()
	for _, stage := range []buildpipeline.Stage{
		buildpipeline.StageCompile,
		buildpipeline.StageBuild,
		buildpipeline.StageLink,
	} {
		if !t.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-8s %s\n", stage, t.Duration(stage))
	}
	fmt.Fprintf(out, "%-8s %s\n", "total", t.Sum(
		buildpipeline.StageCompile, buildpipeline.StageBuild, buildpipeline.StageLink))
}
