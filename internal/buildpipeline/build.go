package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flint/internal/backend"
	"flint/internal/diag"
	"flint/internal/driver"
	"flint/internal/mir"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	OutputName    string
	OutputRoot    string
	Profile       string
	CC            string
	EmitIR        bool
	KeepTmp       bool
	PrintCommands bool
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	OutputPath string
	TmpDir     string
	Unit       *CompileResult
	Timings    Timings
}

// Build compiles one file and links an executable into
// <OutputRoot>/target/<Profile>/<OutputName>. Intermediate files live in a
// .tmp directory next to the output and are removed unless KeepTmp or
// EmitIR asks for them.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy

	if req.OutputName == "" {
		req.OutputName = "a.out"
	}
	if req.Profile == "" {
		req.Profile = "debug"
	}

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.Unit = &compileRes
	result.Timings = compileRes.Timings
	if err != nil {
		return result, err
	}
	unit := compileRes.Unit

	outputRoot := req.OutputRoot
	if outputRoot == "" {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			cwd = "."
		}
		outputRoot = cwd
	}
	outputDir := filepath.Join(outputRoot, "target", req.Profile)
	outputPath := filepath.Join(outputDir, req.OutputName)
	tmpDir := filepath.Join(outputDir, ".tmp", req.OutputName)
	result.OutputPath = outputPath
	result.TmpDir = tmpDir

	if err := os.MkdirAll(tmpDir, 0o750); err != nil {
		return result, fmt.Errorf("cannot create tmp dir: %w", err)
	}

	if req.EmitIR {
		irPath := filepath.Join(tmpDir, "out.mir")
		if err := writeIRDump(irPath, unit.Module, unit); err != nil {
			return result, err
		}
	}

	gen := &backend.Generator{CC: req.CC, PrintCommands: req.PrintCommands}
	input := backend.BuildInput{
		Module:     unit.Module,
		Types:      unit.Types,
		TmpDir:     tmpDir,
		OutputPath: outputPath,
		Reporter:   diag.BagReporter{Bag: unit.Bag},
	}

	buildStart := time.Now()
	objs, err := gen.CompileObjects(ctx, input)
	result.Timings.Set(StageBuild, time.Since(buildStart))
	if err != nil {
		return result, err
	}

	linkStart := time.Now()
	err = gen.Link(ctx, input, objs)
	result.Timings.Set(StageLink, time.Since(linkStart))
	if err != nil {
		return result, err
	}

	if !req.KeepTmp && !req.EmitIR {
		if err := os.RemoveAll(tmpDir); err != nil {
			return result, fmt.Errorf("cannot clean tmp dir: %w", err)
		}
	}
	return result, nil
}

func writeIRDump(targetPath string, mod *mir.Module, unit *driver.UnitResult) error {
	if mod == nil || unit == nil || unit.Types == nil {
		return fmt.Errorf("missing IR or type information")
	}
	// #nosec G304 -- path is derived from build output configuration
	file, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("cannot write IR dump: %w", err)
	}
	defer file.Close()
	if err := mir.DumpModule(file, mod, unit.Types); err != nil {
		return fmt.Errorf("cannot dump IR: %w", err)
	}
	return nil
}
