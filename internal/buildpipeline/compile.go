package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"flint/internal/driver"
	"flint/internal/mir"
)

// CompileRequest configures the shared front-end run.
type CompileRequest struct {
	InputPath      string
	MaxDiagnostics int
	Timings        bool
}

// CompileResult captures front-end artefacts and stage timings.
type CompileResult struct {
	Unit    *driver.UnitResult
	Timings Timings
}

// Compile runs the front end to MIR. Source defects stay in the unit's
// bag; the returned error marks I/O failures and error-severity bags so
// callers can stop without re-checking.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if req.InputPath == "" {
		return result, fmt.Errorf("missing input path")
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	start := time.Now()
	unit, err := driver.CompileUnit(driver.Config{
		InputPath:      req.InputPath,
		MaxDiagnostics: req.MaxDiagnostics,
		Timings:        req.Timings,
	})
	result.Timings.Set(StageCompile, time.Since(start))
	if err != nil {
		return result, err
	}
	result.Unit = unit
	if unit.Failed() {
		return result, fmt.Errorf("compilation reported errors")
	}

	if err := mir.Validate(unit.Module, unit.Types); err != nil {
		return result, fmt.Errorf("internal error: invalid IR: %w", err)
	}
	return result, nil
}
