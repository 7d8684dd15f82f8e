package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CompileUnits compiles independent files concurrently. Units share only
// the process-wide string table; each gets its own FileSet, arenas and
// bag. Results keep the order of paths. The returned error covers I/O
// failures only; source defects land in the per-unit bags.
func CompileUnits(ctx context.Context, paths []string, cfg Config) ([]*UnitResult, error) {
	results := make([]*UnitResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unitCfg := cfg
			unitCfg.InputPath = path
			res, err := CompileUnit(unitCfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
