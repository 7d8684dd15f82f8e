package backend

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"flint/internal/diag"
	"flint/internal/mir"
	"flint/internal/source"
	"flint/internal/types"
	runtimeembed "flint/runtime"
)

// Generator drives the system C toolchain. It emits C from MIR, compiles
// it together with the extracted native runtime and links the executable.
// Tool failures become BackendError/LinkError diagnostics with the tool's
// stderr attached verbatim.
type Generator struct {
	// CC names the C compiler binary. Empty means "cc".
	CC string
	// PrintCommands echoes every toolchain invocation to stdout.
	PrintCommands bool
}

// BuildInput carries everything one executable build needs.
type BuildInput struct {
	Module     *mir.Module
	Types      *types.Interner
	TmpDir     string
	OutputPath string
	Reporter   diag.Reporter
}

func (g *Generator) cc() string {
	if g == nil || g.CC == "" {
		return "cc"
	}
	return g.CC
}

func (in *BuildInput) report(code diag.Code, err error) error {
	if in.Reporter != nil {
		in.Reporter.Report(code, diag.SevError, source.Span{}, err.Error(), nil)
	}
	return err
}

// Build generates C, compiles and links it into in.OutputPath. Failures
// are both reported through in.Reporter and returned, so callers can stop
// the pipeline without inspecting the bag.
func (g *Generator) Build(ctx context.Context, in BuildInput) error {
	objs, err := g.CompileObjects(ctx, in)
	if err != nil {
		return err
	}
	return g.Link(ctx, in, objs)
}

// CompileObjects emits C from the module and compiles it together with
// the extracted native runtime into object files.
func (g *Generator) CompileObjects(ctx context.Context, in BuildInput) ([]string, error) {
	if _, err := exec.LookPath(g.cc()); err != nil {
		return nil, in.report(diag.BackendError, fmt.Errorf("C compiler %q not found in PATH", g.cc()))
	}

	text, err := EmitModule(in.Module, in.Types)
	if err != nil {
		return nil, in.report(diag.BackendError, err)
	}

	srcPath := filepath.Join(in.TmpDir, "out.c")
	if err := os.WriteFile(srcPath, []byte(text), 0o600); err != nil {
		return nil, in.report(diag.BackendError, fmt.Errorf("cannot write %s: %w", srcPath, err))
	}

	runtimeDir, runtimeSources, err := extractNativeRuntime(in.TmpDir)
	if err != nil {
		return nil, in.report(diag.BackendError, err)
	}

	objs := make([]string, 0, len(runtimeSources)+1)
	for _, src := range append(runtimeSources, srcPath) {
		obj := filepath.Join(in.TmpDir, strings.TrimSuffix(filepath.Base(src), ".c")+".o")
		args := []string{"-c", "-std=c11", "-I", runtimeDir, src, "-o", obj}
		if err := g.runCommand(ctx, g.cc(), args...); err != nil {
			return nil, in.report(diag.BackendError, err)
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Link produces the executable from the compiled objects.
func (g *Generator) Link(ctx context.Context, in BuildInput, objs []string) error {
	linkArgs := append(append([]string{}, objs...), "-o", in.OutputPath)
	if err := g.runCommand(ctx, g.cc(), linkArgs...); err != nil {
		return in.report(diag.LinkError, err)
	}
	return nil
}

// extractNativeRuntime copies the embedded runtime sources into tmpDir so
// the C compiler can see them as ordinary files. Sources come back sorted
// for deterministic compile order.
func extractNativeRuntime(tmpDir string) (runtimeDir string, sources []string, err error) {
	runtimeDir = filepath.Join(tmpDir, "native_runtime")
	if err := os.MkdirAll(runtimeDir, 0o750); err != nil {
		return "", nil, fmt.Errorf("cannot create runtime dir: %w", err)
	}

	fsys := runtimeembed.NativeRuntimeFS()
	walkErr := fs.WalkDir(fsys, "native", func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(entryPath, "native/")
		if rel == entryPath {
			return fmt.Errorf("unexpected embedded runtime path: %s", entryPath)
		}
		dst := filepath.Join(runtimeDir, filepath.FromSlash(rel))
		data, err := fs.ReadFile(fsys, entryPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o600); err != nil {
			return err
		}
		if strings.HasSuffix(entryPath, ".c") {
			sources = append(sources, dst)
		}
		return nil
	})
	if walkErr != nil {
		return "", nil, fmt.Errorf("cannot extract embedded runtime: %w", walkErr)
	}
	if len(sources) == 0 {
		return "", nil, fmt.Errorf("embedded runtime sources missing (build bug)")
	}
	sort.Strings(sources)
	return runtimeDir, sources, nil
}

// runCommand executes one toolchain step. stderr is captured and folded
// into the returned error verbatim; stdout passes through.
func (g *Generator) runCommand(ctx context.Context, name string, args ...string) error {
	if g != nil && g.PrintCommands {
		fmt.Fprintf(os.Stdout, "%s %s\n", name, strings.Join(args, " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}
