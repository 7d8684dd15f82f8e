// Package project locates and parses the flint.toml manifest. A manifest
// fixes the package name, the main source file and the output name before
// compilation starts; everything else the driver needs is derived.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"flint/internal/diag"
	"flint/internal/source"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "flint.toml"

// Manifest is a parsed flint.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig is the [package] section.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig is the [build] section. Output is optional and defaults to
// the package name.
type BuildConfig struct {
	Main   string `toml:"main"`
	Output string `toml:"output"`
}

// Options configures manifest loading. The reporter receives
// manifest-level diagnostics; errors are returned as well so callers can
// stop without inspecting a bag.
type Options struct {
	Reporter diag.Reporter
}

// Find walks up from startDir looking for flint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("cannot resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("cannot stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates the manifest at path.
func Load(path string, opts Options) (*Manifest, error) {
	report := func(code diag.Code, format string, args ...any) error {
		err := fmt.Errorf(format, args...)
		if opts.Reporter != nil {
			opts.Reporter.Report(code, diag.SevError, source.Span{}, err.Error(), nil)
		}
		return err
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, report(diag.ProjInvalidManifest, "%s: %v", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, report(diag.ProjInvalidManifest, "%s: missing [package].name", path)
	}
	if !meta.IsDefined("build", "main") || strings.TrimSpace(cfg.Build.Main) == "" {
		return nil, report(diag.ProjMissingMain, "%s: missing [build].main", path)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// MainPath resolves [build].main against the project root and verifies
// that it names an existing .fl file.
func (m *Manifest) MainPath(opts Options) (string, error) {
	report := func(format string, args ...any) error {
		err := fmt.Errorf(format, args...)
		if opts.Reporter != nil {
			opts.Reporter.Report(diag.ProjMissingMain, diag.SevError, source.Span{}, err.Error(), nil)
		}
		return err
	}

	rel := strings.TrimSpace(m.Config.Build.Main)
	mainPath := filepath.Join(m.Root, filepath.FromSlash(rel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", report("%s: [build].main does not exist: %s", m.Path, mainPath)
		}
		return "", report("%s: cannot stat [build].main: %v", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != ".fl" {
		return "", report("%s: [build].main must be a .fl file", m.Path)
	}
	return mainPath, nil
}

// OutputName is the executable name for this project.
func (m *Manifest) OutputName() string {
	if out := strings.TrimSpace(m.Config.Build.Output); out != "" {
		return out
	}
	return strings.TrimSpace(m.Config.Package.Name)
}
