// Package prof starts and stops process-level profilers for the CLI.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options selects which profiles to record. Empty paths disable the
// corresponding profiler.
type Options struct {
	CPUPath string
	MemPath string
}

// Session owns the profilers running for the life of one command.
type Session struct {
	cpuFile *os.File
	memPath string
	done    bool
}

// Start begins CPU profiling when requested. The heap profile is captured
// later, in Stop, so it reflects the finished workload.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.MemPath}
	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("cannot create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cannot start cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	return s, nil
}

// Stop flushes every active profiler. Safe to call more than once.
func (s *Session) Stop() {
	if s == nil || s.done {
		return
	}
	s.done = true
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if s.memPath != "" {
		if err := writeHeapProfile(s.memPath); err != nil {
			fmt.Fprintf(os.Stderr, "flint: cannot write heap profile: %v\n", err)
		}
	}
}

func writeHeapProfile(path string) error {
	// #nosec G304 -- path comes from an explicit CLI flag
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
