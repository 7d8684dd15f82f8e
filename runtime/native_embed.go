// Package runtimeembed ships the native runtime sources inside the
// compiler binary so builds need no installed support files.
package runtimeembed

import (
	"embed"
	"io/fs"
)

//go:embed native/*.c native/*.h
var nativeRuntimeFS embed.FS

// NativeRuntimeFS exposes the embedded runtime sources to the backend.
func NativeRuntimeFS() fs.FS {
	return nativeRuntimeFS
}
