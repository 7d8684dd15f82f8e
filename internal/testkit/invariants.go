// Package testkit holds structural checks shared by tests across packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"flint/internal/ast"
	"flint/internal/source"
)

// CheckSpanInvariants verifies the span bookkeeping of a parsed file:
// the file span stays inside the content bounds, every item span is
// non-empty and contained in the file span, and the file span covers the
// union of the item spans.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points at file id %d, want %d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	if len(f.Items) == 0 {
		return nil
	}
	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file with items has empty span: %v", f.Span)
	}

	var union source.Span
	haveItem := false
	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id %d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got %d, want %d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item span %v outside file span %v", sp, f.Span)
		}
		if haveItem {
			union = union.Cover(sp)
		} else {
			union = sp
			haveItem = true
		}
	}
	if union.Start < f.Span.Start || union.End > f.Span.End {
		return fmt.Errorf("file span %v does not cover item union %v", f.Span, union)
	}
	return nil
}
