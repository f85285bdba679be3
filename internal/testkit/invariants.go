// Package testkit holds assertions shared by the parser and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stellar/internal/ast"
	"stellar/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed module:
//  1. the module span lies within the file content;
//  2. item spans are non-empty, ordered and nested in the module span;
//  3. every statement and expression the builder allocated points into the
//     same file with Start <= End <= len(content).
func CheckSpanInvariants(b *ast.Builder, mod ast.ModuleID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	m := b.Modules.Get(mod)
	if m == nil {
		return fmt.Errorf("module %d not found", mod)
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}

	if m.File != sf.ID {
		return fmt.Errorf("module file mismatch: got=%d want=%d", m.File, sf.ID)
	}
	if err := checkSpan("module", m.Span, sf.ID, size); err != nil {
		return err
	}

	var prev source.Span
	for i, id := range m.Items {
		item := b.Items.Get(id)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", id)
		}
		sp := item.Span
		if sp.Empty() {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if err := checkSpan("item", sp, sf.ID, size); err != nil {
			return err
		}
		if sp.Start < m.Span.Start || sp.End > m.Span.End {
			return fmt.Errorf("item span %v is outside module span %v", sp, m.Span)
		}
		// элементы идут в порядке исходника
		if i > 0 && prev.End > sp.Start {
			return fmt.Errorf("item %d overlaps its predecessor: %v then %v", i, prev, sp)
		}
		prev = sp
	}

	for i, st := range b.Stmts.Arena.Slice() {
		if err := checkSpan(fmt.Sprintf("stmt #%d", i+1), st.Span, sf.ID, size); err != nil {
			return err
		}
	}
	for i, ex := range b.Exprs.Arena.Slice() {
		if err := checkSpan(fmt.Sprintf("expr #%d (%s)", i+1, ex.Kind), ex.Span, sf.ID, size); err != nil {
			return err
		}
	}
	return nil
}

func checkSpan(what string, sp source.Span, file source.FileID, size uint32) error {
	if sp.File != file {
		return fmt.Errorf("%s span points to file %d, want %d", what, sp.File, file)
	}
	if sp.Start > sp.End {
		return fmt.Errorf("%s span is inverted: %v", what, sp)
	}
	if sp.End > size {
		return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, size)
	}
	return nil
}
