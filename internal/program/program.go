// Package program represents the analyzed output consumed by the writer.
package program

import (
	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/section"
)

// Program is the result of one analysis run: the populated context plus
// every analyzed section's symbols, in input order.
type Program struct {
	Context  *context.Context
	Sections []*section.Section

	// functions per text section, in address order
	Functions []*section.Function

	// data, rodata and bss symbols in address order
	Data []*section.DataSymbol
}

// New creates an empty program for the given sections.
func New(ctx *context.Context, sections []*section.Section) *Program {
	return &Program{
		Context:  ctx,
		Sections: sections,
	}
}

// FunctionAt returns the function starting at the address, or nil.
func (p *Program) FunctionAt(vram uint32) *section.Function {
	for _, fn := range p.Functions {
		if fn.VRAM() == vram {
			return fn
		}
	}
	return nil
}

// MigratedInto returns the rodata symbols migrated into the function, in
// original section order.
func (p *Program) MigratedInto(fn *section.Function) []*section.DataSymbol {
	var migrated []*section.DataSymbol
	for _, ds := range p.Data {
		if ds.MigratedTo == fn.Symbol {
			migrated = append(migrated, ds)
		}
	}
	return migrated
}
