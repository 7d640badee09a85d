// Package migrate re-associates rodata symbols with the single function
// that references them so both can be emitted together.
package migrate

import (
	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/log"
)

// Migrator assigns rodata symbols to functions. It runs after all text
// sections are analyzed and paired, when every referrer is known.
type Migrator struct {
	logger *log.Logger
}

// New creates a migrator.
func New(logger *log.Logger) *Migrator {
	return &Migrator{logger: logger}
}

// Process marks each rodata symbol referenced by exactly one function as
// migrated into that function. Jump tables always migrate, their labels
// are function-local.
func (m *Migrator) Process(functions []*section.Function, rodata []*section.DataSymbol) {
	for _, ds := range rodata {
		if ds.Section.Kind != context.SectionRodata {
			continue
		}

		owner := m.singleReferrer(ds.Symbol, functions)
		if owner == nil {
			continue
		}

		if ds.Symbol.Type == context.TypeJumpTable {
			ds.MigratedTo = owner.Symbol
			continue
		}

		// migration requires the function and the rodata to belong to the
		// same translation unit; with no finer file split configured the
		// section pairing is the unit
		ds.MigratedTo = owner.Symbol
		m.logger.Debug("rodata migrated",
			log.Hex("vram", ds.VRAM()),
			log.Hex("function", owner.VRAM()))
	}
}

// singleReferrer returns the only function referencing the symbol, or nil
// if none or several do.
func (m *Migrator) singleReferrer(sym *context.Symbol, functions []*section.Function) *section.Function {
	var owner *section.Function
	for referrer := range sym.Referrers {
		fn := containing(functions, referrer)
		if fn == nil {
			return nil // referenced from outside any function, keep in place
		}
		if owner != nil && owner != fn {
			return nil // shared by several functions
		}
		owner = fn
	}
	return owner
}

func containing(functions []*section.Function, vram uint32) *section.Function {
	for _, fn := range functions {
		if fn.Contains(vram) {
			return fn
		}
	}
	return nil
}
