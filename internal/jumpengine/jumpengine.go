// Package jumpengine provides jump table detection and processing.
package jumpengine

import (
	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/log"
)

// JumpEngine detects jump tables: rodata arrays of .text pointers driven
// by an indexed load and an indirect jump inside one function.
type JumpEngine struct {
	logger *log.Logger
	ctx    *context.Context
}

// New creates a new jump engine.
func New(logger *log.Logger, ctx *context.Context) *JumpEngine {
	return &JumpEngine{
		logger: logger,
		ctx:    ctx,
	}
}

// Process inspects every function with an indirect jump and promotes the
// rodata arrays it indexes into jump tables with per-entry labels.
func (j *JumpEngine) Process(functions []*section.Function, dataSymbols []*section.DataSymbol) {
	bySymbol := make(map[*context.Symbol]*section.DataSymbol, len(dataSymbols))
	for _, ds := range dataSymbols {
		bySymbol[ds.Symbol] = ds
	}

	for _, fn := range functions {
		if !j.hasIndirectJump(fn) {
			continue
		}

		for _, ref := range fn.References {
			if ref.Kind != section.RefLo || ref.Addend != 0 {
				continue
			}
			ds, ok := bySymbol[ref.Symbol]
			if !ok || ds.Section.Kind != context.SectionRodata {
				continue
			}
			j.tryPromote(fn, ds)
		}
	}
}

// hasIndirectJump returns whether the function jumps through a register
// other than $ra.
func (j *JumpEngine) hasIndirectJump(fn *section.Function) bool {
	for _, ins := range fn.Instructions {
		if ins.Opcode == mips.Jr && ins.Rs() != mips.RegRa {
			return true
		}
	}
	return false
}

// tryPromote checks that every word of the candidate array targets the
// function interior and promotes table and entries.
func (j *JumpEngine) tryPromote(fn *section.Function, ds *section.DataSymbol) {
	words := len(ds.Data) / 4
	if words < 2 {
		return
	}

	targets := make([]uint32, 0, words)
	for i := range words {
		target := section.AdjustWord(ds.Data[i*4:i*4+4], ds.Section.Endian)
		if !fn.Contains(target) {
			// trailing zero padding after the table is fine
			if target == 0 && allZero(ds.Data[i*4:]) {
				break
			}
			return
		}
		targets = append(targets, target)
	}
	if len(targets) < 2 {
		return
	}

	if !j.ctx.PromoteType(ds.Symbol, context.TypeJumpTable) {
		return
	}
	j.logger.Debug("jump table detected",
		log.Hex("vram", ds.VRAM()),
		log.Int("entries", len(targets)))

	for i, target := range targets {
		label := j.ctx.GetOrCreate(fn.Section.Category, fn.Section.Overlay, target)
		j.ctx.PromoteType(label, context.TypeJumpTableLabel)
		j.ctx.SetSection(label, context.SectionText)
		j.ctx.AddReferrer(label, ds.VRAM()+uint32(i)*4)
		fn.Labels[target] = label
		ds.Pointers[i] = label
	}
}

func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
