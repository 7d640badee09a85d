// Package pairing reconstructs 32 bit addresses from the hi/lo immediate
// halves split across lui and its users.
package pairing

import (
	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/dialect"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/log"
)

// Pairer rewrites the immediates of one function at a time. Functions are
// independent, so the pairing phase may run them in parallel; all shared
// state lives in the context.
type Pairer struct {
	logger   *log.Logger
	ctx      *context.Context
	ranges   *section.Ranges
	opts     options.Disassembler
	strategy *dialect.Strategy
}

// New creates a pairer.
func New(logger *log.Logger, ctx *context.Context, ranges *section.Ranges,
	opts options.Disassembler, strategy *dialect.Strategy) *Pairer {

	return &Pairer{
		logger:   logger,
		ctx:      ctx,
		ranges:   ranges,
		opts:     opts,
		strategy: strategy,
	}
}

type trackedLui struct {
	index int
	upper uint16
}

// Pair walks the function in instruction order and attaches symbolic
// references for every successful hi/lo pair. Pairings never cross the
// function boundary.
func (p *Pairer) Pair(fn *section.Function) {
	lastLui := map[mips.Reg]trackedLui{}
	callInvalidate := -1 // index after which tracked state clears

	for i, ins := range fn.Instructions {
		if callInvalidate >= 0 && i > callInvalidate {
			clear(lastLui)
			callInvalidate = -1
		}

		flags := ins.Flags()

		switch {
		case flags&mips.FlagHiImm != 0:
			lastLui[ins.Rt()] = trackedLui{index: i, upper: ins.Imm()}
			continue // the record must survive its own destination write

		case flags&mips.FlagLoImmSigned != 0:
			if p.opts.HasGpValue && ins.Rs() == mips.RegGp &&
				flags&mips.FlagGpRelCandidate != 0 {
				p.commitGpRel(fn, i, ins)
				break
			}
			hi, ok := lastLui[ins.Rs()]
			if !ok {
				break
			}
			addr := uint32(hi.upper)<<16 + uint32(ins.SImm())
			p.commitPair(fn, hi.index, i, ins, addr)

		case flags&mips.FlagLoImmZeroExt != 0:
			hi, ok := lastLui[ins.Rs()]
			if !ok {
				break
			}
			constant := uint32(hi.upper)<<16 | uint32(ins.Imm())
			fn.Constants[hi.index] = constant
			fn.Constants[i] = constant
		}

		if dest, ok := ins.DestReg(); ok {
			delete(lastLui, dest)
		}

		// calls clear conservatively, but only after their delay slot
		if ins.IsFunctionCall() && p.strategy.InvalidateOnCall() {
			callInvalidate = i + 1
		}
	}
}

// commitPair resolves the combined address and attaches hi and lo
// references. Unresolvable addresses inside a known section create an
// untyped symbol; addresses outside all sections keep their numeric form.
func (p *Pairer) commitPair(fn *section.Function, hiIndex, loIndex int,
	ins mips.Instruction, addr uint32) {

	if addr < p.opts.PairingMinAddress {
		return
	}

	sym, addend := p.resolve(fn, addr)
	if sym == nil {
		return
	}

	fn.References[hiIndex] = section.Reference{Kind: section.RefHi, Symbol: sym, Addend: addend}
	fn.References[loIndex] = section.Reference{Kind: section.RefLo, Symbol: sym, Addend: addend}
	p.ctx.AddReferrer(sym, fn.VRAM()+uint32(loIndex)*4)
	p.noteAccess(sym, ins)
}

func (p *Pairer) commitGpRel(fn *section.Function, i int, ins mips.Instruction) {
	addr := p.opts.GpValue + uint32(ins.SImm())

	sym, addend := p.resolve(fn, addr)
	if sym == nil {
		return
	}

	fn.References[i] = section.Reference{Kind: section.RefGpRel, Symbol: sym, Addend: addend}
	p.ctx.AddReferrer(sym, fn.VRAM()+uint32(i)*4)
	p.noteAccess(sym, ins)
}

func (p *Pairer) resolve(fn *section.Function, addr uint32) (*context.Symbol, int32) {
	category := fn.Section.Category
	overlay := fn.Section.Overlay

	if sym := p.ctx.Find(category, overlay, addr); sym != nil {
		return sym, 0
	}
	if sym, offset := p.ctx.FindContaining(category, overlay, addr); sym != nil {
		return sym, int32(offset)
	}

	owner := p.ranges.Find(addr)
	if owner == nil {
		p.logger.Debug("unpaired address outside known sections",
			log.Hex("addr", addr))
		return nil, 0
	}

	sym := p.ctx.GetOrCreate(owner.Category, owner.Overlay, addr)
	p.ctx.SetSection(sym, owner.Kind)
	return sym, 0
}

// noteAccess records the access width of a load or store on the symbol and
// promotes float/double types for FPU accesses.
func (p *Pairer) noteAccess(sym *context.Symbol, ins mips.Instruction) {
	if !ins.IsLoad() && !ins.IsStore() {
		return
	}

	p.ctx.SetAccessType(sym, ins.AccessSize(), ins.AccessUnsigned())

	if !p.opts.Features.FloatDetection || sym.Section == context.SectionText {
		return
	}
	switch {
	case ins.Flags()&mips.FlagDouble != 0:
		p.ctx.PromoteType(sym, context.TypeDouble)
	case ins.Flags()&mips.FlagFloat != 0:
		p.ctx.PromoteType(sym, context.TypeFloat)
	}
}
