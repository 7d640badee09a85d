package section

import (
	"fmt"
	"sort"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/dialect"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// RefKind classifies a symbolic operand reference.
type RefKind uint8

const (
	RefHi RefKind = iota // %hi upper half
	RefLo                // %lo lower half
	RefGpRel             // %gp_rel access
	RefBranch
	RefCall
)

// Reference is one symbolic operand produced by analysis. References live
// in per-function overlays; the decoded instructions stay untouched.
type Reference struct {
	Kind   RefKind
	Symbol *context.Symbol
	Addend int32 // offset into the symbol for interior references
}

// Function is one discovered function with its decoded instructions and
// the overlays the later phases attach.
type Function struct {
	Symbol     *context.Symbol
	Section    *Section
	StartIndex int // word index of the entry point

	Instructions []mips.Instruction
	Handwritten  bool

	// overlays keyed by instruction index relative to the function start
	References map[int]Reference
	Constants  map[int]uint32       // unresolved lui/ori constant pairs
	Collapsed  map[int]struct{}     // absorbed by compiler workarounds
	Labels     map[uint32]*context.Symbol
}

// VRAM returns the function entry address.
func (f *Function) VRAM() uint32 {
	return f.Section.VRAMOf(f.StartIndex)
}

// End returns the first address past the function.
func (f *Function) End() uint32 {
	return f.VRAM() + uint32(len(f.Instructions))*4
}

// Contains returns whether the address falls inside the function span.
func (f *Function) Contains(vram uint32) bool {
	return vram >= f.VRAM() && vram < f.End()
}

// TextAnalyzer walks a .text section and discovers functions, branch
// labels and call targets.
type TextAnalyzer struct {
	logger   *log.Logger
	ctx      *context.Context
	section  *Section
	opts     options.Disassembler
	strategy *dialect.Strategy
}

// NewTextAnalyzer creates a text analyzer for one section.
func NewTextAnalyzer(logger *log.Logger, ctx *context.Context, sec *Section,
	opts options.Disassembler, strategy *dialect.Strategy) *TextAnalyzer {

	return &TextAnalyzer{
		logger:   logger,
		ctx:      ctx,
		section:  sec,
		opts:     opts,
		strategy: strategy,
	}
}

// Analyze decodes the section and splits it into functions.
func (a *TextAnalyzer) Analyze() []*Function {
	count := a.section.WordCount()
	instrs := make([]mips.Instruction, count)
	for i := range count {
		instrs[i] = a.strategy.Decode(a.section.Word(i))
	}

	entries := a.findEntries(instrs)

	var functions []*Function
	for i, entry := range entries {
		end := count
		if i+1 < len(entries) {
			end = entries[i+1]
		}
		functions = append(functions, a.splitChunk(instrs, entry, end)...)
	}

	for _, fn := range functions {
		a.analyzeFunction(fn)
	}
	return functions
}

// findEntries collects function entry candidates: the section base, user
// declared functions and every call target inside the section.
func (a *TextAnalyzer) findEntries(instrs []mips.Instruction) []int {
	entries := set.New[int]()
	entries.Add(0)

	for _, sym := range a.ctx.Symbols(a.section.Category, a.section.Overlay) {
		if sym.Type == context.TypeFunction && a.section.Contains(sym.VRAM) {
			entries.Add(int(sym.VRAM-a.section.VRAMBase) / 4)
		}
	}

	for i, ins := range instrs {
		if !ins.IsFunctionCall() {
			continue
		}

		var target uint32
		switch {
		case ins.IsJump() && ins.Opcode == mips.Jal:
			target = ins.JumpTarget(a.section.VRAMOf(i))
		case ins.IsBranch():
			target = ins.BranchTarget(a.section.VRAMOf(i))
		default:
			continue // jalr, target unknown
		}

		sym := a.ctx.GetOrCreate(a.section.Category, a.section.Overlay, target)
		a.ctx.PromoteType(sym, context.TypeFunction)
		a.ctx.SetSection(sym, context.SectionText)
		a.ctx.AddReferrer(sym, a.section.VRAMOf(i))

		if a.section.Contains(target) {
			entries.Add(int(target-a.section.VRAMBase) / 4)
		}
	}

	sorted := make([]int, 0, len(entries))
	for e := range entries {
		sorted = append(sorted, e)
	}
	sort.Ints(sorted)
	return sorted
}

// splitChunk slices the instructions between two known entries into one or
// more functions. A function ends after a jr $ra plus delay slot; trailing
// alignment nops stay with it. Remaining code before the next entry starts
// a new function when boundary detection is enabled.
func (a *TextAnalyzer) splitChunk(instrs []mips.Instruction, start, end int) []*Function {
	var functions []*Function

	for start < end {
		stop := a.findTerminator(instrs, start, end)
		if stop < end && !a.opts.Features.BoundaryDetection {
			// without boundary detection the function extends to the
			// next known entry
			stop = end
		}
		functions = append(functions, a.newFunction(instrs, start, stop))
		start = stop
	}
	return functions
}

// findTerminator returns the first index past the function starting at
// start: past the jr $ra delay slot and any alignment nops, or end if no
// return is found before it.
func (a *TextAnalyzer) findTerminator(instrs []mips.Instruction, start, end int) int {
	for i := start; i < end; i++ {
		if !instrs[i].IsFunctionReturn() {
			continue
		}

		stop := i + 2 // include the delay slot
		if stop > end {
			stop = end
		}
		for stop < end && instrs[stop].Raw == 0 {
			stop++ // alignment padding belongs to the function
		}
		return stop
	}

	a.ctx.AddDiagnostic(a.section.VRAMOf(start), fmt.Sprintf(
		"function end not found before section end at 0x%08X",
		a.section.VRAMOf(end)))
	return end
}

func (a *TextAnalyzer) newFunction(instrs []mips.Instruction, start, stop int) *Function {
	vram := a.section.VRAMOf(start)
	sym := a.ctx.GetOrCreate(a.section.Category, a.section.Overlay, vram)
	a.ctx.PromoteType(sym, context.TypeFunction)
	a.ctx.SetSection(sym, context.SectionText)
	a.ctx.SetSize(sym, uint32(stop-start)*4)

	return &Function{
		Symbol:       sym,
		Section:      a.section,
		StartIndex:   start,
		Instructions: instrs[start:stop],
		References:   map[int]Reference{},
		Constants:    map[int]uint32{},
		Collapsed:    map[int]struct{}{},
		Labels:       map[uint32]*context.Symbol{},
	}
}

// analyzeFunction records branch labels, call references and compiler
// workaround collapses for one function.
func (a *TextAnalyzer) analyzeFunction(fn *Function) {
	if a.opts.Features.HandwrittenDetection {
		fn.Handwritten = !a.strategy.HasPrologue(fn.Instructions)
		if fn.Handwritten {
			a.logger.Debug("likely handwritten function",
				log.Hex("vram", fn.VRAM()))
		}
	}

	for i, ins := range fn.Instructions {
		vram := fn.VRAM() + uint32(i)*4

		if _, collapsed := fn.Collapsed[i]; collapsed {
			continue
		}
		if _, absorbed, ok := a.strategy.CollapseDivTrap(fn.Instructions, i); ok {
			for _, idx := range absorbed {
				fn.Collapsed[idx] = struct{}{}
			}
		}

		switch {
		case ins.IsFunctionCall():
			var target uint32
			switch {
			case ins.Opcode == mips.Jal:
				target = ins.JumpTarget(vram)
			case ins.IsBranch():
				target = ins.BranchTarget(vram)
			default:
				continue // jalr, target unknown
			}
			sym := a.ctx.Find(fn.Section.Category, fn.Section.Overlay, target)
			if sym != nil {
				fn.References[i] = Reference{Kind: RefCall, Symbol: sym}
			}
		case ins.IsBranch():
			target := ins.BranchTarget(vram)
			if !a.section.Contains(target) {
				a.ctx.AddDiagnostic(vram, fmt.Sprintf(
					"branch target 0x%08X outside section", target))
				continue
			}
			sym := a.ctx.GetOrCreate(fn.Section.Category, fn.Section.Overlay, target)
			a.ctx.PromoteType(sym, context.TypeBranchLabel)
			a.ctx.SetSection(sym, context.SectionText)
			if fn.Contains(target) {
				fn.Labels[target] = sym
			}
			fn.References[i] = Reference{Kind: RefBranch, Symbol: sym}
		}
	}
}
