package section

import (
	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/retrogolib/log"
)

// BssAnalyzer sizes the symbols of a .bss section. The section has no
// bytes; its symbols are created by .text references during pairing, so
// bss analysis must run after all text sections.
type BssAnalyzer struct {
	logger  *log.Logger
	ctx     *context.Context
	section *Section
}

// NewBssAnalyzer creates a bss analyzer for one section.
func NewBssAnalyzer(logger *log.Logger, ctx *context.Context, sec *Section) *BssAnalyzer {
	return &BssAnalyzer{
		logger:  logger,
		ctx:     ctx,
		section: sec,
	}
}

// Analyze sizes each symbol by the gap to its successor.
func (a *BssAnalyzer) Analyze() []*DataSymbol {
	base := a.ctx.GetOrCreate(a.section.Category, a.section.Overlay, a.section.VRAMBase)
	a.ctx.SetSection(base, context.SectionBss)

	var inRange []*context.Symbol
	for _, sym := range a.ctx.Symbols(a.section.Category, a.section.Overlay) {
		if a.section.Contains(sym.VRAM) {
			a.ctx.SetSection(sym, context.SectionBss)
			inRange = append(inRange, sym)
		}
	}

	symbols := make([]*DataSymbol, 0, len(inRange))
	for i, sym := range inRange {
		end := a.section.VRAMBase + a.section.ByteLen()
		if i+1 < len(inRange) {
			end = inRange[i+1].VRAM
		}
		a.ctx.SetSize(sym, end-sym.VRAM)

		symbols = append(symbols, &DataSymbol{
			Symbol:  sym,
			Section: a.section,
			Offset:  sym.VRAM - a.section.VRAMBase,
		})
	}
	return symbols
}
