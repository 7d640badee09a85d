package section

import (
	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// DataSymbol is one section-local symbol owning a contiguous byte range.
// For .bss symbols Data is nil and only the size is meaningful.
type DataSymbol struct {
	Symbol  *context.Symbol
	Section *Section
	Offset  uint32 // byte offset into the section
	Data    []byte

	// word index -> referenced symbol, for pointer words
	Pointers map[int]*context.Symbol

	// set by rodata migration: the function this symbol is emitted with
	MigratedTo *context.Symbol
}

// VRAM returns the symbol address.
func (d *DataSymbol) VRAM() uint32 {
	return d.Section.VRAMBase + d.Offset
}

// DataAnalyzer walks a .data or .rodata section, splits it at known symbol
// boundaries and tentatively types each slice.
type DataAnalyzer struct {
	logger  *log.Logger
	ctx     *context.Context
	section *Section
	ranges  *Ranges
	opts    options.Disassembler
}

// NewDataAnalyzer creates a data analyzer for one section.
func NewDataAnalyzer(logger *log.Logger, ctx *context.Context, sec *Section,
	ranges *Ranges, opts options.Disassembler) *DataAnalyzer {

	return &DataAnalyzer{
		logger:  logger,
		ctx:     ctx,
		section: sec,
		ranges:  ranges,
		opts:    opts,
	}
}

// Analyze splits the section into symbols and infers their types.
func (a *DataAnalyzer) Analyze() []*DataSymbol {
	boundaries := a.boundaries()

	var symbols []*DataSymbol
	for i, sym := range boundaries {
		start := sym.VRAM - a.section.VRAMBase
		end := a.section.ByteLen()
		if i+1 < len(boundaries) {
			end = boundaries[i+1].VRAM - a.section.VRAMBase
		}

		ds := &DataSymbol{
			Symbol:   sym,
			Section:  a.section,
			Offset:   start,
			Data:     a.section.Data[start:end],
			Pointers: map[int]*context.Symbol{},
		}
		a.ctx.SetSize(sym, end-start)
		a.classify(ds)
		symbols = append(symbols, ds)
	}
	return symbols
}

// boundaries returns the known symbols of the section sorted by address,
// ensuring one exists at the section base.
func (a *DataAnalyzer) boundaries() []*context.Symbol {
	base := a.ctx.GetOrCreate(a.section.Category, a.section.Overlay, a.section.VRAMBase)
	a.ctx.SetSection(base, a.section.Kind)

	var symbols []*context.Symbol
	for _, sym := range a.ctx.Symbols(a.section.Category, a.section.Overlay) {
		if !a.section.Contains(sym.VRAM) {
			continue
		}
		if sym.Type == context.TypeBranchLabel || sym.Type == context.TypeJumpTableLabel {
			continue // labels subdivide symbols, they do not own bytes
		}
		a.ctx.SetSection(sym, a.section.Kind)
		symbols = append(symbols, sym)
	}
	return symbols
}

// classify infers the slice type: access types recorded during pairing win,
// then string candidates, then pointer words.
func (a *DataAnalyzer) classify(ds *DataSymbol) {
	sym := ds.Symbol

	if sym.Type == context.TypeUnknown && sym.AccessSize != 0 {
		switch sym.AccessSize {
		case 1:
			a.ctx.PromoteType(sym, context.TypeByte)
		case 2:
			a.ctx.PromoteType(sym, context.TypeShort)
		}
	}

	if a.section.Kind == context.SectionRodata && a.opts.Features.StringDetection &&
		sym.Type == context.TypeUnknown && a.isStringCandidate(ds.Data) {
		if a.ctx.PromoteType(sym, context.TypeCString) {
			sym.MaybeString = true
			return
		}
	}

	a.findPointers(ds)
}

// isStringCandidate checks for a NUL terminated run of printable bytes
// with zero padding up to the next word boundary. The minimum length is a
// tunable, escape characters common in game text are allowed.
func (a *DataAnalyzer) isStringCandidate(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	end := -1
	for i, b := range data {
		if b == 0 {
			end = i
			break
		}
		if !printable(b) {
			return false
		}
	}
	if end < a.opts.StringMinLength {
		return false
	}

	// the assembler pads .asciz to the word boundary; anything else in the
	// padding means this is not a lone string
	for _, b := range data[end:] {
		if b != 0 {
			return false
		}
	}
	return true
}

func printable(b byte) bool {
	if b >= 0x20 && b <= 0x7e {
		return true
	}
	switch b {
	case '\t', '\n', '\r':
		return true
	}
	return false
}

// findPointers types words whose value is an address in a known section
// and registers the referents with the context.
func (a *DataAnalyzer) findPointers(ds *DataSymbol) {
	if ds.VRAM()%4 != 0 {
		return
	}

	for i := 0; i+4 <= len(ds.Data); i += 4 {
		word := AdjustWord(ds.Data[i:i+4], a.section.Endian)
		owner := a.ranges.Find(word)
		if owner == nil {
			continue
		}

		target := a.ctx.GetOrCreate(owner.Category, owner.Overlay, word)
		a.ctx.SetSection(target, owner.Kind)
		a.ctx.AddReferrer(target, ds.VRAM()+uint32(i))
		ds.Pointers[i/4] = target

		if ds.Symbol.Type == context.TypeUnknown {
			a.ctx.PromoteType(ds.Symbol, context.TypeWord)
		}
	}
}
