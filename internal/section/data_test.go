package section

import (
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testDataAnalyzer(t *testing.T, kind context.SectionKind, vram uint32,
	data []byte, sections ...*Section) (*DataAnalyzer, *context.Context) {
	t.Helper()

	logger := log.NewTestLogger(t)
	ctx := context.New(logger)
	sec := &Section{
		Kind:     kind,
		VRAMBase: vram,
		Data:     data,
		Endian:   mips.EndianBig,
	}
	ranges := NewRanges(append(sections, sec))
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	return NewDataAnalyzer(logger, ctx, sec, ranges, opts), ctx
}

func TestDataAnalyzeStringDetection(t *testing.T) {
	// "Hello" plus NUL and word padding
	data := []byte{'H', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00}
	analyzer, ctx := testDataAnalyzer(t, context.SectionRodata, 0x80010000, data)

	symbols := analyzer.Analyze()
	assert.Equal(t, 1, len(symbols))

	sym := ctx.Find("", 0, 0x80010000)
	assert.NotNil(t, sym)
	assert.Equal(t, context.TypeCString, sym.Type)
	assert.True(t, sym.MaybeString)
	assert.Equal(t, "STR_80010000", sym.DisplayName(context.NamingType))
	assert.Equal(t, "RO_80010000", sym.DisplayName(context.NamingSection))
}

func TestDataAnalyzeStringRejections(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no terminator", []byte{'H', 'i', '!', '!'}},
		{"too short", []byte{'H', 0x00, 0x00, 0x00}},
		{"unprintable", []byte{0x01, 0x02, 0x03, 0x00}},
		{"dirty padding", []byte{'H', 'i', 0x00, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer, ctx := testDataAnalyzer(t, context.SectionRodata, 0x80010000, tt.data)
			analyzer.Analyze()

			sym := ctx.Find("", 0, 0x80010000)
			assert.False(t, sym.Type == context.TypeCString)
		})
	}
}

func TestDataAnalyzeStringDetectionDisabled(t *testing.T) {
	logger := log.NewTestLogger(t)
	ctx := context.New(logger)
	sec := &Section{
		Kind:     context.SectionRodata,
		VRAMBase: 0x80010000,
		Data:     []byte{'H', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00},
		Endian:   mips.EndianBig,
	}
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	opts.Features.StringDetection = false

	analyzer := NewDataAnalyzer(logger, ctx, sec, NewRanges([]*Section{sec}), opts)
	analyzer.Analyze()

	sym := ctx.Find("", 0, 0x80010000)
	assert.Equal(t, context.TypeUnknown, sym.Type)
}

func TestDataAnalyzePointerDetection(t *testing.T) {
	text := &Section{
		Kind:     context.SectionText,
		VRAMBase: 0x80001000,
		Data:     make([]byte, 0x100),
		Endian:   mips.EndianBig,
	}

	analyzer, ctx := testDataAnalyzer(t, context.SectionData, 0x80020000,
		words(0x80001050, 0x00000007), text)

	symbols := analyzer.Analyze()
	assert.Equal(t, 1, len(symbols))
	assert.Equal(t, context.TypeWord, symbols[0].Symbol.Type)

	target, ok := symbols[0].Pointers[0]
	assert.True(t, ok)
	assert.Equal(t, uint32(0x80001050), target.VRAM)
	assert.Equal(t, 1, target.ReferenceCount)

	// the second word is no address
	_, ok = symbols[0].Pointers[1]
	assert.False(t, ok)

	assert.NotNil(t, ctx.Find("", 0, 0x80001050))
}

func TestDataAnalyzeSplitsAtKnownSymbols(t *testing.T) {
	analyzer, ctx := testDataAnalyzer(t, context.SectionData, 0x80020000,
		words(0x11111111, 0x22222222, 0x33333333))

	// a symbol discovered during pairing splits the section
	sym := ctx.GetOrCreate("", 0, 0x80020008)
	ctx.SetSection(sym, context.SectionData)

	symbols := analyzer.Analyze()
	assert.Equal(t, 2, len(symbols))
	assert.Equal(t, uint32(0x80020000), symbols[0].VRAM())
	assert.Equal(t, 8, len(symbols[0].Data))
	assert.Equal(t, uint32(0x80020008), symbols[1].VRAM())
	assert.Equal(t, 4, len(symbols[1].Data))

	// sizes recorded on the context symbols
	assert.Equal(t, uint32(8), symbols[0].Symbol.Size)
	assert.Equal(t, uint32(4), symbols[1].Symbol.Size)
}

func TestDataAnalyzeAccessTypes(t *testing.T) {
	analyzer, ctx := testDataAnalyzer(t, context.SectionData, 0x80020000,
		words(0x00000000))

	sym := ctx.GetOrCreate("", 0, 0x80020000)
	ctx.SetAccessType(sym, 1, true)

	analyzer.Analyze()
	assert.Equal(t, context.TypeByte, sym.Type)
}
