package writer

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/program"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

func words(ws ...uint32) []byte {
	data := make([]byte, len(ws)*4)
	for i, w := range ws {
		binary.BigEndian.PutUint32(data[i*4:], w)
	}
	return data
}

func testApp(t *testing.T) (*program.Program, *context.Context) {
	t.Helper()
	ctx := context.New(log.NewTestLogger(t))
	return program.New(ctx, nil), ctx
}

func write(t *testing.T, app *program.Program, wopts Options) string {
	t.Helper()
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	var buf bytes.Buffer
	assert.NoError(t, New(app, &buf, opts, wopts).Write())
	return buf.String()
}

func TestWriteFunctionWithHexComments(t *testing.T) {
	app, ctx := testApp(t)

	sec := &section.Section{
		Kind:     context.SectionText,
		VRAMBase: 0x80000000,
		Data:     words(0x03E00008, 0x00000000),
		Endian:   mips.EndianBig,
	}
	app.Sections = []*section.Section{sec}

	sym := ctx.GetOrCreate("", 0, 0x80000000)
	ctx.PromoteType(sym, context.TypeFunction)
	app.Functions = []*section.Function{{
		Symbol:  sym,
		Section: sec,
		Instructions: []mips.Instruction{
			mips.Decode(0x03E00008, mips.DialectR4300),
			mips.Decode(0x00000000, mips.DialectR4300),
		},
		References: map[int]section.Reference{},
		Labels:     map[uint32]*context.Symbol{},
		Collapsed:  map[int]struct{}{},
	}}

	out := write(t, app, Options{HexComments: true})
	assert.Contains(t, out, ".section .text")
	assert.Contains(t, out, "glabel func_80000000")
	assert.Contains(t, out, "/* 80000000 03E00008 */  jr          $ra")
	assert.Contains(t, out, "/* 80000004 00000000 */  nop")
}

func TestWriteDataDirectives(t *testing.T) {
	app, ctx := testApp(t)

	sec := &section.Section{
		Kind:     context.SectionRodata,
		VRAMBase: 0x80010000,
		Endian:   mips.EndianBig,
	}
	app.Sections = []*section.Section{sec}

	newSym := func(vram uint32, typ context.SymbolType, data []byte, offset uint32) *section.DataSymbol {
		sym := ctx.GetOrCreate("", 0, vram)
		ctx.SetSection(sym, context.SectionRodata)
		ctx.PromoteType(sym, typ)
		return &section.DataSymbol{
			Symbol:   sym,
			Section:  sec,
			Offset:   offset,
			Data:     data,
			Pointers: map[int]*context.Symbol{},
		}
	}

	// 2.0f and 0.5 as raw bits
	floatBits := words(0x40000000)
	doubleBits := words(0x3FE00000, 0x00000000)

	app.Data = []*section.DataSymbol{
		newSym(0x80010000, context.TypeCString, []byte{'H', 'i', '\n', 0x00}, 0),
		newSym(0x80010004, context.TypeFloat, floatBits, 4),
		newSym(0x80010008, context.TypeDouble, doubleBits, 8),
		newSym(0x80010010, context.TypeWord, words(0x12345678), 0x10),
		newSym(0x80010014, context.TypeUnknown, []byte{0xAA, 0xBB}, 0x14),
	}

	out := write(t, app, Options{})
	assert.Contains(t, out, `.asciz "Hi\n"`)
	assert.Contains(t, out, ".float 2")
	assert.Contains(t, out, ".double 0.5")
	assert.Contains(t, out, ".word 0x12345678")
	assert.Contains(t, out, ".byte 0xAA, 0xBB")
}

func TestWriteBss(t *testing.T) {
	app, ctx := testApp(t)

	sec := &section.Section{
		Kind:     context.SectionBss,
		VRAMBase: 0x80100000,
		Size:     0x40,
	}
	app.Sections = []*section.Section{sec}

	sym := ctx.GetOrCreate("", 0, 0x80100000)
	ctx.SetSection(sym, context.SectionBss)
	ctx.SetSize(sym, 0x40)
	app.Data = []*section.DataSymbol{{Symbol: sym, Section: sec}}

	out := write(t, app, Options{})
	assert.Contains(t, out, ".section .bss")
	assert.Contains(t, out, "glabel B_80100000")
	assert.Contains(t, out, ".space 0x40")
}

func TestWritePointerWord(t *testing.T) {
	app, ctx := testApp(t)

	sec := &section.Section{
		Kind:     context.SectionData,
		VRAMBase: 0x80020000,
		Endian:   mips.EndianBig,
	}
	app.Sections = []*section.Section{sec}

	target := &context.Symbol{
		VRAM: 0x80001000, Type: context.TypeFunction, Referrers: set.New[uint32](),
	}
	sym := ctx.GetOrCreate("", 0, 0x80020000)
	ctx.SetSection(sym, context.SectionData)
	ctx.PromoteType(sym, context.TypeWord)
	app.Data = []*section.DataSymbol{{
		Symbol:   sym,
		Section:  sec,
		Data:     words(0x80001000),
		Pointers: map[int]*context.Symbol{0: target},
	}}

	out := write(t, app, Options{})
	assert.Contains(t, out, ".word func_80001000")
}
