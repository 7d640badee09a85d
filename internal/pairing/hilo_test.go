package pairing

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/dialect"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type pairerEnv struct {
	ctx    *context.Context
	fn     *section.Function
	pairer *Pairer
}

func testPairer(t *testing.T, opts options.Disassembler, textWords []uint32,
	extraSections ...*section.Section) *pairerEnv {
	t.Helper()

	logger := log.NewTestLogger(t)
	ctx := context.New(logger)

	data := make([]byte, len(textWords)*4)
	for i, w := range textWords {
		binary.BigEndian.PutUint32(data[i*4:], w)
	}
	sec := &section.Section{
		Kind:     context.SectionText,
		VRAMBase: 0x80000000,
		Data:     data,
		Endian:   mips.EndianBig,
	}

	strategy := dialect.New(opts)
	analyzer := section.NewTextAnalyzer(logger, ctx, sec, opts, strategy)
	functions := analyzer.Analyze()
	assert.Equal(t, 1, len(functions))

	ranges := section.NewRanges(append(extraSections, sec))
	return &pairerEnv{
		ctx:    ctx,
		fn:     functions[0],
		pairer: New(logger, ctx, ranges, opts, strategy),
	}
}

func defaultOpts() options.Disassembler {
	return options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
}

// the simple function of the specification seed case: a lui/addiu pair
// reconstructing an address inside the section.
func TestPairSimpleFunction(t *testing.T) {
	data := &section.Section{
		Kind:     context.SectionData,
		VRAMBase: 0x80000010,
		Data:     make([]byte, 0x10),
		Endian:   mips.EndianBig,
	}
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C1C8000, // lui $gp, 0x8000
		0x279C0010, // addiu $gp, $gp, 0x10
		0x03E00008, // jr $ra
		0x00000000, // nop
	}, data)

	env.pairer.Pair(env.fn)

	hi, ok := env.fn.References[0]
	assert.True(t, ok)
	assert.Equal(t, section.RefHi, hi.Kind)
	lo, ok := env.fn.References[1]
	assert.True(t, ok)
	assert.Equal(t, section.RefLo, lo.Kind)
	assert.Equal(t, hi.Symbol, lo.Symbol)
	assert.Equal(t, uint32(0x80000010), lo.Symbol.VRAM)

	// pairing soundness: upper<<16 + signed low == symbol vram + addend
	upper := uint32(0x8000) << 16
	low := int32(0x0010)
	assert.Equal(t, lo.Symbol.VRAM+uint32(lo.Addend), upper+uint32(low))
}

func TestPairLoadStore(t *testing.T) {
	bss := &section.Section{
		Kind:     context.SectionBss,
		VRAMBase: 0x80100000,
		Size:     0x100,
	}
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C028010, // lui $v0, 0x8010
		0x90430020, // lbu $v1, 0x20($v0)
		0x3C028010, // lui $v0, 0x8010
		0xA4430028, // sh $v1, 0x28($v0)
		0x03E00008, // jr $ra
		0x00000000, // nop
	}, bss)

	env.pairer.Pair(env.fn)

	lo, ok := env.fn.References[1]
	assert.True(t, ok)
	assert.Equal(t, uint32(0x80100020), lo.Symbol.VRAM)
	assert.Equal(t, uint8(1), lo.Symbol.AccessSize)
	assert.True(t, lo.Symbol.AccessUnsigned)
	assert.Equal(t, context.SectionBss, lo.Symbol.Section)

	lo2, ok := env.fn.References[3]
	assert.True(t, ok)
	assert.Equal(t, uint32(0x80100028), lo2.Symbol.VRAM)
	assert.Equal(t, uint8(2), lo2.Symbol.AccessSize)
}

// one lui can feed several low users, common for struct field access.
func TestPairMultiUse(t *testing.T) {
	bss := &section.Section{
		Kind:     context.SectionBss,
		VRAMBase: 0x80100000,
		Size:     0x100,
	}
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C038010, // lui $v1, 0x8010
		0x8C620000, // lw $v0, 0x0($v1)
		0x8C640004, // lw $a0, 0x4($v1)
		0x03E00008, // jr $ra
		0x00000000, // nop
	}, bss)

	env.pairer.Pair(env.fn)

	lo1, ok := env.fn.References[1]
	assert.True(t, ok)
	lo2, ok := env.fn.References[2]
	assert.True(t, ok)
	assert.Equal(t, uint32(0x80100000), lo1.Symbol.VRAM)
	assert.Equal(t, uint32(0x80100004), lo2.Symbol.VRAM)

	hi, ok := env.fn.References[0]
	assert.True(t, ok)
	// the hi keeps the reference of its last pairing
	assert.Equal(t, lo2.Symbol, hi.Symbol)
}

func TestPairInvalidation(t *testing.T) {
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C028010, // lui $v0, 0x8010
		0x00402021, // move $a0, $v0 (addu) - does not write $v0
		0x24020005, // li $v0, 5 - overwrites $v0
		0x8C430020, // lw $v1, 0x20($v0) - must not pair
		0x03E00008, // jr $ra
		0x00000000, // nop
	})

	env.pairer.Pair(env.fn)
	_, ok := env.fn.References[3]
	assert.False(t, ok)
}

func TestPairCallInvalidation(t *testing.T) {
	bss := &section.Section{
		Kind:     context.SectionBss,
		VRAMBase: 0x80100000,
		Size:     0x1000,
	}
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C088010, // lui $t0, 0x8010
		0x0C000010, // jal (outside section, no split)
		0x8D020000, // lw $v0, 0x0($t0) - delay slot still pairs
		0x8D030004, // lw $v1, 0x4($t0) - after the call, must not pair
		0x03E00008, // jr $ra
		0x00000000, // nop
	}, bss)

	env.pairer.Pair(env.fn)

	_, ok := env.fn.References[2]
	assert.True(t, ok)
	_, ok = env.fn.References[3]
	assert.False(t, ok)
}

func TestPairOriConstant(t *testing.T) {
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C02DEAD, // lui $v0, 0xDEAD
		0x3442BEEF, // ori $v0, $v0, 0xBEEF
		0x03E00008, // jr $ra
		0x00000000, // nop
	})

	env.pairer.Pair(env.fn)

	assert.Equal(t, uint32(0xDEADBEEF), env.fn.Constants[0])
	assert.Equal(t, uint32(0xDEADBEEF), env.fn.Constants[1])
	_, ok := env.fn.References[1]
	assert.False(t, ok)
}

// addresses outside all known sections keep their numeric immediates.
func TestPairOutsideSections(t *testing.T) {
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C02A460, // lui $v0, 0xA460 - hardware register range
		0x8C430010, // lw $v1, 0x10($v0)
		0x03E00008, // jr $ra
		0x00000000, // nop
	})

	env.pairer.Pair(env.fn)
	_, ok := env.fn.References[1]
	assert.False(t, ok)
}

func TestPairGpRelative(t *testing.T) {
	bss := &section.Section{
		Kind:     context.SectionBss,
		VRAMBase: 0x80100000,
		Size:     0x10000,
	}
	opts := defaultOpts()
	opts.GpValue = 0x80108000
	opts.HasGpValue = true

	env := testPairer(t, opts, []uint32{
		0x8F828010, // lw $v0, -0x7FF0($gp)
		0x03E00008, // jr $ra
		0x00000000, // nop
	}, bss)

	env.pairer.Pair(env.fn)

	ref, ok := env.fn.References[0]
	assert.True(t, ok)
	assert.Equal(t, section.RefGpRel, ref.Kind)
	assert.Equal(t, uint32(0x80100010), ref.Symbol.VRAM)
}

func TestPairInteriorReference(t *testing.T) {
	bss := &section.Section{
		Kind:     context.SectionBss,
		VRAMBase: 0x80100000,
		Size:     0x1000,
	}
	env := testPairer(t, defaultOpts(), []uint32{
		0x3C028010, // lui $v0, 0x8010
		0x8C430008, // lw $v1, 0x8($v0) -> 0x80100008
		0x03E00008, // jr $ra
		0x00000000, // nop
	}, bss)

	// a user symbol with a known size covering the access
	assert.NoError(t, env.ctx.AddUserSymbols([]context.UserSymbol{
		{Name: "gContext", VRAM: 0x80100000, Type: context.TypeWord,
			Size: 0x100, Section: context.SectionBss},
	}, context.NamingSection))

	env.pairer.Pair(env.fn)

	ref, ok := env.fn.References[1]
	assert.True(t, ok)
	assert.Equal(t, "gContext", ref.Symbol.Name)
	assert.Equal(t, int32(8), ref.Addend)
}
