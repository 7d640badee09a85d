package disasm

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/mipsgodisasm/internal/verification"
	"github.com/retroenv/mipsgodisasm/internal/writer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func words(ws ...uint32) []byte {
	data := make([]byte, len(ws)*4)
	for i, w := range ws {
		binary.BigEndian.PutUint32(data[i*4:], w)
	}
	return data
}

func textSection(vram uint32, ws ...uint32) *section.Section {
	return &section.Section{
		Kind:     context.SectionText,
		VRAMBase: vram,
		Data:     words(ws...),
		Endian:   mips.EndianBig,
	}
}

func runPipeline(t *testing.T, opts options.Disassembler, sections []*section.Section,
	userSymbols []context.UserSymbol) (string, *Disasm) {
	t.Helper()

	logger := log.NewTestLogger(t)
	dis, err := New(logger, opts, sections, userSymbols)
	assert.NoError(t, err)

	app, err := dis.Process()
	assert.NoError(t, err)

	assert.NoError(t, verification.VerifyOutput(logger, app))

	var buf bytes.Buffer
	w := writer.New(app, &buf, opts, writer.Options{})
	assert.NoError(t, w.Write())
	return buf.String(), dis
}

// the specification's first seed scenario: one function whose lui/addiu
// pair resolves to a data symbol.
func TestDisasmSimpleFunction(t *testing.T) {
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	sections := []*section.Section{
		textSection(0x80000000,
			0x3C1C8000, // lui $gp, 0x8000
			0x279C0010, // addiu $gp, $gp, 0x10
			0x03E00008, // jr $ra
			0x00000000, // nop
		),
		{
			Kind:     context.SectionData,
			VRAMBase: 0x80000010,
			Data:     words(0x00000000),
			Endian:   mips.EndianBig,
		},
	}

	out, _ := runPipeline(t, opts, sections, nil)

	assert.Contains(t, out, "glabel func_80000000")
	assert.Contains(t, out, "lui         $gp, %hi(D_80000010)")
	assert.Contains(t, out, "addiu       $gp, $gp, %lo(D_80000010)")
	assert.Contains(t, out, "jr          $ra")
	assert.Contains(t, out, "nop")
	assert.Contains(t, out, "glabel D_80000010")
}

// seed scenario three: a referenced rodata string becomes a CSTRING symbol
// and migrates into its only referrer.
func TestDisasmStringDetection(t *testing.T) {
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	opts.NamingMode = context.NamingType

	rodata := &section.Section{
		Kind:     context.SectionRodata,
		VRAMBase: 0x80010000,
		Data:     []byte{'H', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00},
		Endian:   mips.EndianBig,
	}
	sections := []*section.Section{
		textSection(0x80000000,
			0x3C048001, // lui $a0, 0x8001
			0x24840000, // addiu $a0, $a0, 0x0 -> 0x80010000
			0x03E00008, // jr $ra
			0x00000000, // nop
		),
		rodata,
	}

	out, dis := runPipeline(t, opts, sections, nil)

	sym := dis.Context().Find("", 0, 0x80010000)
	assert.NotNil(t, sym)
	assert.Equal(t, context.TypeCString, sym.Type)

	assert.Contains(t, out, "%hi(STR_80010000)")
	assert.Contains(t, out, `.asciz "Hello"`)

	// migrated after the function body: the string label must appear
	// after the function label, inside the text section output
	fnIdx := strings.Index(out, "glabel func_80000000")
	strIdx := strings.Index(out, "glabel STR_80010000")
	assert.True(t, fnIdx >= 0)
	assert.True(t, strIdx > fnIdx)
}

// seed scenario four: an indexed jump through a rodata pointer array
// yields a migrated jump table with per-entry labels.
func TestDisasmJumpTable(t *testing.T) {
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)

	sections := []*section.Section{
		textSection(0x80001000,
			0x3C028002, // lui $v0, 0x8002
			0x8C420000, // lw $v0, 0x0($v0) -> jtbl
			0x00400008, // jr $v0
			0x00000000, // nop
			0x24020001, // 0x80001010: li $v0, 1
			0x24020002, // 0x80001014: li $v0, 2
			0x24020003, // 0x80001018: li $v0, 3
			0x03E00008, // jr $ra
			0x00000000, // nop
		),
		{
			Kind:     context.SectionRodata,
			VRAMBase: 0x80020000,
			Data:     words(0x80001010, 0x80001014, 0x80001018),
			Endian:   mips.EndianBig,
		},
	}

	out, dis := runPipeline(t, opts, sections, nil)

	jtbl := dis.Context().Find("", 0, 0x80020000)
	assert.NotNil(t, jtbl)
	assert.Equal(t, context.TypeJumpTable, jtbl.Type)

	assert.Contains(t, out, "glabel jtbl_80020000")
	assert.Contains(t, out, "L80001010:")
	assert.Contains(t, out, ".word L80001010")
	assert.Contains(t, out, ".word L80001014")
	assert.Contains(t, out, ".word L80001018")

	// jump tables always migrate into their function
	fnIdx := strings.Index(out, "glabel func_80001000")
	jtblIdx := strings.Index(out, "glabel jtbl_80020000")
	assert.True(t, fnIdx >= 0)
	assert.True(t, jtblIdx > fnIdx)
}

// seed scenario five: the SN64 zero divisor trap renders as a single div.
func TestDisasmSN64DivCollapse(t *testing.T) {
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	opts.Compiler = options.WorkaroundSN64

	sections := []*section.Section{
		textSection(0x80000000,
			0x0085001A, // div $zero, $a0, $a1
			0x14A00002, // bnez $a1, +2
			0x00000000, // nop
			0x000001CD, // break 7
			0x00001012, // mflo $v0
			0x03E00008, // jr $ra
			0x00000000, // nop
		),
	}

	out, _ := runPipeline(t, opts, sections, nil)

	assert.Contains(t, out, "div         $a0, $a1")
	assert.Contains(t, out, "mflo        $v0")
	assert.False(t, strings.Contains(out, "break"))
	assert.False(t, strings.Contains(out, "bnez"))
}

func TestDisasmUserSymbolNames(t *testing.T) {
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)

	sections := []*section.Section{
		textSection(0x80000000,
			0x03E00008, // jr $ra
			0x00000000, // nop
		),
	}
	userSymbols := []context.UserSymbol{
		{Name: "bootproc", VRAM: 0x80000000, Type: context.TypeFunction, Section: context.SectionText},
	}

	out, _ := runPipeline(t, opts, sections, userSymbols)
	assert.Contains(t, out, "glabel bootproc")
	assert.False(t, strings.Contains(out, "func_80000000"))
}

func TestDisasmConfigurationErrors(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := options.NewDisassembler(mips.DialectRSP, mips.EndianBig)
	opts.ABI = mips.ABIN64
	_, err := New(logger, opts, nil, nil)
	assert.Error(t, err)

	opts = options.NewDisassembler(mips.DialectR4300, mips.EndianBig)
	_, err = New(logger, opts, nil, []context.UserSymbol{
		{Name: "a", VRAM: 0x80000000, Type: context.TypeFunction},
		{Name: "b", VRAM: 0x80000000, Type: context.TypeFunction},
	})
	assert.Error(t, err)
}

// invariants: function spans are word aligned and non-overlapping, every
// reference resolves, symbol typing stays monotonic.
func TestDisasmInvariants(t *testing.T) {
	opts := options.NewDisassembler(mips.DialectR4300, mips.EndianBig)

	sections := []*section.Section{
		textSection(0x80000000,
			0x0C000004, // jal 0x80000010
			0x00000000, // nop
			0x03E00008, // jr $ra
			0x00000000, // nop
			0x27BDFFE8, // 0x80000010: addiu $sp, $sp, -0x18
			0xAFBF0014, // sw $ra, 0x14($sp)
			0x8FBF0014, // lw $ra, 0x14($sp)
			0x03E00008, // jr $ra
			0x27BD0018, // addiu $sp, $sp, 0x18
		),
	}

	logger := log.NewTestLogger(t)
	dis, err := New(logger, opts, sections, nil)
	assert.NoError(t, err)
	app, err := dis.Process()
	assert.NoError(t, err)

	for i, fn := range app.Functions {
		assert.Equal(t, uint32(0), (fn.End()-fn.VRAM())%4)
		if i > 0 {
			prev := app.Functions[i-1]
			assert.True(t, prev.End() <= fn.VRAM())
		}
		for _, ref := range fn.References {
			assert.NotNil(t, ref.Symbol)
		}
	}
}
