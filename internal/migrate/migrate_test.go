package migrate

import (
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

type migrateEnv struct {
	ctx      *context.Context
	migrator *Migrator
	fnA      *section.Function
	fnB      *section.Function
}

func testMigrator(t *testing.T) *migrateEnv {
	t.Helper()

	logger := log.NewTestLogger(t)
	ctx := context.New(logger)
	textSec := &section.Section{
		Kind:     context.SectionText,
		VRAMBase: 0x80001000,
		Data:     make([]byte, 0x40),
		Endian:   mips.EndianBig,
	}

	newFn := func(start int, count int) *section.Function {
		vram := textSec.VRAMOf(start)
		sym := ctx.GetOrCreate("", 0, vram)
		ctx.PromoteType(sym, context.TypeFunction)
		return &section.Function{
			Symbol:       sym,
			Section:      textSec,
			StartIndex:   start,
			Instructions: make([]mips.Instruction, count),
			References:   map[int]section.Reference{},
			Labels:       map[uint32]*context.Symbol{},
		}
	}

	return &migrateEnv{
		ctx:      ctx,
		migrator: New(logger),
		fnA:      newFn(0, 8),  // 0x80001000..0x80001020
		fnB:      newFn(8, 8),  // 0x80001020..0x80001040
	}
}

func (e *migrateEnv) rodata(vram uint32, referrers ...uint32) *section.DataSymbol {
	sym := &context.Symbol{
		VRAM:      vram,
		Section:   context.SectionRodata,
		Referrers: set.New[uint32](),
	}
	for _, r := range referrers {
		sym.Referrers.Add(r)
		sym.ReferenceCount++
	}
	return &section.DataSymbol{
		Symbol: sym,
		Section: &section.Section{
			Kind:     context.SectionRodata,
			VRAMBase: vram,
			Data:     make([]byte, 8),
		},
	}
}

func TestMigrateSingleReferrer(t *testing.T) {
	env := testMigrator(t)
	ds := env.rodata(0x80020000, 0x80001004, 0x80001008)

	env.migrator.Process([]*section.Function{env.fnA, env.fnB}, []*section.DataSymbol{ds})

	assert.Equal(t, env.fnA.Symbol, ds.MigratedTo)
}

func TestMigrateSharedStaysPut(t *testing.T) {
	env := testMigrator(t)
	ds := env.rodata(0x80020000, 0x80001004, 0x80001024)

	env.migrator.Process([]*section.Function{env.fnA, env.fnB}, []*section.DataSymbol{ds})

	assert.Nil(t, ds.MigratedTo)
}

func TestMigrateUnreferencedStaysPut(t *testing.T) {
	env := testMigrator(t)
	ds := env.rodata(0x80020000)

	env.migrator.Process([]*section.Function{env.fnA, env.fnB}, []*section.DataSymbol{ds})

	assert.Nil(t, ds.MigratedTo)
}

func TestMigrateReferrerOutsideFunctions(t *testing.T) {
	env := testMigrator(t)
	// referenced from a data section pointer, not from a function
	ds := env.rodata(0x80020000, 0x80030000)

	env.migrator.Process([]*section.Function{env.fnA, env.fnB}, []*section.DataSymbol{ds})

	assert.Nil(t, ds.MigratedTo)
}

func TestMigrateJumpTable(t *testing.T) {
	env := testMigrator(t)
	ds := env.rodata(0x80020000, 0x80001008)
	ds.Symbol.Type = context.TypeJumpTable

	env.migrator.Process([]*section.Function{env.fnA, env.fnB}, []*section.DataSymbol{ds})

	assert.Equal(t, env.fnA.Symbol, ds.MigratedTo)
}
