package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "test.z64")
	assert.NoError(t, os.WriteFile(input, []byte{
		0x80, 0x37, 0x12, 0x40, 0x00, 0x00, 0x00, 0x00, 0xAA,
	}, 0o644))

	l := New()
	sections, err := l.Load(options.Program{
		Input:    input,
		VRAMBase: 0x80000000,
	}, mips.EndianBig)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(sections))
	assert.Equal(t, context.SectionText, sections[0].Kind)
	assert.Equal(t, uint32(0x80000000), sections[0].VRAMBase)
	// the trailing partial word is dropped
	assert.Equal(t, 8, len(sections[0].Data))
}

func TestLoadErrors(t *testing.T) {
	l := New()

	_, err := l.Load(options.Program{Input: "does-not-exist.z64"}, mips.EndianBig)
	assert.Error(t, err)

	dir := t.TempDir()
	tiny := filepath.Join(dir, "tiny.bin")
	assert.NoError(t, os.WriteFile(tiny, []byte{0x01}, 0o644))
	_, err = l.Load(options.Program{Input: tiny}, mips.EndianBig)
	assert.Error(t, err)
}

func TestLoadSymbols(t *testing.T) {
	dir := t.TempDir()
	symFile := filepath.Join(dir, "symbols.txt")
	assert.NoError(t, os.WriteFile(symFile, []byte(
		"main,0x80000400,func,,.text\n"), 0o644))

	l := New()
	symbols, err := l.LoadSymbols(options.Program{SymbolFile: symFile})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(symbols))
	assert.Equal(t, "main", symbols[0].Name)
	assert.Equal(t, context.TypeFunction, symbols[0].Type)

	// no symbol file configured
	symbols, err = l.LoadSymbols(options.Program{})
	assert.NoError(t, err)
	assert.Nil(t, symbols)
}
