// Package loader loads raw input images and user symbol files.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/section"
)

// Loader loads input images.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the input image as one .text section at the configured vram
// base. Finer grained section tables come from the symbol file or a
// splitting driver.
func (l *Loader) Load(opts options.Program, endian mips.Endian) ([]*section.Section, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("input file too small: %d bytes", len(data))
	}

	sections := []*section.Section{
		{
			Kind:     context.SectionText,
			VRAMBase: uint32(opts.VRAMBase),
			Data:     data[:len(data)&^3],
			Endian:   endian,
		},
	}
	return sections, nil
}

// LoadSymbols loads the user symbol file if configured.
func (l *Loader) LoadSymbols(opts options.Program) ([]context.UserSymbol, error) {
	if opts.SymbolFile == "" {
		return nil, nil
	}

	f, err := os.Open(opts.SymbolFile)
	if err != nil {
		return nil, fmt.Errorf("opening symbol file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	symbols, err := context.LoadSymbolFile(f)
	if err != nil {
		return nil, fmt.Errorf("parsing symbol file: %w", err)
	}
	return symbols, nil
}
