// Package options contains the program options.
package options

import (
	"fmt"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
)

// CompilerWorkaround selects per-compiler decode quirks.
type CompilerWorkaround uint8

const (
	WorkaroundNone CompilerWorkaround = iota
	WorkaroundSN64
	WorkaroundPSYQ
)

// CompilerFromString returns the workaround for a configuration name.
func CompilerFromString(s string) (CompilerWorkaround, bool) {
	switch s {
	case "", "none":
		return WorkaroundNone, true
	case "sn64":
		return WorkaroundSN64, true
	case "psyq":
		return WorkaroundPSYQ, true
	default:
		return WorkaroundNone, false
	}
}

// Features enumerates every analysis toggle. Defaults live in
// NewDisassembler, not at call sites.
type Features struct {
	StringDetection      bool
	FloatDetection       bool
	JumpTableDetection   bool
	PseudoInstructions   bool
	HandwrittenDetection bool
	RodataMigration      bool
	BoundaryDetection    bool // detect function boundaries past known entries
}

// Program contains file path and behavior options of the command line tool.
type Program struct {
	Input      string
	Output     string
	SymbolFile string

	VRAMBase uint64

	ABI      string
	Dialect  string
	Endian   string
	Compiler string

	Debug bool
	Quiet bool

	AssembleTest bool // verify output by re-encoding and comparing to input
}

// Disassembler defines options to control the analysis core.
type Disassembler struct {
	ABI     mips.ABI
	Dialect mips.Dialect
	Endian  mips.Endian

	GpValue    uint32
	HasGpValue bool

	NamingMode context.NamingMode
	Compiler   CompilerWorkaround

	Features Features

	// string guesser tunable, see the data section analyzer
	StringMinLength int

	// addresses below this never form hi/lo symbol pairs, filtering
	// small constants that happen to look like pointers
	PairingMinAddress uint32
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler(dialect mips.Dialect, endian mips.Endian) Disassembler {
	return Disassembler{
		ABI:     mips.ABIO32,
		Dialect: dialect,
		Endian:  endian,

		NamingMode: context.NamingSection,
		Compiler:   WorkaroundNone,

		Features: Features{
			StringDetection:      true,
			FloatDetection:       true,
			JumpTableDetection:   true,
			PseudoInstructions:   true,
			HandwrittenDetection: true,
			RodataMigration:      true,
			BoundaryDetection:    true,
		},

		StringMinLength:   2,
		PairingMinAddress: 0x4000,
	}
}

// Validate reports configuration errors. These are fatal at configuration
// time, unlike analysis anomalies which become diagnostics.
func (d Disassembler) Validate() error {
	switch d.Dialect {
	case mips.DialectRSP, mips.DialectGTE, mips.DialectAllegrex:
		if d.ABI == mips.ABIN32 || d.ABI == mips.ABIN64 {
			return fmt.Errorf("abi n32/n64 requires a 64 bit dialect, have %s", d.Dialect)
		}
	}

	if d.Compiler != WorkaroundNone && d.Dialect == mips.DialectRSP {
		return fmt.Errorf("compiler workarounds do not apply to the %s dialect", d.Dialect)
	}
	return nil
}
