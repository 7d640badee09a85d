// Package mips implements instruction decoding for the MIPS dialects
// supported by the disassembler.
package mips

// Dialect selects the instruction set variant to decode.
type Dialect uint8

const (
	DialectR4300 Dialect = iota // N64 main CPU, MIPS III
	DialectRSP                  // N64 Reality Signal Processor
	DialectGTE                  // PS1 main CPU with the GTE on COP2
	DialectAllegrex             // PSP main CPU
	DialectEE                   // PS2 Emotion Engine
)

// String returns the dialect name as used in configuration files.
func (d Dialect) String() string {
	switch d {
	case DialectR4300:
		return "r4300"
	case DialectRSP:
		return "rsp"
	case DialectGTE:
		return "gte"
	case DialectAllegrex:
		return "allegrex"
	case DialectEE:
		return "ee"
	default:
		return "unknown"
	}
}

// DialectFromString returns the dialect for a configuration name.
func DialectFromString(s string) (Dialect, bool) {
	switch s {
	case "r4300", "":
		return DialectR4300, true
	case "rsp":
		return DialectRSP, true
	case "gte", "ps1", "psx":
		return DialectGTE, true
	case "allegrex", "psp":
		return DialectAllegrex, true
	case "ee", "ps2":
		return DialectEE, true
	default:
		return DialectR4300, false
	}
}

// ABI selects the register naming convention.
type ABI uint8

const (
	ABINumeric ABI = iota
	ABIO32
	ABIN32
	ABIN64
)

// ABIFromString returns the ABI for a configuration name.
func ABIFromString(s string) (ABI, bool) {
	switch s {
	case "numeric":
		return ABINumeric, true
	case "o32", "":
		return ABIO32, true
	case "n32":
		return ABIN32, true
	case "n64":
		return ABIN64, true
	default:
		return ABIO32, false
	}
}

// Endian describes the byte order of an input image.
type Endian uint8

const (
	EndianBig    Endian = iota // .z64
	EndianLittle               // .n64
	EndianMiddle               // .v64, halfword byte swapped
)

// String returns the endianness name as used in configuration files.
func (e Endian) String() string {
	switch e {
	case EndianBig:
		return "big"
	case EndianLittle:
		return "little"
	case EndianMiddle:
		return "middle"
	default:
		return "unknown"
	}
}
