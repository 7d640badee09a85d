// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateDisassemblerOptions translates the parsed program options into the
// analysis configuration. Unknown names are configuration errors.
func CreateDisassemblerOptions(opts options.Program) (options.Disassembler, error) {
	dialect, ok := mips.DialectFromString(opts.Dialect)
	if !ok {
		return options.Disassembler{}, fmt.Errorf("unknown dialect %q", opts.Dialect)
	}

	var endian mips.Endian
	switch opts.Endian {
	case "", "auto", "big":
		endian = mips.EndianBig
	case "little":
		endian = mips.EndianLittle
	case "middle":
		endian = mips.EndianMiddle
	default:
		return options.Disassembler{}, fmt.Errorf("unknown endianness %q", opts.Endian)
	}

	disasmOptions := options.NewDisassembler(dialect, endian)

	abi, ok := mips.ABIFromString(opts.ABI)
	if !ok {
		return options.Disassembler{}, fmt.Errorf("unknown abi %q", opts.ABI)
	}
	disasmOptions.ABI = abi

	compiler, ok := options.CompilerFromString(opts.Compiler)
	if !ok {
		return options.Disassembler{}, fmt.Errorf("unknown compiler %q", opts.Compiler)
	}
	disasmOptions.Compiler = compiler

	if err := disasmOptions.Validate(); err != nil {
		return options.Disassembler{}, err
	}
	return disasmOptions, nil
}
