// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/mipsgodisasm/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}
	if err := validateArgs(args); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "output .s file (default: stdout)")
	flags.StringVar(&opts.SymbolFile, "sym", "", "symbol file to load and update")
	flags.Uint64Var(&opts.VRAMBase, "vram", 0x80000000, "vram base address of the image")

	flags.StringVar(&opts.ABI, "abi", "o32", "register naming abi: numeric, o32, n32, n64")
	flags.StringVar(&opts.Dialect, "dialect", "r4300", "instruction set: r4300, rsp, gte, allegrex, ee")
	flags.StringVar(&opts.Endian, "endian", "auto", "byte order: auto, big, little, middle")
	flags.StringVar(&opts.Compiler, "compiler", "none", "compiler workarounds: none, sn64, psyq")

	flags.BoolVar(&opts.AssembleTest, "verify", false, "verify output by re-encoding and comparing to input")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "quiet mode")
}

func validateArgs(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected extra arguments: %v", args[1:])
	}
	return nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
}

func (e *UsageError) Error() string {
	return "missing input file"
}

// ShowUsage prints the usage information.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: mipsgodisasm [options] <file to disassemble>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}
