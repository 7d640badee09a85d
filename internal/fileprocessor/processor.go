// Package fileprocessor handles file processing workflow for the
// disassembler.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/mipsgodisasm/internal/config"
	"github.com/retroenv/mipsgodisasm/internal/detector"
	"github.com/retroenv/mipsgodisasm/internal/disasm"
	"github.com/retroenv/mipsgodisasm/internal/loader"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/verification"
	"github.com/retroenv/mipsgodisasm/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the program banner.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	versionString := buildinfo.Version(version, commit, date)
	logger.Info("mipsgodisasm", log.String("version", versionString))
	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// ProcessFile disassembles one input file.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	disasmOptions, err := config.CreateDisassemblerOptions(opts)
	if err != nil {
		return fmt.Errorf("creating disassembler options: %w", err)
	}

	l := loader.New()
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}
	if opts.Endian == "" || opts.Endian == "auto" {
		if endian, ok := detector.New(logger).DetectEndian(data); ok {
			disasmOptions.Endian = endian
		}
	}

	sections, err := l.Load(opts, disasmOptions.Endian)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}
	userSymbols, err := l.LoadSymbols(opts)
	if err != nil {
		return fmt.Errorf("loading symbols: %w", err)
	}

	dis, err := disasm.New(logger, disasmOptions, sections, userSymbols)
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	app, err := dis.Process()
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	for _, diag := range app.Context.Diagnostics() {
		logger.Debug("diagnostic",
			log.Hex("vram", diag.VRAM),
			log.String("message", diag.Message))
	}

	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating output file '%s': %w", opts.Output, err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	w := writer.New(app, out, disasmOptions, writer.Options{HexComments: true})
	if err := w.Write(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if opts.AssembleTest {
		if err := verification.VerifyOutput(logger, app); err != nil {
			return fmt.Errorf("verifying output: %w", err)
		}
	}

	if opts.SymbolFile != "" {
		if err := saveSymbols(opts.SymbolFile, dis, disasmOptions); err != nil {
			return err
		}
	}
	return nil
}

func saveSymbols(path string, dis *disasm.Disasm, disasmOptions options.Disassembler) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating symbol file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := dis.Context().SaveSymbolFile(f, disasmOptions.NamingMode); err != nil {
		return fmt.Errorf("saving symbol file: %w", err)
	}
	return nil
}
