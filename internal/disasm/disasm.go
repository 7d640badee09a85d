// Package disasm implements the phase ordered analysis pipeline: decode,
// section analysis, hi/lo pairing, jump table detection and rodata
// migration.
package disasm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/dialect"
	"github.com/retroenv/mipsgodisasm/internal/jumpengine"
	"github.com/retroenv/mipsgodisasm/internal/migrate"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/pairing"
	"github.com/retroenv/mipsgodisasm/internal/program"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/log"
)

// Disasm analyzes a set of sections against one shared context. A Disasm
// owns its context and sections; dropping it releases everything.
type Disasm struct {
	logger   *log.Logger
	opts     options.Disassembler
	ctx      *context.Context
	strategy *dialect.Strategy

	sections []*section.Section
}

// New creates a disassembler. Configuration errors are fatal here;
// anything later becomes a diagnostic.
func New(logger *log.Logger, opts options.Disassembler, sections []*section.Section,
	userSymbols []context.UserSymbol) (*Disasm, error) {

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating options: %w", err)
	}

	ctx := context.New(logger)
	if err := ctx.AddUserSymbols(userSymbols, opts.NamingMode); err != nil {
		return nil, fmt.Errorf("adding user symbols: %w", err)
	}

	return &Disasm{
		logger:   logger,
		opts:     opts,
		ctx:      ctx,
		strategy: dialect.New(opts),
		sections: sections,
	}, nil
}

// Context returns the shared symbol table.
func (dis *Disasm) Context() *context.Context {
	return dis.ctx
}

// Process runs all analysis phases and returns the analyzed program.
func (dis *Disasm) Process() (*program.Program, error) {
	app := program.New(dis.ctx, dis.sections)
	ranges := section.NewRanges(dis.sections)

	// phase 1: text analysis discovers functions and call graph edges
	for _, sec := range dis.sections {
		if sec.Kind != context.SectionText {
			continue
		}
		analyzer := section.NewTextAnalyzer(dis.logger, dis.ctx, sec, dis.opts, dis.strategy)
		app.Functions = append(app.Functions, analyzer.Analyze()...)
	}

	// phase 2: hi/lo pairing, functions are independent of each other
	pairer := pairing.New(dis.logger, dis.ctx, ranges, dis.opts, dis.strategy)
	var wg sync.WaitGroup
	for _, fn := range app.Functions {
		wg.Add(1)
		go func(fn *section.Function) {
			defer wg.Done()
			pairer.Pair(fn)
		}(fn)
	}
	wg.Wait()

	// phase 3: data and rodata typing, now that access types are known
	for _, sec := range dis.sections {
		if sec.Kind != context.SectionData && sec.Kind != context.SectionRodata {
			continue
		}
		analyzer := section.NewDataAnalyzer(dis.logger, dis.ctx, sec, ranges, dis.opts)
		app.Data = append(app.Data, analyzer.Analyze()...)
	}

	// phase 4: bss sizing derives from text references
	for _, sec := range dis.sections {
		if sec.Kind != context.SectionBss {
			continue
		}
		analyzer := section.NewBssAnalyzer(dis.logger, dis.ctx, sec)
		app.Data = append(app.Data, analyzer.Analyze()...)
	}

	// phase 5: jump tables
	if dis.opts.Features.JumpTableDetection {
		jumpengine.New(dis.logger, dis.ctx).Process(app.Functions, app.Data)
	}

	// phase 6: rodata migration
	if dis.opts.Features.RodataMigration {
		migrate.New(dis.logger).Process(app.Functions, app.Data)
	}

	dis.attachStrayLabels(app)

	sort.Slice(app.Functions, func(i, j int) bool {
		return app.Functions[i].VRAM() < app.Functions[j].VRAM()
	})
	sort.Slice(app.Data, func(i, j int) bool {
		return app.Data[i].VRAM() < app.Data[j].VRAM()
	})

	dis.logger.Debug("analysis complete",
		log.Int("functions", len(app.Functions)),
		log.Int("data_symbols", len(app.Data)),
		log.Int("diagnostics", len(dis.ctx.Diagnostics())))
	return app, nil
}

// attachStrayLabels hands branch labels created by cross-function branches
// to the function whose span contains them.
func (dis *Disasm) attachStrayLabels(app *program.Program) {
	for _, fn := range app.Functions {
		for _, sym := range dis.ctx.Symbols(fn.Section.Category, fn.Section.Overlay) {
			if sym.Type != context.TypeBranchLabel && sym.Type != context.TypeJumpTableLabel {
				continue
			}
			if fn.Contains(sym.VRAM) {
				if _, ok := fn.Labels[sym.VRAM]; !ok {
					fn.Labels[sym.VRAM] = sym
				}
			}
		}
	}
}
