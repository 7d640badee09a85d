// Package verification verifies that the analyzed program recreates the
// exact input bytes, the matching guarantee of the disassembler.
package verification

import (
	"fmt"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/program"
	"github.com/retroenv/mipsgodisasm/internal/section"
	"github.com/retroenv/retrogolib/log"
)

// VerifyOutput checks every function and data symbol: instructions must
// re-encode to their input words and data must re-serialize to its input
// bytes. A mismatch is a bug in the decode tables or the analyzers.
func VerifyOutput(logger *log.Logger, app *program.Program) error {
	for _, fn := range app.Functions {
		if err := verifyFunction(logger, fn); err != nil {
			return err
		}
	}
	for _, ds := range app.Data {
		if err := verifyData(logger, ds); err != nil {
			return err
		}
	}
	logger.Info("verification passed",
		log.Int("functions", len(app.Functions)),
		log.Int("data_symbols", len(app.Data)))
	return nil
}

func verifyFunction(logger *log.Logger, fn *section.Function) error {
	for i, ins := range fn.Instructions {
		encoded := mips.Encode(ins)
		if encoded == ins.Raw {
			continue
		}
		vram := fn.VRAM() + uint32(i)*4
		logger.Error("instruction does not round-trip",
			log.Hex("vram", vram),
			log.Hex("expected", ins.Raw),
			log.Hex("got", encoded))
		return fmt.Errorf("instruction at 0x%08X does not round-trip", vram)
	}
	return nil
}

func verifyData(logger *log.Logger, ds *section.DataSymbol) error {
	if ds.Section.Kind == context.SectionBss {
		return nil // no bytes to compare
	}

	rebuilt := reserialize(ds)
	if len(rebuilt) != len(ds.Data) {
		return fmt.Errorf("data symbol at 0x%08X re-serializes to %d bytes, want %d",
			ds.VRAM(), len(rebuilt), len(ds.Data))
	}
	for i := range rebuilt {
		if rebuilt[i] != ds.Data[i] {
			logger.Error("data byte mismatch",
				log.Hex("vram", ds.VRAM()+uint32(i)),
				log.Hex("expected", ds.Data[i]),
				log.Hex("got", rebuilt[i]))
			return fmt.Errorf("data symbol at 0x%08X differs at offset %d", ds.VRAM(), i)
		}
	}
	return nil
}

// reserialize rebuilds the bytes the emitted directives assemble to.
func reserialize(ds *section.DataSymbol) []byte {
	switch ds.Symbol.Type {
	case context.TypeCString:
		out := make([]byte, len(ds.Data))
		for i, b := range ds.Data {
			if b == 0 {
				break // .asciz terminator, padding stays zero
			}
			out[i] = b
		}
		return out
	default:
		// words, floats, doubles, shorts and bytes all emit their raw
		// values, so the bytes are carried through unchanged
		out := make([]byte, len(ds.Data))
		copy(out, ds.Data)
		return out
	}
}
