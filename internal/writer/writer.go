// Package writer implements assembly file writing. It is a thin formatter
// over the analyzed program; all decisions were made during analysis.
package writer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
	"github.com/retroenv/mipsgodisasm/internal/program"
	"github.com/retroenv/mipsgodisasm/internal/section"
)

const dataBytesPerLine = 8

// Writer renders the analyzed program as assembly text.
type Writer struct {
	app    *program.Program
	opts   options.Disassembler
	out    io.Writer
	opts2  Options
	render mips.RenderOptions
}

// Options of the writer.
type Options struct {
	HexComments bool // prefix each instruction with vram and raw word
}

// New creates a new writer.
func New(app *program.Program, out io.Writer, opts options.Disassembler, wopts Options) *Writer {
	return &Writer{
		app:   app,
		opts:  opts,
		out:   out,
		opts2: wopts,
		render: mips.RenderOptions{
			ABI:    opts.ABI,
			Pseudo: opts.Features.PseudoInstructions,
		},
	}
}

// Write renders all sections.
func (w *Writer) Write() error {
	for _, sec := range w.app.Sections {
		if err := w.writeSection(sec); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSection(sec *section.Section) error {
	if _, err := fmt.Fprintf(w.out, "\n.section %s\n", sec.Kind); err != nil {
		return fmt.Errorf("writing section header: %w", err)
	}

	switch sec.Kind {
	case context.SectionText:
		for _, fn := range w.app.Functions {
			if fn.Section != sec {
				continue
			}
			if err := w.writeFunction(fn); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, ds := range w.app.Data {
			if ds.Section != sec || ds.MigratedTo != nil {
				continue
			}
			if err := w.writeData(ds); err != nil {
				return err
			}
		}
		return nil
	}
}

func (w *Writer) writeFunction(fn *section.Function) error {
	name := fn.Symbol.DisplayName(w.opts.NamingMode)
	if _, err := fmt.Fprintf(w.out, "\nglabel %s\n", name); err != nil {
		return fmt.Errorf("writing function label: %w", err)
	}
	if fn.Handwritten {
		if _, err := fmt.Fprintln(w.out, "/* handwritten function */"); err != nil {
			return fmt.Errorf("writing function comment: %w", err)
		}
	}

	for i, ins := range fn.Instructions {
		vram := fn.VRAM() + uint32(i)*4

		if label, ok := fn.Labels[vram]; ok {
			if _, err := fmt.Fprintf(w.out, "%s:\n", label.DisplayName(w.opts.NamingMode)); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if _, collapsed := fn.Collapsed[i]; collapsed {
			continue // absorbed into a compiler workaround rendering
		}

		line := mips.Render(ins, w.render, w.overrides(fn, i))
		if err := w.writeInstructionLine(vram, ins.Raw, line); err != nil {
			return err
		}
	}

	for _, ds := range w.app.MigratedInto(fn) {
		if _, err := fmt.Fprintln(w.out); err != nil {
			return fmt.Errorf("writing separator: %w", err)
		}
		if err := w.writeData(ds); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeInstructionLine(vram, raw uint32, line string) error {
	var err error
	if w.opts2.HexComments {
		_, err = fmt.Fprintf(w.out, "/* %08X %08X */  %s\n", vram, raw, line)
	} else {
		_, err = fmt.Fprintf(w.out, "  %s\n", line)
	}
	if err != nil {
		return fmt.Errorf("writing instruction: %w", err)
	}
	return nil
}

// overrides builds the symbolic operand replacements for one instruction.
func (w *Writer) overrides(fn *section.Function, i int) mips.Overrides {
	ref, ok := fn.References[i]
	if !ok {
		return mips.Overrides{}
	}

	name := ref.Symbol.DisplayName(w.opts.NamingMode)
	if ref.Addend != 0 {
		name = fmt.Sprintf("%s + 0x%X", name, ref.Addend)
	}

	switch ref.Kind {
	case section.RefHi:
		return mips.Overrides{Imm: fmt.Sprintf("%%hi(%s)", name)}
	case section.RefLo:
		return mips.Overrides{Imm: fmt.Sprintf("%%lo(%s)", name)}
	case section.RefGpRel:
		return mips.Overrides{Imm: fmt.Sprintf("%%gp_rel(%s)", name)}
	default:
		return mips.Overrides{Target: name}
	}
}

func (w *Writer) writeData(ds *section.DataSymbol) error {
	name := ds.Symbol.DisplayName(w.opts.NamingMode)
	if _, err := fmt.Fprintf(w.out, "\nglabel %s\n", name); err != nil {
		return fmt.Errorf("writing data label: %w", err)
	}

	if ds.Section.Kind == context.SectionBss {
		_, err := fmt.Fprintf(w.out, "  .space 0x%X\n", ds.Symbol.KnownSize())
		if err != nil {
			return fmt.Errorf("writing bss space: %w", err)
		}
		return nil
	}

	switch ds.Symbol.Type {
	case context.TypeCString:
		return w.writeString(ds)
	case context.TypeFloat:
		return w.writeFloat(ds)
	case context.TypeDouble:
		return w.writeDouble(ds)
	case context.TypeJumpTable:
		return w.writeWords(ds)
	case context.TypeWord:
		return w.writeWords(ds)
	default:
		return w.writeBytes(ds)
	}
}

func (w *Writer) writeString(ds *section.DataSymbol) error {
	end := 0
	for end < len(ds.Data) && ds.Data[end] != 0 {
		end++
	}

	var sb strings.Builder
	for _, b := range ds.Data[:end] {
		switch b {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteByte(b)
		}
	}

	if _, err := fmt.Fprintf(w.out, "  .asciz \"%s\"\n", sb.String()); err != nil {
		return fmt.Errorf("writing string: %w", err)
	}

	// explicit padding keeps the byte-for-byte match
	if pad := len(ds.Data) - end - 1; pad > 0 {
		if _, err := fmt.Fprintf(w.out, "  .balign 4\n"); err != nil {
			return fmt.Errorf("writing string padding: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeFloat(ds *section.DataSymbol) error {
	for i := 0; i+4 <= len(ds.Data); i += 4 {
		bits := section.AdjustWord(ds.Data[i:i+4], ds.Section.Endian)
		value := math.Float32frombits(bits)
		if _, err := fmt.Fprintf(w.out, "  .float %g\n", value); err != nil {
			return fmt.Errorf("writing float: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeDouble(ds *section.DataSymbol) error {
	for i := 0; i+8 <= len(ds.Data); i += 8 {
		hi := uint64(section.AdjustWord(ds.Data[i:i+4], ds.Section.Endian))
		lo := uint64(section.AdjustWord(ds.Data[i+4:i+8], ds.Section.Endian))
		bits := hi<<32 | lo
		if ds.Section.Endian == mips.EndianLittle {
			bits = lo<<32 | hi
		}
		value := math.Float64frombits(bits)
		if _, err := fmt.Fprintf(w.out, "  .double %g\n", value); err != nil {
			return fmt.Errorf("writing double: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeWords(ds *section.DataSymbol) error {
	for i := 0; i+4 <= len(ds.Data); i += 4 {
		word := section.AdjustWord(ds.Data[i:i+4], ds.Section.Endian)

		if target, ok := ds.Pointers[i/4]; ok {
			_, err := fmt.Fprintf(w.out, "  .word %s\n", target.DisplayName(w.opts.NamingMode))
			if err != nil {
				return fmt.Errorf("writing pointer word: %w", err)
			}
			continue
		}
		if _, err := fmt.Fprintf(w.out, "  .word 0x%08X\n", word); err != nil {
			return fmt.Errorf("writing word: %w", err)
		}
	}
	return w.writeTrailingBytes(ds)
}

func (w *Writer) writeTrailingBytes(ds *section.DataSymbol) error {
	rem := len(ds.Data) % 4
	if rem == 0 {
		return nil
	}
	return w.writeByteRange(ds.Data[len(ds.Data)-rem:])
}

func (w *Writer) writeBytes(ds *section.DataSymbol) error {
	switch ds.Symbol.Type {
	case context.TypeShort:
		for i := 0; i+2 <= len(ds.Data); i += 2 {
			var v uint16
			if ds.Section.Endian == mips.EndianLittle {
				v = binary.LittleEndian.Uint16(ds.Data[i : i+2])
			} else {
				v = binary.BigEndian.Uint16(ds.Data[i : i+2])
			}
			if _, err := fmt.Fprintf(w.out, "  .short 0x%04X\n", v); err != nil {
				return fmt.Errorf("writing short: %w", err)
			}
		}
		if len(ds.Data)%2 != 0 {
			return w.writeByteRange(ds.Data[len(ds.Data)-1:])
		}
		return nil
	default:
		return w.writeByteRange(ds.Data)
	}
}

func (w *Writer) writeByteRange(data []byte) error {
	for i := 0; i < len(data); i += dataBytesPerLine {
		end := min(i+dataBytesPerLine, len(data))

		parts := make([]string, 0, end-i)
		for _, b := range data[i:end] {
			parts = append(parts, fmt.Sprintf("0x%02X", b))
		}
		if _, err := fmt.Fprintf(w.out, "  .byte %s\n", strings.Join(parts, ", ")); err != nil {
			return fmt.Errorf("writing bytes: %w", err)
		}
	}
	return nil
}
