// Package section implements the per-section analyzers that turn raw bytes
// into typed symbols and decoded functions.
package section

import (
	"encoding/binary"

	"github.com/retroenv/mipsgodisasm/internal/context"
	"github.com/retroenv/mipsgodisasm/internal/mips"
)

// Section is one contiguous byte range of the input image.
type Section struct {
	Kind      context.SectionKind
	VRAMBase  uint32
	ROMOffset uint32
	Data      []byte // empty for .bss
	Size      uint32 // byte length; len(Data) except for .bss
	Endian    mips.Endian

	Category string
	Overlay  uint32
}

// ByteLen returns the section length in bytes.
func (s *Section) ByteLen() uint32 {
	if s.Size != 0 {
		return s.Size
	}
	return uint32(len(s.Data))
}

// WordCount returns the number of whole 32 bit words in the section.
func (s *Section) WordCount() int {
	return len(s.Data) / 4
}

// Word returns the endian adjusted word at the given word index.
func (s *Section) Word(i int) uint32 {
	return AdjustWord(s.Data[i*4:i*4+4], s.Endian)
}

// VRAMOf returns the address of the given word index.
func (s *Section) VRAMOf(i int) uint32 {
	return s.VRAMBase + uint32(i)*4
}

// Contains returns whether the address falls inside the section.
func (s *Section) Contains(vram uint32) bool {
	return vram >= s.VRAMBase && vram < s.VRAMBase+s.ByteLen()
}

// AdjustWord reads one machine word honoring the image byte order. The
// middle endian case byte swaps halfword pairs, matching .v64 dumps.
func AdjustWord(b []byte, endian mips.Endian) uint32 {
	switch endian {
	case mips.EndianLittle:
		return binary.LittleEndian.Uint32(b)
	case mips.EndianMiddle:
		w := binary.BigEndian.Uint32(b)
		return w&0xff00ff00>>8 | w&0x00ff00ff<<8
	default:
		return binary.BigEndian.Uint32(b)
	}
}

// Ranges resolves addresses across all sections of a run. Cross-section
// references always go through the context; Ranges only answers which
// section kind an address belongs to.
type Ranges struct {
	sections []*Section
}

// NewRanges creates a range lookup over the given sections.
func NewRanges(sections []*Section) *Ranges {
	return &Ranges{sections: sections}
}

// Find returns the section containing the address, or nil.
func (r *Ranges) Find(vram uint32) *Section {
	for _, s := range r.sections {
		if s.Contains(vram) {
			return s
		}
	}
	return nil
}

// KindOf returns the section kind of the address.
func (r *Ranges) KindOf(vram uint32) context.SectionKind {
	if s := r.Find(vram); s != nil {
		return s.Kind
	}
	return context.SectionUnknown
}
