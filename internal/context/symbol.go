// Package context implements the shared symbol table that all section
// analyzers resolve references through.
package context

import (
	"fmt"

	"github.com/retroenv/retrogolib/set"
)

// SectionKind identifies the section a symbol originates from.
type SectionKind uint8

const (
	SectionUnknown SectionKind = iota
	SectionText
	SectionData
	SectionRodata
	SectionBss
)

// String returns the section name including the leading dot.
func (k SectionKind) String() string {
	switch k {
	case SectionText:
		return ".text"
	case SectionData:
		return ".data"
	case SectionRodata:
		return ".rodata"
	case SectionBss:
		return ".bss"
	default:
		return ".unknown"
	}
}

// SymbolType classifies what a symbol's bytes hold.
type SymbolType uint8

const (
	TypeUnknown SymbolType = iota
	TypeFunction
	TypeByte
	TypeShort
	TypeWord
	TypeFloat
	TypeDouble
	TypeCString
	TypeJumpTable
	TypeJumpTableLabel
	TypeBranchLabel
)

var typeNames = map[SymbolType]string{
	TypeUnknown:        "",
	TypeFunction:       "func",
	TypeByte:           "byte",
	TypeShort:          "short",
	TypeWord:           "word",
	TypeFloat:          "float",
	TypeDouble:         "double",
	TypeCString:        "asciz",
	TypeJumpTable:      "jumptable",
	TypeJumpTableLabel: "jumptablelabel",
	TypeBranchLabel:    "branchlabel",
}

// String returns the type name used in symbol files.
func (t SymbolType) String() string {
	return typeNames[t]
}

// TypeFromString parses a symbol file type name.
func TypeFromString(s string) (SymbolType, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return TypeUnknown, false
}

// NamingMode selects the autogenerated name scheme for data symbols.
type NamingMode uint8

const (
	NamingSection NamingMode = iota // RO_/D_/B_ by section
	NamingType                      // STR_/FLT_/DBL_ by inferred type
)

// Symbol is the authoritative record for one named address. All mutation
// goes through Context methods; analyzers must not write fields directly
// once a symbol is shared.
type Symbol struct {
	VRAM     uint32
	Size     uint32 // 0 = unknown
	Type     SymbolType
	Name     string // empty = autogenerated
	Section  SectionKind
	Category string // overlay category, empty = global
	Overlay  uint32 // overlay id within the category

	UserDeclared  bool
	Autogenerated bool
	MaybeString   bool

	AccessSize     uint8 // inferred from load/store width
	AccessUnsigned bool

	ReferenceCount int
	Referrers      set.Set[uint32]
}

// DisplayName returns the user-set name or the autogenerated default.
func (s *Symbol) DisplayName(mode NamingMode) string {
	if s.Name != "" {
		return s.Name
	}
	return s.defaultName(mode)
}

func (s *Symbol) defaultName(mode NamingMode) string {
	switch s.Type {
	case TypeFunction:
		return fmt.Sprintf("func_%08X", s.VRAM)
	case TypeBranchLabel:
		return fmt.Sprintf(".L%08X", s.VRAM)
	case TypeJumpTable:
		return fmt.Sprintf("jtbl_%08X", s.VRAM)
	case TypeJumpTableLabel:
		return fmt.Sprintf("L%08X", s.VRAM)
	}

	if mode == NamingType {
		switch s.Type {
		case TypeCString:
			return fmt.Sprintf("STR_%08X", s.VRAM)
		case TypeFloat:
			return fmt.Sprintf("FLT_%08X", s.VRAM)
		case TypeDouble:
			return fmt.Sprintf("DBL_%08X", s.VRAM)
		}
	}

	switch s.Section {
	case SectionRodata:
		return fmt.Sprintf("RO_%08X", s.VRAM)
	case SectionBss:
		return fmt.Sprintf("B_%08X", s.VRAM)
	default:
		return fmt.Sprintf("D_%08X", s.VRAM)
	}
}

// NameWithOffset renders a reference into the symbol's interior.
func (s *Symbol) NameWithOffset(mode NamingMode, offset uint32) string {
	name := s.DisplayName(mode)
	if offset == 0 {
		return name
	}
	return fmt.Sprintf("%s + 0x%X", name, offset)
}

// KnownSize returns the symbol size, falling back to the access width and
// finally the address alignment.
func (s *Symbol) KnownSize() uint32 {
	if s.Size != 0 {
		return s.Size
	}
	if s.AccessSize != 0 {
		return uint32(s.AccessSize)
	}
	switch {
	case s.VRAM%4 == 0:
		return 4
	case s.VRAM%2 == 0:
		return 2
	default:
		return 1
	}
}
