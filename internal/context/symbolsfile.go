package context

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Symbol files are a line oriented table `name,vram,type,size,segment`
// with # comments, keyed by vram. They let a driver reuse discovered
// symbols across runs and let users declare names up front.

// UserSymbol is one user-supplied symbol declaration.
type UserSymbol struct {
	Name     string
	VRAM     uint32
	Type     SymbolType
	Size     uint32
	Section  SectionKind
	Category string
	Overlay  uint32
}

// LoadSymbolFile parses a symbol file.
func LoadSymbolFile(r io.Reader) ([]UserSymbol, error) {
	var symbols []UserSymbol

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 fields, got %d", lineNo, len(fields))
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		vram, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing vram %q: %w", lineNo, fields[1], err)
		}

		symType, ok := TypeFromString(fields[2])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown type %q", lineNo, fields[2])
		}

		var size uint64
		if fields[3] != "" {
			size, err = strconv.ParseUint(strings.TrimPrefix(fields[3], "0x"), 16, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing size %q: %w", lineNo, fields[3], err)
			}
		}

		section := sectionFromName(fields[4])

		symbols = append(symbols, UserSymbol{
			Name:    fields[0],
			VRAM:    uint32(vram),
			Type:    symType,
			Size:    uint32(size),
			Section: section,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading symbol file: %w", err)
	}
	return symbols, nil
}

func sectionFromName(s string) SectionKind {
	switch strings.TrimPrefix(s, ".") {
	case "text":
		return SectionText
	case "data":
		return SectionData
	case "rodata":
		return SectionRodata
	case "bss":
		return SectionBss
	default:
		return SectionUnknown
	}
}

// AddUserSymbols registers user declarations in the context. Overlapping
// declarations are a configuration error and abort the run.
func (c *Context) AddUserSymbols(symbols []UserSymbol, mode NamingMode) error {
	for _, us := range symbols {
		existing := c.Find(us.Category, us.Overlay, us.VRAM)
		if existing != nil && existing.UserDeclared {
			return fmt.Errorf("duplicate user symbol at 0x%08X: %s and %s",
				us.VRAM, existing.Name, us.Name)
		}
		if overlapping, off := c.FindContaining(us.Category, us.Overlay, us.VRAM); overlapping != nil &&
			off != 0 && overlapping.UserDeclared {
			return fmt.Errorf("user symbol %s at 0x%08X overlaps %s",
				us.Name, us.VRAM, overlapping.DisplayName(mode))
		}

		sym := c.GetOrCreate(us.Category, us.Overlay, us.VRAM)
		ns := c.namespace(us.Category, us.Overlay)
		ns.mu.Lock()
		sym.Name = us.Name
		sym.Type = us.Type
		sym.Size = us.Size
		sym.Section = us.Section
		sym.UserDeclared = true
		sym.Autogenerated = false
		ns.dirty = true
		ns.mu.Unlock()
	}
	return nil
}

// SaveSymbolFile writes all symbols of all namespaces as a symbol file,
// sorted by category, overlay and address.
func (c *Context) SaveSymbolFile(w io.Writer, mode NamingMode) error {
	c.mu.RLock()
	keys := make([]nsKey, 0, len(c.namespaces))
	for key := range c.namespaces {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].overlay < keys[j].overlay
	})

	if _, err := fmt.Fprintln(w, "# name,vram,type,size,segment"); err != nil {
		return fmt.Errorf("writing symbol file header: %w", err)
	}

	for _, key := range keys {
		for _, sym := range c.Symbols(key.category, key.overlay) {
			size := ""
			if sym.Size != 0 {
				size = fmt.Sprintf("0x%X", sym.Size)
			}
			_, err := fmt.Fprintf(w, "%s,0x%08X,%s,%s,%s\n",
				sym.DisplayName(mode), sym.VRAM, sym.Type, size, sym.Section)
			if err != nil {
				return fmt.Errorf("writing symbol line: %w", err)
			}
		}
	}
	return nil
}
