package context

import (
	"fmt"
	"sort"
	"sync"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// nsKey identifies one overlay namespace. The zero value is the global
// namespace that non-overlay code lives in.
type nsKey struct {
	category string
	overlay  uint32
}

// namespace holds the symbols of one overlay. Each namespace carries its
// own lock, giving the writer-sharded discipline the analysis phases rely
// on: concurrent getOrCreate calls serialize per namespace, not globally.
type namespace struct {
	mu      sync.RWMutex
	symbols map[uint32]*Symbol
	sorted  []uint32
	dirty   bool
}

// Context is the shared symbol table. It is the only synchronization point
// of an analysis run and outlives all sections.
type Context struct {
	logger *log.Logger

	mu         sync.RWMutex
	namespaces map[nsKey]*namespace

	diagnostics []Diagnostic
	diagMu      sync.Mutex
}

// Diagnostic records a non-fatal analysis anomaly. Partial analysis is
// more useful than none, so anomalies never abort a run.
type Diagnostic struct {
	VRAM    uint32
	Message string
}

// New creates an empty context.
func New(logger *log.Logger) *Context {
	return &Context{
		logger:     logger,
		namespaces: map[nsKey]*namespace{},
	}
}

func (c *Context) namespace(category string, overlay uint32) *namespace {
	key := nsKey{category: category, overlay: overlay}

	c.mu.RLock()
	ns := c.namespaces[key]
	c.mu.RUnlock()
	if ns != nil {
		return ns
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ns = c.namespaces[key]; ns == nil {
		ns = &namespace{symbols: map[uint32]*Symbol{}}
		c.namespaces[key] = ns
	}
	return ns
}

// GetOrCreate returns the symbol at vram in the given overlay namespace,
// creating an untyped stub if none exists. It is idempotent.
func (c *Context) GetOrCreate(category string, overlay uint32, vram uint32) *Symbol {
	ns := c.namespace(category, overlay)

	ns.mu.Lock()
	defer ns.mu.Unlock()

	sym := ns.symbols[vram]
	if sym == nil {
		sym = &Symbol{
			VRAM:          vram,
			Category:      category,
			Overlay:       overlay,
			Autogenerated: true,
			Referrers:     set.New[uint32](),
		}
		ns.symbols[vram] = sym
		ns.dirty = true
	}
	return sym
}

// Find returns the symbol at exactly vram. Lookup falls back from the
// overlay namespace to the global one; cross-category resolution is
// refused.
func (c *Context) Find(category string, overlay uint32, vram uint32) *Symbol {
	if category != "" {
		if sym := c.findIn(category, overlay, vram); sym != nil {
			return sym
		}
	}
	return c.findIn("", 0, vram)
}

func (c *Context) findIn(category string, overlay uint32, vram uint32) *Symbol {
	ns := c.namespace(category, overlay)
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return ns.symbols[vram]
}

// FindContaining returns the symbol whose [vram, vram+size) interval
// contains the address, along with the offset into it. Symbols without a
// known size only match exactly. Ties are broken by the largest size that
// still contains the address.
func (c *Context) FindContaining(category string, overlay uint32, vram uint32) (*Symbol, uint32) {
	if category != "" {
		if sym, off := c.findContainingIn(category, overlay, vram); sym != nil {
			return sym, off
		}
	}
	return c.findContainingIn("", 0, vram)
}

func (c *Context) findContainingIn(category string, overlay uint32, vram uint32) (*Symbol, uint32) {
	ns := c.namespace(category, overlay)

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if sym := ns.symbols[vram]; sym != nil {
		return sym, 0
	}

	if ns.dirty {
		ns.sorted = ns.sorted[:0]
		for addr := range ns.symbols {
			ns.sorted = append(ns.sorted, addr)
		}
		sort.Slice(ns.sorted, func(i, j int) bool { return ns.sorted[i] < ns.sorted[j] })
		ns.dirty = false
	}

	// scan candidates below the address, preferring the largest interval
	// that still contains it
	idx := sort.Search(len(ns.sorted), func(i int) bool { return ns.sorted[i] > vram })
	var best *Symbol
	for i := idx - 1; i >= 0; i-- {
		sym := ns.symbols[ns.sorted[i]]
		if sym.Size == 0 {
			continue
		}
		if sym.VRAM+sym.Size > vram {
			if best == nil || sym.Size > best.Size {
				best = sym
			}
			continue
		}
		// sorted by address: once an interval ends before vram, closer
		// symbols cannot contain it either unless they are larger, so
		// keep scanning only while overlaps remain plausible
		if vram-sym.VRAM >= 0x1000000 {
			break
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, vram - best.VRAM
}

// PromoteType promotes a symbol's type monotonically. User-declared types
// are immutable and incompatible promotions are rejected and recorded as
// diagnostics. Promoting to the current type is a no-op.
func (c *Context) PromoteType(sym *Symbol, newType SymbolType) bool {
	ns := c.namespace(sym.Category, sym.Overlay)
	ns.mu.Lock()
	defer ns.mu.Unlock()

	switch {
	case newType == sym.Type || newType == TypeUnknown:
		return newType == sym.Type
	case sym.UserDeclared:
		return false
	case sym.Type == TypeUnknown:
		sym.Type = newType
		return true
	case sym.Type == TypeWord && newType == TypeJumpTable:
		sym.Type = newType
		return true
	case sym.Type == TypeBranchLabel && newType == TypeJumpTableLabel:
		sym.Type = newType
		return true
	case sym.Type == TypeBranchLabel && newType == TypeFunction:
		sym.Type = newType
		return true
	case sym.Type == TypeFunction && newType == TypeBranchLabel:
		// a branch to a function entry keeps the stronger type
		return false
	default:
		c.AddDiagnostic(sym.VRAM, fmt.Sprintf(
			"rejected type promotion %s -> %s", sym.Type, newType))
		c.logger.Debug("rejected type promotion",
			log.Hex("vram", sym.VRAM),
			log.String("from", sym.Type.String()),
			log.String("to", newType.String()))
		return false
	}
}

// SetAccessType records the load/store width a symbol is accessed with.
// The first observed access wins.
func (c *Context) SetAccessType(sym *Symbol, size uint8, unsigned bool) {
	ns := c.namespace(sym.Category, sym.Overlay)
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if sym.AccessSize == 0 {
		sym.AccessSize = size
		sym.AccessUnsigned = unsigned
	}
}

// SetSize records the symbol size if not already known.
func (c *Context) SetSize(sym *Symbol, size uint32) {
	ns := c.namespace(sym.Category, sym.Overlay)
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if sym.Size == 0 && size > 0 {
		sym.Size = size
		ns.dirty = true
	}
}

// SetSection records the section a symbol originates from if not yet known.
func (c *Context) SetSection(sym *Symbol, kind SectionKind) {
	ns := c.namespace(sym.Category, sym.Overlay)
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if sym.Section == SectionUnknown {
		sym.Section = kind
	}
}

// AddReferrer records a reference to the symbol from the given address.
func (c *Context) AddReferrer(sym *Symbol, from uint32) {
	ns := c.namespace(sym.Category, sym.Overlay)
	ns.mu.Lock()
	defer ns.mu.Unlock()

	sym.Referrers.Add(from)
	sym.ReferenceCount++
}

// AddDiagnostic records a non-fatal analysis anomaly.
func (c *Context) AddDiagnostic(vram uint32, message string) {
	c.diagMu.Lock()
	defer c.diagMu.Unlock()
	c.diagnostics = append(c.diagnostics, Diagnostic{VRAM: vram, Message: message})
}

// Diagnostics returns all recorded diagnostics.
func (c *Context) Diagnostics() []Diagnostic {
	c.diagMu.Lock()
	defer c.diagMu.Unlock()
	return c.diagnostics
}

// Symbols returns all symbols of a namespace sorted by address.
func (c *Context) Symbols(category string, overlay uint32) []*Symbol {
	ns := c.namespace(category, overlay)
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	symbols := make([]*Symbol, 0, len(ns.symbols))
	for _, sym := range ns.symbols {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].VRAM < symbols[j].VRAM })
	return symbols
}
