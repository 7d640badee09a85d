package mips

const (
	opSpecial = 0
	opRegimm  = 1
	opCop0    = 16
	opCop1    = 17
	opCop2    = 18
	opLwc2    = 50
	opSwc2    = 58
)

var (
	baseEntries      = map[Opcode]*opcodeEntry{}
	baseTemplates    = map[Opcode]uint32{}
	dialectEntries   = map[Dialect]map[Opcode]*opcodeEntry{}
	dialectTemplates = map[Dialect]map[Opcode]uint32{}
)

func register(e opcodeEntry, template uint32) {
	if e.op == Invalid {
		return
	}
	entry := e
	baseEntries[e.op] = &entry
	baseTemplates[e.op] = template
	opcodeNames[e.op] = e.name
}

func registerDialect(d Dialect, e opcodeEntry, template uint32) {
	if e.op == Invalid {
		return
	}
	if dialectEntries[d] == nil {
		dialectEntries[d] = map[Opcode]*opcodeEntry{}
		dialectTemplates[d] = map[Opcode]uint32{}
	}
	entry := e
	dialectEntries[d][e.op] = &entry
	dialectTemplates[d][e.op] = template
	opcodeNames[e.op] = e.name
}

func init() {
	for i, e := range primaryTable {
		register(e, uint32(i)<<26)
	}
	for i, e := range specialTable {
		register(e, uint32(i))
	}
	for i, e := range regimmTable {
		register(e, opRegimm<<26|uint32(i)<<16)
	}
	for i, e := range cop0RsTable {
		register(e, opCop0<<26|uint32(i)<<21)
	}
	for i, e := range cop0FunctTable {
		register(e, opCop0<<26|1<<25|uint32(i))
	}
	for i, e := range cop1RsTable {
		register(e, opCop1<<26|uint32(i)<<21)
	}
	for i, e := range cop1BcTable {
		register(e, opCop1<<26|8<<21|uint32(i)<<16)
	}
	for i, e := range cop1STable {
		register(e, opCop1<<26|fpFmtS<<21|uint32(i))
	}
	for i, e := range cop1DTable {
		register(e, opCop1<<26|fpFmtD<<21|uint32(i))
	}
	for i, e := range cop1WTable {
		register(e, opCop1<<26|fpFmtW<<21|uint32(i))
	}
	for i, e := range cop1LTable {
		register(e, opCop1<<26|fpFmtL<<21|uint32(i))
	}
}

func entryOf(op Opcode, dialect Dialect) *opcodeEntry {
	if e, ok := dialectEntries[dialect][op]; ok {
		return e
	}
	return baseEntries[op]
}

func templateOf(op Opcode, dialect Dialect) (uint32, bool) {
	if t, ok := dialectTemplates[dialect][op]; ok {
		return t, true
	}
	t, ok := baseTemplates[op]
	return t, ok
}

// Decode decodes one endian adjusted machine word for the given dialect.
// It never fails: unknown or malformed bit patterns decode to Invalid and
// are emitted as raw .word directives by the analyzers.
func Decode(word uint32, dialect Dialect) Instruction {
	ins := Instruction{Raw: word, Dialect: dialect}
	ins.Opcode = decodeOpcode(word, dialect)

	// a decoded instruction must round-trip exactly, otherwise reserved
	// bits are set and the word cannot be re-assembled from the mnemonic
	if ins.Opcode != Invalid && Encode(ins) != word {
		ins.Opcode = Invalid
	}
	return ins
}

func decodeOpcode(word uint32, dialect Dialect) Opcode {
	op := word >> 26

	switch op {
	case opSpecial:
		if dop, ok := decodeDialectSpecial(word, dialect); ok {
			return dop
		}
		return filterDialect(specialTable[word&0x3f], dialect)
	case opRegimm:
		return filterDialect(regimmTable[word>>16&0x1f], dialect)
	case opCop0:
		if word>>25&1 == 1 {
			return filterDialect(cop0FunctTable[word&0x3f], dialect)
		}
		return filterDialect(cop0RsTable[word>>21&0x1f], dialect)
	case opCop1:
		return decodeCop1(word, dialect)
	case opCop2:
		return decodeCop2(word, dialect)
	case opLwc2:
		if dialect == DialectRSP {
			return decodeRSPVectorLoad(word)
		}
		return filterDialect(primaryTable[op], dialect)
	case opSwc2:
		if dialect == DialectRSP {
			return decodeRSPVectorStore(word)
		}
		return filterDialect(primaryTable[op], dialect)
	case 28:
		return decodeMMI(word, dialect)
	case 30:
		if dialect == DialectEE {
			return Lq
		}
		return Invalid
	case 31:
		if dialect == DialectEE {
			return Sq
		}
		if dialect == DialectAllegrex {
			return decodeAllegrexSpecial3(word)
		}
		return Invalid
	default:
		return filterDialect(primaryTable[op], dialect)
	}
}

func decodeCop1(word uint32, dialect Dialect) Opcode {
	switch dialect {
	case DialectRSP, DialectGTE:
		return Invalid // neither chip carries an FPU
	}

	rs := word >> 21 & 0x1f
	switch rs {
	case 8:
		return filterDialect(cop1BcTable[word>>16&0x1f], dialect)
	case fpFmtS:
		return filterDialect(cop1STable[word&0x3f], dialect)
	case fpFmtD:
		return filterDialect(cop1DTable[word&0x3f], dialect)
	case fpFmtW:
		return filterDialect(cop1WTable[word&0x3f], dialect)
	case fpFmtL:
		return filterDialect(cop1LTable[word&0x3f], dialect)
	default:
		return filterDialect(cop1RsTable[rs], dialect)
	}
}

// filterDialect rejects table entries that do not exist on the given dialect.
func filterDialect(e opcodeEntry, dialect Dialect) Opcode {
	if e.op == Invalid {
		return Invalid
	}

	switch dialect {
	case DialectR4300:
		// the VR4300 has no COP2
		switch e.op {
		case Lwc2, Swc2, Ldc2, Sdc2:
			return Invalid
		}
	case DialectRSP:
		if !rspAllowed(e.op) {
			return Invalid
		}
	case DialectGTE:
		// MIPS I: no 64 bit ops, no branch likely, no traps, no ll/sc
		if e.flags&(Flag64|FlagBranchLikely|FlagTrap) != 0 {
			return Invalid
		}
		switch e.op {
		case Movz, Movn, Ll, Sc, Sync, Pref, Ldc2, Sdc2,
			Tlbr, Tlbwi, Tlbwr, Tlbp, Eret:
			return Invalid
		}
	case DialectAllegrex:
		if e.flags&(Flag64|FlagDouble) != 0 {
			return Invalid
		}
		switch e.op {
		case Lwc2, Swc2, Ldc2, Sdc2:
			return Invalid
		}
	}
	return e.op
}

// Encode rebuilds the machine word of a decoded instruction from its opcode
// template and operand fields. For Invalid instructions the raw word is
// returned unchanged. Encode(Decode(w)) == w holds for every valid word.
func Encode(ins Instruction) uint32 {
	template, ok := templateOf(ins.Opcode, ins.Dialect)
	if !ok {
		return ins.Raw
	}

	w := template
	rs := uint32(ins.Rs())
	rt := uint32(ins.Rt())
	rd := uint32(ins.Rd())
	sa := uint32(ins.Sa())
	imm := uint32(ins.Imm())

	switch ins.format() {
	case fmtNone:
	case fmtRdRsRt:
		w |= rs<<21 | rt<<16 | rd<<11
	case fmtRdRtSa:
		w |= rt<<16 | rd<<11 | sa<<6
	case fmtRdRtRs:
		w |= rs<<21 | rt<<16 | rd<<11
	case fmtRsRt:
		w |= rs<<21 | rt<<16
	case fmtRs:
		w |= rs << 21
	case fmtRd:
		w |= rd << 11
	case fmtRdRs:
		w |= rs<<21 | rd<<11
	case fmtRsRtBranch:
		w |= rs<<21 | rt<<16 | imm
	case fmtRsBranch, fmtRsImmTrap:
		w |= rs<<21 | imm
	case fmtRtRsImm:
		w |= rs<<21 | rt<<16 | imm
	case fmtRtImm:
		w |= rt<<16 | imm
	case fmtRtOffsetBase, fmtFtOffsetBase:
		w |= rs<<21 | rt<<16 | imm
	case fmtTarget:
		w |= ins.Target()
	case fmtCode:
		w |= ins.Code() << 6
	case fmtBranch:
		w |= imm
	case fmtRtRdSel:
		w |= rt<<16 | rd<<11
	case fmtRtFs:
		w |= rt<<16 | rd<<11
	case fmtFdFsFt:
		w |= rt<<16 | rd<<11 | sa<<6
	case fmtFdFs:
		w |= rd<<11 | sa<<6
	case fmtFsFt:
		w |= rt<<16 | rd<<11
	case fmtGTE:
		w |= ins.GTEFlags() << 6
	case fmtVdVsVt, fmtVmoveDE:
		w |= uint32(ins.VElem())<<21 | rt<<16 | rd<<11 | sa<<6
	case fmtVtElOffsetBase:
		w |= rs<<21 | rt<<16 | uint32(ins.VMemElem())<<7 | ins.Raw&0x7f
	case fmtRtVsEl:
		w |= rt<<16 | rd<<11 | uint32(ins.VMemElem())<<7
	case fmtRdRtExt:
		w |= rs<<21 | rt<<16 | rd<<11 | sa<<6
	case fmtRdRtOnly:
		w |= rt<<16 | rd<<11
	case fmtRdRsOnly:
		w |= rs<<21 | rd<<11
	}
	return w
}
