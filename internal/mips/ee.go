package mips

// PS2 Emotion Engine: adds 128 bit lq/sq and the MMI space. The MMI
// coverage here is the subset compilers emit for integer code; unhandled
// parallel ops decode to Invalid and round-trip as .word.

const (
	mmiFunctMMI0 = 0x08
	mmiFunctMMI2 = 0x09
	mmiFunctMMI3 = 0x29
)

var eeMMITable = [64]opcodeEntry{
	0x00: {Madd, "madd", fmtRsRt, 0, 0},
	0x01: {Maddu, "maddu", fmtRsRt, 0, 0},
	0x04: {Plzcw, "plzcw", fmtRdRsOnly, 0, 0},
	0x10: {Mfhi1, "mfhi1", fmtRd, 0, 0},
	0x11: {Mthi1, "mthi1", fmtRs, 0, 0},
	0x12: {Mflo1, "mflo1", fmtRd, 0, 0},
	0x13: {Mtlo1, "mtlo1", fmtRs, 0, 0},
	0x18: {Mult1, "mult1", fmtRsRt, 0, 0},
	0x19: {Multu1, "multu1", fmtRsRt, 0, 0},
	0x1a: {Div1, "div1", fmtRsRt, 0, 0},
	0x1b: {Divu1, "divu1", fmtRsRt, 0, 0},
}

// parallel arithmetic sub-ops dispatch on the sa field.
var eeMMI0Table = [32]opcodeEntry{
	0x00: {Paddw, "paddw", fmtRdRsRt, 0, 0},
	0x01: {Psubw, "psubw", fmtRdRsRt, 0, 0},
	0x04: {Paddh, "paddh", fmtRdRsRt, 0, 0},
	0x05: {Psubh, "psubh", fmtRdRsRt, 0, 0},
	0x08: {Paddb, "paddb", fmtRdRsRt, 0, 0},
	0x09: {Psubb, "psubb", fmtRdRsRt, 0, 0},
}

var eeMMI2Table = [32]opcodeEntry{
	0x12: {Pand, "pand", fmtRdRsRt, 0, 0},
	0x13: {Pxor, "pxor", fmtRdRsRt, 0, 0},
}

var eeMMI3Table = [32]opcodeEntry{
	0x12: {Por, "por", fmtRdRsRt, 0, 0},
	0x13: {Pnor, "pnor", fmtRdRsRt, 0, 0},
}

func init() {
	registerDialect(DialectEE,
		opcodeEntry{Lq, "lq", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned, 16}, 30<<26)
	registerDialect(DialectEE,
		opcodeEntry{Sq, "sq", fmtRtOffsetBase, FlagStore | FlagLoImmSigned, 16}, 31<<26)

	for i, e := range eeMMITable {
		registerDialect(DialectEE, e, 28<<26|uint32(i))
	}
	for sa, e := range eeMMI0Table {
		registerDialect(DialectEE, e, 28<<26|uint32(sa)<<6|mmiFunctMMI0)
	}
	for sa, e := range eeMMI2Table {
		registerDialect(DialectEE, e, 28<<26|uint32(sa)<<6|mmiFunctMMI2)
	}
	for sa, e := range eeMMI3Table {
		registerDialect(DialectEE, e, 28<<26|uint32(sa)<<6|mmiFunctMMI3)
	}
}

func decodeMMI(word uint32, dialect Dialect) Opcode {
	if dialect != DialectEE {
		return Invalid
	}

	switch funct := word & 0x3f; funct {
	case mmiFunctMMI0:
		return eeMMI0Table[word>>6&0x1f].op
	case mmiFunctMMI2:
		return eeMMI2Table[word>>6&0x1f].op
	case mmiFunctMMI3:
		return eeMMI3Table[word>>6&0x1f].op
	default:
		return eeMMITable[funct].op
	}
}
