package mips

// PSP ALLEGREX: a MIPS32r2-like core. Single precision FPU only; adds
// bit manipulation ops in the SPECIAL and SPECIAL3 spaces, reusing funct
// slots that hold 64 bit operations on the R4300.

var allegrexSpecialOverlay = map[uint8]opcodeEntry{
	22: {Clz, "clz", fmtRdRsOnly, 0, 0},
	23: {Clo, "clo", fmtRdRsOnly, 0, 0},
	28: {Madd, "madd", fmtRsRt, 0, 0},
	29: {Maddu, "maddu", fmtRsRt, 0, 0},
	44: {Max, "max", fmtRdRsRt, 0, 0},
	45: {Min, "min", fmtRdRsRt, 0, 0},
	46: {Msub, "msub", fmtRsRt, 0, 0},
	47: {Msubu, "msubu", fmtRsRt, 0, 0},
}

const (
	allegrexFunctExt   = 0
	allegrexFunctIns   = 4
	allegrexFunctBshfl = 32
)

// bshfl sub-ops dispatch on the sa field.
var allegrexBshflTable = [32]opcodeEntry{
	2:  {Wsbh, "wsbh", fmtRdRtOnly, 0, 0},
	16: {Seb, "seb", fmtRdRtOnly, 0, 0},
	20: {Bitrev, "bitrev", fmtRdRtOnly, 0, 0},
	24: {Seh, "seh", fmtRdRtOnly, 0, 0},
}

func init() {
	for funct, e := range allegrexSpecialOverlay {
		registerDialect(DialectAllegrex, e, uint32(funct))
	}
	registerDialect(DialectAllegrex,
		opcodeEntry{Rotr, "rotr", fmtRdRtSa, 0, 0}, 1<<21|2)
	registerDialect(DialectAllegrex,
		opcodeEntry{Rotrv, "rotrv", fmtRdRtRs, 0, 0}, 1<<6|6)

	registerDialect(DialectAllegrex,
		opcodeEntry{Ext, "ext", fmtRdRtExt, 0, 0}, 31<<26|allegrexFunctExt)
	registerDialect(DialectAllegrex,
		opcodeEntry{Ins, "ins", fmtRdRtExt, 0, 0}, 31<<26|allegrexFunctIns)
	for sa, e := range allegrexBshflTable {
		registerDialect(DialectAllegrex, e, 31<<26|uint32(sa)<<6|allegrexFunctBshfl)
	}
}

// decodeDialectSpecial handles SPECIAL slots a dialect repurposes before the
// base table applies.
func decodeDialectSpecial(word uint32, dialect Dialect) (Opcode, bool) {
	if dialect != DialectAllegrex {
		return Invalid, false
	}

	funct := uint8(word & 0x3f)
	if e, ok := allegrexSpecialOverlay[funct]; ok {
		return e.op, true
	}
	// rotr is srl with bit 21 set, rotrv is srlv with bit 6 set
	if funct == 2 && word>>21&1 == 1 {
		return Rotr, true
	}
	if funct == 6 && word>>6&1 == 1 {
		return Rotrv, true
	}
	return Invalid, false
}

func decodeAllegrexSpecial3(word uint32) Opcode {
	switch word & 0x3f {
	case allegrexFunctExt:
		return Ext
	case allegrexFunctIns:
		return Ins
	case allegrexFunctBshfl:
		return allegrexBshflTable[word>>6&0x1f].op
	default:
		return Invalid
	}
}
