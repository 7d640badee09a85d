package mips

// PS1 geometry transformation engine on COP2. Command words carry variable
// sf/mx/v/cv/lm bits in the middle of the word which the encoder preserves.

var gteCommandTable = [64]opcodeEntry{
	0x01: {Rtps, "rtps", fmtGTE, 0, 0},
	0x06: {Nclip, "nclip", fmtGTE, 0, 0},
	0x0c: {Op, "op", fmtGTE, 0, 0},
	0x10: {Dpcs, "dpcs", fmtGTE, 0, 0},
	0x11: {Intpl, "intpl", fmtGTE, 0, 0},
	0x12: {Mvmva, "mvmva", fmtGTE, 0, 0},
	0x13: {Ncds, "ncds", fmtGTE, 0, 0},
	0x14: {Cdp, "cdp", fmtGTE, 0, 0},
	0x16: {Ncdt, "ncdt", fmtGTE, 0, 0},
	0x1b: {Nccs, "nccs", fmtGTE, 0, 0},
	0x1c: {Cc, "cc", fmtGTE, 0, 0},
	0x1e: {Ncs, "ncs", fmtGTE, 0, 0},
	0x20: {Nct, "nct", fmtGTE, 0, 0},
	0x28: {Sqr, "sqr", fmtGTE, 0, 0},
	0x29: {Dcpl, "dcpl", fmtGTE, 0, 0},
	0x2a: {Dpct, "dpct", fmtGTE, 0, 0},
	0x2d: {Avsz3, "avsz3", fmtGTE, 0, 0},
	0x2e: {Avsz4, "avsz4", fmtGTE, 0, 0},
	0x30: {Rtpt, "rtpt", fmtGTE, 0, 0},
	0x3d: {Gpf, "gpf", fmtGTE, 0, 0},
	0x3e: {Gpl, "gpl", fmtGTE, 0, 0},
	0x3f: {Ncct, "ncct", fmtGTE, 0, 0},
}

var gteMoveTable = [32]opcodeEntry{
	0: {Mfc2, "mfc2", fmtRtRdSel, 0, 0},
	2: {Cfc2, "cfc2", fmtRtRdSel, 0, 0},
	4: {Mtc2, "mtc2", fmtRtRdSel, 0, 0},
	6: {Ctc2, "ctc2", fmtRtRdSel, 0, 0},
}

func init() {
	for i, e := range gteCommandTable {
		registerDialect(DialectGTE, e, opCop2<<26|1<<25|uint32(i))
	}
	for i, e := range gteMoveTable {
		registerDialect(DialectGTE, e, opCop2<<26|uint32(i)<<21)
	}
}

func decodeCop2(word uint32, dialect Dialect) Opcode {
	switch dialect {
	case DialectRSP:
		return decodeRSPCop2(word)
	case DialectGTE:
		if word>>25&1 == 1 {
			return gteCommandTable[word&0x3f].op
		}
		return gteMoveTable[word>>21&0x1f].op
	default:
		return Invalid
	}
}
