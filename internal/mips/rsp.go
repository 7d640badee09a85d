package mips

// RSP scalar unit: a MIPS I subset without multiply, divide or traps.
// COP2 carries the vector unit, LWC2/SWC2 the vector loads and stores.

var rspScalarOps = func() map[Opcode]struct{} {
	ops := []Opcode{
		Sll, Srl, Sra, Sllv, Srlv, Srav, Jr, Jalr, Break,
		Add, Addu, Sub, Subu, And, Or, Xor, Nor, Slt, Sltu,
		J, Jal, Beq, Bne, Blez, Bgtz,
		Addi, Addiu, Slti, Sltiu, Andi, Ori, Xori, Lui,
		Lb, Lh, Lw, Lbu, Lhu, Sb, Sh, Sw,
		Bltz, Bgez, Bltzal, Bgezal,
		Mfc0, Mtc0,
	}
	m := make(map[Opcode]struct{}, len(ops))
	for _, op := range ops {
		m[op] = struct{}{}
	}
	return m
}()

func rspAllowed(op Opcode) bool {
	_, ok := rspScalarOps[op]
	return ok
}

var rspVectorTable = [64]opcodeEntry{
	0x00: {Vmulf, "vmulf", fmtVdVsVt, 0, 0},
	0x01: {Vmulu, "vmulu", fmtVdVsVt, 0, 0},
	0x02: {Vrndp, "vrndp", fmtVdVsVt, 0, 0},
	0x03: {Vmulq, "vmulq", fmtVdVsVt, 0, 0},
	0x04: {Vmudl, "vmudl", fmtVdVsVt, 0, 0},
	0x05: {Vmudm, "vmudm", fmtVdVsVt, 0, 0},
	0x06: {Vmudn, "vmudn", fmtVdVsVt, 0, 0},
	0x07: {Vmudh, "vmudh", fmtVdVsVt, 0, 0},
	0x08: {Vmacf, "vmacf", fmtVdVsVt, 0, 0},
	0x09: {Vmacu, "vmacu", fmtVdVsVt, 0, 0},
	0x0a: {Vrndn, "vrndn", fmtVdVsVt, 0, 0},
	0x0b: {Vmacq, "vmacq", fmtVdVsVt, 0, 0},
	0x0c: {Vmadl, "vmadl", fmtVdVsVt, 0, 0},
	0x0d: {Vmadm, "vmadm", fmtVdVsVt, 0, 0},
	0x0e: {Vmadn, "vmadn", fmtVdVsVt, 0, 0},
	0x0f: {Vmadh, "vmadh", fmtVdVsVt, 0, 0},
	0x10: {Vadd, "vadd", fmtVdVsVt, 0, 0},
	0x11: {Vsub, "vsub", fmtVdVsVt, 0, 0},
	0x13: {Vabs, "vabs", fmtVdVsVt, 0, 0},
	0x14: {Vaddc, "vaddc", fmtVdVsVt, 0, 0},
	0x15: {Vsubc, "vsubc", fmtVdVsVt, 0, 0},
	0x1d: {Vsar, "vsar", fmtVdVsVt, 0, 0},
	0x20: {Vlt, "vlt", fmtVdVsVt, 0, 0},
	0x21: {Veq, "veq", fmtVdVsVt, 0, 0},
	0x22: {Vne, "vne", fmtVdVsVt, 0, 0},
	0x23: {Vge, "vge", fmtVdVsVt, 0, 0},
	0x24: {Vcl, "vcl", fmtVdVsVt, 0, 0},
	0x25: {Vch, "vch", fmtVdVsVt, 0, 0},
	0x26: {Vcr, "vcr", fmtVdVsVt, 0, 0},
	0x27: {Vmrg, "vmrg", fmtVdVsVt, 0, 0},
	0x28: {Vand, "vand", fmtVdVsVt, 0, 0},
	0x29: {Vnand, "vnand", fmtVdVsVt, 0, 0},
	0x2a: {Vor, "vor", fmtVdVsVt, 0, 0},
	0x2b: {Vnor, "vnor", fmtVdVsVt, 0, 0},
	0x2c: {Vxor, "vxor", fmtVdVsVt, 0, 0},
	0x2d: {Vnxor, "vnxor", fmtVdVsVt, 0, 0},
	0x30: {Vrcp, "vrcp", fmtVmoveDE, 0, 0},
	0x31: {Vrcpl, "vrcpl", fmtVmoveDE, 0, 0},
	0x32: {Vrcph, "vrcph", fmtVmoveDE, 0, 0},
	0x33: {Vmov, "vmov", fmtVmoveDE, 0, 0},
	0x34: {Vrsq, "vrsq", fmtVmoveDE, 0, 0},
	0x35: {Vrsql, "vrsql", fmtVmoveDE, 0, 0},
	0x36: {Vrsqh, "vrsqh", fmtVmoveDE, 0, 0},
	0x37: {Vnop, "vnop", fmtNone, 0, 0},
}

var rspCop2MoveTable = [32]opcodeEntry{
	0: {Mfc2, "mfc2", fmtRtVsEl, 0, 0},
	2: {Cfc2, "cfc2", fmtRtVsEl, 0, 0},
	4: {Mtc2, "mtc2", fmtRtVsEl, 0, 0},
	6: {Ctc2, "ctc2", fmtRtVsEl, 0, 0},
}

// vector loads dispatch on the rd field of LWC2 words.
var rspVectorLoadTable = [32]opcodeEntry{
	0:  {Lbv, "lbv", fmtVtElOffsetBase, FlagLoad, 1},
	1:  {Lsv, "lsv", fmtVtElOffsetBase, FlagLoad, 2},
	2:  {Llv, "llv", fmtVtElOffsetBase, FlagLoad, 4},
	3:  {Ldv, "ldv", fmtVtElOffsetBase, FlagLoad, 8},
	4:  {Lqv, "lqv", fmtVtElOffsetBase, FlagLoad, 16},
	5:  {Lrv, "lrv", fmtVtElOffsetBase, FlagLoad, 16},
	6:  {Lpv, "lpv", fmtVtElOffsetBase, FlagLoad, 8},
	7:  {Luv, "luv", fmtVtElOffsetBase, FlagLoad, 8},
	8:  {Lhv, "lhv", fmtVtElOffsetBase, FlagLoad, 16},
	9:  {Lfv, "lfv", fmtVtElOffsetBase, FlagLoad, 16},
	11: {Ltv, "ltv", fmtVtElOffsetBase, FlagLoad, 16},
}

var rspVectorStoreTable = [32]opcodeEntry{
	0:  {Sbv, "sbv", fmtVtElOffsetBase, FlagStore, 1},
	1:  {Ssv, "ssv", fmtVtElOffsetBase, FlagStore, 2},
	2:  {Slv, "slv", fmtVtElOffsetBase, FlagStore, 4},
	3:  {Sdv, "sdv", fmtVtElOffsetBase, FlagStore, 8},
	4:  {Sqv, "sqv", fmtVtElOffsetBase, FlagStore, 16},
	5:  {Srv, "srv", fmtVtElOffsetBase, FlagStore, 16},
	6:  {Spv, "spv", fmtVtElOffsetBase, FlagStore, 8},
	7:  {Suv, "suv", fmtVtElOffsetBase, FlagStore, 8},
	8:  {Shv, "shv", fmtVtElOffsetBase, FlagStore, 16},
	9:  {Sfv, "sfv", fmtVtElOffsetBase, FlagStore, 16},
	10: {Swv, "swv", fmtVtElOffsetBase, FlagStore, 16},
	11: {Stv, "stv", fmtVtElOffsetBase, FlagStore, 16},
}

func init() {
	for i, e := range rspVectorTable {
		registerDialect(DialectRSP, e, opCop2<<26|1<<25|uint32(i))
	}
	for i, e := range rspCop2MoveTable {
		registerDialect(DialectRSP, e, opCop2<<26|uint32(i)<<21)
	}
	for i, e := range rspVectorLoadTable {
		registerDialect(DialectRSP, e, opLwc2<<26|uint32(i)<<11)
	}
	for i, e := range rspVectorStoreTable {
		registerDialect(DialectRSP, e, opSwc2<<26|uint32(i)<<11)
	}
}

func decodeRSPCop2(word uint32) Opcode {
	if word>>25&1 == 1 {
		return rspVectorTable[word&0x3f].op
	}
	return rspCop2MoveTable[word>>21&0x1f].op
}

func decodeRSPVectorLoad(word uint32) Opcode {
	return rspVectorLoadTable[word>>11&0x1f].op
}

func decodeRSPVectorStore(word uint32) Opcode {
	return rspVectorStoreTable[word>>11&0x1f].op
}
