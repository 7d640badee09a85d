package mips

// The decode tables are the single source of truth for the instruction set:
// Decode dispatches through them and init derives the encode templates from
// their slot positions, so every entry round-trips by construction.

var primaryTable = [64]opcodeEntry{
	2:  {J, "j", fmtTarget, FlagJump, 0},
	3:  {Jal, "jal", fmtTarget, FlagJump | FlagWritesRa, 0},
	4:  {Beq, "beq", fmtRsRtBranch, FlagBranch, 0},
	5:  {Bne, "bne", fmtRsRtBranch, FlagBranch, 0},
	6:  {Blez, "blez", fmtRsBranch, FlagBranch, 0},
	7:  {Bgtz, "bgtz", fmtRsBranch, FlagBranch, 0},
	8:  {Addi, "addi", fmtRtRsImm, FlagLoImmSigned, 0},
	9:  {Addiu, "addiu", fmtRtRsImm, FlagLoImmSigned | FlagGpRelCandidate, 0},
	10: {Slti, "slti", fmtRtRsImm, 0, 0},
	11: {Sltiu, "sltiu", fmtRtRsImm, 0, 0},
	12: {Andi, "andi", fmtRtRsImm, 0, 0},
	13: {Ori, "ori", fmtRtRsImm, FlagLoImmZeroExt, 0},
	14: {Xori, "xori", fmtRtRsImm, 0, 0},
	15: {Lui, "lui", fmtRtImm, FlagHiImm, 0},
	20: {Beql, "beql", fmtRsRtBranch, FlagBranch | FlagBranchLikely, 0},
	21: {Bnel, "bnel", fmtRsRtBranch, FlagBranch | FlagBranchLikely, 0},
	22: {Blezl, "blezl", fmtRsBranch, FlagBranch | FlagBranchLikely, 0},
	23: {Bgtzl, "bgtzl", fmtRsBranch, FlagBranch | FlagBranchLikely, 0},
	24: {Daddi, "daddi", fmtRtRsImm, FlagLoImmSigned | Flag64, 0},
	25: {Daddiu, "daddiu", fmtRtRsImm, FlagLoImmSigned | FlagGpRelCandidate | Flag64, 0},
	26: {Ldl, "ldl", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | Flag64, 8},
	27: {Ldr, "ldr", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | Flag64, 8},
	32: {Lb, "lb", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagGpRelCandidate, 1},
	33: {Lh, "lh", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagGpRelCandidate, 2},
	34: {Lwl, "lwl", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned, 4},
	35: {Lw, "lw", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagGpRelCandidate, 4},
	36: {Lbu, "lbu", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagUnsigned | FlagGpRelCandidate, 1},
	37: {Lhu, "lhu", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagUnsigned | FlagGpRelCandidate, 2},
	38: {Lwr, "lwr", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned, 4},
	39: {Lwu, "lwu", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagUnsigned | Flag64, 4},
	40: {Sb, "sb", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | FlagGpRelCandidate, 1},
	41: {Sh, "sh", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | FlagGpRelCandidate, 2},
	42: {Swl, "swl", fmtRtOffsetBase, FlagStore | FlagLoImmSigned, 4},
	43: {Sw, "sw", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | FlagGpRelCandidate, 4},
	44: {Sdl, "sdl", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | Flag64, 8},
	45: {Sdr, "sdr", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | Flag64, 8},
	46: {Swr, "swr", fmtRtOffsetBase, FlagStore | FlagLoImmSigned, 4},
	47: {Cache, "cache", fmtRtOffsetBase, FlagLoImmSigned, 0},
	48: {Ll, "ll", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned, 4},
	49: {Lwc1, "lwc1", fmtFtOffsetBase, FlagLoad | FlagLoImmSigned | FlagFloat | FlagGpRelCandidate, 4},
	50: {Lwc2, "lwc2", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned, 4},
	51: {Pref, "pref", fmtRtOffsetBase, FlagLoImmSigned, 0},
	52: {Lld, "lld", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | Flag64, 8},
	53: {Ldc1, "ldc1", fmtFtOffsetBase, FlagLoad | FlagLoImmSigned | FlagDouble | FlagGpRelCandidate, 8},
	54: {Ldc2, "ldc2", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned, 8},
	55: {Ld, "ld", fmtRtOffsetBase, FlagLoad | FlagLoImmSigned | FlagGpRelCandidate | Flag64, 8},
	56: {Sc, "sc", fmtRtOffsetBase, FlagStore | FlagLoImmSigned, 4},
	57: {Swc1, "swc1", fmtFtOffsetBase, FlagStore | FlagLoImmSigned | FlagFloat | FlagGpRelCandidate, 4},
	58: {Swc2, "swc2", fmtRtOffsetBase, FlagStore | FlagLoImmSigned, 4},
	60: {Scd, "scd", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | Flag64, 8},
	61: {Sdc1, "sdc1", fmtFtOffsetBase, FlagStore | FlagLoImmSigned | FlagDouble | FlagGpRelCandidate, 8},
	62: {Sdc2, "sdc2", fmtRtOffsetBase, FlagStore | FlagLoImmSigned, 8},
	63: {Sd, "sd", fmtRtOffsetBase, FlagStore | FlagLoImmSigned | FlagGpRelCandidate | Flag64, 8},
}

var specialTable = [64]opcodeEntry{
	0:  {Sll, "sll", fmtRdRtSa, 0, 0},
	2:  {Srl, "srl", fmtRdRtSa, 0, 0},
	3:  {Sra, "sra", fmtRdRtSa, 0, 0},
	4:  {Sllv, "sllv", fmtRdRtRs, 0, 0},
	6:  {Srlv, "srlv", fmtRdRtRs, 0, 0},
	7:  {Srav, "srav", fmtRdRtRs, 0, 0},
	8:  {Jr, "jr", fmtRs, FlagJump, 0},
	9:  {Jalr, "jalr", fmtRdRs, FlagJump | FlagWritesRa, 0},
	10: {Movz, "movz", fmtRdRsRt, 0, 0},
	11: {Movn, "movn", fmtRdRsRt, 0, 0},
	12: {Syscall, "syscall", fmtCode, 0, 0},
	13: {Break, "break", fmtCode, 0, 0},
	15: {Sync, "sync", fmtNone, 0, 0},
	16: {Mfhi, "mfhi", fmtRd, 0, 0},
	17: {Mthi, "mthi", fmtRs, 0, 0},
	18: {Mflo, "mflo", fmtRd, 0, 0},
	19: {Mtlo, "mtlo", fmtRs, 0, 0},
	20: {Dsllv, "dsllv", fmtRdRtRs, Flag64, 0},
	22: {Dsrlv, "dsrlv", fmtRdRtRs, Flag64, 0},
	23: {Dsrav, "dsrav", fmtRdRtRs, Flag64, 0},
	24: {Mult, "mult", fmtRsRt, 0, 0},
	25: {Multu, "multu", fmtRsRt, 0, 0},
	26: {Div, "div", fmtRsRt, 0, 0},
	27: {Divu, "divu", fmtRsRt, 0, 0},
	28: {Dmult, "dmult", fmtRsRt, Flag64, 0},
	29: {Dmultu, "dmultu", fmtRsRt, Flag64, 0},
	30: {Ddiv, "ddiv", fmtRsRt, Flag64, 0},
	31: {Ddivu, "ddivu", fmtRsRt, Flag64, 0},
	32: {Add, "add", fmtRdRsRt, 0, 0},
	33: {Addu, "addu", fmtRdRsRt, 0, 0},
	34: {Sub, "sub", fmtRdRsRt, 0, 0},
	35: {Subu, "subu", fmtRdRsRt, 0, 0},
	36: {And, "and", fmtRdRsRt, 0, 0},
	37: {Or, "or", fmtRdRsRt, 0, 0},
	38: {Xor, "xor", fmtRdRsRt, 0, 0},
	39: {Nor, "nor", fmtRdRsRt, 0, 0},
	42: {Slt, "slt", fmtRdRsRt, 0, 0},
	43: {Sltu, "sltu", fmtRdRsRt, 0, 0},
	44: {Dadd, "dadd", fmtRdRsRt, Flag64, 0},
	45: {Daddu, "daddu", fmtRdRsRt, Flag64, 0},
	46: {Dsub, "dsub", fmtRdRsRt, Flag64, 0},
	47: {Dsubu, "dsubu", fmtRdRsRt, Flag64, 0},
	48: {Tge, "tge", fmtRsRt, FlagTrap, 0},
	49: {Tgeu, "tgeu", fmtRsRt, FlagTrap, 0},
	50: {Tlt, "tlt", fmtRsRt, FlagTrap, 0},
	51: {Tltu, "tltu", fmtRsRt, FlagTrap, 0},
	52: {Teq, "teq", fmtRsRt, FlagTrap, 0},
	54: {Tne, "tne", fmtRsRt, FlagTrap, 0},
	56: {Dsll, "dsll", fmtRdRtSa, Flag64, 0},
	58: {Dsrl, "dsrl", fmtRdRtSa, Flag64, 0},
	59: {Dsra, "dsra", fmtRdRtSa, Flag64, 0},
	60: {Dsll32, "dsll32", fmtRdRtSa, Flag64, 0},
	62: {Dsrl32, "dsrl32", fmtRdRtSa, Flag64, 0},
	63: {Dsra32, "dsra32", fmtRdRtSa, Flag64, 0},
}

var regimmTable = [32]opcodeEntry{
	0:  {Bltz, "bltz", fmtRsBranch, FlagBranch, 0},
	1:  {Bgez, "bgez", fmtRsBranch, FlagBranch, 0},
	2:  {Bltzl, "bltzl", fmtRsBranch, FlagBranch | FlagBranchLikely, 0},
	3:  {Bgezl, "bgezl", fmtRsBranch, FlagBranch | FlagBranchLikely, 0},
	8:  {Tgei, "tgei", fmtRsImmTrap, FlagTrap, 0},
	9:  {Tgeiu, "tgeiu", fmtRsImmTrap, FlagTrap, 0},
	10: {Tlti, "tlti", fmtRsImmTrap, FlagTrap, 0},
	11: {Tltiu, "tltiu", fmtRsImmTrap, FlagTrap, 0},
	12: {Teqi, "teqi", fmtRsImmTrap, FlagTrap, 0},
	14: {Tnei, "tnei", fmtRsImmTrap, FlagTrap, 0},
	16: {Bltzal, "bltzal", fmtRsBranch, FlagBranch | FlagWritesRa, 0},
	17: {Bgezal, "bgezal", fmtRsBranch, FlagBranch | FlagWritesRa, 0},
	18: {Bltzall, "bltzall", fmtRsBranch, FlagBranch | FlagBranchLikely | FlagWritesRa, 0},
	19: {Bgezall, "bgezall", fmtRsBranch, FlagBranch | FlagBranchLikely | FlagWritesRa, 0},
}

// cop0RsTable dispatches COP0 on the rs field for the move forms.
var cop0RsTable = [32]opcodeEntry{
	0: {Mfc0, "mfc0", fmtRtRdSel, 0, 0},
	1: {Dmfc0, "dmfc0", fmtRtRdSel, Flag64, 0},
	4: {Mtc0, "mtc0", fmtRtRdSel, 0, 0},
	5: {Dmtc0, "dmtc0", fmtRtRdSel, Flag64, 0},
}

// cop0FunctTable dispatches COP0 words with the CO bit set on the function field.
var cop0FunctTable = [64]opcodeEntry{
	1:  {Tlbr, "tlbr", fmtNone, 0, 0},
	2:  {Tlbwi, "tlbwi", fmtNone, 0, 0},
	6:  {Tlbwr, "tlbwr", fmtNone, 0, 0},
	8:  {Tlbp, "tlbp", fmtNone, 0, 0},
	24: {Eret, "eret", fmtNone, 0, 0},
}

var cop1RsTable = [32]opcodeEntry{
	0: {Mfc1, "mfc1", fmtRtFs, FlagFloat, 0},
	1: {Dmfc1, "dmfc1", fmtRtFs, FlagFloat | Flag64, 0},
	2: {Cfc1, "cfc1", fmtRtFs, FlagFloat, 0},
	4: {Mtc1, "mtc1", fmtRtFs, FlagFloat, 0},
	5: {Dmtc1, "dmtc1", fmtRtFs, FlagFloat | Flag64, 0},
	6: {Ctc1, "ctc1", fmtRtFs, FlagFloat, 0},
}

// cop1BcTable dispatches COP1 branches on the rt field.
var cop1BcTable = [32]opcodeEntry{
	0: {Bc1f, "bc1f", fmtBranch, FlagBranch | FlagFloat, 0},
	1: {Bc1t, "bc1t", fmtBranch, FlagBranch | FlagFloat, 0},
	2: {Bc1fl, "bc1fl", fmtBranch, FlagBranch | FlagBranchLikely | FlagFloat, 0},
	3: {Bc1tl, "bc1tl", fmtBranch, FlagBranch | FlagBranchLikely | FlagFloat, 0},
}

var cop1STable = [64]opcodeEntry{
	0:  {AddS, "add.s", fmtFdFsFt, FlagFloat, 0},
	1:  {SubS, "sub.s", fmtFdFsFt, FlagFloat, 0},
	2:  {MulS, "mul.s", fmtFdFsFt, FlagFloat, 0},
	3:  {DivS, "div.s", fmtFdFsFt, FlagFloat, 0},
	4:  {SqrtS, "sqrt.s", fmtFdFs, FlagFloat, 0},
	5:  {AbsS, "abs.s", fmtFdFs, FlagFloat, 0},
	6:  {MovS, "mov.s", fmtFdFs, FlagFloat, 0},
	7:  {NegS, "neg.s", fmtFdFs, FlagFloat, 0},
	8:  {RoundLS, "round.l.s", fmtFdFs, FlagFloat | Flag64, 0},
	9:  {TruncLS, "trunc.l.s", fmtFdFs, FlagFloat | Flag64, 0},
	10: {CeilLS, "ceil.l.s", fmtFdFs, FlagFloat | Flag64, 0},
	11: {FloorLS, "floor.l.s", fmtFdFs, FlagFloat | Flag64, 0},
	12: {RoundWS, "round.w.s", fmtFdFs, FlagFloat, 0},
	13: {TruncWS, "trunc.w.s", fmtFdFs, FlagFloat, 0},
	14: {CeilWS, "ceil.w.s", fmtFdFs, FlagFloat, 0},
	15: {FloorWS, "floor.w.s", fmtFdFs, FlagFloat, 0},
	33: {CvtDS, "cvt.d.s", fmtFdFs, FlagFloat, 0},
	36: {CvtWS, "cvt.w.s", fmtFdFs, FlagFloat, 0},
	37: {CvtLS, "cvt.l.s", fmtFdFs, FlagFloat | Flag64, 0},
	48: {CFS, "c.f.s", fmtFsFt, FlagFloat, 0},
	49: {CUnS, "c.un.s", fmtFsFt, FlagFloat, 0},
	50: {CEqS, "c.eq.s", fmtFsFt, FlagFloat, 0},
	51: {CUeqS, "c.ueq.s", fmtFsFt, FlagFloat, 0},
	52: {COltS, "c.olt.s", fmtFsFt, FlagFloat, 0},
	53: {CUltS, "c.ult.s", fmtFsFt, FlagFloat, 0},
	54: {COleS, "c.ole.s", fmtFsFt, FlagFloat, 0},
	55: {CUleS, "c.ule.s", fmtFsFt, FlagFloat, 0},
	56: {CSfS, "c.sf.s", fmtFsFt, FlagFloat, 0},
	57: {CNgleS, "c.ngle.s", fmtFsFt, FlagFloat, 0},
	58: {CSeqS, "c.seq.s", fmtFsFt, FlagFloat, 0},
	59: {CNglS, "c.ngl.s", fmtFsFt, FlagFloat, 0},
	60: {CLtS, "c.lt.s", fmtFsFt, FlagFloat, 0},
	61: {CNgeS, "c.nge.s", fmtFsFt, FlagFloat, 0},
	62: {CLeS, "c.le.s", fmtFsFt, FlagFloat, 0},
	63: {CNgtS, "c.ngt.s", fmtFsFt, FlagFloat, 0},
}

var cop1DTable = [64]opcodeEntry{
	0:  {AddD, "add.d", fmtFdFsFt, FlagDouble, 0},
	1:  {SubD, "sub.d", fmtFdFsFt, FlagDouble, 0},
	2:  {MulD, "mul.d", fmtFdFsFt, FlagDouble, 0},
	3:  {DivD, "div.d", fmtFdFsFt, FlagDouble, 0},
	4:  {SqrtD, "sqrt.d", fmtFdFs, FlagDouble, 0},
	5:  {AbsD, "abs.d", fmtFdFs, FlagDouble, 0},
	6:  {MovD, "mov.d", fmtFdFs, FlagDouble, 0},
	7:  {NegD, "neg.d", fmtFdFs, FlagDouble, 0},
	8:  {RoundLD, "round.l.d", fmtFdFs, FlagDouble | Flag64, 0},
	9:  {TruncLD, "trunc.l.d", fmtFdFs, FlagDouble | Flag64, 0},
	10: {CeilLD, "ceil.l.d", fmtFdFs, FlagDouble | Flag64, 0},
	11: {FloorLD, "floor.l.d", fmtFdFs, FlagDouble | Flag64, 0},
	12: {RoundWD, "round.w.d", fmtFdFs, FlagDouble, 0},
	13: {TruncWD, "trunc.w.d", fmtFdFs, FlagDouble, 0},
	14: {CeilWD, "ceil.w.d", fmtFdFs, FlagDouble, 0},
	15: {FloorWD, "floor.w.d", fmtFdFs, FlagDouble, 0},
	32: {CvtSD, "cvt.s.d", fmtFdFs, FlagDouble, 0},
	36: {CvtWD, "cvt.w.d", fmtFdFs, FlagDouble, 0},
	37: {CvtLD, "cvt.l.d", fmtFdFs, FlagDouble | Flag64, 0},
	48: {CFD, "c.f.d", fmtFsFt, FlagDouble, 0},
	49: {CUnD, "c.un.d", fmtFsFt, FlagDouble, 0},
	50: {CEqD, "c.eq.d", fmtFsFt, FlagDouble, 0},
	51: {CUeqD, "c.ueq.d", fmtFsFt, FlagDouble, 0},
	52: {COltD, "c.olt.d", fmtFsFt, FlagDouble, 0},
	53: {CUltD, "c.ult.d", fmtFsFt, FlagDouble, 0},
	54: {COleD, "c.ole.d", fmtFsFt, FlagDouble, 0},
	55: {CUleD, "c.ule.d", fmtFsFt, FlagDouble, 0},
	56: {CSfD, "c.sf.d", fmtFsFt, FlagDouble, 0},
	57: {CNgleD, "c.ngle.d", fmtFsFt, FlagDouble, 0},
	58: {CSeqD, "c.seq.d", fmtFsFt, FlagDouble, 0},
	59: {CNglD, "c.ngl.d", fmtFsFt, FlagDouble, 0},
	60: {CLtD, "c.lt.d", fmtFsFt, FlagDouble, 0},
	61: {CNgeD, "c.nge.d", fmtFsFt, FlagDouble, 0},
	62: {CLeD, "c.le.d", fmtFsFt, FlagDouble, 0},
	63: {CNgtD, "c.ngt.d", fmtFsFt, FlagDouble, 0},
}

var cop1WTable = [64]opcodeEntry{
	32: {CvtSW, "cvt.s.w", fmtFdFs, FlagFloat, 0},
	33: {CvtDW, "cvt.d.w", fmtFdFs, FlagDouble, 0},
}

var cop1LTable = [64]opcodeEntry{
	32: {CvtSL, "cvt.s.l", fmtFdFs, FlagFloat | Flag64, 0},
	33: {CvtDL, "cvt.d.l", fmtFdFs, FlagDouble | Flag64, 0},
}

// COP1 fmt field values.
const (
	fpFmtS = 16
	fpFmtD = 17
	fpFmtW = 20
	fpFmtL = 21
)
