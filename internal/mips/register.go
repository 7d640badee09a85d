package mips

// Register naming is a stateless lookup; the ABI is runtime configuration.

var gprNamesNumeric = [32]string{
	"$0", "$1", "$2", "$3", "$4", "$5", "$6", "$7",
	"$8", "$9", "$10", "$11", "$12", "$13", "$14", "$15",
	"$16", "$17", "$18", "$19", "$20", "$21", "$22", "$23",
	"$24", "$25", "$26", "$27", "$28", "$29", "$30", "$31",
}

var gprNamesO32 = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// n32/n64 rename $t4..$t7 to $a4..$a7.
var gprNamesN32 = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$a4", "$a5", "$a6", "$a7", "$t0", "$t1", "$t2", "$t3",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// RegName returns the general purpose register name under the given ABI.
func RegName(reg Reg, abi ABI) string {
	r := reg & 0x1f
	switch abi {
	case ABINumeric:
		return gprNamesNumeric[r]
	case ABIN32, ABIN64:
		return gprNamesN32[r]
	default:
		return gprNamesO32[r]
	}
}

var cop0Names = [32]string{
	"Index", "Random", "EntryLo0", "EntryLo1", "Context", "PageMask",
	"Wired", "Reserved07", "BadVaddr", "Count", "EntryHi", "Compare",
	"Status", "Cause", "EPC", "PRevID", "Config", "LLAddr", "WatchLo",
	"WatchHi", "XContext", "Reserved21", "Reserved22", "Reserved23",
	"Reserved24", "Reserved25", "PErr", "CacheErr", "TagLo", "TagHi",
	"ErrorEPC", "Reserved31",
}

// Cop0RegName returns the VR4300 name of a COP0 register.
func Cop0RegName(reg Reg) string {
	return cop0Names[reg&0x1f]
}

// rspCop0Names are the RSP's memory interface registers.
var rspCop0Names = [32]string{
	"SP_MEM_ADDR", "SP_DRAM_ADDR", "SP_RD_LEN", "SP_WR_LEN",
	"SP_STATUS", "SP_DMA_FULL", "SP_DMA_BUSY", "SP_SEMAPHORE",
	"DPC_START", "DPC_END", "DPC_CURRENT", "DPC_STATUS",
	"DPC_CLOCK", "DPC_BUFBUSY", "DPC_PIPEBUSY", "DPC_TMEM",
	"$16", "$17", "$18", "$19", "$20", "$21", "$22", "$23",
	"$24", "$25", "$26", "$27", "$28", "$29", "$30", "$31",
}

// RSPCop0RegName returns the RSP name of a COP0 register.
func RSPCop0RegName(reg Reg) string {
	return rspCop0Names[reg&0x1f]
}

// FpRegName returns the COP1 register name; float registers keep numeric
// names under all ABIs.
func FpRegName(reg Reg) string {
	return fpNames[reg&0x1f]
}

var fpNames = [32]string{
	"$f0", "$f1", "$f2", "$f3", "$f4", "$f5", "$f6", "$f7",
	"$f8", "$f9", "$f10", "$f11", "$f12", "$f13", "$f14", "$f15",
	"$f16", "$f17", "$f18", "$f19", "$f20", "$f21", "$f22", "$f23",
	"$f24", "$f25", "$f26", "$f27", "$f28", "$f29", "$f30", "$f31",
}

// VecRegName returns the RSP vector register name.
func VecRegName(reg Reg) string {
	return vecNames[reg&0x1f]
}

var vecNames = [32]string{
	"$v0", "$v1", "$v2", "$v3", "$v4", "$v5", "$v6", "$v7",
	"$v8", "$v9", "$v10", "$v11", "$v12", "$v13", "$v14", "$v15",
	"$v16", "$v17", "$v18", "$v19", "$v20", "$v21", "$v22", "$v23",
	"$v24", "$v25", "$v26", "$v27", "$v28", "$v29", "$v30", "$v31",
}

var gteDataNames = [32]string{
	"vxy0", "vz0", "vxy1", "vz1", "vxy2", "vz2", "rgb", "otz",
	"ir0", "ir1", "ir2", "ir3", "sxy0", "sxy1", "sxy2", "sxyp",
	"sz0", "sz1", "sz2", "sz3", "rgb0", "rgb1", "rgb2", "res1",
	"mac0", "mac1", "mac2", "mac3", "irgb", "orgb", "lzcs", "lzcr",
}

var gteCtlNames = [32]string{
	"r11r12", "r13r21", "r22r23", "r31r32", "r33", "trx", "try", "trz",
	"l11l12", "l13l21", "l22l23", "l31l32", "l33", "rbk", "gbk", "bbk",
	"lr1lr2", "lr3lg1", "lg2lg3", "lb1lb2", "lb3", "rfc", "gfc", "bfc",
	"ofx", "ofy", "h", "dqa", "dqb", "zsf3", "zsf4", "flag",
}

// GTEDataRegName returns the GTE data register name used by mfc2/mtc2.
func GTEDataRegName(reg Reg) string {
	return gteDataNames[reg&0x1f]
}

// GTECtlRegName returns the GTE control register name used by cfc2/ctc2.
func GTECtlRegName(reg Reg) string {
	return gteCtlNames[reg&0x1f]
}
