package mips

// Opcode identifies a decoded mnemonic. The enumeration is closed: every
// instruction the decoder can produce has exactly one constant here, with
// Invalid reserved for bit patterns outside all dialect tables.
type Opcode uint16

const (
	Invalid Opcode = iota

	// base integer set
	Sll
	Srl
	Sra
	Sllv
	Srlv
	Srav
	Jr
	Jalr
	Movz
	Movn
	Syscall
	Break
	Sync
	Mfhi
	Mthi
	Mflo
	Mtlo
	Dsllv
	Dsrlv
	Dsrav
	Mult
	Multu
	Div
	Divu
	Dmult
	Dmultu
	Ddiv
	Ddivu
	Add
	Addu
	Sub
	Subu
	And
	Or
	Xor
	Nor
	Slt
	Sltu
	Dadd
	Daddu
	Dsub
	Dsubu
	Tge
	Tgeu
	Tlt
	Tltu
	Teq
	Tne
	Dsll
	Dsrl
	Dsra
	Dsll32
	Dsrl32
	Dsra32

	Bltz
	Bgez
	Bltzl
	Bgezl
	Tgei
	Tgeiu
	Tlti
	Tltiu
	Teqi
	Tnei
	Bltzal
	Bgezal
	Bltzall
	Bgezall

	J
	Jal
	Beq
	Bne
	Blez
	Bgtz
	Addi
	Addiu
	Slti
	Sltiu
	Andi
	Ori
	Xori
	Lui
	Beql
	Bnel
	Blezl
	Bgtzl
	Daddi
	Daddiu
	Ldl
	Ldr
	Lb
	Lh
	Lwl
	Lw
	Lbu
	Lhu
	Lwr
	Lwu
	Sb
	Sh
	Swl
	Sw
	Sdl
	Sdr
	Swr
	Cache
	Ll
	Lwc1
	Lwc2
	Pref
	Lld
	Ldc1
	Ldc2
	Ld
	Sc
	Swc1
	Swc2
	Scd
	Sdc1
	Sdc2
	Sd

	// COP0
	Mfc0
	Dmfc0
	Mtc0
	Dmtc0
	Tlbr
	Tlbwi
	Tlbwr
	Tlbp
	Eret

	// COP1 moves and branches
	Mfc1
	Dmfc1
	Cfc1
	Mtc1
	Dmtc1
	Ctc1
	Bc1f
	Bc1t
	Bc1fl
	Bc1tl

	// COP1 arithmetic, single format
	AddS
	SubS
	MulS
	DivS
	SqrtS
	AbsS
	MovS
	NegS
	RoundLS
	TruncLS
	CeilLS
	FloorLS
	RoundWS
	TruncWS
	CeilWS
	FloorWS
	CvtDS
	CvtWS
	CvtLS
	CFS
	CUnS
	CEqS
	CUeqS
	COltS
	CUltS
	COleS
	CUleS
	CSfS
	CNgleS
	CSeqS
	CNglS
	CLtS
	CNgeS
	CLeS
	CNgtS

	// COP1 arithmetic, double format
	AddD
	SubD
	MulD
	DivD
	SqrtD
	AbsD
	MovD
	NegD
	RoundLD
	TruncLD
	CeilLD
	FloorLD
	RoundWD
	TruncWD
	CeilWD
	FloorWD
	CvtSD
	CvtWD
	CvtLD
	CFD
	CUnD
	CEqD
	CUeqD
	COltD
	CUltD
	COleD
	CUleD
	CSfD
	CNgleD
	CSeqD
	CNglD
	CLtD
	CNgeD
	CLeD
	CNgtD

	// COP1 conversions from fixed point
	CvtSW
	CvtDW
	CvtSL
	CvtDL

	// RSP vector unit
	Mfc2
	Cfc2
	Mtc2
	Ctc2
	Vmulf
	Vmulu
	Vrndp
	Vmulq
	Vmudl
	Vmudm
	Vmudn
	Vmudh
	Vmacf
	Vmacu
	Vrndn
	Vmacq
	Vmadl
	Vmadm
	Vmadn
	Vmadh
	Vadd
	Vsub
	Vabs
	Vaddc
	Vsubc
	Vsar
	Vlt
	Veq
	Vne
	Vge
	Vcl
	Vch
	Vcr
	Vmrg
	Vand
	Vnand
	Vor
	Vnor
	Vxor
	Vnxor
	Vrcp
	Vrcpl
	Vrcph
	Vmov
	Vrsq
	Vrsql
	Vrsqh
	Vnop
	Lbv
	Lsv
	Llv
	Ldv
	Lqv
	Lrv
	Lpv
	Luv
	Lhv
	Lfv
	Ltv
	Sbv
	Ssv
	Slv
	Sdv
	Sqv
	Srv
	Spv
	Suv
	Shv
	Sfv
	Swv
	Stv

	// PS1 GTE
	Rtps
	Nclip
	Op
	Dpcs
	Intpl
	Mvmva
	Ncds
	Cdp
	Ncdt
	Nccs
	Cc
	Ncs
	Nct
	Sqr
	Dcpl
	Dpct
	Avsz3
	Avsz4
	Rtpt
	Gpf
	Gpl
	Ncct

	// ALLEGREX
	Clz
	Clo
	Madd
	Maddu
	Msub
	Msubu
	Max
	Min
	Rotr
	Rotrv
	Ext
	Ins
	Seb
	Seh
	Wsbh
	Bitrev

	// EE
	Lq
	Sq
	Mfhi1
	Mthi1
	Mflo1
	Mtlo1
	Mult1
	Multu1
	Div1
	Divu1
	Plzcw
	Paddw
	Psubw
	Paddb
	Psubb
	Paddh
	Psubh
	Pand
	Por
	Pxor
	Pnor

	// alternate renderings selected at emit time, never produced by Decode
	Nop
	Move
	Li
	B
	Bal
	Beqz
	Bnez
	Negu

	opcodeCount
)

// operandFormat describes which raw word fields an opcode renders and encodes.
type operandFormat uint8

const (
	fmtNone operandFormat = iota
	fmtRdRsRt
	fmtRdRtSa
	fmtRdRtRs
	fmtRsRt
	fmtRs
	fmtRd
	fmtRdRs
	fmtRsRtBranch
	fmtRsBranch
	fmtRsImmTrap
	fmtRtRsImm
	fmtRtImm
	fmtRtOffsetBase
	fmtTarget
	fmtCode
	fmtBranch
	fmtRtRdSel // coprocessor moves: rt plus cop register in the rd slot
	fmtRtFs
	fmtFdFsFt
	fmtFdFs
	fmtFsFt
	fmtFtOffsetBase
	fmtGTE     // function field only, operands are implicit in the command word
	fmtVdVsVt  // RSP computational: vd, vs, vt[e]
	fmtVmoveDE // vmov/vrcp group: vd[de], vt[e]
	fmtVtElOffsetBase
	fmtRtVsEl // mtc2/mfc2 rt, vs[e]
	fmtRdRtExt // ext/ins: rt, rs, pos, size
	fmtRdRtOnly // seb/seh/wsbh/bitrev: rd, rt
	fmtRdRsOnly // clz/clo: rd, rs
)

// Flags classify opcode behavior. Classification drives the analyzers, not
// the renderer.
type Flags uint32

const (
	FlagBranch Flags = 1 << iota
	FlagBranchLikely
	FlagJump
	FlagWritesRa // link instructions
	FlagLoad
	FlagStore
	FlagFloat
	FlagDouble
	FlagUnsigned
	FlagHiImm        // lui: upper half of a hi/lo pair
	FlagLoImmSigned  // sign extended low half users: addiu, loads, stores
	FlagLoImmZeroExt // zero extended low half users: ori
	FlagTrap
	FlagGpRelCandidate
	Flag64 // 64 bit operation, invalid on 32 bit dialects
)

type opcodeEntry struct {
	op     Opcode
	name   string
	format operandFormat
	flags  Flags
	access uint8 // memory access width in bytes, 0 for none
}

var opcodeNames [opcodeCount]string

// Name returns the assembly mnemonic of the opcode.
func (op Opcode) Name() string {
	if op >= opcodeCount {
		return ""
	}
	return opcodeNames[op]
}

// HasDelaySlot returns whether the instruction executes its following word
// as a delay slot.
func (f Flags) HasDelaySlot() bool {
	return f&(FlagBranch|FlagJump) != 0
}
