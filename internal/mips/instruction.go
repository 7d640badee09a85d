package mips

// Instruction is one decoded machine word. It is immutable; symbolic
// rewriting happens in per-function overlays, never here.
type Instruction struct {
	Raw     uint32
	Opcode  Opcode
	Dialect Dialect
}

// Reg is a general purpose register number.
type Reg uint8

// Named registers used by the analyzers.
const (
	RegZero Reg = 0
	RegAt   Reg = 1
	RegSp   Reg = 29
	RegGp   Reg = 28
	RegRa   Reg = 31
)

func (ins Instruction) Rs() Reg     { return Reg(ins.Raw >> 21 & 0x1f) }
func (ins Instruction) Rt() Reg     { return Reg(ins.Raw >> 16 & 0x1f) }
func (ins Instruction) Rd() Reg     { return Reg(ins.Raw >> 11 & 0x1f) }
func (ins Instruction) Sa() uint8   { return uint8(ins.Raw >> 6 & 0x1f) }
func (ins Instruction) Funct() uint8 { return uint8(ins.Raw & 0x3f) }

// Imm returns the 16 bit immediate field unmodified.
func (ins Instruction) Imm() uint16 { return uint16(ins.Raw) }

// SImm returns the sign extended immediate.
func (ins Instruction) SImm() int32 { return int32(int16(ins.Raw)) }

// Target returns the 26 bit jump target field.
func (ins Instruction) Target() uint32 { return ins.Raw & 0x03ffffff }

// JumpTarget computes the absolute target address of a j/jal at the given vram.
func (ins Instruction) JumpTarget(vram uint32) uint32 {
	return (vram+4)&0xf0000000 | ins.Target()<<2
}

// BranchTarget computes the absolute target address of a branch at the given vram.
func (ins Instruction) BranchTarget(vram uint32) uint32 {
	return vram + 4 + uint32(ins.SImm())<<2
}

// Code returns the 20 bit code field of break/syscall.
func (ins Instruction) Code() uint32 { return ins.Raw >> 6 & 0xfffff }

// FPU register fields.
func (ins Instruction) Ft() Reg { return Reg(ins.Raw >> 16 & 0x1f) }
func (ins Instruction) Fs() Reg { return Reg(ins.Raw >> 11 & 0x1f) }
func (ins Instruction) Fd() Reg { return Reg(ins.Raw >> 6 & 0x1f) }

// RSP vector fields.
func (ins Instruction) VElem() uint8   { return uint8(ins.Raw >> 21 & 0xf) }
func (ins Instruction) Vt() Reg        { return Reg(ins.Raw >> 16 & 0x1f) }
func (ins Instruction) Vs() Reg        { return Reg(ins.Raw >> 11 & 0x1f) }
func (ins Instruction) Vd() Reg        { return Reg(ins.Raw >> 6 & 0x1f) }
func (ins Instruction) VMemElem() uint8 { return uint8(ins.Raw >> 7 & 0xf) }

// VMemOffset returns the sign extended 7 bit offset of an RSP vector load/store.
func (ins Instruction) VMemOffset() int32 {
	off := int32(ins.Raw & 0x7f)
	if off >= 0x40 {
		off -= 0x80
	}
	return off
}

// Allegrex ext/ins fields.
func (ins Instruction) ExtPos() uint8  { return ins.Sa() }
func (ins Instruction) ExtSize() uint8 { return uint8(ins.Rd()) }

// GTEFlags returns the variable middle bits of a GTE command word.
func (ins Instruction) GTEFlags() uint32 { return ins.Raw >> 6 & 0x7ffff }

func (ins Instruction) entry() *opcodeEntry {
	return entryOf(ins.Opcode, ins.Dialect)
}

// Flags returns the classification flags of the instruction.
func (ins Instruction) Flags() Flags {
	if e := ins.entry(); e != nil {
		return e.flags
	}
	return 0
}

// format returns the operand format identifier, used by renderer and encoder.
func (ins Instruction) format() operandFormat {
	if e := ins.entry(); e != nil {
		return e.format
	}
	return fmtNone
}

// IsValid returns whether the word decoded to a known instruction.
func (ins Instruction) IsValid() bool { return ins.Opcode != Invalid }

// IsBranch returns whether the instruction is a relative branch.
func (ins Instruction) IsBranch() bool { return ins.Flags()&FlagBranch != 0 }

// IsJump returns whether the instruction is an absolute jump.
func (ins Instruction) IsJump() bool { return ins.Flags()&FlagJump != 0 }

// HasDelaySlot returns whether the following word executes in a delay slot.
func (ins Instruction) HasDelaySlot() bool { return ins.Flags().HasDelaySlot() }

// IsLoad returns whether the instruction reads memory.
func (ins Instruction) IsLoad() bool { return ins.Flags()&FlagLoad != 0 }

// IsStore returns whether the instruction writes memory.
func (ins Instruction) IsStore() bool { return ins.Flags()&FlagStore != 0 }

// IsFunctionCall returns whether the instruction is a call that links $ra.
func (ins Instruction) IsFunctionCall() bool {
	return ins.Flags()&FlagWritesRa != 0
}

// IsFunctionReturn returns whether the instruction is a jr $ra.
func (ins Instruction) IsFunctionReturn() bool {
	return ins.Opcode == Jr && ins.Rs() == RegRa
}

// AccessSize returns the memory access width in bytes, 0 for non-memory ops.
func (ins Instruction) AccessSize() uint8 {
	if e := ins.entry(); e != nil {
		return e.access
	}
	return 0
}

// AccessUnsigned returns whether a load zero extends.
func (ins Instruction) AccessUnsigned() bool {
	return ins.Flags()&FlagUnsigned != 0
}

// DestReg returns the general purpose register written by the instruction
// and whether it writes one at all. Used for hi/lo tracking invalidation.
func (ins Instruction) DestReg() (Reg, bool) {
	switch ins.format() {
	case fmtRdRsRt, fmtRdRtSa, fmtRdRtRs, fmtRd, fmtRdRs, fmtRdRsOnly, fmtRdRtOnly:
		return ins.Rd(), true
	case fmtRtRsImm, fmtRtImm:
		return ins.Rt(), true
	case fmtRtOffsetBase:
		if ins.IsLoad() {
			return ins.Rt(), true
		}
		return 0, false
	case fmtRtRdSel, fmtRtFs, fmtRtVsEl:
		switch ins.Opcode {
		case Mfc0, Dmfc0, Mfc1, Dmfc1, Cfc1, Cfc2, Mfc2:
			return ins.Rt(), true
		}
		return 0, false
	case fmtRdRtExt:
		return ins.Rt(), true
	default:
		if ins.Flags()&FlagWritesRa != 0 {
			if ins.Opcode == Jalr {
				return ins.Rd(), true
			}
			return RegRa, true
		}
		return 0, false
	}
}
