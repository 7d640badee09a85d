package mips

import (
	"fmt"
	"strings"
)

// RenderOptions control how an instruction is turned into assembly text.
type RenderOptions struct {
	ABI    ABI
	Pseudo bool // render recognized idioms as pseudo-instructions
}

// Overrides replace numeric operands with symbolic expressions produced by
// the analysis passes. Empty strings keep the numeric form.
type Overrides struct {
	Imm    string // replaces the immediate, e.g. "%lo(D_80000010)"
	Target string // replaces a branch or jump target, e.g. "func_80001050"
}

const mnemonicPad = 12

func pad(mnemonic string) string {
	if len(mnemonic) >= mnemonicPad {
		return mnemonic + " "
	}
	return mnemonic + strings.Repeat(" ", mnemonicPad-len(mnemonic))
}

func immString(imm int32) string {
	if imm < 0 {
		return fmt.Sprintf("-0x%X", -imm)
	}
	return fmt.Sprintf("0x%X", imm)
}

// Render returns the assembly text of the instruction. Invalid instructions
// render as a raw .word directive, which re-assembles to the input by
// definition.
func Render(ins Instruction, opts RenderOptions, ov Overrides) string {
	if !ins.IsValid() {
		return fmt.Sprintf(".word 0x%08X", ins.Raw)
	}

	op := ins.Opcode
	if opts.Pseudo {
		if pseudo, ok := Pseudo(ins); ok {
			return renderPseudo(ins, pseudo, opts, ov)
		}
	}

	reg := func(r Reg) string { return RegName(r, opts.ABI) }
	imm := ov.Imm
	if imm == "" {
		imm = immString(ins.SImm())
	}
	target := ov.Target
	if target == "" {
		target = fmt.Sprintf("0x%X", ins.Target()<<2)
	}

	switch ins.format() {
	case fmtNone:
		return op.Name()
	case fmtRdRsRt:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %s", reg(ins.Rd()), reg(ins.Rs()), reg(ins.Rt()))
	case fmtRdRtSa:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %d", reg(ins.Rd()), reg(ins.Rt()), ins.Sa())
	case fmtRdRtRs:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %s", reg(ins.Rd()), reg(ins.Rt()), reg(ins.Rs()))
	case fmtRsRt:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rs()), reg(ins.Rt()))
	case fmtRs:
		return pad(op.Name()) + reg(ins.Rs())
	case fmtRd:
		return pad(op.Name()) + reg(ins.Rd())
	case fmtRdRs:
		// assemblers default the link register, only print it when unusual
		if ins.Rd() == RegRa {
			return pad(op.Name()) + reg(ins.Rs())
		}
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rd()), reg(ins.Rs()))
	case fmtRsRtBranch:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %s", reg(ins.Rs()), reg(ins.Rt()), branchText(ins, ov))
	case fmtRsBranch:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rs()), branchText(ins, ov))
	case fmtRsImmTrap:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rs()), imm)
	case fmtRtRsImm:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %s", reg(ins.Rt()), reg(ins.Rs()), imm)
	case fmtRtImm:
		if ov.Imm == "" {
			imm = fmt.Sprintf("0x%X", ins.Imm())
		}
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rt()), imm)
	case fmtRtOffsetBase:
		return pad(op.Name()) + fmt.Sprintf("%s, %s(%s)", reg(ins.Rt()), imm, reg(ins.Rs()))
	case fmtTarget:
		return pad(op.Name()) + target
	case fmtCode:
		if ins.Code() == 0 {
			return op.Name()
		}
		return pad(op.Name()) + fmt.Sprintf("%d", ins.Code())
	case fmtBranch:
		return pad(op.Name()) + branchText(ins, ov)
	case fmtRtRdSel:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rt()), copRegName(ins))
	case fmtRtFs:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rt()), FpRegName(ins.Fs()))
	case fmtFdFsFt:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %s", FpRegName(ins.Fd()), FpRegName(ins.Fs()), FpRegName(ins.Ft()))
	case fmtFdFs:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", FpRegName(ins.Fd()), FpRegName(ins.Fs()))
	case fmtFsFt:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", FpRegName(ins.Fs()), FpRegName(ins.Ft()))
	case fmtFtOffsetBase:
		return pad(op.Name()) + fmt.Sprintf("%s, %s(%s)", FpRegName(ins.Ft()), imm, reg(ins.Rs()))
	case fmtGTE:
		if ins.GTEFlags() == 0 {
			return op.Name()
		}
		return pad(op.Name()) + fmt.Sprintf("0x%X", ins.GTEFlags())
	case fmtVdVsVt:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %s%s",
			VecRegName(ins.Vd()), VecRegName(ins.Vs()), VecRegName(ins.Vt()), vecElem(ins.VElem()))
	case fmtVmoveDE:
		return pad(op.Name()) + fmt.Sprintf("%s%s, %s%s",
			VecRegName(ins.Vd()), vecElem(uint8(ins.Vs())&0x7), VecRegName(ins.Vt()), vecElem(ins.VElem()))
	case fmtVtElOffsetBase:
		return pad(op.Name()) + fmt.Sprintf("%s%s, %s(%s)",
			VecRegName(ins.Vt()), vecElem(ins.VMemElem()), immString(ins.VMemOffset()*int32(ins.AccessSize())), reg(ins.Rs()))
	case fmtRtVsEl:
		return pad(op.Name()) + fmt.Sprintf("%s, %s%s", reg(ins.Rt()), VecRegName(ins.Vs()), vecElem(ins.VMemElem()))
	case fmtRdRtExt:
		return pad(op.Name()) + fmt.Sprintf("%s, %s, %d, %d", reg(ins.Rt()), reg(ins.Rs()), ins.ExtPos(), extFieldSize(ins))
	case fmtRdRtOnly:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rd()), reg(ins.Rt()))
	case fmtRdRsOnly:
		return pad(op.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rd()), reg(ins.Rs()))
	default:
		return fmt.Sprintf(".word 0x%08X", ins.Raw)
	}
}

func renderPseudo(ins Instruction, pseudo Opcode, opts RenderOptions, ov Overrides) string {
	reg := func(r Reg) string { return RegName(r, opts.ABI) }

	switch pseudo {
	case Nop:
		return "nop"
	case Move:
		src := ins.Rs()
		if src == RegZero {
			src = ins.Rt()
		}
		return pad("move") + fmt.Sprintf("%s, %s", reg(ins.Rd()), reg(src))
	case Li:
		imm := ov.Imm
		if imm == "" {
			if ins.Opcode == Ori {
				imm = fmt.Sprintf("0x%X", ins.Imm())
			} else {
				imm = fmt.Sprintf("%d", ins.SImm())
			}
		}
		return pad("li") + fmt.Sprintf("%s, %s", reg(ins.Rt()), imm)
	case B:
		return pad("b") + branchText(ins, ov)
	case Bal:
		return pad("bal") + branchText(ins, ov)
	case Beqz, Bnez:
		return pad(pseudo.Name()) + fmt.Sprintf("%s, %s", reg(ins.Rs()), branchText(ins, ov))
	case Negu:
		return pad("negu") + fmt.Sprintf("%s, %s", reg(ins.Rd()), reg(ins.Rt()))
	default:
		return Render(ins, RenderOptions{ABI: opts.ABI}, ov)
	}
}

func branchText(ins Instruction, ov Overrides) string {
	if ov.Target != "" {
		return ov.Target
	}
	return immString(ins.SImm() << 2)
}

func copRegName(ins Instruction) string {
	switch ins.Opcode {
	case Mfc0, Dmfc0, Mtc0, Dmtc0:
		if ins.Dialect == DialectRSP {
			return RSPCop0RegName(ins.Rd())
		}
		return Cop0RegName(ins.Rd())
	case Mfc2, Mtc2:
		return GTEDataRegName(ins.Rd())
	case Cfc2, Ctc2:
		return GTECtlRegName(ins.Rd())
	default:
		return Cop0RegName(ins.Rd())
	}
}

func vecElem(e uint8) string {
	if e == 0 {
		return ""
	}
	return fmt.Sprintf("[%d]", e)
}

func extFieldSize(ins Instruction) uint8 {
	// ext encodes size-1, ins encodes pos+size-1 in the size field
	if ins.Opcode == Ins {
		return ins.ExtSize() - ins.ExtPos() + 1
	}
	return ins.ExtSize() + 1
}
