// Package dialect implements the per-target and per-compiler strategy that
// tailors decoding, prologue detection and pairing rules.
package dialect

import (
	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/mipsgodisasm/internal/options"
)

// Strategy bundles the dialect and compiler specific behavior consulted by
// the analyzers.
type Strategy struct {
	dialect  mips.Dialect
	compiler options.CompilerWorkaround
}

// New creates the strategy for the configured target and compiler pair.
func New(opts options.Disassembler) *Strategy {
	return &Strategy{
		dialect:  opts.Dialect,
		compiler: opts.Compiler,
	}
}

// Decode decodes one endian adjusted word with the dialect's tables.
func (s *Strategy) Decode(word uint32) mips.Instruction {
	return mips.Decode(word, s.dialect)
}

// Dialect returns the instruction set variant.
func (s *Strategy) Dialect() mips.Dialect {
	return s.dialect
}

// HasPrologue returns whether the function start looks compiler generated:
// a stack adjustment within the first few instructions. Functions without
// one are flagged as likely handwritten, advisory metadata only.
func (s *Strategy) HasPrologue(instrs []mips.Instruction) bool {
	if s.dialect == mips.DialectRSP {
		// RSP ucode has no stack; the heuristic does not apply
		return true
	}

	limit := min(len(instrs), 4)
	for i := range limit {
		ins := instrs[i]
		if (ins.Opcode == mips.Addiu || ins.Opcode == mips.Daddiu) &&
			ins.Rs() == mips.RegSp && ins.Rt() == mips.RegSp && ins.SImm() < 0 {
			return true
		}
	}
	return false
}

// InvalidateOnCall returns whether a function call clears tracked hi
// registers. The base rule is conservative; RSP ucode commonly keeps
// constants in registers across calls.
func (s *Strategy) InvalidateOnCall() bool {
	return s.dialect != mips.DialectRSP
}

// CollapseDivTrap detects the zero divisor trap expansion SN64 and PSYQ
// emit around div/divu and returns the indexes of the trap instructions to
// absorb into the div rendering. The first return value is the index of
// the div instruction itself.
//
// Two shapes occur in the wild, with the div either before the branch or
// in its delay slot:
//
//	div  $zero, $a, $b          bnez $b, .L
//	bnez $b, .L                 div  $zero, $a, $b
//	nop                         break 7
//	break 7               .L:
//
// .L:
func (s *Strategy) CollapseDivTrap(instrs []mips.Instruction, i int) (divIndex int, absorbed []int, ok bool) {
	if s.compiler != options.WorkaroundSN64 && s.compiler != options.WorkaroundPSYQ {
		return 0, nil, false
	}

	isDiv := func(ins mips.Instruction) bool {
		return ins.Opcode == mips.Div || ins.Opcode == mips.Divu
	}
	isBreak := func(ins mips.Instruction, code uint32) bool {
		return ins.Opcode == mips.Break && ins.Code() == code
	}
	isBnezOver := func(ins mips.Instruction, divisor mips.Reg, words int32) bool {
		return ins.Opcode == mips.Bne && ins.Rt() == mips.RegZero &&
			ins.Rs() == divisor && ins.SImm() == words
	}

	// div first, trap after
	if isDiv(instrs[i]) && i+3 < len(instrs) {
		divisor := instrs[i].Rt()
		if isBnezOver(instrs[i+1], divisor, 2) &&
			instrs[i+2].Raw == 0 && isBreak(instrs[i+3], 7) {
			return i, []int{i + 1, i + 2, i + 3}, true
		}
	}

	// div in the branch delay slot
	if i+2 < len(instrs) && instrs[i].Opcode == mips.Bne &&
		instrs[i].Rt() == mips.RegZero && instrs[i].SImm() == 2 &&
		isDiv(instrs[i+1]) && instrs[i+1].Rt() == instrs[i].Rs() &&
		isBreak(instrs[i+2], 7) {
		return i + 1, []int{i, i + 2}, true
	}

	return 0, nil, false
}
