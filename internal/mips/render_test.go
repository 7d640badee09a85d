package mips

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRender(t *testing.T) {
	opts := RenderOptions{ABI: ABIO32, Pseudo: true}

	tests := []struct {
		name     string
		word     uint32
		expected string
	}{
		{"nop", 0x00000000, "nop"},
		{"jr ra", 0x03E00008, "jr          $ra"},
		{"lui", 0x3C1C8000, "lui         $gp, 0x8000"},
		{"addiu", 0x279C0010, "addiu       $gp, $gp, 0x10"},
		{"li", 0x24020001, "li          $v0, 1"},
		{"lw", 0x8FBF0014, "lw          $ra, 0x14($sp)"},
		{"negative offset", 0x27BDFFE8, "addiu       $sp, $sp, -0x18"},
		{"add", 0x00851020, "add         $v0, $a0, $a1"},
		{"move", 0x00801025, "move        $v0, $a0"},
		{"add.s", 0x46041000, "add.s       $f0, $f2, $f4"},
		{"break", 0x0000000D, "break"},
		{"break code", 0x000001CD, "break       7"},
		{"invalid", 0x00000015, ".word 0x00000015"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.word, DialectR4300)
			assert.Equal(t, tt.expected, Render(ins, opts, Overrides{}))
		})
	}
}

func TestRenderOverrides(t *testing.T) {
	opts := RenderOptions{ABI: ABIO32, Pseudo: true}

	lui := Decode(0x3C1C8000, DialectR4300)
	assert.Equal(t, "lui         $gp, %hi(D_80000010)",
		Render(lui, opts, Overrides{Imm: "%hi(D_80000010)"}))

	addiu := Decode(0x279C0010, DialectR4300)
	assert.Equal(t, "addiu       $gp, $gp, %lo(D_80000010)",
		Render(addiu, opts, Overrides{Imm: "%lo(D_80000010)"}))

	jal := Decode(0x0C001234, DialectR4300)
	assert.Equal(t, "jal         func_800048D0",
		Render(jal, opts, Overrides{Target: "func_800048D0"}))

	beq := Decode(0x10430003, DialectR4300)
	assert.Equal(t, "beq         $v0, $v1, .L80000010",
		Render(beq, opts, Overrides{Target: ".L80000010"}))
}

func TestRenderPseudoDisabled(t *testing.T) {
	opts := RenderOptions{ABI: ABIO32}

	tests := []struct {
		word     uint32
		expected string
	}{
		{0x00000000, "sll         $zero, $zero, 0"},
		{0x24020001, "addiu       $v0, $zero, 0x1"},
		{0x00801025, "or          $v0, $a0, $zero"},
	}

	for _, tt := range tests {
		ins := Decode(tt.word, DialectR4300)
		assert.Equal(t, tt.expected, Render(ins, opts, Overrides{}))
	}
}

func TestRenderABI(t *testing.T) {
	ins := Decode(0x01095021, DialectR4300) // addu $t2, $t0, $t1
	assert.Equal(t, "addu        $t2, $t0, $t1",
		Render(ins, RenderOptions{ABI: ABIO32}, Overrides{}))
	assert.Equal(t, "addu        $10, $8, $9",
		Render(ins, RenderOptions{ABI: ABINumeric}, Overrides{}))
	assert.Equal(t, "addu        $a6, $a4, $a5",
		Render(ins, RenderOptions{ABI: ABIN64}, Overrides{}))
}

func TestPseudo(t *testing.T) {
	tests := []struct {
		name   string
		word   uint32
		pseudo Opcode
		ok     bool
	}{
		{"nop", 0x00000000, Nop, true},
		{"move from or", 0x00801025, Move, true},
		{"li from addiu", 0x24020001, Li, true},
		{"li from ori", 0x34020080, Li, true},
		{"b from beq", 0x10000003, B, true},
		{"beqz", 0x10400003, Beqz, true},
		{"bnez", 0x14400003, Bnez, true},
		{"bal", 0x04110001, Bal, true},
		{"negu", 0x00051023, Negu, true},
		{"plain or", 0x00851025, Invalid, false},
		{"plain sll", 0x00021080, Invalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.word, DialectR4300)
			pseudo, ok := Pseudo(ins)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.pseudo, pseudo)
			}
		})
	}
}

func TestRegNames(t *testing.T) {
	assert.Equal(t, "$zero", RegName(0, ABIO32))
	assert.Equal(t, "$0", RegName(0, ABINumeric))
	assert.Equal(t, "$t4", RegName(12, ABIO32))
	assert.Equal(t, "$t0", RegName(12, ABIN32))
	assert.Equal(t, "$ra", RegName(31, ABIN64))
	assert.Equal(t, "Status", Cop0RegName(12))
	assert.Equal(t, "SP_STATUS", RSPCop0RegName(4))
	assert.Equal(t, "$f12", FpRegName(12))
	assert.Equal(t, "sxy2", GTEDataRegName(14))
	assert.Equal(t, "flag", GTECtlRegName(31))
}
