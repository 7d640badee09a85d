package mips

// Pseudo-instruction recognition. A decoded Instruction always keeps its
// raw form; the pseudo opcode is an alternate rendering the formatter
// selects at emit time when enabled.

var pseudoNames = map[Opcode]string{
	Nop:  "nop",
	Move: "move",
	Li:   "li",
	B:    "b",
	Bal:  "bal",
	Beqz: "beqz",
	Bnez: "bnez",
	Negu: "negu",
}

func init() {
	for op, name := range pseudoNames {
		opcodeNames[op] = name
	}
}

// Pseudo returns the alternate rendering of an instruction and whether one
// applies.
func Pseudo(ins Instruction) (Opcode, bool) {
	switch ins.Opcode {
	case Sll:
		if ins.Raw == 0 {
			return Nop, true
		}
	case Or, Addu, Daddu:
		if ins.Rt() == RegZero {
			return Move, true
		}
		if ins.Rs() == RegZero && ins.Opcode == Or {
			return Move, true
		}
	case Addiu, Ori:
		if ins.Rs() == RegZero {
			return Li, true
		}
	case Beq:
		if ins.Rs() == RegZero && ins.Rt() == RegZero {
			return B, true
		}
		if ins.Rt() == RegZero {
			return Beqz, true
		}
	case Bne:
		if ins.Rt() == RegZero {
			return Bnez, true
		}
	case Bgezal:
		if ins.Rs() == RegZero {
			return Bal, true
		}
	case Subu, Dsubu:
		if ins.Rs() == RegZero {
			return Negu, true
		}
	}
	return Invalid, false
}
