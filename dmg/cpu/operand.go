package cpu

// operand names one of the 8 slots the LD and ALU instruction blocks can
// address: the registers B,C,D,E,H,L,A plus the byte at (HL).
type operand uint8

const (
	opB operand = iota
	opC
	opD
	opE
	opH
	opL
	opHLPtr
	opA
)

// srcOperand extracts the source slot from an opcode in the LD/ALU blocks.
func srcOperand(op uint8) operand {
	return operand(op & 0x07)
}

// dstOperand extracts the destination slot from an opcode in the LD block.
func dstOperand(op uint8) operand {
	return operand((op >> 3) & 0x07)
}

// isMemory reports whether the slot is the (HL) indirection, which costs an
// extra machine cycle to access.
func (o operand) isMemory() bool {
	return o == opHLPtr
}

// load reads the slot's current value.
func (c *CPU) load(o operand) uint8 {
	switch o {
	case opB:
		return c.b
	case opC:
		return c.c
	case opD:
		return c.d
	case opE:
		return c.e
	case opH:
		return c.h
	case opL:
		return c.l
	case opHLPtr:
		return c.readByte(c.getHL())
	default:
		return c.a
	}
}

// store writes the slot.
func (c *CPU) store(o operand, value uint8) {
	switch o {
	case opB:
		c.b = value
	case opC:
		c.c = value
	case opD:
		c.d = value
	case opE:
		c.e = value
	case opH:
		c.h = value
	case opL:
		c.l = value
	case opHLPtr:
		c.writeByte(c.getHL(), value)
	default:
		c.a = value
	}
}
