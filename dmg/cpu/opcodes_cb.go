package cpu

// executeCB runs the 256-entry CB-prefixed sub-table: rotates, shifts, swap
// and the BIT/RES/SET groups. The sub-opcode encodes the operand slot in
// its low 3 bits and, for the bit groups, the bit index in bits 3-5.
func (c *CPU) executeCB(sub uint8) (uint16, int) {
	o := srcOperand(sub)

	switch {
	case sub <= 0x3F:
		switch sub & 0xF8 {
		case 0x00:
			c.rlc(o)
		case 0x08:
			c.rrc(o)
		case 0x10:
			c.rl(o)
		case 0x18:
			c.rr(o)
		case 0x20:
			c.sla(o)
		case 0x28:
			c.sra(o)
		case 0x30:
			c.swap(o)
		case 0x38:
			c.srl(o)
		}
	case sub <= 0x7F: // BIT n
		c.testBit((sub>>3)&0x07, o)
	case sub <= 0xBF: // RES n
		c.store(o, c.load(o)&^(1<<((sub>>3)&0x07)))
	default: // SET n
		c.store(o, c.load(o)|1<<((sub>>3)&0x07))
	}

	if o.isMemory() {
		return 2, 4
	}
	return 2, 2
}
