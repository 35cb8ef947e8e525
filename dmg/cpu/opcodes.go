package cpu

// execute decodes the opcode and runs it, returning the bytes the
// instruction occupies and the machine cycles it took. Instructions that
// change PC themselves (jumps, calls, returns) report zero bytes so that
// Step leaves the new PC untouched.
func (c *CPU) execute(op uint8) (uint16, int) {
	if op >= 0x40 && op <= 0x7F {
		return c.executeLoad(op)
	}
	if op >= 0x80 && op <= 0xBF {
		return c.executeALU(op)
	}

	switch op {
	case 0x00: // NOP
		return 1, 1
	case 0x01: // LD BC,d16
		c.setBC(c.immediateWord())
		return 3, 3
	case 0x02: // LD (BC),A
		c.writeByte(c.getBC(), c.a)
		return 1, 2
	case 0x03: // INC BC
		c.setBC(c.getBC() + 1)
		return 1, 2
	case 0x04:
		c.inc8(opB)
		return 1, 1
	case 0x05:
		c.dec8(opB)
		return 1, 1
	case 0x06: // LD B,d8
		c.b = c.immediate()
		return 2, 2
	case 0x07: // RLCA
		v := c.a
		c.a = v<<1 | v>>7
		c.clearFlags()
		c.setFlagToCondition(carryFlag, v&0x80 != 0)
		return 1, 1
	case 0x08: // LD (a16),SP
		c.writeWord(c.immediateWord(), c.sp)
		return 3, 5
	case 0x09: // ADD HL,BC
		c.addToHL(c.getBC())
		return 1, 2
	case 0x0A: // LD A,(BC)
		c.a = c.readByte(c.getBC())
		return 1, 2
	case 0x0B: // DEC BC
		c.setBC(c.getBC() - 1)
		return 1, 2
	case 0x0C:
		c.inc8(opC)
		return 1, 1
	case 0x0D:
		c.dec8(opC)
		return 1, 1
	case 0x0E: // LD C,d8
		c.c = c.immediate()
		return 2, 2
	case 0x0F: // RRCA
		v := c.a
		c.a = v>>1 | v<<7
		c.clearFlags()
		c.setFlagToCondition(carryFlag, v&0x01 != 0)
		return 1, 1

	case 0x10: // STOP
		c.fault = &Exit{Reason: ExitStop, PC: c.pc}
		return 0, 1
	case 0x11: // LD DE,d16
		c.setDE(c.immediateWord())
		return 3, 3
	case 0x12: // LD (DE),A
		c.writeByte(c.getDE(), c.a)
		return 1, 2
	case 0x13: // INC DE
		c.setDE(c.getDE() + 1)
		return 1, 2
	case 0x14:
		c.inc8(opD)
		return 1, 1
	case 0x15:
		c.dec8(opD)
		return 1, 1
	case 0x16: // LD D,d8
		c.d = c.immediate()
		return 2, 2
	case 0x17: // RLA
		c.rl(opA)
		c.resetFlag(zeroFlag)
		return 1, 1
	case 0x18: // JR r8
		return c.jr(true)
	case 0x19: // ADD HL,DE
		c.addToHL(c.getDE())
		return 1, 2
	case 0x1A: // LD A,(DE)
		c.a = c.readByte(c.getDE())
		return 1, 2
	case 0x1B: // DEC DE
		c.setDE(c.getDE() - 1)
		return 1, 2
	case 0x1C:
		c.inc8(opE)
		return 1, 1
	case 0x1D:
		c.dec8(opE)
		return 1, 1
	case 0x1E: // LD E,d8
		c.e = c.immediate()
		return 2, 2
	case 0x1F: // RRA
		v := c.a
		c.a = v >> 1
		c.clearFlags()
		c.setFlagToCondition(carryFlag, v&0x01 != 0)
		return 1, 1

	case 0x20: // JR NZ,r8
		return c.jr(!c.isSetFlag(zeroFlag))
	case 0x21: // LD HL,d16
		c.setHL(c.immediateWord())
		return 3, 3
	case 0x22: // LD (HL+),A
		c.writeByte(c.getHL(), c.a)
		c.setHL(c.getHL() + 1)
		return 1, 2
	case 0x23: // INC HL
		c.setHL(c.getHL() + 1)
		return 1, 2
	case 0x24:
		c.inc8(opH)
		return 1, 1
	case 0x25:
		c.dec8(opH)
		return 1, 1
	case 0x26: // LD H,d8
		c.h = c.immediate()
		return 2, 2
	case 0x28: // JR Z,r8
		return c.jr(c.isSetFlag(zeroFlag))
	case 0x29: // ADD HL,HL
		c.addToHL(c.getHL())
		return 1, 2
	case 0x2A: // LD A,(HL+)
		c.a = c.readByte(c.getHL())
		c.setHL(c.getHL() + 1)
		return 1, 2
	case 0x2B: // DEC HL
		c.setHL(c.getHL() - 1)
		return 1, 2
	case 0x2C:
		c.inc8(opL)
		return 1, 1
	case 0x2D:
		c.dec8(opL)
		return 1, 1
	case 0x2E: // LD L,d8
		c.l = c.immediate()
		return 2, 2
	case 0x2F: // CPL
		c.a = ^c.a
		c.setFlag(subFlag)
		c.setFlag(halfCarryFlag)
		return 1, 1

	case 0x30: // JR NC,r8
		return c.jr(!c.isSetFlag(carryFlag))
	case 0x31: // LD SP,d16
		c.sp = c.immediateWord()
		return 3, 3
	case 0x32: // LD (HL-),A
		c.writeByte(c.getHL(), c.a)
		c.setHL(c.getHL() - 1)
		return 1, 2
	case 0x33: // INC SP
		c.sp++
		return 1, 2
	case 0x34: // INC (HL)
		c.inc8(opHLPtr)
		return 1, 3
	case 0x35: // DEC (HL)
		c.dec8(opHLPtr)
		return 1, 3
	case 0x36: // LD (HL),d8
		c.writeByte(c.getHL(), c.immediate())
		return 2, 3
	case 0x37: // SCF
		c.resetFlag(subFlag)
		c.resetFlag(halfCarryFlag)
		c.setFlag(carryFlag)
		return 1, 1
	case 0x38: // JR C,r8
		return c.jr(c.isSetFlag(carryFlag))
	case 0x39: // ADD HL,SP
		c.addToHL(c.sp)
		return 1, 2
	case 0x3A: // LD A,(HL-)
		c.a = c.readByte(c.getHL())
		c.setHL(c.getHL() - 1)
		return 1, 2
	case 0x3B: // DEC SP
		c.sp--
		return 1, 2
	case 0x3C:
		c.inc8(opA)
		return 1, 1
	case 0x3D:
		c.dec8(opA)
		return 1, 1
	case 0x3E: // LD A,d8
		c.a = c.immediate()
		return 2, 2
	case 0x3F: // CCF
		c.resetFlag(subFlag)
		c.resetFlag(halfCarryFlag)
		c.setFlagToCondition(carryFlag, !c.isSetFlag(carryFlag))
		return 1, 1

	case 0xC0: // RET NZ
		return c.retIf(!c.isSetFlag(zeroFlag))
	case 0xC1: // POP BC
		c.setBC(c.popStack())
		return 1, 3
	case 0xC2: // JP NZ,a16
		return c.jp(!c.isSetFlag(zeroFlag))
	case 0xC3: // JP a16
		return c.jp(true)
	case 0xC4: // CALL NZ,a16
		return c.call(!c.isSetFlag(zeroFlag))
	case 0xC5: // PUSH BC
		c.pushStack(c.getBC())
		return 1, 4
	case 0xC6: // ADD A,d8
		c.addToA(c.immediate())
		return 2, 2
	case 0xC7:
		return c.rst(0x00)
	case 0xC8: // RET Z
		return c.retIf(c.isSetFlag(zeroFlag))
	case 0xC9: // RET
		c.pc = c.popStack()
		return 0, 4
	case 0xCA: // JP Z,a16
		return c.jp(c.isSetFlag(zeroFlag))
	case 0xCB:
		return c.executeCB(c.immediate())
	case 0xCC: // CALL Z,a16
		return c.call(c.isSetFlag(zeroFlag))
	case 0xCD: // CALL a16
		return c.call(true)
	case 0xCE: // ADC A,d8
		c.adcToA(c.immediate())
		return 2, 2
	case 0xCF:
		return c.rst(0x08)

	case 0xD0: // RET NC
		return c.retIf(!c.isSetFlag(carryFlag))
	case 0xD1: // POP DE
		c.setDE(c.popStack())
		return 1, 3
	case 0xD2: // JP NC,a16
		return c.jp(!c.isSetFlag(carryFlag))
	case 0xD4: // CALL NC,a16
		return c.call(!c.isSetFlag(carryFlag))
	case 0xD5: // PUSH DE
		c.pushStack(c.getDE())
		return 1, 4
	case 0xD6: // SUB d8
		c.subFromA(c.immediate())
		return 2, 2
	case 0xD7:
		return c.rst(0x10)
	case 0xD8: // RET C
		return c.retIf(c.isSetFlag(carryFlag))
	case 0xD9: // RETI
		c.ime = true
		c.pc = c.popStack()
		return 0, 4
	case 0xDA: // JP C,a16
		return c.jp(c.isSetFlag(carryFlag))
	case 0xDC: // CALL C,a16
		return c.call(c.isSetFlag(carryFlag))
	case 0xDE: // SBC A,d8
		c.sbcFromA(c.immediate())
		return 2, 2
	case 0xDF:
		return c.rst(0x18)

	case 0xE0: // LDH (a8),A
		c.writeByte(0xFF00+uint16(c.immediate()), c.a)
		return 2, 3
	case 0xE1: // POP HL
		c.setHL(c.popStack())
		return 1, 3
	case 0xE2: // LD (C),A
		c.writeByte(0xFF00+uint16(c.c), c.a)
		return 1, 2
	case 0xE5: // PUSH HL
		c.pushStack(c.getHL())
		return 1, 4
	case 0xE6: // AND d8
		c.andA(c.immediate())
		return 2, 2
	case 0xE7:
		return c.rst(0x20)
	case 0xE8: // ADD SP,r8
		c.sp = c.addToSP(c.immediate())
		return 2, 4
	case 0xE9: // JP (HL)
		c.pc = c.getHL()
		return 0, 1
	case 0xEA: // LD (a16),A
		c.writeByte(c.immediateWord(), c.a)
		return 3, 4
	case 0xEE: // XOR d8
		c.xorA(c.immediate())
		return 2, 2
	case 0xEF:
		return c.rst(0x28)

	case 0xF0: // LDH A,(a8)
		c.a = c.readByte(0xFF00 + uint16(c.immediate()))
		return 2, 3
	case 0xF1: // POP AF
		c.setAF(c.popStack())
		return 1, 3
	case 0xF2: // LD A,(C)
		c.a = c.readByte(0xFF00 + uint16(c.c))
		return 1, 2
	case 0xF3: // DI
		c.ime = false
		return 1, 1
	case 0xF5: // PUSH AF
		c.pushStack(c.getAF())
		return 1, 4
	case 0xF6: // OR d8
		c.orA(c.immediate())
		return 2, 2
	case 0xF7:
		return c.rst(0x30)
	case 0xF8: // LD HL,SP+r8
		c.setHL(c.addToSP(c.immediate()))
		return 2, 3
	case 0xF9: // LD SP,HL
		c.sp = c.getHL()
		return 1, 2
	case 0xFA: // LD A,(a16)
		c.a = c.readByte(c.immediateWord())
		return 3, 4
	case 0xFB: // EI
		c.ime = true
		return 1, 1
	case 0xFE: // CP d8
		c.compare(c.immediate())
		return 2, 2
	case 0xFF:
		return c.rst(0x38)
	}

	// DAA and the holes in the opcode map land here.
	c.fault = &OpcodeError{Opcode: uint16(op), PC: c.pc}
	return 0, 1
}

// executeLoad handles the 0x40-0x7F register-to-register block. The slot
// that would be LD (HL),(HL) encodes HALT instead.
func (c *CPU) executeLoad(op uint8) (uint16, int) {
	src := srcOperand(op)
	dst := dstOperand(op)

	if src == opHLPtr && dst == opHLPtr { // HALT
		c.fault = &Exit{Reason: ExitHalt, PC: c.pc}
		return 0, 1
	}

	c.store(dst, c.load(src))

	if src.isMemory() || dst.isMemory() {
		return 1, 2
	}
	return 1, 1
}

// executeALU handles the 0x80-0xBF block, eight operations over the eight
// operand slots.
func (c *CPU) executeALU(op uint8) (uint16, int) {
	src := srcOperand(op)
	value := c.load(src)

	switch op & 0xF8 {
	case 0x80:
		c.addToA(value)
	case 0x88:
		c.adcToA(value)
	case 0x90:
		c.subFromA(value)
	case 0x98:
		c.sbcFromA(value)
	case 0xA0:
		c.andA(value)
	case 0xA8:
		c.xorA(value)
	case 0xB0:
		c.orA(value)
	case 0xB8:
		c.compare(value)
	}

	if src.isMemory() {
		return 1, 2
	}
	return 1, 1
}

// jr moves PC past the 2-byte instruction and then applies the sign-extended
// displacement when the condition holds.
func (c *CPU) jr(condition bool) (uint16, int) {
	if !condition {
		return 2, 2
	}
	offset := c.signedImmediate()
	c.pc = uint16(int32(c.pc) + 2 + int32(offset))
	return 0, 3
}

func (c *CPU) jp(condition bool) (uint16, int) {
	if !condition {
		return 3, 3
	}
	c.pc = c.immediateWord()
	return 0, 4
}

func (c *CPU) call(condition bool) (uint16, int) {
	if !condition {
		return 3, 3
	}
	target := c.immediateWord()
	c.pushStack(c.pc + 3)
	c.pc = target
	return 0, 6
}

func (c *CPU) retIf(condition bool) (uint16, int) {
	if !condition {
		return 1, 2
	}
	c.pc = c.popStack()
	return 0, 5
}

func (c *CPU) rst(target uint16) (uint16, int) {
	c.pushStack(c.pc + 1)
	c.pc = target
	return 0, 4
}
