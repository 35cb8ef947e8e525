package cpu

// 8-bit arithmetic. Flag behavior follows the hardware where the common
// cases are concerned; the half-carry rules are keyed on the raw sum
// crossing a power-of-two boundary, and INC/DEC only ever set H, they
// never clear it.

func (c *CPU) inc8(o operand) {
	res := c.load(o) + 1
	c.setFlagToCondition(zeroFlag, res == 0)
	c.resetFlag(subFlag)
	if res&0x1F == 0x10 {
		c.setFlag(halfCarryFlag)
	}
	c.store(o, res)
}

func (c *CPU) dec8(o operand) {
	res := c.load(o) - 1
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlag(subFlag)
	if res&0x1F == 0x0F {
		c.setFlag(halfCarryFlag)
	}
	c.store(o, res)
}

func (c *CPU) addToA(value uint8) {
	sum := uint16(c.a) + uint16(value)
	c.a = uint8(sum)
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, sum >= 0x10)
	c.setFlagToCondition(carryFlag, sum > 0xFF)
}

func (c *CPU) adcToA(value uint8) {
	c.addToA(value + c.flagToBit(carryFlag))
}

func (c *CPU) subFromA(value uint8) {
	c.a = c.compare(value)
}

func (c *CPU) sbcFromA(value uint8) {
	c.subFromA(value + c.flagToBit(carryFlag))
}

// compare runs the subtraction flag logic and hands back the difference so
// SUB can keep it and CP can discard it.
func (c *CPU) compare(value uint8) uint8 {
	res := c.a - value
	sum := uint16(c.a) + uint16(value)
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, sum >= 0x10)
	c.setFlagToCondition(carryFlag, value > c.a)
	return res
}

func (c *CPU) andA(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xorA(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) orA(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) addToHL(value uint16) {
	sum := uint32(c.getHL()) + uint32(value)
	c.setHL(uint16(sum))
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, sum >= 1<<12)
	c.setFlagToCondition(carryFlag, sum >= 1<<16)
}

// addToSP computes SP plus an 8-bit offset. The offset is zero-extended, so
// negative displacements never take; ADD SP,r8 and LD HL,SP+r8 share this
// path and both leave Z and N cleared.
func (c *CPU) addToSP(offset uint8) uint16 {
	sum := uint32(c.sp) + uint32(offset)
	c.clearFlags()
	c.setFlagToCondition(halfCarryFlag, sum >= 1<<4)
	c.setFlagToCondition(carryFlag, sum >= 1<<8)
	return uint16(sum)
}

// rotates, shifts and bit ops shared with the CB prefix table. Each one
// clears the flag register first, then sets Z and C from the result.

func (c *CPU) rlc(o operand) {
	v := c.load(o)
	res := v<<1 | v>>7
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x80 != 0)
	c.store(o, res)
}

func (c *CPU) rrc(o operand) {
	v := c.load(o)
	res := v>>1 | v<<7
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x01 != 0)
	c.store(o, res)
}

func (c *CPU) rl(o operand) {
	v := c.load(o)
	res := v<<1 | c.flagToBit(carryFlag)
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x80 != 0)
	c.store(o, res)
}

func (c *CPU) rr(o operand) {
	v := c.load(o)
	res := v>>1 | c.flagToBit(carryFlag)<<7
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x01 != 0)
	c.store(o, res)
}

func (c *CPU) sla(o operand) {
	v := c.load(o)
	res := v << 1
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x80 != 0)
	c.store(o, res)
}

func (c *CPU) sra(o operand) {
	v := c.load(o)
	res := v>>1 | v&0x80
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x01 != 0)
	c.store(o, res)
}

func (c *CPU) swap(o operand) {
	v := c.load(o)
	res := v<<4 | v>>4
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.store(o, res)
}

func (c *CPU) srl(o operand) {
	v := c.load(o)
	res := v >> 1
	c.clearFlags()
	c.setFlagToCondition(zeroFlag, res == 0)
	c.setFlagToCondition(carryFlag, v&0x01 != 0)
	c.store(o, res)
}

// testBit sets Z from the addressed bit and leaves the other flags alone.
func (c *CPU) testBit(index uint8, o operand) {
	c.setFlagToCondition(zeroFlag, c.load(o)&(1<<index) == 0)
}
