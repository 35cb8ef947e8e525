package cpu

import (
	"errors"

	"github.com/lcerati/go-dmg/dmg/bit"
)

// Bus is the memory interface the CPU drives. Words are little-endian byte
// pairs. Every access can fail: the decoder returns an error for addresses
// outside any mapped region.
type Bus interface {
	ReadByte(address uint16) (byte, error)
	WriteByte(address uint16, value byte) error
	ReadWord(address uint16) (uint16, error)
	WriteWord(address uint16, value uint16) error
}

// Flag is one of the 4 condition bits in the high nibble of F.
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

// CPU holds the SM83 register file and runs the fetch-decode-execute loop.
type CPU struct {
	a  uint8
	f  uint8
	b  uint8
	c  uint8
	d  uint8
	e  uint8
	h  uint8
	l  uint8
	sp uint16
	pc uint16

	// ime tracks the master interrupt enable bit. Delivery is not
	// emulated, DI/EI/RETI only store the flag.
	ime bool

	cycles uint64
	bus    Bus

	// fault records the first error raised while executing the current
	// instruction. Once set, the remaining memory accesses of the
	// instruction become no-ops and Step surfaces the error.
	fault error
}

// New returns a CPU in its power-on state: every register zeroed, PC at the
// start of the boot overlay.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Step fetches, decodes and executes a single instruction, advancing PC by
// the bytes the instruction consumed. It returns the machine cycles the
// instruction took, or a typed error: *Exit for STOP/HALT/out-of-bounds,
// *OpcodeError for opcodes the interpreter does not implement.
func (c *CPU) Step() (int, error) {
	op := c.readByte(c.pc)
	if c.fault != nil {
		return 0, c.takeFault()
	}

	bytes, cycles := c.execute(op)
	if c.fault != nil {
		return 0, c.takeFault()
	}

	c.pc += bytes
	c.cycles += uint64(cycles)

	return cycles, nil
}

func (c *CPU) takeFault() error {
	err := c.fault
	c.fault = nil

	var exit *Exit
	var opErr *OpcodeError
	if errors.As(err, &exit) || errors.As(err, &opErr) {
		return err
	}

	// Anything the bus reports is an out-of-bounds access.
	return &Exit{Reason: ExitOOBRead, PC: c.pc, Cause: err}
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the current stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// A returns the accumulator.
func (c *CPU) A() uint8 { return c.a }

// F returns the flags register.
func (c *CPU) F() uint8 { return c.f }

// Cycles returns the machine cycles executed since power-on.
func (c *CPU) Cycles() uint64 { return c.cycles }

// memory helpers. All of them respect the sticky fault: once an access
// failed, reads return zero and writes do nothing until Step picks the
// error up.

func (c *CPU) readByte(address uint16) byte {
	if c.fault != nil {
		return 0
	}
	value, err := c.bus.ReadByte(address)
	if err != nil {
		c.fault = err
		return 0
	}
	return value
}

func (c *CPU) writeByte(address uint16, value byte) {
	if c.fault != nil {
		return
	}
	if err := c.bus.WriteByte(address, value); err != nil {
		c.fault = err
	}
}

func (c *CPU) readWord(address uint16) uint16 {
	if c.fault != nil {
		return 0
	}
	value, err := c.bus.ReadWord(address)
	if err != nil {
		c.fault = err
		return 0
	}
	return value
}

func (c *CPU) writeWord(address uint16, value uint16) {
	if c.fault != nil {
		return
	}
	if err := c.bus.WriteWord(address, value); err != nil {
		c.fault = err
	}
}

// immediate returns the byte following the opcode ('n' in mnemonics).
func (c *CPU) immediate() uint8 {
	return c.readByte(c.pc + 1)
}

// immediateWord returns the two bytes following the opcode ('nn').
func (c *CPU) immediateWord() uint16 {
	return c.readWord(c.pc + 1)
}

// signedImmediate returns the byte following the opcode as a signed offset.
func (c *CPU) signedImmediate() int8 {
	return int8(c.readByte(c.pc + 1))
}

func (c *CPU) pushStack(value uint16) {
	c.sp -= 2
	c.writeWord(c.sp, value)
}

func (c *CPU) popStack() uint16 {
	value := c.readWord(c.sp)
	c.sp += 2
	return value
}

// flags

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &= uint8(flag ^ 0xFF)
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

// flagToBit returns 1 if the flag is set, 0 otherwise.
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if !condition {
		c.resetFlag(flag)
		return
	}
	c.setFlag(flag)
}

func (c *CPU) clearFlags() {
	c.f = 0
}

// register pairs, high byte first

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) getBC() uint16 {
	return bit.Combine(c.b, c.c)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) getDE() uint16 {
	return bit.Combine(c.d, c.e)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	// low nibble of F is hardwired to zero
	c.f = bit.Low(value) & 0xF0
}

func (c *CPU) getAF() uint16 {
	return bit.Combine(c.a, c.f)
}
