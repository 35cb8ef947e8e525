// Package addr holds the memory-mapped register addresses the decoder
// understands. Registers outside this surface are unmapped.
package addr

// video registers
const (
	// LCDC is the LCD Control register.
	LCDC uint16 = 0xFF40
	// STAT is the LCD Status register. Only the mode bits are live.
	STAT uint16 = 0xFF41
	// SCY is the background vertical scroll register.
	SCY uint16 = 0xFF42
	// SCX is the background horizontal scroll register.
	SCX uint16 = 0xFF43
	// LY is the current scanline index (read only).
	LY uint16 = 0xFF44
	// BGP is the background palette register.
	BGP uint16 = 0xFF47
)

// sound registers. The APU is a register latch: values are stored and read
// back, no sound is produced.
const (
	AudioStart uint16 = 0xFF10
	AudioEnd   uint16 = 0xFF3F

	NR11 uint16 = 0xFF11 // channel 1 length & duty
	NR13 uint16 = 0xFF13 // channel 1 period low
	NR51 uint16 = 0xFF25 // output terminal selection
	NR52 uint16 = 0xFF26 // sound on/off
)

// interrupt flag storage. Delivery is not emulated, the bits are only kept.
const (
	// IF is the interrupt request flags register.
	IF uint16 = 0xFF0F
	// IE is the interrupt enable register (lives in the high RAM page).
	IE uint16 = 0xFFFF
)

const (
	// Boot is the boot overlay lock register. Writing bit 0 high switches
	// the overlay out permanently.
	Boot uint16 = 0xFF50
)
