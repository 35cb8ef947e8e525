// Package audio holds the sound register file. The channels themselves are
// not synthesized; the registers are latched so the boot program's audio
// setup writes land somewhere and read back coherently.
package audio

import "github.com/lcerati/go-dmg/dmg/addr"

// APU latches the 0xFF10-0xFF3F register range.
type APU struct {
	regs [addr.AudioEnd - addr.AudioStart + 1]byte
}

// New returns an APU with every register zeroed.
func New() *APU {
	return &APU{}
}

// ReadRegister returns the latched value of a sound register. Addresses
// outside the sound range read as 0xFF.
func (a *APU) ReadRegister(address uint16) byte {
	if address < addr.AudioStart || address > addr.AudioEnd {
		return 0xFF
	}
	return a.regs[address-addr.AudioStart]
}

// WriteRegister latches a sound register write. Addresses outside the
// sound range are dropped.
func (a *APU) WriteRegister(address uint16, value byte) {
	if address < addr.AudioStart || address > addr.AudioEnd {
		return
	}
	a.regs[address-addr.AudioStart] = value
}
