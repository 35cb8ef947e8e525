package memory

import (
	"fmt"

	"github.com/lcerati/go-dmg/dmg/bit"
)

const titleLength = 16

const (
	logoAddress           = 0x104
	titleAddress          = 0x134
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	versionNumberAddress  = 0x14C
	headerChecksumAddress = 0x14D
	globalChecksumAddress = 0x14E
	headerEnd             = 0x150

	// The address window covered by the ROM region. Banked carts are not
	// supported, so this is a hard limit on image size.
	maxROMSize = 0x8000
)

// Cartridge holds a plain, unbanked ROM image together with the metadata
// parsed from its header.
type Cartridge struct {
	data           []byte
	title          string
	headerChecksum uint8
	globalChecksum uint16
	version        uint8
	cartType       uint8
	romSize        uint8
	ramSize        uint8
}

// NewCartridge initializes a Cartridge from a raw ROM image.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < headerEnd {
		return nil, fmt.Errorf("rom image too small: %d bytes, header needs %d", len(data), headerEnd)
	}
	if len(data) > maxROMSize {
		return nil, fmt.Errorf("rom image too large: %d bytes, limit is %d", len(data), maxROMSize)
	}

	cart := &Cartridge{
		data:           make([]byte, len(data)),
		title:          titleString(data[titleAddress : titleAddress+titleLength]),
		headerChecksum: data[headerChecksumAddress],
		globalChecksum: bit.Combine(data[globalChecksumAddress], data[globalChecksumAddress+1]),
		version:        data[versionNumberAddress],
		cartType:       data[cartridgeTypeAddress],
		romSize:        data[romSizeAddress],
		ramSize:        data[ramSizeAddress],
	}
	copy(cart.data, data)

	return cart, nil
}

// Title returns the game title from the header, trimmed of padding.
func (c *Cartridge) Title() string { return c.title }

// Data returns the raw ROM image.
func (c *Cartridge) Data() []byte { return c.data }

// ChecksumOK recomputes the header checksum and compares it against the
// stored byte.
func (c *Cartridge) ChecksumOK() bool {
	var sum uint8
	for _, b := range c.data[titleAddress:headerChecksumAddress] {
		sum = sum - b - 1
	}
	return sum == c.headerChecksum
}

func titleString(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}
