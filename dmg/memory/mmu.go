package memory

import (
	"fmt"
	"log/slog"

	"github.com/lcerati/go-dmg/dmg/addr"
)

// VideoPort is the slice of the video unit the memory decoder needs: raw
// tile memory plus the LCD register file.
type VideoPort interface {
	ReadVRAM(offset uint16) byte
	WriteVRAM(offset uint16, value byte)
	ReadRegister(address uint16) (byte, error)
	WriteRegister(address uint16, value byte) error
}

// AudioPort receives writes to the sound register range.
type AudioPort interface {
	ReadRegister(address uint16) byte
	WriteRegister(address uint16, value byte)
}

// AccessError reports a memory access outside any mapped region.
type AccessError struct {
	Address uint16
	Write   bool
}

func (e *AccessError) Error() string {
	if e.Write {
		return fmt.Sprintf("unmapped memory write at 0x%04X", e.Address)
	}
	return fmt.Sprintf("unmapped memory read at 0x%04X", e.Address)
}

const bootImageSize = 0x100

// bootHeader is the slice of the cartridge header the boot program checks,
// served while the boot overlay is active so the logo comparison and the
// checksum loop pass even with no cartridge inserted. Title bytes are zero,
// which makes the header checksum 0xE7.
var bootHeader = buildBootHeader()

func buildBootHeader() []byte {
	logo := []byte{
		0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
		0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
		0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
		0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
		0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
		0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
	}

	header := make([]byte, headerChecksumAddress-logoAddress+1)
	copy(header, logo)

	var sum uint8
	for range header[titleAddress-logoAddress : headerChecksumAddress-logoAddress] {
		sum--
	}
	header[headerChecksumAddress-logoAddress] = sum

	return header
}

// MMU is the address decoder. It owns working RAM, external RAM and HRAM
// directly and forwards video and sound ranges to the attached units.
type MMU struct {
	cart *Cartridge
	boot []byte

	// bootActive maps the boot image over 0x0000-0x00FF. Cleared once,
	// by a write to the lock register, and never set again.
	bootActive bool

	extRAM [0x2000]byte
	wram   [0x2000]byte
	hram   [0x80]byte

	interruptFlags byte

	video VideoPort
	audio AudioPort

	log *slog.Logger
}

// New returns an MMU with no cartridge and no boot image mapped.
func New() *MMU {
	return &MMU{log: slog.Default()}
}

// LoadBootImage installs the 256-byte boot program and activates the
// overlay.
func (m *MMU) LoadBootImage(image []byte) error {
	if len(image) != bootImageSize {
		return fmt.Errorf("boot image must be %d bytes, got %d", bootImageSize, len(image))
	}
	m.boot = make([]byte, bootImageSize)
	copy(m.boot, image)
	m.bootActive = true
	return nil
}

// LoadROM parses and installs a cartridge image.
func (m *MMU) LoadROM(data []byte) error {
	cart, err := NewCartridge(data)
	if err != nil {
		return err
	}
	if !cart.ChecksumOK() {
		m.log.Warn("cartridge header checksum mismatch", "title", cart.Title())
	}
	m.cart = cart
	m.log.Debug("cartridge loaded", "title", cart.Title(), "size", len(data))
	return nil
}

// AttachVideo wires the video unit into the 0x8000-0x9FFF range and the
// LCD registers.
func (m *MMU) AttachVideo(v VideoPort) {
	m.video = v
}

// AttachAudio wires the audio unit into the 0xFF10-0xFF3F range.
func (m *MMU) AttachAudio(a AudioPort) {
	m.audio = a
}

// BootActive reports whether the boot overlay is still mapped.
func (m *MMU) BootActive() bool {
	return m.bootActive
}

func (m *MMU) ReadByte(address uint16) (byte, error) {
	switch {
	case address < 0x0100 && m.bootActive:
		return m.boot[address], nil

	case address >= logoAddress && address <= headerChecksumAddress && m.bootActive:
		return bootHeader[address-logoAddress], nil

	case address < 0x8000:
		if m.cart == nil || int(address) >= len(m.cart.data) {
			return 0xFF, nil
		}
		return m.cart.data[address], nil

	case address < 0xA000:
		if m.video == nil {
			return 0xFF, nil
		}
		return m.video.ReadVRAM(address - 0x8000), nil

	case address < 0xC000:
		return m.extRAM[address-0xA000], nil

	case address < 0xE000:
		return m.wram[address-0xC000], nil

	case address < 0xFE00:
		// echo of working RAM
		return m.wram[address-0xE000], nil

	case address < 0xFF00:
		return 0, &AccessError{Address: address}

	case address < 0xFF80:
		return m.readIO(address)

	default:
		return m.hram[address-0xFF80], nil
	}
}

func (m *MMU) WriteByte(address uint16, value byte) error {
	switch {
	case address < 0x8000:
		return &AccessError{Address: address, Write: true}

	case address < 0xA000:
		if m.video != nil {
			m.video.WriteVRAM(address-0x8000, value)
		}
		return nil

	case address < 0xC000:
		m.extRAM[address-0xA000] = value
		return nil

	case address < 0xE000:
		m.wram[address-0xC000] = value
		return nil

	case address < 0xFE00:
		m.wram[address-0xE000] = value
		return nil

	case address < 0xFF00:
		return &AccessError{Address: address, Write: true}

	case address < 0xFF80:
		return m.writeIO(address, value)

	default:
		m.hram[address-0xFF80] = value
		return nil
	}
}

func (m *MMU) readIO(address uint16) (byte, error) {
	switch {
	case address == addr.IF:
		return m.interruptFlags, nil

	case address >= addr.AudioStart && address <= addr.AudioEnd:
		if m.audio == nil {
			return 0xFF, nil
		}
		return m.audio.ReadRegister(address), nil

	case address >= addr.LCDC && address <= addr.BGP:
		if m.video == nil {
			return 0xFF, nil
		}
		return m.video.ReadRegister(address)

	case address == addr.Boot:
		if m.bootActive {
			return 0, nil
		}
		return 1, nil

	default:
		return 0, &AccessError{Address: address}
	}
}

func (m *MMU) writeIO(address uint16, value byte) error {
	switch {
	case address == addr.IF:
		m.interruptFlags = value
		return nil

	case address >= addr.AudioStart && address <= addr.AudioEnd:
		if m.audio != nil {
			m.audio.WriteRegister(address, value)
		}
		return nil

	case address >= addr.LCDC && address <= addr.BGP:
		if m.video == nil {
			return nil
		}
		return m.video.WriteRegister(address, value)

	case address == addr.Boot:
		// Writing bit 0 unmaps the boot overlay for good. Further
		// writes have no effect.
		if value&0x01 != 0 && m.bootActive {
			m.bootActive = false
			m.log.Debug("boot overlay unmapped")
		}
		return nil

	default:
		return &AccessError{Address: address, Write: true}
	}
}

// ReadWord reads two bytes little-endian.
func (m *MMU) ReadWord(address uint16) (uint16, error) {
	low, err := m.ReadByte(address)
	if err != nil {
		return 0, err
	}
	high, err := m.ReadByte(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// WriteWord writes two bytes little-endian.
func (m *MMU) WriteWord(address uint16, value uint16) error {
	if err := m.WriteByte(address, byte(value)); err != nil {
		return err
	}
	return m.WriteByte(address+1, byte(value>>8))
}
