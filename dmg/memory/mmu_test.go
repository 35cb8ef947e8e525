package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcerati/go-dmg/dmg/addr"
)

type fakeVideo struct {
	vram [0x2000]byte
	regs map[uint16]byte
}

func newFakeVideo() *fakeVideo {
	return &fakeVideo{regs: make(map[uint16]byte)}
}

func (v *fakeVideo) ReadVRAM(offset uint16) byte         { return v.vram[offset] }
func (v *fakeVideo) WriteVRAM(offset uint16, value byte) { v.vram[offset] = value }

func (v *fakeVideo) ReadRegister(address uint16) (byte, error) {
	return v.regs[address], nil
}

func (v *fakeVideo) WriteRegister(address uint16, value byte) error {
	v.regs[address] = value
	return nil
}

type fakeAudio struct {
	regs map[uint16]byte
}

func (a *fakeAudio) ReadRegister(address uint16) byte         { return a.regs[address] }
func (a *fakeAudio) WriteRegister(address uint16, value byte) { a.regs[address] = value }

func testBootImage() []byte {
	image := make([]byte, bootImageSize)
	for i := range image {
		image[i] = byte(i)
	}
	return image
}

func testROM() []byte {
	rom := make([]byte, maxROMSize)
	for i := range rom {
		rom[i] = 0xA5
	}
	copy(rom[titleAddress:], "TESTCART")
	rom[titleAddress+8] = 0

	var sum uint8
	for _, b := range rom[titleAddress:headerChecksumAddress] {
		sum = sum - b - 1
	}
	rom[headerChecksumAddress] = sum

	return rom
}

func TestBootOverlay(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(testROM()))
	require.NoError(t, m.LoadBootImage(testBootImage()))

	t.Run("overlay shadows the cartridge", func(t *testing.T) {
		v, err := m.ReadByte(0x0050)
		require.NoError(t, err)
		assert.Equal(t, byte(0x50), v)
	})

	t.Run("lock register reads 0 while mapped", func(t *testing.T) {
		v, err := m.ReadByte(addr.Boot)
		require.NoError(t, err)
		assert.Equal(t, byte(0), v)
	})

	t.Run("writing bit 0 unmaps the overlay", func(t *testing.T) {
		require.NoError(t, m.WriteByte(addr.Boot, 1))

		v, err := m.ReadByte(0x0050)
		require.NoError(t, err)
		assert.Equal(t, byte(0xA5), v)

		v, err = m.ReadByte(addr.Boot)
		require.NoError(t, err)
		assert.Equal(t, byte(1), v)
	})

	t.Run("the unmap is permanent", func(t *testing.T) {
		require.NoError(t, m.WriteByte(addr.Boot, 0))
		require.NoError(t, m.WriteByte(addr.Boot, 1))

		v, err := m.ReadByte(0x0050)
		require.NoError(t, err)
		assert.Equal(t, byte(0xA5), v)
	})
}

func TestBootHeaderStub(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadBootImage(testBootImage()))

	// The logo bytes the boot program compares against must be present
	// even with no cartridge inserted.
	first, err := m.ReadByte(logoAddress)
	require.NoError(t, err)
	assert.Equal(t, byte(0xCE), first)

	// Header checksum over all-zero title bytes.
	sum, err := m.ReadByte(headerChecksumAddress)
	require.NoError(t, err)
	assert.Equal(t, byte(0xE7), sum)
}

func TestROMIsReadOnly(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(testROM()))

	err := m.WriteByte(0x1234, 0x00)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, uint16(0x1234), accessErr.Address)
	assert.True(t, accessErr.Write)
}

func TestWorkingRAMEcho(t *testing.T) {
	m := New()

	require.NoError(t, m.WriteByte(0xC123, 0x42))

	v, err := m.ReadByte(0xE123)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), v)

	require.NoError(t, m.WriteByte(0xF000, 0x99))

	v, err = m.ReadByte(0xD000)
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), v)
}

func TestExternalRAMAndHRAM(t *testing.T) {
	m := New()

	require.NoError(t, m.WriteByte(0xA000, 0x11))
	require.NoError(t, m.WriteByte(0xFF80, 0x22))
	require.NoError(t, m.WriteByte(0xFFFF, 0x33))

	for _, tt := range []struct {
		address  uint16
		expected byte
	}{
		{0xA000, 0x11},
		{0xFF80, 0x22},
		{0xFFFF, 0x33},
	} {
		v, err := m.ReadByte(tt.address)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, v, "address 0x%04X", tt.address)
	}
}

func TestUnmappedAccesses(t *testing.T) {
	m := New()

	tests := []struct {
		desc    string
		address uint16
	}{
		{desc: "object attribute range", address: 0xFE00},
		{desc: "unused high range", address: 0xFEA0},
		{desc: "joypad register", address: 0xFF00},
		{desc: "serial register", address: 0xFF01},
		{desc: "timer register", address: 0xFF07},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := m.ReadByte(tt.address)

			var accessErr *AccessError
			require.ErrorAs(t, err, &accessErr)
			assert.Equal(t, tt.address, accessErr.Address)
			assert.False(t, accessErr.Write)
		})
	}
}

func TestInterruptFlagsRegister(t *testing.T) {
	m := New()

	require.NoError(t, m.WriteByte(addr.IF, 0x1F))

	v, err := m.ReadByte(addr.IF)
	require.NoError(t, err)
	assert.Equal(t, byte(0x1F), v)
}

func TestVideoRouting(t *testing.T) {
	m := New()
	video := newFakeVideo()
	m.AttachVideo(video)

	require.NoError(t, m.WriteByte(0x8010, 0x3C))
	assert.Equal(t, byte(0x3C), video.vram[0x0010])

	require.NoError(t, m.WriteByte(addr.SCY, 0x07))
	assert.Equal(t, byte(0x07), video.regs[addr.SCY])

	video.regs[addr.LY] = 90
	v, err := m.ReadByte(addr.LY)
	require.NoError(t, err)
	assert.Equal(t, byte(90), v)
}

func TestAudioRouting(t *testing.T) {
	m := New()
	audio := &fakeAudio{regs: make(map[uint16]byte)}
	m.AttachAudio(audio)

	require.NoError(t, m.WriteByte(addr.NR11, 0x80))
	assert.Equal(t, byte(0x80), audio.regs[addr.NR11])

	v, err := m.ReadByte(addr.NR11)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), v)
}

func TestWordAccess(t *testing.T) {
	m := New()

	require.NoError(t, m.WriteWord(0xC000, 0xBEEF))

	low, err := m.ReadByte(0xC000)
	require.NoError(t, err)
	high, err := m.ReadByte(0xC001)
	require.NoError(t, err)
	assert.Equal(t, byte(0xEF), low)
	assert.Equal(t, byte(0xBE), high)

	v, err := m.ReadWord(0xC000)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)
}

func TestLoadROMRejectsBadImages(t *testing.T) {
	m := New()

	assert.Error(t, m.LoadROM(make([]byte, 0x100)))
	assert.Error(t, m.LoadROM(make([]byte, maxROMSize+1)))
}

func TestLoadBootImageRejectsBadSizes(t *testing.T) {
	m := New()

	assert.Error(t, m.LoadBootImage(make([]byte, 0xFF)))
	assert.Error(t, m.LoadBootImage(make([]byte, 0x101)))
}
