package dmg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcerati/go-dmg/dmg/cpu"
)

// romWith builds a minimal valid cartridge image with the given program at
// the entry address 0x0000.
func romWith(program ...byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom, program)

	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum

	return rom
}

func TestRunUntilHalt(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(romWith(0x3E, 0x05, 0x76))) // LD A,5; HALT

	err := m.Run()

	var exit *cpu.Exit
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, cpu.ExitHalt, exit.Reason)
	assert.Equal(t, uint16(0x0002), exit.PC)
	assert.Equal(t, uint8(0x05), m.CPU().A())
	assert.Equal(t, uint16(0x0002), m.CPU().PC())
	assert.Equal(t, uint64(2), m.CPU().Cycles())
}

func TestRunUntilStop(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(romWith(0x00, 0x10))) // NOP; STOP

	err := m.Run()

	var exit *cpu.Exit
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, cpu.ExitStop, exit.Reason)
	assert.Equal(t, uint16(0x0001), exit.PC)
}

func TestRunSurfacesUnmappedAccess(t *testing.T) {
	m := New()
	// LD A,(a16) from the object attribute hole.
	require.NoError(t, m.LoadROM(romWith(0xFA, 0x00, 0xFE)))

	err := m.Run()

	var exit *cpu.Exit
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, cpu.ExitOOBRead, exit.Reason)
}

func TestRunSurfacesUnimplementedOpcode(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(romWith(0xD3)))

	err := m.Run()

	var opErr *cpu.OpcodeError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, uint16(0xD3), opErr.Opcode)
}

func TestStopEndsRunCleanly(t *testing.T) {
	m := New()
	// JR -2: spin in place until stopped.
	require.NoError(t, m.LoadROM(romWith(0x18, 0xFE)))

	done := make(chan error, 1)
	go func() { done <- m.Run() }()

	time.Sleep(10 * time.Millisecond)
	m.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestFrameDeliveryThroughMachine(t *testing.T) {
	m := New()
	// Spin forever; the video unit keeps ticking underneath.
	require.NoError(t, m.LoadROM(romWith(0x18, 0xFE)))

	frames := m.Frames()

	go func() {
		_ = m.Run()
	}()
	defer m.Stop()

	select {
	case frame := <-frames:
		require.NotNil(t, frame)
		m.Sync().Ack()
	case <-time.After(5 * time.Second):
		t.Fatal("no frame delivered")
	}
}
