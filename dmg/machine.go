// Package dmg wires the CPU, memory and video units into a runnable
// machine.
package dmg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/lcerati/go-dmg/dmg/audio"
	"github.com/lcerati/go-dmg/dmg/cpu"
	"github.com/lcerati/go-dmg/dmg/memory"
	"github.com/lcerati/go-dmg/dmg/video"
)

// The memory unit is the CPU's bus, and the video and audio units plug
// into the memory unit's ports.
var (
	_ cpu.Bus          = (*memory.MMU)(nil)
	_ memory.VideoPort = (*video.PPU)(nil)
	_ memory.AudioPort = (*audio.APU)(nil)
)

// Machine clocks divide: one CPU machine cycle is four clock cycles.
const clocksPerMachineCycle = 4

// Machine is a complete emulated unit.
type Machine struct {
	cpu *cpu.CPU
	mmu *memory.MMU
	ppu *video.PPU
	apu *audio.APU

	stopped atomic.Bool
	log     *slog.Logger
}

// New builds a machine with all units attached and every register at its
// power-on value.
func New() *Machine {
	mmu := memory.New()
	ppu := video.New()
	apu := audio.New()

	mmu.AttachVideo(ppu)
	mmu.AttachAudio(apu)

	return &Machine{
		cpu: cpu.New(mmu),
		mmu: mmu,
		ppu: ppu,
		apu: apu,
		log: slog.Default(),
	}
}

// NewWithFile builds a machine and loads the ROM and, when given, the boot
// image from disk. An empty romPath runs the boot program alone.
func NewWithFile(romPath, bootPath string) (*Machine, error) {
	m := New()

	if romPath != "" {
		rom, err := os.ReadFile(romPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read ROM: %v", err)
		}
		if err := m.LoadROM(rom); err != nil {
			return nil, err
		}
	}

	if bootPath != "" {
		image, err := os.ReadFile(bootPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read boot image: %v", err)
		}
		if err := m.LoadBootImage(image); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// LoadROM installs a cartridge image.
func (m *Machine) LoadROM(data []byte) error {
	return m.mmu.LoadROM(data)
}

// LoadBootImage installs the boot program and maps its overlay.
func (m *Machine) LoadBootImage(image []byte) error {
	return m.mmu.LoadBootImage(image)
}

// Frames attaches the frame consumer. Each received frame must be
// acknowledged through Sync before the next one arrives.
func (m *Machine) Frames() <-chan *video.Framebuffer {
	return m.ppu.Subscribe()
}

// Sync returns the frame pacing handle.
func (m *Machine) Sync() *video.FrameSync {
	return m.ppu.Sync()
}

// CPU exposes the processor, mainly for inspection after Run returns.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// Run executes instructions until the program exits or Stop is called.
// A STOP or HALT instruction, an unmapped access or an unimplemented
// opcode ends the run with the corresponding typed error; Stop ends it
// with nil.
func (m *Machine) Run() error {
	for {
		if m.stopped.Load() {
			m.log.Info("machine stopped")
			return nil
		}

		cycles, err := m.cpu.Step()
		if err != nil {
			m.logExit(err)
			return err
		}

		m.ppu.Tick(cycles * clocksPerMachineCycle)
	}
}

// Stop makes Run return after the current instruction. It also releases
// the frame producer if it is waiting on the consumer.
func (m *Machine) Stop() {
	m.stopped.Store(true)
	m.ppu.Sync().Close()
}

func (m *Machine) logExit(err error) {
	var exit *cpu.Exit
	if errors.As(err, &exit) {
		m.log.Info("program exited", "reason", exit.Reason.String(), "pc", exit.PC)
		return
	}

	var opErr *cpu.OpcodeError
	if errors.As(err, &opErr) {
		m.log.Error("unimplemented opcode", "opcode", opErr.Opcode, "pc", opErr.PC)
		return
	}

	m.log.Error("machine fault", "error", err)
}
