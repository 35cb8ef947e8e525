package video

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lcerati/go-dmg/dmg/addr"
)

// Mode is the PPU state, numbered the way the STAT register reports it.
type Mode int

const (
	HBlankMode Mode = iota
	VBlankMode
	OAMScanMode
	PixelTransferMode
)

func (m Mode) String() string {
	switch m {
	case HBlankMode:
		return "hblank"
	case VBlankMode:
		return "vblank"
	case OAMScanMode:
		return "oam-scan"
	case PixelTransferMode:
		return "pixel-transfer"
	default:
		return "unknown"
	}
}

// Clock cycle thresholds for each mode, per scanline.
const (
	oamScanCycles       = 80
	pixelTransferCycles = 172
	hblankCycles        = 204
	scanlineCycles      = oamScanCycles + pixelTransferCycles + hblankCycles
)

// ErrUnknownRegister marks an access to an LCD register the PPU does not
// implement.
var ErrUnknownRegister = errors.New("unknown video register")

const (
	vramSize      = 0x2000
	tileMapOffset = 0x1800
	tileMapWidth  = 32
	tileSize      = 16

	lastRenderLine = 142
	lastFrameLine  = 153
)

// PPU steps through the per-scanline mode sequence, renders the background
// into a framebuffer and hands completed frames to a subscriber.
type PPU struct {
	vram [vramSize]byte
	fb   *Framebuffer

	mode   Mode
	line   uint8
	cycles int

	lcdc byte
	stat byte
	scy  byte
	scx  byte
	bgp  byte

	frames chan *Framebuffer
	sync   *FrameSync

	log *slog.Logger
}

// New returns a PPU at the top of the frame: first scanline, object scan.
func New() *PPU {
	return &PPU{
		fb:   NewFramebuffer(),
		mode: OAMScanMode,
		sync: NewFrameSync(),
		log:  slog.Default(),
	}
}

// Subscribe attaches the frame consumer. The channel carries a deep copy
// of the framebuffer once per video frame; the consumer acknowledges each
// one through Sync before the next arrives.
func (p *PPU) Subscribe() <-chan *Framebuffer {
	p.frames = make(chan *Framebuffer, 1)
	p.log.Debug("frame consumer attached")
	return p.frames
}

// Sync returns the handle the consumer uses to acknowledge frames and the
// machine uses to release the producer on shutdown.
func (p *PPU) Sync() *FrameSync {
	return p.sync
}

// Mode returns the current PPU mode.
func (p *PPU) Mode() Mode {
	return p.mode
}

// Line returns the scanline the PPU is on.
func (p *PPU) Line() uint8 {
	return p.line
}

// Tick advances the PPU by the given number of clock cycles, crossing as
// many mode transitions as the cycles cover. Cycles beyond a threshold
// carry over into the next mode.
func (p *PPU) Tick(cycles int) {
	p.cycles += cycles

	for p.advance() {
	}
}

func (p *PPU) advance() bool {
	switch p.mode {
	case OAMScanMode:
		if p.cycles < oamScanCycles {
			return false
		}
		p.cycles -= oamScanCycles
		p.mode = PixelTransferMode

	case PixelTransferMode:
		if p.cycles < pixelTransferCycles {
			return false
		}
		p.cycles -= pixelTransferCycles
		p.renderLine()
		p.mode = HBlankMode

	case HBlankMode:
		if p.cycles < hblankCycles {
			return false
		}
		p.cycles -= hblankCycles
		p.line++
		if p.line > lastRenderLine {
			p.mode = VBlankMode
			p.publishFrame()
		} else {
			p.mode = OAMScanMode
		}

	case VBlankMode:
		if p.cycles < scanlineCycles {
			return false
		}
		p.cycles -= scanlineCycles
		p.line++
		if p.line > lastFrameLine {
			p.line = 0
			p.mode = OAMScanMode
		}
	}

	return true
}

// renderLine draws the current background scanline. Tiles come from the
// map at 0x9800 and only the first bitplane is sampled, so pixels are
// either full white or full black. Scrolling wraps modulo 256.
func (p *PPU) renderLine() {
	y := p.line + p.scy

	for x := 0; x < FramebufferWidth; x++ {
		xx := uint8(x) + p.scx

		tile := p.vram[tileMapOffset+int(y/8)*tileMapWidth+int(xx/8)]
		row := p.vram[int(tile)*tileSize+int(y%8)*2]

		shade := byte(0xFF)
		if row>>(7-xx%8)&1 != 0 {
			shade = 0x00
		}
		p.fb.SetShade(x, int(p.line), shade)
	}
}

// publishFrame hands a copy of the finished frame to the subscriber, if
// any. With no subscriber the frame is dropped without blocking.
func (p *PPU) publishFrame() {
	if p.frames == nil {
		return
	}
	if !p.sync.claim() {
		return
	}

	// claim guarantees the single slot is free.
	p.frames <- p.fb.Copy()
}

// ReadVRAM reads tile memory. The offset is relative to 0x8000.
func (p *PPU) ReadVRAM(offset uint16) byte {
	return p.vram[offset]
}

// WriteVRAM writes tile memory.
func (p *PPU) WriteVRAM(offset uint16, value byte) {
	p.vram[offset] = value
}

// ReadRegister reads an LCD register.
func (p *PPU) ReadRegister(address uint16) (byte, error) {
	switch address {
	case addr.LCDC:
		return p.lcdc, nil
	case addr.STAT:
		return p.stat&0xFC | byte(p.mode), nil
	case addr.SCY:
		return p.scy, nil
	case addr.SCX:
		return p.scx, nil
	case addr.LY:
		return p.line, nil
	case addr.BGP:
		return p.bgp, nil
	default:
		return 0, fmt.Errorf("%w: 0x%04X", ErrUnknownRegister, address)
	}
}

// WriteRegister writes an LCD register. Writing the line counter resets it.
func (p *PPU) WriteRegister(address uint16, value byte) error {
	switch address {
	case addr.LCDC:
		p.lcdc = value
	case addr.STAT:
		p.stat = value
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		p.line = 0
	case addr.BGP:
		p.bgp = value
	default:
		return fmt.Errorf("%w: 0x%04X", ErrUnknownRegister, address)
	}
	return nil
}
