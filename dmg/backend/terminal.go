package backend

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/lcerati/go-dmg/dmg/video"
)

const (
	terminalScaleX = 2
	terminalScaleY = 1
)

var shadeChars = []rune{'░', '▒', '▓', '█'}

// TerminalBackend renders frames as block glyphs with tcell. Each pixel
// becomes two terminal cells to roughly keep the aspect ratio.
type TerminalBackend struct {
	screen  tcell.Screen
	config  Config
	running bool
}

func NewTerminalBackend() *TerminalBackend {
	return &TerminalBackend{}
}

func (t *TerminalBackend) Init(config Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	screen.Clear()

	t.screen = screen
	t.running = true

	go t.handleInput()

	slog.Info("terminal backend initialized")
	return nil
}

func (t *TerminalBackend) Update(frame *video.Framebuffer) error {
	if !t.running {
		return nil
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			char := shadeChars[int(frame.Shade(x, y))/64]
			for i := 0; i < terminalScaleX; i++ {
				t.screen.SetContent(x*terminalScaleX+i, y*terminalScaleY, char, nil, style)
			}
		}
	}

	t.screen.Show()
	return nil
}

func (t *TerminalBackend) Cleanup() error {
	t.running = false
	if t.screen != nil {
		t.screen.Fini()
	}
	slog.Info("terminal backend finished")
	return nil
}

func (t *TerminalBackend) handleInput() {
	for t.running {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				t.running = false
				if t.config.OnQuit != nil {
					t.config.OnQuit()
				}
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}
