// Package backend holds the host-side frame presenters: a terminal
// renderer, an SDL2 window and a headless sink for batch runs.
package backend

import "github.com/lcerati/go-dmg/dmg/video"

// Backend presents frames to the host platform.
type Backend interface {
	// Init configures the backend. Required before calling Update.
	Init(config Config) error

	// Update presents one frame and processes platform events.
	Update(frame *video.Framebuffer) error

	// Cleanup releases platform resources on shutdown.
	Cleanup() error
}

// Config holds backend configuration.
type Config struct {
	Title string
	Scale int

	// OnQuit is invoked when the backend requests shutdown, e.g. on a
	// window close or an escape key.
	OnQuit func()
}
