package backend

import (
	"log/slog"

	"github.com/lcerati/go-dmg/dmg/video"
)

// HeadlessBackend discards frames, counting them so batch runs can stop
// after a fixed number.
type HeadlessBackend struct {
	config     Config
	frameCount int
	maxFrames  int
}

// NewHeadlessBackend returns a backend that quits after maxFrames frames.
// A zero or negative maxFrames runs forever.
func NewHeadlessBackend(maxFrames int) *HeadlessBackend {
	return &HeadlessBackend{maxFrames: maxFrames}
}

func (h *HeadlessBackend) Init(config Config) error {
	h.config = config
	slog.Info("running headless", "frames", h.maxFrames)
	return nil
}

func (h *HeadlessBackend) Update(frame *video.Framebuffer) error {
	h.frameCount++

	if h.frameCount%60 == 0 {
		slog.Info("frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		if h.config.OnQuit != nil {
			h.config.OnQuit()
		}
	}
	return nil
}

func (h *HeadlessBackend) Cleanup() error {
	slog.Info("headless run finished", "frames", h.frameCount)
	return nil
}

// FrameCount returns how many frames have been presented.
func (h *HeadlessBackend) FrameCount() int {
	return h.frameCount
}
