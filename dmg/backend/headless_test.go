package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcerati/go-dmg/dmg/video"
)

func TestHeadlessQuitsAfterMaxFrames(t *testing.T) {
	quit := 0
	h := NewHeadlessBackend(3)
	require.NoError(t, h.Init(Config{OnQuit: func() { quit++ }}))

	frame := video.NewFramebuffer()
	for i := 0; i < 5; i++ {
		require.NoError(t, h.Update(frame))
	}

	assert.Equal(t, 5, h.FrameCount())
	assert.Equal(t, 3, quit)
	require.NoError(t, h.Cleanup())
}

func TestHeadlessRunsForeverWithoutLimit(t *testing.T) {
	quit := false
	h := NewHeadlessBackend(0)
	require.NoError(t, h.Init(Config{OnQuit: func() { quit = true }}))

	frame := video.NewFramebuffer()
	for i := 0; i < 100; i++ {
		require.NoError(t, h.Update(frame))
	}

	assert.False(t, quit)
}
