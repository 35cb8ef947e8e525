package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTargetFPS(t *testing.T) {
	fps := TargetFPS()
	assert.InDelta(t, 59.7275, fps, 0.001)
}

func TestFrameDuration(t *testing.T) {
	d := FrameDuration()
	assert.InDelta(t, float64(16742706), float64(d), float64(time.Millisecond))
}

func TestNoOpLimiterDoesNotBlock(t *testing.T) {
	l := NewNoOpLimiter()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.WaitForNextFrame()
	}

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestTickerLimiterWaits(t *testing.T) {
	l := NewTickerLimiter()
	defer l.Stop()

	start := time.Now()
	l.WaitForNextFrame()

	assert.Less(t, time.Since(start), 2*FrameDuration())
}
