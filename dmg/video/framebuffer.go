package video

// Screen dimensions in pixels.
const (
	FramebufferWidth  = 160
	FramebufferHeight = 144

	// 4 bytes per pixel, RGBA.
	FramebufferSize = FramebufferWidth * FramebufferHeight * 4
)

// Framebuffer is a single RGBA frame at screen resolution.
type Framebuffer struct {
	pixels []byte
}

// NewFramebuffer creates a framebuffer with every pixel black and opaque.
func NewFramebuffer() *Framebuffer {
	fb := &Framebuffer{pixels: make([]byte, FramebufferSize)}
	for i := 3; i < FramebufferSize; i += 4 {
		fb.pixels[i] = 0xFF
	}
	return fb
}

// SetShade writes a grayscale pixel, leaving it opaque.
func (fb *Framebuffer) SetShade(x, y int, shade byte) {
	offset := (y*FramebufferWidth + x) * 4
	fb.pixels[offset] = shade
	fb.pixels[offset+1] = shade
	fb.pixels[offset+2] = shade
	fb.pixels[offset+3] = 0xFF
}

// Shade returns the grayscale value of a pixel.
func (fb *Framebuffer) Shade(x, y int) byte {
	return fb.pixels[(y*FramebufferWidth+x)*4]
}

// ToSlice exposes the raw RGBA bytes, row-major.
func (fb *Framebuffer) ToSlice() []byte {
	return fb.pixels
}

// Copy returns a deep copy of the framebuffer.
func (fb *Framebuffer) Copy() *Framebuffer {
	clone := &Framebuffer{pixels: make([]byte, FramebufferSize)}
	copy(clone.pixels, fb.pixels)
	return clone
}
