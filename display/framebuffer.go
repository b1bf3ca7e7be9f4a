package display

import (
	"image"
	"image/color"
	"sync"
)

// Framebuffer is an in-memory drivers.Displayer. Pixels are drawn into a back
// buffer and become visible to readers only when Display is called, so a
// reader on another goroutine never observes a half-drawn frame.
type Framebuffer struct {
	mu     sync.Mutex
	back   *image.RGBA
	front  *image.RGBA
	frames uint64
}

// NewFramebuffer returns a black Framebuffer of the given size. Zero
// dimensions select the defaults.
func NewFramebuffer(width, height int) *Framebuffer {
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	r := image.Rect(0, 0, width, height)
	return &Framebuffer{back: image.NewRGBA(r), front: image.NewRGBA(r)}
}

func (f *Framebuffer) Size() (x, y int16) {
	b := f.back.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel draws into the back buffer. Only the drawing goroutine may call it.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.back.SetRGBA(int(x), int(y), c)
}

// Display publishes the back buffer as the current frame.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	copy(f.front.Pix, f.back.Pix)
	f.frames++
	f.mu.Unlock()
	return nil
}

// Snapshot copies the most recently published frame into dst, allocating it
// if nil or mis-sized, and returns it along with the number of frames
// published so far.
func (f *Framebuffer) Snapshot(dst *image.RGBA) (*image.RGBA, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dst == nil || dst.Bounds() != f.front.Bounds() {
		dst = image.NewRGBA(f.front.Bounds())
	}
	copy(dst.Pix, f.front.Pix)
	return dst, f.frames
}
