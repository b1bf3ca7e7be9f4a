// Package display draws the clock and weather onto an RGB LED matrix panel.
package display

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/ardnew/weathermatrix/icon"
	"github.com/ardnew/weathermatrix/model"
)

// Default constants for Display configuration.
const (
	DefaultWidth      = 64 // px
	DefaultHeight     = 32 // px
	DefaultColorDepth = 4  // bits
)

// Layout of the live view.
const (
	clockBaseline = 11 // clock text is centered horizontally
	iconX, iconY  = 17, 16
	tempX         = 33
	tempBaseline  = 26
)

var black = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}

// Config selects the artwork drawn by a Display.
type Config struct {
	Loading   image.Image // full-screen boot image, may be nil
	Icons     *icon.Sheet // may be nil to never draw icons
	ClockFont tinyfont.Fonter
	TempFont  tinyfont.Fonter
}

// Display renders model.Display frames onto any drivers.Displayer, such as
// a HUB75 panel on the device or a Framebuffer on the host.
type Display struct {
	dev    drivers.Displayer
	config Config
}

// New returns a Display drawing onto dev.
func New(dev drivers.Displayer, config Config) *Display {
	if config.ClockFont == nil {
		config.ClockFont = &tinyfont.TomThumb
	}
	if config.TempFont == nil {
		config.TempFont = &tinyfont.TomThumb
	}
	return &Display{dev: dev, config: config}
}

// Update redraws the entire display from data and pushes it to the device.
//
// Redrawing everything avoids stale pixels in the background. This could be
// improved to only redraw the regions that changed, but a 64x32 frame is
// redrawn quickly enough with this much-simpler technique.
func (d *Display) Update(data model.Display) error {
	width, height := d.dev.Size()
	d.fillRect(0, 0, width, height, black)

	switch data.Status {
	case model.StatusLoading:
		if d.config.Loading != nil {
			d.blit(0, 0, d.config.Loading)
		}

	case model.StatusLive:
		if "" != data.ClockText {
			_, w := tinyfont.LineWidth(d.config.ClockFont, data.ClockText)
			x := (width - int16(w)) / 2
			tinyfont.WriteLine(d.dev, d.config.ClockFont, x, clockBaseline,
				data.ClockText, data.ClockColor)
		}
		if data.IconVisible && d.config.Icons != nil {
			if tile := d.config.Icons.Tile(data.Icon); nil != tile {
				d.blit(iconX, iconY, tile)
			}
		}
		if "" != data.TempText {
			tinyfont.WriteLine(d.dev, d.config.TempFont, tempX, tempBaseline,
				data.TempText, data.TempColor)
		}
	}

	return d.dev.Display()
}

// blit copies img onto the display with its top-left corner at (x, y),
// clipped to the screen bounds.
func (d *Display) blit(x, y int16, img image.Image) {
	b := img.Bounds()
	ok, cx, cy, cw, ch := d.clipRect(x, y, int16(b.Dx()), int16(b.Dy()))
	if !ok {
		return
	}
	for row := cy; row < cy+ch; row++ {
		for col := cx; col < cx+cw; col++ {
			c := color.RGBAModel.Convert(
				img.At(b.Min.X+int(col-x), b.Min.Y+int(row-y))).(color.RGBA)
			d.dev.SetPixel(col, row, c)
		}
	}
}

func (d *Display) clipRect(x, y, w, h int16) (bool, int16, int16, int16, int16) {
	// normalize width/height to be positive
	if w < 0 {
		x, w = x+w, -w // adjust x by w, change sign of w
	}
	if h < 0 {
		y, h = y+h, -h // adjust y by h, change sign of h
	}
	// ensure origin is within bounds
	sx, sy := d.dev.Size()
	if x < 0 {
		x, w = 0, w+x // clip x to origin, adjust w by x
	} else if x >= sx {
		return false, 0, 0, 0, 0 // beyond screen bounds
	}
	if y < 0 {
		y, h = 0, h+y // clip y to origin, adjust h by y
	} else if y >= sy {
		return false, 0, 0, 0, 0 // beyond screen bounds
	}
	// ensure rect bounds is within screen bounds
	if x+w > sx {
		w = sx - x // clip w to screen width
	}
	if y+h > sy {
		h = sy - y // clip h to screen height
	}
	return w > 0 && h > 0, x, y, w, h
}

func (d *Display) fillRect(x, y, w, h int16, c color.RGBA) {
	var ok bool
	if ok, x, y, w, h = d.clipRect(x, y, w, h); ok {
		for row := y; row < y+h; row++ {
			for col := x; col < x+w; col++ {
				d.dev.SetPixel(col, row, c)
			}
		}
	}
}
