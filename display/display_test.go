package display

import (
	"image"
	"image/color"
	"testing"

	"github.com/ardnew/weathermatrix/clock"
	"github.com/ardnew/weathermatrix/icon"
	"github.com/ardnew/weathermatrix/model"
)

var (
	red  = color.RGBA{R: 0xFF, A: 0xFF}
	blue = color.RGBA{B: 0xFF, A: 0xFF}
)

func testSheet(t *testing.T, index int, c color.RGBA) *icon.Sheet {
	t.Helper()
	tw, th := icon.DefaultTileWidth, icon.DefaultTileHeight
	img := image.NewRGBA(image.Rect(0, 0, icon.Columns*tw, icon.Count/icon.Columns*th))
	col, row := index%icon.Columns, index/icon.Columns
	for y := row * th; y < (row+1)*th; y++ {
		for x := col * tw; x < (col+1)*tw; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	s, err := icon.NewSheet(img, tw, th)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	return s
}

func count(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestUpdateLoading(t *testing.T) {
	loading := image.NewRGBA(image.Rect(0, 0, DefaultWidth, DefaultHeight))
	loading.SetRGBA(5, 7, red)

	fb := NewFramebuffer(0, 0)
	d := New(fb, Config{Loading: loading})
	if err := d.Update(model.Display{Status: model.StatusLoading, ClockText: "1:00PM"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	img, frames := fb.Snapshot(nil)
	if frames != 1 {
		t.Fatalf("frames=%d want 1", frames)
	}
	if got := img.RGBAAt(5, 7); got != red {
		t.Fatalf("loading pixel %v want %v", got, red)
	}
	if n := count(img, img.Bounds(), clock.Neutral); n != 0 {
		t.Fatalf("clock drawn on loading screen (%d px)", n)
	}
}

func TestUpdateLive(t *testing.T) {
	fb := NewFramebuffer(0, 0)
	d := New(fb, Config{Icons: testSheet(t, 11, blue)})

	frame := model.Display{
		Status:      model.StatusLive,
		ClockText:   "12:05AM",
		ClockColor:  clock.Neutral,
		TempText:    "57",
		TempColor:   clock.Neutral,
		Icon:        11,
		IconVisible: true,
	}
	if err := d.Update(frame); err != nil {
		t.Fatalf("Update: %v", err)
	}
	img, _ := fb.Snapshot(nil)

	if n := count(img, image.Rect(0, 0, DefaultWidth, clockBaseline+3), clock.Neutral); n == 0 {
		t.Fatalf("clock text not drawn")
	}
	tile := image.Rect(iconX, iconY, iconX+icon.DefaultTileWidth, iconY+icon.DefaultTileHeight)
	if n := count(img, tile, blue); n != tile.Dx()*tile.Dy() {
		t.Fatalf("icon covers %d px want %d", n, tile.Dx()*tile.Dy())
	}
	if n := count(img, image.Rect(tempX, tempBaseline-8, DefaultWidth, DefaultHeight), clock.Neutral); n == 0 {
		t.Fatalf("temperature not drawn")
	}

	// hiding the icon clears it on the next frame
	frame.IconVisible = false
	if err := d.Update(frame); err != nil {
		t.Fatalf("Update: %v", err)
	}
	img, frames := fb.Snapshot(img)
	if n := count(img, tile, blue); n != 0 {
		t.Fatalf("hidden icon still drawn (%d px)", n)
	}
	if frames != 2 {
		t.Fatalf("frames=%d want 2", frames)
	}
}

func TestClockCentered(t *testing.T) {
	fb := NewFramebuffer(0, 0)
	d := New(fb, Config{})
	if err := d.Update(model.Display{Status: model.StatusLive, ClockText: "1:00PM", ClockColor: red}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	img, _ := fb.Snapshot(nil)
	left, right := DefaultWidth, -1
	for y := 0; y < DefaultHeight; y++ {
		for x := 0; x < DefaultWidth; x++ {
			if img.RGBAAt(x, y) == red {
				left, right = min(left, x), max(right, x)
			}
		}
	}
	if right < 0 {
		t.Fatalf("clock not drawn")
	}
	margin := left - (DefaultWidth - 1 - right)
	if margin < -3 || margin > 3 {
		t.Fatalf("clock not centered: left=%d right=%d", left, right)
	}
}

func TestClipRect(t *testing.T) {
	d := New(NewFramebuffer(0, 0), Config{})
	cases := []struct {
		x, y, w, h int16
		ok         bool
		want       [4]int16
	}{
		{0, 0, 64, 32, true, [4]int16{0, 0, 64, 32}},
		{-4, -2, 10, 10, true, [4]int16{0, 0, 6, 8}},
		{60, 30, 10, 10, true, [4]int16{60, 30, 4, 2}},
		{64, 0, 1, 1, false, [4]int16{}},
		{10, 10, -5, -5, true, [4]int16{5, 5, 5, 5}},
	}
	for _, c := range cases {
		ok, x, y, w, h := d.clipRect(c.x, c.y, c.w, c.h)
		if ok != c.ok || (ok && [4]int16{x, y, w, h} != c.want) {
			t.Fatalf("clipRect(%d,%d,%d,%d)=%v,%d,%d,%d,%d", c.x, c.y, c.w, c.h, ok, x, y, w, h)
		}
	}
}
