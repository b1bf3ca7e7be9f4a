//go:build !tinygo && cgo

package display

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window mirroring fb, each matrix pixel drawn as
// a scale×scale block. It must be called from the main goroutine and blocks
// until the window closes or ctx is done.
func RunWindow(ctx context.Context, fb *Framebuffer, title string, scale int) error {
	if scale <= 0 {
		scale = 8
	}
	w, h := fb.Size()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(w)*scale, int(h)*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(&window{ctx: ctx, fb: fb})
}

type window struct {
	ctx   context.Context
	fb    *Framebuffer
	img   *image.RGBA
	fbImg *ebiten.Image
	shown uint64
}

func (g *window) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (g *window) Draw(screen *ebiten.Image) {
	var frames uint64
	g.img, frames = g.fb.Snapshot(g.img)
	b := g.img.Bounds()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != b.Dx() || g.fbImg.Bounds().Dy() != b.Dy() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
		g.shown = 0
	}
	if frames != g.shown {
		g.fbImg.WritePixels(g.img.Pix)
		g.shown = frames
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.fb.Size()
	return int(w), int(h)
}
