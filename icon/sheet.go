package icon

import (
	"errors"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"
)

// Default tile dimensions of the weather icon spritesheet.
const (
	DefaultTileWidth  = 14 // px
	DefaultTileHeight = 14 // px
)

var ErrSheetSize = errors.New("spritesheet smaller than its tile grid")

// Sheet is a decoded spritesheet of equally-sized tiles, indexed left to right
// and top to bottom.
type Sheet struct {
	img    image.Image
	tw, th int
}

// NewSheet wraps an already-decoded image as a spritesheet with the given tile
// size. Zero tile dimensions select the defaults.
func NewSheet(img image.Image, tileWidth, tileHeight int) (*Sheet, error) {
	if tileWidth == 0 {
		tileWidth = DefaultTileWidth
	}
	if tileHeight == 0 {
		tileHeight = DefaultTileHeight
	}
	b := img.Bounds()
	if b.Dx() < Columns*tileWidth || b.Dy() < (Count/Columns)*tileHeight {
		return nil, ErrSheetSize
	}
	return &Sheet{img: img, tw: tileWidth, th: tileHeight}, nil
}

// DecodeSheet reads a BMP spritesheet from r.
func DecodeSheet(r io.Reader, tileWidth, tileHeight int) (*Sheet, error) {
	img, err := bmp.Decode(r)
	if nil != err {
		return nil, err
	}
	return NewSheet(img, tileWidth, tileHeight)
}

// TileSize returns the width and height of a single tile.
func (s *Sheet) TileSize() (w, h int) { return s.tw, s.th }

// Tile returns the sub-image holding the tile at index.
// Out-of-range indices return nil.
func (s *Sheet) Tile(index int) image.Image {
	b := s.img.Bounds()
	cols := b.Dx() / s.tw
	if index < 0 || cols == 0 {
		return nil
	}
	col, row := index%cols, index/cols
	if (row+1)*s.th > b.Dy() {
		return nil
	}
	rect := image.Rect(col*s.tw, row*s.th, (col+1)*s.tw, (row+1)*s.th).
		Add(b.Min)
	if sub, ok := s.img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}
	return &tile{src: s.img, rect: rect}
}

// tile is a windowed view of an image that does not implement SubImage.
type tile struct {
	src  image.Image
	rect image.Rectangle
}

func (t *tile) ColorModel() color.Model { return t.src.ColorModel() }
func (t *tile) Bounds() image.Rectangle { return t.rect }
func (t *tile) At(x, y int) color.Color { return t.src.At(x, y) }
