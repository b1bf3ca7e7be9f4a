// Package assets embeds the images and selects the fonts drawn on the matrix.
package assets

import (
	"bytes"
	_ "embed"
	"image"

	"golang.org/x/image/bmp"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/ardnew/weathermatrix/icon"
)

var (
	//go:embed loading.bmp
	loadingBMP []byte

	//go:embed weather-icons.bmp
	iconsBMP []byte
)

// Fonts for the clock and temperature labels.
var (
	ClockFont tinyfont.Fonter = &proggy.TinySZ8pt7b
	TempFont  tinyfont.Fonter = &tinyfont.TomThumb
)

// Loading decodes the boot screen shown until weather first arrives.
func Loading() (image.Image, error) {
	return bmp.Decode(bytes.NewReader(loadingBMP))
}

// Icons decodes the weather icon spritesheet.
func Icons() (*icon.Sheet, error) {
	return icon.DecodeSheet(bytes.NewReader(iconsBMP), icon.DefaultTileWidth, icon.DefaultTileHeight)
}
