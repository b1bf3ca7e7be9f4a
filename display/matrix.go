//go:build tinygo && matrixportal_m4

package display

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/hub75"
)

// Matrix wraps the HUB75 device driver. The panel must be scanned out
// continuously, which Refresh does; Display is therefore a no-op and pixels
// set by the caller appear on the next scan.
type Matrix struct {
	hub hub75.Device
}

// NewMatrix returns a new Matrix using the default peripherals and GPIO pins.
// The SPI interface shifting pixel data into the panel is also initialized and
// configured for use.
func NewMatrix(config hub75.Config) (*Matrix, error) {

	// configure the SPI interface connected to the panel's data/clock lines
	if err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 16 * machine.MHz,
		SDO:       machine.HUB75_R1,
		SCK:       machine.HUB75_CLK,
	}); nil != err {
		return nil, err
	}

	// configure the display
	if 0 == config.Width {
		config.Width = DefaultWidth
	}
	if 0 == config.Height {
		config.Height = DefaultHeight
	}
	if 0 == config.ColorDepth {
		config.ColorDepth = DefaultColorDepth
	}
	hub := hub75.New(machine.SPI0, machine.HUB75_LAT, machine.HUB75_OE,
		machine.HUB75_ADDR_A, machine.HUB75_ADDR_B,
		machine.HUB75_ADDR_C, machine.HUB75_ADDR_D)
	hub.Configure(config)
	hub.ClearDisplay()

	return &Matrix{hub: hub}, nil
}

func (m *Matrix) Size() (x, y int16) { return m.hub.Size() }
func (m *Matrix) SetPixel(x, y int16, c color.RGBA) { m.hub.SetPixel(x, y, c) }
func (m *Matrix) Display() error { return nil }

// Refresh scans the panel out forever. Run it in its own goroutine.
func (m *Matrix) Refresh() {
	for {
		if err := m.hub.Display(); nil != err {
			println("error: " + err.Error())
			time.Sleep(time.Second)
		}
		time.Sleep(time.Millisecond)
	}
}
