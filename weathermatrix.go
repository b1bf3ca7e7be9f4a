//go:build tinygo && matrixportal_m4

package main

import (
	"context"
	"machine"
	"net/http"
	"strconv"
	"time"

	"tinygo.org/x/drivers/hub75"

	"github.com/ardnew/weathermatrix/assets"
	"github.com/ardnew/weathermatrix/clock"
	"github.com/ardnew/weathermatrix/config"
	"github.com/ardnew/weathermatrix/display"
	"github.com/ardnew/weathermatrix/model"
	"github.com/ardnew/weathermatrix/nvm"
	"github.com/ardnew/weathermatrix/run"
	"github.com/ardnew/weathermatrix/units"
	"github.com/ardnew/weathermatrix/weather"
	"github.com/ardnew/weathermatrix/wifi"
	"github.com/ardnew/weathermatrix/wifi/network"
	"github.com/ardnew/weathermatrix/wifi/ntp"
)

// TZOffset is the local time zone in seconds east of UTC, set at link time
// like the variables of package network.
var TZOffset = "-28800"

func main() {
	// initialize the HUB75 display and show the loading screen
	matrix, err := display.NewMatrix(hub75.Config{})
	if nil != err {
		halt(err)
	}
	go matrix.Refresh()
	screen := display.New(matrix, artwork())
	if err := screen.Update(model.Display{}); nil != err {
		halt(err)
	}

	// select units before the network is up; the buttons are read only once
	system := units.Select(units.Inputs{
		Up:    input(machine.BUTTON_UP),
		Down:  input(machine.BUTTON_DOWN),
		Store: store(),
	})

	// initialize the network interface
	net := wifi.New()
	if err := net.Join(network.Network()); nil != err {
		halt(err)
	}

	cfg := config.Default()
	cfg.Location, cfg.Token, cfg.Blink = network.Location, network.Token, true
	if cfg.TZOffset, err = strconv.Atoi(TZOffset); nil != err {
		halt(err)
	}

	source := clock.NewSource(cfg.TZOffset, nil)
	host := ntp.New(source, ntp.Config{Server: cfg.NTPServers})
	if err := host.Sync(context.Background()); nil != err {
		println("error: " + err.Error())
	}

	fetcher := weather.NewFetcher(
		weather.URL(cfg.BaseURL, cfg.Location, system, cfg.Token),
		&http.Client{Timeout: cfg.FetchTimeout},
	)

	// enter refresh loop
	c := run.New(run.Config{
		Interval:     cfg.Interval,
		Tick:         cfg.Tick,
		FetchTimeout: cfg.FetchTimeout,
		Blink:        cfg.Blink,
		Retry:        cfg.Retry(),
		Units:        system,
	}, fetcher, host, source, screen)
	halt(c.Run(context.Background()))
}

func artwork() display.Config {
	config := display.Config{ClockFont: assets.ClockFont, TempFont: assets.TempFont}
	var err error
	if config.Loading, err = assets.Loading(); nil != err {
		println("error: " + err.Error())
	}
	if config.Icons, err = assets.Icons(); nil != err {
		println("error: " + err.Error())
	}
	return config
}

func input(pin machine.Pin) units.Pin {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return pin
}

func store() nvm.Store {
	flash, err := nvm.NewFlash()
	if nil != err {
		println("error: " + err.Error())
		return &nvm.Memory{}
	}
	return flash
}

func halt(err error) {
	for {
		println("error: " + err.Error())
		time.Sleep(time.Second)
	}
}
