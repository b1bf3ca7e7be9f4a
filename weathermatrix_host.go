//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/weathermatrix/assets"
	"github.com/ardnew/weathermatrix/clock"
	"github.com/ardnew/weathermatrix/config"
	"github.com/ardnew/weathermatrix/display"
	"github.com/ardnew/weathermatrix/model"
	"github.com/ardnew/weathermatrix/nvm"
	"github.com/ardnew/weathermatrix/run"
	"github.com/ardnew/weathermatrix/status"
	"github.com/ardnew/weathermatrix/units"
	"github.com/ardnew/weathermatrix/weather"
	"github.com/ardnew/weathermatrix/wifi/ntp"
)

// level is an emulated input pin.
type level bool

func (l level) Get() bool { return bool(l) }

func main() {
	log.SetPrefix("weathermatrix: ")
	log.SetFlags(log.LstdFlags)

	headless := flag.Bool("headless", false, "log the display instead of opening a window")
	jumper := flag.String("jumper", "", "emulate the units jumper: metric or imperial")
	button := flag.String("button", "", "emulate a button held at startup: up or down")
	scale := flag.Int("scale", 8, "window pixels per matrix pixel")
	flag.Parse()

	cfg, err := config.Load()
	if nil != err {
		log.Fatalf("error: %v", err)
	}
	if *jumper != "" {
		cfg.Jumper = *jumper
		if err := config.Validate(cfg); nil != err {
			log.Fatalf("error: %v", err)
		}
	}

	if err := serve(cfg, *headless, *button, *scale); nil != err {
		log.Fatalf("error: %v", err)
	}
}

func serve(cfg config.Config, headless bool, button string, scale int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	system := units.Select(inputs(cfg, button))

	var client weather.Doer = &http.Client{Timeout: cfg.FetchTimeout}
	if cfg.Breaker {
		client = weather.NewBreaker(client, cfg.BreakerTrip, cfg.BreakerCooldown)
	}
	fetcher := weather.NewFetcher(weather.URL(cfg.BaseURL, cfg.Location, system, cfg.Token), client)

	source := clock.NewSource(cfg.TZOffset, nil)
	host := ntp.New(source, ntp.Config{Server: cfg.NTPServers})

	fb := display.NewFramebuffer(display.DefaultWidth, display.DefaultHeight)
	screen := display.New(fb, artwork())

	c := run.New(run.Config{
		Interval:     cfg.Interval,
		Tick:         cfg.Tick,
		FetchTimeout: cfg.FetchTimeout,
		Blink:        cfg.Blink,
		Retry:        cfg.Retry(),
		Units:        system,
		Log:          log.Default(),
	}, fetcher, host, source, screen)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return run.Schedule(ctx, c) })

	app := status.New(c.State())
	g.Go(func() error {
		log.Println("info: status on " + cfg.StatusAddr)
		return app.Listen(cfg.StatusAddr)
	})
	g.Go(func() error {
		<-ctx.Done()
		return app.ShutdownWithTimeout(5 * time.Second)
	})

	if headless {
		g.Go(func() error { return watch(ctx, c.State()) })
	} else {
		// closing the window stops everything else
		err := display.RunWindow(ctx, fb, "weathermatrix", scale)
		stop()
		if nil != err {
			return err
		}
	}

	if err := g.Wait(); nil != err && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// inputs emulates the board's unit selection hardware.
func inputs(cfg config.Config, button string) units.Inputs {
	in := units.Inputs{Store: nvm.NewFile(cfg.NVMPath)}
	if cfg.Jumper != "" {
		in.Jumper = level(cfg.Jumper == units.Metric.String())
		return in
	}
	// buttons are active low
	in.Up, in.Down = level(button != "up"), level(button != "down")
	return in
}

func artwork() display.Config {
	config := display.Config{ClockFont: assets.ClockFont, TempFont: assets.TempFont}
	var err error
	if config.Loading, err = assets.Loading(); nil != err {
		log.Println("error: " + err.Error())
	}
	if config.Icons, err = assets.Icons(); nil != err {
		log.Println("error: " + err.Error())
	}
	return config
}

// watch logs each frame the controller publishes.
func watch(ctx context.Context, state *model.State) error {
	t := time.NewTicker(250 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if changed, m := state.Get(); changed {
				d := m.Display
				log.Printf("info: [%s] %s %s° icon=%s", d.Status, d.ClockText, d.TempText, m.IconCode)
			}
		}
	}
}
