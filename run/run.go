// Package run implements the refresh loop driving the display: a clock update
// every tick and a weather refresh, paired with a time sync, every interval.
package run

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/ardnew/weathermatrix/clock"
	"github.com/ardnew/weathermatrix/icon"
	"github.com/ardnew/weathermatrix/model"
	"github.com/ardnew/weathermatrix/units"
	"github.com/ardnew/weathermatrix/weather"
)

// Default constants for Controller configuration.
const (
	DefaultInterval     = 600 * time.Second
	DefaultTick         = time.Second
	DefaultFetchTimeout = 10 * time.Second
)

var ErrRetriesExhausted = errors.New("weather refresh retries exhausted")

// Fetcher retrieves the current weather. *weather.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context) (weather.Snapshot, error)
}

// Syncer synchronizes the wall clock with the network. *ntp.Client
// satisfies it.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Clock reads the time of day. *clock.Source satisfies it.
type Clock interface {
	Reading() clock.Reading
}

// Renderer draws a frame. *display.Display satisfies it.
type Renderer interface {
	Update(data model.Display) error
}

type Config struct {
	Interval     time.Duration // between successful weather refreshes
	Tick         time.Duration // between clock updates
	FetchTimeout time.Duration // bound on one weather request
	Blink        bool          // blink the clock colon every other second
	Retry        RetryPolicy   // after a failed refresh; nil retries forever
	Units        units.System
	Log          *log.Logger
	// Now reads the monotonic time used for scheduling. It is independent of
	// the wall clock, which time sync may step.
	Now func() time.Time
}

// Controller owns the refresh timer and the display state. It is not safe
// for concurrent use; readers observe its output through State.
type Controller struct {
	config  Config
	log     *log.Logger
	fetcher Fetcher
	syncer  Syncer
	clock   Clock
	screen  Renderer
	state   *model.State

	lastFetch time.Time // zero until the first successful refresh
	retryAt   time.Time
	failures  uint
	err       error

	display model.Display
	shown   model.Display
	drawn   bool
}

// New returns a Controller. syncer may be nil if the wall clock needs no
// synchronization.
func New(config Config, fetcher Fetcher, syncer Syncer, clk Clock, screen Renderer) *Controller {

	if config.Interval == 0 {
		config.Interval = DefaultInterval
	}
	if config.Tick == 0 {
		config.Tick = DefaultTick
	}
	if config.FetchTimeout == 0 {
		config.FetchTimeout = DefaultFetchTimeout
	}
	if config.Retry == nil {
		config.Retry = Forever
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	logger := config.Log
	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		config:  config,
		log:     logger,
		fetcher: fetcher,
		syncer:  syncer,
		clock:   clk,
		screen:  screen,
		state:   &model.State{},
	}
	c.state.Set(func(m *model.Model) {
		m.Units = config.Units.String()
	})
	return c
}

// State returns the published display state.
func (c *Controller) State() *model.State { return c.state }

// LastFetch returns the time of the last successful refresh, or the zero
// Time if there has been none.
func (c *Controller) LastFetch() time.Time { return c.lastFetch }

// Err returns ErrRetriesExhausted (wrapped) once the retry policy gives up.
func (c *Controller) Err() error { return c.err }

// Run calls Tick forever, waiting between ticks as Tick requests. It only
// returns when ctx is done or the retry policy gives up.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Println("info: units " + c.config.Units.String())
	for {
		if err := ctx.Err(); nil != err {
			return err
		}
		wait := c.Tick(ctx, c.config.Now())
		if nil != c.err {
			return c.err
		}
		if wait <= 0 {
			continue // retry right away
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Tick performs one iteration of the loop at time now and returns how long to
// wait before the next one.
//
// The weather request blocks the tick, so the clock pauses for as long as a
// refresh is in flight (at most FetchTimeout plus the time sync timeout).
func (c *Controller) Tick(ctx context.Context, now time.Time) time.Duration {
	wait := c.config.Tick
	if nil == c.err && c.due(now) {
		if err := c.refresh(ctx, now); nil != err {
			wait = c.failed(now, err)
		}
	}
	c.updateClock(false)
	c.render()
	return wait
}

// due reports whether a weather refresh should be attempted at now.
func (c *Controller) due(now time.Time) bool {
	if now.Before(c.retryAt) {
		return false
	}
	return c.lastFetch.IsZero() || now.Sub(c.lastFetch) > c.config.Interval
}

func (c *Controller) refresh(ctx context.Context, now time.Time) error {
	fctx, cancel := context.WithTimeout(ctx, c.config.FetchTimeout)
	snap, err := c.fetcher.Fetch(fctx)
	cancel()
	if nil != err {
		return err
	}

	temp := strconv.Itoa(int(snap.Temperature))
	c.log.Println("info: weather " + snap.Icon + " " + temp)
	index, ok := icon.Map(snap.Icon)
	if !ok {
		c.log.Println("info: no icon for " + snap.Icon)
	}
	c.display.Icon, c.display.IconVisible = index, ok
	c.display.TempText = temp
	c.display.TempColor = clock.Neutral

	// make sure a colon is displayed while synchronizing the clock
	c.updateClock(true)
	c.render()
	if nil != c.syncer {
		if err := c.syncer.Sync(ctx); nil != err {
			c.log.Println("error: " + err.Error())
		}
	}

	c.lastFetch, c.retryAt, c.failures = now, time.Time{}, 0
	c.display.Status = model.StatusLive
	c.state.Set(func(m *model.Model) {
		m.IconCode, m.Temperature = snap.Icon, snap.Temperature
		m.LastFetch = now
		m.Retry = 0
		m.LastError = ""
	})
	return nil
}

// failed records a failed refresh and returns how long to wait before the
// next tick.
func (c *Controller) failed(now time.Time, err error) time.Duration {
	c.failures++
	c.log.Println("error: " + err.Error() + ", retrying")
	c.state.Mod(func(m *model.Model) {
		m.Retry = c.failures
		m.LastError = err.Error()
	})
	delay, ok := c.config.Retry.Next(c.failures)
	if !ok {
		c.err = fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, c.failures, err)
		return 0
	}
	c.retryAt = now.Add(delay)
	if delay < c.config.Tick {
		return delay
	}
	return c.config.Tick
}

func (c *Controller) updateClock(forceColon bool) {
	face := clock.Format(c.clock.Reading(), c.config.Blink, forceColon)
	c.display.ClockText, c.display.ClockColor = face.Text, face.Color
}

// render pushes the display state to the screen if it changed since the last
// frame drawn.
func (c *Controller) render() {
	if c.drawn && c.display == c.shown {
		return
	}
	frame := c.display
	c.state.Set(func(m *model.Model) { m.Display = frame })
	if err := c.screen.Update(frame); nil != err {
		c.log.Println("error: " + err.Error())
		return
	}
	c.shown, c.drawn = frame, true
}
