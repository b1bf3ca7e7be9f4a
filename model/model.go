// Package model implements the display state shared between the refresh
// controller, which is its only writer, and any number of readers.
package model

import (
	"image/color"
	"sync"
	"time"
)

// Status represents which view the display should present.
type Status uint8

// Constants defining each possible display Status.
const (
	StatusLoading Status = iota // boot screen, no weather yet
	StatusLive                  // clock, icon and temperature
)

func (s Status) String() string {
	if s == StatusLive {
		return "live"
	}
	return "loading"
}

// Display is everything the display driver needs to draw one frame.
type Display struct {
	Status      Status
	ClockText   string
	ClockColor  color.RGBA
	TempText    string
	TempColor   color.RGBA
	Icon        int  // spritesheet index, valid only if IconVisible
	IconVisible bool // false hides the icon
}

// Model is the published state: the latest Display plus refresh bookkeeping.
type Model struct {
	Display     Display
	Units       string
	IconCode    string    // as reported by the weather service
	Temperature float64   // in Units
	LastFetch   time.Time // zero until the first successful refresh
	Retry       uint      // consecutive failed refresh attempts
	LastError   string
}

// State holds a Model and provides synchronized read+write access to it.
//
// The zero value is ready to use.
type State struct {
	lock    sync.Mutex
	data    Model
	changed bool
}

// Get safely returns the changed flag and a copy of the Model data (as it was
// defined when Get was called).
// The changed flag is automatically set false after reading, so Get should
// only be called by the consumer that redraws on change.
func (s *State) Get() (changed bool, data Model) {
	s.lock.Lock()
	changed, data = s.changed, s.data
	s.changed = false
	s.lock.Unlock()
	return
}

// Peek returns a copy of the Model data without touching the changed flag.
func (s *State) Peek() Model {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.data
}

// Set provides synchronized read+write access to the Model data via argument to
// the given closure.
// The changed flag is automatically set true after the closure has been called.
func (s *State) Set(set func(*Model)) {
	s.lock.Lock()
	set(&s.data)
	s.changed = true
	s.lock.Unlock()
}

// Mod provides synchronized read+write access to the Model data via argument to
// the given closure.
// The changed flag is unaffected by this method.
func (s *State) Mod(mod func(*Model)) {
	s.lock.Lock()
	mod(&s.data)
	s.lock.Unlock()
}
