// Package clock formats the time of day for the matrix display and keeps the
// wall-clock reading that network time synchronization corrects.
package clock

import (
	"image/color"
	"strconv"
	"sync"
	"time"
)

// Colors used by the clock face.
var (
	Evening  = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	Daylight = color.RGBA{R: 0x85, G: 0xFF, B: 0x00, A: 0xFF}
	Neutral  = color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xFF}
)

// Reading is a snapshot of the local time of day.
type Reading struct {
	Hours   int // 0-23
	Minutes int // 0-59
	Seconds int // 0-59
}

// ReadingOf returns the Reading for t in t's location.
func ReadingOf(t time.Time) Reading {
	h, m, s := t.Clock()
	return Reading{Hours: h, Minutes: m, Seconds: s}
}

// Face is a formatted clock ready to be drawn.
type Face struct {
	Text  string
	Color color.RGBA
	// Period is the evening or daylight color selected by hour. It is not
	// what gets drawn; Color is always Neutral.
	Period color.RGBA
}

// Format converts r to 12-hour text with an AM/PM suffix.
//
// When blink is set, the colon is only drawn on even seconds, unless
// forceColon is set. Without blink the colon is always drawn.
func Format(r Reading, blink, forceColon bool) Face {
	var face Face
	if r.Hours >= 18 || r.Hours < 6 {
		face.Period = Evening
	} else {
		face.Period = Daylight
	}
	// FIXME: the evening/daylight color never reaches the display because it
	// is overridden here. Left as is until the gray face is confirmed intended.
	face.Color = Neutral

	hours, suffix := r.Hours, "AM"
	switch {
	case hours == 0:
		hours = 12
	case hours == 12:
		suffix = "PM"
	case hours > 12:
		hours -= 12
		suffix = "PM"
	}

	colon := ":"
	if blink && !forceColon && r.Seconds%2 != 0 {
		colon = " "
	}

	buf := make([]byte, 0, 7)
	buf = strconv.AppendInt(buf, int64(hours), 10)
	buf = append(buf, colon...)
	if r.Minutes < 10 {
		buf = append(buf, '0')
	}
	buf = strconv.AppendInt(buf, int64(r.Minutes), 10)
	buf = append(buf, suffix...)
	face.Text = string(buf)
	return face
}

// Source is a wall clock in a fixed zone whose offset from the local system
// clock can be corrected by time synchronization.
type Source struct {
	mu     sync.Mutex
	now    func() time.Time
	zone   *time.Location
	offset time.Duration
}

// NewSource returns a Source for the zone tzOffset seconds east of UTC.
// If now is nil, time.Now is used.
func NewSource(tzOffset int, now func() time.Time) *Source {
	if now == nil {
		now = time.Now
	}
	return &Source{
		now:  now,
		zone: time.FixedZone("localtime", tzOffset),
	}
}

// Now returns the corrected current time in the configured zone.
func (s *Source) Now() time.Time {
	s.mu.Lock()
	off := s.offset
	s.mu.Unlock()
	return s.now().Add(off).In(s.zone)
}

// Reading returns the Reading for the corrected current time.
func (s *Source) Reading() Reading { return ReadingOf(s.Now()) }

// Set corrects the clock so that Now reports t at this instant.
func (s *Source) Set(t time.Time) {
	s.mu.Lock()
	s.offset = t.Sub(s.now())
	s.mu.Unlock()
}
