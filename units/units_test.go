package units

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/ardnew/weathermatrix/nvm"
)

type level bool

func (l level) Get() bool { return bool(l) }

const (
	high     = level(true)
	low      = level(false)
	released = high
	pressed  = low
)

func quiet() *log.Logger { return log.New(&bytes.Buffer{}, "", 0) }

func TestSelectJumper(t *testing.T) {
	if got := Select(Inputs{Jumper: high, Log: quiet()}); got != Metric {
		t.Fatalf("jumper high: got %v", got)
	}
	if got := Select(Inputs{Jumper: low, Log: quiet()}); got != Imperial {
		t.Fatalf("jumper low: got %v", got)
	}
	// the jumper wins over buttons and never touches storage
	store := &nvm.Memory{}
	Select(Inputs{Jumper: high, Up: pressed, Down: released, Store: store, Log: quiet()})
	if b, _ := store.Load(); b != nvm.Erased {
		t.Fatalf("jumper wrote storage: %#x", b)
	}
}

func TestSelectNoInputs(t *testing.T) {
	if got := Select(Inputs{Log: quiet()}); got != Imperial {
		t.Fatalf("got %v want imperial", got)
	}
	// a single button is not a usable selector
	if got := Select(Inputs{Up: pressed, Log: quiet()}); got != Imperial {
		t.Fatalf("got %v want imperial", got)
	}
}

func TestSelectButtons(t *testing.T) {
	store := &nvm.Memory{}

	// nothing stored yet: erased flash reads as imperial
	if got := Select(Inputs{Up: released, Down: released, Store: store, Log: quiet()}); got != Imperial {
		t.Fatalf("erased: got %v", got)
	}
	if got := Select(Inputs{Up: pressed, Down: released, Store: store, Log: quiet()}); got != Metric {
		t.Fatalf("up pressed: got %v", got)
	}
	if b, _ := store.Load(); b != flagMetric {
		t.Fatalf("stored %#x want %#x", b, flagMetric)
	}
	// persisted across boots with no button held
	if got := Select(Inputs{Up: released, Down: released, Store: store, Log: quiet()}); got != Metric {
		t.Fatalf("next boot: got %v", got)
	}
	if got := Select(Inputs{Up: released, Down: pressed, Store: store, Log: quiet()}); got != Imperial {
		t.Fatalf("down pressed: got %v", got)
	}
	if b, _ := store.Load(); b != flagImperial {
		t.Fatalf("stored %#x want %#x", b, flagImperial)
	}
}

type brokenStore struct{}

func (brokenStore) Load() (byte, error) { return 0, errors.New("flash read failed") }
func (brokenStore) Save(byte) error     { return errors.New("flash write failed") }

func TestSelectStoreFailure(t *testing.T) {
	var buf bytes.Buffer
	got := Select(Inputs{Up: pressed, Down: released, Store: brokenStore{}, Log: log.New(&buf, "", 0)})
	if got != Imperial {
		t.Fatalf("got %v want imperial", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("flash read failed")) {
		t.Fatalf("read failure not logged: %q", buf.String())
	}
}

func TestParse(t *testing.T) {
	if s, ok := Parse("metric"); !ok || s != Metric {
		t.Fatalf("Parse(metric)=%v,%v", s, ok)
	}
	if s, ok := Parse("imperial"); !ok || s != Imperial || s.String() != "imperial" {
		t.Fatalf("Parse(imperial)=%v,%v", s, ok)
	}
	if _, ok := Parse("kelvin"); ok {
		t.Fatalf("Parse(kelvin) accepted")
	}
}
