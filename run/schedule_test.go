package run

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduleGivesUp(t *testing.T) {
	h := newHarness(Config{Retry: Limit(2)}, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Schedule(ctx, h.c); !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("Schedule err=%v want ErrRetriesExhausted", err)
	}
}

func TestScheduleStopsOnCancel(t *testing.T) {
	h := newHarness(Config{}, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	if err := Schedule(ctx, h.c); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Schedule err=%v", err)
	}
	if h.c.LastFetch().IsZero() {
		t.Fatalf("no refresh scheduled")
	}
}
