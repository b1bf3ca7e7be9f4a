package weather

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var errBadResult = errors.New("unexpected result type from circuit breaker")

// Breaker is a Doer that stops calling the service for a while after
// repeated failures. While open, every request fails immediately with
// ErrTransient, so a caller retrying every tick does not hammer the API.
type Breaker struct {
	next    Doer
	circuit *gobreaker.CircuitBreaker
}

// NewBreaker wraps next. The circuit opens after trip consecutive failures
// and stays open for cooldown.
func NewBreaker(next Doer, trip uint32, cooldown time.Duration) *Breaker {
	if trip == 0 {
		trip = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Breaker{
		next: next,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweather",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= trip
			},
		}),
	}
}

// State returns the circuit state name: "closed", "half-open" or "open".
func (b *Breaker) State() string { return b.circuit.State().String() }

func (b *Breaker) Do(req *http.Request) (*http.Response, error) {
	result, err := b.circuit.Execute(func() (interface{}, error) {
		resp, err := b.next.Do(req)
		if nil != err {
			return nil, err
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, fmt.Errorf("server status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if nil != err {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil, err
	}
	resp, ok := result.(*http.Response)
	if !ok {
		return nil, errBadResult
	}
	return resp, nil
}
