package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ardnew/weathermatrix/units"
)

const sample = `{
	"coord": {"lon": -122.42, "lat": 37.77},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10n"}],
	"main": {"temp": 57.6, "feels_like": 56.9, "humidity": 82},
	"name": "San Francisco"
}`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestURL(t *testing.T) {
	raw := URL("", "San Francisco, US", units.Metric, "secret")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	if got := u.Scheme + "://" + u.Host + u.Path; got != DefaultBaseURL {
		t.Fatalf("base %q", got)
	}
	q := u.Query()
	if q.Get("q") != "San Francisco, US" || q.Get("units") != "metric" || q.Get("appid") != "secret" {
		t.Fatalf("query %v", q)
	}
}

func TestFetch(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	f := NewFetcher(URL(srv.URL, "San Francisco, US", units.Imperial, "tok"), srv.Client())
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap != (Snapshot{Icon: "10n", Temperature: 57.6}) {
		t.Fatalf("snapshot %+v", snap)
	}
	if query.Get("units") != "imperial" {
		t.Fatalf("units %q", query.Get("units"))
	}
}

func TestFetchTransientFailures(t *testing.T) {
	cases := map[string]*httptest.Server{
		"status":       serve(t, http.StatusUnauthorized, `{"cod":401}`),
		"server error": serve(t, http.StatusBadGateway, ``),
		"malformed":    serve(t, http.StatusOK, `{"weather": [`),
		"no icon":      serve(t, http.StatusOK, `{"weather": [], "main": {"temp": 1}}`),
		"no temp":      serve(t, http.StatusOK, `{"weather": [{"icon": "01d"}], "main": {}}`),
		"string temp":  serve(t, http.StatusOK, `{"weather": [{"icon": "01d"}], "main": {"temp": "hot"}}`),
		"bad icon":     serve(t, http.StatusOK, `{"weather": [{"icon": "sunny"}], "main": {"temp": 1}}`),
	}
	for name, srv := range cases {
		snap, err := NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
		if !errors.Is(err, ErrTransient) {
			t.Fatalf("%s: err=%v want ErrTransient", name, err)
		}
		if snap != (Snapshot{}) {
			t.Fatalf("%s: partial snapshot %+v", name, snap)
		}
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := serve(t, http.StatusOK, sample)
	srv.Close()
	_, err := NewFetcher(srv.URL, nil).Fetch(context.Background())
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("err=%v want ErrTransient", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewFetcher(srv.URL, srv.Client()).Fetch(ctx)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("err=%v want ErrTransient", err)
	}
}

func TestBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := NewBreaker(srv.Client(), 2, time.Hour)
	f := NewFetcher(srv.URL, b)
	for i := 0; i < 4; i++ {
		if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrTransient) {
			t.Fatalf("attempt %d: err=%v want ErrTransient", i, err)
		}
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("server hit %d times, want 2", n)
	}
	if b.State() != "open" {
		t.Fatalf("breaker state %q", b.State())
	}
}

func TestBreakerPassesSuccess(t *testing.T) {
	srv := serve(t, http.StatusOK, sample)
	f := NewFetcher(srv.URL, NewBreaker(srv.Client(), 0, 0))
	if _, err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}
