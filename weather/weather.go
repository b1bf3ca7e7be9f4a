// Package weather fetches current conditions from the OpenWeatherMap API.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/ardnew/weathermatrix/icon"
	"github.com/ardnew/weathermatrix/units"
)

// DefaultBaseURL is the OpenWeatherMap current-conditions endpoint.
const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"

// Paths of the consumed fields in the response document.
const (
	IconPath        = "weather.0.icon"
	TemperaturePath = "main.temp"
)

// maxBody bounds how much of a response is read.
const maxBody = 16 << 10

// ErrTransient is wrapped by every Fetch error. Nothing about the request
// needs to change for a later attempt to succeed.
var ErrTransient = errors.New("transient network error")

// Snapshot is the weather observed by one successful fetch.
type Snapshot struct {
	Icon        string
	Temperature float64
}

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// URL builds the request URL for location in the given unit system.
func URL(base, location string, system units.System, token string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	values := url.Values{}
	values.Set("q", location)
	values.Set("units", system.String())
	values.Set("appid", token)
	return base + "?" + values.Encode()
}

// Fetcher retrieves a Snapshot from a fixed URL.
type Fetcher struct {
	URL    string
	Client Doer
}

// NewFetcher returns a Fetcher for the given URL. A nil client selects
// http.DefaultClient.
func NewFetcher(rawURL string, client Doer) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{URL: rawURL, Client: client}
}

// Fetch performs exactly one request. Any failure, including a context
// deadline, is returned wrapping ErrTransient and no partial data.
func (f *Fetcher) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if nil != err {
		return Snapshot{}, transient("build request", err)
	}
	resp, err := f.Client.Do(req)
	if nil != err {
		return Snapshot{}, transient("request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Snapshot{}, fmt.Errorf("%w: unexpected status %d", ErrTransient, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if nil != err {
		return Snapshot{}, transient("read body", err)
	}
	return Parse(body)
}

// Parse extracts a Snapshot from a response document.
func Parse(body []byte) (Snapshot, error) {
	if !gjson.ValidBytes(body) {
		return Snapshot{}, fmt.Errorf("%w: malformed JSON", ErrTransient)
	}
	res := gjson.GetManyBytes(body, IconPath, TemperaturePath)
	code, temp := res[0], res[1]
	if code.Type != gjson.String {
		return Snapshot{}, fmt.Errorf("%w: missing %s", ErrTransient, IconPath)
	}
	if temp.Type != gjson.Number {
		return Snapshot{}, fmt.Errorf("%w: missing %s", ErrTransient, TemperaturePath)
	}
	if !icon.Valid(code.Str) {
		return Snapshot{}, fmt.Errorf("%w: malformed icon code %q", ErrTransient, code.Str)
	}
	return Snapshot{Icon: code.Str, Temperature: temp.Num}, nil
}

func transient(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransient, op, err)
}
