// Package config defines the settings of the weather display.
package config

import (
	"time"

	"github.com/ardnew/weathermatrix/run"
	"github.com/ardnew/weathermatrix/weather"
	"github.com/ardnew/weathermatrix/wifi/ntp"
)

// Config holds every setting the display needs. Zero values are replaced by
// defaults where the consuming package defines one.
type Config struct {
	// Use cityname, country code where countrycode is ISO3166 format.
	// E.g. "New York, US" or "London, GB"
	Location string `validate:"required"`
	// Token is the OpenWeatherMap API key.
	Token   string `validate:"required"`
	BaseURL string `validate:"required,url"`

	Interval     time.Duration `validate:"gt=0"`
	Tick         time.Duration `validate:"gt=0,ltefield=Interval"`
	FetchTimeout time.Duration `validate:"gt=0"`
	Blink        bool

	// RetryMax bounds consecutive failed refreshes before giving up; zero
	// retries forever. RetryBackoff is the initial delay between attempts;
	// zero retries on the next tick.
	RetryMax     uint
	RetryBackoff time.Duration `validate:"gte=0"`
	// Breaker stops requests for BreakerCooldown after BreakerTrip
	// consecutive failures.
	Breaker         bool
	BreakerTrip     uint32        `validate:"required_if=Breaker true"`
	BreakerCooldown time.Duration `validate:"required_if=Breaker true"`

	TZOffset   int      `validate:"gte=-50400,lte=50400"` // seconds east of UTC
	NTPServers []string `validate:"dive,hostname|ip"`

	// host simulator only
	Jumper     string `validate:"omitempty,oneof=metric imperial"`
	NVMPath    string
	StatusAddr string
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Location:        "San Francisco, US",
		BaseURL:         weather.DefaultBaseURL,
		Interval:        run.DefaultInterval,
		Tick:            run.DefaultTick,
		FetchTimeout:    run.DefaultFetchTimeout,
		BreakerTrip:     5,
		BreakerCooldown: 2 * time.Minute,
		TZOffset:        -8 * 60 * 60,
		NTPServers:      ntp.DefaultServer,
		NVMPath:         "weathermatrix.nvm",
		StatusAddr:      ":8080",
	}
}

// Retry returns the retry policy described by the settings.
func (c Config) Retry() run.RetryPolicy {
	switch {
	case c.RetryBackoff > 0:
		return run.Backoff{Initial: c.RetryBackoff, Max: c.Interval, MaxRetries: c.RetryMax}
	case c.RetryMax > 0:
		return run.Limit(c.RetryMax)
	}
	return run.Forever
}
