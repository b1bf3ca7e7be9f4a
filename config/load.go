//go:build !tinygo

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Load reads a .env file if present, then the environment, on top of
// Default, and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("info: no .env file found or error loading it: %v", err)
	}
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	return cfg, Validate(cfg)
}

// FromEnv overrides Default with the variables returned by getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var err error

	cfg.Location = getenvDefault(getenv, "WEATHER_LOCATION", cfg.Location)
	cfg.Token = getenv("OPENWEATHER_API_KEY")
	cfg.BaseURL = getenvDefault(getenv, "WEATHER_URL", cfg.BaseURL)

	if cfg.Interval, err = getenvDuration(getenv, "REFRESH_INTERVAL", cfg.Interval); err != nil {
		return Config{}, err
	}
	if cfg.Tick, err = getenvDuration(getenv, "TICK_INTERVAL", cfg.Tick); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout, err = getenvDuration(getenv, "FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RetryBackoff, err = getenvDuration(getenv, "RETRY_BACKOFF", cfg.RetryBackoff); err != nil {
		return Config{}, err
	}
	if cfg.BreakerCooldown, err = getenvDuration(getenv, "BREAKER_COOLDOWN", cfg.BreakerCooldown); err != nil {
		return Config{}, err
	}
	cfg.RetryMax = uint(getenvInt(getenv, "RETRY_MAX", int(cfg.RetryMax)))
	cfg.BreakerTrip = uint32(getenvInt(getenv, "BREAKER_TRIP", int(cfg.BreakerTrip)))
	cfg.Breaker = getenvBool(getenv, "BREAKER", cfg.Breaker)
	cfg.Blink = getenvBool(getenv, "CLOCK_BLINK", cfg.Blink)
	cfg.TZOffset = getenvInt(getenv, "TZ_OFFSET", cfg.TZOffset)

	if v := getenv("NTP_SERVERS"); v != "" {
		cfg.NTPServers = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.NTPServers = append(cfg.NTPServers, s)
			}
		}
	}

	cfg.Jumper = getenv("UNITS_JUMPER")
	cfg.NVMPath = getenvDefault(getenv, "NVM_PATH", cfg.NVMPath)
	cfg.StatusAddr = getenvDefault(getenv, "STATUS_ADDR", cfg.StatusAddr)
	return cfg, nil
}

// Validate checks cfg against its struct constraints.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(getenv func(string) string, key string, def int) int {
	if v := getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(getenv func(string) string, key string, def bool) bool {
	if v := getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
