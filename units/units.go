// Package units selects the measurement system from the board's inputs.
package units

import (
	"log"

	"github.com/ardnew/weathermatrix/nvm"
)

// System is a measurement system understood by the weather service.
type System uint8

// Constants defining each supported System.
const (
	Imperial System = iota
	Metric
)

func (s System) String() string {
	if s == Metric {
		return "metric"
	}
	return "imperial"
}

// Parse returns the System named by s ("metric" or "imperial").
func Parse(s string) (System, bool) {
	switch s {
	case "metric":
		return Metric, true
	case "imperial":
		return Imperial, true
	}
	return Imperial, false
}

// Pin is a digital input. Inputs are pulled up, so an open jumper or a
// released button reads high.
type Pin interface {
	Get() bool
}

// Inputs describes the hardware available for unit selection. Leave Jumper
// nil when the board has no jumper, and Up/Down nil when it has no buttons.
type Inputs struct {
	Jumper   Pin
	Up, Down Pin
	Store    nvm.Store
	Log      *log.Logger
}

// Flag values persisted by the buttons.
const (
	flagMetric   byte = 0
	flagImperial byte = 1
)

// Select resolves the measurement system once at startup.
//
// A jumper selects directly (high is metric). Otherwise, if both buttons
// exist, pressing down persists imperial and pressing up persists metric, and
// the persisted flag decides. Boards with neither default to imperial.
func Select(in Inputs) System {
	logger := in.Log
	if logger == nil {
		logger = log.Default()
	}

	if in.Jumper != nil {
		if in.Jumper.Get() {
			logger.Println("info: jumper set to metric")
			return Metric
		}
		logger.Println("info: jumper set to imperial")
		return Imperial
	}

	if in.Up == nil || in.Down == nil {
		return Imperial
	}

	store := in.Store
	if store == nil {
		store = &nvm.Memory{}
	}
	// buttons are active low
	switch {
	case !in.Down.Get():
		logger.Println("info: down button pressed")
		if err := store.Save(flagImperial); nil != err {
			logger.Println("error: " + err.Error())
		}
	case !in.Up.Get():
		logger.Println("info: up button pressed")
		if err := store.Save(flagMetric); nil != err {
			logger.Println("error: " + err.Error())
		}
	}

	flag, err := store.Load()
	if nil != err {
		logger.Println("error: " + err.Error())
		flag = nvm.Erased
	}
	if flag == flagMetric {
		return Metric
	}
	return Imperial
}
