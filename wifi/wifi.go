//go:build tinygo

// Package wifi implements an interface to the WiFi coprocessor.
package wifi

import (
	"errors"
	"time"

	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"

	"github.com/ardnew/weathermatrix/wifi/network"
)

var (
	ErrConnectToAP   = errors.New("failed to connect to access point")
	ErrNoAccessPoint = errors.New("no access point configured")
	ErrNotConnected  = errors.New("could not connect to any preferred access point")
)

// WiFi wraps the network link of the board's WiFi coprocessor.
type WiFi struct {
	link netlink.Netlinker
	ap   network.AP
}

// New probes the board for its WiFi coprocessor and registers it as the
// network device used by package net.
func New() *WiFi {
	link, _ := probe.Probe()
	return &WiFi{link: link}
}

// Connect establishes an AP connection using given SSID and passphrase.
// An error is returned if the AP could not be reached or an IP not obtained.
func (w *WiFi) Connect(ap network.AP) error {
	err := w.link.NetConnect(&netlink.ConnectParams{
		Ssid:           ap.SSID,
		Passphrase:     ap.Pass,
		ConnectTimeout: 10 * time.Second,
	})
	if nil != err {
		return errors.Join(ErrConnectToAP, err)
	}
	w.ap = ap
	return nil
}

// Join tries each access point in order and stops at the first that accepts
// the connection.
func (w *WiFi) Join(aps []network.AP) error {
	if len(aps) == 0 {
		return ErrNoAccessPoint
	}
	for _, ap := range aps {
		if err := w.Connect(ap); nil != err {
			println("error: " + ap.SSID + ": " + err.Error())
			continue
		}
		println("info: connected to " + ap.SSID)
		return nil
	}
	return ErrNotConnected
}

// AP returns the access point last connected.
func (w *WiFi) AP() network.AP { return w.ap }
