// Package network lists the access points and service credentials used by the
// device build, which has no environment to read them from. Set them at link
// time, e.g.:
//
//	tinygo flash -target=matrixportal-m4 -ldflags="\
//	  -X github.com/ardnew/weathermatrix/wifi/network.SSID=home \
//	  -X github.com/ardnew/weathermatrix/wifi/network.Pass=secret \
//	  -X github.com/ardnew/weathermatrix/wifi/network.Token=abc123" .
package network

import "strings"

// AP identifies an access point and its WPA passphrase.
type AP struct {
	SSID string
	Pass string
}

var (
	// SSID and Pass name the preferred access point. Several may be given as
	// comma-separated lists of equal length.
	SSID string
	Pass string
	// Token is the OpenWeatherMap API key.
	Token string
	// Location is "city, country code" as accepted by OpenWeatherMap.
	Location = "San Francisco, US"
)

// Network returns the access points in order of preference.
func Network() []AP {
	if SSID == "" {
		return nil
	}
	ssid := strings.Split(SSID, ",")
	pass := strings.Split(Pass, ",")
	aps := make([]AP, len(ssid))
	for i, s := range ssid {
		aps[i].SSID = strings.TrimSpace(s)
		if i < len(pass) {
			aps[i].Pass = pass[i]
		}
	}
	return aps
}
