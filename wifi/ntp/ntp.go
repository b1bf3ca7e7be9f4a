// Package ntp synchronizes a clock.Source with an NTP server.
package ntp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ardnew/weathermatrix/clock"
)

var DefaultServer = []string{"us.pool.ntp.org", "time.google.com"}

const (
	DefaultRemotePort = 123
	DefaultTimeout    = 2 * time.Second
	DefaultLeapSmear  = false // ** only if using Google NTP (time.google.com) **
)

var (
	ErrTimeSync         = errors.New("time synchronization failed")
	ErrReadDatagramSize = errors.New("received unexpected NTP datagram size")
	ErrReadNoTime       = errors.New("NTP reply carries no transmit time")
)

type Config struct {
	Server     []string
	RemotePort int
	Timeout    time.Duration // bound on one request/reply exchange
	LeapSmear  bool          // https://developers.google.com/time/faq#libit
}

// Client queries NTP servers and corrects a clock.Source with the reply.
// Servers are tried in rotation: each failure advances to the next one.
type Client struct {
	config   Config
	clock    *clock.Source
	dial     func(ctx context.Context, network, address string) (net.Conn, error)
	next     int
	datagram datagram
}

const datagramSize = 48

type datagram []uint8

func New(source *clock.Source, config Config) *Client {

	if len(config.Server) == 0 {
		config.Server = DefaultServer
		config.LeapSmear = DefaultLeapSmear
	}
	if config.RemotePort == 0 {
		config.RemotePort = DefaultRemotePort
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	var d net.Dialer
	return &Client{
		config:   config,
		clock:    source,
		dial:     d.DialContext,
		datagram: make(datagram, datagramSize),
	}
}

// Sync performs one request/reply exchange with the current server and sets
// the clock from the reply. Errors wrap ErrTimeSync.
func (c *Client) Sync(ctx context.Context) error {
	server := c.config.Server[c.next%len(c.config.Server)]
	now, err := c.query(ctx, server)
	if nil != err {
		c.next++
		return fmt.Errorf("%w: %s: %v", ErrTimeSync, server, err)
	}
	c.clock.Set(now)
	return nil
}

func (c *Client) query(ctx context.Context, server string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	addr := net.JoinHostPort(server, strconv.Itoa(c.config.RemotePort))
	conn, err := c.dial(ctx, "udp", addr)
	if nil != err {
		return time.Time{}, err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		// ignored by network stacks without deadline support
		_ = conn.SetDeadline(deadline)
	}
	return c.request(conn)
}

func (c *Client) request(conn net.Conn) (time.Time, error) {
	if err := c.write(conn); nil != err {
		return time.Time{}, err
	}
	if err := c.read(conn); nil != err {
		return time.Time{}, err
	}
	t := c.datagram.parse()
	if t.IsZero() {
		return time.Time{}, ErrReadNoTime
	}
	return t, nil
}

func (c *Client) write(conn net.Conn) error {
	// clear the datagram buffer
	c.datagram.reset()
	// populate datagram buffer with an NTP request
	c.datagram[0] = 0b11100011 // LI, Version, Mode
	if !c.config.LeapSmear {
		// set LI to alarm (clock not sync'd) if server does not leap smear:
		c.datagram[0] |= 0b00000011
	}
	c.datagram[1] = 0    // Stratum, or type of clock
	c.datagram[2] = 6    // Polling Interval
	c.datagram[3] = 0xEC // Peer Clock Precision
	// 8 bytes of zero for Root Delay & Root Dispersion
	c.datagram[12] = 49
	c.datagram[13] = 0x4E
	c.datagram[14] = 49
	c.datagram[15] = 52
	_, err := conn.Write(c.datagram)
	return err
}

func (c *Client) read(conn net.Conn) error {
	c.datagram.reset()
	n, err := conn.Read(c.datagram)
	if nil != err {
		return err
	}
	if n != datagramSize {
		return ErrReadDatagramSize
	}
	return nil
}

func (d datagram) reset() {
	for i := range d {
		d[i] = 0 // zeroize the buffer
	}
}

// parse returns the transmit timestamp of a reply, or the zero Time if the
// server left it empty.
func (d datagram) parse() time.Time {
	const seventyYears = 2208988800
	t := uint32(d[40])<<24 | uint32(d[41])<<16 | uint32(d[42])<<8 | uint32(d[43])
	if t == 0 {
		return time.Time{}
	}
	return time.Unix(int64(t)-seventyYears, 0)
}
