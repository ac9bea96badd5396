// Package anthost is the top-level façade over the codec, framed driver,
// channel configure sequencer, and router: re-exported types plus
// convenience constructors, mirroring the teacher's facade.go/
// constructors_host.go split (re-export aliases in one file, constructors
// in another) generalized from one fixed nRF24 link to the three
// supported ANT transports.
package anthost

import (
	"github.com/antcomm/anthost/antchannel"
	"github.com/antcomm/anthost/antdriver"
	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/antrouter"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// Re-exported types so a caller need only import this package for the
// common path.
type (
	Channel         = antchannel.Channel
	StaticConfig    = antchannel.StaticConfig
	Router          = antrouter.Router
	Driver          = antdriver.Driver
	Decoded         = antmsg.Decoded
	UARTConfig      = antdriver.UARTConfig
	USBConfig       = antdriver.USBConfig
	MetricsRegistry = antmetrics.Registry
)

// State is the channel configure-sequencer state, re-exported for callers
// that want to inspect antchannel.Channel.State() without importing
// antchannel directly.
type State = antchannel.State

// NewChannel constructs a channel at the given slot index with the given
// static configuration.
func NewChannel(index uint8, cfg StaticConfig) *Channel {
	return antchannel.New(index, cfg)
}

// NewRouter performs the router construction sequence against an
// already-open driver.
func NewRouter(driver Driver) (*Router, error) {
	return antrouter.New(driver)
}

// NewRouterWithMetrics is NewRouter with a Prometheus registry wired in
// from construction, observing even the capabilities-retry loop.
func NewRouterWithMetrics(driver Driver, metrics *MetricsRegistry) (*Router, error) {
	return antrouter.NewWithMetrics(driver, metrics)
}

// NewStubRouter builds a Router against an in-memory stub driver, for
// tests and examples that don't have real hardware attached — mirroring
// the teacher's NewTransmitter/NewReceiver-against-stub constructors in
// constructors_host.go.
func NewStubRouter(payloadCap int) (*Router, *antdriver.StubDriver, error) {
	stub := antdriver.NewStubDriver(payloadCap)
	r, err := antrouter.New(stub)
	if err != nil {
		return nil, nil, err
	}
	return r, stub, nil
}
