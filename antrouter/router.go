// Package antrouter implements the router (C5): a fixed-size channel
// table multiplexing one radio across logical channels. Grounded on
// original_source/plus/router.rs's construction sequence and
// drain-then-visit process() shape — there is no router equivalent
// anywhere in the teacher, so this is new code written in the teacher's
// idiom: one owned antdriver.Driver (mirroring transport.Transmitter/
// Receiver's driver RadioDriver ownership), bracketed log.Printf tags, and
// plain error types/vars instead of exceptions.
package antrouter

import (
	"log"

	"github.com/antcomm/anthost/antchannel"
	"github.com/antcomm/anthost/antdriver"
	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// MaxChannels is the size of the router's fixed channel-slot array,
// matching original_source/plus/router.rs's compile-time channel table.
const MaxChannels = 15

// capabilitiesRetries bounds the construction-time capabilities poll.
const capabilitiesRetries = 25

// Router owns the driver exclusively and multiplexes it across a fixed
// array of channel slots (spec.md §4.5).
type Router struct {
	driver antdriver.Driver
	slots  [MaxChannels]*antchannel.Channel

	maxChannelsReported uint8
	serialNumber        *uint32
	antVersion          []byte

	observer func(antmsg.Inbound)
	metrics  *antmetrics.Registry
}

// SetMetrics installs an optional Registry; nil (the default) disables
// metrics entirely. Safe to call at any time, including before New's
// capabilities poll has finished retrying.
func (r *Router) SetMetrics(m *antmetrics.Registry) { r.metrics = m }

// New performs the router construction sequence: ResetSystem, drain,
// RequestMessage(Capabilities), then pumps the decoder up to
// capabilitiesRetries times waiting for the Capabilities response.
func New(driver antdriver.Driver) (*Router, error) {
	return NewWithMetrics(driver, nil)
}

// NewWithMetrics is New with an optional Registry wired in from
// construction, so even the capabilities-retry loop inside New is
// observed. Pass nil for the same behavior as New.
func NewWithMetrics(driver antdriver.Driver, metrics *antmetrics.Registry) (*Router, error) {
	r := &Router{driver: driver, maxChannelsReported: MaxChannels, metrics: metrics}

	if err := r.driver.SendMessage(antmsg.ResetSystem()); err != nil {
		return nil, err
	}
	for {
		decoded, err := r.driver.GetNextMessage()
		if err != nil {
			continue // framing error while draining; the driver self-heals
		}
		if decoded == nil {
			break
		}
	}

	if err := r.driver.SendMessage(antmsg.NewRequestMessage(0, antmsg.RequestCapabilities)); err != nil {
		return nil, err
	}
	for attempt := 0; attempt < capabilitiesRetries; attempt++ {
		r.metrics.IncCapabilitiesRetry()
		decoded, err := r.driver.GetNextMessage()
		if err != nil {
			continue
		}
		if decoded == nil {
			continue
		}
		if caps, ok := decoded.Message.(*antmsg.CapabilitiesMessage); ok {
			r.maxChannelsReported = caps.MaxANTChannels
			log.Printf("[router] capabilities: max_ant_channels=%d", caps.MaxANTChannels)
			return r, nil
		}
	}
	return nil, &FailedToGetCapabilitiesError{Retries: capabilitiesRetries}
}

// MaxChannelsReported is the channel count the radio reported at
// construction (or on a later Capabilities broadcast).
func (r *Router) MaxChannelsReported() uint8 { return r.maxChannelsReported }

// AntVersion returns the last router-scope AntVersion response seen, or
// nil if none has arrived yet.
func (r *Router) AntVersion() []byte { return r.antVersion }

// SerialNumber returns the last router-scope SerialNumber response seen,
// or nil if none has arrived yet.
func (r *Router) SerialNumber() *uint32 { return r.serialNumber }

// SetObserver installs a hook that sees every decoded inbound message
// before dispatch (spec.md §4.5).
func (r *Router) SetObserver(fn func(antmsg.Inbound)) { r.observer = fn }

// Send issues a message directly, bypassing channel queuing.
func (r *Router) Send(msg antmsg.Outbound) error { return r.driver.SendMessage(msg) }

// AddChannel assigns ch to the lowest-index empty slot and returns its
// index.
func (r *Router) AddChannel(ch *antchannel.Channel) (int, error) {
	for i := range r.slots {
		if r.slots[i] == nil {
			r.slots[i] = ch
			return i, nil
		}
	}
	return 0, &OutOfChannelsError{}
}

// AddChannelAtIndex assigns ch to slot i.
func (r *Router) AddChannelAtIndex(ch *antchannel.Channel, i int) error {
	if i < 0 || i >= int(r.maxChannelsReported) {
		return &ChannelOutOfBoundsError{Index: i, Max: int(r.maxChannelsReported)}
	}
	if i >= len(r.slots) {
		return &ChannelOutOfBoundsError{Index: i, Max: len(r.slots)}
	}
	if r.slots[i] != nil {
		return &ChannelAlreadyAssignedError{Index: i}
	}
	r.slots[i] = ch
	return nil
}

// RemoveChannel emits CloseChannel(i) then UnAssignChannel(i) on the wire
// and frees the slot.
func (r *Router) RemoveChannel(i int) error {
	if i < 0 || i >= len(r.slots) || r.slots[i] == nil {
		return &ChannelNotAssociatedError{Index: i}
	}
	if err := r.driver.SendMessage(antmsg.CloseChannel(uint8(i))); err != nil {
		return err
	}
	if err := r.driver.SendMessage(antmsg.UnAssignChannel(uint8(i))); err != nil {
		return err
	}
	r.slots[i] = nil
	return nil
}

// Process drains all inbound messages currently buffered, dispatching
// each before visiting every occupied slot once in index order to advance
// its configure sequencer and flush any queued outbound messages (spec.md
// §4.5/§5).
func (r *Router) Process() error {
	for {
		decoded, err := r.driver.GetNextMessage()
		if err != nil {
			log.Printf("[router] frame error: %v", err)
			continue
		}
		if decoded == nil {
			break
		}
		r.dispatch(decoded)
	}

	for _, ch := range r.slots {
		if ch == nil {
			continue
		}
		ch.Advance()
		for _, out := range ch.Pending() {
			if err := r.driver.SendMessage(out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Router) dispatch(decoded *antmsg.Decoded) {
	if r.observer != nil {
		r.observer(decoded.Message)
	}

	switch m := decoded.Message.(type) {
	case *antmsg.CapabilitiesMessage:
		r.maxChannelsReported = m.MaxANTChannels
		r.broadcast(decoded.Message)
	case *antmsg.StartUpMessage, *antmsg.AdvancedBurstCapabilitiesMessage,
		*antmsg.AdvancedBurstCurrentConfigurationMessage, *antmsg.EncryptionModeParametersMessage:
		r.broadcast(decoded.Message)
	case *antmsg.AntVersionMessage:
		r.antVersion = m.Version
	case *antmsg.SerialNumberMessage:
		sn := m.SerialNumber
		r.serialNumber = &sn
	case *antmsg.SerialErrorMessage, *antmsg.EventFilterMessage,
		*antmsg.EventBufferConfigurationMessage, *antmsg.SelectiveDataUpdateMaskSettingMessage,
		*antmsg.UserNvmMessage:
		// router-scope only; not forwarded (spec.md §4.5).
	case antmsg.ChannelScoped:
		r.dispatchChannelScoped(m)
	default:
		log.Printf("[router] unhandled inbound message id 0x%02X", decoded.MessageID)
	}
}

func (r *Router) dispatchChannelScoped(m antmsg.ChannelScoped) {
	i := int(m.ChannelNumber())
	if i < 0 || i >= len(r.slots) || r.slots[i] == nil {
		log.Printf("[router] channel-scoped message for unassociated slot %d", i)
		return
	}
	if cfgErr := r.slots[i].Step(m); cfgErr != nil {
		log.Printf("[router] channel %d: %v", i, cfgErr)
	}
}

func (r *Router) broadcast(m antmsg.Inbound) {
	for _, ch := range r.slots {
		if ch != nil {
			ch.Step(m)
		}
	}
}
