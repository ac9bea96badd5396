// Package antchannel implements the per-channel configure state machine
// (C4): the sequencer that owns the order in which configuration messages
// are issued to the radio and interprets the radio's responses. Grounded
// on original_source/plus/msg_handler.rs's state walk, restructured from
// the teacher's goroutine-driven Receiver.Listen/ProcessFrame pair
// (transport/receiver.go) into a synchronous Step/Pending pair a router
// drives directly — no goroutines, no mutex, matching spec.md §5's
// single-threaded cooperative core.
package antchannel

import (
	"log"

	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// Channel is one logical connection between the host and a peer
// transceiver, identified by its slot index in the router's channel
// table.
type Channel struct {
	index uint8
	cfg   StaticConfig

	state      State
	awaitingID byte // MessageID of the in-flight configure message, 0 if none

	identifyRequested bool // RequestMessage(ChannelId) already queued for this Identify pass

	deviceNumber     uint16
	deviceType       uint8
	transmissionType uint8

	txReady bool
	outbox  []antmsg.Outbound

	status antmsg.ChannelState // last reported ChannelStatus, for pairing-bit gating

	lastErr *ConfigureError

	rxObserver func(antmsg.Inbound)
	metrics    *antmetrics.Registry
}

// New constructs a Channel at the given slot index with the given static
// configuration, in StateUnknownClose with tx-ready true (spec.md §4.4's
// reset_state boot condition).
func New(index uint8, cfg StaticConfig) *Channel {
	c := &Channel{
		index:            index,
		cfg:              cfg,
		deviceNumber:     cfg.DeviceNumber,
		deviceType:       cfg.DeviceType,
		transmissionType: cfg.TransmissionType,
		txReady:          true,
	}
	return c
}

// Index returns the channel's slot index.
func (c *Channel) Index() uint8 { return c.index }

// State reports the channel's current configure-sequencer state.
func (c *Channel) State() State { return c.state }

// LastError returns the ConfigureError that latched the channel, or nil.
func (c *Channel) LastError() *ConfigureError { return c.lastErr }

// IsTxReady reports whether a consumer-supplied outbound datapage may be
// submitted right now (spec.md §4.4).
func (c *Channel) IsTxReady() bool { return c.txReady }

// GetDeviceID returns the peer identity learned during configuration
// (static, or updated by the post-Identify ChannelId handshake).
func (c *Channel) GetDeviceID() (deviceNumber uint16, deviceType, transmissionType uint8) {
	return c.deviceNumber, c.deviceType, c.transmissionType
}

// SetRxObserver installs the callback invoked with every inbound data
// message (broadcast/acknowledged/burst/advanced burst) addressed to this
// channel.
func (c *Channel) SetRxObserver(fn func(antmsg.Inbound)) { c.rxObserver = fn }

// SetMetrics installs an optional Registry that subsequent configure-step
// transitions and errors are reported to; nil (the default) disables
// metrics entirely.
func (c *Channel) SetMetrics(m *antmetrics.Registry) { c.metrics = m }

// configureMessageForState builds the outbound message for the channel's
// current configure state, or nil once past the configure walk.
func (c *Channel) configureMessageForState() antmsg.Outbound {
	switch c.state {
	case StateUnknownClose:
		return antmsg.CloseChannel(c.index)
	case StateUnknownUnAssign:
		return antmsg.UnAssignChannel(c.index)
	case StateNetworkKey:
		switch {
		case c.cfg.NetworkKey128 != nil:
			return antmsg.Set128BitNetworkKey(c.cfg.Network, *c.cfg.NetworkKey128)
		case c.cfg.NetworkKey != nil:
			return antmsg.SetNetworkKey(c.cfg.Network, *c.cfg.NetworkKey)
		default:
			return nil // no key to program: Advance skips straight to Assign
		}
	case StateAssign:
		m := antmsg.AssignChannel(c.index, antmsg.ChannelType(c.cfg.ChannelType), c.cfg.Network)
		if c.cfg.ExtendedAssignment != nil {
			m = m.WithExtendedAssignment(*c.cfg.ExtendedAssignment)
		}
		return m
	case StateID:
		return antmsg.ChannelID(c.index, c.cfg.DeviceNumber, c.cfg.DeviceType, c.cfg.TransmissionType)
	case StateRf:
		return antmsg.ChannelRfFrequency(c.index, c.cfg.RFFrequency)
	case StatePeriod:
		return antmsg.ChannelPeriod(c.index, c.cfg.Period)
	case StateTimeout:
		return antmsg.SearchTimeout(c.index, c.cfg.SearchTimeout)
	default:
		return nil
	}
}

// Advance enqueues the channel's next configure message if none is
// currently in flight. The router calls this once per occupied slot per
// process() pass, after that pass's inbound messages have been
// dispatched (spec.md §4.4: "at most one configure message is in-flight").
func (c *Channel) Advance() {
	for {
		if c.state == StateDone || c.state == StateError || c.state == StateIdentify {
			return
		}
		if c.awaitingID != 0 {
			return
		}
		msg := c.configureMessageForState()
		if msg == nil {
			if c.state == StateNetworkKey {
				// No key configured for this slot: skip straight to Assign
				// without waiting on a response.
				c.state = c.state.next()
				continue
			}
			return
		}
		c.awaitingID = msg.MessageID()
		c.outbox = append(c.outbox, msg)
		return
	}
}

// Pending drains and returns the outbound messages queued for this
// channel since the last call, in issuing order.
func (c *Channel) Pending() []antmsg.Outbound {
	out := c.outbox
	c.outbox = nil
	return out
}

// Step delivers one inbound message already routed to this channel by the
// router. It returns a non-nil *ConfigureError only on the iteration a
// configure step first latches Error; once latched, the error is also
// retained in LastError and further Step calls are no-ops until ResetState.
func (c *Channel) Step(msg antmsg.Inbound) *ConfigureError {
	switch m := msg.(type) {
	case *antmsg.ChannelResponseMessage:
		return c.stepResponse(m)
	case *antmsg.ChannelEventMessage:
		c.stepEvent(m)
		return nil
	case *antmsg.ChannelIDMessage:
		c.stepChannelID(m)
		return nil
	case *antmsg.BroadcastDataMessage, *antmsg.AcknowledgedDataMessage,
		*antmsg.BurstTransferDataMessage, *antmsg.AdvancedBurstDataMessage:
		c.stepData(msg)
		return nil
	case *antmsg.ChannelStatusMessage:
		c.status = m.State
		return nil
	default:
		return nil
	}
}

func (c *Channel) stepResponse(m *antmsg.ChannelResponseMessage) *ConfigureError {
	if c.state == StateError {
		return nil
	}
	if c.awaitingID == 0 || m.RespondingToID != c.awaitingID {
		return nil // response to a step we're not currently waiting on
	}
	originating := c.state
	c.awaitingID = 0
	if m.Code != antmsg.ResponseNoError {
		c.state = StateError
		c.lastErr = &ConfigureError{State: originating, Code: m.Code}
		log.Printf("[channel %d] configure step %s failed: %s", c.index, originating, m.Code)
		c.metrics.ObserveConfigureError(originating.String())
		return c.lastErr
	}
	c.state = c.state.next()
	c.metrics.ObserveChannelTransition(c.state.String())
	return nil
}

func (c *Channel) stepEvent(m *antmsg.ChannelEventMessage) {
	switch m.Code {
	case antmsg.EventTx, antmsg.EventTransferTxCompleted:
		c.txReady = true
	}
}

func (c *Channel) stepChannelID(m *antmsg.ChannelIDMessage) {
	if c.state == StateIdentify && c.identifyRequested {
		c.state = StateDone
		log.Printf("[channel %d] identified peer %04X, entering Done", c.index, m.DeviceNumber)
	}
	if c.state != StateDone {
		return
	}
	c.deviceNumber = m.DeviceNumber
	c.deviceType = m.DeviceType
	c.transmissionType = m.TransmissionType
	// A slave's pairing bit self-clears on bond acknowledgement; masters
	// must clear it manually (spec.md §9 design note).
	if !c.isMaster() {
		c.deviceType = antmsg.WithPairingBit(c.deviceType, false)
	}
}

// stepData handles the channel-scoped data classes (broadcast,
// acknowledged, burst, advanced burst): during Identify it triggers the
// one-shot RequestMessage(ChannelId) handshake; at any state it forwards
// to the registered rx observer.
func (c *Channel) stepData(msg antmsg.Inbound) {
	if c.state == StateIdentify && !c.identifyRequested {
		c.identifyRequested = true
		c.outbox = append(c.outbox, antmsg.NewRequestMessage(c.index, antmsg.RequestChannelID))
	}
	if c.rxObserver != nil {
		c.rxObserver(msg)
	}
}

// Open queues a single OpenChannel, usable only once the configure walk
// has reached Identify or Done.
func (c *Channel) Open() error {
	if c.state != StateDone && c.state != StateIdentify {
		return &ChannelInWrongStateError{Operation: "open", State: c.state}
	}
	c.outbox = append(c.outbox, antmsg.OpenChannel(c.index))
	return nil
}

// Close queues a single CloseChannel, usable only once the configure walk
// has reached Identify or Done.
func (c *Channel) Close() error {
	if c.state != StateDone && c.state != StateIdentify {
		return &ChannelInWrongStateError{Operation: "close", State: c.state}
	}
	c.outbox = append(c.outbox, antmsg.CloseChannel(c.index))
	return nil
}

// isMaster reports whether the channel's static type is one of the master
// variants (bit 0x10 set across all ChannelTypeMaster* values).
func (c *Channel) isMaster() bool { return c.cfg.ChannelType&0x10 != 0 }

// SetPairingBit queues a ChannelId re-send with the pairing bit toggled.
// Masters may set it at any time and must clear it manually. Slaves may
// only do so while not searching/tracking (spec.md §4.4), tracked here via
// the last reported ChannelStatus.
func (c *Channel) SetPairingBit(set bool) error {
	if c.state != StateDone && c.state != StateIdentify {
		return &ChannelInWrongStateError{Operation: "set_pairing_bit", State: c.state}
	}
	if !c.isMaster() && (c.status == antmsg.ChannelStateSearching || c.status == antmsg.ChannelStateTracking) {
		return &ChannelInWrongStateError{Operation: "set_pairing_bit", State: c.state}
	}
	c.deviceType = antmsg.WithPairingBit(c.deviceType, set)
	c.outbox = append(c.outbox, antmsg.ChannelID(c.index, c.deviceNumber, c.deviceType, c.transmissionType))
	return nil
}

// SubmitOutboundData queues a consumer-supplied datapage, only while
// tx-ready; the flag clears immediately after (spec.md §4.4).
func (c *Channel) SubmitOutboundData(m antmsg.Outbound) error {
	if !c.txReady {
		return &ChannelInWrongStateError{Operation: "submit_outbound_data", State: c.state}
	}
	c.outbox = append(c.outbox, m)
	c.txReady = false
	return nil
}

// ResetState returns the configure sequencer to UnknownClose, clears
// pending-response and latched-error state, and sets tx-ready true. When
// restoreIdentity is true, the learned device_number/device_type/
// transmission_type are reset to the static config; otherwise the values
// learned from a prior Identify handshake are kept (spec.md §4.4).
func (c *Channel) ResetState(restoreIdentity bool) {
	c.state = StateUnknownClose
	c.awaitingID = 0
	c.identifyRequested = false
	c.lastErr = nil
	c.txReady = true
	c.outbox = nil
	if restoreIdentity {
		c.deviceNumber = c.cfg.DeviceNumber
		c.deviceType = c.cfg.DeviceType
		c.transmissionType = c.cfg.TransmissionType
	}
}
