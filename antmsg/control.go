package antmsg

import "github.com/antcomm/anthost/antfield"

// oneByteChannelMessage covers the bare "channel number only" control
// messages: ResetSystem (channel byte is reserved 0), OpenChannel,
// CloseChannel, SleepMessage. Grounded on the teacher's smallest packet
// shape (protocol/packet.go's fixed header) collapsed to its minimum: here
// the payload IS the single byte.
type oneByteChannelMessage struct {
	id      byte
	Channel uint8
}

func (m *oneByteChannelMessage) MessageID() byte { return m.id }

func (m *oneByteChannelMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 1); err != nil {
		return 0, &PackError{MessageID: m.id, Err: err}
	}
	buf[0] = m.Channel
	return 1, nil
}

// ResetSystem requests a full system reset. The channel byte is reserved
// and always zero.
func ResetSystem() Outbound { return &oneByteChannelMessage{id: idResetSystem} }

// OpenChannel opens the given channel for searching/transmission.
func OpenChannel(channel uint8) Outbound {
	return &oneByteChannelMessage{id: idOpenChannel, Channel: channel}
}

// CloseChannel closes the given channel.
func CloseChannel(channel uint8) Outbound {
	return &oneByteChannelMessage{id: idCloseChannel, Channel: channel}
}

// SleepMessage puts the radio into a low-power sleep state.
func SleepMessage() Outbound { return &oneByteChannelMessage{id: idSleepMessage} }

// OpenRxScanMode opens the radio in continuous-scan mode across all
// assigned channels. Unimplemented (stubbed, returning only the mandatory
// byte) in original_source/messages/control.rs; implemented here with its
// one optional extension byte since nothing in spec.md's Non-goals
// excludes it.
type OpenRxScanModeMessage struct {
	SyncChannelPacketsOnly bool
	hasExtension           bool
}

func NewOpenRxScanMode() *OpenRxScanModeMessage { return &OpenRxScanModeMessage{} }

// WithSyncChannelPacketsOnly appends the optional extension byte.
func (m *OpenRxScanModeMessage) WithSyncChannelPacketsOnly(v bool) *OpenRxScanModeMessage {
	m.hasExtension = true
	m.SyncChannelPacketsOnly = v
	return m
}

func (m *OpenRxScanModeMessage) MessageID() byte { return idOpenRxScan }

func (m *OpenRxScanModeMessage) SerializeMessage(buf []byte) (int, error) {
	n := 1
	if m.hasExtension {
		n = 2
	}
	if err := antfield.Require(buf, n); err != nil {
		return 0, &PackError{MessageID: idOpenRxScan, Err: err}
	}
	buf[0] = 0
	if m.hasExtension {
		if m.SyncChannelPacketsOnly {
			buf[1] = 1
		} else {
			buf[1] = 0
		}
	}
	return n, nil
}

// RequestableMessageID enumerates the ids that may be requested via
// RequestMessage.
type RequestableMessageID byte

const (
	RequestChannelStatus             RequestableMessageID = idChannelStatus
	RequestChannelID                 RequestableMessageID = idChannelID
	RequestAntVersion                RequestableMessageID = idAntVersion
	RequestCapabilities               RequestableMessageID = idCapabilities
	RequestSerialNumber               RequestableMessageID = idSerialNumber
	RequestEventBufferConfiguration   RequestableMessageID = idConfigEventBuffer
	RequestAdvancedBurstCapabilities  RequestableMessageID = idAdvancedBurst
)

// RequestMessageData requests that the radio send back the named message.
// An optional NVM-region extension byte may be attached for NVM-scoped
// requests; absent by default.
type RequestMessageData struct {
	Channel    uint8
	RequestID  RequestableMessageID
	nvmRegion  *uint8
}

func NewRequestMessage(channel uint8, id RequestableMessageID) *RequestMessageData {
	return &RequestMessageData{Channel: channel, RequestID: id}
}

// WithNvmRequest appends the optional NVM-region extension byte.
func (m *RequestMessageData) WithNvmRequest(region uint8) *RequestMessageData {
	m.nvmRegion = &region
	return m
}

func (m *RequestMessageData) MessageID() byte { return idRequestMesg }

func (m *RequestMessageData) SerializeMessage(buf []byte) (int, error) {
	n := 2
	if m.nvmRegion != nil {
		n = 3
	}
	if err := antfield.Require(buf, n); err != nil {
		return 0, &PackError{MessageID: idRequestMesg, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = byte(m.RequestID)
	if m.nvmRegion != nil {
		buf[2] = *m.nvmRegion
	}
	return n, nil
}

// CwInit prepares the radio for continuous-wave test mode.
func CwInit() Outbound { return &oneByteChannelMessage{id: idCwInit} }

// CwTestMessage transmits a continuous wave at the given power/frequency,
// for RF compliance testing.
type CwTestMessage struct {
	TransmitPower      uint8
	ChannelRfFrequency uint8
}

func (m *CwTestMessage) MessageID() byte { return idCwTest }

func (m *CwTestMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, &PackError{MessageID: idCwTest, Err: err}
	}
	buf[0] = 0 // filler byte, reserved
	buf[1] = m.TransmitPower
	buf[2] = m.ChannelRfFrequency
	return 3, nil
}
