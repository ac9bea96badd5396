package antmsg

// ChannelEventMessage reports a channel-scoped event (e.g. EventTx,
// EventRxFail) not tied to a prior request/response exchange. Decoded
// from id 0x40 when payload byte[1] == 0x01 (spec.md §4.2).
type ChannelEventMessage struct {
	Channel uint8
	Code    MessageCode
}

func (m *ChannelEventMessage) MessageID() byte      { return idChannelEventOrResponse }
func (m *ChannelEventMessage) ChannelNumber() uint8 { return m.Channel }

// ChannelResponseMessage reports the radio's response to a previously
// issued message, named by MessageID. Decoded from id 0x40 when payload
// byte[1] != 0x01.
type ChannelResponseMessage struct {
	Channel         uint8
	RespondingToID  byte
	Code            MessageCode
}

func (m *ChannelResponseMessage) MessageID() byte      { return idChannelEventOrResponse }
func (m *ChannelResponseMessage) ChannelNumber() uint8 { return m.Channel }

const channelEventMarkerByte = 0x01

func decodeChannelEventOrResponse(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 3 {
		return nil, &BadLengthError{MessageID: id, Expected: 3, Actual: len(payload)}
	}
	channel, marker, code := payload[0], payload[1], payload[2]
	if marker == channelEventMarkerByte {
		return &ChannelEventMessage{Channel: channel, Code: MessageCode(code)}, nil
	}
	return &ChannelResponseMessage{Channel: channel, RespondingToID: marker, Code: MessageCode(code)}, nil
}
