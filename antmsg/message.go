package antmsg

// Outbound is implemented by every host-to-radio message kind. Grounded on
// the teacher's EncodePacket/EncodeFrame free-function idiom
// (protocol/frame.go), reshaped per spec.md §3 into a small
// "serialize + report id" capability pair attached to each variant instead
// of one generic frame type, since the outbound set is a closed tagged
// union of many distinct payload shapes rather than one fixed layout.
type Outbound interface {
	// MessageID reports the wire id byte for this variant.
	MessageID() byte
	// SerializeMessage packs the payload (not the frame header/checksum)
	// into buf and returns the number of bytes written.
	SerializeMessage(buf []byte) (int, error)
}

// Inbound is implemented by every radio-to-host decoded message kind.
type Inbound interface {
	// MessageID reports the wire id byte this variant was decoded from.
	MessageID() byte
}

// Decoded is the top-level decoded record: the raw header id, the observed
// checksum byte, and the typed variant. spec.md §3: "The top-level decoded
// record also carries the raw header and the observed checksum byte."
type Decoded struct {
	MessageID byte
	Checksum  byte
	Message   Inbound
}

// ChannelScoped is implemented by inbound variants that carry a channel
// number and so are routed to a single channel slot by the router (C5)
// rather than broadcast or swallowed.
type ChannelScoped interface {
	Inbound
	ChannelNumber() uint8
}
