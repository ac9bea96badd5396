package antmsg

import "github.com/antcomm/anthost/antfield"

// ExtendedInfoFlag enumerates which optional trailers follow a data
// message's 8-byte payload, in fixed order (spec.md §3).
type ExtendedInfoFlag uint8

const (
	extFlagChannelID ExtendedInfoFlag = 1 << 7
	extFlagRSSI      ExtendedInfoFlag = 1 << 6
	extFlagTimestamp ExtendedInfoFlag = 1 << 5
)

// ChannelIDOutput is the optional 4-byte peer-identity trailer.
type ChannelIDOutput struct {
	DeviceNumber     uint16
	DeviceType       uint8
	TransmissionType uint8
}

// RSSIFormat selects the encoding of the optional RSSI trailer.
type RSSIFormat uint8

const (
	RSSIFormatDbm RSSIFormat = 0x20 // 3 bytes total
	RSSIFormatAGC RSSIFormat = 0x10 // 4 bytes total
)

// RSSIOutput is the optional signal-strength trailer. Measurement is a
// signed 8-bit dBm value under RSSIFormatDbm; under RSSIFormatAGC it is an
// unsigned AGC gain code and ThresholdConfig carries the radio's
// configured threshold.
type RSSIOutput struct {
	Format          RSSIFormat
	Measurement     int8
	ThresholdConfig uint8 // only meaningful for RSSIFormatAGC
}

// TimestampOutput is the optional 2-byte receive-timestamp trailer
// (radio clock, 32768ths of a second, truncated to 16 bits).
type TimestampOutput struct{ Timestamp uint16 }

// ExtendedInfo bundles the optional trailers that may follow a data
// message's mandatory 8-byte payload, decoded in channel-id, rssi,
// timestamp order per spec.md §3.
type ExtendedInfo struct {
	ChannelID *ChannelIDOutput
	RSSI      *RSSIOutput
	Timestamp *TimestampOutput
}

// decodeExtendedInfo consumes buf (everything after the mandatory 8-byte
// data payload) starting with the flag byte. Residual bytes once every
// flagged sub-block has been consumed are a decode error (BufferTooSmall
// style, reused here as BadLengthError since the mismatch is about the
// trailer's total declared length).
func decodeExtendedInfo(id byte, buf []byte) (*ExtendedInfo, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	flag := ExtendedInfoFlag(buf[0])
	rest := buf[1:]
	info := &ExtendedInfo{}
	consumed := 0

	if flag&extFlagChannelID != 0 {
		if len(rest)-consumed < 4 {
			return nil, &BadLengthError{MessageID: id, Expected: consumed + 4, Actual: len(rest)}
		}
		b := rest[consumed : consumed+4]
		info.ChannelID = &ChannelIDOutput{
			DeviceNumber:     antfield.Uint16LE(b[0:2]),
			DeviceType:       b[2],
			TransmissionType: b[3],
		}
		consumed += 4
	}

	if flag&extFlagRSSI != 0 {
		if len(rest)-consumed < 1 {
			return nil, &BadLengthError{MessageID: id, Expected: consumed + 1, Actual: len(rest)}
		}
		format := RSSIFormat(rest[consumed])
		switch format {
		case RSSIFormatDbm:
			if len(rest)-consumed < 3 {
				return nil, &BadLengthError{MessageID: id, Expected: consumed + 3, Actual: len(rest)}
			}
			info.RSSI = &RSSIOutput{Format: format, Measurement: int8(rest[consumed+1])}
			consumed += 3
		case RSSIFormatAGC:
			if len(rest)-consumed < 4 {
				return nil, &BadLengthError{MessageID: id, Expected: consumed + 4, Actual: len(rest)}
			}
			info.RSSI = &RSSIOutput{Format: format, Measurement: int8(rest[consumed+1]), ThresholdConfig: rest[consumed+2]}
			consumed += 4
		default:
			return nil, &InvalidDataError{MessageID: id, Detail: "unknown rssi output format"}
		}
	}

	if flag&extFlagTimestamp != 0 {
		if len(rest)-consumed < 2 {
			return nil, &BadLengthError{MessageID: id, Expected: consumed + 2, Actual: len(rest)}
		}
		info.Timestamp = &TimestampOutput{Timestamp: antfield.Uint16LE(rest[consumed : consumed+2])}
		consumed += 2
	}

	if consumed != len(rest) {
		return nil, &BadLengthError{MessageID: id, Expected: consumed, Actual: len(rest)}
	}
	return info, nil
}

func encodeExtendedInfo(info *ExtendedInfo, buf []byte) (int, error) {
	if info == nil {
		return 0, nil
	}
	var flag ExtendedInfoFlag
	need := 1
	if info.ChannelID != nil {
		flag |= extFlagChannelID
		need += 4
	}
	if info.RSSI != nil {
		flag |= extFlagRSSI
		if info.RSSI.Format == RSSIFormatAGC {
			need += 4
		} else {
			need += 3
		}
	}
	if info.Timestamp != nil {
		flag |= extFlagTimestamp
		need += 2
	}
	if err := antfield.Require(buf, need); err != nil {
		return 0, err
	}
	buf[0] = byte(flag)
	n := 1
	if info.ChannelID != nil {
		antfield.PutUint16LE(buf[n:n+2], info.ChannelID.DeviceNumber)
		buf[n+2] = info.ChannelID.DeviceType
		buf[n+3] = info.ChannelID.TransmissionType
		n += 4
	}
	if info.RSSI != nil {
		buf[n] = byte(info.RSSI.Format)
		buf[n+1] = byte(info.RSSI.Measurement)
		if info.RSSI.Format == RSSIFormatAGC {
			buf[n+2] = info.RSSI.ThresholdConfig
			n += 4
		} else {
			n += 3
		}
	}
	if info.Timestamp != nil {
		antfield.PutUint16LE(buf[n:n+2], info.Timestamp.Timestamp)
		n += 2
	}
	return n, nil
}

// DataPayload is the 8-byte mandatory body common to broadcast,
// acknowledged, and burst data messages.
type DataPayload [8]byte

// BroadcastDataMessage is an inbound/outbound untracked data message.
type BroadcastDataMessage struct {
	Channel  uint8
	Payload  DataPayload
	Extended *ExtendedInfo
}

func BroadcastData(channel uint8, payload DataPayload) *BroadcastDataMessage {
	return &BroadcastDataMessage{Channel: channel, Payload: payload}
}

func (m *BroadcastDataMessage) MessageID() byte      { return idBroadcastData }
func (m *BroadcastDataMessage) ChannelNumber() uint8 { return m.Channel }

func (m *BroadcastDataMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 9); err != nil {
		return 0, &PackError{MessageID: idBroadcastData, Err: err}
	}
	buf[0] = m.Channel
	copy(buf[1:9], m.Payload[:])
	return 9, nil
}

func decodeBroadcastData(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 9 {
		return nil, &BadLengthError{MessageID: id, Expected: 9, Actual: len(payload)}
	}
	m := &BroadcastDataMessage{Channel: payload[0]}
	copy(m.Payload[:], payload[1:9])
	ext, err := decodeExtendedInfo(id, payload[9:])
	if err != nil {
		return nil, err
	}
	m.Extended = ext
	return m, nil
}

// AcknowledgedDataMessage is an inbound/outbound data message whose
// delivery the radio confirms at the link layer.
type AcknowledgedDataMessage struct {
	Channel  uint8
	Payload  DataPayload
	Extended *ExtendedInfo
}

func AcknowledgedData(channel uint8, payload DataPayload) *AcknowledgedDataMessage {
	return &AcknowledgedDataMessage{Channel: channel, Payload: payload}
}

func (m *AcknowledgedDataMessage) MessageID() byte      { return idAcknowledgedData }
func (m *AcknowledgedDataMessage) ChannelNumber() uint8 { return m.Channel }

func (m *AcknowledgedDataMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 9); err != nil {
		return 0, &PackError{MessageID: idAcknowledgedData, Err: err}
	}
	buf[0] = m.Channel
	copy(buf[1:9], m.Payload[:])
	return 9, nil
}

func decodeAcknowledgedData(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 9 {
		return nil, &BadLengthError{MessageID: id, Expected: 9, Actual: len(payload)}
	}
	m := &AcknowledgedDataMessage{Channel: payload[0]}
	copy(m.Payload[:], payload[1:9])
	ext, err := decodeExtendedInfo(id, payload[9:])
	if err != nil {
		return nil, err
	}
	m.Extended = ext
	return m, nil
}

// ChannelSequence packs a 3-bit rolling sequence number (bits 7:5) and a
// 5-bit channel number (bits 4:0) into one byte, as burst-class messages
// use to detect dropped/duplicated packets.
type ChannelSequence struct {
	SequenceNumber uint8 // 0..7
	Channel        uint8 // 0..31
}

func (c ChannelSequence) pack() byte {
	return antfield.PutBits(antfield.PutBits(0, 0, 5, antfield.LSB0, c.Channel), 5, 3, antfield.LSB0, c.SequenceNumber)
}

func unpackChannelSequence(b byte) ChannelSequence {
	return ChannelSequence{
		Channel:        antfield.GetBits(b, 0, 5, antfield.LSB0),
		SequenceNumber: antfield.GetBits(b, 5, 3, antfield.LSB0),
	}
}

// BurstTransferDataMessage carries one packet of a burst transfer.
type BurstTransferDataMessage struct {
	Sequence ChannelSequence
	Payload  DataPayload
	Extended *ExtendedInfo
}

func BurstTransferData(seq ChannelSequence, payload DataPayload) *BurstTransferDataMessage {
	return &BurstTransferDataMessage{Sequence: seq, Payload: payload}
}

func (m *BurstTransferDataMessage) MessageID() byte      { return idBurstData }
func (m *BurstTransferDataMessage) ChannelNumber() uint8 { return m.Sequence.Channel }

func (m *BurstTransferDataMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 9); err != nil {
		return 0, &PackError{MessageID: idBurstData, Err: err}
	}
	buf[0] = m.Sequence.pack()
	copy(buf[1:9], m.Payload[:])
	return 9, nil
}

func decodeBurstTransferData(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 9 {
		return nil, &BadLengthError{MessageID: id, Expected: 9, Actual: len(payload)}
	}
	m := &BurstTransferDataMessage{Sequence: unpackChannelSequence(payload[0])}
	copy(m.Payload[:], payload[1:9])
	ext, err := decodeExtendedInfo(id, payload[9:])
	if err != nil {
		return nil, err
	}
	m.Extended = ext
	return m, nil
}

// AdvancedBurstBufferSize is the default/maximum variable-length data
// capacity for advanced-burst packets, clamped to [24, 254] (spec.md §6),
// set by antconfig.ParseFlags at process start via SetAdvancedBurstBufferSize.
var AdvancedBurstBufferSize = 64

// SetAdvancedBurstBufferSize clamps and installs the configured
// advanced-burst data cap.
func SetAdvancedBurstBufferSize(n int) {
	if n < MinPayload {
		n = MinPayload
	}
	if n > AbsoluteMaxPayload {
		n = AbsoluteMaxPayload
	}
	AdvancedBurstBufferSize = n
}

// AdvancedBurstDataMessage carries one packet of an advanced-burst
// transfer, with a variable-length data tail bounded by
// AdvancedBurstBufferSize.
type AdvancedBurstDataMessage struct {
	Sequence ChannelSequence
	Data     []byte
}

func AdvancedBurstData(seq ChannelSequence, data []byte) *AdvancedBurstDataMessage {
	return &AdvancedBurstDataMessage{Sequence: seq, Data: data}
}

func (m *AdvancedBurstDataMessage) MessageID() byte      { return idAdvancedBurstData }
func (m *AdvancedBurstDataMessage) ChannelNumber() uint8 { return m.Sequence.Channel }

func (m *AdvancedBurstDataMessage) SerializeMessage(buf []byte) (int, error) {
	n := 1 + len(m.Data)
	if len(m.Data) > AdvancedBurstBufferSize {
		return 0, &PackError{MessageID: idAdvancedBurstData, Err: &antfield.InvalidValueError{Field: "data", Value: uint64(len(m.Data))}}
	}
	if err := antfield.Require(buf, n); err != nil {
		return 0, &PackError{MessageID: idAdvancedBurstData, Err: err}
	}
	buf[0] = m.Sequence.pack()
	copy(buf[1:], m.Data)
	return n, nil
}

func decodeAdvancedBurstData(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 1 {
		return nil, &BadLengthError{MessageID: id, Expected: 1, Actual: len(payload)}
	}
	if len(payload)-1 > AdvancedBurstBufferSize {
		return nil, &antfield.BufferTooSmallError{Need: len(payload) - 1, Have: AdvancedBurstBufferSize}
	}
	data := make([]byte, len(payload)-1)
	copy(data, payload[1:])
	return &AdvancedBurstDataMessage{Sequence: unpackChannelSequence(payload[0]), Data: data}, nil
}
