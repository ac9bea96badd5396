package antdriver

import (
	"github.com/antcomm/anthost/antfield"
	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/internal/antmetrics"
)

const (
	// SyncWrite is the sync byte for every host-to-radio frame, and for
	// radio-to-host "write" frames.
	SyncWrite byte = 0xA4
	// SyncRead is the sync byte used by some radio-to-host "read" frames.
	SyncRead byte = 0xA5
)

func isSyncByte(b byte) bool { return b == SyncWrite || b == SyncRead }

// frameAssembler accumulates inbound bytes and decodes complete frames out
// of them, one at a time. Grounded on the teacher's protocol/frame.go
// EncodeFrame/DecodeFrame pair, generalized from one fixed CRC32 frame
// layout to the ANT sync/length/id/payload/XOR-checksum layout, and split
// from a single DecodeFrame call into incremental feed/tryDecode so the
// framed driver can keep retaining a partial frame across transport reads
// as spec.md §4.3 requires.
type frameAssembler struct {
	buf     []byte
	cap     int // configured payload cap, clamped [24,254]
	metrics *antmetrics.Registry
}

func newFrameAssembler(payloadCap int) *frameAssembler {
	if payloadCap < antmsg.MinPayload {
		payloadCap = antmsg.MinPayload
	}
	if payloadCap > antmsg.AbsoluteMaxPayload {
		payloadCap = antmsg.AbsoluteMaxPayload
	}
	return &frameAssembler{cap: payloadCap}
}

// feed appends newly read bytes to the assembly buffer.
func (a *frameAssembler) feed(data []byte) {
	a.buf = append(a.buf, data...)
}

// align advances the buffer head to the next sync byte, silently
// discarding anything before it (spec.md §4.3: "Data before the sync is
// discarded"). This is not reported as an error — boundary test in
// spec.md §8 requires prepending arbitrary non-sync bytes to yield the
// same decoded message with no error surfaced.
func (a *frameAssembler) align() {
	if len(a.buf) == 0 {
		return
	}
	if isSyncByte(a.buf[0]) {
		return
	}
	for i, b := range a.buf {
		if isSyncByte(b) {
			a.buf = a.buf[i:]
			return
		}
	}
	a.buf = a.buf[:0]
}

// tryDecode attempts to decode exactly one frame from the head of the
// buffer. It returns (nil, nil) when the buffer holds an incomplete frame
// (spec.md: "returns none"); on a framing error it drains exactly one byte
// before returning, so the next call retries against realigned data.
func (a *frameAssembler) tryDecode() (*antmsg.Decoded, error) {
	a.align()
	if len(a.buf) < 2 {
		return nil, nil
	}
	length := int(a.buf[1])
	total := length + 4 // sync + len + id + payload(length) + checksum
	if length > a.cap {
		a.buf = a.buf[1:]
		a.metrics.IncFramingError()
		return nil, &BufferTooSmallError{Size: length, Cap: a.cap}
	}
	if len(a.buf) < total {
		return nil, nil
	}

	frame := a.buf[:total]
	expected := xorChecksum(frame[:total-1])
	observed := frame[total-1]
	if observed != expected {
		a.buf = a.buf[1:]
		a.metrics.IncChecksumError()
		return nil, &BadChecksumError{Observed: observed, Expected: expected}
	}

	msgID := frame[2]
	payload := frame[3 : 3+length]
	decoded, err := antmsg.DecodeInbound(msgID, payload)
	a.buf = a.buf[total:]
	if err != nil {
		a.metrics.IncFramingError()
		return nil, err
	}
	a.metrics.IncFramesDecoded()
	return &antmsg.Decoded{MessageID: msgID, Checksum: observed, Message: decoded}, nil
}

func xorChecksum(b []byte) byte {
	var x byte
	for _, c := range b {
		x ^= c
	}
	return x
}

// createPackedMessage encodes an outbound message into buf as a full
// frame (sync, length, id, payload, checksum) and returns the number of
// bytes written. Grounded on the teacher's EncodeFrame header-then-payload
// write order (protocol/frame.go), adapted to the ANT header shape and
// XOR checksum instead of CRC32.
func createPackedMessage(m antmsg.Outbound, buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, err
	}
	n, err := m.SerializeMessage(buf[3:])
	if err != nil {
		return 0, err
	}
	buf[0] = SyncWrite
	buf[1] = byte(n)
	buf[2] = m.MessageID()
	if err := antfield.Require(buf, 3+n+1); err != nil {
		return 0, err
	}
	buf[3+n] = xorChecksum(buf[:3+n])
	return 3 + n + 1, nil
}
