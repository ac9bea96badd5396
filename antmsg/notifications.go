package antmsg

import "github.com/antcomm/anthost/antfield"

// StartUpMessage reports the cause(s) of the radio's last reset, decoded
// from a single lsb0-numbered bitfield byte. All bits clear means a
// power-on reset.
type StartUpMessage struct {
	HardwareResetLine bool
	WatchDogReset     bool
	CommandReset      bool
	SynchronousReset  bool
	SuspendReset      bool
}

func (m *StartUpMessage) MessageID() byte { return idStartupMessage }

// IsPowerOnReset reports whether no other reset cause bit was set.
func (m *StartUpMessage) IsPowerOnReset() bool {
	return !m.HardwareResetLine && !m.WatchDogReset && !m.CommandReset && !m.SynchronousReset && !m.SuspendReset
}

func decodeStartUpMessage(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 1 {
		return nil, &BadLengthError{MessageID: id, Expected: 1, Actual: len(payload)}
	}
	b := payload[0]
	return &StartUpMessage{
		HardwareResetLine: antfield.GetBits(b, 0, 1, antfield.LSB0) != 0,
		WatchDogReset:     antfield.GetBits(b, 1, 1, antfield.LSB0) != 0,
		CommandReset:      antfield.GetBits(b, 5, 1, antfield.LSB0) != 0,
		SynchronousReset:  antfield.GetBits(b, 6, 1, antfield.LSB0) != 0,
		SuspendReset:      antfield.GetBits(b, 7, 1, antfield.LSB0) != 0,
	}, nil
}

// SerialErrorCode enumerates the framing faults the radio itself detected
// on the wire, distinct from the host-side framing errors the driver (C3)
// reports for its own receive buffer.
type SerialErrorCode uint8

const (
	SerialErrorIncorrectSyncByte      SerialErrorCode = 0
	SerialErrorIncorrectChecksumByte  SerialErrorCode = 2
	SerialErrorIncorrectMessageLength SerialErrorCode = 3
)

// SerialErrorMessage reports a serial framing fault the radio observed.
type SerialErrorMessage struct{ Code SerialErrorCode }

func (m *SerialErrorMessage) MessageID() byte { return idSerialError }

func decodeSerialErrorMessage(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 1 {
		return nil, &BadLengthError{MessageID: id, Expected: 1, Actual: len(payload)}
	}
	switch SerialErrorCode(payload[0]) {
	case SerialErrorIncorrectSyncByte, SerialErrorIncorrectChecksumByte, SerialErrorIncorrectMessageLength:
		return &SerialErrorMessage{Code: SerialErrorCode(payload[0])}, nil
	default:
		return nil, &InvalidDataError{MessageID: id, Detail: "unknown serial error code"}
	}
}
