package antmsg

import "github.com/antcomm/anthost/antfield"

// ChannelStatusMessage reports a channel's current type/state.
type ChannelStatusMessage struct {
	Channel       uint8
	ChannelType   uint8 // 4-bit
	NetworkNumber uint8 // 2-bit
	State         ChannelState
}

func (m *ChannelStatusMessage) MessageID() byte      { return idChannelStatus }
func (m *ChannelStatusMessage) ChannelNumber() uint8 { return m.Channel }

func decodeChannelStatus(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 2 {
		return nil, &BadLengthError{MessageID: id, Expected: 2, Actual: len(payload)}
	}
	b := payload[1]
	return &ChannelStatusMessage{
		Channel:       payload[0],
		ChannelType:   antfield.GetBits(b, 4, 4, antfield.LSB0),
		NetworkNumber: antfield.GetBits(b, 2, 2, antfield.LSB0),
		State:         ChannelState(antfield.GetBits(b, 0, 2, antfield.LSB0)),
	}, nil
}

// AntVersionMessage reports the radio's ANT firmware version as a
// variable-length, NUL-padded ASCII string.
type AntVersionMessage struct{ Version []byte }

func (m *AntVersionMessage) MessageID() byte { return idAntVersion }

func decodeAntVersion(id byte, payload []byte) (Inbound, error) {
	v := make([]byte, len(payload))
	copy(v, payload)
	return &AntVersionMessage{Version: v}, nil
}

// SerialNumberMessage reports the radio's 4-byte serial number.
type SerialNumberMessage struct{ SerialNumber uint32 }

func (m *SerialNumberMessage) MessageID() byte { return idSerialNumber }

func decodeSerialNumber(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 4 {
		return nil, &BadLengthError{MessageID: id, Expected: 4, Actual: len(payload)}
	}
	return &SerialNumberMessage{SerialNumber: antfield.Uint32LE(payload)}, nil
}

// StandardOptions and AdvancedOptions/2/3/4 are the cascading capability
// bitfields; each is present only if the response payload is long enough
// to contain it (spec.md §3's "Capabilities" cascading-optional-field
// struct).
type StandardOptions uint8
type AdvancedOptions uint8
type AdvancedOptions2 uint8
type AdvancedOptions3 uint8
type AdvancedOptions4 uint8

// CapabilitiesMessage is the radio's full self-description, decoded with
// a cascading-optional-field layout: each field beyond the mandatory
// 4-byte base is present only if enough bytes remain, with a residual-byte
// mismatch reported as BadLengthError. Field order past the base
// (AdvOptions2, then MaxSensRcoreChannels, then AdvOptions3, then
// AdvOptions4) matches the radio's actual wire order.
type CapabilitiesMessage struct {
	MaxANTChannels       uint8
	MaxNetworks          uint8
	StdOptions           StandardOptions
	AdvOptions           AdvancedOptions
	AdvOptions2          *AdvancedOptions2
	MaxSensRcoreChannels *uint8
	AdvOptions3          *AdvancedOptions3
	AdvOptions4          *AdvancedOptions4
}

func (m *CapabilitiesMessage) MessageID() byte { return idCapabilities }

func decodeCapabilities(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 4 {
		return nil, &BadLengthError{MessageID: id, Expected: 4, Actual: len(payload)}
	}
	if err := antfield.CheckReservedZero("standard_options.reserved", payload[2], 6, 2, antfield.LSB0); err != nil {
		return nil, err
	}
	if err := antfield.CheckReservedZero("advanced_options.reserved_low", payload[3], 0, 1, antfield.LSB0); err != nil {
		return nil, err
	}
	if err := antfield.CheckReservedZero("advanced_options.reserved_high", payload[3], 2, 1, antfield.LSB0); err != nil {
		return nil, err
	}
	m := &CapabilitiesMessage{
		MaxANTChannels: payload[0],
		MaxNetworks:    payload[1],
		StdOptions:     StandardOptions(payload[2]),
		AdvOptions:     AdvancedOptions(payload[3]),
	}
	rest := payload[4:]
	if len(rest) == 0 {
		return m, nil
	}
	if err := antfield.CheckReservedZero("advanced_options2.reserved", rest[0], 3, 1, antfield.LSB0); err != nil {
		return nil, err
	}
	v2 := AdvancedOptions2(rest[0])
	m.AdvOptions2 = &v2
	rest = rest[1:]
	if len(rest) == 0 {
		return m, nil
	}
	v := rest[0]
	m.MaxSensRcoreChannels = &v
	rest = rest[1:]
	if len(rest) == 0 {
		return m, nil
	}
	if err := antfield.CheckReservedZero("advanced_options3.reserved", rest[0], 5, 1, antfield.LSB0); err != nil {
		return nil, err
	}
	v3 := AdvancedOptions3(rest[0])
	m.AdvOptions3 = &v3
	rest = rest[1:]
	if len(rest) == 0 {
		return m, nil
	}
	if err := antfield.CheckReservedZero("advanced_options4.reserved", rest[0], 1, 7, antfield.LSB0); err != nil {
		return nil, err
	}
	v4 := AdvancedOptions4(rest[0])
	m.AdvOptions4 = &v4
	rest = rest[1:]
	if len(rest) != 0 {
		return nil, &BadLengthError{MessageID: id, Expected: len(payload) - len(rest), Actual: len(payload)}
	}
	return m, nil
}

// AdvancedBurstCapabilitiesMessage reports the supported/required
// advanced-burst field bitmasks (decoded from id 0x78 at payload length 2,
// per spec.md's authoritative length-dispatch policy — see SPEC_FULL.md
// §9 for why this supersedes the original's coarser buf.len() 5-vs-12
// split).
type AdvancedBurstCapabilitiesMessage struct {
	MaxSupportedPacketLength uint8
	RequiredFields           uint32
	OptionalFields           uint16
}

func (m *AdvancedBurstCapabilitiesMessage) MessageID() byte { return idAdvancedBurst }

// AdvancedBurstCurrentConfigurationMessage reports the radio's active
// advanced-burst configuration (decoded from id 0x78 at payload length
// 9, 11, or 12 — see decodeAdvancedBurstResponse).
type AdvancedBurstCurrentConfigurationMessage struct {
	Enabled         bool
	MaxPacketLength uint8
	RequiredFields  uint32
	OptionalFields  uint16
	StallCount      *uint16
	RetryCount      *uint8
}

func (m *AdvancedBurstCurrentConfigurationMessage) MessageID() byte { return idAdvancedBurst }

func decodeAdvancedBurstResponse(id byte, payload []byte) (Inbound, error) {
	switch len(payload) {
	case 2:
		return &AdvancedBurstCapabilitiesMessage{
			MaxSupportedPacketLength: payload[0],
			OptionalFields:           uint16(payload[1]),
		}, nil
	case 9, 11, 12:
		m := &AdvancedBurstCurrentConfigurationMessage{
			Enabled:         payload[1] != 0,
			MaxPacketLength: payload[2],
			RequiredFields:  antfield.Uint32LE(payload[3:7]),
			OptionalFields:  antfield.Uint16LE(payload[7:9]),
		}
		if len(payload) >= 11 {
			sc := antfield.Uint16LE(payload[9:11])
			m.StallCount = &sc
		}
		if len(payload) == 12 {
			rc := payload[11]
			m.RetryCount = &rc
		}
		return m, nil
	default:
		return nil, &BadLengthError{MessageID: id, Expected: 2, Actual: len(payload)}
	}
}

// EventFilterMessage reports the radio's active event filter, reusing
// the same field shape as the outbound ConfigureEventFilterMessage.
type EventFilterMessage struct{ Filter uint16 }

func (m *EventFilterMessage) MessageID() byte { return idEventFilter }

func decodeEventFilter(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 2 {
		return nil, &BadLengthError{MessageID: id, Expected: 2, Actual: len(payload)}
	}
	return &EventFilterMessage{Filter: antfield.Uint16LE(payload)}, nil
}

// SelectiveDataUpdateMaskSettingMessage reports the radio's active
// selective-data-update mask for one data-byte index.
type SelectiveDataUpdateMaskSettingMessage struct {
	MaskIndex uint8
	Mask      uint8
}

func (m *SelectiveDataUpdateMaskSettingMessage) MessageID() byte { return idSelectiveDataMask }

func decodeSelectiveDataUpdateMaskSetting(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 2 {
		return nil, &BadLengthError{MessageID: id, Expected: 2, Actual: len(payload)}
	}
	return &SelectiveDataUpdateMaskSettingMessage{MaskIndex: payload[0], Mask: payload[1]}, nil
}

// UserNvmMessage reports a variable-length read of the radio's
// user-reserved NVM region: a 2-byte base address header followed by the
// read bytes.
type UserNvmMessage struct {
	Address uint16
	Data    []byte
}

func (m *UserNvmMessage) MessageID() byte { return idUserNvm }

func decodeUserNvm(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 2 {
		return nil, &BadLengthError{MessageID: id, Expected: 2, Actual: len(payload)}
	}
	data := make([]byte, len(payload)-2)
	copy(data, payload[2:])
	return &UserNvmMessage{Address: antfield.Uint16LE(payload[0:2]), Data: data}, nil
}

// EncryptionModeParametersMessage reports one of three mutually exclusive
// encryption-negotiation fields, selected by a leading discriminant byte
// (mirrors the outbound SetEncryptionInfo* three-way split in config.go).
type EncryptionModeParametersMessage struct {
	MaxSupportedEncryptionMode *uint8
	EncryptionID               *[4]byte
	UserInformationString      *[19]byte
}

func (m *EncryptionModeParametersMessage) MessageID() byte { return idEncryptionModeParams }

func decodeEncryptionModeParameters(id byte, payload []byte) (Inbound, error) {
	if len(payload) < 1 {
		return nil, &BadLengthError{MessageID: id, Expected: 1, Actual: len(payload)}
	}
	switch payload[0] {
	case 0:
		if len(payload) != 2 {
			return nil, &BadLengthError{MessageID: id, Expected: 2, Actual: len(payload)}
		}
		v := payload[1]
		return &EncryptionModeParametersMessage{MaxSupportedEncryptionMode: &v}, nil
	case 1:
		if len(payload) != 5 {
			return nil, &BadLengthError{MessageID: id, Expected: 5, Actual: len(payload)}
		}
		var v [4]byte
		copy(v[:], payload[1:5])
		return &EncryptionModeParametersMessage{EncryptionID: &v}, nil
	case 2:
		if len(payload) != 20 {
			return nil, &BadLengthError{MessageID: id, Expected: 20, Actual: len(payload)}
		}
		var v [19]byte
		copy(v[:], payload[1:20])
		return &EncryptionModeParametersMessage{UserInformationString: &v}, nil
	default:
		return nil, &InvalidDataError{MessageID: id, Detail: "unknown encryption mode parameter discriminant"}
	}
}
