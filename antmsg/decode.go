package antmsg

import "github.com/antcomm/anthost/antfield"

// DecodeInbound decodes a payload (the frame's MSG_ID and payload bytes,
// without the sync/length/checksum wrapper — that's the framed driver's
// job, see antdriver) into a tagged Inbound variant. It never consults any
// state outside the bytes themselves (spec.md §3).
func DecodeInbound(id byte, payload []byte) (Inbound, error) {
	switch id {
	case idStartupMessage:
		return decodeStartUpMessage(id, payload)
	case idSerialError:
		return decodeSerialErrorMessage(id, payload)
	case idBroadcastData:
		return decodeBroadcastData(id, payload)
	case idAcknowledgedData:
		return decodeAcknowledgedData(id, payload)
	case idBurstData:
		return decodeBurstTransferData(id, payload)
	case idAdvancedBurstData:
		return decodeAdvancedBurstData(id, payload)
	case idChannelEventOrResponse:
		return decodeChannelEventOrResponse(id, payload)
	case idChannelStatus:
		return decodeChannelStatus(id, payload)
	case idChannelID:
		return decodeChannelID(id, payload)
	case idAntVersion:
		return decodeAntVersion(id, payload)
	case idCapabilities:
		return decodeCapabilities(id, payload)
	case idSerialNumber:
		return decodeSerialNumber(id, payload)
	case idConfigEventBuffer:
		return decodeEventBufferConfiguration(id, payload)
	case idAdvancedBurst:
		return decodeAdvancedBurstResponse(id, payload)
	case idEventFilter:
		return decodeEventFilter(id, payload)
	case idSelectiveDataMask:
		return decodeSelectiveDataUpdateMaskSetting(id, payload)
	case idUserNvm:
		return decodeUserNvm(id, payload)
	case idEncryptionModeParams:
		return decodeEncryptionModeParameters(id, payload)
	default:
		return nil, &UnknownMessageIDError{MessageID: id}
	}
}

// EventBufferConfigurationMessage reports the radio's active event-buffer
// configuration, reusing the outbound message's field shape.
type EventBufferConfigurationMessage struct {
	Config        uint8
	Size          uint16
	TimeThreshold uint16
}

func (m *EventBufferConfigurationMessage) MessageID() byte { return idConfigEventBuffer }

func decodeEventBufferConfiguration(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 6 {
		return nil, &BadLengthError{MessageID: id, Expected: 6, Actual: len(payload)}
	}
	return &EventBufferConfigurationMessage{
		Config:        payload[1],
		Size:          antfield.Uint16LE(payload[2:4]),
		TimeThreshold: antfield.Uint16LE(payload[4:6]),
	}, nil
}
