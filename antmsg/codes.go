package antmsg

// MessageCode is the status/event code carried in channel responses and
// channel events (spec.md §6). It is a flat byte enum; an unrecognized
// code is carried through decode unchanged and String reports it as
// "Unknown".
type MessageCode uint8

const (
	ResponseNoError             MessageCode = 0x00
	EventRxSearchTimeout        MessageCode = 0x01
	EventRxFail                 MessageCode = 0x02
	EventTx                     MessageCode = 0x03
	EventTransferRxFailed       MessageCode = 0x04
	EventTransferTxCompleted    MessageCode = 0x05
	EventTransferTxFailed       MessageCode = 0x06
	EventChannelClosed          MessageCode = 0x07
	EventRxFailGoToSearch       MessageCode = 0x08
	EventChannelCollision       MessageCode = 0x09
	EventTransferTxStart        MessageCode = 0x0A
	EventTransferNextDataBlock  MessageCode = 0x11
	ChannelInWrongState         MessageCode = 0x15
	ChannelNotOpened            MessageCode = 0x16
	ChannelIDNotSet             MessageCode = 0x18
	CloseAllChannels            MessageCode = 0x19
	TransferInProgress          MessageCode = 0x1F
	TransferSequenceNumberError MessageCode = 0x20
	TransferInError             MessageCode = 0x21
	MessageSizeExceedsLimit     MessageCode = 0x27
	InvalidMessage              MessageCode = 0x28
	InvalidNetworkNumber        MessageCode = 0x29
	InvalidListID                MessageCode = 0x30
	InvalidScanTxChannel        MessageCode = 0x31
	InvalidParameterProvided    MessageCode = 0x32
	EventSerialQueOverflow      MessageCode = 0x34
	EventQueOverflow            MessageCode = 0x35
	EncryptNegotiationSuccess   MessageCode = 0x38
	EncryptNegotiationFail      MessageCode = 0x39
	NvmFullError                MessageCode = 0x40
	NvmWriteError               MessageCode = 0x41
	UsbStringWriteFail          MessageCode = 0x70
	MesgSerialErrorID           MessageCode = 0xAE
)

var messageCodeNames = map[MessageCode]string{
	ResponseNoError:             "ResponseNoError",
	EventRxSearchTimeout:        "EventRxSearchTimeout",
	EventRxFail:                 "EventRxFail",
	EventTx:                     "EventTx",
	EventTransferRxFailed:       "EventTransferRxFailed",
	EventTransferTxCompleted:    "EventTransferTxCompleted",
	EventTransferTxFailed:       "EventTransferTxFailed",
	EventChannelClosed:          "EventChannelClosed",
	EventRxFailGoToSearch:       "EventRxFailGoToSearch",
	EventChannelCollision:       "EventChannelCollision",
	EventTransferTxStart:        "EventTransferTxStart",
	EventTransferNextDataBlock:  "EventTransferNextDataBlock",
	ChannelInWrongState:         "ChannelInWrongState",
	ChannelNotOpened:            "ChannelNotOpened",
	ChannelIDNotSet:             "ChannelIDNotSet",
	CloseAllChannels:            "CloseAllChannels",
	TransferInProgress:          "TransferInProgress",
	TransferSequenceNumberError: "TransferSequenceNumberError",
	TransferInError:             "TransferInError",
	MessageSizeExceedsLimit:     "MessageSizeExceedsLimit",
	InvalidMessage:              "InvalidMessage",
	InvalidNetworkNumber:        "InvalidNetworkNumber",
	InvalidListID:               "InvalidListID",
	InvalidScanTxChannel:        "InvalidScanTxChannel",
	InvalidParameterProvided:    "InvalidParameterProvided",
	EventSerialQueOverflow:      "EventSerialQueOverflow",
	EventQueOverflow:            "EventQueOverflow",
	EncryptNegotiationSuccess:   "EncryptNegotiationSuccess",
	EncryptNegotiationFail:      "EncryptNegotiationFail",
	NvmFullError:                "NvmFullError",
	NvmWriteError:               "NvmWriteError",
	UsbStringWriteFail:          "UsbStringWriteFail",
	MesgSerialErrorID:           "MesgSerialErrorID",
}

func (c MessageCode) String() string {
	if s, ok := messageCodeNames[c]; ok {
		return s
	}
	return "Unknown"
}

// ChannelState is the last reported channel state (ChannelStatus response).
type ChannelState uint8

const (
	ChannelStateUnAssigned ChannelState = 0
	ChannelStateAssigned   ChannelState = 1
	ChannelStateSearching  ChannelState = 2
	ChannelStateTracking   ChannelState = 3
)

// DeviceType identifies a peer's device type field. Bit 7 is the pairing
// bit (spec.md glossary); the low 7 bits are the device type proper.
type DeviceType uint8

// PairingBit reports whether the pairing bit is set in a raw device-type byte.
func PairingBit(raw uint8) bool { return raw&0x80 != 0 }

// WithPairingBit sets or clears the pairing bit on a raw device-type byte.
func WithPairingBit(raw uint8, set bool) uint8 {
	if set {
		return raw | 0x80
	}
	return raw &^ 0x80
}

// TransmissionType is the peer's transmission-type byte (channel sharing,
// global-id extension bits). Carried opaquely; no enum catch-all needed
// since every 8-bit value is a legal transmission type.
type TransmissionType uint8
