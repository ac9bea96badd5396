package antchannel

// State is a step in the per-channel configure sequencer (spec.md §4.4).
type State uint8

const (
	StateUnknownClose State = iota
	StateUnknownUnAssign
	StateNetworkKey // entered only when StaticConfig carries a network key to program
	StateAssign
	StateID
	StateRf
	StatePeriod
	StateTimeout
	StateIdentify
	StateDone
	StateError
)

var stateNames = [...]string{
	StateUnknownClose:    "UnknownClose",
	StateUnknownUnAssign: "UnknownUnAssign",
	StateNetworkKey:      "NetworkKey",
	StateAssign:          "Assign",
	StateID:              "Id",
	StateRf:              "Rf",
	StatePeriod:          "Period",
	StateTimeout:         "Timeout",
	StateIdentify:        "Identify",
	StateDone:            "Done",
	StateError:           "Error",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// next returns the state the sequencer advances to once the current
// state's configure step is acknowledged with ResponseNoError. StateDone,
// StateIdentify and StateError have no ordinary successor here: Identify's
// advance to Done is driven by the channel-id handshake, not a configure
// response, and Done/Error are terminal.
func (s State) next() State {
	switch s {
	case StateUnknownClose:
		return StateUnknownUnAssign
	case StateUnknownUnAssign:
		return StateNetworkKey
	case StateNetworkKey:
		return StateAssign
	case StateAssign:
		return StateID
	case StateID:
		return StateRf
	case StateRf:
		return StatePeriod
	case StatePeriod:
		return StateTimeout
	case StateTimeout:
		return StateIdentify
	default:
		return s
	}
}

// StaticConfig is the fixed identity and radio configuration a channel is
// (re)configured with from StateUnknownClose. Supplemented per SPEC_FULL.md
// §3 with NetworkKey/NetworkKey128 and ExtendedAssignment: the original's
// AssignChannel carries only channel_type and network_number (the slot a
// previously-programmed key lives in), so a channel that needs its network
// number's key programmed carries the key here and the configure walk
// issues SetNetworkKey/Set128BitNetworkKey for it before Assign.
type StaticConfig struct {
	ChannelType        byte // antmsg.ChannelType value
	Network            uint8
	NetworkKey         *[8]byte  // non-nil: program via SetNetworkKey before Assign
	NetworkKey128      *[16]byte // non-nil: program via Set128BitNetworkKey before Assign, takes priority over NetworkKey
	ExtendedAssignment *uint8    // nil omits the extended-assignment byte
	DeviceNumber       uint16
	DeviceType         uint8
	TransmissionType   uint8
	RFFrequency        uint8
	Period             uint16
	SearchTimeout      uint8
}
