package antmsg

import "github.com/antcomm/anthost/antfield"

// UnAssignChannelMessage releases a channel's assignment to its network.
type UnAssignChannelMessage struct{ Channel uint8 }

func UnAssignChannel(channel uint8) *UnAssignChannelMessage {
	return &UnAssignChannelMessage{Channel: channel}
}

func (m *UnAssignChannelMessage) MessageID() byte { return idUnAssignChannel }

func (m *UnAssignChannelMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 1); err != nil {
		return 0, &PackError{MessageID: idUnAssignChannel, Err: err}
	}
	buf[0] = m.Channel
	return 1, nil
}

// ChannelType selects the channel's basic role (master/slave, shared or
// not); carried as an opaque byte per spec.md §3's static_config, since
// the protocol defines many combinations and the core need not validate
// them beyond what it sends back out unchanged.
type ChannelType uint8

const (
	ChannelTypeSlave           ChannelType = 0x00
	ChannelTypeMaster          ChannelType = 0x10
	ChannelTypeSharedSlave     ChannelType = 0x20
	ChannelTypeSharedMaster    ChannelType = 0x30
	ChannelTypeSlaveRx         ChannelType = 0x40
	ChannelTypeMasterTxOnly    ChannelType = 0x50
)

// AssignChannelMessage assigns a channel to a network and declares its
// type. An optional extended-assignment byte (background scanning, fast
// channel id, frequency agility, async transmission) may follow — see
// SPEC_FULL.md §3 NEW.
type AssignChannelMessage struct {
	Channel          uint8
	Type             ChannelType
	NetworkNumber    uint8
	extendedAssign   *uint8
}

func AssignChannel(channel uint8, typ ChannelType, network uint8) *AssignChannelMessage {
	return &AssignChannelMessage{Channel: channel, Type: typ, NetworkNumber: network}
}

// WithExtendedAssignment appends the optional extended-assignment byte.
func (m *AssignChannelMessage) WithExtendedAssignment(bits uint8) *AssignChannelMessage {
	m.extendedAssign = &bits
	return m
}

func (m *AssignChannelMessage) MessageID() byte { return idAssignChannel }

func (m *AssignChannelMessage) SerializeMessage(buf []byte) (int, error) {
	n := 3
	if m.extendedAssign != nil {
		n = 4
	}
	if err := antfield.Require(buf, n); err != nil {
		return 0, &PackError{MessageID: idAssignChannel, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = byte(m.Type)
	buf[2] = m.NetworkNumber
	if m.extendedAssign != nil {
		buf[3] = *m.extendedAssign
	}
	return n, nil
}

// ChannelIDMessage sets (outbound) or reports (inbound, see responses.go)
// the device number/type/transmission-type triple that identifies a peer
// on a channel. A slave may wildcard DeviceNumber=0 and DeviceType=0 to
// match any peer.
type ChannelIDMessage struct {
	Channel          uint8
	DeviceNumber     uint16
	DeviceType       uint8 // bit 7 is the pairing bit, see PairingBit/WithPairingBit
	TransmissionType uint8
}

func ChannelID(channel uint8, deviceNumber uint16, deviceType, transmissionType uint8) *ChannelIDMessage {
	return &ChannelIDMessage{Channel: channel, DeviceNumber: deviceNumber, DeviceType: deviceType, TransmissionType: transmissionType}
}

func (m *ChannelIDMessage) MessageID() byte { return idChannelID }
func (m *ChannelIDMessage) ChannelNumber() uint8 { return m.Channel }

func (m *ChannelIDMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 5); err != nil {
		return 0, &PackError{MessageID: idChannelID, Err: err}
	}
	buf[0] = m.Channel
	antfield.PutUint16LE(buf[1:3], m.DeviceNumber)
	buf[3] = m.DeviceType
	buf[4] = m.TransmissionType
	return 5, nil
}

func decodeChannelID(id byte, payload []byte) (Inbound, error) {
	if len(payload) != 5 {
		return nil, &BadLengthError{MessageID: id, Expected: 5, Actual: len(payload)}
	}
	if err := antfield.CheckReservedZero("transmission_type.reserved", payload[4], 3, 1, antfield.LSB0); err != nil {
		return nil, err
	}
	return &ChannelIDMessage{
		Channel:          payload[0],
		DeviceNumber:     antfield.Uint16LE(payload[1:3]),
		DeviceType:       payload[3],
		TransmissionType: payload[4],
	}, nil
}

// ChannelPeriodMessage sets the message period (in 32768ths of a second).
type ChannelPeriodMessage struct {
	Channel       uint8
	MessagePeriod uint16
}

func ChannelPeriod(channel uint8, period uint16) *ChannelPeriodMessage {
	return &ChannelPeriodMessage{Channel: channel, MessagePeriod: period}
}

func (m *ChannelPeriodMessage) MessageID() byte { return idChannelPeriod }

func (m *ChannelPeriodMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, &PackError{MessageID: idChannelPeriod, Err: err}
	}
	buf[0] = m.Channel
	antfield.PutUint16LE(buf[1:3], m.MessagePeriod)
	return 3, nil
}

// SearchTimeoutMessage sets the high-priority search timeout, in units of
// 2.5 seconds (0xFF = infinite).
type SearchTimeoutMessage struct {
	Channel uint8
	Timeout uint8
}

func SearchTimeout(channel, timeout uint8) *SearchTimeoutMessage {
	return &SearchTimeoutMessage{Channel: channel, Timeout: timeout}
}

func (m *SearchTimeoutMessage) MessageID() byte { return idSearchTimeout }

func (m *SearchTimeoutMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idSearchTimeout, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Timeout
	return 2, nil
}

// LowPrioritySearchTimeoutMessage sets the low-priority search timeout.
type LowPrioritySearchTimeoutMessage struct {
	Channel uint8
	Timeout uint8
}

func LowPrioritySearchTimeout(channel, timeout uint8) *LowPrioritySearchTimeoutMessage {
	return &LowPrioritySearchTimeoutMessage{Channel: channel, Timeout: timeout}
}

func (m *LowPrioritySearchTimeoutMessage) MessageID() byte { return idLowPrioSearchTO }

func (m *LowPrioritySearchTimeoutMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idLowPrioSearchTO, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Timeout
	return 2, nil
}

// ChannelRfFrequencyMessage sets the RF frequency as an offset from 2400MHz.
type ChannelRfFrequencyMessage struct {
	Channel   uint8
	Frequency uint8
}

func ChannelRfFrequency(channel, freq uint8) *ChannelRfFrequencyMessage {
	return &ChannelRfFrequencyMessage{Channel: channel, Frequency: freq}
}

func (m *ChannelRfFrequencyMessage) MessageID() byte { return idChannelRfFreq }

func (m *ChannelRfFrequencyMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idChannelRfFreq, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Frequency
	return 2, nil
}

// SetNetworkKeyMessage programs an 8-byte network key into a network slot.
type SetNetworkKeyMessage struct {
	NetworkNumber uint8
	Key           [8]byte
}

func SetNetworkKey(network uint8, key [8]byte) *SetNetworkKeyMessage {
	return &SetNetworkKeyMessage{NetworkNumber: network, Key: key}
}

func (m *SetNetworkKeyMessage) MessageID() byte { return idSetNetworkKey }

func (m *SetNetworkKeyMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 9); err != nil {
		return 0, &PackError{MessageID: idSetNetworkKey, Err: err}
	}
	buf[0] = m.NetworkNumber
	copy(buf[1:9], m.Key[:])
	return 9, nil
}

// Set128BitNetworkKeyMessage programs a 16-byte network key.
type Set128BitNetworkKeyMessage struct {
	NetworkNumber uint8
	Key           [16]byte
}

func Set128BitNetworkKey(network uint8, key [16]byte) *Set128BitNetworkKeyMessage {
	return &Set128BitNetworkKeyMessage{NetworkNumber: network, Key: key}
}

func (m *Set128BitNetworkKeyMessage) MessageID() byte { return idSet128NetworkKey }

func (m *Set128BitNetworkKeyMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 17); err != nil {
		return 0, &PackError{MessageID: idSet128NetworkKey, Err: err}
	}
	buf[0] = m.NetworkNumber
	copy(buf[1:17], m.Key[:])
	return 17, nil
}

// TransmitPowerMessage sets the radio-wide default transmit power level.
type TransmitPowerMessage struct{ Power uint8 }

func TransmitPower(power uint8) *TransmitPowerMessage { return &TransmitPowerMessage{Power: power} }

func (m *TransmitPowerMessage) MessageID() byte { return idTransmitPower }

func (m *TransmitPowerMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idTransmitPower, Err: err}
	}
	buf[0] = 0 // filler, reserved
	buf[1] = m.Power
	return 2, nil
}

// SetChannelTransmitPowerMessage sets the per-channel transmit power.
type SetChannelTransmitPowerMessage struct {
	Channel uint8
	Power   uint8
}

func SetChannelTransmitPower(channel, power uint8) *SetChannelTransmitPowerMessage {
	return &SetChannelTransmitPowerMessage{Channel: channel, Power: power}
}

func (m *SetChannelTransmitPowerMessage) MessageID() byte { return idSetTxPower }

func (m *SetChannelTransmitPowerMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idSetTxPower, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Power
	return 2, nil
}

// SearchWaveformMessage selects the search waveform used while acquiring
// a channel. The value is an opaque uint16 (an EnumCatchAll in the
// original: non-standard values round-trip unchanged).
type SearchWaveformMessage struct {
	Channel  uint8
	Waveform uint16
}

func SearchWaveform(channel uint8, waveform uint16) *SearchWaveformMessage {
	return &SearchWaveformMessage{Channel: channel, Waveform: waveform}
}

func (m *SearchWaveformMessage) MessageID() byte { return idSearchWaveform }

func (m *SearchWaveformMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, &PackError{MessageID: idSearchWaveform, Err: err}
	}
	buf[0] = m.Channel
	antfield.PutUint16LE(buf[1:3], m.Waveform)
	return 3, nil
}

// AddChannelIDToListMessage adds a device to a channel's inclusion or
// exclusion list for proximity/RSSI-based search whitelisting.
type AddChannelIDToListMessage struct {
	Channel          uint8
	DeviceNumber     uint16
	DeviceType       uint8
	TransmissionType uint8
	ListIndex        uint8
}

func AddChannelIDToList(channel uint8, deviceNumber uint16, deviceType, transmissionType, listIndex uint8) *AddChannelIDToListMessage {
	return &AddChannelIDToListMessage{Channel: channel, DeviceNumber: deviceNumber, DeviceType: deviceType, TransmissionType: transmissionType, ListIndex: listIndex}
}

func (m *AddChannelIDToListMessage) MessageID() byte { return idAddIDToList }

func (m *AddChannelIDToListMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 6); err != nil {
		return 0, &PackError{MessageID: idAddIDToList, Err: err}
	}
	buf[0] = m.Channel
	antfield.PutUint16LE(buf[1:3], m.DeviceNumber)
	buf[3] = m.DeviceType
	buf[4] = m.TransmissionType
	buf[5] = m.ListIndex
	return 6, nil
}

// ConfigIDListMessage configures how many list entries are active and
// whether the list is an inclusion or exclusion list.
type ConfigIDListMessage struct {
	Channel   uint8
	ListSize  uint8
	Exclusion bool
}

func ConfigIDList(channel, listSize uint8, exclusion bool) *ConfigIDListMessage {
	return &ConfigIDListMessage{Channel: channel, ListSize: listSize, Exclusion: exclusion}
}

func (m *ConfigIDListMessage) MessageID() byte { return idConfigIDList }

func (m *ConfigIDListMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, &PackError{MessageID: idConfigIDList, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.ListSize
	if m.Exclusion {
		buf[2] = 1
	} else {
		buf[2] = 0
	}
	return 3, nil
}

// SerialNumberSetChannelIDMessage sets the channel id's device number from
// the radio's own serial number instead of an explicit value.
type SerialNumberSetChannelIDMessage struct {
	Channel          uint8
	DeviceTypeID     uint8
	TransmissionType uint8
}

func SerialNumberSetChannelID(channel, deviceType, transmissionType uint8) *SerialNumberSetChannelIDMessage {
	return &SerialNumberSetChannelIDMessage{Channel: channel, DeviceTypeID: deviceType, TransmissionType: transmissionType}
}

func (m *SerialNumberSetChannelIDMessage) MessageID() byte { return idSerialNumSetID }

func (m *SerialNumberSetChannelIDMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, &PackError{MessageID: idSerialNumSetID, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.DeviceTypeID
	buf[2] = m.TransmissionType
	return 3, nil
}

// EnableExtRxMessagesMessage toggles extended-info trailers on received
// data messages radio-wide.
type EnableExtRxMessagesMessage struct{ Enable bool }

func EnableExtRxMessages(enable bool) *EnableExtRxMessagesMessage {
	return &EnableExtRxMessagesMessage{Enable: enable}
}

func (m *EnableExtRxMessagesMessage) MessageID() byte { return idEnableExtRxMsgs }

func (m *EnableExtRxMessagesMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idEnableExtRxMsgs, Err: err}
	}
	buf[0] = 0
	if m.Enable {
		buf[1] = 1
	}
	return 2, nil
}

// EnableLEDMessage toggles the radio's status LED on channel events.
type EnableLEDMessage struct{ Enable bool }

func EnableLED(enable bool) *EnableLEDMessage { return &EnableLEDMessage{Enable: enable} }

func (m *EnableLEDMessage) MessageID() byte { return idEnableLED }

func (m *EnableLEDMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idEnableLED, Err: err}
	}
	buf[0] = 0
	if m.Enable {
		buf[1] = 1
	}
	return 2, nil
}

// CrystalEnableMessage requests the radio enable its crystal oscillator
// ahead of the usual power-up sequence.
type CrystalEnableMessage struct{}

func CrystalEnable() *CrystalEnableMessage { return &CrystalEnableMessage{} }
func (m *CrystalEnableMessage) MessageID() byte { return idCrystalEnable }
func (m *CrystalEnableMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 1); err != nil {
		return 0, &PackError{MessageID: idCrystalEnable, Err: err}
	}
	buf[0] = 0
	return 1, nil
}

// LibConfigMessage enables optional library features (extended rx
// messages, etc.) via a bitfield.
type LibConfigMessage struct{ Flags uint8 }

func LibConfig(flags uint8) *LibConfigMessage { return &LibConfigMessage{Flags: flags} }
func (m *LibConfigMessage) MessageID() byte   { return idLibConfig }
func (m *LibConfigMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idLibConfig, Err: err}
	}
	buf[0] = 0
	buf[1] = m.Flags
	return 2, nil
}

// FrequencyAgilityMessage sets the up-to-3 frequencies the channel hops
// between. Non-zero defaults mirror the original's 3/39/75.
type FrequencyAgilityMessage struct {
	Channel    uint8
	Frequency1 uint8
	Frequency2 uint8
	Frequency3 uint8
}

func FrequencyAgility(channel uint8) *FrequencyAgilityMessage {
	return &FrequencyAgilityMessage{Channel: channel, Frequency1: 3, Frequency2: 39, Frequency3: 75}
}

func (m *FrequencyAgilityMessage) MessageID() byte { return idFrequencyAgility }

func (m *FrequencyAgilityMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 4); err != nil {
		return 0, &PackError{MessageID: idFrequencyAgility, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Frequency1
	buf[2] = m.Frequency2
	buf[3] = m.Frequency3
	return 4, nil
}

// ProximitySearchMessage sets an RSSI-threshold bin used to prioritize
// nearby peers during search.
type ProximitySearchMessage struct {
	Channel  uint8
	Bin      uint8
}

func ProximitySearch(channel, bin uint8) *ProximitySearchMessage {
	return &ProximitySearchMessage{Channel: channel, Bin: bin}
}

func (m *ProximitySearchMessage) MessageID() byte { return idProximitySearch }

func (m *ProximitySearchMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idProximitySearch, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Bin
	return 2, nil
}

// ConfigureEventBufferMessage configures the radio's internal event
// buffer (size threshold and time threshold) used to coalesce callbacks.
type ConfigureEventBufferMessage struct {
	Config         uint8
	Size           uint16
	TimeThreshold  uint16
}

func ConfigureEventBuffer(config uint8, size, timeThreshold uint16) *ConfigureEventBufferMessage {
	return &ConfigureEventBufferMessage{Config: config, Size: size, TimeThreshold: timeThreshold}
}

func (m *ConfigureEventBufferMessage) MessageID() byte { return idConfigEventBuffer }

func (m *ConfigureEventBufferMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 6); err != nil {
		return 0, &PackError{MessageID: idConfigEventBuffer, Err: err}
	}
	buf[0] = 0
	buf[1] = m.Config
	antfield.PutUint16LE(buf[2:4], m.Size)
	antfield.PutUint16LE(buf[4:6], m.TimeThreshold)
	return 6, nil
}

// ChannelSearchPriorityMessage sets a channel's relative search priority.
type ChannelSearchPriorityMessage struct {
	Channel  uint8
	Priority uint8
}

func ChannelSearchPriority(channel, priority uint8) *ChannelSearchPriorityMessage {
	return &ChannelSearchPriorityMessage{Channel: channel, Priority: priority}
}

func (m *ChannelSearchPriorityMessage) MessageID() byte { return idChannelSearchPrio }

func (m *ChannelSearchPriorityMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idChannelSearchPrio, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Priority
	return 2, nil
}

// HighDutySearchMessage enables high-duty-cycle search with an optional
// suppression-cycle extension.
type HighDutySearchMessage struct {
	Enable             bool
	suppressionCycle   *uint8
}

func HighDutySearch(enable bool) *HighDutySearchMessage { return &HighDutySearchMessage{Enable: enable} }

func (m *HighDutySearchMessage) WithSuppressionCycle(cycles uint8) *HighDutySearchMessage {
	m.suppressionCycle = &cycles
	return m
}

func (m *HighDutySearchMessage) MessageID() byte { return idHighDutySearch }

func (m *HighDutySearchMessage) SerializeMessage(buf []byte) (int, error) {
	n := 1
	if m.suppressionCycle != nil {
		n = 2
	}
	if err := antfield.Require(buf, n); err != nil {
		return 0, &PackError{MessageID: idHighDutySearch, Err: err}
	}
	if m.Enable {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	if m.suppressionCycle != nil {
		buf[1] = *m.suppressionCycle
	}
	return n, nil
}

// ConfigureEventFilterMessage selects which categories of events are
// reported, as an oddly-ordered two-byte bitfield carried opaquely.
type ConfigureEventFilterMessage struct{ Filter uint16 }

func ConfigureEventFilter(filter uint16) *ConfigureEventFilterMessage {
	return &ConfigureEventFilterMessage{Filter: filter}
}

func (m *ConfigureEventFilterMessage) MessageID() byte { return idEventFilter }

func (m *ConfigureEventFilterMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idEventFilter, Err: err}
	}
	antfield.PutUint16LE(buf[0:2], m.Filter)
	return 2, nil
}

// SetSelectiveDataUpdateMaskMessage sets the per-byte mask used to elide
// unchanged broadcast data bytes.
type SetSelectiveDataUpdateMaskMessage struct {
	MaskIndex uint8
	Mask      uint8
}

func SetSelectiveDataUpdateMask(index, mask uint8) *SetSelectiveDataUpdateMaskMessage {
	return &SetSelectiveDataUpdateMaskMessage{MaskIndex: index, Mask: mask}
}

func (m *SetSelectiveDataUpdateMaskMessage) MessageID() byte { return idSelectiveDataMask }

func (m *SetSelectiveDataUpdateMaskMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idSelectiveDataMask, Err: err}
	}
	buf[0] = m.MaskIndex
	buf[1] = m.Mask
	return 2, nil
}

// EnableSingleChannelEncryptionMessage turns on AES encryption for one
// channel with the given negotiation mode.
type EnableSingleChannelEncryptionMessage struct {
	Channel            uint8
	Mode               uint8
}

func EnableSingleChannelEncryption(channel, mode uint8) *EnableSingleChannelEncryptionMessage {
	return &EnableSingleChannelEncryptionMessage{Channel: channel, Mode: mode}
}

func (m *EnableSingleChannelEncryptionMessage) MessageID() byte { return idEnableSingleEnc }

func (m *EnableSingleChannelEncryptionMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 2); err != nil {
		return 0, &PackError{MessageID: idEnableSingleEnc, Err: err}
	}
	buf[0] = m.Channel
	buf[1] = m.Mode
	return 2, nil
}

// SetEncryptionKeyMessage programs a 16-byte AES key into an encryption
// key slot. Key generation follows the teacher's protocol/crypto.go
// fallback idiom; see antmsg/keys.go.
type SetEncryptionKeyMessage struct {
	KeyIndex uint8
	Key      [16]byte
}

func SetEncryptionKey(index uint8, key [16]byte) *SetEncryptionKeyMessage {
	return &SetEncryptionKeyMessage{KeyIndex: index, Key: key}
}

func (m *SetEncryptionKeyMessage) MessageID() byte { return idSetEncryptionKey }

func (m *SetEncryptionKeyMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 17); err != nil {
		return 0, &PackError{MessageID: idSetEncryptionKey, Err: err}
	}
	buf[0] = m.KeyIndex
	copy(buf[1:17], m.Key[:])
	return 17, nil
}

// encryptionInfoKind selects which of the three SetEncryptionInfo shapes
// is being sent, matching the discriminant byte the original carries.
type encryptionInfoKind uint8

const (
	encInfoEncryptionID        encryptionInfoKind = 0
	encInfoUserInformationStr  encryptionInfoKind = 1
	encInfoRandomSeed          encryptionInfoKind = 2
)

// SetEncryptionInfoEncryptionIDMessage sets the 4-byte encryption id used
// to identify an encrypted broadcaster.
type SetEncryptionInfoEncryptionIDMessage struct{ EncryptionID [4]byte }

func SetEncryptionInfoEncryptionID(id [4]byte) *SetEncryptionInfoEncryptionIDMessage {
	return &SetEncryptionInfoEncryptionIDMessage{EncryptionID: id}
}

func (m *SetEncryptionInfoEncryptionIDMessage) MessageID() byte { return idSetEncryptionInfo }

func (m *SetEncryptionInfoEncryptionIDMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 5); err != nil {
		return 0, &PackError{MessageID: idSetEncryptionInfo, Err: err}
	}
	buf[0] = byte(encInfoEncryptionID)
	copy(buf[1:5], m.EncryptionID[:])
	return 5, nil
}

// SetEncryptionInfoUserInformationStringMessage sets the 19-byte free-form
// user information string broadcast alongside the encryption id.
type SetEncryptionInfoUserInformationStringMessage struct{ Text [19]byte }

func SetEncryptionInfoUserInformationString(text [19]byte) *SetEncryptionInfoUserInformationStringMessage {
	return &SetEncryptionInfoUserInformationStringMessage{Text: text}
}

func (m *SetEncryptionInfoUserInformationStringMessage) MessageID() byte { return idSetEncryptionInfo }

func (m *SetEncryptionInfoUserInformationStringMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 20); err != nil {
		return 0, &PackError{MessageID: idSetEncryptionInfo, Err: err}
	}
	buf[0] = byte(encInfoUserInformationStr)
	copy(buf[1:20], m.Text[:])
	return 20, nil
}

// SetEncryptionInfoRandomSeedMessage sets the 2-byte random seed used in
// the encryption negotiation handshake.
type SetEncryptionInfoRandomSeedMessage struct{ Seed [2]byte }

func SetEncryptionInfoRandomSeed(seed [2]byte) *SetEncryptionInfoRandomSeedMessage {
	return &SetEncryptionInfoRandomSeedMessage{Seed: seed}
}

func (m *SetEncryptionInfoRandomSeedMessage) MessageID() byte { return idSetEncryptionInfo }

func (m *SetEncryptionInfoRandomSeedMessage) SerializeMessage(buf []byte) (int, error) {
	if err := antfield.Require(buf, 3); err != nil {
		return 0, &PackError{MessageID: idSetEncryptionInfo, Err: err}
	}
	buf[0] = byte(encInfoRandomSeed)
	copy(buf[1:3], m.Seed[:])
	return 3, nil
}

// ConfigureAdvancedBurstMessage enables/configures advanced-burst transfer
// with two optional trailing extensions (stall count, retry count). A
// caller may not supply retry count without stall count (spec.md §4.2) —
// enforced at SerializeMessage time, which rejects a retry count set
// without a stall count.
type ConfigureAdvancedBurstMessage struct {
	Enable             bool
	MaxPacketLength    uint8
	RequiredFields     uint32
	OptionalFields     uint16
	stallCount         *uint16
	retryCount         *uint8
}

func ConfigureAdvancedBurst(enable bool, maxPacketLength uint8, required uint32, optional uint16) *ConfigureAdvancedBurstMessage {
	return &ConfigureAdvancedBurstMessage{Enable: enable, MaxPacketLength: maxPacketLength, RequiredFields: required, OptionalFields: optional}
}

// WithStallCount appends the optional stall-count extension.
func (m *ConfigureAdvancedBurstMessage) WithStallCount(n uint16) *ConfigureAdvancedBurstMessage {
	m.stallCount = &n
	return m
}

// WithRetryCount appends the optional retry-count extension. Serializing
// the message is a pack error unless a stall count is also set (by
// WithStallCount, called in either order), since the wire format has no
// way to carry retry count alone.
func (m *ConfigureAdvancedBurstMessage) WithRetryCount(n uint8) *ConfigureAdvancedBurstMessage {
	m.retryCount = &n
	return m
}

func (m *ConfigureAdvancedBurstMessage) MessageID() byte { return idAdvancedBurst }

func (m *ConfigureAdvancedBurstMessage) SerializeMessage(buf []byte) (int, error) {
	if m.retryCount != nil && m.stallCount == nil {
		return 0, &PackError{MessageID: idAdvancedBurst, Err: &antfield.InvalidValueError{Field: "retry_count", Value: uint64(*m.retryCount)}}
	}
	n := 9
	if m.stallCount != nil {
		n = 11
	}
	if m.retryCount != nil {
		n = 12
	}
	if err := antfield.Require(buf, n); err != nil {
		return 0, &PackError{MessageID: idAdvancedBurst, Err: err}
	}
	buf[0] = 0
	if m.Enable {
		buf[1] = 1
	} else {
		buf[1] = 0
	}
	buf[2] = m.MaxPacketLength
	antfield.PutUint32LE(buf[3:7], m.RequiredFields)
	antfield.PutUint16LE(buf[7:9], m.OptionalFields)
	if m.stallCount != nil {
		antfield.PutUint16LE(buf[9:11], *m.stallCount)
	}
	if m.retryCount != nil {
		buf[11] = *m.retryCount
	}
	return n, nil
}
