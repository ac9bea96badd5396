package antchannel

import (
	"testing"

	"github.com/antcomm/anthost/antmsg"
)

func newTestChannel() *Channel {
	return New(3, StaticConfig{
		ChannelType:      byte(antmsg.ChannelTypeSlave),
		Network:          0,
		DeviceNumber:     0,
		DeviceType:       120,
		TransmissionType: 1,
		RFFrequency:      57,
		Period:           8070,
		SearchTimeout:    12,
	})
}

func ackResponse(id byte) *antmsg.ChannelResponseMessage {
	return &antmsg.ChannelResponseMessage{Channel: 3, RespondingToID: id, Code: antmsg.ResponseNoError}
}

// TestConfigureWalkProgramsNetworkKey reproduces the network-key variant of
// the configure walk: a channel whose StaticConfig carries a key sends
// SetNetworkKey before AssignChannel, selecting the same network_number
// AssignChannel later references.
func TestConfigureWalkProgramsNetworkKey(t *testing.T) {
	key := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	c := New(3, StaticConfig{
		ChannelType: byte(antmsg.ChannelTypeSlave),
		Network:     2,
		NetworkKey:  &key,
		DeviceType:  120,
	})

	var sentIDs []byte
	drive := func() {
		c.Advance()
		for _, m := range c.Pending() {
			sentIDs = append(sentIDs, m.MessageID())
			if err := c.Step(ackResponse(m.MessageID())); err != nil {
				t.Fatalf("unexpected configure error: %v", err)
			}
		}
	}
	for i := 0; i < 4; i++ {
		drive()
	}

	want := []byte{
		antmsg.CloseChannel(3).MessageID(),
		antmsg.UnAssignChannel(3).MessageID(),
		antmsg.SetNetworkKey(2, key).MessageID(),
		antmsg.AssignChannel(3, antmsg.ChannelTypeSlave, 2).MessageID(),
	}
	if len(sentIDs) != len(want) {
		t.Fatalf("sent %d configure messages, want %d (got % X)", len(sentIDs), len(want), sentIDs)
	}
	for i := range want {
		if sentIDs[i] != want[i] {
			t.Fatalf("step %d sent id 0x%02X, want 0x%02X", i, sentIDs[i], want[i])
		}
	}
}

// TestConfigureWalk reproduces spec.md §8 scenario 4: the full ordered
// configure walk, followed by the post-Identify data/ChannelId handshake.
func TestConfigureWalk(t *testing.T) {
	c := newTestChannel()

	var sentIDs []byte
	drive := func() {
		c.Advance()
		for _, m := range c.Pending() {
			sentIDs = append(sentIDs, m.MessageID())
			if err := c.Step(ackResponse(m.MessageID())); err != nil {
				t.Fatalf("unexpected configure error: %v", err)
			}
		}
	}

	for i := 0; i < 7; i++ {
		drive()
	}

	want := []byte{
		antmsg.CloseChannel(3).MessageID(),
		antmsg.UnAssignChannel(3).MessageID(),
		antmsg.AssignChannel(3, antmsg.ChannelTypeSlave, 0).MessageID(),
		antmsg.ChannelID(3, 0, 120, 1).MessageID(),
		antmsg.ChannelRfFrequency(3, 57).MessageID(),
		antmsg.ChannelPeriod(3, 8070).MessageID(),
		antmsg.SearchTimeout(3, 12).MessageID(),
	}
	if len(sentIDs) != len(want) {
		t.Fatalf("sent %d configure messages, want %d (got % X)", len(sentIDs), len(want), sentIDs)
	}
	for i := range want {
		if sentIDs[i] != want[i] {
			t.Fatalf("step %d sent id 0x%02X, want 0x%02X", i, sentIDs[i], want[i])
		}
	}
	if c.State() != StateIdentify {
		t.Fatalf("state = %s, want Identify", c.State())
	}

	// A data message while in Identify triggers RequestMessage(ChannelId).
	c.Advance()
	if err := c.Step(antmsg.BroadcastData(3, antmsg.DataPayload{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pending := c.Pending()
	if len(pending) != 1 || pending[0].MessageID() != (&antmsg.RequestMessageData{}).MessageID() {
		t.Fatalf("expected a single RequestMessage, got %+v", pending)
	}

	// The ensuing ChannelId transitions to Done and updates the identity.
	if err := c.Step(antmsg.ChannelID(3, 0x3344, 120, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != StateDone {
		t.Fatalf("state = %s, want Done", c.State())
	}
	num, _, _ := c.GetDeviceID()
	if num != 0x3344 {
		t.Fatalf("device number = %04X, want 3344", num)
	}
}

// TestConfigureErrorLatches reproduces the Error-latching rule: a non-OK
// configure response latches the channel and stops emitting messages until
// ResetState.
func TestConfigureErrorLatches(t *testing.T) {
	c := newTestChannel()
	c.Advance()
	pending := c.Pending()
	if len(pending) != 1 {
		t.Fatalf("expected one queued configure message")
	}
	resp := &antmsg.ChannelResponseMessage{Channel: 3, RespondingToID: pending[0].MessageID(), Code: antmsg.ChannelInWrongState}
	err := c.Step(resp)
	if err == nil {
		t.Fatalf("expected a ConfigureError")
	}
	if c.State() != StateError {
		t.Fatalf("state = %s, want Error", c.State())
	}
	c.Advance()
	if len(c.Pending()) != 0 {
		t.Fatalf("expected no further messages once latched")
	}

	c.ResetState(false)
	if c.State() != StateUnknownClose {
		t.Fatalf("state after reset = %s, want UnknownClose", c.State())
	}
	if c.LastError() != nil {
		t.Fatalf("expected LastError cleared after reset")
	}
}

// TestPairingBitOnMasterWhileOpen reproduces spec.md §8 scenario 5.
func TestPairingBitOnMasterWhileOpen(t *testing.T) {
	c := New(0, StaticConfig{ChannelType: byte(antmsg.ChannelTypeMaster), DeviceType: 5})
	c.state = StateDone
	if err := c.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.Pending() // drain the open message

	if err := c.SetPairingBit(true); err != nil {
		t.Fatalf("SetPairingBit: %v", err)
	}
	pending := c.Pending()
	if len(pending) != 1 {
		t.Fatalf("expected exactly one outbound message, got %d", len(pending))
	}
	idMsg, ok := pending[0].(*antmsg.ChannelIDMessage)
	if !ok {
		t.Fatalf("expected a ChannelIDMessage, got %T", pending[0])
	}
	if !antmsg.PairingBit(idMsg.DeviceType) {
		t.Fatalf("expected pairing bit set")
	}
	if c.State() != StateDone {
		t.Fatalf("state regressed to %s", c.State())
	}
}

func TestPairingBitOnSlaveWhileTrackingFails(t *testing.T) {
	c := newTestChannel()
	c.state = StateDone
	c.status = antmsg.ChannelStateTracking
	if err := c.SetPairingBit(true); err == nil {
		t.Fatalf("expected ChannelInWrongStateError")
	}
}
