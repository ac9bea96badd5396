package antrouter

import (
	"testing"

	"github.com/antcomm/anthost/antchannel"
	"github.com/antcomm/anthost/antdriver"
	"github.com/antcomm/anthost/antmsg"
)

// scriptedDriver wraps a StubDriver and auto-injects a Capabilities reply
// the moment it observes the RequestMessage(Capabilities) send, standing
// in for the radio's own asynchronous response in a single synchronous
// test call.
type scriptedDriver struct {
	*antdriver.StubDriver
	capabilitiesPayload []byte
}

func (d *scriptedDriver) SendMessage(m antmsg.Outbound) error {
	if err := d.StubDriver.SendMessage(m); err != nil {
		return err
	}
	if req, ok := m.(*antmsg.RequestMessageData); ok && req.RequestID == antmsg.RequestCapabilities {
		d.InjectRx(buildFrame(0x54, d.capabilitiesPayload))
	}
	return nil
}

// newRouterWithCapabilities constructs a Router whose capabilities poll
// is answered with max_ant_channels=maxChannels, reproducing spec.md §8
// scenario 3.
func newRouterWithCapabilities(t *testing.T, maxChannels uint8) (*Router, *scriptedDriver) {
	t.Helper()
	d := &scriptedDriver{
		StubDriver:          antdriver.NewStubDriver(64),
		capabilitiesPayload: []byte{maxChannels, 0, 0, 0},
	}

	r, err := New(d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, d
}

func buildFrame(id byte, payload []byte) []byte {
	frame := append([]byte{0xA5, byte(len(payload)), id}, payload...)
	var x byte
	for _, b := range frame {
		x ^= b
	}
	return append(frame, x)
}

// TestRouterStartup reproduces spec.md §8 scenario 3.
func TestRouterStartup(t *testing.T) {
	r, _ := newRouterWithCapabilities(t, 8)
	if r.MaxChannelsReported() != 8 {
		t.Fatalf("max channels reported = %d, want 8", r.MaxChannelsReported())
	}

	if err := r.AddChannelAtIndex(antchannel.New(7, antchannel.StaticConfig{}), 7); err != nil {
		t.Fatalf("AddChannelAtIndex(7): %v", err)
	}
	err := r.AddChannelAtIndex(antchannel.New(8, antchannel.StaticConfig{}), 8)
	if _, ok := err.(*ChannelOutOfBoundsError); !ok {
		t.Fatalf("AddChannelAtIndex(8) err = %v, want ChannelOutOfBoundsError", err)
	}
}

func TestAddChannelOutOfSlots(t *testing.T) {
	r, _ := newRouterWithCapabilities(t, uint8(MaxChannels))
	for i := 0; i < MaxChannels; i++ {
		if _, err := r.AddChannel(antchannel.New(uint8(i), antchannel.StaticConfig{})); err != nil {
			t.Fatalf("AddChannel(%d): %v", i, err)
		}
	}
	if _, err := r.AddChannel(antchannel.New(99, antchannel.StaticConfig{})); err == nil {
		t.Fatalf("expected OutOfChannelsError")
	}
}

func TestRemoveChannelEmitsCloseThenUnAssign(t *testing.T) {
	r, d := newRouterWithCapabilities(t, 8)
	idx, err := r.AddChannel(antchannel.New(0, antchannel.StaticConfig{}))
	if err != nil {
		t.Fatalf("AddChannel: %v", err)
	}
	before := len(d.GetTxLog())
	if err := r.RemoveChannel(idx); err != nil {
		t.Fatalf("RemoveChannel: %v", err)
	}
	log := d.GetTxLog()
	if len(log) != before+2 {
		t.Fatalf("tx log grew by %d, want 2", len(log)-before)
	}
	if log[before][2] != antmsg.CloseChannel(0).MessageID() {
		t.Fatalf("expected CloseChannel first")
	}
	if log[before+1][2] != antmsg.UnAssignChannel(0).MessageID() {
		t.Fatalf("expected UnAssignChannel second")
	}
}

func TestCapabilitiesBroadcastUpdatesMaxChannels(t *testing.T) {
	r, d := newRouterWithCapabilities(t, 8)
	d.InjectRx(buildFrame(0x54, []byte{16, 0, 0, 0}))
	if err := r.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if r.MaxChannelsReported() != 16 {
		t.Fatalf("max channels reported = %d, want 16 after broadcast update", r.MaxChannelsReported())
	}
}
