package antdriver

import (
	"testing"

	"github.com/antcomm/anthost/antmsg"
)

// TestChecksumFixture reproduces the original driver's checksum test
// fixture: checksum([0xA4,6,0x59,2,0x44,0x33,120,34,2]) == 214.
func TestChecksumFixture(t *testing.T) {
	frame := []byte{0xA4, 6, 0x59, 2, 0x44, 0x33, 120, 34, 2}
	if got := xorChecksum(frame); got != 214 {
		t.Fatalf("checksum = %d, want 214", got)
	}
}

// TestMessagePackingFixture reproduces the original's full-frame fixture
// for AddChannelIdToList: A4 06 59 02 44 33 78 22 02 D6.
func TestMessagePackingFixture(t *testing.T) {
	m := antmsg.AddChannelIDToList(2, 0x3344, 120, 0x22, 2)
	buf := make([]byte, 32)
	n, err := createPackedMessage(m, buf)
	if err != nil {
		t.Fatalf("createPackedMessage: %v", err)
	}
	want := []byte{0xA4, 0x06, 0x59, 0x02, 0x44, 0x33, 0x78, 0x22, 0x02, 0xD6}
	if n != len(want) {
		t.Fatalf("n = %d, want %d", n, len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X (full: % X)", i, buf[i], want[i], buf[:n])
		}
	}
}

// TestBackToBackDecode reproduces spec.md §8 scenario 2: two concatenated
// ChannelId responses decode in two successive calls with an empty buffer
// afterward.
func TestBackToBackDecode(t *testing.T) {
	one := []byte{0xA5, 5, 0x51, 1, 0x44, 0x33, 0x78, 0x22}
	one = append(one, xorChecksum(one))
	two := append(append([]byte{}, one...), one...)

	a := newFrameAssembler(64)
	a.feed(two)

	first, err := a.tryDecode()
	if err != nil {
		t.Fatalf("first tryDecode: %v", err)
	}
	if first == nil {
		t.Fatalf("expected first frame to decode")
	}
	second, err := a.tryDecode()
	if err != nil {
		t.Fatalf("second tryDecode: %v", err)
	}
	if second == nil {
		t.Fatalf("expected second frame to decode")
	}
	if third, err := a.tryDecode(); err != nil || third != nil {
		t.Fatalf("expected empty buffer, got (%v, %v)", third, err)
	}
}

// TestSyncRealignment reproduces spec.md §8's sync-realignment boundary
// case: prepending arbitrary non-sync bytes before a valid frame yields
// the same decoded message, silently.
func TestSyncRealignment(t *testing.T) {
	frame := []byte{0xA4, 1, 0x6F, 0}
	frame = append(frame, xorChecksum(frame))
	garbage := append([]byte{0x00, 0xFF, 0x01}, frame...)

	a := newFrameAssembler(64)
	a.feed(garbage)
	decoded, err := a.tryDecode()
	if err != nil {
		t.Fatalf("unexpected error after realignment: %v", err)
	}
	if decoded == nil {
		t.Fatalf("expected frame to decode after discarding leading garbage")
	}
}

// TestBadChecksumThenGoodFrame reproduces spec.md §8 scenario 6: a bad
// checksum followed by a good frame in the same read.
func TestBadChecksumThenGoodFrame(t *testing.T) {
	bad := []byte{0xA4, 1, 0x6F, 0, 0xFF} // wrong checksum
	good := []byte{0xA4, 1, 0x6F, 0}
	good = append(good, xorChecksum(good))

	a := newFrameAssembler(64)
	a.feed(append(append([]byte{}, bad...), good...))

	_, err := a.tryDecode()
	if err == nil {
		t.Fatalf("expected BadChecksumError on first call")
	}
	if _, ok := err.(*BadChecksumError); !ok {
		t.Fatalf("err = %T, want *BadChecksumError", err)
	}

	var decoded *antmsg.Decoded
	for i := 0; i < len(bad)+1 && decoded == nil; i++ {
		decoded, err = a.tryDecode()
		if err != nil {
			if _, ok := err.(*BadChecksumError); !ok {
				t.Fatalf("unexpected error draining to resync: %v", err)
			}
		}
	}
	if decoded == nil {
		t.Fatalf("expected eventual successful decode")
	}
}

func TestStubDriverRoundTrip(t *testing.T) {
	d := NewStubDriver(64)
	if err := d.SendMessage(antmsg.ResetSystem()); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	log := d.GetTxLog()
	if len(log) != 1 {
		t.Fatalf("tx log length = %d, want 1", len(log))
	}
	if log[0][0] != SyncWrite || log[0][2] != 0x4A {
		t.Fatalf("unexpected tx frame: % X", log[0])
	}

	reply := []byte{0xA5, 1, 0x6F, 0}
	reply = append(reply, xorChecksum(reply))
	d.InjectRx(reply)
	decoded, err := d.GetNextMessage()
	if err != nil {
		t.Fatalf("GetNextMessage: %v", err)
	}
	if decoded == nil || decoded.MessageID != 0x6F {
		t.Fatalf("decoded = %+v", decoded)
	}
}
