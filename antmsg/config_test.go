package antmsg

import (
	"bytes"
	"testing"
)

// TestAddChannelIDToListEncoding is the end-to-end fixture from spec.md
// §8 scenario 1: channel=2, device_number=0x3344, device_type_id=120,
// transmission_type=0x22, list_index=2 packs to payload
// 02 44 33 78 22 02 (frame bytes A4 06 59 02 44 33 78 22 02 D6).
func TestAddChannelIDToListEncoding(t *testing.T) {
	m := AddChannelIDToList(2, 0x3344, 120, 0x22, 2)
	buf := make([]byte, 16)
	n, err := m.SerializeMessage(buf)
	if err != nil {
		t.Fatalf("SerializeMessage: %v", err)
	}
	want := []byte{0x02, 0x44, 0x33, 0x78, 0x22, 0x02}
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("payload = % X, want % X", buf[:n], want)
	}
	if m.MessageID() != 0x59 {
		t.Fatalf("MessageID = 0x%02X, want 0x59", m.MessageID())
	}
}

func TestChannelIDRoundTrip(t *testing.T) {
	m := ChannelID(3, 0xABCD, 0x81, 0x05)
	buf := make([]byte, 16)
	n, err := m.SerializeMessage(buf)
	if err != nil {
		t.Fatalf("SerializeMessage: %v", err)
	}
	decoded, err := decodeChannelID(idChannelID, buf[:n])
	if err != nil {
		t.Fatalf("decodeChannelID: %v", err)
	}
	got, ok := decoded.(*ChannelIDMessage)
	if !ok {
		t.Fatalf("decoded type = %T, want *ChannelIDMessage", decoded)
	}
	if *got != *m {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, m)
	}
	if !PairingBit(got.DeviceType) {
		t.Fatalf("expected pairing bit set in decoded device type 0x%02X", got.DeviceType)
	}
}

func TestConfigureAdvancedBurstRetryRequiresStall(t *testing.T) {
	m := ConfigureAdvancedBurst(true, 8, 0, 0).WithRetryCount(3)
	buf := make([]byte, 16)
	if _, err := m.SerializeMessage(buf); err == nil {
		t.Fatalf("expected pack error when retry count is set without stall count")
	}
}

func TestConfigureAdvancedBurstWithExtensions(t *testing.T) {
	m := ConfigureAdvancedBurst(true, 16, 0x0000000F, 0x0003).WithStallCount(5).WithRetryCount(2)
	buf := make([]byte, 16)
	n, err := m.SerializeMessage(buf)
	if err != nil {
		t.Fatalf("SerializeMessage: %v", err)
	}
	if n != 12 {
		t.Fatalf("n = %d, want 12", n)
	}
	if buf[11] != 2 {
		t.Fatalf("retry count byte = %d, want 2", buf[11])
	}
}
