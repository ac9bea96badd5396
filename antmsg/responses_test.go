package antmsg

import (
	"testing"

	"github.com/antcomm/anthost/antfield"
)

func TestDecodeCapabilitiesFieldOrder(t *testing.T) {
	// Base 4 bytes plus all four cascading optionals, in wire order:
	// AdvOptions2, MaxSensRcoreChannels, AdvOptions3, AdvOptions4.
	payload := []byte{8, 2, 0x00, 0x00, 0x05, 16, 0x01, 0x01}
	got, err := decodeCapabilities(idCapabilities, payload)
	if err != nil {
		t.Fatalf("decodeCapabilities: %v", err)
	}
	m, ok := got.(*CapabilitiesMessage)
	if !ok {
		t.Fatalf("got %T, want *CapabilitiesMessage", got)
	}
	if m.AdvOptions2 == nil || *m.AdvOptions2 != AdvancedOptions2(5) {
		t.Fatalf("AdvOptions2 = %v, want 5", m.AdvOptions2)
	}
	if m.MaxSensRcoreChannels == nil || *m.MaxSensRcoreChannels != 16 {
		t.Fatalf("MaxSensRcoreChannels = %v, want 16", m.MaxSensRcoreChannels)
	}
	if m.AdvOptions3 == nil || *m.AdvOptions3 != AdvancedOptions3(1) {
		t.Fatalf("AdvOptions3 = %v, want 1", m.AdvOptions3)
	}
	if m.AdvOptions4 == nil || *m.AdvOptions4 != AdvancedOptions4(1) {
		t.Fatalf("AdvOptions4 = %v, want 1", m.AdvOptions4)
	}
}

func TestDecodeCapabilitiesPartialOptionals(t *testing.T) {
	// Base plus only AdvOptions2: MaxSensRcoreChannels/AdvOptions3/AdvOptions4
	// must stay nil, not absorb the wrong byte.
	payload := []byte{8, 2, 0x00, 0x00, 0x05}
	got, err := decodeCapabilities(idCapabilities, payload)
	if err != nil {
		t.Fatalf("decodeCapabilities: %v", err)
	}
	m := got.(*CapabilitiesMessage)
	if m.AdvOptions2 == nil || *m.AdvOptions2 != AdvancedOptions2(5) {
		t.Fatalf("AdvOptions2 = %v, want 5", m.AdvOptions2)
	}
	if m.MaxSensRcoreChannels != nil {
		t.Fatalf("MaxSensRcoreChannels = %v, want nil", m.MaxSensRcoreChannels)
	}
}

func TestDecodeCapabilitiesReservedBitViolation(t *testing.T) {
	payload := []byte{8, 2, 0xC0, 0x00} // standard_options bits 6:7 set
	_, err := decodeCapabilities(idCapabilities, payload)
	if _, ok := err.(*antfield.ReservedBitViolationError); !ok {
		t.Fatalf("err = %v (%T), want *antfield.ReservedBitViolationError", err, err)
	}
}

func TestDecodeChannelIDReservedBitViolation(t *testing.T) {
	payload := []byte{0, 0x44, 0x33, 120, 0x08} // transmission_type bit 3 set
	_, err := decodeChannelID(idChannelID, payload)
	if _, ok := err.(*antfield.ReservedBitViolationError); !ok {
		t.Fatalf("err = %v (%T), want *antfield.ReservedBitViolationError", err, err)
	}
}
