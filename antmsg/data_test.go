package antmsg

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtendedInfoFlagBytes(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want *ExtendedInfo
	}{
		{
			name: "no extensions",
			buf:  []byte{0x00},
			want: &ExtendedInfo{},
		},
		{
			name: "timestamp only",
			buf:  []byte{0x20, 0x34, 0x12},
			want: &ExtendedInfo{Timestamp: &TimestampOutput{Timestamp: 0x1234}},
		},
		{
			name: "rssi dbm + timestamp",
			buf:  []byte{0x60, byte(RSSIFormatDbm), 0xCE, 0x00, 0x34, 0x12},
			want: &ExtendedInfo{
				RSSI:      &RSSIOutput{Format: RSSIFormatDbm, Measurement: -50},
				Timestamp: &TimestampOutput{Timestamp: 0x1234},
			},
		},
		{
			name: "rssi agc + timestamp",
			buf:  []byte{0x60, byte(RSSIFormatAGC), 0xCE, 0x05, 0x00, 0x34, 0x12},
			want: &ExtendedInfo{
				RSSI:      &RSSIOutput{Format: RSSIFormatAGC, Measurement: -50, ThresholdConfig: 5},
				Timestamp: &TimestampOutput{Timestamp: 0x1234},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeExtendedInfo(idBroadcastData, tc.buf)
			if err != nil {
				t.Fatalf("decodeExtendedInfo: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("decodeExtendedInfo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtendedInfoResidualBytesIsError(t *testing.T) {
	if _, err := decodeExtendedInfo(idBroadcastData, []byte{0x20, 0x34, 0x12, 0xFF}); err == nil {
		t.Fatalf("expected error for residual trailing byte")
	}
}

func TestBroadcastDataRoundTrip(t *testing.T) {
	payload := DataPayload{1, 2, 3, 4, 5, 6, 7, 8}
	m := BroadcastData(4, payload)
	buf := make([]byte, 32)
	n, err := m.SerializeMessage(buf)
	if err != nil {
		t.Fatalf("SerializeMessage: %v", err)
	}
	decoded, err := decodeBroadcastData(idBroadcastData, buf[:n])
	if err != nil {
		t.Fatalf("decodeBroadcastData: %v", err)
	}
	got := decoded.(*BroadcastDataMessage)
	if got.Channel != m.Channel || got.Payload != m.Payload {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, m)
	}
}

func TestChannelSequencePacking(t *testing.T) {
	cs := ChannelSequence{SequenceNumber: 5, Channel: 17}
	b := cs.pack()
	got := unpackChannelSequence(b)
	if got != cs {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, cs)
	}
}

func TestChannelEventVsResponseOverload(t *testing.T) {
	event, err := decodeChannelEventOrResponse(idChannelEventOrResponse, []byte{3, 0x01, byte(EventTx)})
	if err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if _, ok := event.(*ChannelEventMessage); !ok {
		t.Fatalf("marker 0x01 decoded as %T, want *ChannelEventMessage", event)
	}

	resp, err := decodeChannelEventOrResponse(idChannelEventOrResponse, []byte{3, idAssignChannel, byte(ResponseNoError)})
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	r, ok := resp.(*ChannelResponseMessage)
	if !ok {
		t.Fatalf("non-0x01 marker decoded as %T, want *ChannelResponseMessage", resp)
	}
	if r.RespondingToID != idAssignChannel || r.Code != ResponseNoError {
		t.Fatalf("got %+v", r)
	}
}

func TestAdvancedBurstLengthDispatch(t *testing.T) {
	caps, err := decodeAdvancedBurstResponse(idAdvancedBurst, []byte{32, 0x03})
	if err != nil {
		t.Fatalf("decode capabilities: %v", err)
	}
	if _, ok := caps.(*AdvancedBurstCapabilitiesMessage); !ok {
		t.Fatalf("payload length 2 decoded as %T, want capabilities", caps)
	}

	noExt, err := decodeAdvancedBurstResponse(idAdvancedBurst, bytes.Repeat([]byte{0}, 9))
	if err != nil {
		t.Fatalf("decode config (no ext): %v", err)
	}
	cfg := noExt.(*AdvancedBurstCurrentConfigurationMessage)
	if cfg.StallCount != nil || cfg.RetryCount != nil {
		t.Fatalf("expected no extensions at length 9, got %+v", cfg)
	}

	withStall, err := decodeAdvancedBurstResponse(idAdvancedBurst, bytes.Repeat([]byte{0}, 11))
	if err != nil {
		t.Fatalf("decode config (stall): %v", err)
	}
	cfg2 := withStall.(*AdvancedBurstCurrentConfigurationMessage)
	if cfg2.StallCount == nil || cfg2.RetryCount != nil {
		t.Fatalf("expected stall-only extension at length 11, got %+v", cfg2)
	}

	withBoth, err := decodeAdvancedBurstResponse(idAdvancedBurst, bytes.Repeat([]byte{0}, 12))
	if err != nil {
		t.Fatalf("decode config (stall+retry): %v", err)
	}
	cfg3 := withBoth.(*AdvancedBurstCurrentConfigurationMessage)
	if cfg3.StallCount == nil || cfg3.RetryCount == nil {
		t.Fatalf("expected stall+retry extension at length 12, got %+v", cfg3)
	}
}
