package antdriver

import (
	"sync"

	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// StubDriver is an in-memory Driver for host-side tests, adapted from the
// teacher's driver/stub/stub_driver.go: the same InjectRx/GetTxLog
// test-helper shape, generalized from raw packet bytes to full ANT
// frames so a test can inject a radio reply and assert on an encoded
// outbound frame.
type StubDriver struct {
	mu        sync.Mutex
	assembler *frameAssembler
	txLog     [][]byte
	sendBuf   [512]byte
}

// NewStubDriver constructs a StubDriver with the given payload cap.
func NewStubDriver(payloadCap int) *StubDriver {
	return &StubDriver{assembler: newFrameAssembler(payloadCap)}
}

// SetMetrics installs an optional Registry; nil (the default) disables
// metrics entirely.
func (d *StubDriver) SetMetrics(m *antmetrics.Registry) { d.assembler.metrics = m }

// InjectRx queues raw bytes (typically one or more full frames) to be
// consumed by subsequent GetNextMessage calls, mirroring the teacher's
// stub.Driver.InjectRx.
func (d *StubDriver) InjectRx(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.assembler.feed(data)
}

// GetTxLog returns a copy of every frame SendMessage has written, in
// order, mirroring the teacher's stub.Driver.GetTxLog.
func (d *StubDriver) GetTxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.txLog))
	for i, f := range d.txLog {
		cp := make([]byte, len(f))
		copy(cp, f)
		out[i] = cp
	}
	return out
}

func (d *StubDriver) GetNextMessage() (*antmsg.Decoded, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.assembler.tryDecode()
}

func (d *StubDriver) SendMessage(m antmsg.Outbound) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := createPackedMessage(m, d.sendBuf[:])
	if err != nil {
		return &WriteFailedError{Err: err}
	}
	frame := make([]byte, n)
	copy(frame, d.sendBuf[:n])
	d.txLog = append(d.txLog, frame)
	return nil
}

func (d *StubDriver) Close() error { return nil }
