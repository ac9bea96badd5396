package antdriver

import (
	"time"

	"github.com/tarm/serial"

	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// Pin is a GPIO output line, asserted low/high around a UART write batch
// to wake a radio wired through a hardware sleep pin. Grounded on the
// original's SerialDriver<SERIAL, PIN>'s embedded-hal OutputPin.
type Pin interface {
	SetLow() error
	SetHigh() error
}

// UARTConfig describes the serial port an UARTDriver opens.
type UARTConfig struct {
	Device     string
	Baud       int
	PayloadCap int
	// ReadTimeout bounds how long one underlying Read call may block
	// before returning zero bytes (the "would-block" sentinel for this
	// otherwise-blocking port), matching the teacher's RadioDriver.Rx
	// timeout parameter.
	ReadTimeout time.Duration
	// SleepPin, if non-nil, is asserted low before and high after every
	// write batch (spec.md §4.3). Nil disables the feature, matching the
	// original's sleep: Option<PIN> / StubPin no-op.
	SleepPin Pin
}

// UARTDriver is the byte-at-a-time transport over a character device,
// grounded on github.com/tarm/serial (seen in
// kstaniek-go-ampio-server/go.mod) standing in for the register-level
// UART the teacher's TinyGo target used directly. It loops reads until
// would-block or the buffer is full, then attempts one decode per
// GetNextMessage call (spec.md §4.3).
type UARTDriver struct {
	port      *serial.Port
	assembler *frameAssembler
	sleepPin  Pin
	readChunk [256]byte
	sendBuf   [512]byte
}

// OpenUART opens the serial port described by cfg.
func OpenUART(cfg UARTConfig) (*UARTDriver, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, &ReadFailedError{Err: err}
	}
	return &UARTDriver{port: port, assembler: newFrameAssembler(cfg.PayloadCap), sleepPin: cfg.SleepPin}, nil
}

// SetMetrics installs an optional Registry that subsequent
// GetNextMessage calls report decode/checksum/framing counts to. Passing
// nil (the default) disables metrics entirely.
func (d *UARTDriver) SetMetrics(m *antmetrics.Registry) { d.assembler.metrics = m }

func (d *UARTDriver) GetNextMessage() (*antmsg.Decoded, error) {
	for {
		n, err := d.port.Read(d.readChunk[:])
		if err != nil {
			return nil, &ReadFailedError{Err: err}
		}
		if n == 0 {
			break // would-block: the configured ReadTimeout elapsed
		}
		d.assembler.feed(d.readChunk[:n])
		if n < len(d.readChunk) {
			break
		}
	}
	return d.assembler.tryDecode()
}

func (d *UARTDriver) SendMessage(m antmsg.Outbound) error {
	n, err := createPackedMessage(m, d.sendBuf[:])
	if err != nil {
		return &WriteFailedError{Err: err}
	}
	if d.sleepPin != nil {
		if err := d.sleepPin.SetLow(); err != nil {
			return &WriteFailedError{Err: err}
		}
	}
	for written := 0; written < n; {
		k, err := d.port.Write(d.sendBuf[written:n])
		if err != nil {
			return &WriteFailedError{Err: err}
		}
		written += k
	}
	if err := d.port.Flush(); err != nil {
		return err
	}
	if d.sleepPin != nil {
		if err := d.sleepPin.SetHigh(); err != nil {
			return &WriteFailedError{Err: err}
		}
	}
	return nil
}

func (d *UARTDriver) Close() error { return d.port.Close() }
