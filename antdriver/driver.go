package antdriver

import "github.com/antcomm/anthost/antmsg"

// Driver is the uniform "get next decoded message / send a message"
// contract spec.md §4.3 describes, implemented by the UART-style and
// USB-style transports (and, for tests, a stub). Grounded on the
// teacher's transport.RadioDriver interface (transport/driver.go),
// generalized from register-level radio operations (StartHFCLK,
// Configure, Tx, Rx) to the ANT driver's framed get/send contract.
type Driver interface {
	// GetNextMessage reads zero or more bytes from the transport without
	// blocking, attempts to decode one complete frame, and returns it. A
	// nil Decoded with a nil error means no complete frame is available
	// yet. A non-nil error is a framing error for this attempt only; the
	// driver self-heals and the next call may succeed (spec.md §7).
	GetNextMessage() (*antmsg.Decoded, error)
	// SendMessage encodes m into a frame and writes it to the transport.
	SendMessage(m antmsg.Outbound) error
	// Close releases the underlying transport.
	Close() error
}
