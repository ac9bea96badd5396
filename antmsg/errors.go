package antmsg

import "fmt"

// BadLengthError reports a payload whose length does not match what the
// message id requires.
type BadLengthError struct {
	MessageID byte
	Expected  int
	Actual    int
}

func (e *BadLengthError) Error() string {
	return fmt.Sprintf("antmsg: id 0x%02X: bad length: expected %d, got %d", e.MessageID, e.Expected, e.Actual)
}

// InvalidDataError reports an unknown enum discriminant with no catch-all
// variant declared (spec.md §4.1/§7).
type InvalidDataError struct {
	MessageID byte
	Detail    string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("antmsg: id 0x%02X: invalid data: %s", e.MessageID, e.Detail)
}

// PackError wraps a field-packing failure (antfield error) with the
// message id that triggered it.
type PackError struct {
	MessageID byte
	Err       error
}

func (e *PackError) Error() string {
	return fmt.Sprintf("antmsg: id 0x%02X: pack error: %v", e.MessageID, e.Err)
}

func (e *PackError) Unwrap() error { return e.Err }

// UnknownMessageIDError reports an inbound id byte with no registered
// decoder.
type UnknownMessageIDError struct {
	MessageID byte
}

func (e *UnknownMessageIDError) Error() string {
	return fmt.Sprintf("antmsg: unknown inbound message id 0x%02X", e.MessageID)
}
