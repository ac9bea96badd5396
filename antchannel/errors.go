package antchannel

import (
	"fmt"

	"github.com/antcomm/anthost/antmsg"
)

// ConfigureError reports a configure-step failure: a channel response
// returned a non-OK code during a known configure step. It latches the
// channel into Error; no further configure messages are produced until
// ResetState.
type ConfigureError struct {
	State State
	Code  antmsg.MessageCode
}

func (e *ConfigureError) Error() string {
	return fmt.Sprintf("antchannel: configure step %s failed: %s", e.State, e.Code)
}

// ChannelInWrongStateError reports a runtime operation attempted while
// the channel is in a state that forbids it (spec.md §4.4: pairing-bit set
// on a tracking slave).
type ChannelInWrongStateError struct {
	Operation string
	State     State
}

func (e *ChannelInWrongStateError) Error() string {
	return fmt.Sprintf("antchannel: %s not permitted in state %s", e.Operation, e.State)
}

// MessageTimeoutError is the noted extension point for a wall-clock
// configure-step timeout (spec.md §9 open question); not raised by this
// implementation, which waits indefinitely for a response, but declared
// here so a future caller can attach one without changing the error
// taxonomy.
type MessageTimeoutError struct {
	State    State
	Duration string
}

func (e *MessageTimeoutError) Error() string {
	return fmt.Sprintf("antchannel: configure step %s timed out after %s", e.State, e.Duration)
}
