package antrouter

import "fmt"

// OutOfChannelsError reports that AddChannel found no empty slot.
type OutOfChannelsError struct{}

func (e *OutOfChannelsError) Error() string { return "antrouter: out of channel slots" }

// ChannelOutOfBoundsError reports a slot index at or beyond the reported
// maximum channel count.
type ChannelOutOfBoundsError struct {
	Index, Max int
}

func (e *ChannelOutOfBoundsError) Error() string {
	return fmt.Sprintf("antrouter: channel index %d out of bounds (max %d)", e.Index, e.Max)
}

// ChannelAlreadyAssignedError reports a slot already holding a channel.
type ChannelAlreadyAssignedError struct{ Index int }

func (e *ChannelAlreadyAssignedError) Error() string {
	return fmt.Sprintf("antrouter: channel slot %d already assigned", e.Index)
}

// ChannelNotAssociatedError reports a removal targeting an empty or
// out-of-range slot. Inbound messages for such a slot are logged and
// dropped by dispatch, not reported with this error.
type ChannelNotAssociatedError struct{ Index int }

func (e *ChannelNotAssociatedError) Error() string {
	return fmt.Sprintf("antrouter: no channel associated with slot %d", e.Index)
}

// FailedToGetCapabilitiesError reports that the construction-time
// capabilities request was not answered within the retry bound.
type FailedToGetCapabilitiesError struct{ Retries int }

func (e *FailedToGetCapabilitiesError) Error() string {
	return fmt.Sprintf("antrouter: failed to get capabilities after %d retries", e.Retries)
}
