package console

import "errors"

var (
	ErrClosed         = errors.New("console session closed")
	ErrSubmitDisabled = errors.New("submit disabled: target url required and code must be valid")
	ErrCreateInFlight = errors.New("a create request is already in flight")
	ErrEmptyCode      = errors.New("code is required")
	ErrCancelled      = errors.New("cancelled by operator")
	ErrRejected       = errors.New("rejected by links api")
	ErrTransport      = errors.New("links api unreachable")
	ErrClipboard      = errors.New("clipboard write failed")
)
