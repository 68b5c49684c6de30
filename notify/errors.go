package notify

import "errors"

var (
	// ErrBusClosed is returned when subscribing to a closed bus.
	ErrBusClosed = errors.New("notify: bus is closed")

	// ErrSubscriberExists is returned when a subscriber id is already registered.
	ErrSubscriberExists = errors.New("notify: subscriber already exists")

	// ErrSubscriberNotFound is returned for unknown subscriber ids.
	ErrSubscriberNotFound = errors.New("notify: subscriber not found")

	// ErrNilChannel is returned when subscribing a nil channel.
	ErrNilChannel = errors.New("notify: channel is nil")
)
