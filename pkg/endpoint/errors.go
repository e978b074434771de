package endpoint

import "errors"

var (
	// ErrAlreadyRegistered is returned when the endpoint id is already in the
	// table.
	ErrAlreadyRegistered = errors.New("endpoint: already registered")

	// ErrResourceExhausted is returned when every dynamic slot is in use.
	ErrResourceExhausted = errors.New("endpoint: resource exhausted")

	// ErrNotRegistered is returned when a registration's slot is gone.
	ErrNotRegistered = errors.New("endpoint: not registered")

	// ErrNilEndpointType is returned when registering without a composition.
	ErrNilEndpointType = errors.New("endpoint: nil endpoint type")
)
