package discovery

import "errors"

var (
	// ErrClosed is returned when an operation is attempted on a closed advertiser.
	ErrClosed = errors.New("discovery: closed")

	// ErrAlreadyStarted is returned when the service is already advertised.
	ErrAlreadyStarted = errors.New("discovery: already started")

	// ErrNotStarted is returned when stopping a service that was not started.
	ErrNotStarted = errors.New("discovery: not started")

	// ErrInvalidDiscriminator is returned when the discriminator exceeds 12 bits.
	ErrInvalidDiscriminator = errors.New("discovery: invalid discriminator (must be 0-4095)")

	// ErrInvalidDeviceName is returned when the device name exceeds 32 characters.
	ErrInvalidDeviceName = errors.New("discovery: invalid device name (max 32 characters)")

	// ErrInvalidTXTRecord is returned when a TXT entry is malformed.
	ErrInvalidTXTRecord = errors.New("discovery: invalid TXT record format")
)
