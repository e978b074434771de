package device

import (
	"errors"
	"fmt"

	"github.com/backkem/matterbridge/pkg/chip"
)

var (
	// ErrContextTaken is returned when the process context is already held.
	ErrContextTaken = fmt.Errorf("device: context already taken: %w", chip.ErrIncorrectState)

	// ErrNilContext is returned when New is called without a context.
	ErrNilContext = errors.New("device: nil context")

	// ErrCommissionableRequired is returned when no commissionable data
	// provider is configured.
	ErrCommissionableRequired = errors.New("device: commissionable data provider required")

	// ErrInvalidDiscriminator is returned for a discriminator wider than 12 bits.
	ErrInvalidDiscriminator = errors.New("device: invalid discriminator (must be 0-4095)")

	// ErrInvalidDeviceName is returned for a device name longer than 32 characters.
	ErrInvalidDeviceName = errors.New("device: invalid device name (max 32 characters)")

	// ErrInvalidVendorName is returned for a vendor name longer than 32 characters.
	ErrInvalidVendorName = errors.New("device: invalid vendor name (max 32 characters)")

	// ErrContextReleased is returned when New is given a released context.
	ErrContextReleased = fmt.Errorf("device: context released: %w", chip.ErrIncorrectState)

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("device: already running")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("device: closed")

	// ErrEndpointIDsExhausted is returned when no endpoint id is left to
	// assign.
	ErrEndpointIDsExhausted = errors.New("device: endpoint ids exhausted")
)
