// Package payload produces the onboarding codes a device prints for pairing:
// the "MT:" QR code string and the 11 or 21 digit manual pairing code.
package payload

import "errors"

// DiscoveryCapabilities is the rendezvous bitmask carried in QR codes.
type DiscoveryCapabilities uint8

const (
	DiscoveryCapabilitySoftAP    DiscoveryCapabilities = 1 << 0
	DiscoveryCapabilityBLE       DiscoveryCapabilities = 1 << 1
	DiscoveryCapabilityOnNetwork DiscoveryCapabilities = 1 << 2
)

// CommissioningFlow selects how the device enters pairing mode.
type CommissioningFlow uint8

const (
	CommissioningFlowStandard   CommissioningFlow = 0
	CommissioningFlowUserIntent CommissioningFlow = 1
	CommissioningFlowCustom     CommissioningFlow = 2
)

// SetupPayload is the data encoded into the onboarding codes.
type SetupPayload struct {
	VendorID          uint16
	ProductID         uint16
	CommissioningFlow CommissioningFlow
	Capabilities      DiscoveryCapabilities

	// Discriminator is the 12-bit discriminator. Manual codes carry only its
	// upper 4 bits.
	Discriminator uint16

	Passcode uint32
}

var (
	ErrInvalidPasscode      = errors.New("payload: invalid passcode")
	ErrInvalidDiscriminator = errors.New("payload: discriminator exceeds 12 bits")
	ErrInvalidFlow          = errors.New("payload: invalid commissioning flow")
)

var invalidPasscodes = map[uint32]bool{
	0: true, 11111111: true, 22222222: true, 33333333: true,
	44444444: true, 55555555: true, 66666666: true, 77777777: true,
	88888888: true, 99999999: true, 12345678: true, 87654321: true,
}

// ValidatePasscode rejects passcodes outside 1..99999998 and the trivial
// patterns.
func ValidatePasscode(passcode uint32) error {
	if passcode < 1 || passcode > 99999998 || invalidPasscodes[passcode] {
		return ErrInvalidPasscode
	}
	return nil
}

// Validate checks that p can be encoded.
func (p *SetupPayload) Validate() error {
	if err := ValidatePasscode(p.Passcode); err != nil {
		return err
	}
	if p.Discriminator > 0xFFF {
		return ErrInvalidDiscriminator
	}
	if p.CommissioningFlow > CommissioningFlowCustom {
		return ErrInvalidFlow
	}
	return nil
}

// ShortDiscriminator returns the upper 4 bits of the discriminator.
func (p *SetupPayload) ShortDiscriminator() uint8 {
	return uint8(p.Discriminator >> 8)
}
