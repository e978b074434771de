package device

import (
	"fmt"

	"github.com/backkem/matterbridge/pkg/callbacks"
	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/commissioning/payload"
)

// OnboardingCodes are the strings a user enters or scans to pair the device.
type OnboardingCodes struct {
	QRCode     string
	ManualCode string
}

// OnboardingCodes builds the codes from the commissionable data the SDK
// sees, read through the installed callbacks.
func (d *Device) OnboardingCodes() (OnboardingCodes, error) {
	var disc uint16
	var passcode uint32
	if err := chip.Convert(callbacks.GetSetupDiscriminator(&disc)); err != nil {
		return OnboardingCodes{}, fmt.Errorf("device: discriminator: %w", err)
	}
	if err := chip.Convert(callbacks.GetSetupPasscode(&passcode)); err != nil {
		return OnboardingCodes{}, fmt.Errorf("device: passcode: %w", err)
	}

	p := &payload.SetupPayload{
		VendorID:      d.config.VendorID,
		ProductID:     d.config.ProductID,
		Capabilities:  payload.DiscoveryCapabilityOnNetwork,
		Discriminator: disc,
		Passcode:      passcode,
	}
	qr, err := payload.EncodeQRCode(p)
	if err != nil {
		return OnboardingCodes{}, fmt.Errorf("device: %w", err)
	}
	manual, err := payload.EncodeManualCode(p)
	if err != nil {
		return OnboardingCodes{}, fmt.Errorf("device: %w", err)
	}
	return OnboardingCodes{QRCode: qr, ManualCode: manual}, nil
}

// PrintOnboardingCodes logs the onboarding codes.
func (d *Device) PrintOnboardingCodes() error {
	codes, err := d.OnboardingCodes()
	if err != nil {
		return err
	}
	d.log.Infof("SetupQRCode: [%s]", codes.QRCode)
	d.log.Infof("Manual pairing code: [%s]", payload.FormatManualCode(codes.ManualCode))
	return nil
}
