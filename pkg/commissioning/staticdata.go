package commissioning

import (
	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/commissioning/payload"
)

// StaticData is a fixed set of commissionable data.
// It implements callbacks.CommissionableDataProvider.
type StaticData struct {
	Discriminator uint16
	Passcode      uint32
	Iterations    uint32
	Salt          []byte
	Verifier      []byte
}

// testVerifier is W0 || L for passcode 20202021, the test salt and 1000
// iterations.
var testVerifier = []byte{
	0xB9, 0x61, 0x70, 0xAA, 0xE8, 0x03, 0x34, 0x68, 0x84, 0x72, 0x4F, 0xE9, 0xA3, 0xB2, 0x87, 0xC3,
	0x03, 0x30, 0xC2, 0xA6, 0x60, 0x37, 0x5D, 0x17, 0xBB, 0x20, 0x5A, 0x8C, 0xF1, 0xAE, 0xCB, 0x35,
	0x04, 0x57, 0xF8, 0xAB, 0x79, 0xEE, 0x25, 0x3A, 0xB6, 0xA8, 0xE4, 0x6B, 0xB0, 0x9E, 0x54, 0x3A,
	0xE4, 0x22, 0x73, 0x6D, 0xE5, 0x01, 0xE3, 0xDB, 0x37, 0xD4, 0x41, 0xFE, 0x34, 0x49, 0x20, 0xD0,
	0x95, 0x48, 0xE4, 0xC1, 0x82, 0x40, 0x63, 0x0C, 0x4F, 0xF4, 0x91, 0x3C, 0x53, 0x51, 0x38, 0x39,
	0xB7, 0xC0, 0x7F, 0xCC, 0x06, 0x27, 0xA1, 0xB8, 0x57, 0x3A, 0x14, 0x9F, 0xCD, 0x1F, 0xA4, 0x66,
	0xCF,
}

// TestData returns the well-known development credentials
// (discriminator 3840, passcode 20202021).
func TestData() *StaticData {
	return &StaticData{
		Discriminator: 3840,
		Passcode:      20202021,
		Iterations:    1000,
		Salt:          []byte("SPAKE2P Key Salt"),
		Verifier:      append([]byte(nil), testVerifier...),
	}
}

// NewStaticData builds commissionable data for passcode and derives its
// verifier. A nil salt gets a random one.
func NewStaticData(discriminator uint16, passcode uint32, iterations uint32, salt []byte) (*StaticData, error) {
	if discriminator > 0xFFF {
		return nil, ErrInvalidDiscriminator
	}
	if salt == nil {
		var err error
		if salt, err = GenerateSalt(); err != nil {
			return nil, err
		}
	}
	v, err := GenerateVerifier(passcode, salt, iterations)
	if err != nil {
		return nil, err
	}
	return &StaticData{
		Discriminator: discriminator,
		Passcode:      passcode,
		Iterations:    iterations,
		Salt:          append([]byte(nil), salt...),
		Verifier:      v.Bytes(),
	}, nil
}

// Validate checks every field.
func (d *StaticData) Validate() error {
	if d.Discriminator > 0xFFF {
		return ErrInvalidDiscriminator
	}
	if err := payload.ValidatePasscode(d.Passcode); err != nil {
		return err
	}
	if err := validatePBKDFParams(d.Salt, d.Iterations); err != nil {
		return err
	}
	if len(d.Verifier) != VerifierSize {
		return ErrInvalidVerifier
	}
	return nil
}

// SetupPayload returns the onboarding payload for d.
func (d *StaticData) SetupPayload(vendorID, productID uint16, caps payload.DiscoveryCapabilities) *payload.SetupPayload {
	return &payload.SetupPayload{
		VendorID:      vendorID,
		ProductID:     productID,
		Capabilities:  caps,
		Discriminator: d.Discriminator,
		Passcode:      d.Passcode,
	}
}

func (d *StaticData) SetupDiscriminator() (uint16, error) { return d.Discriminator, nil }

func (d *StaticData) Spake2pIterationCount() (uint32, error) { return d.Iterations, nil }

func (d *StaticData) SetupPasscode() (uint32, error) { return d.Passcode, nil }

// Spake2pSalt copies the salt into span. It panics when span is too small.
func (d *StaticData) Spake2pSalt(span *chip.MutableByteSpan) error {
	copyInto(span, d.Salt, "salt buffer too small")
	return nil
}

// Spake2pVerifier copies the verifier into span. It panics when span is too
// small.
func (d *StaticData) Spake2pVerifier(span *chip.MutableByteSpan) (int, error) {
	copyInto(span, d.Verifier, "verifier buffer too small")
	return len(d.Verifier), nil
}

func copyInto(span *chip.MutableByteSpan, src []byte, msg string) {
	if span.Size() < len(src) {
		panic("commissioning: " + msg)
	}
	copy(span.Data(), src)
	span.ReduceSize(len(src))
}
