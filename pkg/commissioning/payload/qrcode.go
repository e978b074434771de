package payload

// QRCodePrefix starts every onboarding QR code string.
const QRCodePrefix = "MT:"

// bitPacker appends fields LSB first.
type bitPacker struct {
	buf []byte
	n   int
}

func (b *bitPacker) put(v uint64, bits int) {
	for i := 0; i < bits; i++ {
		if b.n%8 == 0 {
			b.buf = append(b.buf, 0)
		}
		if v&(1<<i) != 0 {
			b.buf[b.n/8] |= 1 << (b.n % 8)
		}
		b.n++
	}
}

// EncodeQRCode packs p into the 88-bit QR layout (version, vendor, product,
// flow, capabilities, discriminator, passcode, padding) and base38 encodes
// it.
func EncodeQRCode(p *SetupPayload) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	var b bitPacker
	b.put(0, 3)
	b.put(uint64(p.VendorID), 16)
	b.put(uint64(p.ProductID), 16)
	b.put(uint64(p.CommissioningFlow), 2)
	b.put(uint64(p.Capabilities), 8)
	b.put(uint64(p.Discriminator), 12)
	b.put(uint64(p.Passcode), 27)
	b.put(0, 4)

	return QRCodePrefix + Base38Encode(b.buf), nil
}
