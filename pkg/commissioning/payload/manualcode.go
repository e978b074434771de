package payload

import (
	"fmt"
	"strings"
)

// EncodeManualCode returns the manual pairing code of p: 11 digits, or 21
// digits with vendor and product ids for the custom commissioning flow.
func EncodeManualCode(p *SetupPayload) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	disc := uint32(p.ShortDiscriminator())
	long := p.CommissioningFlow == CommissioningFlowCustom

	chunk1 := disc >> 2 & 0x3
	if long {
		chunk1 |= 1 << 2
	}
	chunk2 := p.Passcode&0x3FFF | (disc&0x3)<<14
	chunk3 := p.Passcode >> 14 & 0x1FFF

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d%05d%04d", chunk1, chunk2, chunk3)
	if long {
		fmt.Fprintf(&sb, "%05d%05d", p.VendorID, p.ProductID)
	}

	check, err := VerhoeffCompute(sb.String())
	if err != nil {
		return "", err
	}
	sb.WriteByte(check)
	return sb.String(), nil
}

// FormatManualCode groups an 11 digit code as XXXX-XXX-XXXX.
func FormatManualCode(code string) string {
	if len(code) != 11 {
		return code
	}
	return code[:4] + "-" + code[4:7] + "-" + code[7:]
}
