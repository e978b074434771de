package discovery

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TXT keys of the commissionable service.
const (
	TXTKeyDiscriminator       = "D"
	TXTKeyCommissioningMode   = "CM"
	TXTKeyVendorProduct       = "VP"
	TXTKeyDeviceType          = "DT"
	TXTKeyDeviceName          = "DN"
	TXTKeyIdleInterval        = "SII"
	TXTKeyActiveInterval      = "SAI"
	TXTKeyPairingHint         = "PH"
	TXTKeyPairingInstructions = "PI"
)

// MaxDeviceNameLength bounds DN.
const MaxDeviceNameLength = 32

// MaxDiscriminator is the largest 12-bit discriminator.
const MaxDiscriminator = 0xFFF

// CommissionableTXT holds the TXT record of _matterc._udp.
type CommissionableTXT struct {
	Discriminator     uint16
	CommissioningMode CommissioningMode
	VendorID          uint16
	ProductID         uint16
	DeviceType        uint32
	DeviceName        string

	// IdleInterval and ActiveInterval are sent in milliseconds.
	IdleInterval   time.Duration
	ActiveInterval time.Duration

	PairingHint         uint16
	PairingInstructions string
}

// Encode renders the record as key=value strings. D and CM are always
// present.
func (c *CommissionableTXT) Encode() []string {
	txt := []string{
		fmt.Sprintf("%s=%d", TXTKeyDiscriminator, c.Discriminator),
		fmt.Sprintf("%s=%d", TXTKeyCommissioningMode, c.CommissioningMode),
	}
	if c.VendorID != 0 || c.ProductID != 0 {
		txt = append(txt, fmt.Sprintf("%s=%d+%d", TXTKeyVendorProduct, c.VendorID, c.ProductID))
	}
	if c.DeviceType != 0 {
		txt = append(txt, fmt.Sprintf("%s=%d", TXTKeyDeviceType, c.DeviceType))
	}
	if c.DeviceName != "" {
		name := c.DeviceName
		if len(name) > MaxDeviceNameLength {
			name = name[:MaxDeviceNameLength]
		}
		txt = append(txt, TXTKeyDeviceName+"="+name)
	}
	if c.IdleInterval > 0 {
		txt = append(txt, fmt.Sprintf("%s=%d", TXTKeyIdleInterval, c.IdleInterval.Milliseconds()))
	}
	if c.ActiveInterval > 0 {
		txt = append(txt, fmt.Sprintf("%s=%d", TXTKeyActiveInterval, c.ActiveInterval.Milliseconds()))
	}
	if c.PairingHint != 0 {
		txt = append(txt, fmt.Sprintf("%s=%d", TXTKeyPairingHint, c.PairingHint))
	}
	if c.PairingInstructions != "" {
		txt = append(txt, TXTKeyPairingInstructions+"="+c.PairingInstructions)
	}
	return txt
}

// Validate checks field limits.
func (c *CommissionableTXT) Validate() error {
	if c.Discriminator > MaxDiscriminator {
		return ErrInvalidDiscriminator
	}
	if len(c.DeviceName) > MaxDeviceNameLength {
		return ErrInvalidDeviceName
	}
	return nil
}

// ShortDiscriminator returns the upper 4 bits of the discriminator.
func (c *CommissionableTXT) ShortDiscriminator() uint8 {
	return uint8(c.Discriminator >> 8 & 0xF)
}

// ParseCommissionableTXT decodes TXT strings. Unknown keys are ignored.
func ParseCommissionableTXT(txt []string) (*CommissionableTXT, error) {
	c := &CommissionableTXT{}
	for _, entry := range txt {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		var err error
		switch key {
		case TXTKeyDiscriminator:
			c.Discriminator, err = parseUint16(value)
			if err == nil && c.Discriminator > MaxDiscriminator {
				err = ErrInvalidDiscriminator
			}
		case TXTKeyCommissioningMode:
			var v uint64
			v, err = strconv.ParseUint(value, 10, 8)
			c.CommissioningMode = CommissioningMode(v)
		case TXTKeyVendorProduct:
			vid, pid, hasPID := strings.Cut(value, "+")
			if c.VendorID, err = parseUint16(vid); err == nil && hasPID {
				c.ProductID, err = parseUint16(pid)
			}
		case TXTKeyDeviceType:
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			c.DeviceType = uint32(v)
		case TXTKeyDeviceName:
			c.DeviceName = value
		case TXTKeyIdleInterval:
			c.IdleInterval, err = parseMillis(value)
		case TXTKeyActiveInterval:
			c.ActiveInterval, err = parseMillis(value)
		case TXTKeyPairingHint:
			c.PairingHint, err = parseUint16(value)
		case TXTKeyPairingInstructions:
			c.PairingInstructions = value
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTXTRecord, entry, err)
		}
	}
	return c, nil
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}

func parseMillis(s string) (time.Duration, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return time.Duration(v) * time.Millisecond, err
}
