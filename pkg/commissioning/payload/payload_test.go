package payload

import (
	"errors"
	"testing"
)

func TestEncodeQRCode(t *testing.T) {
	p := &SetupPayload{
		VendorID:      12,
		ProductID:     1,
		Capabilities:  DiscoveryCapabilitySoftAP,
		Discriminator: 128,
		Passcode:      2048,
	}
	got, err := EncodeQRCode(p)
	if err != nil {
		t.Fatalf("EncodeQRCode failed: %v", err)
	}
	if want := "MT:M5L90MP500K64J00000"; got != want {
		t.Errorf("EncodeQRCode() = %q, want %q", got, want)
	}

	if _, err := EncodeQRCode(&SetupPayload{Passcode: 0}); !errors.Is(err, ErrInvalidPasscode) {
		t.Errorf("invalid passcode error = %v", err)
	}
	if _, err := EncodeQRCode(&SetupPayload{Passcode: 2048, Discriminator: 0x1000}); !errors.Is(err, ErrInvalidDiscriminator) {
		t.Errorf("invalid discriminator error = %v", err)
	}
}

func TestEncodeManualCode(t *testing.T) {
	tests := []struct {
		name string
		p    SetupPayload
		want string
	}{
		{"short", SetupPayload{Discriminator: 2560, Passcode: 12345679}, "24129507533"},
		{"test device", SetupPayload{Discriminator: 3840, Passcode: 20202021}, "34970112332"},
		{"long zero ids", SetupPayload{Discriminator: 2560, Passcode: 12345679, CommissioningFlow: CommissioningFlowCustom}, "641295075300000000008"},
		{"long ids", SetupPayload{Discriminator: 2560, Passcode: 12345679, VendorID: 45367, ProductID: 14526, CommissioningFlow: CommissioningFlowCustom}, "641295075345367145262"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeManualCode(&tt.p)
			if err != nil {
				t.Fatalf("EncodeManualCode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("EncodeManualCode() = %q, want %q", got, tt.want)
			}
			if !VerhoeffValidate(got) {
				t.Errorf("check digit of %q invalid", got)
			}
		})
	}
}

func TestFormatManualCode(t *testing.T) {
	if got := FormatManualCode("34970112332"); got != "3497-011-2332" {
		t.Errorf("FormatManualCode() = %q", got)
	}
	if got := FormatManualCode("123"); got != "123" {
		t.Errorf("FormatManualCode(short) = %q", got)
	}
}

func TestBase38Encode(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte{0}, "00"},
		{[]byte{0xFF}, "R6"},
		{[]byte{10, 10}, "OT10"},
		{[]byte{0xFF, 0xFF, 0xFF}, "PLS18"},
	}
	for _, tt := range tests {
		if got := Base38Encode(tt.in); got != tt.want {
			t.Errorf("Base38Encode(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerhoeff(t *testing.T) {
	if c, err := VerhoeffCompute("236"); err != nil || c != '3' {
		t.Errorf("VerhoeffCompute(236) = %c, %v; want 3", c, err)
	}
	if !VerhoeffValidate("2363") {
		t.Error("VerhoeffValidate(2363) = false")
	}
	if VerhoeffValidate("2364") {
		t.Error("VerhoeffValidate(2364) = true")
	}
	if _, err := VerhoeffCompute("12a"); !errors.Is(err, ErrNotDigits) {
		t.Errorf("non-digit error = %v", err)
	}
}
