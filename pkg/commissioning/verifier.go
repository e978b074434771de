// Package commissioning supplies the commissionable data a device hands the
// SDK: discriminator, passcode and the SPAKE2+ verifier derived from it.
package commissioning

import (
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/pbkdf2"

	"github.com/backkem/matterbridge/pkg/commissioning/payload"
)

const (
	// SaltMinLength and SaltMaxLength bound the PBKDF2 salt.
	SaltMinLength = 16
	SaltMaxLength = 32

	MinIterations = 1000
	MaxIterations = 100000

	// W0Size is the length of the w0 scalar.
	W0Size = 32
	// LSize is the length of the uncompressed L point.
	LSize = 65
	// VerifierSize is the length of a serialized verifier.
	VerifierSize = W0Size + LSize

	// wsSize is the length of each PBKDF2 output half.
	wsSize = 40
)

// Verifier holds the values the device keeps to check a commissioner's
// knowledge of the passcode.
type Verifier struct {
	W0 []byte
	L  []byte
}

// Bytes serializes v as W0 || L.
func (v *Verifier) Bytes() []byte {
	out := make([]byte, 0, VerifierSize)
	out = append(out, v.W0...)
	return append(out, v.L...)
}

// ParseVerifier splits a serialized verifier.
func ParseVerifier(b []byte) (*Verifier, error) {
	if len(b) != VerifierSize {
		return nil, ErrInvalidVerifier
	}
	return &Verifier{
		W0: append([]byte(nil), b[:W0Size]...),
		L:  append([]byte(nil), b[W0Size:]...),
	}, nil
}

// GenerateVerifier derives the verifier for passcode:
//
//	ws = PBKDF2-SHA256(passcode_le, salt, iterations, 80)
//	w0 = ws[0:40] mod n, w1 = ws[40:80] mod n
//	L  = w1 * G
func GenerateVerifier(passcode uint32, salt []byte, iterations uint32) (*Verifier, error) {
	if err := payload.ValidatePasscode(passcode); err != nil {
		return nil, err
	}
	if err := validatePBKDFParams(salt, iterations); err != nil {
		return nil, err
	}

	pc := make([]byte, 4)
	binary.LittleEndian.PutUint32(pc, passcode)
	ws := pbkdf2.Key(pc, salt, int(iterations), 2*wsSize, sha256.New)

	curve := elliptic.P256()
	n := curve.Params().N
	w0 := new(big.Int).Mod(new(big.Int).SetBytes(ws[:wsSize]), n)
	w1 := new(big.Int).Mod(new(big.Int).SetBytes(ws[wsSize:]), n)

	x, y := curve.ScalarBaseMult(w1.FillBytes(make([]byte, W0Size)))
	l := elliptic.Marshal(curve, x, y)

	return &Verifier{W0: w0.FillBytes(make([]byte, W0Size)), L: l}, nil
}

// GenerateSalt returns a random salt of the maximum length.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltMaxLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func validatePBKDFParams(salt []byte, iterations uint32) error {
	if len(salt) < SaltMinLength || len(salt) > SaltMaxLength {
		return ErrInvalidSalt
	}
	if iterations < MinIterations || iterations > MaxIterations {
		return ErrInvalidIterations
	}
	return nil
}
