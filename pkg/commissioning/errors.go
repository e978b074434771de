package commissioning

import "errors"

// Commissioning errors
var (
	// ErrInvalidSalt indicates a salt outside 16..32 bytes.
	ErrInvalidSalt = errors.New("commissioning: salt must be 16 to 32 bytes")

	// ErrInvalidIterations indicates a PBKDF2 iteration count outside 1000..100000.
	ErrInvalidIterations = errors.New("commissioning: iteration count must be 1000 to 100000")

	// ErrInvalidVerifier indicates a verifier that is not W0 || L.
	ErrInvalidVerifier = errors.New("commissioning: verifier must be 97 bytes")

	// ErrInvalidDiscriminator indicates a discriminator wider than 12 bits.
	ErrInvalidDiscriminator = errors.New("commissioning: discriminator exceeds 12 bits")
)
