package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generator produces one-time passcodes.
type Generator interface {
	// Generate returns a new numeric code as a string.
	Generate() (string, error)
}

// Numeric generates 6-digit numeric codes uniformly from [100000, 999999].
type Numeric struct{}

// NewNumeric constructs a Numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a new 6-digit code.
//
// crypto/rand is the only randomness source; there is no fallback to a weaker
// generator. An error here means the platform RNG is broken and the caller
// must fail the operation.
func (*Numeric) Generate() (string, error) {
	span := big.NewInt(codeMax - codeMin + 1)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
