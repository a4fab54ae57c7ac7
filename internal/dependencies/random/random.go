// Package random abstracts randomness so drop outcomes and session
// tokens can be made deterministic in tests.
package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the randomness source for drop simulations and token
// minting.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String returns a random string of the given length drawn from
	// the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand. Drop outcomes decide payouts, so
// the production source is the CSPRNG rather than math/rand.
type CryptoRandom struct{}

// New returns a crypto/rand-backed source
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a uniform random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return 0
	}
	return int(result.Int64())
}

// String returns a random string of the given length drawn from the
// given alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}
