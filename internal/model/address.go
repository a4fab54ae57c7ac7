package model

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Address identifies a participant account. Addresses are stored in their
// EIP-55 checksummed form so map keys and registry entries compare equal
// regardless of how the caller cased the input.
type Address string

// ZeroAddress is the null account; it is never a valid target.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// IsZero reports whether the address is empty or the null account.
func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

// ParseAddress validates a hex account address and returns it in
// checksummed form. All-lowercase and all-uppercase inputs are accepted
// and checksummed; mixed-case inputs must already carry a valid checksum.
func ParseAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", ErrInvalidAddress
	}
	body := s[2:]
	if len(body) != 40 {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(body); err != nil {
		return "", ErrInvalidAddress
	}

	checksummed := checksumAddress(strings.ToLower(body))
	if body != strings.ToLower(body) && body != strings.ToUpper(body) && body != checksummed {
		return "", ErrInvalidAddress
	}
	return Address("0x" + checksummed), nil
}

// checksumAddress applies EIP-55 casing to a lowercase hex address body.
func checksumAddress(lower string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	sum := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}
