package crypto

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

const addressHexLen = 40 // 20-byte account address

// ErrInvalidAddress is returned for anything that is not 0x + 40 hex digits
var ErrInvalidAddress = errors.New("invalid address")

// Keccak256 returns the legacy (pre-FIPS) Keccak-256 digest used by Ethereum
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// ChecksumAddress renders an address in EIP-55 mixed-case form.
// Input case is ignored; the 0x prefix is optional.
func ChecksumAddress(address string) (string, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if len(raw) != addressHexLen {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return "", ErrInvalidAddress
	}

	lower := strings.ToLower(raw)
	hash := Keccak256([]byte(lower))

	out := make([]byte, 0, addressHexLen+2)
	out = append(out, '0', 'x')
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		// nibble i of the hash decides the case of character i
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		nibble &= 0x0f
		if c >= 'a' && c <= 'f' && nibble >= 8 {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out), nil
}
