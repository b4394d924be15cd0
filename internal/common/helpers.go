package common

import (
	"strings"

	"github.com/AlexZinkM/nft-marketplace/internal/crypto"
)

const (
	shortPrefixLen = 6 // "0x" + 4 hex digits
	shortSuffixLen = 4
)

// NormalizeAddress returns the EIP-55 checksum form of a 20-byte hex address
func NormalizeAddress(address string) (string, error) {
	return crypto.ChecksumAddress(strings.TrimSpace(address))
}

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address
func IsAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	_, err := crypto.ChecksumAddress(s)
	return err == nil
}

// ShortenAddress renders an account for compact display, e.g. "0x5aAe...eAed".
// Values too short to abbreviate are returned unchanged.
func ShortenAddress(address string) string {
	runes := []rune(address)
	if len(runes) <= shortPrefixLen+shortSuffixLen+3 {
		return address
	}
	return string(runes[:shortPrefixLen]) + "..." + string(runes[len(runes)-shortSuffixLen:])
}

// JoinURL joins a base URL and a path with exactly one slash between them
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
