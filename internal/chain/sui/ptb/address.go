package ptb

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const addressHexLen = 64

// NormalizeObjectID lowercases a 0x-prefixed Sui address or object id and
// left-pads it to 32 bytes, so "0x6" becomes the full system state id.
func NormalizeObjectID(id string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(id))
	if !strings.HasPrefix(s, "0x") {
		return "", fmt.Errorf("object id %q: missing 0x prefix", id)
	}
	s = s[2:]
	if s == "" || len(s) > addressHexLen {
		return "", fmt.Errorf("object id %q: bad length", id)
	}
	padded := strings.Repeat("0", addressHexLen-len(s)) + s
	if _, err := hex.DecodeString(padded); err != nil {
		return "", fmt.Errorf("object id %q: %w", id, err)
	}
	return "0x" + padded, nil
}
