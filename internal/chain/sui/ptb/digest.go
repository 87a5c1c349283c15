package ptb

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Sui hashes BCS values behind a "<TypeName>::" domain separator.
const transactionDataPrefix = "TransactionData::"

// TransactionDigest returns the base58 digest the network assigns to the
// BCS-encoded TransactionData in txBytes.
func TransactionDigest(txBytes []byte) string {
	buf := make([]byte, 0, len(transactionDataPrefix)+len(txBytes))
	buf = append(buf, transactionDataPrefix...)
	buf = append(buf, txBytes...)
	sum := blake2b.Sum256(buf)
	return base58.Encode(sum[:])
}

// TransactionDigestBase64 is TransactionDigest for the base64 form RPC
// responses carry.
func TransactionDigestBase64(txBytes string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(txBytes)
	if err != nil {
		return "", fmt.Errorf("decode tx bytes: %w", err)
	}
	return TransactionDigest(raw), nil
}
