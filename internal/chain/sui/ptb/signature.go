package ptb

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Signature scheme flags, the first byte of a serialized user signature.
const (
	SchemeEd25519   byte = 0x00
	SchemeSecp256k1 byte = 0x01
	SchemeSecp256r1 byte = 0x02
)

// ErrUnsupportedScheme is returned for signatures this package cannot check
// locally. The network still verifies them.
var ErrUnsupportedScheme = errors.New("signature scheme not verifiable locally")

// transactionIntent is the BCS intent for a user transaction: scope 0,
// version 0, app id Sui.
var transactionIntent = []byte{0, 0, 0}

// SigningDigest is the 32-byte message a wallet signs for txBytes.
func SigningDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}

// AddressFromPublicKey derives the Sui address of a single-key account.
func AddressFromPublicKey(scheme byte, pub []byte) string {
	buf := append([]byte{scheme}, pub...)
	sum := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(sum[:])
}

// VerifySignature checks a base64 serialized signature (flag || sig || pubkey)
// over the base64 txBytes and that the embedded key belongs to sender.
// Only ed25519 is checked; other schemes return ErrUnsupportedScheme.
func VerifySignature(sender, txBytes, signature string) error {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("empty signature")
	}
	if raw[0] != SchemeEd25519 {
		return fmt.Errorf("%w: flag 0x%02x", ErrUnsupportedScheme, raw[0])
	}
	if len(raw) != 1+ed25519.SignatureSize+ed25519.PublicKeySize {
		return fmt.Errorf("ed25519 signature: want %d bytes, got %d", 1+ed25519.SignatureSize+ed25519.PublicKeySize, len(raw))
	}
	sig := raw[1 : 1+ed25519.SignatureSize]
	pub := ed25519.PublicKey(raw[1+ed25519.SignatureSize:])

	want, err := NormalizeObjectID(sender)
	if err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	if got := AddressFromPublicKey(SchemeEd25519, pub); got != want {
		return fmt.Errorf("signature key belongs to %s, not sender %s", got, want)
	}

	tx, err := base64.StdEncoding.DecodeString(txBytes)
	if err != nil {
		return fmt.Errorf("decode tx bytes: %w", err)
	}
	digest := SigningDigest(tx)
	if !ed25519.Verify(pub, digest[:], sig) {
		return errors.New("ed25519 signature does not verify")
	}
	return nil
}
