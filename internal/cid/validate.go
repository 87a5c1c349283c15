// Package cid checks user-supplied IPFS content identifiers before they are
// written into a domain record.
package cid

import "regexp"

var (
	// CIDv0: "Qm" followed by 44 base58btc characters.
	cidV0Pattern = regexp.MustCompile(`^Qm[1-9A-HJ-NP-Za-km-z]{44}$`)
	// CIDv1 in base32 with the dag-pb/sha2-256 "bafy" prefix.
	cidV1Base32Pattern = regexp.MustCompile(`(?i)^bafy[a-z2-7]{56,}$`)
	// Anything else that looks like a multibase CID of reasonable length.
	permissivePattern = regexp.MustCompile(`^[a-z0-9]{46,}$`)
)

// Shape names the tier an input matched.
type Shape string

const (
	ShapeNone       Shape = ""
	ShapeV0         Shape = "cidv0"
	ShapeV1Base32   Shape = "cidv1-base32"
	ShapePermissive Shape = "permissive"
)

// IsValid reports whether input looks like a CID. It does not decode the
// multihash; see Inspect for that.
func IsValid(input string) bool {
	return Classify(input) != ShapeNone
}

// Classify returns the first shape input matches, or ShapeNone.
func Classify(input string) Shape {
	switch {
	case cidV0Pattern.MatchString(input):
		return ShapeV0
	case cidV1Base32Pattern.MatchString(input):
		return ShapeV1Base32
	case permissivePattern.MatchString(input):
		return ShapePermissive
	default:
		return ShapeNone
	}
}
