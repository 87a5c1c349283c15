package cid

import (
	"fmt"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Info describes a CID that decoded cleanly.
type Info struct {
	Shape    Shape  `json:"shape"`
	Version  uint64 `json:"version"`
	Codec    string `json:"codec"`
	HashFunc string `json:"hash_function"`
	HashLen  int    `json:"hash_length"`
	V1       string `json:"cidv1"`
}

// Inspect decodes input with go-cid. A string can pass IsValid and still fail
// here; the record update only requires IsValid.
func Inspect(input string) (*Info, error) {
	c, err := gocid.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("decode cid: %w", err)
	}

	prefix := c.Prefix()
	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return nil, fmt.Errorf("decode multihash: %w", err)
	}

	codec, ok := gocid.CodecToStr[prefix.Codec]
	if !ok {
		codec = fmt.Sprintf("0x%x", prefix.Codec)
	}
	hashName, ok := multihash.Codes[decoded.Code]
	if !ok {
		hashName = fmt.Sprintf("0x%x", decoded.Code)
	}

	return &Info{
		Shape:    Classify(input),
		Version:  prefix.Version,
		Codec:    codec,
		HashFunc: hashName,
		HashLen:  decoded.Length,
		V1:       gocid.NewCidV1(prefix.Codec, c.Hash()).String(),
	}, nil
}
