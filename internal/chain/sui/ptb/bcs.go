package ptb

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// BCS length prefixes are ULEB128, the same encoding as binary.Uvarint.

const maxSequenceLength = 1<<31 - 1

func EncodeString(s string) []byte {
	buf := make([]byte, 0, len(s)+binary.MaxVarintLen32)
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func DecodeString(b []byte) (string, error) {
	n, read := binary.Uvarint(b)
	if read <= 0 {
		return "", errors.New("bcs: invalid length prefix")
	}
	if n > maxSequenceLength {
		return "", fmt.Errorf("bcs: length %d exceeds limit", n)
	}
	rest := b[read:]
	if uint64(len(rest)) != n {
		return "", fmt.Errorf("bcs: want %d bytes, have %d", n, len(rest))
	}
	return string(rest), nil
}
