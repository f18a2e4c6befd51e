package digest

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// EncodeUint8 returns v as a single byte.
func EncodeUint8(v uint8) []byte {
	return []byte{v}
}

// EncodeUint16LE returns v as 2 little-endian bytes.
func EncodeUint16LE(v uint16) []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	return buf
}

// EncodeUint32LE returns v as 4 little-endian bytes.
func EncodeUint32LE(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// DecodeHex decodes a hex string with or without the 0x prefix.
func DecodeHex(field, value string) ([]byte, error) {
	if !strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X") {
		value = "0x" + value
	}
	b, err := hexutil.Decode(value)
	if err != nil {
		return nil, &interfaces.InvalidInputError{Field: field, Reason: err.Error()}
	}
	return b, nil
}

// ParseData interprets s as update data: a 0x-prefixed hex string is decoded,
// anything else is taken as its UTF-8 bytes.
func ParseData(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return DecodeHex("data", s)
	}
	return []byte(s), nil
}

// fixedHex decodes value into exactly size bytes. onMismatch builds the error
// returned for a wrong decoded length.
func fixedHex(field, value string, size int, onMismatch func(actual int) error) ([]byte, error) {
	b, err := DecodeHex(field, value)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, onMismatch(len(b))
	}
	return b, nil
}
