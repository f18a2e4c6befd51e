package digest

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// Resource layout widths.
const (
	BzzKeyLength = 32

	ResourceMetaHashLength         = BzzKeyLength
	ResourceRootAddrLength         = BzzKeyLength
	ResourceVersionLength          = 4
	ResourcePeriodLength           = 4
	ResourceFlagLength             = 1
	ResourceDataLengthLength       = 2
	ResourceHeaderLengthLength     = 2
	ResourceHeaderLength       int = ResourceMetaHashLength + ResourceRootAddrLength + ResourceVersionLength + ResourcePeriodLength + ResourceFlagLength
)

var resourceHeaderLengthField = EncodeUint16LE(uint16(ResourceHeaderLength))

// EncodeResourceUpdate serializes a legacy resource update and its data.
func EncodeResourceUpdate(req *interfaces.ResourceUpdateRequest, data []byte) ([]byte, error) {
	if req == nil {
		return nil, &interfaces.InvalidInputError{Reason: "missing resource update request"}
	}
	if len(data) > math.MaxUint16 {
		return nil, &interfaces.InvalidInputError{
			Field:  "data",
			Reason: fmt.Sprintf("%d bytes exceed the %d byte limit", len(data), math.MaxUint16),
		}
	}

	rootAddr, err := resourceKey("rootAddr", req.RootAddr)
	if err != nil {
		return nil, err
	}
	metaHash, err := resourceKey("metaHash", req.MetaHash)
	if err != nil {
		return nil, err
	}

	var multihash uint8
	if req.Multihash {
		multihash = 1
	}

	var buf bytes.Buffer
	buf.Grow(ResourceHeaderLengthLength + ResourceDataLengthLength + ResourceHeaderLength + len(data))
	buf.Write(resourceHeaderLengthField)
	buf.Write(EncodeUint16LE(uint16(len(data))))
	buf.Write(EncodeUint32LE(req.Period))
	buf.Write(EncodeUint32LE(req.Version))
	buf.Write(rootAddr)
	buf.Write(metaHash)
	buf.Write(EncodeUint8(multihash))
	buf.Write(data)
	return buf.Bytes(), nil
}

// ResourceDigest returns the 0x-prefixed keccak256 digest of a resource update.
func ResourceDigest(req *interfaces.ResourceUpdateRequest, data []byte) (string, error) {
	payload, err := EncodeResourceUpdate(req, data)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(crypto.Keccak256(payload)), nil
}

func resourceKey(field, value string) ([]byte, error) {
	return fixedHex(field, value, BzzKeyLength, func(actual int) error {
		return &interfaces.InvalidInputError{
			Field:  field,
			Reason: fmt.Sprintf("expected %d bytes, got %d", BzzKeyLength, actual),
		}
	})
}
