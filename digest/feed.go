package digest

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// Feed layout widths.
const (
	FeedHeaderLength    = 8
	FeedTopicLength     = 32
	FeedUserLength      = 20
	FeedTimeLength      = 7
	FeedLevelLength     = 1
	FeedUpdateMinLength = FeedHeaderLength + FeedTopicLength + FeedUserLength + FeedTimeLength + FeedLevelLength
)

// EncodeFeedUpdate serializes a feed update and its data.
//
// The time field is 7 bytes wide but only the low 4 carry the value.
func EncodeFeedUpdate(req *interfaces.FeedUpdateRequest, data []byte) ([]byte, error) {
	if req == nil {
		return nil, &interfaces.InvalidInputError{Reason: "missing feed update request"}
	}
	topic, err := feedField("topic", req.Feed.Topic, FeedTopicLength)
	if err != nil {
		return nil, err
	}
	user, err := feedField("user", req.Feed.User, FeedUserLength)
	if err != nil {
		return nil, err
	}
	if req.Epoch.Time > math.MaxUint32 {
		return nil, &interfaces.InvalidInputError{
			Field:  "time",
			Reason: fmt.Sprintf("%d does not fit in 4 bytes", req.Epoch.Time),
		}
	}

	header := make([]byte, FeedHeaderLength)
	header[0] = req.ProtocolVersion

	timeField := make([]byte, FeedTimeLength)
	copy(timeField, EncodeUint32LE(uint32(req.Epoch.Time)))

	var buf bytes.Buffer
	buf.Grow(FeedUpdateMinLength + len(data))
	buf.Write(header)
	buf.Write(topic)
	buf.Write(user)
	buf.Write(timeField)
	buf.Write(EncodeUint8(req.Epoch.Level))
	buf.Write(data)
	return buf.Bytes(), nil
}

// FeedDigest returns the 0x-prefixed keccak256 digest of a feed update.
func FeedDigest(req *interfaces.FeedUpdateRequest, data []byte) (string, error) {
	payload, err := EncodeFeedUpdate(req, data)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(crypto.Keccak256(payload)), nil
}

func feedField(field, value string, size int) ([]byte, error) {
	return fixedHex(field, value, size, func(actual int) error {
		return &interfaces.InvalidLengthError{Field: field, Expected: size, Actual: actual}
	})
}
