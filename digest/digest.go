package digest

import (
	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// Encode serializes req using the layout selected by its identifying fields.
func Encode(req interfaces.UpdateRequest, data []byte) ([]byte, error) {
	switch req.Format() {
	case interfaces.FormatFeed:
		return EncodeFeedUpdate(req.Feed, data)
	case interfaces.FormatResource:
		return EncodeResourceUpdate(req.Resource, data)
	default:
		return nil, &interfaces.InvalidInputError{Reason: "update request must identify exactly one of feed or resource"}
	}
}

// Digest returns the digest of req in the layout selected by its identifying fields.
func Digest(req interfaces.UpdateRequest, data []byte) (string, error) {
	switch req.Format() {
	case interfaces.FormatFeed:
		return FeedDigest(req.Feed, data)
	case interfaces.FormatResource:
		return ResourceDigest(req.Resource, data)
	default:
		return "", &interfaces.InvalidInputError{Reason: "update request must identify exactly one of feed or resource"}
	}
}
