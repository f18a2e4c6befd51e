package interfaces

// Feed identifies a mutable pointer in the feed format.
type Feed struct {
	Topic string `json:"topic"`
	User  string `json:"user"`
}

// Epoch identifies an update slot of a feed.
type Epoch struct {
	Time  uint64 `json:"time"`
	Level uint8  `json:"level"`
}

// FeedUpdateRequest is the feed update template returned by a metadata read.
type FeedUpdateRequest struct {
	Feed            Feed  `json:"feed"`
	Epoch           Epoch `json:"epoch"`
	ProtocolVersion uint8 `json:"protocolVersion"`
}

// ResourceUpdateRequest is the legacy resource update template returned by a
// metadata read.
type ResourceUpdateRequest struct {
	RootAddr  string `json:"rootAddr"`
	MetaHash  string `json:"metaHash"`
	Period    uint32 `json:"period"`
	Version   uint32 `json:"version"`
	Multihash bool   `json:"multiHash"`
}

// SignedResourceUpdate is the JSON body posted for a legacy resource update.
type SignedResourceUpdate struct {
	ResourceUpdateRequest
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

// FeedParams addresses a feed in bzz-feed:/ queries. Zero values are omitted.
type FeedParams struct {
	User  string
	Topic string
	Name  string
	Time  uint64
	Level uint8
}

// UpdateFormat names the digest layout selected by an UpdateRequest.
type UpdateFormat int

const (
	// FormatUnknown means neither or both identifying field sets are present.
	FormatUnknown UpdateFormat = iota
	// FormatFeed is the current topic/user layout.
	FormatFeed
	// FormatResource is the legacy rootAddr/metaHash layout.
	FormatResource
)

// String returns the format name.
func (f UpdateFormat) String() string {
	switch f {
	case FormatFeed:
		return "feed"
	case FormatResource:
		return "resource"
	default:
		return "unknown"
	}
}

// UpdateRequest is a tagged variant over the two update formats. Exactly one
// of Feed or Resource is expected to be set.
type UpdateRequest struct {
	Feed     *FeedUpdateRequest
	Resource *ResourceUpdateRequest
}

// Format selects the layout from whichever identifying fields are present.
func (r UpdateRequest) Format() UpdateFormat {
	isFeed := r.Feed != nil && (r.Feed.Feed.Topic != "" || r.Feed.Feed.User != "")
	isResource := r.Resource != nil && (r.Resource.RootAddr != "" || r.Resource.MetaHash != "")
	switch {
	case isFeed && !isResource:
		return FormatFeed
	case isResource && !isFeed:
		return FormatResource
	default:
		return FormatUnknown
	}
}
