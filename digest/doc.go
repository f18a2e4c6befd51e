// Package digest encodes mutable-pointer updates into the fixed byte layouts
// the network hashes and verifies, and computes the keccak256 digest callers
// sign externally.
//
// Two layouts coexist:
//
// Resource (legacy):
//
//	| headerLength u16le | dataLength u16le | period u32le | version u32le |
//	| rootAddr [32]      | metaHash [32]    | multihash u8 | data ...      |
//
// Feed:
//
//	| header [8] (version, 0...) | topic [32] | user [20] |
//	| time [7] (u32le, 0, 0, 0)  | level u8   | data ...  |
//
// Widths are protocol constants. A value that does not fit its field fails
// the encoding before anything is hashed.
//
// # Usage
//
//	meta, _ := client.GetFeedMetadata(ctx, interfaces.FeedParams{User: user, Topic: topic})
//	d, err := digest.FeedDigest(meta, data)
//	// sign d externally, then
//	err = client.PostSignedFeedUpdate(ctx, meta, data, signature)
package digest
