// Package gatewaytest provides an in-memory bzz gateway for end-to-end tests
// of the client and the directory codecs.
//
// It understands the URL shapes the client produces: bzz:/, bzz-immutable:/,
// bzz-raw:/, bzz-list:/, bzz-hash:/ and bzz-feed:/. Content is addressed by
// its keccak256 hash and manifests are stored as content too, so a manifest
// update always yields a new hash. Feed updates are only accepted when their
// signature recovers to the feed user.
//
//	gw := gatewaytest.NewServer(logger)
//	ts := httptest.NewServer(gw.Router())
//	defer ts.Close()
package gatewaytest
