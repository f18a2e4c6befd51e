// Package protocol maps gateway operations onto request URLs.
//
// All functions are pure: they take the normalized gateway base URL (with a
// trailing slash) and return the URL string the gateway expects.
//
//	DownloadURL(base, "abc", &DownloadOptions{Mode: ModeRaw}, false) // base + "bzz-raw:/abc"
//	UploadURL(base, &UploadOptions{ManifestHash: "1234", Path: "a"}, false) // base + "bzz:/1234/a"
//	ListURL(base, "abc", "dir") // base + "bzz-list:/abc/dir"
//	HashURL(base, "theswarm.eth") // base + "bzz-hash:/theswarm.eth"
package protocol
