/*
Package bzz provides the base client for a bzz HTTP gateway.

The client resolves every operation to a gateway URL through the protocol
package, dispatches it through an injected transport and interprets the
response. It holds no state besides its configuration, so a single Client
can be shared by concurrent callers. It performs no retries.

# Operations

  - Hash - resolve a domain to a content hash (bzz-hash:/)
  - List - manifest listing (bzz-list:/)
  - Download / DownloadData - fetch content in default, immutable or raw mode
  - UploadFile / Upload / UploadBody - store content, optionally into an existing manifest
  - DeleteResource - remove a manifest entry, returning the new manifest hash
  - UploadDirectory / DownloadDirectory - delegated to the configured DirectoryCodec
  - GetFeedMetadata / GetFeedChunk / GetFeedContent / CreateFeedManifest / PostSignedFeedUpdate
  - GetResourceMetadata / PostSignedResourceUpdate

# Errors

A non-2xx response yields *interfaces.HTTPError carrying the status code and
status text. Transport failures are returned as produced by the transport.
Update payloads are validated with the digest package before any request
is sent.

# Mutable pointer updates

Updates are two independent calls with external signing in between:

	meta, err := client.GetFeedMetadata(ctx, interfaces.FeedParams{User: user, Name: "hello"})
	d, err := digest.FeedDigest(meta, data)
	signature := sign(d) // caller-owned key
	err = client.PostSignedFeedUpdate(ctx, meta, data, signature)

# Example Usage

	client, err := bzz.NewClient(&bzz.ClientConfig{
	    URL:         "http://localhost:8500",
	    Directories: tarfs.New(),
	    Log:         logger,
	})

	hash, err := client.UploadFile(ctx, []byte("hello"), &interfaces.UploadOptions{ContentType: "text/plain"})
	data, err := client.DownloadData(ctx, hash, nil)
*/
package bzz
