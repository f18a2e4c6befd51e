// Package interfaces defines the shared types and capability interfaces of
// the bzz gateway client, separating contracts from their implementations.
//
// # Addressing
//
// ContentHash: hex identifier issued by the network for immutable content or
// a manifest. Manifest updates never mutate a ContentHash, they yield a new one.
//
// BzzMode: selects the gateway protocol prefix used for downloads and uploads
// (default "bzz:/", immutable "bzz-immutable:/", raw "bzz-raw:/").
//
// # Capabilities
//
// Doer: the injected HTTP transport. *http.Client satisfies it.
//
// Gateway: the subset of client operations a directory codec may call back into.
//
// DirectoryCodec: environment-specific directory upload/download strategy
// (TAR streaming, multipart forms, ...), supplied to the client at construction.
//
// # Mutable pointers
//
// UpdateRequest is a tagged variant over the two update formats understood by
// the network: FeedUpdateRequest (topic/user, time+level epoch) and the legacy
// ResourceUpdateRequest (rootAddr/metaHash, period+version).
//
// # Error Types
//
//   - HTTPError: the gateway answered with a non-2xx status
//   - InvalidInputError: a value could not be decoded or does not fit its field
//   - InvalidLengthError: a fixed-width field decoded to the wrong byte length
//   - ErrNotImplemented: directory operation invoked without a codec
package interfaces
