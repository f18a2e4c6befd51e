package common

// Version is set at build time with -ldflags "-X github.com/ruteri/bzz-gateway-client/common.Version=...".
var Version = "dev"
