// Package main (cmd/bzz) is a command-line front-end for a Swarm HTTP gateway.
//
// It resolves domains, lists manifests, downloads and uploads files and
// directories, removes manifest entries and reads or publishes feed updates.
// Directories are read from and written to the local filesystem as TAR
// streams.
//
// Publishing a feed update is the only operation that signs anything: the
// command reads the next update template from the gateway, computes its
// digest, signs it with the operator's private key and posts the signed
// update.
//
//	bzz --gateway http://127.0.0.1:8500 upload --default-path index.html ./site
//	bzz feed-post --privkey $KEY --name notes --data "hello"
package main
