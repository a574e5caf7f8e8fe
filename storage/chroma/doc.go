// Package chroma adapts a remote Chroma server to the storage.DocumentStore
// interface.
//
// The adapter is selected by configuring a Chroma URL; without one the
// pipeline uses the local BadgerDB store. Collection opens rely on the
// server's get-or-create semantics, so reopening a collection appends
// rather than replacing.
package chroma
