// Package types defines the descriptor model used by the transcoder.
//
// A Descriptor is an immutable tree describing the packed layout of a host
// type. Sizes are computed once at construction, so Size is a field read
// on the hot path.
//
// # Key Types
//
//   - Descriptor: Layout node (scalar, pointer, array or structure)
//   - Kind: Layout discriminator
//
// This package is internal to the transcoder.
package types
