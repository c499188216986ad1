// Package abi provides internal utilities for packed little-endian encoding.
//
// # Contents
//
//   - coerce.go: Coercion of Go numbers to the native type of each scalar kind
//   - helpers.go: Overflow-checked size math and little-endian integer access
//
// This package is internal to the transcoder.
package abi
