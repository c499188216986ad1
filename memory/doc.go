// Package memory provides memview.Memory implementations.
//
//   - Dummy: a zero-filled in-process byte range, safe for concurrent use
//   - Wasm: a WebAssembly linear memory hosted by wazero
//   - ReadOnlyMemory: a wrapper rejecting writes
//
// Addresses are offsets from zero. Every access must lie entirely inside
// the memory; partial reads and writes are never performed.
package memory
