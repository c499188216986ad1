// Package inventory creates connectors and OS instances by name.
//
// Built-in connectors:
//
//	dummy  zero-filled in-process memory; args: size (bytes, default 16 MiB)
//	wasm   wazero linear memory; args: pages (default 1), max_pages
//
// Built-in OS:
//
//	dummy  dummy OS over the connector's memory; args: processes (default 1),
//	       process_size (default 1 MiB), modules (per process, default 0)
//
// Arguments are strings parsed into typed values; unknown keys and malformed
// values fail with an invalid input error. Close releases every target the
// inventory created.
package inventory
