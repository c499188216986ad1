// Package transcoder converts between host values and packed little-endian
// byte buffers described by runtime type descriptors.
//
// # Overview
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ host type ──Build──▶ Descriptor ──Size──▶ n                 │
//	│ host value ◀──Decode── []byte (n) ◀──Encode── host value     │
//	└──────────────────────────────────────────────────────────────┘
//
// # Memory Layout
//
// Layouts are packed: no padding, no alignment.
//
//	Type                          Size
//	──────────────────────────────────
//	c_byte/c_ubyte/c_bool/c_char  1
//	c_short/c_ushort/c_wchar      2
//	c_int/c_uint/c_float          4
//	c_long/c_ulong                8
//	c_longlong/c_ulonglong        8
//	c_double/c_longdouble         8
//	Pointer32 / Pointer64         4 / 8
//	array                         elem × length
//	structure                     sum of fields (widened by overlays)
//
// c_longdouble is treated as a 64-bit float. c_wchar and native-width
// pointers have a size but cannot be decoded or encoded.
//
// # Key Types
//
//	Compiler    - Builds descriptors from host types, optionally cached
//	Decoder     - Converts bytes into host values
//	Encoder     - Converts host values into bytes
//	Codec       - All three over one host runtime
//	Descriptor  - Immutable layout tree
//
// # Decoding
//
// Scalars decode to Go numbers (int8 … uint64, float32, float64) and c_char
// to a one-byte []byte. Pointers, arrays and structures decode by calling
// the host constructor of their type: pointers with the address as uint64,
// arrays with their elements, structures with no arguments followed by one
// attribute assignment per field.
//
// # Encoding
//
// Scalars accept any Go number representable in the target kind. Pointers
// read the "addr" attribute; addresses wider than the pointer fail with an
// overflow error unless WithLenientPointers is set. Arrays read elements by
// index and, when the runtime implements host.Lener, must have exactly the
// declared length. Structures read one attribute per field.
//
// # Host Access
//
// Each capability call acquires the host guard and releases it before the
// codec recurses, so runtimes may use a non-reentrant lock.
//
// # Errors
//
// All failures are *errors.Error values carrying the phase, kind and field
// path (e.g. "TEST.one[1]").
package transcoder
