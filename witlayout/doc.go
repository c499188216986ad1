// Package witlayout describes memory layouts with WIT types.
//
// Integer, bool and float primitives map to simple scalars of the same
// width. Records map to packed structures with their fields in declaration
// order, and tuples to structures with fields f0, f1 and so on. Any other
// WIT type reports its kind ("string", "list", "variant", ...) as base
// category, which the descriptor builder rejects as an invalid type.
//
// Decoded records are built by the host runtime; with the native runtime they
// are *native.Record values whose fields follow the WIT field names.
package witlayout
