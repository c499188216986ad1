// Package native is a host object model written in Go.
//
// It provides ctypes-like type objects (simple scalars, structures, arrays
// and 32/64-bit pointer wrappers) and the value types the transcoder
// constructs when decoding them:
//
//	point := native.NewStruct("POINT",
//		native.Field("x", native.CUInt32),
//		native.Field("y", native.CFloat),
//	)
//	test := native.NewStruct("TEST",
//		native.Field("one", native.ArrayOf(native.CUInt32, 2)),
//		native.Field("two", native.CInt64),
//		native.Field("ptr", native.Pointer64(point)),
//	)
//
// Runtime implements host.Runtime and host.Lener. Values crossing the
// boundary are *Record, *Array, *Ptr and plain Go scalars; GetAttr also
// reads map[string]any and exported Go struct fields, and Index reads any
// Go slice or array, so encoding does not require native values.
package native
