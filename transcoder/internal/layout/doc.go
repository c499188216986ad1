// Package layout computes packed sizes and field offsets.
//
// Layouts carry no padding or alignment:
//   - scalars and pointers: fixed width of the kind
//   - arrays: element size times length
//   - structures: sum of the field sizes, widened to cover any overlay
//
// # Usage
//
//	offs := layout.Offsets([]int{4, 8})              // [0 4]
//	size, ok := layout.StructSize([]int{4, 8}, nil)  // 12, true
//
// This package is internal to the transcoder.
package layout
