package layout

import (
	"github.com/wippyai/memview/transcoder/internal/abi"
)

// Span is an explicit-offset region inside a structure.
type Span struct {
	Offset int
	Size   int
}

// End returns the first byte after the span.
func (s Span) End() int {
	return s.Offset + s.Size
}

// ArraySize returns elem*n, reporting false on overflow.
func ArraySize(elem int, n uint32) (int, bool) {
	return abi.SafeMul(elem, int(n))
}

// FieldsSize returns the sum of the sequential field sizes.
func FieldsSize(sizes []int) (int, bool) {
	total := 0
	for _, s := range sizes {
		var ok bool
		if total, ok = abi.SafeAdd(total, s); !ok {
			return 0, false
		}
	}
	return total, true
}

// StructSize returns the size of a structure with the given sequential
// field sizes and overlay spans: the field sum, or the furthest overlay end
// when that is larger.
func StructSize(sizes []int, overlays []Span) (int, bool) {
	total, ok := FieldsSize(sizes)
	if !ok {
		return 0, false
	}
	for _, o := range overlays {
		if o.Offset < 0 || o.Size < 0 {
			return 0, false
		}
		end, ok := abi.SafeAdd(o.Offset, o.Size)
		if !ok {
			return 0, false
		}
		if end > total {
			total = end
		}
	}
	return total, true
}

// Offsets returns the offset of each sequential field: offset(i) is the sum
// of the sizes before i.
func Offsets(sizes []int) []int {
	offs := make([]int, len(sizes))
	off := 0
	for i, s := range sizes {
		offs[i] = off
		off += s
	}
	return offs
}

// Locate returns the index of the field covering byte off, or -1.
func Locate(sizes []int, off int) int {
	if off < 0 {
		return -1
	}
	start := 0
	for i, s := range sizes {
		if off < start+s {
			return i
		}
		start += s
	}
	return -1
}
