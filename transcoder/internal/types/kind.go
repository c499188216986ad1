package types

import "strconv"

type Kind uint8

const (
	KindByte Kind = iota
	KindUByte
	KindChar
	KindWideChar
	KindShort
	KindUShort
	KindInt
	KindUInt
	KindLong
	KindULong
	KindLongLong
	KindULongLong
	KindFloat
	KindDouble
	KindLongDouble
	KindPointer
	KindPointer32
	KindPointer64
	KindArray
	KindStructure
)

var kindNames = [...]string{
	KindByte:       "c_byte",
	KindUByte:      "c_ubyte",
	KindChar:       "c_char",
	KindWideChar:   "c_wchar",
	KindShort:      "c_short",
	KindUShort:     "c_ushort",
	KindInt:        "c_int",
	KindUInt:       "c_uint",
	KindLong:       "c_long",
	KindULong:      "c_ulong",
	KindLongLong:   "c_longlong",
	KindULongLong:  "c_ulonglong",
	KindFloat:      "c_float",
	KindDouble:     "c_double",
	KindLongDouble: "c_longdouble",
	KindPointer:    "ptr",
	KindPointer32:  "ptr32",
	KindPointer64:  "ptr64",
	KindArray:      "array",
	KindStructure:  "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether k is a fixed-width numeric or character kind.
func (k Kind) IsScalar() bool {
	return k <= KindLongDouble
}

// IsPointer reports whether k is one of the pointer kinds.
func (k Kind) IsPointer() bool {
	return k >= KindPointer && k <= KindPointer64
}

// NativePointerSize is the pointer width of the running process.
const NativePointerSize = strconv.IntSize / 8

// Width returns the fixed size of scalar and pointer kinds, and 0 for
// arrays and structures.
func (k Kind) Width() int {
	switch k {
	case KindByte, KindUByte, KindChar:
		return 1
	case KindShort, KindUShort, KindWideChar:
		return 2
	case KindInt, KindUInt, KindFloat, KindPointer32:
		return 4
	case KindLong, KindULong, KindLongLong, KindULongLong, KindDouble, KindLongDouble, KindPointer64:
		return 8
	case KindPointer:
		return NativePointerSize
	default:
		return 0
	}
}

// Signed reports whether k is a signed integer kind.
func (k Kind) Signed() bool {
	switch k {
	case KindByte, KindShort, KindInt, KindLong, KindLongLong:
		return true
	default:
		return false
	}
}

var scalarKinds = map[string]Kind{
	"c_byte":       KindByte,
	"c_ubyte":      KindUByte,
	"c_bool":       KindUByte,
	"c_char":       KindChar,
	"c_wchar":      KindWideChar,
	"c_double":     KindDouble,
	"c_longdouble": KindLongDouble,
	"c_float":      KindFloat,
	"c_short":      KindShort,
	"c_ushort":     KindUShort,
	"c_int":        KindInt,
	"c_uint":       KindUInt,
	"c_long":       KindLong,
	"c_ulong":      KindULong,
	"c_longlong":   KindLongLong,
	"c_ulonglong":  KindULongLong,
}

// ScalarKind resolves a simple scalar type name.
func ScalarKind(name string) (Kind, bool) {
	k, ok := scalarKinds[name]
	return k, ok
}
