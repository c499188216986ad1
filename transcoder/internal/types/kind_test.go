package types

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"c_byte", KindByte},
		{"c_ubyte", KindUByte},
		{"c_char", KindChar},
		{"c_wchar", KindWideChar},
		{"c_short", KindShort},
		{"c_ushort", KindUShort},
		{"c_int", KindInt},
		{"c_uint", KindUInt},
		{"c_long", KindLong},
		{"c_ulong", KindULong},
		{"c_longlong", KindLongLong},
		{"c_ulonglong", KindULongLong},
		{"c_float", KindFloat},
		{"c_double", KindDouble},
		{"c_longdouble", KindLongDouble},
		{"ptr", KindPointer},
		{"ptr32", KindPointer32},
		{"ptr64", KindPointer64},
		{"array", KindArray},
		{"struct", KindStructure},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindWidth(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindByte, 1},
		{KindUByte, 1},
		{KindChar, 1},
		{KindWideChar, 2},
		{KindShort, 2},
		{KindUShort, 2},
		{KindInt, 4},
		{KindUInt, 4},
		{KindFloat, 4},
		{KindLong, 8},
		{KindULong, 8},
		{KindLongLong, 8},
		{KindULongLong, 8},
		{KindDouble, 8},
		{KindLongDouble, 8},
		{KindPointer32, 4},
		{KindPointer64, 8},
		{KindPointer, NativePointerSize},
		{KindArray, 0},
		{KindStructure, 0},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.Width(); got != tc.want {
				t.Errorf("Width() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	if !KindLongDouble.IsScalar() || KindPointer.IsScalar() {
		t.Error("IsScalar boundary is wrong")
	}
	if !KindPointer.IsPointer() || !KindPointer64.IsPointer() || KindArray.IsPointer() {
		t.Error("IsPointer boundary is wrong")
	}
	if !KindByte.Signed() || KindUByte.Signed() || KindFloat.Signed() {
		t.Error("Signed is wrong")
	}
}

func TestScalarKind(t *testing.T) {
	if k, ok := ScalarKind("c_bool"); !ok || k != KindUByte {
		t.Errorf("c_bool = %v, %v", k, ok)
	}
	if k, ok := ScalarKind("c_longdouble"); !ok || k != KindLongDouble {
		t.Errorf("c_longdouble = %v, %v", k, ok)
	}
	for _, name := range []string{"c_char_p", "c_wchar_p", "c_int8", "c_size_t"} {
		if _, ok := ScalarKind(name); ok {
			t.Errorf("%s should not resolve", name)
		}
	}
}
