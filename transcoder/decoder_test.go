package transcoder

import (
	"bytes"
	"testing"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/host/native"
)

func TestDecodeScalars(t *testing.T) {
	c := New(native.NewRuntime())

	tests := []struct {
		typ   host.Type
		want  any
		name  string
		input []byte
	}{
		{native.CInt32, int32(-1), "int32 minus one", []byte{0xff, 0xff, 0xff, 0xff}},
		{native.CUInt32, uint32(0xffffffff), "uint32 max", []byte{0xff, 0xff, 0xff, 0xff}},
		{native.CByte, int8(-1), "byte", []byte{0xff}},
		{native.CUByte, uint8(0xff), "ubyte", []byte{0xff}},
		{native.CShort, int16(-2), "short", []byte{0xfe, 0xff}},
		{native.CUShort, uint16(0x0201), "ushort little endian", []byte{0x01, 0x02}},
		{native.CLong, int64(-1), "long is 8 bytes", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{native.CULongLong, uint64(0x0807060504030201), "ulonglong", []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{native.CFloat, float32(1), "float one", []byte{0x00, 0x00, 0x80, 0x3f}},
		{native.CDouble, float64(-2), "double", []byte{0, 0, 0, 0, 0, 0, 0, 0xc0}},
		{native.CLongDouble, float64(1), "longdouble as double", []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Decode(mustBuild(t, c, tc.typ), tc.input)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tc.want {
				t.Errorf("Decode = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestDecodeChar(t *testing.T) {
	c := New(native.NewRuntime())
	got, err := c.Decode(mustBuild(t, c, native.CChar), []byte{'z'})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b, ok := got.([]byte); !ok || !bytes.Equal(b, []byte("z")) {
		t.Errorf("Decode = %#v, want []byte(\"z\")", got)
	}
}

func TestDecodePackedStructure(t *testing.T) {
	c := New(native.NewRuntime())
	got, err := c.Decode(mustBuild(t, c, packed), []byte{0x01, 0x02, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rec := got.(*native.Record)
	if s := rec.GoString(); s != "PACKED(a=1, b=2)" {
		t.Errorf("decoded %s", s)
	}
}

func TestDecodeArray(t *testing.T) {
	c := New(native.NewRuntime())
	typ := native.ArrayOf(native.CUInt16, 3)
	got, err := c.Decode(mustBuild(t, c, typ), []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	arr := got.(*native.Array)
	if arr.Type() != typ {
		t.Error("array constructed with the wrong type")
	}
	if arr.String() != "[1, 2, 3]" {
		t.Errorf("decoded %s", arr)
	}
}

func TestDecodePointers(t *testing.T) {
	c := New(native.NewRuntime())

	p64, err := c.Decode(mustBuild(t, c, native.Pointer64(testPoint)), []byte{0x10, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Decode ptr64: %v", err)
	}
	if p := p64.(*native.Ptr); p.Addr() != 16 || p.Target() != testPoint {
		t.Errorf("ptr64 = %v", p)
	}

	p32, err := c.Decode(mustBuild(t, c, native.Pointer32(testPoint)), []byte{0x78, 0x56, 0x34, 0x12})
	if err != nil {
		t.Fatalf("Decode ptr32: %v", err)
	}
	if p := p32.(*native.Ptr); p.Addr() != 0x12345678 {
		t.Errorf("ptr32 = %v", p)
	}
}

func TestDecodeOverlays(t *testing.T) {
	c := New(native.NewRuntime())
	ov := native.NewStruct("OV",
		native.Field("lo", native.CUInt32),
		native.Field("hi", native.CUInt32),
	).WithOffsets(native.OffsetField(0, "whole", native.CULongLong))

	got, err := c.Decode(mustBuild(t, c, ov), []byte{1, 0, 0, 0, 2, 0, 0, 0})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rec := got.(*native.Record)
	if v, _ := rec.Get("whole"); v != uint64(0x0000000200000001) {
		t.Errorf("whole = %#v", v)
	}
	if v, _ := rec.Get("hi"); v != uint32(2) {
		t.Errorf("hi = %#v", v)
	}
}

func TestDecodeErrors(t *testing.T) {
	c := New(native.NewRuntime())

	tests := []struct {
		typ   host.Type
		name  string
		kind  errors.Kind
		path  string
		input []byte
	}{
		{native.CInt, "short buffer", errors.KindByteCast, "c_int", []byte{1, 2, 3}},
		{native.CInt, "long buffer", errors.KindByteCast, "c_int", []byte{1, 2, 3, 4, 5}},
		{testStruct, "struct short buffer", errors.KindByteCast, "TEST", make([]byte, 0x17)},
		{native.CWChar, "wide char", errors.KindNotImplemented, "c_wchar", []byte{'a', 0}},
		{native.PointerTo(testPoint), "native pointer", errors.KindNotImplemented, "MF_LP_POINT", make([]byte, NativePointerSize)},
		{
			native.NewStruct("W", native.Field("c", native.CWChar)),
			"nested wide char", errors.KindNotImplemented, "W.c", []byte{'a', 0},
		},
		{
			native.ArrayOf(native.CWChar, 2),
			"array of wide char", errors.KindNotImplemented, "c_wchar_MF_Array_2[0]", []byte{'a', 0, 'b', 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Decode(mustBuild(t, c, tc.typ), tc.input)
			e := wantKind(t, err, tc.kind)
			if e.Phase != errors.PhaseDecode {
				t.Errorf("Phase = %v, want decode", e.Phase)
			}
			if errors.JoinPath(e.Path) != tc.path {
				t.Errorf("Path = %q, want %q", errors.JoinPath(e.Path), tc.path)
			}
		})
	}
}

func TestDecodeConstructFailure(t *testing.T) {
	c := New(native.NewRuntime())
	d := mustBuild(t, c, native.ArrayOf(native.CByte, 1))
	// point the descriptor at a type the runtime cannot construct
	d.Type = foreignType{"Union", "U"}

	_, err := c.Decode(d, []byte{1})
	wantKind(t, err, errors.KindHostInterop)
}
