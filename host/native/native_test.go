package native

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/memview/host"
)

var point = NewStruct("POINT",
	Field("x", CUInt32),
	Field("y", CFloat),
)

func TestTypeFactoriesAreCached(t *testing.T) {
	assert.Same(t, ArrayOf(CUInt32, 2), ArrayOf(CUInt32, 2))
	assert.NotSame(t, ArrayOf(CUInt32, 2), ArrayOf(CUInt32, 3))
	assert.Same(t, Pointer64(point), Pointer64(point))
	assert.NotSame(t, Pointer32(point), Pointer64(point))

	assert.Equal(t, "c_uint_MF_Array_2", ArrayOf(CUInt32, 2).Name())
	assert.Equal(t, "MF_LP_POINT", Pointer64(point).Name())
}

func TestCategories(t *testing.T) {
	rt := NewRuntime()
	g := rt.Acquire()
	defer g.Release()

	tests := []struct {
		typ  host.Type
		want string
	}{
		{CInt, host.CategorySimple},
		{point, host.CategoryStructure},
		{ArrayOf(CChar, 4), host.CategoryArray},
		{Pointer32(point), host.CategoryPointer32},
		{Pointer64(point), host.CategoryPointer64},
		{PointerTo(point), host.CategoryPointer},
	}
	for _, tc := range tests {
		t.Run(NameOf(tc.typ), func(t *testing.T) {
			got, err := tc.typ.BaseCategory(g)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLookupScalar(t *testing.T) {
	s, ok := LookupScalar("c_uint32")
	require.True(t, ok)
	assert.Same(t, CUInt, s)

	s, ok = LookupScalar("umem")
	require.True(t, ok)
	assert.Equal(t, "c_ulonglong", s.Name())

	_, ok = LookupScalar("c_int128")
	assert.False(t, ok)
}

func TestRecordFormatting(t *testing.T) {
	hidden := NewStruct("HIDDEN", Field("_pad", CInt), Field("x", CInt))
	r := MustRecord(hidden, int32(7), int32(1))
	assert.Equal(t, "x=1", r.String())
	assert.Equal(t, "HIDDEN(_pad=7, x=1)", r.GoString())

	p := MustRecord(point, uint32(1), float32(2))
	assert.Equal(t, "x=1 y=2", p.String())
	assert.Equal(t, "POINT(x=1, y=2)", p.GoString())
}

func TestNewRecordTooManyArgs(t *testing.T) {
	_, err := NewRecord(point, 1, 2, 3)
	assert.Error(t, err)
}

func TestRecordEqual(t *testing.T) {
	a := MustRecord(point, uint32(1), float32(2))
	b := MustRecord(point, uint32(1), float32(2))
	c := MustRecord(point, uint32(1), float32(3))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestPtrArithmetic(t *testing.T) {
	p := NewPtr(Pointer64(point), 3)

	q, err := p.Add(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), q.Addr())

	q, err = q.Sub(8)
	require.NoError(t, err)
	assert.True(t, q.IsNull())

	_, err = p.Sub(5)
	assert.Error(t, err)

	_, err = p.Add(-1)
	assert.Error(t, err)

	assert.Equal(t, "POINT @ 0x3", p.String())
	assert.Equal(t, "POINT(0x3)", p.GoString())
	assert.True(t, p.Equal(NewPtr(Pointer32(point), 3)))
}

func TestConstruct(t *testing.T) {
	rt := NewRuntime()
	g := rt.Acquire()
	defer g.Release()

	v, err := rt.Construct(g, point)
	require.NoError(t, err)
	assert.Equal(t, "POINT(x=None, y=None)", v.(*Record).GoString())

	v, err = rt.Construct(g, ArrayOf(CUShort, 3), uint16(1), uint16(2), uint16(3))
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]", v.(*Array).String())

	_, err = rt.Construct(g, ArrayOf(CUShort, 1), uint16(1), uint16(2))
	assert.Error(t, err)

	v, err = rt.Construct(g, Pointer64(point), uint64(16))
	require.NoError(t, err)
	assert.Equal(t, uint64(16), v.(*Ptr).Addr())

	_, err = rt.Construct(g, Pointer64(point), -1)
	assert.Error(t, err)

	v, err = rt.Construct(g, CInt, int32(5))
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
}

func TestGetAttr(t *testing.T) {
	rt := NewRuntime()
	g := rt.Acquire()
	defer g.Release()

	type goPoint struct {
		X uint32
		y float32
	}

	tests := []struct {
		obj     any
		want    any
		name    string
		attr    string
		missing bool
	}{
		{name: "record", obj: MustRecord(point, uint32(1)), attr: "x", want: uint32(1)},
		{name: "record missing", obj: MustRecord(point, uint32(1)), attr: "y", missing: true},
		{name: "ptr addr", obj: NewPtr(Pointer64(point), 9), attr: "addr", want: uint64(9)},
		{name: "ptr type", obj: NewPtr(Pointer64(point), 9), attr: "_type_", want: point},
		{name: "ptr byteness", obj: NewPtr(Pointer32(point), 9), attr: "_byteness_", want: 4},
		{name: "map", obj: map[string]any{"x": 3}, attr: "x", want: 3},
		{name: "map missing", obj: map[string]any{}, attr: "x", missing: true},
		{name: "go struct", obj: goPoint{X: 4}, attr: "X", want: uint32(4)},
		{name: "go struct pointer", obj: &goPoint{X: 4}, attr: "X", want: uint32(4)},
		{name: "unexported", obj: goPoint{y: 1}, attr: "y", missing: true},
		{name: "nil", obj: nil, attr: "x", missing: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rt.GetAttr(g, tc.obj, tc.attr)
			if tc.missing {
				assert.True(t, errors.Is(err, host.ErrNoAttribute), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetAttr(t *testing.T) {
	rt := NewRuntime()
	g := rt.Acquire()
	defer g.Release()

	r := MustRecord(point)
	require.NoError(t, rt.SetAttr(g, r, "y", float32(1.5)))
	v, ok := r.Get("y")
	require.True(t, ok)
	assert.Equal(t, float32(1.5), v)

	m := map[string]any{}
	require.NoError(t, rt.SetAttr(g, m, "x", 1))
	assert.Equal(t, 1, m["x"])

	assert.Error(t, rt.SetAttr(g, 5, "x", 1))
}

func TestIndexAndLen(t *testing.T) {
	rt := NewRuntime()
	g := rt.Acquire()
	defer g.Release()

	for _, obj := range []any{
		NewArray(ArrayOf(CInt, 3), int32(1), int32(2), int32(3)),
		[]any{int32(1), int32(2), int32(3)},
		[]int32{1, 2, 3},
		[3]int32{1, 2, 3},
	} {
		n, err := rt.Len(g, obj)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		v, err := rt.Index(g, obj, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 3, v)

		_, err = rt.Index(g, obj, 3)
		assert.Error(t, err)
	}

	_, err := rt.Len(g, 42)
	assert.Error(t, err)
}

func TestGuardValidation(t *testing.T) {
	rt := NewRuntime()
	other := NewRuntime()

	g := rt.Acquire()
	g.Release()
	g.Release()

	_, err := rt.GetAttr(g, map[string]any{"x": 1}, "x")
	assert.Error(t, err, "released guard must be rejected")

	og := other.Acquire()
	defer og.Release()
	_, err = rt.GetAttr(og, map[string]any{"x": 1}, "x")
	assert.Error(t, err, "foreign guard must be rejected")

	err = host.With(rt, func(g host.Guard) error {
		_, err := rt.GetAttr(g, map[string]any{"x": 1}, "x")
		return err
	})
	assert.NoError(t, err)
}

func TestStructWithFields(t *testing.T) {
	node := NewStruct("NODE")
	node.WithFields(Field("value", CInt32), Field("next", Pointer64(node)))

	assert.Equal(t, []string{"value", "next"}, node.FieldNames())
	fields, err := node.Fields(nil)
	require.NoError(t, err)
	assert.Same(t, node, fields[1].Type.(*PointerType).Target())
}
