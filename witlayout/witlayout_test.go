package witlayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host/native"
	"github.com/wippyai/memview/transcoder"
)

func name(s string) *string { return &s }

var pointType = &wit.TypeDef{
	Name: name("point"),
	Kind: &wit.Record{
		Fields: []wit.Field{
			{Name: "x", Type: wit.U32{}},
			{Name: "y", Type: wit.F32{}},
		},
	},
}

var rectangleType = &wit.TypeDef{
	Name: name("rectangle"),
	Kind: &wit.Record{
		Fields: []wit.Field{
			{Name: "top-left", Type: pointType},
			{Name: "bottom-right", Type: pointType},
		},
	},
}

func TestScalars(t *testing.T) {
	c := transcoder.New(native.NewRuntime())

	tests := []struct {
		typ  wit.Type
		kind transcoder.Kind
		size int
	}{
		{wit.Bool{}, transcoder.KindUByte, 1},
		{wit.U8{}, transcoder.KindUByte, 1},
		{wit.S8{}, transcoder.KindByte, 1},
		{wit.U16{}, transcoder.KindUShort, 2},
		{wit.S16{}, transcoder.KindShort, 2},
		{wit.U32{}, transcoder.KindUInt, 4},
		{wit.S32{}, transcoder.KindInt, 4},
		{wit.U64{}, transcoder.KindULongLong, 8},
		{wit.S64{}, transcoder.KindLongLong, 8},
		{wit.F32{}, transcoder.KindFloat, 4},
		{wit.F64{}, transcoder.KindDouble, 8},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			d, err := c.Build(Type(tc.typ))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, d.Kind)
			assert.Equal(t, tc.size, d.Size())
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	c := transcoder.New(native.NewRuntime())
	d, err := c.Build(Type(rectangleType))
	require.NoError(t, err)
	assert.Equal(t, 16, d.Size())
	assert.Equal(t, "rectangle", d.Name)

	b, err := c.Encode(d, map[string]any{
		"top-left":     map[string]any{"x": 1, "y": 0.5},
		"bottom-right": map[string]any{"x": 3, "y": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		1, 0, 0, 0, 0, 0, 0, 0x3f,
		3, 0, 0, 0, 0, 0, 0, 0x40,
	}, b)

	v, err := c.Decode(d, b)
	require.NoError(t, err)
	rec := v.(*native.Record)
	br, ok := rec.Get("bottom-right")
	require.True(t, ok)
	x, _ := br.(*native.Record).Get("x")
	assert.Equal(t, uint32(3), x)
}

func TestTuple(t *testing.T) {
	c := transcoder.New(native.NewRuntime())
	tuple := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.S64{}}}}

	d, err := c.Build(Named("pair", tuple))
	require.NoError(t, err)
	assert.Equal(t, 9, d.Size())
	assert.Equal(t, "struct pair { f0: c_ubyte; f1: c_longlong }", d.String())

	d, err = c.Build(Type(tuple))
	require.NoError(t, err)
	assert.Equal(t, "tuple", d.Name)
}

func TestAlias(t *testing.T) {
	alias := &wit.TypeDef{Name: name("coord"), Kind: wit.U16{}}
	d, err := transcoder.Build(native.NewRuntime(), Type(alias))
	require.NoError(t, err)
	assert.Equal(t, transcoder.KindUShort, d.Kind)
}

func TestUnsupported(t *testing.T) {
	rt := native.NewRuntime()

	tests := []struct {
		name string
		typ  wit.Type
		path string
	}{
		{"string", wit.String{}, "string"},
		{"char", wit.Char{}, "char"},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, "list"},
		{"option", &wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}}, "option"},
		{
			"nested string",
			&wit.TypeDef{Name: name("person"), Kind: &wit.Record{Fields: []wit.Field{{Name: "name", Type: wit.String{}}}}},
			"person.name",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := transcoder.Build(rt, Type(tc.typ))
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errors.KindInvalidType, e.Kind)
			assert.Equal(t, tc.path, errors.JoinPath(e.Path))
		})
	}
}

func TestParse(t *testing.T) {
	typ, err := Parse("u16")
	require.NoError(t, err)
	n, err := transcoder.Sizeof(native.NewRuntime(), typ)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = Parse("not a type")
	assert.ErrorIs(t, err, errors.ErrInvalidType)
}

func TestCacheSharesDescriptors(t *testing.T) {
	c := transcoder.New(native.NewRuntime(), transcoder.WithCache())
	a, err := c.Build(Type(pointType))
	require.NoError(t, err)
	b, err := c.Build(Type(pointType))
	require.NoError(t, err)
	assert.Same(t, a, b)
}
