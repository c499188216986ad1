package native

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/wippyai/memview/host"
)

// named is implemented by every type of this package.
type named interface {
	Name() string
}

// NameOf returns the name of a host type without consulting its runtime.
// Types from other object models report "?" unless they implement Name.
func NameOf(t host.Type) string {
	if t == nil {
		return "<nil>"
	}
	if n, ok := t.(named); ok {
		return n.Name()
	}
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return "?"
}

type base struct {
	name string
}

func (b base) Name() string   { return b.name }
func (b base) String() string { return b.name }

func (b base) TypeName(host.Guard) (string, error) {
	return b.name, nil
}

func (b base) Fields(host.Guard) ([]host.Field, error) {
	return nil, fmt.Errorf("native: %s has no _fields_", b.name)
}

func (b base) Element(host.Guard) (host.Type, uint32, error) {
	return nil, 0, fmt.Errorf("native: %s has no _type_/_length_", b.name)
}

// Scalar is a simple C data type identified by its ctypes name.
type Scalar struct {
	base
}

// NewScalar declares a simple scalar type. Only the names of the predefined
// scalars below are understood by the transcoder.
func NewScalar(name string) *Scalar {
	return &Scalar{base{name: name}}
}

func (s *Scalar) BaseCategory(host.Guard) (string, error) {
	return host.CategorySimple, nil
}

var (
	CByte       = NewScalar("c_byte")
	CUByte      = NewScalar("c_ubyte")
	CBool       = NewScalar("c_bool")
	CChar       = NewScalar("c_char")
	CWChar      = NewScalar("c_wchar")
	CShort      = NewScalar("c_short")
	CUShort     = NewScalar("c_ushort")
	CInt        = NewScalar("c_int")
	CUInt       = NewScalar("c_uint")
	CLong       = NewScalar("c_long")
	CULong      = NewScalar("c_ulong")
	CLongLong   = NewScalar("c_longlong")
	CULongLong  = NewScalar("c_ulonglong")
	CFloat      = NewScalar("c_float")
	CDouble     = NewScalar("c_double")
	CLongDouble = NewScalar("c_longdouble")
)

// Explicitly sized aliases.
var (
	CInt8   = CByte
	CUInt8  = CUByte
	CInt16  = CShort
	CUInt16 = CUShort
	CInt32  = CInt
	CUInt32 = CUInt
	CInt64  = CLongLong
	CUInt64 = CULongLong

	// Umem holds any address of the introspection target.
	Umem = CUInt64
)

var scalarsByName = map[string]*Scalar{}

func init() {
	for _, s := range []*Scalar{
		CByte, CUByte, CBool, CChar, CWChar, CShort, CUShort, CInt, CUInt,
		CLong, CULong, CLongLong, CULongLong, CFloat, CDouble, CLongDouble,
	} {
		scalarsByName[s.name] = s
	}
	for alias, s := range map[string]*Scalar{
		"c_int8": CInt8, "c_uint8": CUInt8, "c_int16": CInt16, "c_uint16": CUInt16,
		"c_int32": CInt32, "c_uint32": CUInt32, "c_int64": CInt64, "c_uint64": CUInt64,
		"umem": Umem,
	} {
		scalarsByName[alias] = s
	}
}

// LookupScalar resolves a scalar name or sized alias (c_uint32, umem, ...).
func LookupScalar(name string) (*Scalar, bool) {
	s, ok := scalarsByName[name]
	return s, ok
}

// Struct is a record type with an ordered field list and optional overlays.
type Struct struct {
	base
	fields  []host.Field
	offsets []host.Offset
}

// Field declares a structure field.
func Field(name string, t host.Type) host.Field {
	return host.Field{Name: name, Type: t}
}

// OffsetField declares an overlay field at an explicit byte offset.
func OffsetField(at int, name string, t host.Type) host.Offset {
	return host.Offset{At: at, Name: name, Type: t}
}

// NewStruct declares a structure type. Fields are laid out in the given order.
func NewStruct(name string, fields ...host.Field) *Struct {
	return &Struct{base: base{name: name}, fields: fields}
}

// WithFields appends sequential fields and returns s. Declaring a struct
// first and adding its fields later lets its fields point back to it.
func (s *Struct) WithFields(fields ...host.Field) *Struct {
	s.fields = append(s.fields, fields...)
	return s
}

// WithOffsets adds overlay fields and returns s.
func (s *Struct) WithOffsets(offsets ...host.Offset) *Struct {
	s.offsets = append(s.offsets, offsets...)
	return s
}

func (s *Struct) BaseCategory(host.Guard) (string, error) {
	return host.CategoryStructure, nil
}

func (s *Struct) Fields(host.Guard) ([]host.Field, error) {
	out := make([]host.Field, len(s.fields))
	copy(out, s.fields)
	return out, nil
}

func (s *Struct) Offsets(host.Guard) ([]host.Offset, error) {
	out := make([]host.Offset, len(s.offsets))
	copy(out, s.offsets)
	return out, nil
}

// FieldNames returns the sequential field names followed by overlay names.
func (s *Struct) FieldNames() []string {
	names := make([]string, 0, len(s.fields)+len(s.offsets))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	for _, o := range s.offsets {
		names = append(names, o.Name)
	}
	return names
}

// ArrayType is a fixed-length homogeneous sequence type.
type ArrayType struct {
	elem host.Type
	base
	length uint32
}

func (a *ArrayType) BaseCategory(host.Guard) (string, error) {
	return host.CategoryArray, nil
}

func (a *ArrayType) Element(host.Guard) (host.Type, uint32, error) {
	return a.elem, a.length, nil
}

// Elem returns the element type.
func (a *ArrayType) Elem() host.Type { return a.elem }

// Length returns the element count.
func (a *ArrayType) Length() uint32 { return a.length }

type arrayKey struct {
	elem   host.Type
	length uint32
}

var arrayTypes = xsync.NewMap[arrayKey, *ArrayType]()

// ArrayOf returns the array type of length elements of elem. Repeated calls
// with the same arguments return the same type.
func ArrayOf(elem host.Type, length uint32) *ArrayType {
	key := arrayKey{elem: elem, length: length}
	if at, ok := arrayTypes.Load(key); ok {
		return at
	}
	at := &ArrayType{
		base:   base{name: fmt.Sprintf("%s_MF_Array_%d", NameOf(elem), length)},
		elem:   elem,
		length: length,
	}
	actual, _ := arrayTypes.LoadOrStore(key, at)
	return actual
}

// PointerType is a pointer wrapper type. Width is 4 or 8 for fixed-width
// pointers and 0 for native-width pointers.
type PointerType struct {
	target host.Type
	base
	width int
}

func (p *PointerType) BaseCategory(host.Guard) (string, error) {
	switch p.width {
	case 4:
		return host.CategoryPointer32, nil
	case 8:
		return host.CategoryPointer64, nil
	default:
		return host.CategoryPointer, nil
	}
}

// Target returns the pointed-to type.
func (p *PointerType) Target() host.Type { return p.target }

// Width returns the pointer width in bytes, 0 for native width.
func (p *PointerType) Width() int { return p.width }

type pointerKey struct {
	target host.Type
	width  int
}

var pointerTypes = xsync.NewMap[pointerKey, *PointerType]()

func pointerOf(target host.Type, width int) *PointerType {
	key := pointerKey{target: target, width: width}
	if pt, ok := pointerTypes.Load(key); ok {
		return pt
	}
	pt := &PointerType{
		base:   base{name: "MF_LP_" + NameOf(target)},
		target: target,
		width:  width,
	}
	actual, _ := pointerTypes.LoadOrStore(key, pt)
	return actual
}

// Pointer32 returns the 4-byte pointer wrapper type for target.
func Pointer32(target host.Type) *PointerType { return pointerOf(target, 4) }

// Pointer64 returns the 8-byte pointer wrapper type for target.
func Pointer64(target host.Type) *PointerType { return pointerOf(target, 8) }

// PointerTo returns the native-width pointer type for target.
func PointerTo(target host.Type) *PointerType { return pointerOf(target, 0) }
