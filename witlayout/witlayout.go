package witlayout

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host"
)

// scalarNames maps WIT primitives to the simple scalar of the same width.
var scalarNames = map[reflect.Type]string{
	reflect.TypeOf(wit.Bool{}): "c_bool",
	reflect.TypeOf(wit.U8{}):   "c_ubyte",
	reflect.TypeOf(wit.S8{}):   "c_byte",
	reflect.TypeOf(wit.U16{}):  "c_ushort",
	reflect.TypeOf(wit.S16{}):  "c_short",
	reflect.TypeOf(wit.U32{}):  "c_uint",
	reflect.TypeOf(wit.S32{}):  "c_int",
	reflect.TypeOf(wit.U64{}):  "c_ulonglong",
	reflect.TypeOf(wit.S64{}):  "c_longlong",
	reflect.TypeOf(wit.F32{}):  "c_float",
	reflect.TypeOf(wit.F64{}):  "c_double",
}

// witType is a host type backed by a WIT type. Values are comparable, so
// equal WIT types share descriptor cache entries.
type witType struct {
	t    wit.Type
	name string
}

var _ host.Type = witType{}

// Type returns the host type of t.
func Type(t wit.Type) host.Type {
	return witType{t: resolve(t)}
}

// Named is like Type but overrides the structure name of records and
// tuples.
func Named(name string, t wit.Type) host.Type {
	return witType{t: resolve(t), name: name}
}

// Parse parses a WIT primitive type name such as "u32".
func Parse(s string) (host.Type, error) {
	t, err := wit.ParseType(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidType, err, fmt.Sprintf("parse WIT type %q", s))
	}
	return Type(t), nil
}

// resolve follows type aliases: definitions whose kind is another type.
func resolve(t wit.Type) wit.Type {
	for {
		td, ok := t.(*wit.TypeDef)
		if !ok || td == nil {
			return t
		}
		inner, ok := td.Kind.(wit.Type)
		if !ok {
			return t
		}
		t = inner
	}
}

func (w witType) kind() any {
	if td, ok := w.t.(*wit.TypeDef); ok && td != nil {
		return td.Kind
	}
	return w.t
}

// kindName names a WIT type or definition kind: "string", "list", ...
func kindName(v any) string {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return "nil"
	}
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return strings.ToLower(rt.Name())
}

func (w witType) BaseCategory(host.Guard) (string, error) {
	if _, ok := scalarNames[reflect.TypeOf(w.t)]; ok {
		return host.CategorySimple, nil
	}
	switch w.kind().(type) {
	case *wit.Record, *wit.Tuple:
		return host.CategoryStructure, nil
	}
	return kindName(w.kind()), nil
}

func (w witType) TypeName(host.Guard) (string, error) {
	if name, ok := scalarNames[reflect.TypeOf(w.t)]; ok {
		return name, nil
	}
	if w.name != "" {
		return w.name, nil
	}
	if td, ok := w.t.(*wit.TypeDef); ok && td != nil && td.Name != nil {
		return *td.Name, nil
	}
	return kindName(w.kind()), nil
}

func (w witType) Fields(host.Guard) ([]host.Field, error) {
	switch k := w.kind().(type) {
	case *wit.Record:
		fields := make([]host.Field, len(k.Fields))
		for i, f := range k.Fields {
			fields[i] = host.Field{Name: f.Name, Type: fieldType(f.Type)}
		}
		return fields, nil
	case *wit.Tuple:
		fields := make([]host.Field, len(k.Types))
		for i, t := range k.Types {
			fields[i] = host.Field{Name: "f" + strconv.Itoa(i), Type: fieldType(t)}
		}
		return fields, nil
	}
	return nil, fmt.Errorf("witlayout: %s has no fields", kindName(w.kind()))
}

// fieldType keeps a missing WIT type as a nil host type so the builder
// reports the field as untyped.
func fieldType(t wit.Type) host.Type {
	if t == nil {
		return nil
	}
	return Type(t)
}

func (w witType) Element(host.Guard) (host.Type, uint32, error) {
	return nil, 0, fmt.Errorf("witlayout: %s is not a fixed-length array", kindName(w.kind()))
}

func (w witType) String() string {
	name, _ := w.TypeName(nil)
	return name
}
