package native

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/wippyai/memview/host"
)

// Record is an instance of a structure type. Attributes are kept in
// assignment order; String and GoString follow the declared field order
// when the type is a *Struct.
type Record struct {
	typ   host.Type
	attrs map[string]any
	order []string
}

func newRecord(t host.Type) *Record {
	return &Record{typ: t, attrs: make(map[string]any)}
}

// NewRecord creates an instance of t, assigning args to fields positionally.
func NewRecord(t *Struct, args ...any) (*Record, error) {
	if len(args) > len(t.fields) {
		return nil, fmt.Errorf("native: %s takes at most %d positional arguments, got %d", t.name, len(t.fields), len(args))
	}
	r := newRecord(t)
	for i, a := range args {
		r.Set(t.fields[i].Name, a)
	}
	return r, nil
}

// MustRecord is like NewRecord but panics on error.
func MustRecord(t *Struct, args ...any) *Record {
	r, err := NewRecord(t, args...)
	if err != nil {
		panic(err)
	}
	return r
}

// Type returns the record's type object.
func (r *Record) Type() host.Type { return r.typ }

// Get returns the attribute name.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// Set assigns the attribute name.
func (r *Record) Set(name string, v any) {
	if _, ok := r.attrs[name]; !ok {
		r.order = append(r.order, name)
	}
	r.attrs[name] = v
}

// With assigns the attribute name and returns r.
func (r *Record) With(name string, v any) *Record {
	r.Set(name, v)
	return r
}

// Names returns the attribute names in assignment order.
func (r *Record) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Record) displayNames() []string {
	if s, ok := r.typ.(*Struct); ok {
		return s.FieldNames()
	}
	return r.order
}

// String renders the public attributes as "name=value" pairs.
func (r *Record) String() string {
	var parts []string
	for _, name := range r.displayNames() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		parts = append(parts, name+"="+FormatValue(r.attrs[name]))
	}
	return strings.Join(parts, " ")
}

// GoString renders the record like a constructor call: POINT(x=1, y=2).
func (r *Record) GoString() string {
	names := r.displayNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+FormatValue(r.attrs[name]))
	}
	return NameOf(r.typ) + "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether other has the same type and attributes.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.typ != other.typ {
		return false
	}
	return reflect.DeepEqual(r.attrs, other.attrs)
}

// Array is an instance of an array type.
type Array struct {
	typ   host.Type
	elems []any
}

// NewArray creates an instance of t holding elems in order.
func NewArray(t host.Type, elems ...any) *Array {
	out := make([]any, len(elems))
	copy(out, elems)
	return &Array{typ: t, elems: out}
}

// Type returns the array's type object.
func (a *Array) Type() host.Type { return a.typ }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// At returns element i.
func (a *Array) At(i int) any { return a.elems[i] }

// Values returns a copy of the elements.
func (a *Array) Values() []any {
	out := make([]any, len(a.elems))
	copy(out, a.elems)
	return out
}

func (a *Array) String() string {
	parts := make([]string, len(a.elems))
	for i, e := range a.elems {
		parts[i] = FormatValue(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Ptr is an instance of a pointer wrapper type. It only carries an address.
type Ptr struct {
	typ  host.Type
	addr uint64
}

// NewPtr creates a pointer value of type t.
func NewPtr(t host.Type, addr uint64) *Ptr {
	return &Ptr{typ: t, addr: addr}
}

// Type returns the pointer's wrapper type.
func (p *Ptr) Type() host.Type { return p.typ }

// Target returns the pointed-to type, nil if the wrapper type is foreign.
func (p *Ptr) Target() host.Type {
	if pt, ok := p.typ.(*PointerType); ok {
		return pt.target
	}
	return nil
}

// Addr returns the address value.
func (p *Ptr) Addr() uint64 { return p.addr }

// IsNull reports whether the address is zero.
func (p *Ptr) IsNull() bool { return p.addr == 0 }

// Add returns a pointer offset forward by off bytes.
func (p *Ptr) Add(off int64) (*Ptr, error) {
	if off < 0 {
		return nil, fmt.Errorf("native: offset should be a positive number, got %d", off)
	}
	return &Ptr{typ: p.typ, addr: p.addr + uint64(off)}, nil
}

// Sub returns a pointer offset backward by off bytes. The result may not
// go below address zero.
func (p *Ptr) Sub(off int64) (*Ptr, error) {
	if off < 0 {
		return nil, fmt.Errorf("native: offset should be a positive number, got %d", off)
	}
	if uint64(off) > p.addr {
		return nil, fmt.Errorf("native: addr should be a positive number, %#x - %d underflows", p.addr, off)
	}
	return &Ptr{typ: p.typ, addr: p.addr - uint64(off)}, nil
}

// Equal reports whether both pointers hold the same address.
func (p *Ptr) Equal(other *Ptr) bool {
	return other != nil && p.addr == other.addr
}

func (p *Ptr) targetName() string {
	if t := p.Target(); t != nil {
		return NameOf(t)
	}
	return NameOf(p.typ)
}

func (p *Ptr) String() string {
	return fmt.Sprintf("%s @ %#x", p.targetName(), p.addr)
}

func (p *Ptr) GoString() string {
	return fmt.Sprintf("%s(%#x)", p.targetName(), p.addr)
}

// FormatValue renders a host value the way records and arrays print their members.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case []byte:
		return fmt.Sprintf("b%q", x)
	case fmt.Stringer:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}
