package types

import (
	"strconv"
	"strings"

	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/transcoder/internal/layout"
)

// Descriptor is the packed layout of a host type. A built Descriptor must
// not be modified; it may be shared across goroutines and calls.
type Descriptor struct {
	// Type is the host type handle, used to construct decoded values of
	// pointer, array and structure kinds.
	Type     host.Type
	Elem     *Descriptor
	Name     string
	Fields   []Field
	Overlays []Overlay
	size     int
	Len      uint32
	Kind     Kind
}

// Field is a sequential structure member.
type Field struct {
	Desc *Descriptor
	Name string
}

// Overlay is a structure member at an explicit offset.
type Overlay struct {
	Desc   *Descriptor
	Name   string
	Offset int
}

func NewScalar(kind Kind, name string) *Descriptor {
	return &Descriptor{Kind: kind, Name: name, size: kind.Width()}
}

func NewPointer(kind Kind, t host.Type, name string) *Descriptor {
	return &Descriptor{Kind: kind, Type: t, Name: name, size: kind.Width()}
}

// NewArray reports false when the array size overflows int.
func NewArray(t host.Type, name string, elem *Descriptor, n uint32) (*Descriptor, bool) {
	size, ok := layout.ArraySize(elem.size, n)
	if !ok {
		return nil, false
	}
	return &Descriptor{Kind: KindArray, Type: t, Name: name, Elem: elem, Len: n, size: size}, true
}

// NewStructure reports false when the structure size overflows int or an
// overlay has a negative offset.
func NewStructure(t host.Type, name string, fields []Field, overlays []Overlay) (*Descriptor, bool) {
	spans := make([]layout.Span, len(overlays))
	for i, o := range overlays {
		spans[i] = layout.Span{Offset: o.Offset, Size: o.Desc.size}
	}
	size, ok := layout.StructSize(fieldSizes(fields), spans)
	if !ok {
		return nil, false
	}
	return &Descriptor{Kind: KindStructure, Type: t, Name: name, Fields: fields, Overlays: overlays, size: size}, true
}

func fieldSizes(fields []Field) []int {
	sizes := make([]int, len(fields))
	for i, f := range fields {
		sizes[i] = f.Desc.size
	}
	return sizes
}

// Size returns the number of bytes of the packed layout.
func (d *Descriptor) Size() int {
	return d.size
}

// FieldsSize returns the sum of the sequential field sizes. It equals Size
// unless an overlay extends past the last field.
func (d *Descriptor) FieldsSize() int {
	total, _ := layout.FieldsSize(fieldSizes(d.Fields))
	return total
}

// Field looks up a sequential field or overlay by name.
func (d *Descriptor) Field(name string) (*Descriptor, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Desc, true
		}
	}
	for _, o := range d.Overlays {
		if o.Name == name {
			return o.Desc, true
		}
	}
	return nil, false
}

// Offsets returns the byte offset of each sequential field.
func (d *Descriptor) Offsets() []int {
	return layout.Offsets(fieldSizes(d.Fields))
}

// FieldAt returns the index of the sequential field covering byte off, or -1.
func (d *Descriptor) FieldAt(off int) int {
	return layout.Locate(fieldSizes(d.Fields), off)
}

// String renders the layout as a C-like signature.
func (d *Descriptor) String() string {
	var b strings.Builder
	d.write(&b)
	return b.String()
}

func (d *Descriptor) write(b *strings.Builder) {
	switch {
	case d.Kind.IsScalar():
		b.WriteString(d.Kind.String())
	case d.Kind.IsPointer():
		b.WriteString(d.Kind.String())
		b.WriteByte('<')
		b.WriteString(d.Name)
		b.WriteByte('>')
	case d.Kind == KindArray:
		d.Elem.write(b)
		b.WriteByte('[')
		b.WriteString(strconv.FormatUint(uint64(d.Len), 10))
		b.WriteByte(']')
	case d.Kind == KindStructure:
		b.WriteString("struct ")
		b.WriteString(d.Name)
		b.WriteString(" {")
		for i, f := range d.Fields {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteByte(' ')
			b.WriteString(f.Name)
			b.WriteString(": ")
			f.Desc.write(b)
		}
		for i, o := range d.Overlays {
			if i > 0 || len(d.Fields) > 0 {
				b.WriteByte(';')
			}
			b.WriteString(" @")
			b.WriteString(strconv.Itoa(o.Offset))
			b.WriteByte(' ')
			b.WriteString(o.Name)
			b.WriteString(": ")
			o.Desc.write(b)
		}
		b.WriteString(" }")
	default:
		b.WriteString(d.Kind.String())
	}
}
