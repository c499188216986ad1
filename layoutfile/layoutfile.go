package layoutfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/host/native"
)

// Layout holds the structure types declared by one document.
type Layout struct {
	structs map[string]*native.Struct
	order   []string
}

type fieldDecl struct {
	expr string
	name string
	pos  toml.Position
}

type offsetDecl struct {
	fieldDecl
	at int64
}

type structDecl struct {
	name    string
	fields  []fieldDecl
	offsets []offsetDecl
	pos     toml.Position
}

const (
	unresolved = iota
	resolving
	resolved
)

type parser struct {
	layout *Layout
	decls  map[string]*structDecl
	state  map[string]int
}

// Load parses the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read layout file")
	}
	return Parse(data)
}

// Parse reads a TOML layout document.
func Parse(data []byte) (*Layout, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse layout")
	}

	p := &parser{
		layout: &Layout{structs: map[string]*native.Struct{}},
		decls:  map[string]*structDecl{},
		state:  map[string]int{},
	}
	if err := p.declare(tree); err != nil {
		return nil, err
	}
	for _, name := range p.layout.order {
		if err := p.resolve(name); err != nil {
			return nil, err
		}
	}
	return p.layout, nil
}

func invalid(pos toml.Position, path []string, format string, args ...any) error {
	b := errors.New(errors.PhaseConfig, errors.KindInvalidInput).Detail(format, args...)
	if len(path) > 0 {
		b.Path(path...)
	}
	if !pos.Invalid() {
		b.Value(pos.String())
	}
	return b.Build()
}

func (p *parser) declare(tree *toml.Tree) error {
	if !tree.Has("struct") {
		return nil
	}
	tables, ok := tree.Get("struct").([]*toml.Tree)
	if !ok {
		return invalid(tree.GetPosition("struct"), nil, "struct must be an array of tables")
	}

	for _, t := range tables {
		d, err := declaration(t)
		if err != nil {
			return err
		}
		if _, dup := p.decls[d.name]; dup {
			return invalid(d.pos, []string{d.name}, "struct %s declared twice", d.name)
		}
		if _, scalar := native.LookupScalar(d.name); scalar {
			return invalid(d.pos, []string{d.name}, "struct %s shadows a scalar type", d.name)
		}
		p.decls[d.name] = d
		p.layout.order = append(p.layout.order, d.name)
		p.layout.structs[d.name] = native.NewStruct(d.name)
	}
	return nil
}

func stringAt(t *toml.Tree, key string, path []string) (string, error) {
	s, ok := t.Get(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", invalid(t.GetPosition(key), path, "%s must be a non-empty string", key)
	}
	return strings.TrimSpace(s), nil
}

func declaration(t *toml.Tree) (*structDecl, error) {
	name, err := stringAt(t, "name", nil)
	if err != nil {
		return nil, err
	}
	d := &structDecl{name: name, pos: t.Position()}

	if t.Has("fields") {
		list, ok := t.Get("fields").([]interface{})
		if !ok {
			return nil, invalid(t.GetPosition("fields"), []string{name}, "fields must be an array of [name, type] pairs")
		}
		for i, raw := range list {
			pair, ok := raw.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, invalid(t.GetPosition("fields"), []string{name}, "field %d must be a [name, type] pair", i)
			}
			fname, ok1 := pair[0].(string)
			expr, ok2 := pair[1].(string)
			if !ok1 || !ok2 || fname == "" {
				return nil, invalid(t.GetPosition("fields"), []string{name}, "field %d must hold two strings", i)
			}
			d.fields = append(d.fields, fieldDecl{name: fname, expr: expr, pos: t.GetPosition("fields")})
		}
	}

	if t.Has("offset") {
		tables, ok := t.Get("offset").([]*toml.Tree)
		if !ok {
			return nil, invalid(t.GetPosition("offset"), []string{name}, "offset must be an array of tables")
		}
		for _, o := range tables {
			oname, err := stringAt(o, "name", []string{name})
			if err != nil {
				return nil, err
			}
			expr, err := stringAt(o, "type", []string{name, oname})
			if err != nil {
				return nil, err
			}
			at, ok := o.Get("at").(int64)
			if !ok || at < 0 {
				return nil, invalid(o.GetPosition("at"), []string{name, oname}, "at must be a non-negative integer")
			}
			d.offsets = append(d.offsets, offsetDecl{
				fieldDecl: fieldDecl{name: oname, expr: expr, pos: o.Position()},
				at:        at,
			})
		}
	}
	return d, nil
}

// resolve fills in the fields of name after resolving every struct it
// contains by value.
func (p *parser) resolve(name string) error {
	switch p.state[name] {
	case resolved:
		return nil
	case resolving:
		d := p.decls[name]
		return invalid(d.pos, []string{name}, "struct %s contains itself by value", name)
	}
	p.state[name] = resolving

	d := p.decls[name]
	s := p.layout.structs[name]
	for _, f := range d.fields {
		t, err := p.expr(f.expr, true, []string{name, f.name})
		if err != nil {
			return err
		}
		s.WithFields(native.Field(f.name, t))
	}
	for _, o := range d.offsets {
		t, err := p.expr(o.expr, true, []string{name, o.name})
		if err != nil {
			return err
		}
		s.WithOffsets(native.OffsetField(int(o.at), o.name, t))
	}

	p.state[name] = resolved
	return nil
}

// expr parses a type expression. Arrays apply left to right, so T[2][3] is
// three elements of T[2]. Pointer targets are not resolved, which lets
// structs point back at themselves.
func (p *parser) expr(s string, byValue bool, path []string) (host.Type, error) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "]") {
		i := strings.LastIndex(s, "[")
		if i <= 0 {
			return nil, invalid(toml.Position{}, path, "malformed array type %q", s)
		}
		n, err := strconv.ParseUint(strings.TrimSpace(s[i+1:len(s)-1]), 0, 32)
		if err != nil {
			return nil, invalid(toml.Position{}, path, "bad array length in %q", s)
		}
		elem, err := p.expr(s[:i], byValue, path)
		if err != nil {
			return nil, err
		}
		return native.ArrayOf(elem, uint32(n)), nil
	}

	for _, ptr := range []struct {
		prefix string
		make   func(host.Type) *native.PointerType
	}{
		{"ptr32<", native.Pointer32},
		{"ptr64<", native.Pointer64},
		{"ptr<", native.PointerTo},
	} {
		if strings.HasPrefix(s, ptr.prefix) {
			if !strings.HasSuffix(s, ">") {
				return nil, invalid(toml.Position{}, path, "unterminated pointer type %q", s)
			}
			target, err := p.expr(s[len(ptr.prefix):len(s)-1], false, path)
			if err != nil {
				return nil, err
			}
			return ptr.make(target), nil
		}
	}

	if sc, ok := native.LookupScalar(s); ok {
		return sc, nil
	}
	st, ok := p.layout.structs[s]
	if !ok {
		return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
			Path(path...).
			Detail("unknown type %q", s).
			Value(s).
			Build()
	}
	if byValue && p.decls != nil {
		if err := p.resolve(s); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Type resolves a type expression against the layout: a scalar name, a
// declared struct, T[n], ptr32<T>, ptr64<T> or ptr<T>.
func (l *Layout) Type(expr string) (host.Type, error) {
	p := &parser{layout: l}
	t, err := p.expr(expr, true, []string{expr})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Struct returns the declared struct name.
func (l *Layout) Struct(name string) (*native.Struct, bool) {
	s, ok := l.structs[name]
	return s, ok
}

// Names returns the declared struct names in declaration order.
func (l *Layout) Names() []string {
	return append([]string(nil), l.order...)
}

func (l *Layout) String() string {
	return fmt.Sprintf("layout(%s)", strings.Join(l.order, ", "))
}
