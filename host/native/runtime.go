package native

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/wippyai/memview/host"
)

// Runtime is the Go host object model. It serialises capability calls
// behind a single non-reentrant lock.
type Runtime struct {
	mu sync.Mutex
}

var _ host.Runtime = (*Runtime)(nil)
var _ host.Lener = (*Runtime)(nil)

// NewRuntime creates a host runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

type guard struct {
	rt   *Runtime
	once sync.Once
	live bool
}

func (g *guard) Release() {
	g.once.Do(func() {
		g.live = false
		g.rt.mu.Unlock()
	})
}

// Acquire takes the runtime lock. It blocks while another guard is live.
func (r *Runtime) Acquire() host.Guard {
	r.mu.Lock()
	return &guard{rt: r, live: true}
}

func (r *Runtime) check(g host.Guard) error {
	gg, ok := g.(*guard)
	if !ok || gg.rt != r {
		return errors.New("native: guard does not belong to this runtime")
	}
	if !gg.live {
		return errors.New("native: guard already released")
	}
	return nil
}

func noAttribute(obj any, name string) error {
	return fmt.Errorf("native: %T has no attribute %q: %w", obj, name, host.ErrNoAttribute)
}

func (r *Runtime) GetAttr(g host.Guard, obj host.Value, name string) (host.Value, error) {
	if err := r.check(g); err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Record:
		if v, ok := o.Get(name); ok {
			return v, nil
		}
		return nil, noAttribute(obj, name)
	case *Ptr:
		switch name {
		case "addr":
			return o.addr, nil
		case "_type_":
			if t := o.Target(); t != nil {
				return t, nil
			}
		case "_byteness_":
			if pt, ok := o.typ.(*PointerType); ok && pt.width != 0 {
				return pt.width, nil
			}
		}
		return nil, noAttribute(obj, name)
	case map[string]any:
		if v, ok := o[name]; ok {
			return v, nil
		}
		return nil, noAttribute(obj, name)
	case nil:
		return nil, noAttribute(obj, name)
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, noAttribute(obj, name)
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		sf, ok := rv.Type().FieldByName(name)
		if ok && sf.IsExported() {
			return rv.FieldByIndex(sf.Index).Interface(), nil
		}
	}
	return nil, noAttribute(obj, name)
}

func (r *Runtime) SetAttr(g host.Guard, obj host.Value, name string, v host.Value) error {
	if err := r.check(g); err != nil {
		return err
	}
	switch o := obj.(type) {
	case *Record:
		o.Set(name, v)
		return nil
	case map[string]any:
		o[name] = v
		return nil
	default:
		return fmt.Errorf("native: cannot set attribute %q on %T", name, obj)
	}
}

// Construct calls the type object t with args. Structures take positional
// field values, arrays take their elements, pointers take one non-negative
// address and simple scalars return their single argument.
func (r *Runtime) Construct(g host.Guard, t host.Type, args ...host.Value) (host.Value, error) {
	if err := r.check(g); err != nil {
		return nil, err
	}
	category, err := t.BaseCategory(g)
	if err != nil {
		return nil, err
	}
	switch category {
	case host.CategoryStructure:
		if s, ok := t.(*Struct); ok {
			return NewRecord(s, args...)
		}
		if len(args) > 0 {
			return nil, fmt.Errorf("native: %s takes no positional arguments", NameOf(t))
		}
		return newRecord(t), nil

	case host.CategoryArray:
		_, n, err := t.Element(g)
		if err != nil {
			return nil, err
		}
		if len(args) > int(n) {
			return nil, fmt.Errorf("native: %s takes at most %d elements, got %d", NameOf(t), n, len(args))
		}
		return NewArray(t, args...), nil

	case host.CategoryPointer, host.CategoryPointer32, host.CategoryPointer64:
		if len(args) != 1 {
			return nil, fmt.Errorf("native: %s takes exactly one address, got %d", NameOf(t), len(args))
		}
		addr, err := toAddress(args[0])
		if err != nil {
			return nil, err
		}
		return NewPtr(t, addr), nil

	case host.CategorySimple:
		if len(args) != 1 {
			return nil, fmt.Errorf("native: %s takes exactly one value, got %d", NameOf(t), len(args))
		}
		return args[0], nil

	default:
		return nil, fmt.Errorf("native: %s is not constructible", NameOf(t))
	}
}

func toAddress(v any) (uint64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return 0, fmt.Errorf("native: addr should be a positive number, got %d", rv.Int())
		}
		return uint64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
			return 0, fmt.Errorf("native: addr should be a positive integer, got %v", f)
		}
		return uint64(f), nil
	default:
		return 0, fmt.Errorf("native: addr should be an integer, got %T", v)
	}
}

func (r *Runtime) Index(g host.Guard, obj host.Value, i int) (host.Value, error) {
	if err := r.check(g); err != nil {
		return nil, err
	}
	n, err := length(obj)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("native: index %d out of range [0, %d)", i, n)
	}
	switch o := obj.(type) {
	case *Array:
		return o.elems[i], nil
	case []any:
		return o[i], nil
	}
	return reflect.ValueOf(obj).Index(i).Interface(), nil
}

func (r *Runtime) Len(g host.Guard, obj host.Value) (int, error) {
	if err := r.check(g); err != nil {
		return 0, err
	}
	return length(obj)
}

func length(obj any) (int, error) {
	switch o := obj.(type) {
	case *Array:
		return len(o.elems), nil
	case []any:
		return len(o), nil
	case nil:
		return 0, errors.New("native: nil is not a sequence")
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), nil
	default:
		return 0, fmt.Errorf("native: %T is not a sequence", obj)
	}
}
