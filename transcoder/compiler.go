package transcoder

import (
	"reflect"
	"strconv"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/transcoder/internal/types"
)

// Option configures a Compiler or Codec.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	cache   bool
	lenient bool
}

// WithCache memoises descriptors per host type handle. Host types must not
// change shape after their first build when caching is enabled.
func WithCache() Option {
	return func(o *options) { o.cache = true }
}

// WithLenientPointers truncates pointer addresses wider than the declared
// pointer width instead of failing with an overflow error.
func WithLenientPointers() Option {
	return func(o *options) { o.lenient = true }
}

// WithLogger sets the logger used for build and codec diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// Compiler builds descriptors from host types.
type Compiler struct {
	calls  hostCalls
	cache  *xsync.Map[host.Type, *Descriptor]
	logger *zap.Logger
}

func NewCompiler(rt host.Runtime, opts ...Option) *Compiler {
	o := buildOptions(opts)
	c := &Compiler{
		calls:  hostCalls{rt: rt},
		logger: o.logger,
	}
	if o.cache {
		c.cache = xsync.NewMap[host.Type, *Descriptor]()
	}
	return c
}

// Build returns the descriptor of host type t. It fails on the first type
// it cannot describe; the error path names the offending field.
func (c *Compiler) Build(t host.Type) (*Descriptor, error) {
	if t == nil {
		return nil, errors.InvalidType(nil, "<nil>")
	}
	name, err := c.calls.typeName(t)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseReflect, nil, "type name", err)
	}
	d, err := c.build(t, []string{name})
	if err != nil {
		c.logger.Debug("descriptor build failed", zap.String("type", name), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("built descriptor",
		zap.String("type", name),
		zap.Stringer("kind", d.Kind),
		zap.Int("size", d.Size()),
	)
	return d, nil
}

// Sizeof returns the packed size of host type t.
func (c *Compiler) Sizeof(t host.Type) (int, error) {
	d, err := c.Build(t)
	if err != nil {
		return 0, err
	}
	return d.Size(), nil
}

func cacheable(t host.Type) bool {
	return reflect.TypeOf(t).Comparable()
}

func (c *Compiler) build(t host.Type, path []string) (*Descriptor, error) {
	if c.cache != nil && cacheable(t) {
		if d, ok := c.cache.Load(t); ok {
			return d, nil
		}
	}

	d, err := c.compile(t, path)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && cacheable(t) {
		d, _ = c.cache.LoadOrStore(t, d)
	}
	return d, nil
}

func (c *Compiler) compile(t host.Type, path []string) (*Descriptor, error) {
	category, err := c.calls.category(t)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseReflect, path, "base category", err)
	}
	name, err := c.calls.typeName(t)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseReflect, path, "type name", err)
	}

	switch category {
	case host.CategorySimple:
		return c.compileScalar(name, path)
	case host.CategoryPointer:
		return types.NewPointer(KindPointer, t, name), nil
	case host.CategoryPointer32:
		return types.NewPointer(KindPointer32, t, name), nil
	case host.CategoryPointer64:
		return types.NewPointer(KindPointer64, t, name), nil
	case host.CategoryArray:
		return c.compileArray(t, name, path)
	case host.CategoryStructure:
		return c.compileStructure(t, name, path)
	default:
		return nil, errors.InvalidType(path, category)
	}
}

func (c *Compiler) compileScalar(name string, path []string) (*Descriptor, error) {
	if kind, ok := types.ScalarKind(name); ok {
		return types.NewScalar(kind, name), nil
	}
	switch name {
	case "c_char_p", "c_wchar_p":
		return nil, errors.NotImplemented(errors.PhaseReflect, path, name+" is not supported")
	}
	return nil, errors.UnknownScalar(path, name)
}

func (c *Compiler) compileArray(t host.Type, name string, path []string) (*Descriptor, error) {
	elemType, n, err := c.calls.element(t)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseReflect, path, "array element", err)
	}
	if elemType == nil {
		return nil, errors.MissingFieldType(path, "_type_")
	}
	elem, err := c.build(elemType, append(clonePath(path), "[]"))
	if err != nil {
		return nil, err
	}
	d, ok := types.NewArray(t, name, elem, n)
	if !ok {
		return nil, errors.Overflow(errors.PhaseReflect, path, n, name)
	}
	return d, nil
}

func (c *Compiler) compileStructure(t host.Type, name string, path []string) (*Descriptor, error) {
	hostFields, err := c.calls.fields(t)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseReflect, path, "structure fields", err)
	}

	fields := make([]Field, 0, len(hostFields))
	index := make(map[string]int, len(hostFields))
	for _, hf := range hostFields {
		fieldPath := append(clonePath(path), hf.Name)
		if hf.Type == nil {
			return nil, errors.MissingFieldType(fieldPath, hf.Name)
		}
		fd, err := c.build(hf.Type, fieldPath)
		if err != nil {
			return nil, err
		}
		// A repeated name keeps its first position and takes the new layout.
		if i, dup := index[hf.Name]; dup {
			fields[i].Desc = fd
			continue
		}
		index[hf.Name] = len(fields)
		fields = append(fields, Field{Name: hf.Name, Desc: fd})
	}

	var overlays []Overlay
	if ot, ok := t.(host.OffsetType); ok {
		hostOffsets, err := c.calls.offsets(ot)
		if err != nil {
			return nil, errors.HostInterop(errors.PhaseReflect, path, "structure offsets", err)
		}
		for _, ho := range hostOffsets {
			overlayPath := append(clonePath(path), ho.Name)
			if ho.Type == nil {
				return nil, errors.MissingFieldType(overlayPath, ho.Name)
			}
			if ho.At < 0 {
				return nil, errors.New(errors.PhaseReflect, errors.KindInvalidInput).
					Path(overlayPath...).
					Value(ho.At).
					Detail("negative overlay offset %d", ho.At).
					Build()
			}
			od, err := c.build(ho.Type, overlayPath)
			if err != nil {
				return nil, err
			}
			overlays = append(overlays, Overlay{Name: ho.Name, Offset: ho.At, Desc: od})
		}
	}

	d, ok := types.NewStructure(t, name, fields, overlays)
	if !ok {
		return nil, errors.Overflow(errors.PhaseReflect, path, len(fields), name)
	}
	return d, nil
}

func clonePath(path []string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return out
}

func indexPath(path []string, i int) []string {
	return append(clonePath(path), "["+strconv.Itoa(i)+"]")
}
