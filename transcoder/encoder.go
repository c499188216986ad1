package transcoder

import (
	stderrors "errors"
	"math"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/transcoder/internal/abi"
)

// Encoder converts host values into packed byte buffers.
type Encoder struct {
	calls   hostCalls
	lenient bool
}

func NewEncoder(rt host.Runtime, opts ...Option) *Encoder {
	o := buildOptions(opts)
	return &Encoder{calls: hostCalls{rt: rt}, lenient: o.lenient}
}

// Encode converts v into exactly d.Size() bytes. On failure no bytes are
// returned.
func (e *Encoder) Encode(d *Descriptor, v host.Value) ([]byte, error) {
	out, err := e.appendValue(make([]byte, 0, d.Size()), d, v, []string{d.Name})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mismatch(path []string, v host.Value, d *Descriptor) error {
	err := errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(v), d.Kind.String())
	err.Value = v
	return err
}

func (e *Encoder) appendValue(out []byte, d *Descriptor, v host.Value, path []string) ([]byte, error) {
	switch d.Kind {
	case KindByte:
		x, ok := abi.CoerceToInt8(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return append(out, byte(x)), nil
	case KindUByte:
		x, ok := abi.CoerceToUint8(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return append(out, x), nil
	case KindChar:
		return e.appendChar(out, d, v, path)
	case KindShort:
		x, ok := abi.CoerceToInt16(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 2, uint64(uint16(x))), nil
	case KindUShort:
		x, ok := abi.CoerceToUint16(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 2, uint64(x)), nil
	case KindInt:
		x, ok := abi.CoerceToInt32(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 4, uint64(uint32(x))), nil
	case KindUInt:
		x, ok := abi.CoerceToUint32(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 4, uint64(x)), nil
	case KindLong, KindLongLong:
		x, ok := abi.CoerceToInt64(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 8, uint64(x)), nil
	case KindULong, KindULongLong:
		x, ok := abi.CoerceToUint64(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 8, x), nil
	case KindFloat:
		x, ok := abi.CoerceToFloat32(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 4, uint64(math.Float32bits(x))), nil
	case KindDouble, KindLongDouble:
		x, ok := abi.CoerceToFloat64(v)
		if !ok {
			return nil, mismatch(path, v, d)
		}
		return abi.AppendUint(out, 8, math.Float64bits(x)), nil

	case KindWideChar:
		return nil, errors.NotImplemented(errors.PhaseEncode, path, "c_wchar encoding is not supported")
	case KindPointer:
		return nil, errors.NotImplemented(errors.PhaseEncode, path, "native-width pointers are not supported, use Pointer32 or Pointer64")

	case KindPointer32, KindPointer64:
		return e.appendPointer(out, d, v, path)

	case KindArray:
		return e.appendArray(out, d, v, path)

	case KindStructure:
		return e.appendStructure(out, d, v, path)

	default:
		return nil, errors.InvalidType(path, d.Kind.String())
	}
}

func (e *Encoder) appendChar(out []byte, d *Descriptor, v host.Value, path []string) ([]byte, error) {
	var b []byte
	switch x := v.(type) {
	case []byte:
		b = x
	case string:
		b = []byte(x)
	default:
		return nil, mismatch(path, v, d)
	}
	if len(b) != 1 {
		return nil, errors.ByteCast(errors.PhaseEncode, path, 1, len(b))
	}
	return append(out, b[0]), nil
}

func (e *Encoder) attr(obj host.Value, name string, path []string) (host.Value, error) {
	v, err := e.calls.getAttr(obj, name)
	if err == nil {
		return v, nil
	}
	if stderrors.Is(err, host.ErrNoAttribute) {
		return nil, errors.MissingAttribute(errors.PhaseEncode, path, name, err)
	}
	return nil, errors.HostInterop(errors.PhaseEncode, path, "getattr "+name, err)
}

func (e *Encoder) appendPointer(out []byte, d *Descriptor, v host.Value, path []string) ([]byte, error) {
	raw, err := e.attr(v, "addr", path)
	if err != nil {
		return nil, err
	}
	addr, ok := abi.CoerceToUint64(raw)
	if !ok {
		return nil, mismatch(append(clonePath(path), "addr"), raw, d)
	}
	width := d.Kind.Width()
	if !e.lenient && !abi.FitsUnsigned(addr, width) {
		return nil, errors.Overflow(errors.PhaseEncode, path, addr, d.Kind.String())
	}
	return abi.AppendUint(out, width, addr), nil
}

func (e *Encoder) appendArray(out []byte, d *Descriptor, v host.Value, path []string) ([]byte, error) {
	n, known, err := e.calls.length(v)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseEncode, path, "len", err)
	}
	if known && n != int(d.Len) {
		return nil, errors.LengthMismatch(errors.PhaseEncode, path, int(d.Len), n)
	}
	for i := 0; i < int(d.Len); i++ {
		elemPath := indexPath(path, i)
		elem, err := e.calls.index(v, i)
		if err != nil {
			return nil, errors.HostInterop(errors.PhaseEncode, elemPath, "index", err)
		}
		if out, err = e.appendValue(out, d.Elem, elem, elemPath); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Encoder) appendStructure(out []byte, d *Descriptor, v host.Value, path []string) ([]byte, error) {
	start := len(out)
	for _, f := range d.Fields {
		fieldPath := append(clonePath(path), f.Name)
		fv, err := e.attr(v, f.Name, fieldPath)
		if err != nil {
			return nil, err
		}
		if out, err = e.appendValue(out, f.Desc, fv, fieldPath); err != nil {
			return nil, err
		}
	}
	if len(d.Overlays) == 0 {
		return out, nil
	}

	if pad := d.Size() - (len(out) - start); pad > 0 {
		out = append(out, make([]byte, pad)...)
	}
	for _, o := range d.Overlays {
		overlayPath := append(clonePath(path), o.Name)
		ov, err := e.calls.getAttr(v, o.Name)
		if err != nil {
			if stderrors.Is(err, host.ErrNoAttribute) {
				continue
			}
			return nil, errors.HostInterop(errors.PhaseEncode, overlayPath, "getattr "+o.Name, err)
		}
		b, err := e.appendValue(nil, o.Desc, ov, overlayPath)
		if err != nil {
			return nil, err
		}
		copy(out[start+o.Offset:], b)
	}
	return out, nil
}
