package transcoder

import (
	"math"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/transcoder/internal/abi"
)

// Decoder converts packed byte buffers into host values.
type Decoder struct {
	calls hostCalls
}

func NewDecoder(rt host.Runtime) *Decoder {
	return &Decoder{calls: hostCalls{rt: rt}}
}

// Decode converts b into a host value of layout d. b must be exactly
// d.Size() bytes long.
func (dec *Decoder) Decode(d *Descriptor, b []byte) (host.Value, error) {
	return dec.decode(d, b, []string{d.Name})
}

func (dec *Decoder) decode(d *Descriptor, b []byte, path []string) (host.Value, error) {
	if len(b) != d.Size() {
		return nil, errors.ByteCast(errors.PhaseDecode, path, d.Size(), len(b))
	}

	switch d.Kind {
	case KindByte:
		return int8(b[0]), nil
	case KindUByte:
		return b[0], nil
	case KindChar:
		return []byte{b[0]}, nil
	case KindShort:
		return int16(abi.Uint(b)), nil
	case KindUShort:
		return uint16(abi.Uint(b)), nil
	case KindInt:
		return int32(abi.Uint(b)), nil
	case KindUInt:
		return uint32(abi.Uint(b)), nil
	case KindLong, KindLongLong:
		return int64(abi.Uint(b)), nil
	case KindULong, KindULongLong:
		return abi.Uint(b), nil
	case KindFloat:
		return math.Float32frombits(uint32(abi.Uint(b))), nil
	case KindDouble, KindLongDouble:
		return math.Float64frombits(abi.Uint(b)), nil

	case KindWideChar:
		return nil, errors.NotImplemented(errors.PhaseDecode, path, "c_wchar decoding is not supported")
	case KindPointer:
		return nil, errors.NotImplemented(errors.PhaseDecode, path, "native-width pointers are not supported, use Pointer32 or Pointer64")

	case KindPointer32, KindPointer64:
		v, err := dec.calls.construct(d.Type, abi.Uint(b))
		if err != nil {
			return nil, errors.HostInterop(errors.PhaseDecode, path, "construct "+d.Name, err)
		}
		return v, nil

	case KindArray:
		return dec.decodeArray(d, b, path)

	case KindStructure:
		return dec.decodeStructure(d, b, path)

	default:
		return nil, errors.InvalidType(path, d.Kind.String())
	}
}

func (dec *Decoder) decodeArray(d *Descriptor, b []byte, path []string) (host.Value, error) {
	es := d.Elem.Size()
	elems := make([]host.Value, d.Len)
	for i := range elems {
		off := i * es
		v, err := dec.decode(d.Elem, b[off:off+es], indexPath(path, i))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	v, err := dec.calls.construct(d.Type, elems...)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseDecode, path, "construct "+d.Name, err)
	}
	return v, nil
}

func (dec *Decoder) decodeStructure(d *Descriptor, b []byte, path []string) (host.Value, error) {
	obj, err := dec.calls.construct(d.Type)
	if err != nil {
		return nil, errors.HostInterop(errors.PhaseDecode, path, "construct "+d.Name, err)
	}

	off := 0
	for _, f := range d.Fields {
		size := f.Desc.Size()
		fieldPath := append(clonePath(path), f.Name)
		v, err := dec.decode(f.Desc, b[off:off+size], fieldPath)
		if err != nil {
			return nil, err
		}
		if err := dec.calls.setAttr(obj, f.Name, v); err != nil {
			return nil, errors.HostInterop(errors.PhaseDecode, fieldPath, "setattr "+f.Name, err)
		}
		off += size
	}

	for _, o := range d.Overlays {
		size := o.Desc.Size()
		overlayPath := append(clonePath(path), o.Name)
		v, err := dec.decode(o.Desc, b[o.Offset:o.Offset+size], overlayPath)
		if err != nil {
			return nil, err
		}
		if err := dec.calls.setAttr(obj, o.Name, v); err != nil {
			return nil, errors.HostInterop(errors.PhaseDecode, overlayPath, "setattr "+o.Name, err)
		}
	}
	return obj, nil
}
