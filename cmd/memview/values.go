package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/host/native"
	"github.com/wippyai/memview/transcoder"
)

// parseValue decodes a JSON value into the host value d expects. Objects
// become structures, arrays become arrays and a bare number given for a
// pointer becomes a pointer to that address. Numbers keep their full
// precision for 64-bit integer kinds.
func parseValue(d *transcoder.Descriptor, s string) (host.Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON value: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON value: trailing data")
	}
	return fromJSON(d, v)
}

func fromJSON(d *transcoder.Descriptor, v any) (host.Value, error) {
	switch {
	case d.Kind.IsPointer():
		if n, ok := v.(json.Number); ok {
			addr, err := strconv.ParseUint(n.String(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid address %s for %s: must be a non-negative integer", n, typeLabel(d))
			}
			return native.NewPtr(d.Type, addr), nil
		}
	case d.Kind == transcoder.KindArray:
		if list, ok := v.([]any); ok {
			out := make([]any, len(list))
			for i, e := range list {
				ev, err := fromJSON(d.Elem, e)
				if err != nil {
					return nil, err
				}
				out[i] = ev
			}
			return out, nil
		}
	case d.Kind == transcoder.KindStructure:
		if obj, ok := v.(map[string]any); ok {
			out := make(map[string]any, len(obj))
			for k, e := range obj {
				fd, ok := d.Field(k)
				if !ok {
					out[k] = e
					continue
				}
				fv, err := fromJSON(fd, e)
				if err != nil {
					return nil, err
				}
				out[k] = fv
			}
			return out, nil
		}
	}
	if n, ok := v.(json.Number); ok {
		return number(d.Kind, n)
	}
	return v, nil
}

// number converts n to int64 for signed kinds and uint64 for unsigned ones.
// Anything else, including a fractional or negative value for an unsigned
// kind, becomes a float64 and is left to the encoder to accept or reject.
func number(k transcoder.Kind, n json.Number) (any, error) {
	switch k {
	case transcoder.KindByte, transcoder.KindShort, transcoder.KindInt, transcoder.KindLong, transcoder.KindLongLong:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	case transcoder.KindUByte, transcoder.KindUShort, transcoder.KindUInt, transcoder.KindULong, transcoder.KindULongLong:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %s: %w", n, err)
	}
	return f, nil
}

func formatValue(v host.Value) string {
	if gs, ok := v.(fmt.GoStringer); ok {
		return gs.GoString()
	}
	return native.FormatValue(v)
}

// typeLabel names a descriptor without expanding nested structures.
func typeLabel(d *transcoder.Descriptor) string {
	if d.Kind == transcoder.KindStructure {
		return "struct " + d.Name
	}
	if d.Kind == transcoder.KindArray {
		return typeLabel(d.Elem) + fmt.Sprintf("[%d]", d.Len)
	}
	return d.String()
}

func hexDump(base uint64, data []byte) string {
	var b bytes.Buffer
	for off := 0; off < len(data); off += 16 {
		end := min(off+16, len(data))
		line := data[off:end]
		fmt.Fprintf(&b, "%08x  ", base+uint64(off))
		for i := range 16 {
			if i < len(line) {
				fmt.Fprintf(&b, "%02x ", line[i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
