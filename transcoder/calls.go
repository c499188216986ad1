package transcoder

import (
	"github.com/wippyai/memview/host"
)

// Each helper holds the guard for exactly one capability call. Nothing
// recurses while a guard is live.

type hostCalls struct {
	rt host.Runtime
}

func (h hostCalls) category(t host.Type) (string, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return t.BaseCategory(g)
}

func (h hostCalls) typeName(t host.Type) (string, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return t.TypeName(g)
}

func (h hostCalls) fields(t host.Type) ([]host.Field, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return t.Fields(g)
}

func (h hostCalls) offsets(t host.OffsetType) ([]host.Offset, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return t.Offsets(g)
}

func (h hostCalls) element(t host.Type) (host.Type, uint32, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return t.Element(g)
}

func (h hostCalls) getAttr(obj host.Value, name string) (host.Value, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return h.rt.GetAttr(g, obj, name)
}

func (h hostCalls) setAttr(obj host.Value, name string, v host.Value) error {
	g := h.rt.Acquire()
	defer g.Release()
	return h.rt.SetAttr(g, obj, name, v)
}

func (h hostCalls) construct(t host.Type, args ...host.Value) (host.Value, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return h.rt.Construct(g, t, args...)
}

func (h hostCalls) index(obj host.Value, i int) (host.Value, error) {
	g := h.rt.Acquire()
	defer g.Release()
	return h.rt.Index(g, obj, i)
}

// length reports ok=false when the runtime cannot report lengths.
func (h hostCalls) length(obj host.Value) (n int, ok bool, err error) {
	l, isLener := h.rt.(host.Lener)
	if !isLener {
		return 0, false, nil
	}
	g := h.rt.Acquire()
	defer g.Release()
	n, err = l.Len(g, obj)
	return n, true, err
}
