package memory

import (
	"github.com/wippyai/memview"
	"github.com/wippyai/memview/errors"
)

// ReadOnlyMemory forwards reads and rejects every write.
type ReadOnlyMemory struct {
	inner memview.Memory
}

// ReadOnly wraps m so that writes fail with a read_only error.
func ReadOnly(m memview.Memory) *ReadOnlyMemory {
	return &ReadOnlyMemory{inner: m}
}

func (r *ReadOnlyMemory) Read(addr memview.Address, length int) ([]byte, error) {
	return r.inner.Read(addr, length)
}

func (r *ReadOnlyMemory) Write(addr memview.Address, _ []byte) error {
	return errors.ReadOnly(uint64(addr))
}

// Metadata reports the wrapped memory's metadata with ReadOnly set.
func (r *ReadOnlyMemory) Metadata() memview.Metadata {
	var md memview.Metadata
	if p, ok := r.inner.(memview.MetadataProvider); ok {
		md = p.Metadata()
	}
	md.ReadOnly = true
	return md
}

// Unwrap returns the wrapped memory.
func (r *ReadOnlyMemory) Unwrap() memview.Memory {
	return r.inner
}
