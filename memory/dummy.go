package memory

import (
	"sync"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/errors"
)

// DefaultBatchSize is the batch size Dummy reports in its metadata.
const DefaultBatchSize = 1 << 20

// Dummy is a fixed-size physical memory backed by a byte slice.
type Dummy struct {
	buf []byte
	mu  sync.RWMutex
}

var _ memview.Memory = (*Dummy)(nil)
var _ memview.MetadataProvider = (*Dummy)(nil)

// NewDummy creates a zero-filled memory of size bytes.
func NewDummy(size int) *Dummy {
	if size < 0 {
		size = 0
	}
	return &Dummy{buf: make([]byte, size)}
}

// NewDummyFrom creates a memory holding a copy of image.
func NewDummyFrom(image []byte) *Dummy {
	buf := make([]byte, len(image))
	copy(buf, image)
	return &Dummy{buf: buf}
}

// Size returns the memory size in bytes.
func (d *Dummy) Size() int {
	return len(d.buf)
}

func bounds(addr memview.Address, length int, size int) error {
	if length < 0 {
		return errors.InvalidInput(errors.PhaseMemory, "negative access length")
	}
	if uint64(addr) > uint64(size) || uint64(length) > uint64(size)-uint64(addr) {
		return errors.OutOfBounds(errors.PhaseMemory, uint64(addr), length, uint64(size))
	}
	return nil
}

func (d *Dummy) Read(addr memview.Address, length int) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := bounds(addr, length, len(d.buf)); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, d.buf[addr:])
	return out, nil
}

func (d *Dummy) Write(addr memview.Address, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := bounds(addr, len(data), len(d.buf)); err != nil {
		return err
	}
	copy(d.buf[addr:], data)
	return nil
}

// Snapshot returns a copy of the whole memory.
func (d *Dummy) Snapshot() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]byte, len(d.buf))
	copy(out, d.buf)
	return out
}

func (d *Dummy) Metadata() memview.Metadata {
	var maxAddr memview.Address
	if len(d.buf) > 0 {
		maxAddr = memview.Address(len(d.buf) - 1)
	}
	return memview.Metadata{
		MaxAddress:     maxAddr,
		RealSize:       uint64(len(d.buf)),
		IdealBatchSize: DefaultBatchSize,
	}
}
