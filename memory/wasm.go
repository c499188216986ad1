package memory

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/errors"
)

const (
	// PageSize is the size of one WebAssembly memory page.
	PageSize = 65536
	// MaxPages is the largest page count of a 32-bit linear memory.
	MaxPages = 65536

	exportName = "memory"
)

// Wasm adapts a wazero linear memory to memview.Memory. It is not
// synchronised; wazero memories follow WebAssembly memory semantics.
type Wasm struct {
	runtime wazero.Runtime
	module  api.Module
	mem     api.Memory
}

var _ memview.Memory = (*Wasm)(nil)
var _ memview.MetadataProvider = (*Wasm)(nil)

// WasmConfig configures NewWasmWithConfig.
type WasmConfig struct {
	// Pages is the initial memory size in 64 KiB pages.
	Pages uint32
	// MaxPages bounds Grow. Zero means MaxPages.
	MaxPages uint32
}

// NewWasm instantiates a memory-only module of pages pages in a dedicated
// wazero runtime. Close releases the runtime.
func NewWasm(ctx context.Context, pages uint32) (*Wasm, error) {
	return NewWasmWithConfig(ctx, WasmConfig{Pages: pages})
}

func NewWasmWithConfig(ctx context.Context, cfg WasmConfig) (*Wasm, error) {
	if cfg.Pages > MaxPages || cfg.MaxPages > MaxPages {
		return nil, errors.InvalidInput(errors.PhaseConfig, "wasm memory exceeds 65536 pages")
	}
	if cfg.MaxPages != 0 && cfg.MaxPages < cfg.Pages {
		return nil, errors.InvalidInput(errors.PhaseConfig, "wasm memory max pages below initial pages")
	}

	rt := wazero.NewRuntime(ctx)
	mod, err := rt.Instantiate(ctx, memoryModule(exportName, cfg.Pages, cfg.MaxPages))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindHostInterop, err, "instantiate memory module")
	}
	mem := mod.ExportedMemory(exportName)
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseMemory, "export", exportName)
	}
	return &Wasm{runtime: rt, module: mod, mem: mem}, nil
}

// WrapWasm adapts an existing wazero memory. The caller keeps ownership of
// the module; Close is a no-op.
func WrapWasm(mem api.Memory) *Wasm {
	return &Wasm{mem: mem}
}

func (w *Wasm) check(addr memview.Address, length int) error {
	if length < 0 {
		return errors.InvalidInput(errors.PhaseMemory, "negative access length")
	}
	size := uint64(w.mem.Size())
	if uint64(addr) > math.MaxUint32 || uint64(length) > math.MaxUint32 ||
		uint64(addr) > size || uint64(length) > size-uint64(addr) {
		return errors.OutOfBounds(errors.PhaseMemory, uint64(addr), length, size)
	}
	return nil
}

func (w *Wasm) Read(addr memview.Address, length int) ([]byte, error) {
	if err := w.check(addr, length); err != nil {
		return nil, err
	}
	view, ok := w.mem.Read(uint32(addr), uint32(length))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, uint64(addr), length, uint64(w.mem.Size()))
	}
	// the view aliases linear memory and is invalidated by Grow
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

func (w *Wasm) Write(addr memview.Address, data []byte) error {
	if err := w.check(addr, len(data)); err != nil {
		return err
	}
	if !w.mem.Write(uint32(addr), data) {
		return errors.OutOfBounds(errors.PhaseMemory, uint64(addr), len(data), uint64(w.mem.Size()))
	}
	return nil
}

// Grow adds delta pages and returns the previous page count.
func (w *Wasm) Grow(delta uint32) (uint32, error) {
	prev, ok := w.mem.Grow(delta)
	if !ok {
		return 0, errors.InvalidInput(errors.PhaseMemory, "wasm memory cannot grow")
	}
	return prev, nil
}

// Size returns the memory size in bytes.
func (w *Wasm) Size() uint32 {
	return w.mem.Size()
}

func (w *Wasm) Metadata() memview.Metadata {
	size := uint64(w.mem.Size())
	var maxAddr memview.Address
	if size > 0 {
		maxAddr = memview.Address(size - 1)
	}
	return memview.Metadata{
		MaxAddress:     maxAddr,
		RealSize:       size,
		IdealBatchSize: PageSize,
	}
}

// Close releases the wazero runtime created by NewWasm.
func (w *Wasm) Close(ctx context.Context) error {
	if w.runtime == nil {
		return nil
	}
	return w.runtime.Close(ctx)
}
