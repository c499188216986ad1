package inventory

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/memory"
	"github.com/wippyai/memview/target"
	"github.com/wippyai/memview/target/dummy"
	"github.com/wippyai/memview/transcoder"
)

// ConnectorFactory creates the physical memory of a named connector.
type ConnectorFactory func(ctx context.Context, args Args) (memview.Memory, error)

// OSFactory creates an OS on top of a connector.
type OSFactory func(ctx context.Context, inv *Inventory, conn *target.Connector, args Args) (target.OS, error)

type ctxCloser interface {
	Close(ctx context.Context) error
}

// Inventory creates connectors and OS instances by name and owns the
// targets it created.
type Inventory struct {
	codec      *transcoder.Codec
	connectors *xsync.Map[string, ConnectorFactory]
	oses       *xsync.Map[string, OSFactory]
	opts       []target.Option
	created    []any
	mu         sync.Mutex
}

// New creates an inventory with the built-in dummy and wasm connectors and
// the dummy OS. Targets convert values with codec; opts apply to every view.
func New(codec *transcoder.Codec, opts ...target.Option) *Inventory {
	inv := &Inventory{
		codec:      codec,
		connectors: xsync.NewMap[string, ConnectorFactory](),
		oses:       xsync.NewMap[string, OSFactory](),
		opts:       opts,
	}
	inv.RegisterConnector("dummy", dummyConnector)
	inv.RegisterConnector("wasm", wasmConnector)
	inv.RegisterOS("dummy", dummyOS)
	return inv
}

// Codec returns the codec shared by created targets.
func (inv *Inventory) Codec() *transcoder.Codec {
	return inv.codec
}

// RegisterConnector adds or replaces a connector factory.
func (inv *Inventory) RegisterConnector(name string, f ConnectorFactory) {
	inv.connectors.Store(name, f)
}

// RegisterOS adds or replaces an OS factory.
func (inv *Inventory) RegisterOS(name string, f OSFactory) {
	inv.oses.Store(name, f)
}

// ConnectorNames returns the registered connector names in sorted order.
func (inv *Inventory) ConnectorNames() []string {
	return names(inv.connectors)
}

// OSNames returns the registered OS names in sorted order.
func (inv *Inventory) OSNames() []string {
	return names(inv.oses)
}

func names[V any](m *xsync.Map[string, V]) []string {
	var out []string
	m.Range(func(k string, _ V) bool {
		out = append(out, k)
		return true
	})
	sort.Strings(out)
	return out
}

// Connector creates the connector name with args.
func (inv *Inventory) Connector(ctx context.Context, name string, args Args) (*target.Connector, error) {
	f, ok := inv.connectors.Load(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseConfig, "connector", name)
	}
	mem, err := f(ctx, args)
	if err != nil {
		Logger().Warn("connector creation failed", zap.String("connector", name), zap.Error(err))
		return nil, err
	}
	inv.track(mem)
	Logger().Debug("connector created", zap.String("connector", name), zap.Any("args", args))
	return target.NewConnector(mem, inv.codec, inv.opts...), nil
}

// OS creates the OS name on conn. A nil conn gets a default dummy
// connector.
func (inv *Inventory) OS(ctx context.Context, name string, conn *target.Connector, args Args) (target.OS, error) {
	f, ok := inv.oses.Load(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseConfig, "os", name)
	}
	if conn == nil {
		var err error
		if conn, err = inv.Connector(ctx, "dummy", nil); err != nil {
			return nil, err
		}
	}
	os, err := f(ctx, inv, conn, args)
	if err != nil {
		Logger().Warn("os creation failed", zap.String("os", name), zap.Error(err))
		return nil, err
	}
	inv.track(os)
	Logger().Debug("os created", zap.String("os", name), zap.Any("args", args))
	return os, nil
}

// Options returns the view options passed to New.
func (inv *Inventory) Options() []target.Option {
	return inv.opts
}

func (inv *Inventory) track(v any) {
	switch v.(type) {
	case io.Closer, ctxCloser:
		inv.mu.Lock()
		inv.created = append(inv.created, v)
		inv.mu.Unlock()
	}
}

// Close closes every created target in reverse creation order and returns
// all failures combined.
func (inv *Inventory) Close(ctx context.Context) error {
	inv.mu.Lock()
	created := inv.created
	inv.created = nil
	inv.mu.Unlock()

	var err error
	for i := len(created) - 1; i >= 0; i-- {
		switch c := created[i].(type) {
		case ctxCloser:
			err = multierr.Append(err, c.Close(ctx))
		case io.Closer:
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

func dummyConnector(_ context.Context, args Args) (memview.Memory, error) {
	if err := args.Check("size"); err != nil {
		return nil, err
	}
	size, err := args.Uint("size", dummy.DefaultMemorySize)
	if err != nil {
		return nil, err
	}
	if size == 0 || size > 1<<40 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "dummy size must be between 1 byte and 1 TiB")
	}
	return memory.NewDummy(int(size)), nil
}

func wasmConnector(ctx context.Context, args Args) (memview.Memory, error) {
	if err := args.Check("pages", "max_pages"); err != nil {
		return nil, err
	}
	pages, err := args.Uint("pages", 1)
	if err != nil {
		return nil, err
	}
	maxPages, err := args.Uint("max_pages", 0)
	if err != nil {
		return nil, err
	}
	if pages > memory.MaxPages || maxPages > memory.MaxPages {
		return nil, errors.InvalidInput(errors.PhaseConfig, "wasm memory exceeds 65536 pages")
	}
	return memory.NewWasmWithConfig(ctx, memory.WasmConfig{Pages: uint32(pages), MaxPages: uint32(maxPages)})
}

func dummyOS(_ context.Context, inv *Inventory, conn *target.Connector, args Args) (target.OS, error) {
	if err := args.Check("processes", "process_size", "modules"); err != nil {
		return nil, err
	}
	count, err := args.Uint("processes", 1)
	if err != nil {
		return nil, err
	}
	size, err := args.Uint("process_size", dummy.DefaultProcessSize)
	if err != nil {
		return nil, err
	}
	modules, err := args.Uint("modules", 0)
	if err != nil {
		return nil, err
	}

	os := dummy.New(conn.View().Memory(), inv.codec, inv.opts...)
	for range count {
		pid, err := os.AllocProcess(size, nil)
		if err != nil {
			return nil, err
		}
		if modules > 0 {
			if err := os.AddModules(pid, int(modules), dummy.PageSize); err != nil {
				return nil, err
			}
		}
	}
	return os, nil
}
