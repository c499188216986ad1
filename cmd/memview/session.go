package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/host/native"
	"github.com/wippyai/memview/inventory"
	"github.com/wippyai/memview/layoutfile"
	"github.com/wippyai/memview/memory"
	"github.com/wippyai/memview/metrics"
	"github.com/wippyai/memview/target"
	"github.com/wippyai/memview/transcoder"
)

// session is the state shared by one command: the layout, the image loaded
// into a connector and the inventory owning it.
type session struct {
	layout  *layoutfile.Layout
	codec   *transcoder.Codec
	inv     *inventory.Inventory
	conn    *target.Connector
	reg     *prometheus.Registry
	image   string
	size    int
	logger  *zap.Logger
	metrics bool
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openSession loads the layout and, when needImage is set, the image named
// by the global flags.
func openSession(c *cli.Context, needImage bool) (*session, error) {
	log, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	transcoder.SetLogger(log)
	target.SetLogger(log)
	inventory.SetLogger(log)

	s := &session{logger: log, image: c.String("image"), metrics: c.Bool("metrics")}

	if path := c.String("layout"); path != "" {
		if s.layout, err = layoutfile.Load(path); err != nil {
			return nil, err
		}
	} else if s.layout, err = layoutfile.Parse(nil); err != nil {
		return nil, err
	}

	s.codec = transcoder.New(native.NewRuntime(), transcoder.WithCache(), transcoder.WithLogger(log))

	var opts []target.Option
	if s.metrics {
		s.reg = prometheus.NewRegistry()
		opts = append(opts, target.WithRecorder(metrics.MustNew(s.reg)))
	}
	s.inv = inventory.New(s.codec, opts...)

	if !needImage {
		return s, nil
	}
	if s.image == "" {
		return nil, errors.New("--image is required")
	}
	data, err := os.ReadFile(s.image)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	s.size = len(data)

	ctx := c.Context
	if c.Bool("wasm") {
		pages := max((len(data)+memory.PageSize-1)/memory.PageSize, 1)
		s.conn, err = s.inv.Connector(ctx, "wasm", inventory.Args{"pages": strconv.Itoa(pages)})
		if err != nil {
			return nil, err
		}
		if err := s.conn.View().WriteBytes(0, data); err != nil {
			return nil, err
		}
	} else {
		s.inv.RegisterConnector("image", func(context.Context, inventory.Args) (memview.Memory, error) {
			return memory.NewDummyFrom(data), nil
		})
		if s.conn, err = s.inv.Connector(ctx, "image", nil); err != nil {
			return nil, err
		}
	}
	log.Debug("image loaded",
		zap.String("path", s.image),
		zap.Int("size", s.size),
		zap.Bool("wasm", c.Bool("wasm")))
	return s, nil
}

func (s *session) typ(expr string) (host.Type, error) {
	return s.layout.Type(expr)
}

// save writes the image bytes back to the image file.
func (s *session) save() error {
	data, err := s.conn.View().ReadBytes(0, s.size)
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(s.image); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(s.image, data, mode)
}

// close releases the connectors and prints the access counters to w when
// metrics are enabled.
func (s *session) close(ctx context.Context, w io.Writer) error {
	if s.reg != nil {
		if err := printMetrics(w, s.reg); err != nil {
			return err
		}
	}
	err := s.inv.Close(ctx)
	_ = s.logger.Sync()
	return err
}

func printMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func parseAddress(s string) (memview.Address, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return memview.Address(v), nil
}
