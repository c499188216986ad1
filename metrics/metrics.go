// Package metrics exports prometheus counters for typed memory accesses.
package metrics

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/memview/errors"
	"github.com/wippyai/memview/target"
)

const namespace = "memview"

// Collector counts accesses made through target views. It implements
// target.Recorder.
type Collector struct {
	reads        prometheus.Counter
	writes       prometheus.Counter
	bytesRead    prometheus.Counter
	bytesWritten prometheus.Counter
	errors       *prometheus.CounterVec
}

var _ target.Recorder = (*Collector)(nil)

// New creates the collectors and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_total",
			Help:      "The total number of memory reads.",
		}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "The total number of memory writes.",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "The total number of bytes read.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "The total number of bytes written.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of failed accesses. Broken down by operation and error kind.",
		}, []string{"op", "kind"}),
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.reads, c.writes, c.bytesRead, c.bytesWritten, c.errors} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// MustNew is like New but panics when registration fails.
func MustNew(reg prometheus.Registerer) *Collector {
	c, err := New(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) RecordRead(n int) {
	c.reads.Inc()
	c.bytesRead.Add(float64(n))
}

func (c *Collector) RecordWrite(n int) {
	c.writes.Inc()
	c.bytesWritten.Add(float64(n))
}

func (c *Collector) RecordError(op string, err error) {
	c.errors.WithLabelValues(op, Kind(err)).Inc()
}

// Kind returns the label value for err: its structured error kind, or
// "other".
func Kind(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return string(e.Kind)
	}
	return "other"
}
