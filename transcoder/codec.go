package transcoder

import (
	"github.com/wippyai/memview/host"
)

// Codec bundles a Compiler, Encoder and Decoder sharing one host runtime.
// It is safe for concurrent use when the runtime is.
type Codec struct {
	*Compiler
	*Encoder
	*Decoder
	rt host.Runtime
}

// New creates a Codec over rt.
func New(rt host.Runtime, opts ...Option) *Codec {
	return &Codec{
		Compiler: NewCompiler(rt, opts...),
		Encoder:  NewEncoder(rt, opts...),
		Decoder:  NewDecoder(rt),
		rt:       rt,
	}
}

// Runtime returns the host runtime the codec talks to.
func (c *Codec) Runtime() host.Runtime {
	return c.rt
}

// DecodeType builds t and decodes b as that layout.
func (c *Codec) DecodeType(t host.Type, b []byte) (host.Value, error) {
	d, err := c.Build(t)
	if err != nil {
		return nil, err
	}
	return c.Decode(d, b)
}

// EncodeType builds t and encodes v as that layout.
func (c *Codec) EncodeType(t host.Type, v host.Value) ([]byte, error) {
	d, err := c.Build(t)
	if err != nil {
		return nil, err
	}
	return c.Encode(d, v)
}

// Build returns the descriptor of t using a non-caching compiler.
func Build(rt host.Runtime, t host.Type) (*Descriptor, error) {
	return NewCompiler(rt).Build(t)
}

// Sizeof returns the packed size of t.
func Sizeof(rt host.Runtime, t host.Type) (int, error) {
	return NewCompiler(rt).Sizeof(t)
}
