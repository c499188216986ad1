package memview

// Address is an address in the introspection target. It is wide enough to
// hold any address of a 32- or 64-bit target.
type Address uint64

// Memory is the raw transport used by typed accessors
type Memory interface {
	// Read returns exactly length bytes starting at addr, or an error.
	Read(addr Address, length int) ([]byte, error)
	// Write stores data starting at addr.
	Write(addr Address, data []byte) error
}

// Metadata describes a memory target
type Metadata struct {
	MaxAddress     Address
	RealSize       uint64
	IdealBatchSize uint32
	ReadOnly       bool
}

// MetadataProvider is implemented by memories that can describe themselves
type MetadataProvider interface {
	Metadata() Metadata
}
