// Package memview provides typed access to raw memory through runtime type
// descriptors.
//
// A host object model describes C-like layouts (scalars, fixed-width
// pointers, fixed-length arrays and packed structures). The transcoder turns
// such a host type into an immutable Descriptor, and converts between host
// values and tightly packed little-endian byte buffers of exactly
// Descriptor.Size() bytes. Targets forward those buffers to a Memory.
//
// # Architecture Overview
//
//	memview/          Root package with the Address, Memory and Metadata contracts
//	├── host/         Capability interface to the host object model (Runtime, Guard, Type)
//	│   └── native/   Go implementation of the host object model (ctypes-like)
//	├── transcoder/   Descriptor builder, Size, Decode and Encode
//	├── memory/       Dummy physical memory and wazero-backed linear memory
//	├── target/       Typed views, connectors, processes and OS wrappers
//	│   └── dummy/    In-process dummy OS with a process table
//	├── inventory/    Named connector and OS factories
//	├── metrics/      Prometheus collectors for typed accesses
//	├── witlayout/    Host types described by WIT records
//	├── layoutfile/   Host types declared in TOML files
//	├── errors/       Structured error types
//	└── cmd/memview/  CLI and interactive inspector
//
// # Quick Start
//
//	rt := native.NewRuntime()
//	point := native.NewStruct("POINT",
//		native.Field("x", native.CUInt32),
//		native.Field("y", native.CFloat),
//	)
//
//	os := dummy.Default(rt)
//	infos, _ := os.ProcessInfoList()
//	proc, _ := os.ProcessByInfo(infos[0])
//
//	_ = proc.Write(infos[0].Address, point, native.MustRecord(point, uint32(55), float32(3.14)))
//	v, _ := proc.Read(infos[0].Address, point)
//	fmt.Println(v) // x=55 y=3.14
//
// # Layout
//
// Layouts are packed: a structure field's offset is the sum of the sizes of
// the fields declared before it, and an array is its element repeated
// without gaps. Only little-endian targets are supported.
package memview
