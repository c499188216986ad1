package transcoder

import (
	"github.com/wippyai/memview/transcoder/internal/types"
)

type Kind = types.Kind

const (
	KindByte       = types.KindByte
	KindUByte      = types.KindUByte
	KindChar       = types.KindChar
	KindWideChar   = types.KindWideChar
	KindShort      = types.KindShort
	KindUShort     = types.KindUShort
	KindInt        = types.KindInt
	KindUInt       = types.KindUInt
	KindLong       = types.KindLong
	KindULong      = types.KindULong
	KindLongLong   = types.KindLongLong
	KindULongLong  = types.KindULongLong
	KindFloat      = types.KindFloat
	KindDouble     = types.KindDouble
	KindLongDouble = types.KindLongDouble
	KindPointer    = types.KindPointer
	KindPointer32  = types.KindPointer32
	KindPointer64  = types.KindPointer64
	KindArray      = types.KindArray
	KindStructure  = types.KindStructure
)

type Descriptor = types.Descriptor
type Field = types.Field
type Overlay = types.Overlay

// NativePointerSize is the width reported for native-width pointers.
const NativePointerSize = types.NativePointerSize
