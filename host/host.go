package host

import "errors"

// Base category names a host type reports through BaseCategory.
const (
	CategorySimple    = "_SimpleCData"
	CategoryPointer   = "_Pointer"
	CategoryPointer32 = "Pointer32"
	CategoryPointer64 = "Pointer64"
	CategoryArray     = "Array"
	CategoryStructure = "Structure"
)

// ErrNoAttribute is returned (possibly wrapped) by GetAttr when the object
// has no attribute of the requested name.
var ErrNoAttribute = errors.New("host: no such attribute")

// Value is an opaque host value. Scalars cross the boundary as plain Go
// numbers and byte slices.
type Value = any

// Guard is exclusive access to the host runtime. Release must be called on
// every exit path; calling it more than once is a no-op.
type Guard interface {
	Release()
}

// Runtime is the capability surface of the host object model. Every method
// must be called with a live Guard obtained from Acquire.
type Runtime interface {
	Acquire() Guard
	GetAttr(g Guard, obj Value, name string) (Value, error)
	SetAttr(g Guard, obj Value, name string, v Value) error
	// Construct calls the type object with args, like a constructor call.
	Construct(g Guard, t Type, args ...Value) (Value, error)
	Index(g Guard, obj Value, i int) (Value, error)
}

// Lener is implemented by runtimes that can report the length of sequence values.
type Lener interface {
	Len(g Guard, obj Value) (int, error)
}

// Field is one entry of a structure type's ordered field list. A nil Type
// marks a field declared without a type.
type Field struct {
	Type Type
	Name string
}

// Offset is an overlay field placed at an explicit byte offset.
type Offset struct {
	Type Type
	Name string
	At   int
}

// Type is a host type object.
type Type interface {
	// BaseCategory names the category of the type (one of the Category constants
	// for types the transcoder understands).
	BaseCategory(g Guard) (string, error)
	TypeName(g Guard) (string, error)
	// Fields returns the ordered field list of a structure type.
	Fields(g Guard) ([]Field, error)
	// Element returns the element type and length of an array type.
	Element(g Guard) (Type, uint32, error)
}

// OffsetType is implemented by structure types with explicit-offset overlays.
type OffsetType interface {
	Offsets(g Guard) ([]Offset, error)
}

// With runs fn while holding a guard of rt, releasing it on every path.
func With(rt Runtime, fn func(g Guard) error) error {
	g := rt.Acquire()
	defer g.Release()
	return fn(g)
}
