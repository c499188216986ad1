package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseReflect Phase = "reflect" // descriptor construction from host types
	PhaseDecode  Phase = "decode"  // bytes to host value
	PhaseEncode  Phase = "encode"  // host value to bytes
	PhaseMemory  Phase = "memory"  // raw memory transport
	PhaseHost    Phase = "host"    // host object model operations
	PhaseTarget  Phase = "target"  // connector, process and OS wrappers
	PhaseConfig  Phase = "config"  // layout files, inventory arguments
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidType      Kind = "invalid_type"
	KindUnknownScalar    Kind = "unknown_scalar"
	KindMissingFieldType Kind = "missing_field_type"
	KindMissingAttribute Kind = "missing_attribute"
	KindByteCast         Kind = "byte_cast"
	KindHostInterop      Kind = "host_interop"
	KindNotImplemented   Kind = "not_implemented"
	KindTypeMismatch     Kind = "type_mismatch"
	KindOverflow         Kind = "overflow"
	KindLengthMismatch   Kind = "length_mismatch"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindReadOnly         Kind = "read_only"
	KindInvalidArch      Kind = "invalid_arch"
	KindNotFound         Kind = "not_found"
	KindInvalidInput     Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	HostType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.GoType != "" || e.HostType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.HostType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", host type ")
			b.WriteString(e.HostType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("host type ")
			b.WriteString(e.HostType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.HostType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty
// Phase matches errors of its Kind raised in any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// JoinPath renders a field path. Index segments ("[3]") attach to the
// preceding segment without a separator.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// HostType sets the host type name
func (b *Builder) HostType(t string) *Builder {
	b.err.HostType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Kind sentinels for errors.Is checks that do not care about the phase.
var (
	ErrInvalidType      = &Error{Kind: KindInvalidType}
	ErrUnknownScalar    = &Error{Kind: KindUnknownScalar}
	ErrMissingFieldType = &Error{Kind: KindMissingFieldType}
	ErrMissingAttribute = &Error{Kind: KindMissingAttribute}
	ErrByteCast         = &Error{Kind: KindByteCast}
	ErrHostInterop      = &Error{Kind: KindHostInterop}
	ErrNotImplemented   = &Error{Kind: KindNotImplemented}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch}
	ErrOverflow         = &Error{Kind: KindOverflow}
	ErrLengthMismatch   = &Error{Kind: KindLengthMismatch}
	ErrOutOfBounds      = &Error{Kind: KindOutOfBounds}
	ErrReadOnly         = &Error{Kind: KindReadOnly}
	ErrInvalidArch      = &Error{Kind: KindInvalidArch}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
)

// Convenience constructors for common error patterns

// InvalidType creates an error for an unrecognized base category
func InvalidType(path []string, category string) *Error {
	return &Error{
		Phase:    PhaseReflect,
		Kind:     KindInvalidType,
		Path:     path,
		HostType: category,
		Detail:   fmt.Sprintf("the host type %q is not a valid type", category),
		Value:    category,
	}
}

// UnknownScalar creates an error for a simple scalar name missing from the lookup table
func UnknownScalar(path []string, name string) *Error {
	return &Error{
		Phase:    PhaseReflect,
		Kind:     KindUnknownScalar,
		Path:     path,
		HostType: name,
		Detail:   fmt.Sprintf("unknown simple scalar type %q", name),
		Value:    name,
	}
}

// MissingFieldType creates an error for a structure field declared without a type
func MissingFieldType(path []string, fieldName string) *Error {
	return &Error{
		Phase:  PhaseReflect,
		Kind:   KindMissingFieldType,
		Path:   path,
		Detail: fmt.Sprintf("no host type found for field %q", fieldName),
		Value:  fieldName,
	}
}

// MissingAttribute creates an error for a host value lacking a required attribute
func MissingAttribute(phase Phase, path []string, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingAttribute,
		Path:   path,
		Detail: fmt.Sprintf("host value missing attribute %q", name),
		Value:  name,
		Cause:  cause,
	}
}

// ByteCast creates an error for a buffer whose length does not match a fixed-width conversion
func ByteCast(phase Phase, path []string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindByteCast,
		Path:   path,
		Detail: fmt.Sprintf("expected %d bytes, got %d", want, got),
		Value:  got,
	}
}

// HostInterop wraps a failure raised by the host runtime
func HostInterop(phase Phase, path []string, op string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindHostInterop,
		Path:   path,
		Detail: op,
		Cause:  cause,
	}
}

// NotImplemented creates an error for a layout the codec deliberately does not support
func NotImplemented(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotImplemented,
		Path:   path,
		Detail: what,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, hostType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		HostType: hostType,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		Path:     path,
		HostType: target,
		Detail:   fmt.Sprintf("value %v overflows %s", value, target),
		Value:    value,
	}
}

// LengthMismatch creates an error for a host sequence of the wrong length
func LengthMismatch(phase Phase, path []string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %d elements, got %d", want, got),
		Value:  got,
	}
}

// OutOfBounds creates an error for a memory access outside the target range
func OutOfBounds(phase Phase, addr uint64, length int, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("access of %d bytes at %#x exceeds %#x", length, addr, limit),
		Value:  addr,
	}
}

// ReadOnly creates an error for a write against a read-only target
func ReadOnly(addr uint64) *Error {
	return &Error{
		Phase:  PhaseMemory,
		Kind:   KindReadOnly,
		Detail: fmt.Sprintf("write at %#x rejected by read-only target", addr),
		Value:  addr,
	}
}

// InvalidArch creates an error for an unknown architecture name
func InvalidArch(name string) *Error {
	return &Error{
		Phase:  PhaseTarget,
		Kind:   KindInvalidArch,
		Detail: fmt.Sprintf("the arch %s is not valid", name),
		Value:  name,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
