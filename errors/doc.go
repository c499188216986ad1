// Package errors provides structured error types for the memview module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/host type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("TEST", "one", "[1]").
//		GoType("string").
//		HostType("c_uint").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingAttribute(errors.PhaseEncode, path, "x", nil)
//	err := errors.ByteCast(errors.PhaseDecode, path, 4, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match by Kind alone:
//
//	if errors.Is(err, memerrors.ErrMissingAttribute) { ... }
package errors
