// Package errors provides structured error types for the bitschema library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes the schema position for parse failures, the element path
// for encode failures, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindSyntax).
//		At(17).
//		Detail("expected %q, got %q", ":", ",").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnrecognizedType("Vector4")
//	err := errors.OutOfBounds(errors.PhaseDecode, 10, 2, 11)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
