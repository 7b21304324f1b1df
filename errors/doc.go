// Package errors provides structured error types for the layers that sit on top
// of the mutf8 codec. The codec itself never fails; memory access, host calls
// and configuration do.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the operation, the text encoding involved, the
// linear-memory region and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
//		Op("decode").
//		Encoding("utf16le").
//		Region(0x1000, 64).
//		Detail("destination past end of memory").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseMemory, "repair", ptr, n)
//	err := errors.Overflow(errors.PhaseDecode, "lift", n, MaxStringSize)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
