// Package transcoder runs the mutf8 codec over text held in linear memory.
//
// A Transcoder reads a region through the Memory interface, hands the bytes
// to mutf8 and writes the result back, so a WebAssembly guest (or any other
// owner of a flat little-endian byte array) gets the same semantics as a Go
// caller working with slices:
//
//	Operation    Reads            Writes
//	──────────────────────────────────────────────
//	UTF16Size    bytes            nothing
//	DecodeAt     bytes            UTF-16LE units
//	ReencodeAt   UTF-16LE units   UTF-8 bytes
//	SniffAt      bytes            nothing
//	RepairAt     bytes            bytes, in place
//
// Region arguments are (pointer, length) pairs. Output capacities follow the
// codec: a character that does not fit is dropped, and the returned count is
// the only sign of truncation.
//
// # Lifting and Lowering
//
// LiftString and LiftUTF16 copy guest text into Go strings through the
// golang.org/x/text decoders. LowerUTF16, LowerMUTF8 and LowerStrings
// allocate guest memory through an Allocator and write encoded text there.
// Allocations made by a failed lower are freed before the error is returned.
//
// # Limits
//
// No region larger than Limits.MaxStringSize bytes (16 MB by default) is
// read or written. Larger requests fail with an overflow error.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[memory] out_of_bounds in decode at 0x10000+8: region outside linear memory
//	[memory] overflow in repair: size 33554432 exceeds maximum 16777216
//
// # Thread Safety
//
// A Transcoder is safe for concurrent use. The Memory it is given is not
// synchronized; callers sharing one memory across goroutines must serialize
// access themselves.
package transcoder
