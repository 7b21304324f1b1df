// Package textcodec provides a modified-UTF-8 (MUTF-8) / UTF-8 ⇄ UTF-16 codec
// together with the plumbing needed to use it against WebAssembly linear memory.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	textcodec/          Root package with core Memory and Allocator interfaces
//	├── mutf8/          Pure codec: decode, encode, sniff, repair, x/text encoding
//	├── transcoder/     Codec operations over Memory (bounds checked, pooled)
//	├── engine/         wazero host module exposing the codec to guests
//	├── errors/         Structured error types for the layers above the codec
//	└── cmd/textcodec/  Command-line inspector and repair tool
//
// # Quick Start
//
// Repair a byte string of uncertain encoding in place:
//
//	b = mutf8.Repair(b)
//
// Decode MUTF-8 into an exact-fit UTF-16 buffer:
//
//	units := make([]uint16, mutf8.UTF16Size(src))
//	n := mutf8.DecodeRegion(units, src, 0)
//
// Serialize UTF-16 back to UTF-8, replacing lone surrogates with U+FFFD:
//
//	out := make([]byte, 3*len(units))
//	n := mutf8.ReencodeRegion(out, units, 0)
//
// # Truncation
//
// Region functions never write past the capacity of the slice they are given
// and never report an error. The returned count is the only signal that output
// was truncated; compare it with the expected length when correctness matters.
//
// # Thread Safety
//
// The mutf8 package holds no mutable state and is safe for concurrent use with
// non-aliased buffers. Engine is safe for concurrent use. Instance is NOT
// thread-safe and should be used by a single goroutine.
package textcodec
