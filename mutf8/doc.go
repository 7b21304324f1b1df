// Package mutf8 converts between modified UTF-8 (MUTF-8), UTF-8 and UTF-16.
//
// MUTF-8 differs from UTF-8 in two places: U+0000 is written as the two bytes
// 0xC0 0x80 so that NUL-terminated buffers can carry it, and supplementary
// characters may be written as two 3-byte encoded surrogates. The decoder in
// this package accepts both forms as well as standard 4-byte UTF-8.
//
// # Decoding
//
//	DecodeOne      one character → UTF-16 unit or packed surrogate pair
//	UTF16Size      exact output size for DecodeRegion
//	DecodeRegion   bytes → caller-sized []uint16, with byte skip
//
// # Encoding
//
//	DecodeUTF16    one or two units → codepoint (U+FFFD on bad surrogates)
//	EncodeOne      codepoint → 1..4 UTF-8 bytes, or nothing if it won't fit
//	ReencodeRegion []uint16 → caller-sized []byte
//
// # Repair
//
// LooksLikeUTF8 is a heuristic that separates probable UTF-8 from probable
// UTF-16LE and plain ASCII. Repair uses it as a gate and then launders the
// bytes through UTF-16 in place, so that the result is well-formed UTF-8 no
// longer than the input.
//
// # Leniency
//
// Decoding is deliberately permissive. Continuation bytes are not checked,
// overlong forms are accepted, and a multi-byte lead with too few bytes behind
// it decodes as the lead byte itself (a Latin-1 value) consuming one byte.
// None of the functions in this package return errors or panic; truncation is
// reported only through the returned counts.
package mutf8
