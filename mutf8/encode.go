package mutf8

import "unicode/utf16"

// firstByteMark is OR-ed into the lead byte, indexed by sequence length.
var firstByteMark = [5]byte{0x00, 0x00, 0xC0, 0xE0, 0xF0}

// EncodedLen returns the number of bytes EncodeOne writes for r.
func EncodedLen(r rune) int {
	switch cp := uint32(r); {
	case cp <= 0x7F:
		return 1
	case cp <= 0x7FF:
		return 2
	case cp <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// EncodeOne writes the UTF-8 encoding of r into dst at index at and returns
// the number of bytes written. If the whole sequence does not fit nothing is
// written and 0 is returned; the caller must not advance its cursor.
//
// The length is chosen purely by numeric range. Surrogate codepoints are
// encoded as 3-byte sequences like any other BMP value.
func EncodeOne(dst []byte, at int, r rune) int {
	n := EncodedLen(r)
	if at < 0 || at+n > len(dst) {
		return 0
	}
	cp := uint32(r)
	for i := n - 1; i > 0; i-- {
		dst[at+i] = byte(0x80 | cp&0x3F)
		cp >>= 6
	}
	dst[at] = byte(cp) | firstByteMark[n]
	return n
}

// DecodeUTF16 decodes the codepoint at the start of units and returns it with
// the number of units consumed.
//
// An isolated trail surrogate, a lead surrogate at the end of units, and a
// lead surrogate not followed by a trail surrogate all yield (RuneError, 1).
// Empty input yields (RuneError, 0).
func DecodeUTF16(units []uint16) (r rune, n int) {
	if len(units) == 0 {
		return RuneError, 0
	}
	u := units[0]
	switch {
	case IsLowSurrogate(u):
		return RuneError, 1
	case u&0xF800 == surrHighMin:
		if len(units) < 2 || !IsLowSurrogate(units[1]) {
			return RuneError, 1
		}
		return utf16.DecodeRune(rune(u), rune(units[1])), 2
	default:
		return rune(u), 1
	}
}

// ReencodeRegion encodes units[start:] as UTF-8 into dst and returns the
// number of bytes written. Invalid surrogates become U+FFFD and zero
// codepoints are skipped.
//
// A character whose encoding does not fit in the remaining space of dst is
// dropped; EncodeOne only ever writes whole sequences, so the output is
// truncated, never corrupted. Compare the result with the expected length if
// truncation matters.
func ReencodeRegion(dst []byte, units []uint16, start int) int {
	if start < 0 {
		start = 0
	}
	written := 0
	for i := start; i < len(units); {
		r, n := DecodeUTF16(units[i:])
		i += n
		if r == 0 {
			continue
		}
		written += EncodeOne(dst, written, r)
	}
	return written
}
