package mutf8

// LooksLikeUTF8 guesses whether b holds UTF-8 text that contains at least one
// multi-byte character. It is a heuristic over byte statistics, not a
// validator, and can be wrong in both directions.
//
// It returns false for empty input, for input that starts like a UTF-16LE
// byte-order mark (0xFF or 0xFE followed by 0x00), for input with zero bytes
// but no well-formed multi-byte sequence (typical of UTF-16LE), and for plain
// ASCII, which never needs re-encoding.
func LooksLikeUTF8(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if len(b) >= 2 && (b[0] == 0xFF || b[0] == 0xFE) && b[1] == 0x00 {
		return false
	}

	var sawZero, sawMultiByte bool
	for i := 0; i < len(b); {
		if b[i] == 0 {
			sawZero = true
			i++
			continue
		}
		if n := multiByteRun(b[i:]); n > 0 {
			sawMultiByte = true
			i += n
			continue
		}
		i++
	}

	if sawZero && !sawMultiByte {
		return false
	}
	return sawMultiByte
}

// multiByteRun returns the length of the 2, 3 or 4 byte sequence at the start
// of b if its lead and continuation bytes have the right shape, or 0.
func multiByteRun(b []byte) int {
	var n int
	switch c := b[0]; {
	case c&0xE0 == 0xC0:
		n = 2
	case c&0xF0 == 0xE0:
		n = 3
	case c&0xF8 == 0xF0:
		n = 4
	default:
		return 0
	}
	if len(b) < n {
		return 0
	}
	for _, c := range b[1:n] {
		if c&0xC0 != 0x80 {
			return 0
		}
	}
	return n
}
