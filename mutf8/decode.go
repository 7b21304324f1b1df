package mutf8

// DecodeOne decodes the character at the start of b, treating len(b) as the
// number of readable bytes. It returns either a single UTF-16 unit or, for
// supplementary characters, a packed pair with the lead surrogate in the high
// 16 bits and the trail surrogate in the low 16 bits (see SplitPair).
//
// A multi-byte lead without enough bytes behind it decodes as the lead byte
// itself with n == 1. Empty input returns (0, 0).
func DecodeOne(b []byte) (value uint32, n int) {
	if len(b) == 0 {
		return 0, 0
	}
	d0 := uint32(b[0])
	if d0&0x80 == 0 {
		return d0, 1
	}
	if len(b) < 2 {
		return d0, 1
	}
	d1 := uint32(b[1])
	if d0&0x20 == 0 {
		return (d0&0x1F)<<6 | d1&0x3F, 2
	}
	if len(b) < 3 {
		return d0, 1
	}
	d2 := uint32(b[2])
	if d0&0x10 == 0 {
		return (d0&0x0F)<<12 | (d1&0x3F)<<6 | d2&0x3F, 3
	}
	if len(b) < 4 {
		return d0, 1
	}
	d3 := uint32(b[3])
	cp := (d0&0x07)<<18 | (d1&0x3F)<<12 | (d2&0x3F)<<6 | d3&0x3F
	if cp >= surrSelf {
		return packPair(cp), 4
	}
	return cp, 4
}

// seqLen is the number of bytes DecodeOne wants for a sequence starting with c.
func seqLen(c byte) int {
	switch {
	case c&0x80 == 0:
		return 1
	case c&0x20 == 0:
		return 2
	case c&0x10 == 0:
		return 3
	default:
		return 4
	}
}

// DecodeRegion decodes src into dst and returns the number of units written.
//
// Values are discarded, not written, while fewer than skip source bytes have
// been consumed, so extraction can begin at an arbitrary byte offset without
// a separate pass. A surrogate pair is written only if both halves fit; when
// dst runs out decoding stops. DecodeRegion never writes past len(dst), so a
// result shorter than UTF16Size(src) means the output was truncated.
func DecodeRegion(dst []uint16, src []byte, skip int) int {
	written := 0
	for pos := 0; pos < len(src); {
		v, n := DecodeOne(src[pos:])
		if n == 0 {
			n = 1
		}
		consumed := pos
		pos += n
		if consumed < skip {
			continue
		}
		if v > 0xFFFF {
			if written+2 > len(dst) {
				break
			}
			dst[written], dst[written+1] = SplitPair(v)
			written += 2
			continue
		}
		if written >= len(dst) {
			break
		}
		dst[written] = uint16(v)
		written++
	}
	return written
}

// UTF16Size returns the number of UTF-16 units DecodeRegion produces for src
// with no skip, so callers can allocate an exact-fit buffer.
func UTF16Size(src []byte) int {
	size := 0
	for pos := 0; pos < len(src); {
		v, n := DecodeOne(src[pos:])
		if n == 0 {
			n = 1
		}
		pos += n
		if v > 0xFFFF {
			size += 2
		} else {
			size++
		}
	}
	return size
}
