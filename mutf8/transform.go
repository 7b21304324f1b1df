package mutf8

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Encoding is MUTF-8 as an x/text encoding.
//
// Its decoder converts MUTF-8 (including 3+3 byte surrogate pairs and the
// two-byte NUL) to UTF-8 and substitutes U+FFFD for unpaired surrogates. Its
// encoder converts UTF-8 to MUTF-8, writing U+0000 as 0xC0 0x80 and
// supplementary characters as two 3-byte surrogates; invalid UTF-8 bytes
// become U+FFFD.
var Encoding encoding.Encoding = mutf8Encoding{}

// Repairer applies Repair to each line of its input. Lines longer than
// maxRepairChunk bytes are repaired in pieces cut on character boundaries.
var Repairer transform.Transformer = repairer{}

const maxRepairChunk = 4096

type mutf8Encoding struct{}

func (mutf8Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: decoder{}}
}

func (mutf8Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: encoder{}}
}

func (mutf8Encoding) String() string { return "MUTF-8" }

type decoder struct{ transform.NopResetter }

func (decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		rest := src[nSrc:]
		if !atEOF && len(rest) < seqLen(rest[0]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		v, size := DecodeOne(rest)

		var r rune
		switch lead, trail := SplitPair(v); {
		case v > 0xFFFF:
			r = utf16.DecodeRune(rune(lead), rune(trail))
		case IsHighSurrogate(trail):
			next := rest[size:]
			if !atEOF && (len(next) == 0 || len(next) < seqLen(next[0])) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r = RuneError
			if v2, n2 := DecodeOne(next); n2 > 0 && v2 <= 0xFFFF && IsLowSurrogate(uint16(v2)) {
				r = utf16.DecodeRune(rune(trail), rune(v2))
				size += n2
			}
		case IsLowSurrogate(trail):
			r = RuneError
		default:
			r = rune(v)
		}

		n := EncodeOne(dst, nDst, r)
		if n == 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += n
		nSrc += size
	}
	return nDst, nSrc, nil
}

type encoder struct{ transform.NopResetter }

func (encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, size = utf8.DecodeRune(src[nSrc:])
		}

		switch {
		case r == 0:
			if nDst+2 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst], dst[nDst+1] = 0xC0, 0x80
			nDst += 2
		case r >= surrSelf:
			if nDst+6 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			lead, trail := utf16.EncodeRune(r)
			nDst += EncodeOne(dst, nDst, lead)
			nDst += EncodeOne(dst, nDst, trail)
		default:
			n := EncodeOne(dst, nDst, r)
			if n == 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += n
		}
		nSrc += size
	}
	return nDst, nSrc, nil
}

type repairer struct{ transform.NopResetter }

func (repairer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		rest := src[nSrc:]
		end := bytes.IndexByte(rest, '\n') + 1
		if end == 0 {
			if !atEOF && (nSrc > 0 || len(rest) < maxRepairChunk) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			end = min(len(rest), maxRepairChunk)
			if end < len(rest) || !atEOF {
				end = chunkEnd(rest[:end])
			}
		}
		if end > len(dst)-nDst {
			return nDst, nSrc, transform.ErrShortDst
		}
		n := copy(dst[nDst:], rest[:end])
		nDst += len(Repair(dst[nDst : nDst+n]))
		nSrc += end
	}
	return nDst, nSrc, nil
}

// chunkEnd returns the largest cut in b that splits neither a multi-byte
// sequence nor an encoded surrogate pair.
func chunkEnd(b []byte) int {
	end := len(b)
	for k := 1; k <= 3 && k <= end; k++ {
		c := b[end-k]
		if c&0xC0 == 0x80 {
			continue
		}
		if seqLen(c) > k {
			end -= k
		}
		break
	}
	// ED A0..AF xx is a high surrogate; its trail belongs in the same piece.
	if end >= 3 && b[end-3] == 0xED && b[end-2]&0xF0 == 0xA0 {
		end -= 3
	}
	if end == 0 {
		return len(b)
	}
	return end
}
