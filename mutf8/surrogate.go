package mutf8

const (
	surrHighMin = 0xD800
	surrHighMax = 0xDBFF
	surrLowMin  = 0xDC00
	surrLowMax  = 0xDFFF

	surrSelf = 0x10000

	// leadOffset is 0xD800 - (0x10000 >> 10).
	leadOffset = 0xD7C0
)

// RuneError is substituted for surrogates that do not form a valid pair.
const RuneError = '\uFFFD'

// IsHighSurrogate reports whether u is a UTF-16 lead surrogate.
func IsHighSurrogate(u uint16) bool {
	return u >= surrHighMin && u <= surrHighMax
}

// IsLowSurrogate reports whether u is a UTF-16 trail surrogate.
func IsLowSurrogate(u uint16) bool {
	return u >= surrLowMin && u <= surrLowMax
}

// SplitPair returns the lead and trail units of a value returned by DecodeOne.
// For values below 0x10000 lead is zero.
func SplitPair(v uint32) (lead, trail uint16) {
	return uint16(v >> 16), uint16(v)
}

func packPair(cp uint32) uint32 {
	lead := (cp >> 10) + leadOffset
	trail := (cp & 0x3FF) + surrLowMin
	return lead<<16 | trail
}
