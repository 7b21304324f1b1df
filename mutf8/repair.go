package mutf8

// Repair rewrites b in place as well-formed UTF-8 and returns the repaired
// prefix of b. The result shares b's backing array and is never longer than b.
//
// Input that LooksLikeUTF8 rejects is returned unchanged. Otherwise b is
// decoded to UTF-16 and encoded back, which turns MUTF-8 NULs and split
// surrogate pairs into standard UTF-8, replaces unpaired surrogates with
// U+FFFD and drops NUL characters. If decoding does not produce exactly the
// number of units UTF16Size predicted, b is returned untouched.
//
// Repair is idempotent.
func Repair(b []byte) []byte {
	if !LooksLikeUTF8(b) {
		return b
	}
	n := UTF16Size(b)
	scratch := make([]uint16, n)
	if DecodeRegion(scratch, b, 0) != n {
		return b
	}
	return b[:ReencodeRegion(b, scratch, 0)]
}

// RepairString is Repair for strings.
func RepairString(s string) string {
	return string(Repair([]byte(s)))
}
