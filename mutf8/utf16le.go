package mutf8

import "encoding/binary"

// AppendUTF16LE appends units to dst as little-endian bytes.
func AppendUTF16LE(dst []byte, units []uint16) []byte {
	for _, u := range units {
		dst = binary.LittleEndian.AppendUint16(dst, u)
	}
	return dst
}

// ReadUTF16LE fills dst with little-endian units from b and returns the
// number of units stored. It stops at whichever of dst or b runs out first;
// an odd trailing byte is ignored.
func ReadUTF16LE(dst []uint16, b []byte) int {
	n := min(len(dst), len(b)/2)
	for i := range n {
		dst[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return n
}

// UTF16LEUnits reads little-endian UTF-16 units from b.
// An odd trailing byte is ignored.
func UTF16LEUnits(b []byte) []uint16 {
	units := make([]uint16, len(b)/2)
	ReadUTF16LE(units, b)
	return units
}
