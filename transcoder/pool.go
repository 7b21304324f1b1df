package transcoder

import "sync"

const (
	poolMaxUnits  = 64 << 10 // larger scratch buffers are left to the GC
	poolInitUnits = 256
)

// scratch buffers for UTF-16 units between a read and a write
var unitPool = sync.Pool{
	New: func() any {
		buf := make([]uint16, 0, poolInitUnits)
		return &buf
	},
}

// getUnits returns a pooled buffer of length n.
func getUnits(n int) *[]uint16 {
	buf := unitPool.Get().(*[]uint16)
	if cap(*buf) < n {
		*buf = make([]uint16, n)
	}
	*buf = (*buf)[:n]
	return buf
}

func putUnits(buf *[]uint16) {
	if buf == nil || cap(*buf) > poolMaxUnits {
		return
	}
	*buf = (*buf)[:0]
	unitPool.Put(buf)
}

var bytePool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitUnits*2)
		return &buf
	},
}

func getBytes(n int) *[]byte {
	buf := bytePool.Get().(*[]byte)
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	*buf = (*buf)[:n]
	return buf
}

func putBytes(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxUnits*2 {
		return
	}
	*buf = (*buf)[:0]
	bytePool.Put(buf)
}
