package transcoder

import (
	"bytes"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/textcodec/errors"
	"github.com/wippyai/textcodec/mutf8"
)

// MaxStringSize is the default limit on a text region in bytes (16 MB).
const MaxStringSize = 16 << 20

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Limits bounds the regions a Transcoder touches. Zero fields use defaults.
type Limits struct {
	MaxStringSize uint32
}

func (l Limits) maxString() uint32 {
	if l.MaxStringSize == 0 {
		return MaxStringSize
	}
	return l.MaxStringSize
}

// Span is a lowered string: a pointer and a length in code units.
type Span struct {
	Ptr uint32
	Len uint32
}

// Transcoder runs the mutf8 codec over regions of linear memory.
// It keeps no per-call state and is safe for concurrent use.
type Transcoder struct {
	limits Limits
}

// New creates a Transcoder with the given limits.
func New(limits Limits) *Transcoder {
	return &Transcoder{limits: limits}
}

// Limits returns the effective limits.
func (t *Transcoder) Limits() Limits {
	return Limits{MaxStringSize: t.limits.maxString()}
}

func outOfBounds(op string, offset, length uint32, cause error) *errors.Error {
	return errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
		Op(op).
		Region(offset, length).
		Cause(cause).
		Detail("region outside linear memory").
		Build()
}

func (t *Transcoder) read(op string, mem Memory, ptr, n uint32) ([]byte, error) {
	if mem == nil {
		return nil, errors.NotInitialized(errors.PhaseMemory, "memory")
	}
	if limit := t.limits.maxString(); n > limit {
		return nil, errors.Overflow(errors.PhaseMemory, op, n, limit)
	}
	if n == 0 {
		return nil, nil
	}
	data, err := mem.Read(ptr, n)
	if err != nil {
		return nil, outOfBounds(op, ptr, n, err)
	}
	return data, nil
}

// UTF16Size returns the number of UTF-16 units the n bytes at ptr decode to.
func (t *Transcoder) UTF16Size(mem Memory, ptr, n uint32) (uint32, error) {
	data, err := t.read("utf16-size", mem, ptr, n)
	if err != nil {
		return 0, err
	}
	return uint32(mutf8.UTF16Size(data)), nil
}

// DecodeAt decodes the n bytes at src and writes at most capUnits UTF-16LE
// units to dst, discarding characters that start before byte skip. It
// returns the number of units written.
func (t *Transcoder) DecodeAt(mem Memory, src, n, dst, capUnits, skip uint32) (uint32, error) {
	data, err := t.read("decode", mem, src, n)
	if err != nil {
		return 0, err
	}

	// DecodeRegion never produces more than UTF16Size units.
	want := min(uint64(capUnits), uint64(mutf8.UTF16Size(data)))
	if want == 0 {
		return 0, nil
	}

	units := getUnits(int(want))
	defer putUnits(units)
	written := mutf8.DecodeRegion(*units, data, int(skip))
	if written == 0 {
		return 0, nil
	}

	out := getBytes(0)
	defer putBytes(out)
	*out = mutf8.AppendUTF16LE((*out)[:0], (*units)[:written])
	if err := mem.Write(dst, *out); err != nil {
		return 0, outOfBounds("decode", dst, uint32(len(*out)), err)
	}
	return uint32(written), nil
}

// ReencodeAt reads count UTF-16LE units at src and writes them as UTF-8 to
// dst, starting with unit start and using at most capBytes bytes. It returns
// the number of bytes written.
func (t *Transcoder) ReencodeAt(mem Memory, src, count, dst, capBytes, start uint32) (uint32, error) {
	if limit := t.limits.maxString() / 2; count > limit {
		return 0, errors.Overflow(errors.PhaseMemory, "reencode", count, limit)
	}
	data, err := t.read("reencode", mem, src, count*2)
	if err != nil {
		return 0, err
	}
	if count == 0 || start >= count {
		return 0, nil
	}

	units := getUnits(int(count))
	defer putUnits(units)
	mutf8.ReadUTF16LE(*units, data)

	// Every unit encodes to at most 3 bytes.
	out := getBytes(int(min(uint64(capBytes), 3*uint64(count))))
	defer putBytes(out)
	written := mutf8.ReencodeRegion(*out, *units, int(start))
	if written == 0 {
		return 0, nil
	}
	if err := mem.Write(dst, (*out)[:written]); err != nil {
		return 0, outOfBounds("reencode", dst, uint32(written), err)
	}
	return uint32(written), nil
}

// SniffAt reports whether the n bytes at ptr look like UTF-8.
func (t *Transcoder) SniffAt(mem Memory, ptr, n uint32) (bool, error) {
	data, err := t.read("sniff", mem, ptr, n)
	if err != nil {
		return false, err
	}
	return mutf8.LooksLikeUTF8(data), nil
}

// RepairAt repairs the n bytes at ptr in place and returns the new length.
// Memory is only written when the repair changed something.
func (t *Transcoder) RepairAt(mem Memory, ptr, n uint32) (uint32, error) {
	data, err := t.read("repair", mem, ptr, n)
	if err != nil {
		return 0, err
	}

	buf := getBytes(len(data))
	defer putBytes(buf)
	copy(*buf, data)
	fixed := mutf8.Repair(*buf)
	if bytes.Equal(fixed, data) {
		return n, nil
	}

	if err := mem.Write(ptr, fixed); err != nil {
		return 0, outOfBounds("repair", ptr, uint32(len(fixed)), err)
	}
	Logger().Debug("repaired text",
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", n),
		zap.Int("repaired_len", len(fixed)),
	)
	return uint32(len(fixed)), nil
}

// LiftString reads n MUTF-8 bytes at ptr as a Go string.
func (t *Transcoder) LiftString(mem Memory, ptr, n uint32) (string, error) {
	return t.lift("lift-string", mem, ptr, n, mutf8.Encoding)
}

// LiftUTF16 reads count UTF-16LE units at ptr as a Go string. Unpaired
// surrogates become U+FFFD.
func (t *Transcoder) LiftUTF16(mem Memory, ptr, count uint32) (string, error) {
	if limit := t.limits.maxString() / 2; count > limit {
		return "", errors.Overflow(errors.PhaseMemory, "lift-utf16", count, limit)
	}
	return t.lift("lift-utf16", mem, ptr, count*2, utf16le)
}

func (t *Transcoder) lift(op string, mem Memory, ptr, n uint32, enc encoding.Encoding) (string, error) {
	data, err := t.read(op, mem, ptr, n)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Op(op).
			Encoding(encodingName(enc)).
			Region(ptr, n).
			Cause(err).
			Build()
	}
	return string(out), nil
}

// LowerUTF16 allocates guest memory for s as UTF-16LE and writes it there.
// It returns the pointer and the length in units. The empty string lowers to
// (0, 0) without allocating.
func (t *Transcoder) LowerUTF16(mem Memory, alloc Allocator, s string) (uint32, uint32, error) {
	list := NewAllocationList()
	ptr, size, err := t.lower("lower-utf16", mem, alloc, list, s, utf16le, 2)
	if err != nil {
		list.FreeAndRelease(alloc)
		return 0, 0, err
	}
	list.Release()
	return ptr, size / 2, nil
}

// LowerMUTF8 allocates guest memory for s as MUTF-8 and writes it there.
// It returns the pointer and the length in bytes.
func (t *Transcoder) LowerMUTF8(mem Memory, alloc Allocator, s string) (uint32, uint32, error) {
	list := NewAllocationList()
	ptr, size, err := t.lower("lower-mutf8", mem, alloc, list, s, mutf8.Encoding, 1)
	if err != nil {
		list.FreeAndRelease(alloc)
		return 0, 0, err
	}
	list.Release()
	return ptr, size, nil
}

// LowerStrings lowers each string as UTF-16LE. If any string fails, every
// allocation made by the call is freed.
func (t *Transcoder) LowerStrings(mem Memory, alloc Allocator, ss []string) ([]Span, error) {
	list := NewAllocationList()
	spans := make([]Span, len(ss))
	for i, s := range ss {
		ptr, size, err := t.lower("lower-utf16", mem, alloc, list, s, utf16le, 2)
		if err != nil {
			list.FreeAndRelease(alloc)
			return nil, err
		}
		spans[i] = Span{Ptr: ptr, Len: size / 2}
	}
	list.Release()
	return spans, nil
}

func (t *Transcoder) lower(op string, mem Memory, alloc Allocator, list *AllocationList, s string, enc encoding.Encoding, align uint32) (uint32, uint32, error) {
	if mem == nil {
		return 0, 0, errors.NotInitialized(errors.PhaseMemory, "memory")
	}
	if alloc == nil {
		return 0, 0, errors.NotInitialized(errors.PhaseEncode, "allocator")
	}
	if s == "" {
		return 0, 0, nil
	}

	data, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return 0, 0, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Op(op).
			Encoding(encodingName(enc)).
			Cause(err).
			Build()
	}
	limit := t.limits.maxString()
	if uint64(len(data)) > uint64(limit) {
		return 0, 0, errors.Overflow(errors.PhaseEncode, op, uint32(min(uint64(len(data)), 1<<32-1)), limit)
	}

	size := uint32(len(data))
	ptr, err := alloc.Alloc(size, align)
	if err != nil {
		return 0, 0, errors.AllocationFailed(errors.PhaseEncode, size, align, err)
	}
	list.Add(ptr, size, align)

	if err := mem.Write(ptr, data); err != nil {
		return 0, 0, outOfBounds(op, ptr, size, err)
	}
	return ptr, size, nil
}

func encodingName(enc encoding.Encoding) string {
	if enc == utf16le {
		return "utf16le"
	}
	return "mutf8"
}
