package transcoder

import (
	"sync"

	"github.com/wippyai/textcodec"
)

type Memory = textcodec.Memory
type Allocator = textcodec.Allocator

// Allocation records one guest allocation made while lowering text.
type Allocation struct {
	Ptr   uint32
	Size  uint32
	Align uint32
}

// AllocationList tracks allocations so a failed lower can give them back.
type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 8)}
	},
}

func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns to pool. Must call after Free(); list invalid after Release.
func (al *AllocationList) Release() {
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

func (al *AllocationList) FreeAndRelease(allocator Allocator) {
	al.Free(allocator)
	al.Release()
}

func (al *AllocationList) Add(ptr, size, align uint32) {
	al.allocations = append(al.allocations, Allocation{Ptr: ptr, Size: size, Align: align})
}

// Free hands every recorded non-null allocation back, newest first.
func (al *AllocationList) Free(allocator Allocator) {
	if allocator == nil {
		return
	}
	for i := len(al.allocations) - 1; i >= 0; i-- {
		if a := al.allocations[i]; a.Ptr != 0 {
			allocator.Free(a.Ptr, a.Size, a.Align)
		}
	}
}

func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}
