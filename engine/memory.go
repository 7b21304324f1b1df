package engine

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/textcodec"
	"github.com/wippyai/textcodec/transcoder"
)

var (
	_ transcoder.Memory     = (*Wrapper)(nil)
	_ textcodec.MemorySizer = (*Wrapper)(nil)
	_ transcoder.Allocator  = (*AllocatorWrapper)(nil)
)

// WrapMemory adapts a wazero memory to transcoder.Memory.
func WrapMemory(mem api.Memory) transcoder.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// WrapAllocator adapts a guest cabi_realloc export to transcoder.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) transcoder.Allocator {
	if fn == nil {
		return nil
	}
	return &AllocatorWrapper{Ctx: ctx, Fn: fn}
}

// Wrapper adapts wazero api.Memory to the transcoder.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// Read returns a view of length bytes at offset. The view aliases guest
// memory and is invalidated by memory growth.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return fmt.Errorf("memory write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// AllocatorWrapper adapts a cabi_realloc export to transcoder.Allocator.
type AllocatorWrapper struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc calls cabi_realloc(0, 0, align, size).
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, fmt.Errorf("allocation failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("allocation returned no result")
	}
	return api.DecodeU32(results[0]), nil
}

// Free calls cabi_realloc(ptr, size, align, 0). Errors are logged and dropped.
func (a *AllocatorWrapper) Free(ptr, size, align uint32) {
	if _, err := a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0); err != nil {
		Logger().Debug("cabi_realloc free failed", zap.Uint32("ptr", ptr), zap.Error(err))
	}
}
