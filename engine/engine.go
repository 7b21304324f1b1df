package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/textcodec/errors"
	"github.com/wippyai/textcodec/transcoder"
)

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// ModuleName is the import module the host functions are exported
	// under. Empty means DefaultModuleName.
	ModuleName string

	// Limits bounds the text regions host functions will touch.
	Limits transcoder.Limits
}

// Engine owns a wazero runtime with the codec host module instantiated.
type Engine struct {
	runtime wazero.Runtime
	tr      *transcoder.Transcoder
	name    string

	mu        sync.Mutex
	instances map[*Instance]struct{}
	closed    bool
}

// New creates a runtime and instantiates the host module in it. A nil cfg
// uses defaults.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.ModuleName
	if name == "" {
		name = DefaultModuleName
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	tr := transcoder.New(cfg.Limits)
	if _, err := buildHostModule(ctx, r, name, tr); err != nil {
		_ = r.Close(ctx)
		return nil, errors.New(errors.PhaseHost, errors.KindInstantiation).
			Op("host-module").
			Detail("instantiate host module %q", name).
			Cause(err).
			Build()
	}

	Logger().Debug("engine ready",
		zap.String("module", name),
		zap.Uint32("memory_limit_pages", cfg.MemoryLimitPages),
		zap.Uint32("max_string_size", tr.Limits().MaxStringSize),
	)

	return &Engine{
		runtime:   r,
		tr:        tr,
		name:      name,
		instances: make(map[*Instance]struct{}),
	}, nil
}

// ModuleName returns the import module name of the host functions.
func (e *Engine) ModuleName() string {
	return e.name
}

// Transcoder returns the transcoder the host functions use.
func (e *Engine) Transcoder() *transcoder.Transcoder {
	return e.tr
}

// Instantiate compiles and instantiates a guest module under name.
func (e *Engine) Instantiate(ctx context.Context, name string, wasm []byte) (*Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, errors.NotInitialized(errors.PhaseLoad, "engine")
	}

	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Instantiation(name, err)
	}
	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Instantiation(name, err)
	}

	inst := &Instance{engine: e, mod: mod, compiled: compiled}
	e.instances[inst] = struct{}{}
	Logger().Debug("instantiated guest", zap.String("name", name))
	return inst, nil
}

// Close closes every instance and the runtime.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	instances := e.instances
	e.instances = nil
	e.mu.Unlock()

	for inst := range instances {
		_ = inst.close(ctx)
	}
	return e.runtime.Close(ctx)
}

func (e *Engine) forget(inst *Instance) {
	e.mu.Lock()
	delete(e.instances, inst)
	e.mu.Unlock()
}

// Instance is an instantiated guest module.
type Instance struct {
	engine   *Engine
	mod      api.Module
	compiled wazero.CompiledModule
	once     sync.Once
	closeErr error
}

// Name returns the module name the instance was created with.
func (i *Instance) Name() string {
	return i.mod.Name()
}

// Call invokes an exported function with core-typed arguments.
func (i *Instance) Call(ctx context.Context, fn string, args ...uint64) ([]uint64, error) {
	f := i.mod.ExportedFunction(fn)
	if f == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", fn)
	}
	results, err := f.Call(ctx, args...)
	if err != nil {
		e := errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "guest call failed")
		e.Op = fn
		return nil, e
	}
	return results, nil
}

// Memory returns the guest's memory, or nil if it has none.
func (i *Instance) Memory() transcoder.Memory {
	return WrapMemory(i.mod.Memory())
}

// Allocator returns the guest's cabi_realloc as an allocator, or nil if the
// guest does not export one.
func (i *Instance) Allocator(ctx context.Context) transcoder.Allocator {
	return WrapAllocator(ctx, i.mod.ExportedFunction("cabi_realloc"))
}

// Close closes the instance. It is safe to call more than once.
func (i *Instance) Close(ctx context.Context) error {
	i.engine.forget(i)
	return i.close(ctx)
}

func (i *Instance) close(ctx context.Context) error {
	i.once.Do(func() {
		i.closeErr = i.mod.Close(ctx)
		_ = i.compiled.Close(ctx)
	})
	return i.closeErr
}
