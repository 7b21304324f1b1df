// Package engine exposes the text codec to WebAssembly guests.
//
// New creates a wazero runtime and instantiates a host module (named
// "textcodec" unless Config.ModuleName says otherwise) whose functions run
// the codec over the calling guest's memory:
//
//	WIT signature                                                   Core signature
//	─────────────────────────────────────────────────────────────────────────────────────────
//	utf16-size: func(s: string) -> u32                              (i32 i32) -> i32
//	decode: func(s: string, dst: u32, cap: u32, skip: u32) -> u32   (i32 i32 i32 i32 i32) -> i32
//	reencode: func(units: list<u16>, dst: u32, cap: u32, start: u32) -> u32
//	                                                                (i32 i32 i32 i32 i32) -> i32
//	looks-like-utf8: func(s: string) -> bool                        (i32 i32) -> i32
//	repair: func(s: string) -> u32                                  (i32 i32) -> i32
//
// Strings and lists are passed as (pointer, length) pairs; list<u16> lengths
// count units. decode writes UTF-16LE units at dst, reencode writes UTF-8
// bytes at dst, and repair rewrites the string in place and returns its new
// length.
//
// A call that touches memory outside the guest's bounds, or exceeds the
// configured size limit, returns 0. The failure is logged at debug level
// through Logger.
//
// # Usage
//
//	eng, err := engine.New(ctx, nil)
//	if err != nil {
//		return err
//	}
//	defer eng.Close(ctx)
//
//	inst, err := eng.Instantiate(ctx, "guest", wasmBytes)
//	if err != nil {
//		return err
//	}
//	results, err := inst.Call(ctx, "run")
//
// # Thread Safety
//
// Engine is safe for concurrent use. An Instance must not be called from
// more than one goroutine at a time.
package engine
