package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/textcodec/transcoder"
)

// DefaultModuleName is the import module guests use for the codec.
const DefaultModuleName = "textcodec"

// hostCall runs one host function over the caller's memory. args holds the
// flattened i32 parameters.
type hostCall func(tr *transcoder.Transcoder, mem transcoder.Memory, args []uint32) (uint32, error)

type hostFunc struct {
	sig  Signature
	call hostCall
}

var stringParam = Param{Name: "s", Type: wit.String{}}

var hostFuncs = []hostFunc{
	{
		sig: Signature{
			Name:   "utf16-size",
			Params: []Param{stringParam},
			Result: wit.U32{},
		},
		call: func(tr *transcoder.Transcoder, mem transcoder.Memory, a []uint32) (uint32, error) {
			return tr.UTF16Size(mem, a[0], a[1])
		},
	},
	{
		sig: Signature{
			Name: "decode",
			Params: []Param{
				stringParam,
				{Name: "dst", Type: wit.U32{}},
				{Name: "cap", Type: wit.U32{}},
				{Name: "skip", Type: wit.U32{}},
			},
			Result: wit.U32{},
		},
		call: func(tr *transcoder.Transcoder, mem transcoder.Memory, a []uint32) (uint32, error) {
			return tr.DecodeAt(mem, a[0], a[1], a[2], a[3], a[4])
		},
	},
	{
		sig: Signature{
			Name: "reencode",
			Params: []Param{
				{Name: "units", Type: listOf(wit.U16{})},
				{Name: "dst", Type: wit.U32{}},
				{Name: "cap", Type: wit.U32{}},
				{Name: "start", Type: wit.U32{}},
			},
			Result: wit.U32{},
		},
		call: func(tr *transcoder.Transcoder, mem transcoder.Memory, a []uint32) (uint32, error) {
			return tr.ReencodeAt(mem, a[0], a[1], a[2], a[3], a[4])
		},
	},
	{
		sig: Signature{
			Name:   "looks-like-utf8",
			Params: []Param{stringParam},
			Result: wit.Bool{},
		},
		call: func(tr *transcoder.Transcoder, mem transcoder.Memory, a []uint32) (uint32, error) {
			ok, err := tr.SniffAt(mem, a[0], a[1])
			if !ok || err != nil {
				return 0, err
			}
			return 1, nil
		},
	},
	{
		sig: Signature{
			Name:   "repair",
			Params: []Param{stringParam},
			Result: wit.U32{},
		},
		call: func(tr *transcoder.Transcoder, mem transcoder.Memory, a []uint32) (uint32, error) {
			return tr.RepairAt(mem, a[0], a[1])
		},
	},
}

// HostFunctions returns the signatures of the functions the host module exports.
func HostFunctions() []Signature {
	sigs := make([]Signature, len(hostFuncs))
	for i, f := range hostFuncs {
		sigs[i] = f.sig
	}
	return sigs
}

// handler adapts a hostCall to wazero. A failed call returns 0 to the guest.
func (f hostFunc) handler(tr *transcoder.Transcoder, nparams int) api.GoModuleFunc {
	name := f.sig.Name
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		var buf [8]uint32
		args := buf[:nparams]
		for i := range args {
			args[i] = api.DecodeU32(stack[i])
		}

		res, err := f.call(tr, WrapMemory(mod.Memory()), args)
		if err != nil {
			Logger().Debug("host call failed",
				zap.String("func", name),
				zap.String("module", mod.Name()),
				zap.Uint32s("args", args),
				zap.Error(err),
			)
			res = 0
		}
		stack[0] = api.EncodeU32(res)
	}
}

func buildHostModule(ctx context.Context, r wazero.Runtime, name string, tr *transcoder.Transcoder) (api.Module, error) {
	builder := r.NewHostModuleBuilder(name)
	for _, f := range hostFuncs {
		params, results := f.sig.CoreTypes()
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.handler(tr, len(params)), params, results).
			WithName(f.sig.Name).
			Export(f.sig.Name)
	}
	return builder.Instantiate(ctx)
}
