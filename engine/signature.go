package engine

import (
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
)

// Param is a named WIT parameter of a host function.
type Param struct {
	Name string
	Type wit.Type
}

// Signature is the WIT-level shape of a host function.
type Signature struct {
	Name   string
	Params []Param
	Result wit.Type
}

// CoreTypes flattens the signature to core wasm parameter and result types.
func (s Signature) CoreTypes() (params, results []api.ValueType) {
	for _, p := range s.Params {
		params = append(params, flattenType(p.Type)...)
	}
	if s.Result != nil {
		results = flattenType(s.Result)
	}
	return params, results
}

// String renders the signature in WIT syntax.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(": func(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(witTypeName(p.Type))
	}
	b.WriteByte(')')
	if s.Result != nil {
		b.WriteString(" -> ")
		b.WriteString(witTypeName(s.Result))
	}
	return b.String()
}

// flattenType maps a WIT type to its core wasm representation. Only the
// types host functions use are handled; anything else is a single i32.
func flattenType(t wit.Type) []api.ValueType {
	switch v := t.(type) {
	case nil:
		return nil
	case wit.Bool, wit.U8, wit.U16, wit.U32, wit.S8, wit.S16, wit.S32, wit.Char:
		return []api.ValueType{api.ValueTypeI32}
	case wit.U64, wit.S64:
		return []api.ValueType{api.ValueTypeI64}
	case wit.F32:
		return []api.ValueType{api.ValueTypeF32}
	case wit.F64:
		return []api.ValueType{api.ValueTypeF64}
	case wit.String:
		return []api.ValueType{api.ValueTypeI32, api.ValueTypeI32} // ptr, len
	case *wit.TypeDef:
		if _, ok := v.Kind.(*wit.List); ok {
			return []api.ValueType{api.ValueTypeI32, api.ValueTypeI32} // ptr, len
		}
		if k, ok := v.Kind.(wit.Type); ok {
			return flattenType(k)
		}
		return []api.ValueType{api.ValueTypeI32}
	default:
		return []api.ValueType{api.ValueTypeI32}
	}
}

func witTypeName(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if l, ok := v.Kind.(*wit.List); ok {
			return "list<" + witTypeName(l.Type) + ">"
		}
	}
	return "_"
}

func listOf(t wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.List{Type: t}}
}
