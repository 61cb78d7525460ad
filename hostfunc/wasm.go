package hostfunc

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/quillvm/quill/engine"
)

// WasmModule wraps a compiled WebAssembly module so its exported functions
// can be called from scripts as host functions. Integer and float arguments
// are marshalled to the wasm ABI; a trap or invocation error surfaces as an
// ordinary host error through the protected call boundary.
type WasmModule struct {
	ctx     context.Context
	runtime wazero.Runtime
	module  api.Module
}

// LoadWasm compiles and instantiates a wasm binary.
func LoadWasm(ctx context.Context, binary []byte) (*WasmModule, error) {
	rt := wazero.NewRuntime(ctx)
	mod, err := rt.Instantiate(ctx, binary)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate wasm module: %w", err)
	}
	return &WasmModule{ctx: ctx, runtime: rt, module: mod}, nil
}

// Func adapts the named exported function into a host function.
func (m *WasmModule) Func(name string) (Func, error) {
	fn := m.module.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("wasm module exports no function %q", name)
	}
	return m.adapt(name, fn), nil
}

// Install registers every exported function under its export name.
func (m *WasmModule) Install(r *Registry) {
	for name := range m.module.ExportedFunctionDefinitions() {
		fn := m.module.ExportedFunction(name)
		if fn != nil {
			r.Register(name, m.adapt(name, fn))
		}
	}
}

// Close releases the wasm runtime and its module.
func (m *WasmModule) Close() error {
	return m.runtime.Close(m.ctx)
}

func (m *WasmModule) adapt(name string, fn api.Function) Func {
	def := fn.Definition()
	return func(s *engine.State, args []engine.Value) ([]engine.Value, error) {
		paramTypes := def.ParamTypes()
		if len(args) != len(paramTypes) {
			return nil, fmt.Errorf("%s: expected %d arguments, got %d", name, len(paramTypes), len(args))
		}
		params := make([]uint64, len(args))
		for i, a := range args {
			raw, err := encodeWasm(paramTypes[i], a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
			}
			params[i] = raw
		}

		raws, err := fn.Call(m.ctx, params...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		resultTypes := def.ResultTypes()
		results := make([]engine.Value, len(raws))
		for i, raw := range raws {
			results[i] = decodeWasm(resultTypes[i], raw)
		}
		return results, nil
	}
}

func encodeWasm(t api.ValueType, v engine.Value) (uint64, error) {
	switch t {
	case api.ValueTypeI32:
		n, err := engine.As[int64](v)
		if err != nil {
			return 0, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of range for i32", n)
		}
		return uint64(uint32(int32(n))), nil
	case api.ValueTypeI64:
		n, err := engine.As[int64](v)
		if err != nil {
			return 0, err
		}
		return uint64(n), nil
	case api.ValueTypeF32:
		f, err := engine.As[float64](v)
		if err != nil {
			return 0, err
		}
		return uint64(math.Float32bits(float32(f))), nil
	case api.ValueTypeF64:
		f, err := engine.As[float64](v)
		if err != nil {
			return 0, err
		}
		return math.Float64bits(f), nil
	default:
		return 0, fmt.Errorf("unsupported wasm value type %v", t)
	}
}

func decodeWasm(t api.ValueType, raw uint64) engine.Value {
	switch t {
	case api.ValueTypeI32:
		return engine.Int(int32(uint32(raw)))
	case api.ValueTypeI64:
		return engine.Int(int64(raw))
	case api.ValueTypeF32:
		return engine.Float(math.Float32frombits(uint32(raw)))
	case api.ValueTypeF64:
		return engine.Float(math.Float64frombits(raw))
	default:
		return engine.Nil{}
	}
}
