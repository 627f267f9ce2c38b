package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/kompass-sh/sjq/internal/jsonstream"
	"github.com/kompass-sh/sjq/internal/lexer"
	"github.com/kompass-sh/sjq/internal/value"
	"github.com/kompass-sh/sjq/internal/writer"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// WasmTrapError is a fatal pipeline error raised when a WASM transform
// function traps instead of returning.
type WasmTrapError struct {
	Path string
	Export string
	Err error
}

func (e *WasmTrapError) Error() string {
	return fmt.Sprintf("wasm trap in %s (export %q): %v", e.Path, e.Export, e.Err)
}
func (e *WasmTrapError) Unwrap() error { return e.Err }

// Wasm calls an exported WASM function for each ingested value, replacing
// it with the function's result (or dropping it if the result has zero
// length). The value crosses the WASM boundary as compact JSON bytes
// written into the module's own linear memory; the module is expected to
// export an "alloc" function taking a byte length and returning a
// pointer, matching the convention used by most Go/Rust/TinyGo WASM
// transform modules compiled against wazero.
type Wasm struct {
	path string
	export string
	successor Stage

	runtime wazero.Runtime
	mod api.Module
	transform api.Function
	alloc api.Function
	maxLen int
}

// NewWasm instantiates the module at path within rt and resolves its
// exported transform and alloc functions. Failure here is an Init error:
// the module must be valid and exportable before streaming begins.
func NewWasm(ctx context.Context, rt wazero.Runtime, path string, wasmBytes []byte, export string, maxLen int, successor Stage) (*Wasm, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		return nil, fmt.Errorf("instantiate wasi for %s: %w", path, err)
	}
	compiledMod, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("compile wasm module %s: %w", path, err)
	}
	mod, err := rt.InstantiateModule(ctx, compiledMod, wazero.NewModuleConfig())
	if err != nil {
		return nil, fmt.Errorf("instantiate wasm module %s: %w", path, err)
	}
	transform := mod.ExportedFunction(export)
	if transform == nil {
		return nil, fmt.Errorf("wasm module %s has no exported function %q", path, export)
	}
	alloc := mod.ExportedFunction("alloc")
	if alloc == nil {
		return nil, fmt.Errorf("wasm module %s has no exported \"alloc\" function", path)
	}
	return &Wasm{
		path: path, export: export, successor: successor,
		runtime: rt, mod: mod, transform: transform, alloc: alloc, maxLen: maxLen,
	}, nil
}

func (w *Wasm) Ingest(v value.Value) error {
	var b strings.Builder
	if err := writer.WriteCompact(&b, v); err != nil {
		return err
	}
	encoded := strings.TrimSuffix(b.String(), "\n")

	ctx := context.Background()
	ptrResult, err := w.alloc.Call(ctx, uint64(len(encoded)))
	if err != nil {
		return &WasmTrapError{Path: w.path, Export: "alloc", Err: err}
	}
	ptr := uint32(ptrResult[0])

	if !w.mod.Memory().Write(ptr, []byte(encoded)) {
		return &WasmTrapError{Path: w.path, Export: w.export, Err: fmt.Errorf("out-of-bounds memory write")}
	}

	packed, err := w.transform.Call(ctx, uint64(ptr), uint64(len(encoded)))
	if err != nil {
		return &WasmTrapError{Path: w.path, Export: w.export, Err: err}
	}

	resultPtr := uint32(packed[0] >> 32)
	resultLen := uint32(packed[0])
	if resultLen == 0 {
		return nil // the module dropped this value
	}

	out, ok := w.mod.Memory().Read(resultPtr, resultLen)
	if !ok {
		return &WasmTrapError{Path: w.path, Export: w.export, Err: fmt.Errorf("out-of-bounds memory read")}
	}

	rd := lexer.NewReader(strings.NewReader(string(out)))
	replaced, err := jsonstream.ParseValue(rd, w.maxLen)
	if err != nil {
		return &WasmTrapError{Path: w.path, Export: w.export, Err: fmt.Errorf("module returned invalid JSON: %w", err)}
	}
	return w.successor.Ingest(replaced)
}

func (w *Wasm) Finish() error {
	return w.successor.Finish()
}

// Close closes the instantiated module. Callers should defer Close once the
// pipeline owning this stage is done running.
func (w *Wasm) Close(ctx context.Context) error {
	return w.mod.Close(ctx)
}
