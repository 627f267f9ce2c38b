package stage

import (
	"context"
	"fmt"

	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/value"
	"github.com/tetratelabs/wazero"
)

// UnknownStageError is an Init error for a stage name the
// registry does not recognize.
type UnknownStageError struct{ Name string }

func (e *UnknownStageError) Error() string { return fmt.Sprintf("unknown stage %q", e.Name) }

// ArgCountError is an Init error for a stage invoked with the wrong number
// of arguments.
type ArgCountError struct {
	Stage string
	Want, Got int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("stage %q expects %d argument(s), got %d", e.Stage, e.Want, e.Got)
}

// ArgTypeError is an Init error for a stage argument of the wrong kind
// (e.g. a number where a path was expected).
type ArgTypeError struct {
	Stage string
	Index int
	Want string
}

func (e *ArgTypeError) Error() string {
	return fmt.Sprintf("stage %q argument %d must be %s", e.Stage, e.Index, e.Want)
}

// BuildOptions carries ambient configuration the registry needs to resolve
// stage specs that depend on more than their literal DSL arguments.
type BuildOptions struct {
	// Strict promotes Sum/Mean's missing-path behavior to a fatal
	// MissingValueError instead of a silent skip.
	Strict bool
	// Runtime backs the wasm stage (); nil unless a query
	// actually uses it.
	Runtime wazero.Runtime
	// LoadWasmFile reads a compiled WASM module's bytes from its path.
	LoadWasmFile func(path string) ([]byte, error)
	// MaxTextLength bounds JSON parsed back out of a wasm transform's
	// result, matching the input lexer's max_text_length.
	MaxTextLength int
}

// Build folds specs backward from tail, the terminal writer the pipeline
// orchestrator already constructed: each registry function takes
// (successor, args) and returns the new pipeline head.
func Build(ctx context.Context, specs []querylang.StageSpec, tail Stage, opts BuildOptions) (Stage, error) {
	head := tail
	for i := len(specs) - 1; i >= 0; i-- {
		next, err := fromArgs(ctx, specs[i], head, opts)
		if err != nil {
			return nil, err
		}
		head = next
	}
	return head, nil
}

func fromArgs(ctx context.Context, spec querylang.StageSpec, successor Stage, opts BuildOptions) (Stage, error) {
	switch spec.Name {
	case "write":
		// The pipeline orchestrator always supplies the terminal writer as
		// tail; an explicit "| write" in the DSL is accepted as a harmless
		// marker rather than constructing a second sink.
		return successor, nil

	case "add_field":
		if len(spec.Args) != 2 {
			return nil, &ArgCountError{Stage: "add_field", Want: 2, Got: len(spec.Args)}
		}
		if spec.Args[0].Kind != querylang.ArgString {
			return nil, &ArgTypeError{Stage: "add_field", Index: 0, Want: "string"}
		}
		key := spec.Args[0].Str
		fv, err := fieldValueFromArg(spec.Args[1])
		if err != nil {
			return nil, err
		}
		return NewAddField(key, fv, successor), nil

	case "select":
		if len(spec.Args) != 1 {
			return nil, &ArgCountError{Stage: "select", Want: 1, Got: len(spec.Args)}
		}
		if spec.Args[0].Kind != querylang.ArgPath {
			return nil, &ArgTypeError{Stage: "select", Index: 0, Want: "path"}
		}
		return NewSelect(spec.Args[0].Path, successor), nil

	case "sum":
		if len(spec.Args) != 1 {
			return nil, &ArgCountError{Stage: "sum", Want: 1, Got: len(spec.Args)}
		}
		if spec.Args[0].Kind != querylang.ArgPath {
			return nil, &ArgTypeError{Stage: "sum", Index: 0, Want: "path"}
		}
		return NewSum(spec.Args[0].Path, opts.Strict, successor), nil

	case "mean":
		if len(spec.Args) != 1 {
			return nil, &ArgCountError{Stage: "mean", Want: 1, Got: len(spec.Args)}
		}
		if spec.Args[0].Kind != querylang.ArgPath {
			return nil, &ArgTypeError{Stage: "mean", Index: 0, Want: "path"}
		}
		return NewMean(spec.Args[0].Path, opts.Strict, successor), nil

	case "wasm":
		if len(spec.Args) != 2 {
			return nil, &ArgCountError{Stage: "wasm", Want: 2, Got: len(spec.Args)}
		}
		if spec.Args[0].Kind != querylang.ArgString {
			return nil, &ArgTypeError{Stage: "wasm", Index: 0, Want: "string"}
		}
		if spec.Args[1].Kind != querylang.ArgString {
			return nil, &ArgTypeError{Stage: "wasm", Index: 1, Want: "string"}
		}
		path, export := spec.Args[0].Str, spec.Args[1].Str
		wasmBytes, err := opts.LoadWasmFile(path)
		if err != nil {
			return nil, fmt.Errorf("load wasm module %s: %w", path, err)
		}
		return NewWasm(ctx, opts.Runtime, path, wasmBytes, export, opts.MaxTextLength, successor)

	default:
		return nil, &UnknownStageError{Name: spec.Name}
	}
}

func fieldValueFromArg(arg querylang.StageArg) (FieldValue, error) {
	switch arg.Kind {
	case querylang.ArgString:
		return LiteralFieldValue(value.StringValue(arg.Str)), nil
	case querylang.ArgNumber:
		return LiteralFieldValue(value.NumberValue(arg.Num)), nil
	case querylang.ArgPath:
		return PathFieldValue(arg.Path), nil
	default:
		return FieldValue{}, &ArgTypeError{Stage: "add_field", Index: 1, Want: "string, number, or path"}
	}
}
