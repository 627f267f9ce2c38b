package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/kompass-sh/sjq/internal/config"
	"github.com/kompass-sh/sjq/internal/jsonpath"
	"github.com/kompass-sh/sjq/internal/jsonstream"
	"github.com/kompass-sh/sjq/internal/lexer"
	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/stage"
	"github.com/kompass-sh/sjq/internal/value"
	"github.com/tetratelabs/wazero"
)

// Options configures a single engine run.
type Options struct {
	Query string
	Input io.Reader
	Output io.Writer
	Pretty bool
	MaxTextLength int
	Strict bool

	// Cache memoizes query compilation. If nil, the query is compiled
	// fresh every call.
	Cache *querylang.Cache

	// WasmRuntime and LoadWasmFile back the optional wasm stage; both
	// may be nil if the query does not use it.
	WasmRuntime wazero.Runtime
	LoadWasmFile func(path string) ([]byte, error)

	// OnSkip, if set, is called for every pipeline error the run would
	// otherwise treat as fatal, when the caller wants best-effort progress
	// semantics ( --progress/ExitPartial interplay)
	// instead. Returning nil from OnSkip continues the run; returning an
	// error aborts it as usual.
	OnSkip func(err error) error

	// Events, if set, receives Ingest/Finish notifications for the
	// --progress status line (internal/progress). Never required for
	// correctness; sends are non-blocking.
	Events chan<- Event
}

// Run drives the full pipeline: compile the query, build the stage chain
// behind a terminal writer, then stream top-level JSON values from Input
// through the selective parser into the chain. It
// returns an *EngineError on any fatal condition, or nil after a clean
// Finish.
func Run(ctx context.Context, opts Options) error {
	compile := querylang.Compile
	if opts.Cache != nil {
		compile = opts.Cache.Compile
	}
	f, specs, err := compile(opts.Query, opts.MaxTextLength)
	if err != nil {
		return NewInitError("query syntax error", err)
	}

	tail := stage.NewWrite(opts.Output, opts.Pretty)
	head, err := stage.Build(ctx, specs, tail, stage.BuildOptions{
			Strict: opts.Strict,
			Runtime: opts.WasmRuntime,
			LoadWasmFile: opts.LoadWasmFile,
			MaxTextLength: opts.MaxTextLength,
	})
	if err != nil {
		return NewInitError("cannot build pipeline", err)
	}

	rd := lexer.NewReader(opts.Input)
	path := jsonpath.New()
	logger := config.NewLogger("pipeline")
	var valuesIngested int64

	emit := func(_ *jsonpath.Path, v value.Value) error {
		if err := head.Ingest(v); err != nil {
			pipeErr := NewPipelineError("pipeline stage failed", err)
			if opts.OnSkip != nil {
				logger.Warn("skipping value after stage error", "error", err)
				return opts.OnSkip(pipeErr)
			}
			return pipeErr
		}
		valuesIngested++
		sendEvent(opts.Events, Event{Kind: EventIngest, ValuesIngested: valuesIngested, CharsConsumed: int64(rd.Pos())})
		return nil
	}

	for {
		rd.SkipWhitespace()
		if rd.AtEOF() {
			break
		}
		if err := jsonstream.Parse(rd, f, path, opts.MaxTextLength, emit); err != nil {
			var engineErr *EngineError
			if errors.As(err, &engineErr) {
				return engineErr
			}
			var parseErr *lexer.ParseError
			if errors.As(err, &parseErr) {
				return NewParseError("input parse error", err)
			}
			return NewPipelineError("pipeline stage failed", err)
		}
	}

	if err := head.Finish(); err != nil {
		return NewPipelineError("pipeline finish failed", err)
	}
	sendEvent(opts.Events, Event{Kind: EventFinish, ValuesIngested: valuesIngested, CharsConsumed: int64(rd.Pos())})
	return nil
}
