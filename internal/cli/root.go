// Package cli implements the Cobra command hierarchy for the sjq CLI tool.
// The root command defined here is the entry point for all subcommands and
// handles cross-cutting concerns like logging initialization and error
// handling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"

	"github.com/kompass-sh/sjq/internal/config"
	"github.com/kompass-sh/sjq/internal/pipeline"
	"github.com/kompass-sh/sjq/internal/progress"
	"github.com/kompass-sh/sjq/internal/querylang"
)

// flagValues holds the parsed global flag values, populated by
// config.BindFlags during command initialization and validated in
// PersistentPreRunE.
var flagValues *config.FlagValues

// queryCache memoizes compiled queries across repeated --profile
// invocations within a single process.
var queryCache = querylang.NewCache()

var rootCmd = &cobra.Command{
	Use: "sjq [query]",
	Short: "Stream, filter, and aggregate JSON without buffering it.",
	Long: `sjq is a streaming JSON query engine: it parses only the parts of a
JSON document a query actually needs, driven by a compiled filter/path
expression re-evaluated at every value position, and pipes matches through
a small stage pipeline (select, sum, mean, add_field, wasm transforms).`,
	Args: cobra.MaximumNArgs(1),
	SilenceUsage: true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateFlags(flagValues); err != nil {
			return err
		}

		level := config.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format, "run_id", config.NewRunID())
		return nil
	},
	RunE: runQuery,
}

func init() {
	flagValues = config.BindFlags(rootCmd)
}

// runQuery is the default action: resolve layered config, compile the
// (possibly profile-supplied) query, and stream stdin through the engine.
func runQuery(cmd *cobra.Command, args []string) error {
	resolved, err := config.Resolve(config.ResolveOptions{
			ProfileName: flagValues.Profile,
			CLIFlags: config.ToCLIMap(flagValues, cmd),
	})
	if err != nil {
		return pipeline.NewInitError("config resolution failed", err)
	}

	query := resolved.Profile.Query
	if len(args) > 0 {
		query = args[0]
	}
	if query == "" {
		return pipeline.NewInitError("no query given", fmt.Errorf("pass a query argument or --profile with a saved query"))
	}

	out, closeOut, err := openOutput(resolved.Profile)
	if err != nil {
		return pipeline.NewInitError("cannot open output", err)
	}
	defer closeOut()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	opts := pipeline.Options{
		Query: query,
		Input: cmd.InOrStdin(),
		Output: out,
		Pretty: resolved.Profile.Pretty,
		Strict: resolved.Profile.Strict,
		MaxTextLength: resolved.Profile.MaxTextLength,
		Cache: queryCache,
		WasmRuntime: rt,
		LoadWasmFile: os.ReadFile,
	}

	if flagValues.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		events := make(chan pipeline.Event, 8)
		opts.Events = events
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = progress.Run(events)
		}()
		err := pipeline.Run(ctx, opts)
		close(events)
		<-done
		return err
	}

	return pipeline.Run(ctx, opts)
}

// openOutput resolves where query output goes: stdout when Profile.Output
// is empty, otherwise a file opened per Append/ForceNew semantics.
func openOutput(p *config.Profile) (io.Writer, func() error, error) {
	if p.Output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := pipeline.OpenOutput(pipeline.OutputOptions{Path: p.Output, Append: p.Append, ForceNew: p.ForceNew})
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// Execute runs the root command and returns the process exit code. If the
// error is a *pipeline.EngineError, its Code is used.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(pipeline.ExitSuccess)
}

// extractExitCode determines the process exit code from an error by
// unwrapping it to an *pipeline.EngineError, if possible.
func extractExitCode(err error) int {
	if err == nil {
		return int(pipeline.ExitSuccess)
	}
	var engineErr *pipeline.EngineError
	if errors.As(err, &engineErr) {
		return int(engineErr.Code)
	}
	return int(pipeline.ExitError)
}

// RootCmd returns the root cobra.Command, for testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values, available after
// PersistentPreRunE has run.
func GlobalFlags() *config.FlagValues {
	return flagValues
}
