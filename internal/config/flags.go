package config

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FlagValues collects sjq's global persistent flag values. Populated by
// BindFlags; read after Cobra parses args.
type FlagValues struct {
	Output string
	Append bool
	ForceNew bool
	Pretty bool
	MaxTextLength int
	Strict bool
	Profile string
	Progress bool
	Verbose bool
	Quiet bool
}

// BindFlags registers sjq's global flags on cmd and returns the struct they
// populate.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Output, "output", "o", "", "output file path (default: stdout)")
	pf.BoolVarP(&fv.Append, "append", "a", false, "append to output file instead of truncating")
	pf.BoolVarP(&fv.ForceNew, "force-new", "f", false, "fail if the output file already exists")
	pf.BoolVarP(&fv.Pretty, "pretty", "p", false, "multi-line indented JSON output")
	pf.IntVarP(&fv.MaxTextLength, "max-text-length", "m", 0, "cap on string/number/identifier token length")
	pf.BoolVar(&fv.Strict, "strict", false, "fail instead of silently dropping a missing path")
	pf.StringVar(&fv.Profile, "profile", "", "load a named query profile from layered config")
	pf.BoolVar(&fv.Progress, "progress", false, "render a live status line on stderr")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress all but error logging")

	return fv
}

// ValidateFlags checks fv for mutual exclusion problems.
func ValidateFlags(fv *FlagValues) error {
	if fv.Verbose && fv.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	if fv.Append && fv.ForceNew {
		return fmt.Errorf("--append and --force-new are mutually exclusive")
	}
	return nil
}

// ToCLIMap converts the flags explicitly set on cmd into a flat map for
// config.ResolveOptions.CLIFlags, so unset flags do not shadow profile or
// env values ( precedence order).
func ToCLIMap(fv *FlagValues, cmd *cobra.Command) map[string]any {
	m := make(map[string]any)
	flags := cmd.Flags()

	if flags.Changed("output") {
		m["output"] = fv.Output
	}
	if flags.Changed("append") {
		m["append"] = fv.Append
	}
	if flags.Changed("force-new") {
		m["force_new"] = fv.ForceNew
	}
	if flags.Changed("pretty") {
		m["pretty"] = fv.Pretty
	}
	if flags.Changed("max-text-length") {
		m["max_text_length"] = fv.MaxTextLength
	}
	if flags.Changed("strict") {
		m["strict"] = fv.Strict
	}

	return m
}
