package config

// Config is the top-level configuration type parsed from a.sjq.toml file.
// It holds a map of named query profiles keyed by profile name. The special
// name "default" is the built-in fallback profile.
type Config struct {
	// Profile maps profile names to their configuration. Access via
	// cfg.Profile["default"] or cfg.Profile["weekly-totals"].
	Profile map[string]*Profile `toml:"profile"`
}

// Profile defines all settings for a single named query profile. Fields with
// zero values are considered unset and are filled in by the merge/inheritance
// pipeline (mergeProfile, ResolveProfile). The Extends field enables
// single-level profile inheritance.
type Profile struct {
	// Extends is the name of a parent profile to inherit from. A nil pointer
	// means no inheritance.
	Extends *string `toml:"extends"`

	// Query is the saved DSL query string this profile runs. An explicit
	// positional query argument on the CLI always overrides this.
	Query string `toml:"query"`

	// Output is the output file path. Empty means stdout.
	Output string `toml:"output"`

	// Append, when true, opens Output with O_APPEND instead of truncating.
	Append bool `toml:"append"`

	// ForceNew, when true, opens Output with O_EXCL, failing if it exists.
	ForceNew bool `toml:"force_new"`

	// Pretty enables multi-line indented JSON output.
	Pretty bool `toml:"pretty"`

	// MaxTextLength caps string/number/identifier token length during
	// lexing.
	MaxTextLength int `toml:"max_text_length"`

	// Strict promotes Sum/Mean's silent-drop-on-missing-path behavior to a
	// hard MissingValue error. Select drops missing paths silently either
	// way.
	Strict bool `toml:"strict"`
}
