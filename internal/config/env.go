package config

import (
	"os"
	"strconv"
)

// Environment variable names for SJQ_ prefixed overrides.
const (
	EnvProfile = "SJQ_PROFILE"
	EnvMaxTextLength = "SJQ_MAX_TEXT_LENGTH"
	EnvPretty = "SJQ_PRETTY"
	EnvOutput = "SJQ_OUTPUT"
	EnvStrict = "SJQ_STRICT"
)

// buildEnvMap reads SJQ_* environment variables into a flat map suitable for
// a koanf confmap provider. Only non-empty, successfully-parsed vars are
// included; a malformed value is silently skipped rather than failing the
// whole resolution pipeline.
func buildEnvMap() map[string]any {
	m := make(map[string]any)

	if v := os.Getenv(EnvMaxTextLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["max_text_length"] = n
		}
	}
	if v := os.Getenv(EnvPretty); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			m["pretty"] = b
		}
	}
	if v := os.Getenv(EnvOutput); v != "" {
		m["output"] = v
	}
	if v := os.Getenv(EnvStrict); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			m["strict"] = b
		}
	}

	return m
}
