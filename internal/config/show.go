package config

import (
	"fmt"
	"strings"
)

// ShowOptions controls the rendering of a resolved profile.
type ShowOptions struct {
	Profile *Profile
	Sources SourceMap
	ProfileName string
	// Chain is the inheritance chain in resolution order, from
	// ProfileResolution.Chain.
	Chain []string
}

// ShowProfile renders a resolved profile as annotated, approximately-valid
// TOML: each field carries an inline comment naming the configuration layer
// that provided its value ( "sjq config show").
func ShowProfile(opts ShowOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Resolved profile: %s\n", opts.ProfileName)
	if len(opts.Chain) > 1 {
		fmt.Fprintf(&b, "# Inheritance chain: %s\n", strings.Join(opts.Chain, " -> "))
	}
	b.WriteString("\n")

	p := opts.Profile
	src := opts.Sources

	writeStringField(&b, "query", p.Query, sourceLabel(src, "query"))
	writeStringField(&b, "output", p.Output, sourceLabel(src, "output"))
	writeBoolField(&b, "append", p.Append, sourceLabel(src, "append"))
	writeBoolField(&b, "force_new", p.ForceNew, sourceLabel(src, "force_new"))
	writeBoolField(&b, "pretty", p.Pretty, sourceLabel(src, "pretty"))
	writeIntField(&b, "max_text_length", p.MaxTextLength, sourceLabel(src, "max_text_length"))
	writeBoolField(&b, "strict", p.Strict, sourceLabel(src, "strict"))

	return b.String()
}

func sourceLabel(src SourceMap, key string) string {
	if s, ok := src[key]; ok {
		return s.String()
	}
	return "default"
}

func writeStringField(b *strings.Builder, key, value, source string) {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	fmt.Fprintf(b, "%-16s = %-30s # %s\n", key, `"`+escaped+`"`, source)
}

func writeIntField(b *strings.Builder, key string, value int, source string) {
	fmt.Fprintf(b, "%-16s = %-30d # %s\n", key, value, source)
}

func writeBoolField(b *strings.Builder, key string, value bool, source string) {
	boolStr := "false"
	if value {
		boolStr = "true"
	}
	fmt.Fprintf(b, "%-16s = %-30s # %s\n", key, boolStr, source)
}
