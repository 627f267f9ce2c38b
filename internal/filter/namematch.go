package filter

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// NameMatch decides whether an object field name satisfies a Branch
// FilterPart. It is either literal equality or a
// compiled regular expression.
type NameMatch struct {
	literal string
	isRegex bool
	re *regexp2.Regexp
	// source is the original regex source, kept for diagnostics.
	source string
}

// Literal returns a NameMatch that accepts only the exact field name s.
func Literal(s string) NameMatch {
	return NameMatch{literal: s}
}

// Regex compiles pattern (the text between the `/ /` delimiters in the DSL,
// with `\/` already unescaped) into a NameMatch backed by regexp2, the
// backtracking engine used for all Filter regex literals.
func Regex(pattern string) (NameMatch, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return NameMatch{}, fmt.Errorf("compile regex /%s/: %w", pattern, err)
	}
	return NameMatch{isRegex: true, re: re, source: pattern}, nil
}

// Matches reports whether name satisfies this NameMatch.
func (m NameMatch) Matches(name string) bool {
	if !m.isRegex {
		return m.literal == name
	}
	ok, err := m.re.MatchString(name)
	return err == nil && ok
}

// String renders the match for diagnostics.
func (m NameMatch) String() string {
	if m.isRegex {
		return "/" + m.source + "/"
	}
	return m.literal
}
