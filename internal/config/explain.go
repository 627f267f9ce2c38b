package config

import (
	"fmt"
	"strings"

	"github.com/kompass-sh/sjq/internal/querylang"
)

// ExplainQuery compiles query and renders the resulting Filter tree and
// Stage plan without running the engine over any input.
func ExplainQuery(query string, maxTextLength int) (string, error) {
	f, specs, err := querylang.Compile(query, maxTextLength)
	if err != nil {
		return "", fmt.Errorf("compile query: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "query: %s\n", query)
	fmt.Fprintf(&b, "filter: %s\n", f.String())
	b.WriteString("stages:\n")
	for _, line := range strings.Split(querylang.FormatStagePlan(specs), "\n") {
		fmt.Fprintf(&b, " %s\n", line)
	}

	return b.String(), nil
}
