package config

import (
	"fmt"

	"github.com/kompass-sh/sjq/internal/querylang"
)

// Validate checks a resolved Profile for internal consistency, returning
// every problem found (errors and warnings both) rather than stopping at
// the first one.
func Validate(p *Profile) []ValidationError {
	var errs []ValidationError

	if p.MaxTextLength <= 0 {
		errs = append(errs, ValidationError{
				Severity: "error",
				Field: "max_text_length",
				Message: fmt.Sprintf("must be positive, got %d", p.MaxTextLength),
				Suggest: "remove the override to use the built-in default of 4096",
		})
	}

	if p.Append && p.ForceNew {
		errs = append(errs, ValidationError{
				Severity: "error",
				Field: "append",
				Message: "append and force_new are mutually exclusive",
				Suggest: "set only one of append / force_new",
		})
	}

	if p.Output == "" && p.Append {
		errs = append(errs, ValidationError{
				Severity: "warning",
				Field: "append",
				Message: "append has no effect when output is stdout",
		})
	}

	if p.Query != "" {
		if _, _, err := querylang.Compile(p.Query, p.MaxTextLength); err != nil {
			errs = append(errs, ValidationError{
					Severity: "error",
					Field: "query",
					Message: fmt.Sprintf("does not compile: %v", err),
			})
		}
	}

	return errs
}

// HasErrors reports whether errs contains at least one "error" severity
// entry (as opposed to only warnings).
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}
