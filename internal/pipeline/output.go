package pipeline

import (
	"fmt"
	"os"
)

// OutputOptions selects how an output file is opened, mirroring the
// -o/-a/-f flags and their exclusivity rules.
type OutputOptions struct {
	Path string // empty means stdout; caller handles that case separately
	Append bool // -a: append instead of truncate
	ForceNew bool // -f: fail if Path already exists
}

// OpenOutput opens Path per OutputOptions. ForceNew and Append are mutually
// exclusive at the CLI flag-parsing layer, not enforced here.
func OpenOutput(opts OutputOptions) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	switch {
	case opts.ForceNew:
		flags |= os.O_EXCL
	case opts.Append:
		flags |= os.O_APPEND
	default:
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(opts.Path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", opts.Path, err)
	}
	return f, nil
}
