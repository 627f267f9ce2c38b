// Package stage implements the pipeline stage protocol and registry: each
// stage ingests values and optionally forwards transformed ones to a
// successor, and the chain is folded from a terminal writer backward at
// compile time.
package stage

import "github.com/kompass-sh/sjq/internal/value"

// Stage is one node of the pipeline. Ingest is called once per matched
// value in document order; Finish is called exactly once at end-of-input
// and must be idempotent, propagating to any successor before returning.
type Stage interface {
	Ingest(v value.Value) error
	Finish() error
}
