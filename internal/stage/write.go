package stage

import (
	"io"

	"github.com/kompass-sh/sjq/internal/value"
	"github.com/kompass-sh/sjq/internal/writer"
)

// Write is the terminal stage: it serializes each ingested value to its
// sink and has no successor.
type Write struct {
	sink io.Writer
	pretty bool
}

// NewWrite returns a Write stage writing compact or pretty JSON to sink.
func NewWrite(sink io.Writer, pretty bool) *Write {
	return &Write{sink: sink, pretty: pretty}
}

func (w *Write) Ingest(v value.Value) error {
	var err error
	if w.pretty {
		err = writer.WritePretty(w.sink, v)
	} else {
		err = writer.WriteCompact(w.sink, v)
	}
	if err != nil {
		return &WriteFailureError{Err: err}
	}
	return nil
}

// Finish is a no-op: Write holds no buffered state.
func (w *Write) Finish() error { return nil }
