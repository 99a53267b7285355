package report

import (
	"encoding/json"
	"io"

	"github.com/registerwatch/registerscan/internal/model"
)

// Sink receives the crawl's record stream. Emit is called once per
// record in emission order; Close finalizes the output and must be
// called exactly once after the last Emit, including on empty streams.
//
// Design decision: We define the sink interface here rather than
// reusing the crawler's, so record sinks can be composed and tested
// without importing the crawler. The crawler's sink interface is a
// structural subset of this one, so every Sink satisfies it.
type Sink interface {
	// Emit writes one record to the output stream.
	Emit(record model.Record) error

	// Close finalizes the stream.
	Close() error
}

// JSONWriter streams records as a single JSON array.
// This is the primary output format, designed for downstream batch
// consumers that load one run as one document.
//
// Design decision: We write the array incrementally — opening bracket
// on the first record, separators between records — rather than
// buffering the whole run and marshaling once, because a run can emit
// thousands of records and a failed crawl should still leave valid
// partial output on disk after Close.
type JSONWriter struct {
	output io.Writer

	// indent enables pretty-printed output, one indented record per
	// array element. When false, output is compact.
	indent bool

	// started is set once the opening bracket has been written.
	started bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that streams to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Emit writes one record as the next array element.
func (w *JSONWriter) Emit(record model.Record) error {
	data, err := w.marshal(record)
	if err != nil {
		return err
	}

	prefix := ",\n"
	if !w.started {
		prefix = "[\n"
		w.started = true
	}
	if w.indent {
		prefix += "  "
	}

	if _, err := io.WriteString(w.output, prefix); err != nil {
		return err
	}
	_, err = w.output.Write(data)
	return err
}

// Close terminates the array. An empty stream closes to "[]".
func (w *JSONWriter) Close() error {
	if !w.started {
		_, err := io.WriteString(w.output, "[]\n")
		return err
	}
	_, err := io.WriteString(w.output, "\n]\n")
	return err
}

// marshal encodes one record, honoring the indent setting.
func (w *JSONWriter) marshal(record model.Record) ([]byte, error) {
	if w.indent {
		return json.MarshalIndent(record, "  ", "  ")
	}
	return json.Marshal(record)
}

// NDJSONWriter streams records as newline-delimited JSON, one record
// per line. This format suits log shippers and line-oriented tooling
// that cannot parse a multi-megabyte array.
type NDJSONWriter struct {
	encoder *json.Encoder
}

// NewNDJSONWriter creates an NDJSONWriter that streams to the given
// writer.
func NewNDJSONWriter(output io.Writer) *NDJSONWriter {
	return &NDJSONWriter{encoder: json.NewEncoder(output)}
}

// Emit writes one record followed by a newline.
func (w *NDJSONWriter) Emit(record model.Record) error {
	return w.encoder.Encode(record)
}

// Close is a no-op: NDJSON streams have no terminator.
func (w *NDJSONWriter) Close() error {
	return nil
}
