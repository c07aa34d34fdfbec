package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONLWriter streams records as one JSON object per line. This is the wire
// form handed to the aggregation collaborator.
type JSONLWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLWriter wraps a writer. The caller owns closing the underlying
// stream.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w)}
}

// Emit writes the record as a single line.
func (j *JSONLWriter) Emit(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Tee fans one emission out to several emitters in order, stopping at the
// first failure.
type Tee []Emitter

// Emit forwards the record to every emitter.
func (t Tee) Emit(ctx context.Context, rec Record) error {
	for _, emitter := range t {
		if err := emitter.Emit(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
