package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/layerflow-org/lff/graphmodel"
)

// WriteOption configures serialization behavior for WriteGraph.
type WriteOption func(*writeConfig)

// writeConfig holds configuration for JSON serialization.
type writeConfig struct {
	indent string
}

// WithIndent sets the indentation string for pretty-printing.
// Use "" for compact output (default), "\t" for tab indentation,
// or "  " (two spaces) for space indentation.
func WithIndent(indent string) WriteOption {
	return func(c *writeConfig) {
		c.indent = indent
	}
}

// MarshalGraph serializes g to JSON bytes via [graphmodel.Graph.ToJSON],
// re-indented per [WithIndent].
//
// Returns [ErrNilGraph] if g is nil.
func (a *Adapter) MarshalGraph(g *graphmodel.Graph, opts ...WriteOption) ([]byte, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	cfg := &writeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	data, err := g.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("json adapter: marshal graph snapshot: %w", err)
	}

	if cfg.indent == "" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", cfg.indent); err != nil {
		return nil, fmt.Errorf("json adapter: indent graph snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g to w in JSON snapshot form. See [MarshalGraph] for
// output format details.
//
// Returns the number of bytes written and [ErrNilGraph] if g is nil.
// Returns io.ErrShortWrite if the writer accepts fewer bytes than provided.
func (a *Adapter) WriteGraph(w io.Writer, g *graphmodel.Graph, opts ...WriteOption) (int64, error) {
	data, err := a.MarshalGraph(g, opts...)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err == nil && n < len(data) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), err
}
