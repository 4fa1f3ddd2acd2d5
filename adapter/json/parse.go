package json

import (
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/layerflow-org/lff/graphmodel"
)

// ReadGraph parses data into a [graphmodel.Graph].
//
// Unless [WithStrictJSON] was set, data is first preprocessed with
// jsonc to strip comments and trailing commas. The result is handed to
// [graphmodel.FromJSON] as-is; it is not re-validated against graph
// invariants — call [graphmodel.Graph.Validate] afterward if data
// originates from an untrusted source.
func (a *Adapter) ReadGraph(data []byte, opts ...graphmodel.GraphOption) (*graphmodel.Graph, error) {
	input := data
	if !a.strictJSON {
		input = jsonc.ToJSON(data)
	}

	g, err := graphmodel.FromJSON(input, opts...)
	if err != nil {
		return nil, fmt.Errorf("json adapter: parse graph snapshot: %w", err)
	}
	return g, nil
}
