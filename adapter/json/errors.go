package json

import "errors"

// ErrNilGraph is returned when WriteGraph is called with a nil graph.
var ErrNilGraph = errors.New("json adapter: nil graph")
