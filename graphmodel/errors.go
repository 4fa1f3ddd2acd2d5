// Package graphmodel is the in-memory Graph AST: the external graph
// collaborator library LFF's pipeline builds on and returns to callers
// (§6.2, §3.4). It knows nothing about LFF source syntax; it is a plain
// node/edge/layer store with hierarchy, level, and search operations.
package graphmodel

import (
	"errors"
	"fmt"
)

// Error sentinels for internal graph failures: programmer errors or
// internal faults, not data issues. Data issues are reported via
// diag.Result, not error returns.
var (
	// ErrInternal is the base error for internal graph failures.
	ErrInternal = errors.New("internal graph failure")

	// ErrNilGraph indicates a method was called on a nil *Graph receiver.
	ErrNilGraph = fmt.Errorf("%w: nil *Graph receiver", ErrInternal)
)
