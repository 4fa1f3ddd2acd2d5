// Package validate runs the three-phase semantic validator (§4.4) over an
// [ast.Document]: structural checks local to each node/edge/directive,
// hierarchy acyclicity and cross-directive checks, and finally anchor
// cross-reference resolution. Every phase runs regardless of earlier
// failures — [Validate] always produces a complete Result rather than
// stopping at the first problem.
package validate
