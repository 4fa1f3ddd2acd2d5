// Package json provides a comment-tolerant JSON snapshot adapter for
// [graphmodel.Graph], used to read and write graph snapshots authored or
// edited by hand (alongside tool-generated output where comments are
// never present).
//
// # Reading
//
// [Adapter.ReadGraph] accepts a superset of strict JSON: by default it
// preprocesses input with [tidwall/jsonc] to strip `//` and `/* */`
// comments and trailing commas before handing the result to
// [graphmodel.FromJSON]. Use [WithStrictJSON] to disable preprocessing
// and require strict RFC 8259 JSON instead.
//
// # Writing
//
// [Adapter.WriteGraph] renders a graph to JSON via [graphmodel.Graph.ToJSON],
// then re-indents the result when [WithIndent] specifies a non-empty
// indent string. Snapshots written by this adapter are always strict
// JSON; comments are a read-time convenience only, never an output
// format.
//
// # jsonc Invariant
//
// The adapter relies on jsonc.ToJSON preserving exact input length
// during preprocessing, so that diagnostics produced by the downstream
// parse (via [graphmodel.FromJSON]'s encoding/json errors) still point
// at plausible source offsets:
//
//   - len(jsonc.ToJSON(input)) == len(input) — always true
//   - byte offset N in preprocessed output maps to byte offset N in the
//     original snapshot
//
// # Dependencies
//
// This package imports github.com/tidwall/jsonc unconditionally.
// [WithStrictJSON] controls runtime behavior, not module dependencies:
// consumers of this package always carry jsonc in their dependency
// graph, even when every call site disables preprocessing.
//
// [tidwall/jsonc]: https://github.com/tidwall/jsonc
package json
