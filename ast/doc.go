// Package ast lowers a LayerFlow Format concrete syntax tree into the LFF
// AST: a flat [Document] of [NodeDef], [EdgeDef], and [DirectiveDef] values,
// independent of how deeply any of them were nested in the source.
//
// Lowering resolves everything the grammar alone cannot: quoted-string
// unescaping, anchor and level-spec format validation, arrow-symbol
// mapping, value typing, and directive/edge promotion to the document's
// top level. It does not resolve anchor references, check hierarchy
// cycles, or assign node IDs — those are the validator's and the graph
// lowerer's jobs, run against the [Document] this package produces.
package ast
