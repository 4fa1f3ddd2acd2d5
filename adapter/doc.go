// Package adapter provides format-specific snapshot adapters for
// [graphmodel.Graph]. Each adapter subpackage handles a specific data
// format (JSON today) and may carry its own external dependencies.
//
// # Architectural Boundary
//
// Adapters live at the outermost tier of the module. This design provides:
//
//   - Dependency hygiene via import granularity: consumers who import
//     only graphmodel do not transitively depend on tidwall/jsonc.
//     Adapter dependencies are pulled only when adapter/json is imported.
//
//   - Clear library/consumer boundary: the adapter package explicitly
//     imports the library to use it, mirroring how downstream consumers
//     structure their own adapters.
//
//   - Extensibility signal: users see adapter/json and understand they
//     can create adapter/myformat using the same pattern.
//
// # Dependency Direction
//
// Adapters depend on library packages; library packages never depend on adapters:
//
//	adapter/json  ──imports──▶  graphmodel
//
// # Layering Discipline
//
// The adapter package does not import internal/* packages. This maintains a
// clean separation between core library internals and the adapter layer.
//
// # Subpackages
//
//   - [json]: comment-tolerant JSON graph snapshot adapter
package adapter
