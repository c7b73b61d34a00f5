// Package schema turns declarative model definitions into validated, typed
// data. Definitions arrive from YAML declaration documents or OpenAPI
// component schemas, register in a shared registry, and back instances that
// convert raw input, report per-field errors, and serialize through roles.
//
// The Engine wires the pipeline together for callers that want a single
// entry point; the pkg/model and pkg/types packages expose the primitives
// for programmatic definition.
package schema
