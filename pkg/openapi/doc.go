// Package openapi exposes the public contracts for importing OpenAPI 3
// component schemas as model definitions: a Source/Loader pair fetches the
// document, an Importer compiles its object schemas into definitions.
// Implementations live under internal/openapi to keep kin-openapi hidden
// from consumers.
package openapi
