// Package declare defines the contracts for loading declarative model
// definitions from YAML documents: a Source identifies where a declaration
// document lives (file, fs.FS, or raw bytes), a Loader fetches it, and a
// Parser compiles it into model definitions registered for cross-reference.
// Implementations live under internal/declare; constructors are exposed on
// the module root.
package declare
