// Package model implements the schema core: named definitions with an
// ordered field registry, per-definition options (roles, namespace),
// mutable instances carrying typed field data plus a per-field error map,
// the full/partial validation engine, and role-filtered serialization.
// Definitions are immutable once built and safe to share across goroutines;
// instances are single-owner values with no internal locking.
package model
