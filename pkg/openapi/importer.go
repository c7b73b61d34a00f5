package openapi

import (
	"context"

	"github.com/goliatone/go-schema/pkg/model"
)

// Importer compiles the object schemas under an OpenAPI document's
// components section into model definitions, registering each so schemas
// can reference one another by component name.
type Importer interface {
	Definitions(ctx context.Context, doc Document, registry *model.Registry) ([]*model.Definition, error)
}

// ImporterOptions exposes the importer toggles.
type ImporterOptions struct {
	// ResolveReferences controls whether the importer eagerly validates and
	// resolves $ref pointers. Defaults to true.
	ResolveReferences bool

	// Schemas restricts the import to the named components. Empty imports
	// every object schema in the document.
	Schemas []string
}

// ImporterOption mutates ImporterOptions during construction.
type ImporterOption func(*ImporterOptions)

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithSchemas restricts the import to the named component schemas.
func WithSchemas(names ...string) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.Schemas = append(opts.Schemas, names...)
	}
}

// NewImporterOptions applies ImporterOption functions and returns the
// resulting configuration.
func NewImporterOptions(options ...ImporterOption) ImporterOptions {
	cfg := ImporterOptions{ResolveReferences: true}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
