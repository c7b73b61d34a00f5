package declare

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-schema/pkg/model"
)

// Loader fetches declaration documents from different sources (filesystem,
// fs.FS, in-memory bytes). Implementations live under internal/declare but
// satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser compiles a declaration document into model definitions. Nested
// model references resolve against definitions in the same document and any
// already present in the registry; the parser registers what it builds.
type Parser interface {
	Definitions(ctx context.Context, doc Document, registry *model.Registry) ([]*model.Definition, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading fs-kind sources; nil disables them.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs-kind sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
