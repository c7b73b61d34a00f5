package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-schema/pkg/declare"
	"github.com/goliatone/go-schema/pkg/model"
	pkgopenapi "github.com/goliatone/go-schema/pkg/openapi"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithRegistry injects a shared definition registry. Useful when several
// engines or hand-built definitions must resolve against the same names.
func WithRegistry(registry *model.Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithDeclarationLoader injects a custom declaration document loader.
func WithDeclarationLoader(loader declare.Loader) Option {
	return func(e *Engine) {
		e.declLoader = loader
	}
}

// WithDeclarationParser injects a custom declaration parser.
func WithDeclarationParser(parser declare.Parser) Option {
	return func(e *Engine) {
		e.declParser = parser
	}
}

// WithOpenAPILoader injects a custom OpenAPI document loader.
func WithOpenAPILoader(loader pkgopenapi.Loader) Option {
	return func(e *Engine) {
		e.apiLoader = loader
	}
}

// WithImporter injects a custom OpenAPI schema importer.
func WithImporter(importer pkgopenapi.Importer) Option {
	return func(e *Engine) {
		e.importer = importer
	}
}

// Engine coordinates the full pipeline from definition source to validated
// instance. It applies sensible defaults (filesystem loaders, the YAML
// parser, the kin-openapi importer) while remaining open to dependency
// injection for advanced callers.
type Engine struct {
	registry   *model.Registry
	declLoader declare.Loader
	declParser declare.Parser
	apiLoader  pkgopenapi.Loader
	importer   pkgopenapi.Importer
}

// New constructs an Engine applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.registry == nil {
		e.registry = model.NewRegistry()
	}
	if e.declLoader == nil {
		e.declLoader = NewDeclarationLoader()
	}
	if e.declParser == nil {
		e.declParser = NewDeclarationParser()
	}
	if e.apiLoader == nil {
		e.apiLoader = NewOpenAPILoader()
	}
	if e.importer == nil {
		e.importer = NewImporter()
	}
	return e
}

// Registry returns the engine's definition registry.
func (e *Engine) Registry() *model.Registry {
	return e.registry
}

// Definition looks up a registered definition by name.
func (e *Engine) Definition(name string) (*model.Definition, bool) {
	return e.registry.Lookup(name)
}

// LoadDeclarations loads and parses each declaration source in order,
// registering every definition it produces. Later sources may reference
// models declared by earlier ones.
func (e *Engine) LoadDeclarations(ctx context.Context, sources ...declare.Source) ([]*model.Definition, error) {
	if ctx == nil {
		return nil, errors.New("schema: context is required")
	}

	var out []*model.Definition
	for _, src := range sources {
		doc, err := e.declLoader.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("schema: load declarations: %w", err)
		}
		defs, err := e.declParser.Definitions(ctx, doc, e.registry)
		if err != nil {
			return nil, fmt.Errorf("schema: parse declarations %q: %w", doc.Location(), err)
		}
		out = append(out, defs...)
	}
	return out, nil
}

// ImportOpenAPI loads each OpenAPI document and imports its component
// schemas as model definitions.
func (e *Engine) ImportOpenAPI(ctx context.Context, sources ...pkgopenapi.Source) ([]*model.Definition, error) {
	if ctx == nil {
		return nil, errors.New("schema: context is required")
	}

	var out []*model.Definition
	for _, src := range sources {
		doc, err := e.apiLoader.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("schema: load openapi document: %w", err)
		}
		defs, err := e.importer.Definitions(ctx, doc, e.registry)
		if err != nil {
			return nil, fmt.Errorf("schema: import %q: %w", doc.Location(), err)
		}
		out = append(out, defs...)
	}
	return out, nil
}

// Request describes one validation run against a registered model.
type Request struct {
	// Model names the registered definition to validate against.
	Model string

	// Input carries the raw field values.
	Input map[string]any

	// Partial restricts the pass to the supplied fields; absent fields are
	// neither defaulted nor reported missing.
	Partial bool

	// Role names the serialization role to filter the output with. Empty
	// emits the unfiltered serialization.
	Role string
}

// Result reports the outcome of a validation run.
type Result struct {
	// Valid is true when no field produced an error.
	Valid bool

	// Errors maps field names to their validation messages.
	Errors map[string][]string

	// Output is the role-filtered serialization of the validated data. It
	// is populated only for valid runs.
	Output map[string]any
}

// Validate executes a validation run: it builds an instance of the named
// model, runs a full or partial pass over the input, and serializes the
// result through the requested role. Validation failures are reported in
// the Result, not as an error; the error return covers configuration
// problems such as unknown models or roles.
func (e *Engine) Validate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("schema: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.Model == "" {
		return Result{}, errors.New("schema: model name is required")
	}

	def, ok := e.registry.Lookup(req.Model)
	if !ok {
		return Result{}, &model.InvalidConfigurationError{Detail: "unknown model " + req.Model}
	}

	inst, err := def.New(nil)
	if err != nil {
		return Result{}, err
	}

	var valid bool
	if req.Partial {
		valid = inst.ValidatePartial(req.Input)
	} else {
		valid = inst.Validate(req.Input)
	}

	result := Result{Valid: valid, Errors: inst.Errors()}
	if !valid {
		return result, nil
	}

	if req.Role == "" {
		result.Output = inst.Serialize()
		return result, nil
	}
	output, err := inst.SerializeRole(req.Role)
	if err != nil {
		return Result{}, err
	}
	result.Output = output
	return result, nil
}
