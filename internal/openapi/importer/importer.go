package importer

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schema/pkg/model"
	pkgopenapi "github.com/goliatone/go-schema/pkg/openapi"
	"github.com/goliatone/go-schema/pkg/types"
)

// Importer implements pkgopenapi.Importer using kin-openapi.
type Importer struct {
	options pkgopenapi.ImporterOptions
}

var _ pkgopenapi.Importer = (*Importer)(nil)

// New constructs an Importer with the given options.
func New(options pkgopenapi.ImporterOptions) *Importer {
	return &Importer{options: options}
}

// errUnresolved marks a $ref that may be satisfied by a component built in a
// later pass.
var errUnresolved = errors.New("openapi importer: unresolved component reference")

// Definitions converts the document's component object schemas into model
// definitions. Components may reference each other in any order; cycles are
// rejected.
func (i *Importer) Definitions(ctx context.Context, doc pkgopenapi.Document, registry *model.Registry) ([]*model.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = model.NewRegistry()
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi importer: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load document: %w", err)
	}
	if i.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi importer: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi importer: document declares no component schemas")
	}

	names, err := i.selectComponents(spec.Components.Schemas)
	if err != nil {
		return nil, err
	}

	resolve := func(name string) (*model.Definition, bool) {
		return registry.Lookup(name)
	}

	var out []*model.Definition
	remaining := names
	for len(remaining) > 0 {
		var deferred []string
		var blocked error
		for _, name := range remaining {
			def, err := i.buildComponent(name, spec.Components.Schemas[name].Value, resolve)
			if err != nil {
				if errors.Is(err, errUnresolved) {
					deferred = append(deferred, name)
					blocked = err
					continue
				}
				return nil, err
			}
			if err := registry.Register(def); err != nil {
				return nil, err
			}
			out = append(out, def)
		}
		if len(deferred) == len(remaining) {
			return nil, &model.InvalidConfigurationError{Detail: blocked.Error()}
		}
		remaining = deferred
	}
	return out, nil
}

// selectComponents returns the object-typed component names to import, in
// deterministic order.
func (i *Importer) selectComponents(schemas openapi3.Schemas) ([]string, error) {
	if len(i.options.Schemas) > 0 {
		for _, name := range i.options.Schemas {
			ref, ok := schemas[name]
			if !ok || ref.Value == nil {
				return nil, fmt.Errorf("openapi importer: document declares no component schema %q", name)
			}
			if !isObjectSchema(ref.Value) {
				return nil, fmt.Errorf("openapi importer: component %q is not an object schema", name)
			}
		}
		return append([]string(nil), i.options.Schemas...), nil
	}

	var names []string
	for name, ref := range schemas {
		if ref.Value != nil && isObjectSchema(ref.Value) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (i *Importer) buildComponent(name string, schema *openapi3.Schema, resolve func(string) (*model.Definition, bool)) (*model.Definition, error) {
	opts, err := i.defineOptions(name, schema, resolve)
	if err != nil {
		return nil, err
	}
	return model.Define(name, opts...), nil
}

func (i *Importer) defineOptions(name string, schema *openapi3.Schema, resolve func(string) (*model.Definition, bool)) ([]model.DefineOption, error) {
	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, item := range schema.Required {
		requiredSet[item] = struct{}{}
	}

	propNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	var opts []model.DefineOption
	for _, propName := range propNames {
		_, isRequired := requiredSet[propName]
		typ, err := i.fieldType(name, propName, schema.Properties[propName], isRequired, resolve)
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.Field(propName, typ))
	}
	return opts, nil
}

func (i *Importer) fieldType(modelName, fieldName string, ref *openapi3.SchemaRef, required bool, resolve func(string) (*model.Definition, bool)) (types.Type, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi importer: field %q.%q has no schema", modelName, fieldName)
	}

	var options []types.Option
	if required {
		options = append(options, types.Required())
	}
	if ref.Value.Default != nil {
		options = append(options, types.Default(ref.Value.Default))
	}

	// A $ref to another component becomes a model-typed field.
	if component := componentName(ref.Ref); component != "" {
		def, ok := resolve(component)
		if !ok {
			return nil, fmt.Errorf("%w: %q.%q references %q", errUnresolved, modelName, fieldName, component)
		}
		return model.Nested(def, options...), nil
	}

	schema := ref.Value
	switch schemaType(schema) {
	case "string":
		switch schema.Format {
		case "date-time", "date":
			return types.DateTime(options...), nil
		default:
			return types.String(options...), nil
		}
	case "integer":
		return types.Int(options...), nil
	case "number":
		// Whole-valued numerics convert; fractional input is rejected at
		// validation time.
		return types.Int(options...), nil
	case "boolean":
		return types.Bool(options...), nil
	case "array":
		if schema.Items == nil {
			return nil, fmt.Errorf("openapi importer: array field %q.%q missing items", modelName, fieldName)
		}
		if schema.MinItems > 0 {
			options = append(options, types.MinSize(int(schema.MinItems)))
		}
		inner, err := i.fieldType(modelName, fieldName+"Item", schema.Items, false, resolve)
		if err != nil {
			return nil, err
		}
		return types.List(inner, options...), nil
	case "object", "":
		// Inline objects become anonymous nested definitions scoped to the
		// owning model; they are not registered for lookup.
		nestedOpts, err := i.defineOptions(modelName+"."+fieldName, schema, resolve)
		if err != nil {
			return nil, err
		}
		def := model.Define(modelName+"."+fieldName, nestedOpts...)
		return model.Nested(def, options...), nil
	default:
		return nil, fmt.Errorf("openapi importer: field %q.%q has unsupported type %q", modelName, fieldName, schemaType(schema))
	}
}

// isObjectSchema reports whether the component can back a model definition.
// Untyped schemas with properties are treated as objects, matching common
// real-world documents.
func isObjectSchema(schema *openapi3.Schema) bool {
	switch schemaType(schema) {
	case "object":
		return true
	case "":
		return len(schema.Properties) > 0
	default:
		return false
	}
}

func componentName(ref string) string {
	if ref == "" {
		return ""
	}
	return path.Base(ref)
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
