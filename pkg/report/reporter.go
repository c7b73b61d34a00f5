package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/types"
)

const (
	describeTemplate   = "describe"
	validationTemplate = "validation"
)

// Reporter turns definitions and validation outcomes into rendered text.
type Reporter struct {
	engine TemplateRenderer
}

// NewReporter wraps a template engine. The engine must have the report
// templates available (see EmbeddedTemplates).
func NewReporter(engine TemplateRenderer) (*Reporter, error) {
	if engine == nil {
		return nil, errors.New("report: template renderer is required")
	}
	return &Reporter{engine: engine}, nil
}

// Describe renders a field-by-field summary of the definition, including
// declared roles and the fields each one admits.
func (r *Reporter) Describe(def *model.Definition) (string, error) {
	if def == nil {
		return "", errors.New("report: definition is required")
	}
	return r.engine.RenderTemplate(describeTemplate, map[string]any{
		"model": describeData(def),
	})
}

// Validation renders the outcome of a validation run: the model, whether it
// passed, and the per-field messages sorted by field name.
func (r *Reporter) Validation(modelName string, valid bool, fieldErrors map[string][]string) (string, error) {
	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]map[string]any, 0, len(names))
	for _, name := range names {
		entries = append(entries, map[string]any{
			"field":    name,
			"messages": fieldErrors[name],
		})
	}

	return r.engine.RenderTemplate(validationTemplate, map[string]any{
		"model":  modelName,
		"valid":  valid,
		"errors": entries,
	})
}

func describeData(def *model.Definition) map[string]any {
	fields := make([]map[string]any, 0, len(def.FieldNames()))
	for _, name := range def.FieldNames() {
		typ, _ := def.FieldType(name)
		entry := map[string]any{
			"name":     name,
			"type":     TypeName(typ),
			"required": typ.Required(),
		}
		if value, ok := typ.Default(); ok {
			entry["has_default"] = true
			entry["default"] = fmt.Sprint(value)
		}
		fields = append(fields, entry)
	}

	opts := def.Options()
	roleNames := make([]string, 0, len(opts.Roles))
	for name := range opts.Roles {
		roleNames = append(roleNames, name)
	}
	sort.Strings(roleNames)

	roles := make([]map[string]any, 0, len(roleNames))
	for _, name := range roleNames {
		role := opts.Roles[name]
		roles = append(roles, map[string]any{
			"name":   name,
			"fields": allowedFields(def, role),
		})
	}

	return map[string]any{
		"name":      def.Name(),
		"namespace": opts.Namespace,
		"fields":    fields,
		"roles":     roles,
	}
}

// allowedFields reports which declared fields survive the role filter, in
// declaration order.
func allowedFields(def *model.Definition, role model.Role) []string {
	probe := make(map[string]any, len(def.FieldNames()))
	for _, name := range def.FieldNames() {
		probe[name] = nil
	}
	kept := role.Apply(probe)

	out := make([]string, 0, len(kept))
	for _, name := range def.FieldNames() {
		if _, ok := kept[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// TypeName reports a stable human-readable name for a field type.
func TypeName(typ types.Type) string {
	switch t := typ.(type) {
	case *types.StringType:
		return "string"
	case *types.IntType:
		return "int"
	case *types.BoolType:
		return "bool"
	case *types.DateTimeType:
		return "datetime"
	case *types.ListType:
		return "list of " + TypeName(t.Inner())
	case *model.NestedType:
		return "model " + t.Definition().Name()
	default:
		return fmt.Sprintf("%T", typ)
	}
}
