package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"gopkg.in/yaml.v3"

	pkgdeclare "github.com/goliatone/go-schema/pkg/declare"
	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/types"
)

// Parser implements pkgdeclare.Parser over YAML declaration documents.
type Parser struct{}

var _ pkgdeclare.Parser = (*Parser)(nil)

// New constructs a Parser.
func New() *Parser {
	return &Parser{}
}

type document struct {
	Models []modelDecl `yaml:"models"`
}

type modelDecl struct {
	Name      string              `yaml:"name"`
	Namespace string              `yaml:"namespace"`
	Extends   string              `yaml:"extends"`
	Roles     map[string]roleDecl `yaml:"roles"`
	Fields    []fieldDecl         `yaml:"fields"`
}

type roleDecl struct {
	Whitelist []string `yaml:"whitelist"`
	Blacklist []string `yaml:"blacklist"`
}

type fieldDecl struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Required  bool       `yaml:"required"`
	Default   any        `yaml:"default"`
	MinSize   *int       `yaml:"min_size"`
	Sanitized bool       `yaml:"sanitized"`
	Check     string     `yaml:"check"`
	Of        *fieldDecl `yaml:"of"`
	Model     string     `yaml:"model"`
}

// errUnresolved marks a model reference that may still be satisfied by a
// declaration later in the document.
var errUnresolved = errors.New("declare parser: unresolved model reference")

// Definitions compiles the document into definitions, registering each so
// later declarations (and later documents) can reference them by name.
// Model references may point forward within the same document; cycles are
// rejected.
func (p *Parser) Definitions(ctx context.Context, doc pkgdeclare.Document, registry *model.Registry) ([]*model.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = model.NewRegistry()
	}
	if len(doc.Raw()) == 0 {
		return nil, errors.New("declare parser: document payload is empty")
	}

	dec := yaml.NewDecoder(bytes.NewReader(doc.Raw()))
	dec.KnownFields(true)
	var root document
	if err := dec.Decode(&root); err != nil {
		return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("parse %s: %v", location(doc), err)}
	}
	if len(root.Models) == 0 {
		return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("%s declares no models", location(doc))}
	}

	resolve := func(name string) (*model.Definition, bool) {
		return registry.Lookup(name)
	}

	var out []*model.Definition
	remaining := root.Models
	for len(remaining) > 0 {
		var deferred []modelDecl
		var blocked error
		for _, decl := range remaining {
			def, err := p.buildModel(decl, resolve)
			if err != nil {
				if errors.Is(err, errUnresolved) {
					deferred = append(deferred, decl)
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

func (p *Parser) buildModel(decl modelDecl, resolve func(string) (*model.Definition, bool)) (*model.Definition, error) {
	if decl.Name == "" {
		return nil, &model.InvalidConfigurationError{Detail: "model declaration without a name"}
	}

	var opts []model.DefineOption
	if decl.Extends != "" {
		parent, ok := resolve(decl.Extends)
		if !ok {
			return nil, fmt.Errorf("%w: %q extends %q", errUnresolved, decl.Name, decl.Extends)
		}
		opts = append(opts, model.Extends(parent))
	}

	for _, field := range decl.Fields {
		if field.Name == "" {
			return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("model %q declares a field without a name", decl.Name)}
		}
		typ, err := p.buildType(decl.Name, field, resolve)
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.Field(field.Name, typ))
	}

	config := map[string]any{}
	if decl.Roles != nil {
		roles := make(map[string]model.Role, len(decl.Roles))
		for name, role := range decl.Roles {
			built, err := buildRole(decl.Name, name, role)
			if err != nil {
				return nil, err
			}
			roles[name] = built
		}
		config["roles"] = roles
	}
	if decl.Namespace != "" {
		config["namespace"] = decl.Namespace
	}
	if len(config) > 0 {
		record, err := model.NewOptions(nil, config)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", decl.Name, err)
		}
		opts = append(opts, model.WithOptions(record))
	}

	return model.Define(decl.Name, opts...), nil
}

func (p *Parser) buildType(modelName string, decl fieldDecl, resolve func(string) (*model.Definition, bool)) (types.Type, error) {
	options, err := fieldOptions(modelName, decl)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(decl.Type) {
	case "string", "text":
		return types.String(options...), nil
	case "int", "integer":
		return types.Int(options...), nil
	case "bool", "boolean":
		return types.Bool(options...), nil
	case "datetime", "date-time":
		return types.DateTime(options...), nil
	case "list":
		if decl.Of == nil {
			return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("list field %q.%q requires an 'of' element type", modelName, decl.Name)}
		}
		inner, err := p.buildType(modelName, *decl.Of, resolve)
		if err != nil {
			return nil, err
		}
		return types.List(inner, options...), nil
	case "model":
		if decl.Model == "" {
			return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("model field %q.%q requires a 'model' reference", modelName, decl.Name)}
		}
		def, ok := resolve(decl.Model)
		if !ok {
			return nil, fmt.Errorf("%w: %q.%q references %q", errUnresolved, modelName, decl.Name, decl.Model)
		}
		return model.Nested(def, options...), nil
	default:
		return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("field %q.%q has unknown type %q", modelName, decl.Name, decl.Type)}
	}
}

func fieldOptions(modelName string, decl fieldDecl) ([]types.Option, error) {
	var options []types.Option
	if decl.Required {
		options = append(options, types.Required())
	}
	if decl.Default != nil {
		options = append(options, types.Default(decl.Default))
	}
	if decl.MinSize != nil {
		options = append(options, types.MinSize(*decl.MinSize))
	}
	if decl.Sanitized {
		options = append(options, types.Sanitized())
	}
	if decl.Check != "" {
		// Pre-compile so a malformed rule surfaces as a configuration error
		// instead of the declaration-time panic used by the typed API.
		if _, err := expr.Compile(decl.Check, expr.AllowUndefinedVariables()); err != nil {
			return nil, &model.InvalidConfigurationError{Detail: fmt.Sprintf("field %q.%q check %q: %v", modelName, decl.Name, decl.Check, err)}
		}
		options = append(options, types.Check(decl.Check))
	}
	return options, nil
}

func buildRole(modelName, roleName string, decl roleDecl) (model.Role, error) {
	switch {
	case len(decl.Whitelist) > 0 && len(decl.Blacklist) > 0:
		return model.Role{}, &model.InvalidConfigurationError{Detail: fmt.Sprintf("role %q on %q mixes whitelist and blacklist", roleName, modelName)}
	case len(decl.Whitelist) > 0:
		return model.Whitelist(decl.Whitelist...), nil
	case len(decl.Blacklist) > 0:
		return model.Blacklist(decl.Blacklist...), nil
	default:
		return model.Role{}, &model.InvalidConfigurationError{Detail: fmt.Sprintf("role %q on %q declares no field names", roleName, modelName)}
	}
}

func location(doc pkgdeclare.Document) string {
	if loc := doc.Location(); loc != "" {
		return loc
	}
	return "declaration document"
}
