package model

import (
	"github.com/goliatone/go-schema/pkg/types"
)

// NestedType embeds a model definition as a field type: raw mappings convert
// into fully validated instances of the wrapped definition.
type NestedType struct {
	types.Base
	def *Definition
}

// Nested builds a model-typed field over the supplied definition.
func Nested(def *Definition, options ...types.Option) *NestedType {
	if def == nil {
		panic("model: nested field requires a definition")
	}
	return &NestedType{Base: types.NewBase(options...), def: def}
}

// Definition exposes the wrapped model definition.
func (t *NestedType) Definition() *Definition {
	return t.def
}

func (t *NestedType) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case *Instance:
		if v.def != t.def {
			return nil, &types.StructureError{Message: "Value belongs to a different model."}
		}
		return v, nil
	case map[string]any:
		inst, err := t.def.New(v)
		if err != nil {
			return nil, &types.StructureError{Message: err.Error()}
		}
		return inst, nil
	default:
		return nil, &types.StructureError{Message: "Please use a mapping for this field."}
	}
}

func (t *NestedType) Validate(value any) error {
	if _, ok := value.(*Instance); !ok {
		return &types.ValidationError{Messages: []string{"Value is not a model instance."}}
	}
	if messages := t.RunChecks(value); len(messages) > 0 {
		return &types.ValidationError{Messages: messages}
	}
	return nil
}
