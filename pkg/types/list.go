package types

import (
	"errors"
	"fmt"
	"reflect"
)

// ListType wraps an inner field type and converts sequences element by
// element. The required flag governs presence of the collection; MinSize
// governs its length.
type ListType struct {
	Base
	inner Type
}

// List builds a list field over the supplied inner type.
func List(inner Type, options ...Option) *ListType {
	if inner == nil {
		panic("types: list requires an inner type")
	}
	return &ListType{Base: NewBase(options...), inner: inner}
}

// Inner exposes the wrapped element type.
func (t *ListType) Inner() Type {
	return t.inner
}

func (t *ListType) Convert(raw any) (any, error) {
	if raw == nil {
		// An absent collection only violates "required" when a size
		// constraint demands elements; a bare required list tolerates it.
		if _, constrained := t.MinSizeConstraint(); constrained {
			return nil, &RequiredError{}
		}
		return []any{}, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &StructureError{Message: "Please use a list for this field."}
	}

	out := make([]any, 0, rv.Len())
	var messages []string
	structural := false
	for i := 0; i < rv.Len(); i++ {
		element := rv.Index(i).Interface()
		converted, err := t.inner.Convert(element)
		if err == nil {
			err = t.inner.Validate(converted)
		}
		if err != nil {
			var serr *StructureError
			if errors.As(err, &serr) {
				structural = true
			}
			messages = append(messages, fmt.Sprintf("Index %d: %v", i, err))
			continue
		}
		out = append(out, converted)
	}

	if structural {
		return nil, &StructureError{Message: "Invalid sub-structure in list elements."}
	}
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}
	return out, nil
}

func (t *ListType) Validate(value any) error {
	items, ok := value.([]any)
	if !ok {
		return &ValidationError{Messages: []string{"Value is not a list."}}
	}
	if min, constrained := t.MinSizeConstraint(); constrained && len(items) < min {
		return &SizeError{Min: min}
	}
	return t.checkError(value)
}
