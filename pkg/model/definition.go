package model

import (
	"fmt"

	"github.com/goliatone/go-schema/pkg/types"
)

// Definition is the compiled, shared schema for a named model: an ordered
// field registry plus options. Build one per model declaration with Define
// and treat it as immutable afterwards.
type Definition struct {
	name    string
	order   []string
	fields  map[string]types.Type
	options Options
}

type declaredField struct {
	name string
	typ  types.Type
}

type builder struct {
	parents   []*Definition
	fields    []declaredField
	roles     map[string]Role
	namespace string
}

// DefineOption contributes a field, an ancestor, or configuration to a
// definition under construction.
type DefineOption func(*builder)

// Field declares a named field of the given type. Redeclaring a name
// overrides an inherited or earlier entry while preserving its position.
func Field(name string, typ types.Type) DefineOption {
	if name == "" {
		panic("model: field name must not be empty")
	}
	if typ == nil {
		panic(fmt.Sprintf("model: field %q requires a type", name))
	}
	return func(b *builder) {
		b.fields = append(b.fields, declaredField{name: name, typ: typ})
	}
}

// Extends merges the parent definition's registry into this one before the
// child's own declarations apply. With several ancestors the one declared
// last is nearest and wins name collisions.
func Extends(parent *Definition) DefineOption {
	if parent == nil {
		panic("model: cannot extend a nil definition")
	}
	return func(b *builder) {
		b.parents = append(b.parents, parent)
	}
}

// WithRoles declares the serialization roles available on the definition.
func WithRoles(roles map[string]Role) DefineOption {
	return func(b *builder) {
		b.roles = cloneRoles(roles)
	}
}

// WithOptions applies a pre-built configuration record, as produced by
// NewOptions. The record's Klass is ignored; it is rebound to the definition
// under construction.
func WithOptions(opts Options) DefineOption {
	return func(b *builder) {
		b.roles = cloneRoles(opts.Roles)
		b.namespace = opts.Namespace
	}
}

// WithNamespace tags the definition with a namespace string.
func WithNamespace(namespace string) DefineOption {
	return func(b *builder) {
		b.namespace = namespace
	}
}

// Define compiles a model declaration into an immutable Definition. Fields
// merge ancestors-first, nearest declaration winning on name collision; a
// collision keeps the original registry position, mirroring how inherited
// attributes shadow.
func Define(name string, options ...DefineOption) *Definition {
	var b builder
	for _, opt := range options {
		opt(&b)
	}

	def := &Definition{
		name:   name,
		fields: make(map[string]types.Type),
	}
	for _, parent := range b.parents {
		for _, fieldName := range parent.order {
			def.set(fieldName, parent.fields[fieldName])
		}
	}
	for _, field := range b.fields {
		def.set(field.name, field.typ)
	}

	def.options = Options{
		Klass:     def,
		Roles:     b.roles,
		Namespace: b.namespace,
	}
	return def
}

func (d *Definition) set(name string, typ types.Type) {
	if _, exists := d.fields[name]; !exists {
		d.order = append(d.order, name)
	}
	d.fields[name] = typ
}

// Name returns the model name the definition was declared with.
func (d *Definition) Name() string {
	return d.name
}

// FieldNames returns the registry's field names in declaration order.
func (d *Definition) FieldNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// FieldType resolves a declared field's type by name.
func (d *Definition) FieldType(name string) (types.Type, bool) {
	typ, ok := d.fields[name]
	return typ, ok
}

// Fields returns a copy of the name-to-type registry.
func (d *Definition) Fields() map[string]types.Type {
	out := make(map[string]types.Type, len(d.fields))
	for name, typ := range d.fields {
		out[name] = typ
	}
	return out
}

// Options returns the definition's configuration record.
func (d *Definition) Options() Options {
	return d.options
}
