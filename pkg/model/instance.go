package model

import (
	"encoding/json"
	"reflect"
	"time"
)

// Instance holds the concrete field values of one logical record plus the
// per-field error state left by the most recent validation pass. Fields
// without a stored value are absent from the data store, not nil.
type Instance struct {
	def    *Definition
	data   map[string]any
	errors map[string][]string
}

// New constructs an instance of the definition from raw field values.
// Unknown keys are dropped silently. Defaults populate the data store before
// required-field enforcement runs; if any required field still has no value
// the constructor fails with a MissingFieldsError naming every offender.
// Enforcement only triggers when values were supplied: an empty constructor
// yields a blank instance to be populated through Validate.
func (d *Definition) New(values map[string]any) (*Instance, error) {
	inst := &Instance{
		def:    d,
		data:   make(map[string]any),
		errors: make(map[string][]string),
	}

	for _, name := range d.order {
		typ := d.fields[name]

		raw, supplied := values[name]
		if !supplied {
			// Defaults run through the same convert+validate path so the
			// data store only ever holds typed values.
			if def, ok := typ.Default(); ok {
				inst.apply(name, def)
			}
			continue
		}
		inst.apply(name, raw)
	}

	if len(values) == 0 {
		return inst, nil
	}

	var missing []string
	for _, name := range d.order {
		typ := d.fields[name]
		if !typ.Required() {
			continue
		}
		if _, ok := inst.data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Model: d.name, Fields: missing}
	}
	return inst, nil
}

// MustNew is New for declaration-time construction; it panics on error.
func (d *Definition) MustNew(values map[string]any) *Instance {
	inst, err := d.New(values)
	if err != nil {
		panic(err)
	}
	return inst
}

// apply converts and validates one raw value, storing it on success and
// recording messages on failure. A failure never disturbs an existing
// stored value for the field.
func (m *Instance) apply(name string, raw any) bool {
	typ := m.def.fields[name]
	converted, err := typ.Convert(raw)
	if err == nil {
		err = typ.Validate(converted)
	}
	if err != nil {
		m.errors[name] = messagesOf(err)
		return false
	}
	m.data[name] = converted
	delete(m.errors, name)
	return true
}

// Definition returns the shared definition the instance was built from.
func (m *Instance) Definition() *Definition {
	return m.def
}

// Get returns the stored value for a field and whether one is set.
func (m *Instance) Get(name string) (any, bool) {
	value, ok := m.data[name]
	return value, ok
}

// Value is the fail-fast read: it distinguishes a declared-but-unset field
// (NotSetError) from an unknown one (InvalidConfigurationError).
func (m *Instance) Value(name string) (any, error) {
	if _, declared := m.def.fields[name]; !declared {
		return nil, &InvalidConfigurationError{Detail: "unknown field " + name}
	}
	value, ok := m.data[name]
	if !ok {
		return nil, &NotSetError{Model: m.def.name, Field: name}
	}
	return value, nil
}

// MustGet returns the stored value or panics when the field is unset,
// mirroring attribute access on the legacy surface.
func (m *Instance) MustGet(name string) any {
	value, err := m.Value(name)
	if err != nil {
		panic(err)
	}
	return value
}

// Has reports whether the field currently holds a stored value, not whether
// it is merely declared.
func (m *Instance) Has(name string) bool {
	_, ok := m.data[name]
	return ok
}

// Set converts and validates a single value, storing it on success. It
// reports whether the value was accepted; failures land in Errors.
func (m *Instance) Set(name string, raw any) bool {
	if _, declared := m.def.fields[name]; !declared {
		return false
	}
	return m.apply(name, raw)
}

// Data returns a copy of the instance's field-name-to-value store.
func (m *Instance) Data() map[string]any {
	out := make(map[string]any, len(m.data))
	for name, value := range m.data {
		out[name] = value
	}
	return out
}

// Errors returns a copy of the per-field error messages recorded by the
// most recent validation activity.
func (m *Instance) Errors() map[string][]string {
	out := make(map[string][]string, len(m.errors))
	for name, messages := range m.errors {
		copied := make([]string, len(messages))
		copy(copied, messages)
		out[name] = copied
	}
	return out
}

// FieldErrors returns the recorded messages for one field.
func (m *Instance) FieldErrors(name string) []string {
	messages := m.errors[name]
	out := make([]string, len(messages))
	copy(out, messages)
	return out
}

// Copy returns an independent instance with the same data. Error state is
// not carried over; equality ignores it anyway.
func (m *Instance) Copy() *Instance {
	out := &Instance{
		def:    m.def,
		data:   make(map[string]any, len(m.data)),
		errors: make(map[string][]string),
	}
	for name, value := range m.data {
		out.data[name] = value
	}
	return out
}

// Equal reports structural equality: both instances hold the same fields
// with equal values, recursing through nested instances and lists. Error
// state and construction path are irrelevant.
func (m *Instance) Equal(other *Instance) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.data) != len(other.data) {
		return false
	}
	for name, value := range m.data {
		otherValue, ok := other.data[name]
		if !ok || !equalValue(value, otherValue) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	switch av := a.(type) {
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// MarshalJSON emits the unfiltered serialization of the instance.
func (m *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Serialize())
}
