package model

import (
	"github.com/goliatone/go-schema/pkg/types"
)

// Validate runs a full validation pass: every declared field is evaluated,
// required fields with no supplied value, no current value, and no default
// are reported missing. It returns true when no field produced an error.
func (m *Instance) Validate(data map[string]any) bool {
	return m.validate(data, false)
}

// ValidatePartial evaluates only the fields present in data; absent fields
// are neither reported, defaulted, nor touched.
func (m *Instance) ValidatePartial(data map[string]any) bool {
	return m.validate(data, true)
}

// validate walks the registry in declaration order. Successful fields
// update the data store; failed fields record messages and leave any prior
// valid value untouched. A full pass replaces the whole error map, a
// partial pass only the entries for fields it evaluated.
func (m *Instance) validate(data map[string]any, partial bool) bool {
	if !partial {
		m.errors = make(map[string][]string)
	}

	valid := true
	for _, name := range m.def.order {
		typ := m.def.fields[name]

		raw, supplied := data[name]
		if !supplied {
			if partial {
				continue
			}
			if m.Has(name) {
				// Current value already passed convert+validate.
				continue
			}
			if def, ok := typ.Default(); ok {
				raw = def
			} else {
				if typ.Required() {
					m.errors[name] = []string{types.MsgRequired}
					valid = false
				}
				continue
			}
		} else if partial {
			delete(m.errors, name)
		}

		if !m.apply(name, raw) {
			valid = false
		}
	}
	return valid
}

func messagesOf(err error) []string {
	return types.Messages(err)
}
