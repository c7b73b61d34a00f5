package model

import "fmt"

// Serialize emits every set field as a plain nested mapping: nested
// instances become mappings, lists become slices, scalars pass through.
func (m *Instance) Serialize() map[string]any {
	return m.serialize("")
}

// SerializeRole emits the subset of fields permitted by the named role.
// The role must be declared in the definition's options; requesting an
// unknown role is an InvalidConfigurationError. The role name propagates
// into nested instances that declare it themselves; nested models without
// the role serialize unfiltered.
func (m *Instance) SerializeRole(role string) (map[string]any, error) {
	if _, ok := m.def.options.Role(role); !ok {
		return nil, &InvalidConfigurationError{
			Detail: fmt.Sprintf("model %q declares no role %q", m.def.name, role),
		}
	}
	return m.serialize(role), nil
}

func (m *Instance) serialize(role string) map[string]any {
	out := make(map[string]any, len(m.data))
	for _, name := range m.def.order {
		value, ok := m.data[name]
		if !ok {
			continue
		}
		out[name] = serializeValue(value, role)
	}
	if role == "" {
		return out
	}
	filter, _ := m.def.options.Role(role)
	return filter.Apply(out)
}

func serializeValue(value any, role string) any {
	switch v := value.(type) {
	case *Instance:
		if role != "" {
			if _, ok := v.def.options.Role(role); ok {
				return v.serialize(role)
			}
		}
		return v.serialize("")
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = serializeValue(item, role)
		}
		return out
	default:
		return v
	}
}
