package model

import "fmt"

// Options is the per-definition configuration record. Klass points back at
// the owning definition (nil for a bare options value), Roles maps role
// names to filters, Namespace is an opaque grouping tag.
type Options struct {
	Klass     *Definition
	Roles     map[string]Role
	Namespace string
}

// NewOptions builds an Options record from a loose key/value configuration
// block; the declaration parser assembles one per model and hands the result
// to Define via WithOptions. Only the keys "klass", "roles" and "namespace"
// are recognized; anything else is an InvalidConfigurationError. Nil values
// leave the corresponding option unset.
func NewOptions(klass *Definition, raw map[string]any) (Options, error) {
	opts := Options{Klass: klass}
	for key, value := range raw {
		switch key {
		case "klass":
			if value == nil {
				continue
			}
			def, ok := value.(*Definition)
			if !ok {
				return Options{}, &InvalidConfigurationError{Detail: fmt.Sprintf("option klass wants a *Definition, got %T", value)}
			}
			opts.Klass = def
		case "roles":
			if value == nil {
				continue
			}
			roles, ok := value.(map[string]Role)
			if !ok {
				return Options{}, &InvalidConfigurationError{Detail: fmt.Sprintf("option roles wants map[string]Role, got %T", value)}
			}
			opts.Roles = cloneRoles(roles)
		case "namespace":
			if value == nil {
				continue
			}
			ns, ok := value.(string)
			if !ok {
				return Options{}, &InvalidConfigurationError{Detail: fmt.Sprintf("option namespace wants a string, got %T", value)}
			}
			opts.Namespace = ns
		default:
			return Options{}, &InvalidConfigurationError{Detail: fmt.Sprintf("unrecognized option key %q", key)}
		}
	}
	return opts, nil
}

// Role resolves a declared role by name.
func (o Options) Role(name string) (Role, bool) {
	role, ok := o.Roles[name]
	return role, ok
}

func cloneRoles(roles map[string]Role) map[string]Role {
	if roles == nil {
		return nil
	}
	out := make(map[string]Role, len(roles))
	for name, role := range roles {
		out[name] = role
	}
	return out
}
