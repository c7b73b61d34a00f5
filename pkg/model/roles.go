package model

type roleMode int

const (
	roleWhitelist roleMode = iota
	roleBlacklist
)

// Role filters a full field-name-to-value mapping down to the subset a
// serialization consumer may see. Roles are small values and safe to share.
type Role struct {
	mode  roleMode
	names map[string]struct{}
}

// Whitelist builds a role that emits only the named fields.
func Whitelist(names ...string) Role {
	return Role{mode: roleWhitelist, names: nameSet(names)}
}

// Blacklist builds a role that emits everything except the named fields.
func Blacklist(names ...string) Role {
	return Role{mode: roleBlacklist, names: nameSet(names)}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Apply returns the filtered subset of data permitted by the role. The
// input mapping is never mutated.
func (r Role) Apply(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for name, value := range data {
		if r.allows(name) {
			out[name] = value
		}
	}
	return out
}

func (r Role) allows(name string) bool {
	_, listed := r.names[name]
	if r.mode == roleWhitelist {
		return listed
	}
	return !listed
}
