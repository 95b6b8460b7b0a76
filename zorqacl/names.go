package zorqacl

import "sort"

// sortedKeys flattens a name-keyed map into a sorted slice of its keys,
// the way arborist's ListRoleNames/ListResourceNames flatten the engine's
// role and resource maps -- with a deterministic order added on top, since
// nothing in this package's semantics depends on enumeration order but the
// CLI and tests benefit from a stable one.
func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
