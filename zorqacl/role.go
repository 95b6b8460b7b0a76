package zorqacl

// AddRole registers a new role with the given parents. Parents must already
// be registered. The parent list is stored in reverse declaration order, so
// that lineage iteration below visits the last-declared parent first -- the
// LIFO rule multiple inheritance relies on.
func (a *Acl) AddRole(name string, parents []string) error {
	a.logger.Trace("adding role %s with parents %v", name, parents)
	if _, exists := a.roles[name]; exists {
		a.logger.Warn("adding duplicate role: %s", name)
		return &DuplicateRoleError{Name: name}
	}
	for _, parent := range parents {
		if _, ok := a.roles[parent]; !ok {
			a.logger.Warn("missing parent for new role: %s", parent)
			return &MissingParentError{Name: parent}
		}
	}
	reversed := make([]string, len(parents))
	for i, parent := range parents {
		reversed[len(parents)-1-i] = parent
	}
	a.roles[name] = reversed
	return nil
}

// HasRole reports whether name is registered.
func (a *Acl) HasRole(name string) bool {
	_, ok := a.roles[name]
	return ok
}

// GetRoleParents returns the role's parents in the stored (reversed) order.
func (a *Acl) GetRoleParents(name string) ([]string, error) {
	a.logger.Trace("getting role parents for: %s", name)
	parents, ok := a.roles[name]
	if !ok {
		a.logger.Warn("missing role while getting parents: %s", name)
		return nil, &MissingRoleError{Name: name}
	}
	out := make([]string, len(parents))
	copy(out, parents)
	return out, nil
}

// GetRoleLineage returns [name, ancestor1, ...] in depth-first pre-order
// over the (reversed) parent lists, each ancestor appearing at most once.
// An unregistered name yields an empty slice.
func (a *Acl) GetRoleLineage(name string) []string {
	a.logger.Trace("getting role lineage for: %s", name)
	parents, ok := a.roles[name]
	if !ok {
		return []string{}
	}
	lineage := []string{name}
	if len(parents) > 0 {
		seen := make(map[string]struct{})
		a.walkRoleLineage(parents, seen, &lineage)
	}
	return lineage
}

func (a *Acl) walkRoleLineage(parents []string, seen map[string]struct{}, lineage *[]string) {
	for _, parent := range parents {
		if _, visited := seen[parent]; !visited {
			seen[parent] = struct{}{}
			*lineage = append(*lineage, parent)
		}
		if grandparents, ok := a.roles[parent]; ok && len(grandparents) > 0 {
			a.walkRoleLineage(grandparents, seen, lineage)
		}
	}
}

// GetRoleAncestors returns GetRoleLineage(name) without the leading
// element.
func (a *Acl) GetRoleAncestors(name string) []string {
	lineage := a.GetRoleLineage(name)
	if len(lineage) > 1 {
		return lineage[1:]
	}
	return []string{}
}
