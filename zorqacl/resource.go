package zorqacl

// AddResource registers a new resource with an optional parent. The parent,
// if given, must already be registered. Resources form a forest: each has
// at most one parent, and cycles are impossible because a parent must
// exist before its child is added.
func (a *Acl) AddResource(name string, parent OptionalString) error {
	a.logger.Trace("adding resource %s with parent %s", name, parent)
	if _, exists := a.resources[name]; exists {
		a.logger.Warn("adding duplicate resource: %s", name)
		return &DuplicateResourceError{Name: name}
	}
	if parentName, ok := parent.Get(); ok {
		if _, exists := a.resources[parentName]; !exists {
			a.logger.Warn("missing parent for new resource: %s", parentName)
			return &MissingParentError{Name: parentName}
		}
	}
	a.resources[name] = parent
	return nil
}

// HasResource reports whether name is registered.
func (a *Acl) HasResource(name string) bool {
	_, ok := a.resources[name]
	return ok
}

// GetResourceParent returns the resource's parent, or the wildcard if it is
// a root.
func (a *Acl) GetResourceParent(name string) (OptionalString, error) {
	a.logger.Trace("getting resource parent for: %s", name)
	parent, ok := a.resources[name]
	if !ok {
		a.logger.Warn("missing resource while getting parent: %s", name)
		return Wildcard(), &MissingResourceError{Name: name}
	}
	return parent, nil
}

// GetResourceLineage returns [name, parent, grandparent, ...] terminating
// at a root. An unregistered name yields an empty slice.
func (a *Acl) GetResourceLineage(name string) []string {
	a.logger.Trace("getting resource lineage for: %s", name)
	parent, ok := a.resources[name]
	if !ok {
		return []string{}
	}
	lineage := []string{name}
	for {
		parentName, ok := parent.Get()
		if !ok {
			break
		}
		lineage = append(lineage, parentName)
		parent = a.resources[parentName]
	}
	return lineage
}

// GetResourceAncestors returns GetResourceLineage(name) without the leading
// element.
func (a *Acl) GetResourceAncestors(name string) []string {
	lineage := a.GetResourceLineage(name)
	if len(lineage) > 1 {
		return lineage[1:]
	}
	return []string{}
}
