package zorqacl

// SetRule stores access as the decision for the (role, resource, privilege)
// key. Wildcard slots are literal here: they are not expanded, just stored
// as given. Role and resource slots that name a specific identifier must
// already be registered; privilege strings are never validated or
// registered. The catch-all key (all three wildcard) is immutable through
// this API -- setting it is a silent no-op, preserving the deny-by-default
// safety net.
func (a *Acl) SetRule(role, resource, privilege OptionalString, access Access) error {
	a.logger.Trace("setting rule for role=%s resource=%s privilege=%s access=%s", role, resource, privilege, access)
	if a.locked {
		a.logger.Warn("acl is locked, rule not set")
		return ErrLocked
	}
	if resourceName, ok := resource.Get(); ok {
		if _, exists := a.resources[resourceName]; !exists {
			a.logger.Warn("missing resource while setting rule: %s", resourceName)
			return &MissingResourceError{Name: resourceName}
		}
	}
	if roleName, ok := role.Get(); ok {
		if _, exists := a.roles[roleName]; !exists {
			a.logger.Warn("missing role while setting rule: %s", roleName)
			return &MissingRoleError{Name: roleName}
		}
	}

	key := ruleKey{role: role, resource: resource, privilege: privilege}
	if key == catchAllKey {
		return nil
	}
	a.rules[key] = access
	return nil
}

// Allow is sugar for SetRule(role, resource, privilege, Allow).
func (a *Acl) Allow(role, resource, privilege OptionalString) error {
	return a.SetRule(role, resource, privilege, Allow)
}

// Deny is sugar for SetRule(role, resource, privilege, Deny).
func (a *Acl) Deny(role, resource, privilege OptionalString) error {
	return a.SetRule(role, resource, privilege, Deny)
}

// IsAllowed reports whether the resolver returns Allow for this query.
func (a *Acl) IsAllowed(role, resource, privilege OptionalString) bool {
	return a.GetRule(role, resource, privilege) == Allow
}

// IsDenied reports whether the resolver returns Deny for this query.
// IsAllowed and IsDenied are always negations of each other: the catch-all
// guarantees every query is answerable.
func (a *Acl) IsDenied(role, resource, privilege OptionalString) bool {
	return a.GetRule(role, resource, privilege) == Deny
}
