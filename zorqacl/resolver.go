package zorqacl

// GetRule is the resolver: given a query, it deterministically returns the
// single rule that governs it. It never fails -- the catch-all guarantees
// an answer for every query.
//
// Precedence, highest to lowest:
//
//  1. An exact hit on (role, resource, privilege) as given, wildcards taken
//     literally.
//  2. A hierarchical search (skipped for the all-wildcard query): resource
//     lineage in the outer loop (self then ancestors, then the wildcard
//     resource), role lineage in the middle loop (self then ancestors in
//     LIFO order over multiple parents, then the wildcard role), and
//     privilege specificity in the inner probe (the named privilege, then
//     the wildcard privilege, when resource or role is non-wildcard).
//  3. The catch-all.
//
// The first rule-table hit at each level wins; there is no merging across
// hits. While the Acl is locked, hierarchical-search results are memoized
// under the verbatim query key; direct hits and catch-all hits are never
// cached because they are already O(1).
func (a *Acl) GetRule(role, resource, privilege OptionalString) Access {
	a.logger.Trace("getting rule for %s on %s to %s", role, resource, privilege)

	key := ruleKey{role: role, resource: resource, privilege: privilege}
	if rule, ok := a.rules[key]; ok {
		a.logger.Trace("    matching direct query")
		return rule
	}

	if key != catchAllKey {
		if a.locked {
			if rule, ok := a.cache[key]; ok {
				a.logger.Trace("    cache hit")
				return rule
			}
		}
		if rule, ok := a.queryPrecedence(role, resource, privilege); ok {
			a.logger.Trace("    matched query")
			if a.locked {
				a.logger.Trace("    caching rule")
				a.cache[key] = rule
			}
			return rule
		}
	}

	a.logger.Trace("    matching catch-all")
	return a.rules[catchAllKey]
}

// queryPrecedence walks resource lineage in the outer loop and falls back
// to the wildcard resource, reusing the same role lineage (computed once)
// at every resource level.
func (a *Acl) queryPrecedence(role, resource, privilege OptionalString) (Access, bool) {
	var resourceLineage []string
	if name, ok := resource.Get(); ok {
		resourceLineage = a.GetResourceLineage(name)
	}
	var roleLineage []string
	if name, ok := role.Get(); ok {
		roleLineage = a.GetRoleLineage(name)
	}

	for _, name := range resourceLineage {
		if rule, ok := a.queryRoles(Name(name), roleLineage, privilege); ok {
			return rule, true
		}
	}
	return a.queryRoles(Wildcard(), roleLineage, privilege)
}

// queryRoles walks the precomputed role lineage for a fixed resource slot
// and falls back to the wildcard role.
func (a *Acl) queryRoles(resource OptionalString, roleLineage []string, privilege OptionalString) (Access, bool) {
	for _, name := range roleLineage {
		if rule, ok := a.queryPrivileges(resource, Name(name), privilege); ok {
			return rule, true
		}
	}
	return a.queryPrivileges(resource, Wildcard(), privilege)
}

// queryPrivileges probes the specific privilege first, then the wildcard
// privilege -- but only when resource or role is non-wildcard, since a
// wildcard probe with both wildcard would just be the catch-all, handled
// separately by the caller.
func (a *Acl) queryPrivileges(resource, role, privilege OptionalString) (Access, bool) {
	if _, ok := privilege.Get(); ok {
		if rule, ok := a.rules[ruleKey{role: role, resource: resource, privilege: privilege}]; ok {
			return rule, true
		}
	}
	_, resourceSpecific := resource.Get()
	_, roleSpecific := role.Get()
	if resourceSpecific || roleSpecific {
		rule, ok := a.rules[ruleKey{role: role, resource: resource, privilege: Wildcard()}]
		return rule, ok
	}
	return Deny, false
}
