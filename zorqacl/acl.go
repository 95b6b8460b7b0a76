// Package zorqacl implements an in-memory access control list: hierarchical
// roles with multiple inheritance, a single-parent resource tree, wildcard
// rules along any of role, resource or privilege, and a deny-by-default
// catch-all. See the Acl type for the public surface.
package zorqacl

// Access is the decision a Rule carries: Allow or Deny.
type Access int

const (
	// Deny is the catch-all's decision and the zero value of Access.
	Deny Access = iota
	Allow
)

func (a Access) String() string {
	if a == Allow {
		return "allow"
	}
	return "deny"
}

// ruleKey is the triple a rule is stored and looked up under. Each field is
// either a specific identifier or the wildcard; the zero value is the
// catch-all key.
type ruleKey struct {
	role      OptionalString
	resource  OptionalString
	privilege OptionalString
}

var catchAllKey = ruleKey{}

// Acl holds the role registry, resource registry and rule table, plus the
// lock state and its cache. The zero value is not usable; build one with
// New. Acl is not internally synchronized: concurrent mutation is out of
// scope, so callers sharing an Acl across goroutines
// must provide their own external exclusion.
type Acl struct {
	roles     map[string][]string
	resources map[string]OptionalString
	rules     map[ruleKey]Access

	locked bool
	cache  map[ruleKey]Access

	logger Logger
}

// Option configures an Acl at construction time.
type Option func(*Acl)

// WithLogger injects a Logger that receives trace/debug/warn/error
// diagnostics from the registries and the resolver. Without this option,
// an Acl logs nothing.
func WithLogger(logger Logger) Option {
	return func(a *Acl) {
		a.logger = logger
	}
}

// New returns an unlocked Acl with an empty role registry, empty resource
// registry, and a rule table seeded with the catch-all, which denies
// everything until rules say otherwise.
func New(opts ...Option) *Acl {
	acl := &Acl{
		roles:     make(map[string][]string),
		resources: make(map[string]OptionalString),
		rules:     make(map[ruleKey]Access),
		logger:    NopLogger{},
	}
	for _, opt := range opts {
		opt(acl)
	}
	acl.rules[catchAllKey] = Deny
	acl.logger.Trace("creating new acl")
	return acl
}

// Lock freezes the rule table and enables the decision cache. Locking an
// already-locked Acl is a no-op.
func (a *Acl) Lock() {
	if a.locked {
		return
	}
	a.locked = true
	a.cache = make(map[ruleKey]Access)
	a.logger.Trace("locking acl")
}

// Unlock reopens the rule table for mutation and discards the cache.
// Unlocking an already-unlocked Acl is a no-op.
func (a *Acl) Unlock() {
	if !a.locked {
		return
	}
	a.locked = false
	a.cache = nil
	a.logger.Trace("unlocking acl, cache discarded")
}

// Locked reports whether the Acl currently rejects rule mutations.
func (a *Acl) Locked() bool {
	return a.locked
}

// ListRoleNames returns a sorted snapshot of every registered role name.
func (a *Acl) ListRoleNames() []string {
	return sortedKeys(a.roles)
}

// ListResourceNames returns a sorted snapshot of every registered resource
// name.
func (a *Acl) ListResourceNames() []string {
	return sortedKeys(a.resources)
}
