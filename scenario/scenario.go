// Package scenario provides a declarative YAML description of an Acl's
// roles, resources and rules, so that a policy set can be written down and
// replayed without hand-written Go -- the non-code analogue of arborist's
// RoleJSON/ServiceJSON bootstrap loaders, adapted from JSON-over-HTTP input
// to a YAML file read straight off disk.
package scenario

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mg28/zorqacl/zorqacl"
)

// RoleSpec declares one role and its parents, in the order they should be
// passed to Acl.AddRole.
type RoleSpec struct {
	Name    string   `yaml:"name"`
	Parents []string `yaml:"parents"`
}

// ResourceSpec declares one resource and its optional parent.
type ResourceSpec struct {
	Name   string  `yaml:"name"`
	Parent *string `yaml:"parent"`
}

// RuleSpec declares one allow/deny rule. A nil Role, Resource or Privilege
// means the wildcard for that slot.
type RuleSpec struct {
	Role      *string `yaml:"role"`
	Resource  *string `yaml:"resource"`
	Privilege *string `yaml:"privilege"`
	Access    string  `yaml:"access"`
}

// Scenario is a full bootstrap description: roles, then resources, then
// rules, applied in that order and in file order within each section.
type Scenario struct {
	Roles     []RoleSpec     `yaml:"roles"`
	Resources []ResourceSpec `yaml:"resources"`
	Rules     []RuleSpec     `yaml:"rules"`
}

// Load parses a Scenario out of r.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read scenario: %w", err)
	}
	scenario := &Scenario{}
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("could not parse scenario: %w", err)
	}
	return scenario, nil
}

// optionalOf converts a nillable YAML string field to the zorqacl wildcard
// sentinel: nil means wildcard, a pointer to any string (including empty)
// names that identifier.
func optionalOf(s *string) zorqacl.OptionalString {
	if s == nil {
		return zorqacl.Wildcard()
	}
	return zorqacl.Name(*s)
}

func accessOf(access string) (zorqacl.Access, error) {
	switch access {
	case "allow":
		return zorqacl.Allow, nil
	case "deny":
		return zorqacl.Deny, nil
	default:
		return zorqacl.Deny, fmt.Errorf("unknown access %q, want \"allow\" or \"deny\"", access)
	}
}

// Apply loads the scenario's roles, resources and rules into acl, in
// order. Apart from rejecting a rule whose access is neither "allow" nor
// "deny", it performs no validation of its own -- every AddRole/AddResource/
// SetRule error from the underlying Acl is returned wrapped with the failing
// entry (errors.As still reaches the typed error), much as arborist's
// recursivelyLoadRoleFromJSON propagates the engine's own errors rather
// than re-checking them.
func (s *Scenario) Apply(acl *zorqacl.Acl) error {
	for _, role := range s.Roles {
		if err := acl.AddRole(role.Name, role.Parents); err != nil {
			return fmt.Errorf("role %q: %w", role.Name, err)
		}
	}
	for _, resource := range s.Resources {
		if err := acl.AddResource(resource.Name, optionalOf(resource.Parent)); err != nil {
			return fmt.Errorf("resource %q: %w", resource.Name, err)
		}
	}
	for i, rule := range s.Rules {
		access, err := accessOf(rule.Access)
		if err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		role := optionalOf(rule.Role)
		resource := optionalOf(rule.Resource)
		privilege := optionalOf(rule.Privilege)
		if err := acl.SetRule(role, resource, privilege, access); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
