package zorqacl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupScenarioA builds the basic-inheritance role tree used across several
// scenarios below.
func setupScenarioA(t *testing.T) *Acl {
	t.Helper()
	acl := New()

	require.NoError(t, acl.AddRole("guest", nil))
	require.NoError(t, acl.AddRole("staff", []string{"guest"}))
	require.NoError(t, acl.AddRole("editor", []string{"staff"}))
	require.NoError(t, acl.AddRole("admin", nil))

	require.NoError(t, acl.Allow(Name("guest"), Wildcard(), Name("view")))
	require.NoError(t, acl.Allow(Name("staff"), Wildcard(), Name("edit")))
	require.NoError(t, acl.Allow(Name("staff"), Wildcard(), Name("submit")))
	require.NoError(t, acl.Allow(Name("staff"), Wildcard(), Name("revise")))
	require.NoError(t, acl.Allow(Name("editor"), Wildcard(), Name("publish")))
	require.NoError(t, acl.Allow(Name("editor"), Wildcard(), Name("archive")))
	require.NoError(t, acl.Allow(Name("editor"), Wildcard(), Name("delete")))
	require.NoError(t, acl.Allow(Name("admin"), Wildcard(), Wildcard()))

	return acl
}

func TestScenarioA_BasicInheritance(t *testing.T) {
	acl := setupScenarioA(t)

	assert.True(t, acl.IsAllowed(Name("guest"), Wildcard(), Name("view")))
	assert.False(t, acl.IsAllowed(Name("staff"), Wildcard(), Name("publish")))
	assert.True(t, acl.IsAllowed(Name("staff"), Wildcard(), Name("revise")))
	assert.True(t, acl.IsAllowed(Name("editor"), Wildcard(), Name("view")))
	assert.False(t, acl.IsAllowed(Name("editor"), Wildcard(), Name("update")))
	assert.True(t, acl.IsAllowed(Name("admin"), Wildcard(), Name("view")))
	assert.True(t, acl.IsAllowed(Name("admin"), Wildcard(), Wildcard()))
	assert.True(t, acl.IsAllowed(Name("admin"), Wildcard(), Name("update")))
}

// setupScenarioB extends setupScenarioA with a marketing role, a resource
// tree and a deny override.
func setupScenarioB(t *testing.T) *Acl {
	t.Helper()
	acl := setupScenarioA(t)

	require.NoError(t, acl.AddRole("marketing", []string{"staff"}))
	require.NoError(t, acl.AddResource("newsletter", Wildcard()))
	require.NoError(t, acl.AddResource("news", Wildcard()))
	require.NoError(t, acl.AddResource("latest", Name("news")))
	require.NoError(t, acl.AddResource("anouncement", Name("news")))

	require.NoError(t, acl.Allow(Name("marketing"), Name("newsletter"), Name("publish")))
	require.NoError(t, acl.Allow(Name("marketing"), Name("latest"), Name("archive")))
	require.NoError(t, acl.Deny(Name("staff"), Name("latest"), Name("revise")))
	require.NoError(t, acl.Deny(Wildcard(), Name("anouncement"), Name("archive")))

	return acl
}

func assertScenarioB(t *testing.T, acl *Acl) {
	t.Helper()
	assert.True(t, acl.IsAllowed(Name("marketing"), Name("newsletter"), Name("publish")))
	assert.False(t, acl.IsAllowed(Name("staff"), Name("newsletter"), Name("publish")))
	assert.False(t, acl.IsAllowed(Name("marketing"), Name("latest"), Name("revise")))
	assert.False(t, acl.IsAllowed(Name("admin"), Name("anouncement"), Name("archive")))
}

func TestScenarioB_SpecificResourcesAndDenyOverrides(t *testing.T) {
	assertScenarioB(t, setupScenarioB(t))
}

func TestScenarioC_LIFOMultipleInheritance(t *testing.T) {
	acl := New()

	require.NoError(t, acl.AddRole("guest", nil))
	require.NoError(t, acl.AddRole("member", nil))
	require.NoError(t, acl.AddRole("admin", nil))
	require.NoError(t, acl.AddRole("someUser", []string{"guest", "member", "admin"}))
	require.NoError(t, acl.AddResource("someResource", Wildcard()))

	require.NoError(t, acl.Deny(Name("guest"), Name("someResource"), Wildcard()))
	require.NoError(t, acl.Allow(Name("member"), Name("someResource"), Wildcard()))

	if diff := cmp.Diff([]string{"someUser", "admin", "member", "guest"}, acl.GetRoleLineage("someUser")); diff != "" {
		t.Errorf("unexpected role lineage (-want +got):\n%s", diff)
	}

	assert.True(t, acl.IsAllowed(Name("someUser"), Name("someResource"), Wildcard()))
}

func TestScenarioD_CatchAllDefault(t *testing.T) {
	acl := New()

	assert.True(t, acl.IsDenied(Wildcard(), Wildcard(), Wildcard()))
	assert.False(t, acl.IsAllowed(Name("anything"), Name("anything"), Name("anything")))
}

func TestScenarioE_LockCachesDecisionsIdempotently(t *testing.T) {
	acl := setupScenarioB(t)

	acl.Lock()
	assertScenarioB(t, acl)

	err := acl.Allow(Name("admin"), Wildcard(), Name("ignored"))
	assert.ErrorIs(t, err, ErrLocked)

	acl.Unlock()
	acl.Lock()
	assertScenarioB(t, acl)
}

func TestScenarioF_ErrorSurface(t *testing.T) {
	acl := New()

	require.NoError(t, acl.AddRole("guest", nil))
	err := acl.AddRole("guest", nil)
	var dup *DuplicateRoleError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "guest", dup.Name)

	_, err = acl.GetRoleParents("admin")
	var missingRole *MissingRoleError
	require.True(t, errors.As(err, &missingRole))
	assert.Equal(t, "admin", missingRole.Name)

	err = acl.AddResource("x", Name("missing"))
	var missingParent *MissingParentError
	require.True(t, errors.As(err, &missingParent))
	assert.Equal(t, "missing", missingParent.Name)
}

func TestInvariant_IsAllowedIsDeniedAreNegations(t *testing.T) {
	acl := setupScenarioB(t)

	queries := []ruleKey{
		{},
		{role: Name("guest"), privilege: Name("view")},
		{role: Name("marketing"), resource: Name("latest"), privilege: Name("revise")},
		{role: Name("nobody"), resource: Name("nowhere"), privilege: Name("nothing")},
	}
	for _, q := range queries {
		allowed := acl.IsAllowed(q.role, q.resource, q.privilege)
		denied := acl.IsDenied(q.role, q.resource, q.privilege)
		assert.NotEqual(t, allowed, denied)
	}
}

func TestInvariant_AddRolePopulatesReversedParents(t *testing.T) {
	acl := New()
	require.NoError(t, acl.AddRole("a", nil))
	require.NoError(t, acl.AddRole("b", nil))
	require.NoError(t, acl.AddRole("c", nil))
	require.NoError(t, acl.AddRole("d", []string{"a", "b", "c"}))

	assert.True(t, acl.HasRole("d"))
	parents, err := acl.GetRoleParents("d")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, parents)
}

func TestInvariant_RoleLineageHasNoDuplicatesAndStartsWithSelf(t *testing.T) {
	acl := New()
	require.NoError(t, acl.AddRole("root", nil))
	require.NoError(t, acl.AddRole("left", []string{"root"}))
	require.NoError(t, acl.AddRole("right", []string{"root"}))
	require.NoError(t, acl.AddRole("diamond", []string{"left", "right"}))

	lineage := acl.GetRoleLineage("diamond")
	assert.Equal(t, "diamond", lineage[0])

	seen := make(map[string]struct{})
	for _, name := range lineage {
		_, dup := seen[name]
		assert.False(t, dup, "duplicate ancestor %s", name)
		seen[name] = struct{}{}
		assert.True(t, acl.HasRole(name))
	}
}

func TestInvariant_ResourceLineageTerminatesAtRoot(t *testing.T) {
	acl := New()
	require.NoError(t, acl.AddResource("city", Wildcard()))
	require.NoError(t, acl.AddResource("building", Name("city")))
	require.NoError(t, acl.AddResource("floor", Name("building")))

	assert.Equal(t, []string{"floor", "building", "city"}, acl.GetResourceLineage("floor"))
	assert.Equal(t, []string{}, acl.GetRoleLineage("nope"))
	assert.Equal(t, []string{}, acl.GetResourceLineage("nope"))
}

func TestLock_RoleAndResourceAdditionsStillSucceed(t *testing.T) {
	acl := New()
	require.NoError(t, acl.AddRole("guest", nil))
	acl.Lock()

	assert.NoError(t, acl.AddRole("staff", []string{"guest"}))
	assert.NoError(t, acl.AddResource("page", Wildcard()))

	err := acl.SetRule(Name("staff"), Wildcard(), Wildcard(), Allow)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestSetRule_CatchAllIsImmutable(t *testing.T) {
	acl := New()
	require.NoError(t, acl.Allow(Wildcard(), Wildcard(), Wildcard()))
	assert.True(t, acl.IsDenied(Wildcard(), Wildcard(), Wildcard()))
}

func TestSetRule_OverwritesPriorEntryAtSameKey(t *testing.T) {
	acl := New()
	require.NoError(t, acl.AddRole("staff", nil))

	require.NoError(t, acl.Allow(Name("staff"), Wildcard(), Name("edit")))
	assert.True(t, acl.IsAllowed(Name("staff"), Wildcard(), Name("edit")))

	require.NoError(t, acl.Deny(Name("staff"), Wildcard(), Name("edit")))
	assert.True(t, acl.IsDenied(Name("staff"), Wildcard(), Name("edit")))
}

func TestListNames_AreSortedSnapshots(t *testing.T) {
	acl := New()
	require.NoError(t, acl.AddRole("staff", nil))
	require.NoError(t, acl.AddRole("admin", nil))
	require.NoError(t, acl.AddResource("zeta", Wildcard()))
	require.NoError(t, acl.AddResource("alpha", Wildcard()))

	assert.Equal(t, []string{"admin", "staff"}, acl.ListRoleNames())
	assert.Equal(t, []string{"alpha", "zeta"}, acl.ListResourceNames())
}
