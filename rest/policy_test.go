package rest

import (
	"testing"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/stretchr/testify/assert"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	assert.NoError(t, reg.Register(
		&stubValidator{name: "admin_only", pass: true},
		&stubValidator{name: "same_user", pass: true},
		&stubValidator{name: "audit", pass: true},
	))
	return reg
}

func TestResolve_EndpointOverridesController(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true, "admin_only", "audit"),
		annotation.AuthorizeMethod("Delete", false, "same_user"),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	policy := resolver.Resolve("UserController", "Delete")

	// The method annotation replaces the controller list entirely.
	assert.Equal(t, PolicyValidated, policy.Kind)
	assert.False(t, policy.RequireAll)
	assert.Len(t, policy.Validators, 1)
	assert.Equal(t, "same_user", policy.Validators[0].Name())
}

func TestResolve_PublicShortCircuitsEverything(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true, "admin_only"),
		annotation.AuthorizeMethod("Health", true, "admin_only"),
		annotation.Public("Health"),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	policy := resolver.Resolve("UserController", "Health")
	assert.Equal(t, PolicyPublic, policy.Kind)
	assert.Empty(t, policy.Validators)
}

func TestResolve_ControllerInherited(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true, "admin_only", "audit"),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	policy := resolver.Resolve("UserController", "List")
	assert.Equal(t, PolicyValidated, policy.Kind)
	assert.True(t, policy.RequireAll)
	assert.Len(t, policy.Validators, 2)
}

func TestResolve_NoAnnotationsFallsBackToBasicAuth(t *testing.T) {
	resolver := NewResolver(nil, newTestRegistry(t))

	policy := resolver.Resolve("UserController", "List")
	assert.Equal(t, PolicyBasicAuth, policy.Kind)
}

func TestResolve_EmptyValidatorListIsMalformed(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	// Malformed annotation falls back to the most restrictive safe default.
	policy := resolver.Resolve("UserController", "List")
	assert.Equal(t, PolicyBasicAuth, policy.Kind)
}

func TestResolve_UnknownValidatorsSkipped(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true, "admin_only", "nonexistent"),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	policy := resolver.Resolve("UserController", "List")
	assert.Equal(t, PolicyValidated, policy.Kind)
	assert.Len(t, policy.Validators, 1)
	assert.Equal(t, "admin_only", policy.Validators[0].Name())
}

func TestResolve_OnlyUnknownValidatorsFallsBack(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true, "nonexistent"),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	policy := resolver.Resolve("UserController", "List")
	assert.Equal(t, PolicyBasicAuth, policy.Kind)
}

func TestResolve_CachesPerEndpoint(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Authorize(true, "admin_only"),
	)
	resolver := NewResolver(occs, newTestRegistry(t))

	first := resolver.Resolve("UserController", "List")
	second := resolver.Resolve("UserController", "List")
	assert.Equal(t, first, second)

	_, cached := resolver.cache.Load("UserController.List")
	assert.True(t, cached)
}
