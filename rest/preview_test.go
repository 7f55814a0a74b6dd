package rest

import (
	"testing"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/stretchr/testify/assert"
)

func TestPreviewRoutes(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Base("/users"),
		annotation.Get("List", "/"),
		annotation.Get("GetByID", "/:id"),
		annotation.Get("Health", "/health"),
		annotation.Public("Health"),
		annotation.Authorize(true, "admin_only"),
		annotation.AuthorizeMethod("GetByID", false, "admin_only", "same_user"),
	)

	previews := PreviewRoutes(occs)
	assert.Len(t, previews, 3)

	byHandler := map[string]RoutePreview{}
	for _, p := range previews {
		byHandler[p.Handler] = p
	}

	assert.Equal(t, "/users", byHandler["List"].Pattern)
	assert.Equal(t, "jwt+all(admin_only)", byHandler["List"].Auth)

	assert.Equal(t, "/users/{id}", byHandler["GetByID"].Pattern, "legacy :id syntax translated")
	assert.Equal(t, "jwt+any(admin_only,same_user)", byHandler["GetByID"].Auth)

	assert.Equal(t, "public", byHandler["Health"].Auth)
}

func TestPreviewRoutes_DefaultIsBareJWT(t *testing.T) {
	occs := annotation.Describe("OrderController",
		annotation.Base("/orders"),
		annotation.Get("List", "/"),
	)

	previews := PreviewRoutes(occs)
	assert.Len(t, previews, 1)
	assert.Equal(t, "jwt", previews[0].Auth)
}

func TestPreviewRoutes_SortedByPattern(t *testing.T) {
	occs := annotation.Describe("UserController",
		annotation.Base("/users"),
		annotation.Get("List", "/"),
		annotation.Get("Active", "/active"),
	)

	previews := PreviewRoutes(occs)
	assert.Equal(t, "/users", previews[0].Pattern)
	assert.Equal(t, "/users/active", previews[1].Pattern)
}
