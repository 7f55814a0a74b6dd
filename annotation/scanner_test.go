package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const userControllerSrc = `package controllers

//rest:controller /api/users
//rest:auth validators=admin_only mode=all
type UserController struct{}

//rest:get /
func (c *UserController) List() {}

//rest:get /{id}
//rest:param path id
//rest:param query verbose default=false
func (c *UserController) GetByID() {}

//rest:post /
//rest:param body
//rest:auth validators=admin_only,same_user mode=any
func (c *UserController) Create() {}

//rest:get /health
//rest:public
func (c *UserController) Health() {}
`

func findOccurrence(t *testing.T, occs []Occurrence, kind Kind, target string) Occurrence {
	t.Helper()
	for _, o := range occs {
		if o.Kind == kind && o.Target == target {
			return o
		}
	}
	t.Fatalf("no occurrence %v on %s", kind, target)
	return Occurrence{}
}

func TestParseSource_ControllerAndRoutes(t *testing.T) {
	occs, err := NewScanner().ParseSource("user_controller.go", userControllerSrc)
	assert.NoError(t, err)

	ctrl := findOccurrence(t, occs, KindRestController, "UserController")
	assert.Equal(t, "/api/users", ctrl.Path)
	assert.Equal(t, "user_controller.go", ctrl.File)

	list := findOccurrence(t, occs, KindGet, "UserController.List")
	assert.Equal(t, "/", list.Path)
	assert.Equal(t, "UserController", list.Controller())
	assert.Equal(t, "List", list.MethodName())
}

func TestParseSource_ParamsFoldedIntoVerb(t *testing.T) {
	occs, err := NewScanner().ParseSource("user_controller.go", userControllerSrc)
	assert.NoError(t, err)

	get := findOccurrence(t, occs, KindGet, "UserController.GetByID")
	assert.Len(t, get.Params, 2)
	assert.Equal(t, SourcePath, get.Params[0].Source)
	assert.Equal(t, "id", get.Params[0].Name)
	assert.True(t, get.Params[0].Required)
	assert.Equal(t, SourceQuery, get.Params[1].Source)
	assert.Equal(t, "false", get.Params[1].Default)
	assert.False(t, get.Params[1].Required)

	post := findOccurrence(t, occs, KindPost, "UserController.Create")
	assert.Len(t, post.Params, 1)
	assert.Equal(t, SourceBody, post.Params[0].Source)
	assert.True(t, post.Params[0].Required)
}

func TestParseSource_AuthLevels(t *testing.T) {
	occs, err := NewScanner().ParseSource("user_controller.go", userControllerSrc)
	assert.NoError(t, err)

	classAuth := findOccurrence(t, occs, KindJWTController, "UserController")
	assert.Equal(t, []string{"admin_only"}, classAuth.Validators)
	assert.True(t, classAuth.RequireAll)

	methodAuth := findOccurrence(t, occs, KindJWTEndpoint, "UserController.Create")
	assert.Equal(t, []string{"admin_only", "same_user"}, methodAuth.Validators)
	assert.False(t, methodAuth.RequireAll)

	findOccurrence(t, occs, KindJWTPublic, "UserController.Health")
}

func TestParseSource_MalformedSkipped(t *testing.T) {
	src := `package controllers

//rest:controller
type BadController struct{}

//rest:get
func (c *BadController) Get() {}

//rest:frobnicate /x
func (c *BadController) Other() {}

//rest:get /ok
func (c *BadController) Fine() {}
`
	occs, err := NewScanner().ParseSource("bad.go", src)
	assert.NoError(t, err)

	// Only the well-formed route survives.
	assert.Len(t, occs, 1)
	assert.Equal(t, "BadController.Fine", occs[0].Target)
}

func TestParseSource_ParamsAttachToEveryVerb(t *testing.T) {
	src := `package controllers

//rest:controller /api
type C struct{}

//rest:get /{id}
//rest:put /{id}
//rest:param path id
//rest:param query verbose default=false
func (c *C) Upsert() {}
`
	occs, err := NewScanner().ParseSource("c.go", src)
	assert.NoError(t, err)

	get := findOccurrence(t, occs, KindGet, "C.Upsert")
	put := findOccurrence(t, occs, KindPut, "C.Upsert")
	assert.Len(t, get.Params, 2)
	assert.Len(t, put.Params, 2)
	assert.Equal(t, "id", get.Params[0].Name)
	assert.Equal(t, "id", put.Params[0].Name)

	// Each verb holds its own copy.
	get.Params[1].Default = "true"
	assert.Equal(t, "false", put.Params[1].Default)
}

func TestParseSource_AuthDefaultsToRequireAll(t *testing.T) {
	src := `package controllers

//rest:controller /api
//rest:auth validators=a,b
type C struct{}
`
	occs, err := NewScanner().ParseSource("c.go", src)
	assert.NoError(t, err)

	auth := findOccurrence(t, occs, KindJWTController, "C")
	assert.True(t, auth.RequireAll)
	assert.Equal(t, []string{"a", "b"}, auth.Validators)
}

func TestParseSource_IgnoresPlainComments(t *testing.T) {
	src := `package controllers

// UserController serves user resources.
type UserController struct{}

// List returns all users.
func (c *UserController) List() {}
`
	occs, err := NewScanner().ParseSource("u.go", src)
	assert.NoError(t, err)
	assert.Empty(t, occs)
}

func TestParseSource_SyntaxError(t *testing.T) {
	_, err := NewScanner().ParseSource("broken.go", "package {")
	assert.Error(t, err)
}
