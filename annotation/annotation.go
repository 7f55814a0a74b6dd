// Package annotation holds the static routing/authorization metadata of
// go-rest-boot controllers: the catalog of annotation kinds, a programmatic
// declaration API and a source scanner that recovers the same facts from
// //rest: comments.
package annotation

import (
	"net/http"
	"strings"
)

type Kind int

const (
	KindRestController Kind = iota
	KindGet
	KindPost
	KindPut
	KindPatch
	KindDelete
	KindJWTPublic
	KindJWTController
	KindJWTEndpoint
)

var kindNames = map[Kind]string{
	KindRestController: "controller",
	KindGet:            "get",
	KindPost:           "post",
	KindPut:            "put",
	KindPatch:          "patch",
	KindDelete:         "delete",
	KindJWTPublic:      "public",
	KindJWTController:  "auth(controller)",
	KindJWTEndpoint:    "auth(endpoint)",
}

func (k Kind) String() string {
	return kindNames[k]
}

// HTTPMethod maps verb kinds onto their HTTP method.
func (k Kind) HTTPMethod() (string, bool) {
	switch k {
	case KindGet:
		return http.MethodGet, true
	case KindPost:
		return http.MethodPost, true
	case KindPut:
		return http.MethodPut, true
	case KindPatch:
		return http.MethodPatch, true
	case KindDelete:
		return http.MethodDelete, true
	}
	return "", false
}

type ParamSource int

const (
	SourcePath ParamSource = iota
	SourceQuery
	SourceHeader
	SourceBody
	SourceContext
)

var sourceNames = map[ParamSource]string{
	SourcePath:    "path",
	SourceQuery:   "query",
	SourceHeader:  "header",
	SourceBody:    "body",
	SourceContext: "context",
}

func (s ParamSource) String() string {
	return sourceNames[s]
}

// ParamSpec declares one injected handler parameter. An empty Name means "all
// values from the source" (e.g. the whole query map or request body).
type ParamSpec struct {
	Source   ParamSource
	Name     string
	Required bool
	Default  string
}

func (p ParamSpec) WithDefault(v string) ParamSpec {
	p.Default = v
	return p
}

func (p ParamSpec) AsRequired() ParamSpec {
	p.Required = true
	return p
}

func (p ParamSpec) AsOptional() ParamSpec {
	p.Required = false
	return p
}

// Path parameters are required by construction; the router never matches a
// route with an empty path segment.
func PathParam(name string) ParamSpec {
	return ParamSpec{Source: SourcePath, Name: name, Required: true}
}

func QueryParam(name string) ParamSpec {
	return ParamSpec{Source: SourceQuery, Name: name}
}

func HeaderParam(name string) ParamSpec {
	return ParamSpec{Source: SourceHeader, Name: name}
}

func BodyParam() ParamSpec {
	return ParamSpec{Source: SourceBody, Required: true}
}

func ContextParam(name string) ParamSpec {
	return ParamSpec{Source: SourceContext, Name: name}
}

// Occurrence is one statically-discovered (or declared) annotation fact: a
// Kind attached to a controller or controller method, with its declared
// configuration.
type Occurrence struct {
	Kind   Kind
	Target string // "Controller" or "Controller.Method"

	// Base path for KindRestController, relative path for verb kinds.
	Path string

	// Registered validator names plus combination flag, for
	// KindJWTController / KindJWTEndpoint.
	Validators []string
	RequireAll bool

	// Injected parameters, for verb kinds.
	Params []ParamSpec

	// Source file the occurrence was scanned from. Empty for declared ones.
	File string
}

// Controller returns the controller part of Target.
func (o Occurrence) Controller() string {
	if i := strings.IndexByte(o.Target, '.'); i >= 0 {
		return o.Target[:i]
	}
	return o.Target
}

// MethodName returns the method part of Target, or "" for class-level targets.
func (o Occurrence) MethodName() string {
	if i := strings.IndexByte(o.Target, '.'); i >= 0 {
		return o.Target[i+1:]
	}
	return ""
}
