package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"encoding/json"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Params carries the extracted, defaulted values of a route's declared
// parameters into the handler.
type Params struct {
	path    map[string]string
	query   map[string]string
	header  map[string]string
	ctxVals map[string]any
	body    []byte

	allQuery  url.Values
	allHeader http.Header
}

func (p Params) Path(name string) string    { return p.path[name] }
func (p Params) Query(name string) string   { return p.query[name] }
func (p Params) Header(name string) string  { return p.header[name] }
func (p Params) Context(name string) any    { return p.ctxVals[name] }
func (p Params) Body() []byte               { return p.body }
func (p Params) QueryAll() url.Values       { return p.allQuery }
func (p Params) HeaderAll() http.Header     { return p.allHeader }

// Bind unmarshals the JSON body into v and, for structs, runs field
// validation tags.
func (p Params) Bind(v any) error {
	if len(p.body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(p.body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		return validate.Struct(v)
	}
	return nil
}

// ParamError reports a client-side extraction failure (400), naming the
// offending parameter.
type ParamError struct {
	Name    string
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

type ctxValuesKey struct{}

// WithContextValue stashes a named value for RequestContext parameter
// injection. Middlewares use it to hand computed values to handlers.
func WithContextValue(ctx context.Context, name string, v any) context.Context {
	vals, _ := ctx.Value(ctxValuesKey{}).(map[string]any)
	merged := make(map[string]any, len(vals)+1)
	for k, val := range vals {
		merged[k] = val
	}
	merged[name] = v
	return context.WithValue(ctx, ctxValuesKey{}, merged)
}

func contextValue(ctx context.Context, name string) (any, bool) {
	vals, _ := ctx.Value(ctxValuesKey{}).(map[string]any)
	v, ok := vals[name]
	return v, ok
}

// extractParams pulls every declared parameter out of the request, applying
// defaults and enforcing required constraints. Reading the body is the only
// step that can touch I/O.
func extractParams(r *http.Request, specs []annotation.ParamSpec) (Params, *ParamError) {
	p := Params{
		path:      map[string]string{},
		query:     map[string]string{},
		header:    map[string]string{},
		ctxVals:   map[string]any{},
		allQuery:  r.URL.Query(),
		allHeader: r.Header,
	}

	for _, spec := range specs {
		switch spec.Source {
		case annotation.SourcePath:
			val := chi.URLParam(r, spec.Name)
			if val == "" {
				val = spec.Default
			}
			if val == "" && spec.Required {
				return p, missing(spec)
			}
			p.path[spec.Name] = val

		case annotation.SourceQuery:
			if spec.Name == "" {
				continue // "all": exposed via QueryAll
			}
			val := p.allQuery.Get(spec.Name)
			if val == "" {
				val = spec.Default
			}
			if val == "" && spec.Required {
				return p, missing(spec)
			}
			p.query[spec.Name] = val

		case annotation.SourceHeader:
			if spec.Name == "" {
				continue // "all": exposed via HeaderAll
			}
			val := r.Header.Get(spec.Name)
			if val == "" {
				val = spec.Default
			}
			if val == "" && spec.Required {
				return p, missing(spec)
			}
			p.header[spec.Name] = val

		case annotation.SourceBody:
			if p.body == nil && r.Body != nil {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					return p, &ParamError{Name: "body", Message: "failed reading request body"}
				}
				p.body = body
			}
			if len(p.body) == 0 && spec.Required {
				return p, &ParamError{Name: "body", Message: "missing required request body"}
			}

		case annotation.SourceContext:
			val, ok := contextValue(r.Context(), spec.Name)
			if !ok && spec.Default != "" {
				val, ok = spec.Default, true
			}
			if !ok && spec.Required {
				return p, missing(spec)
			}
			if ok {
				p.ctxVals[spec.Name] = val
			}
		}
	}

	return p, nil
}

func missing(spec annotation.ParamSpec) *ParamError {
	return &ParamError{
		Name:    spec.Name,
		Message: fmt.Sprintf("missing required %s parameter %q", spec.Source, spec.Name),
	}
}
