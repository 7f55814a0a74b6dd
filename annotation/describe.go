package annotation

// Describe is the programmatic counterpart of the //rest: comment annotations.
// It builds the occurrence list for one controller without any source scanning
// or reflection, keeping route metadata ahead-of-time friendly:
//
//	occs := annotation.Describe("UserController",
//		annotation.Base("/users"),
//		annotation.Get("List", "/"),
//		annotation.Get("GetByID", "/{id}", annotation.PathParam("id")),
//		annotation.Public("Health"),
//		annotation.Authorize(true, "admin_only"),
//		annotation.AuthorizeMethod("Delete", true, "admin_only", "audit"),
//	)
func Describe(controller string, opts ...Option) []Occurrence {
	b := &describeBuilder{controller: controller}
	for _, opt := range opts {
		opt(b)
	}
	return b.occurrences
}

type describeBuilder struct {
	controller  string
	occurrences []Occurrence
}

type Option func(*describeBuilder)

// Base declares the controller base path (the RestController annotation).
func Base(path string) Option {
	return func(b *describeBuilder) {
		b.occurrences = append(b.occurrences, Occurrence{
			Kind:   KindRestController,
			Target: b.controller,
			Path:   path,
		})
	}
}

func verb(kind Kind, method, path string, params []ParamSpec) Option {
	return func(b *describeBuilder) {
		b.occurrences = append(b.occurrences, Occurrence{
			Kind:   kind,
			Target: b.controller + "." + method,
			Path:   path,
			Params: params,
		})
	}
}

func Get(method, path string, params ...ParamSpec) Option {
	return verb(KindGet, method, path, params)
}

func Post(method, path string, params ...ParamSpec) Option {
	return verb(KindPost, method, path, params)
}

func Put(method, path string, params ...ParamSpec) Option {
	return verb(KindPut, method, path, params)
}

func Patch(method, path string, params ...ParamSpec) Option {
	return verb(KindPatch, method, path, params)
}

func Delete(method, path string, params ...ParamSpec) Option {
	return verb(KindDelete, method, path, params)
}

// Public marks a method as requiring no JWT at all. Takes precedence over
// Authorize and AuthorizeMethod.
func Public(method string) Option {
	return func(b *describeBuilder) {
		b.occurrences = append(b.occurrences, Occurrence{
			Kind:   KindJWTPublic,
			Target: b.controller + "." + method,
		})
	}
}

// Authorize attaches controller-level validators: every endpoint of the
// controller inherits them unless overridden per method.
func Authorize(requireAll bool, validators ...string) Option {
	return func(b *describeBuilder) {
		b.occurrences = append(b.occurrences, Occurrence{
			Kind:       KindJWTController,
			Target:     b.controller,
			Validators: validators,
			RequireAll: requireAll,
		})
	}
}

// AuthorizeMethod attaches endpoint-level validators, replacing (not merging
// with) any controller-level list.
func AuthorizeMethod(method string, requireAll bool, validators ...string) Option {
	return func(b *describeBuilder) {
		b.occurrences = append(b.occurrences, Occurrence{
			Kind:       KindJWTEndpoint,
			Target:     b.controller + "." + method,
			Validators: validators,
			RequireAll: requireAll,
		})
	}
}
