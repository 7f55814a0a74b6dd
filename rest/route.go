package rest

import (
	"net/http"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/SaiNageswarS/go-rest-boot/logger"
	"go.uber.org/zap"
)

// HandlerFunc is a route handler with its extracted parameters injected.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, p Params)

// Controller binds annotation targets to handler functions through an
// explicit name -> handler table built once at construction time. No
// reflection, so ahead-of-time compilation stays possible.
type Controller interface {
	// Name must match the controller name used in annotation targets.
	Name() string

	// Handlers maps method names (the part after the dot in an annotation
	// target) to their implementations.
	Handlers() map[string]HandlerFunc
}

const (
	specificityStatic        = 0
	specificityParameterized = 1
)

// Route is one registered endpoint. Pattern is the controller base path
// joined with the method path; the mount point is applied by the caller, not
// here, so a controller can be mounted under different prefixes without
// double-prefixing.
type Route struct {
	Method  string
	Pattern string

	// Specificity ranks static patterns (0) before parameterized ones (1) so
	// that routers matching in registration order stay deterministic.
	Specificity int

	Policy  Policy
	Params  []annotation.ParamSpec
	Handler http.HandlerFunc
}

// BuildRoutes combines a controller's handler table with its discovered or
// declared annotations into concrete routes, policies already resolved and
// handlers already wrapped. Malformed occurrences are skipped with a warning;
// a single bad annotation never aborts the build.
func BuildRoutes(ctrl Controller, occs []annotation.Occurrence, resolver *Resolver) []Route {
	handlers := ctrl.Handlers()
	base := ""
	for _, occ := range occs {
		if occ.Kind == annotation.KindRestController && occ.Target == ctrl.Name() {
			base = occ.Path
			break
		}
	}

	var routes []Route
	for _, occ := range occs {
		httpMethod, isVerb := occ.Kind.HTTPMethod()
		if !isVerb || occ.Controller() != ctrl.Name() {
			continue
		}

		methodName := occ.MethodName()
		handler, ok := handlers[methodName]
		if !ok {
			logger.Warn("no handler registered for annotated method",
				zap.String("controller", ctrl.Name()),
				zap.String("method", methodName))
			continue
		}

		pattern := joinPath(base, translatePath(occ.Path))
		policy := resolver.Resolve(ctrl.Name(), methodName)

		routes = append(routes, Route{
			Method:      httpMethod,
			Pattern:     pattern,
			Specificity: specificity(pattern),
			Policy:      policy,
			Params:      occ.Params,
			Handler:     wrapWithPolicy(handler, policy, occ.Params),
		})
	}

	// Static routes first, then parameterized; ties broken lexically for a
	// stable registration order.
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Specificity != routes[j].Specificity {
			return routes[i].Specificity < routes[j].Specificity
		}
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})

	return routes
}

func specificity(pattern string) int {
	if strings.Contains(pattern, "{") {
		return specificityParameterized
	}
	return specificityStatic
}

// translatePath converts legacy ":name" placeholder segments into the
// router's "{name}" syntax.
func translatePath(path string) string {
	if !strings.Contains(path, ":") {
		return path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func joinPath(base, rel string) string {
	base = strings.TrimSuffix(base, "/")
	if rel == "" || rel == "/" {
		if base == "" {
			return "/"
		}
		return base
	}
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return base + rel
}
