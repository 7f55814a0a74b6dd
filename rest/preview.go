package rest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
)

// RoutePreview is the handler-less view of a route, computed purely from
// annotations. Used by tooling to display a route table before any controller
// code exists.
type RoutePreview struct {
	Method     string
	Pattern    string
	Controller string
	Handler    string
	Auth       string
	File       string
}

// PreviewRoutes lists the routes a set of occurrences would produce. Auth is a
// human-readable policy descriptor following the same precedence as the
// resolver: public beats endpoint validators beats controller validators beats
// the bare-token default.
func PreviewRoutes(occs []annotation.Occurrence) []RoutePreview {
	bases := map[string]string{}
	ctrlAuth := map[string]annotation.Occurrence{}
	methodAuth := map[string]annotation.Occurrence{}
	public := map[string]bool{}

	for _, occ := range occs {
		switch occ.Kind {
		case annotation.KindRestController:
			bases[occ.Target] = occ.Path
		case annotation.KindJWTController:
			ctrlAuth[occ.Target] = occ
		case annotation.KindJWTEndpoint:
			methodAuth[occ.Target] = occ
		case annotation.KindJWTPublic:
			public[occ.Target] = true
		}
	}

	var previews []RoutePreview
	for _, occ := range occs {
		httpMethod, isVerb := occ.Kind.HTTPMethod()
		if !isVerb {
			continue
		}

		ctrl := occ.Controller()
		previews = append(previews, RoutePreview{
			Method:     httpMethod,
			Pattern:    joinPath(bases[ctrl], translatePath(occ.Path)),
			Controller: ctrl,
			Handler:    occ.MethodName(),
			Auth:       authDescriptor(occ.Target, ctrl, public, methodAuth, ctrlAuth),
			File:       occ.File,
		})
	}

	sort.SliceStable(previews, func(i, j int) bool {
		if previews[i].Pattern != previews[j].Pattern {
			return previews[i].Pattern < previews[j].Pattern
		}
		return previews[i].Method < previews[j].Method
	})

	return previews
}

func authDescriptor(target, ctrl string, public map[string]bool, methodAuth, ctrlAuth map[string]annotation.Occurrence) string {
	if public[target] {
		return "public"
	}
	if occ, ok := methodAuth[target]; ok {
		return validatedDescriptor(occ)
	}
	if occ, ok := ctrlAuth[ctrl]; ok {
		return validatedDescriptor(occ)
	}
	return "jwt"
}

func validatedDescriptor(occ annotation.Occurrence) string {
	if len(occ.Validators) == 0 {
		return "jwt"
	}
	mode := "any"
	if occ.RequireAll {
		mode = "all"
	}
	return fmt.Sprintf("jwt+%s(%s)", mode, strings.Join(occ.Validators, ","))
}
