package main

import (
	"fmt"
	"go/format"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
)

// Generate scans dir and emits a gofmt'd Go file declaring the same
// annotations through the programmatic API. The output makes the scanned
// comments redundant, which is the ahead-of-time path: ship the generated
// declarations, skip source scanning at startup.
func Generate(dir, pkg string) ([]byte, error) {
	occs, err := annotation.NewScanner().ScanDir(dir)
	if err != nil {
		return nil, err
	}
	if len(occs) == 0 {
		return nil, fmt.Errorf("no annotations found under %s", dir)
	}

	byController := map[string][]annotation.Occurrence{}
	for _, occ := range occs {
		ctrl := occ.Controller()
		byController[ctrl] = append(byController[ctrl], occ)
	}

	controllers := make([]string, 0, len(byController))
	for ctrl := range byController {
		controllers = append(controllers, ctrl)
	}
	sort.Strings(controllers)

	var b strings.Builder
	b.WriteString("// Code generated by go-rest-boot generate. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import \"github.com/SaiNageswarS/go-rest-boot/annotation\"\n\n")

	for _, ctrl := range controllers {
		fmt.Fprintf(&b, "// %sAnnotations mirrors the //rest: comments of %s.\n", ctrl, ctrl)
		fmt.Fprintf(&b, "func %sAnnotations() []annotation.Occurrence {\n", ctrl)
		fmt.Fprintf(&b, "\treturn annotation.Describe(%q,\n", ctrl)
		for _, occ := range byController[ctrl] {
			opt, ok := renderOption(occ)
			if ok {
				fmt.Fprintf(&b, "\t\t%s,\n", opt)
			}
		}
		b.WriteString("\t)\n}\n\n")
	}

	return format.Source([]byte(b.String()))
}

var verbOptions = map[annotation.Kind]string{
	annotation.KindGet:    "Get",
	annotation.KindPost:   "Post",
	annotation.KindPut:    "Put",
	annotation.KindPatch:  "Patch",
	annotation.KindDelete: "Delete",
}

func renderOption(occ annotation.Occurrence) (string, bool) {
	switch occ.Kind {
	case annotation.KindRestController:
		return fmt.Sprintf("annotation.Base(%q)", occ.Path), true

	case annotation.KindGet, annotation.KindPost, annotation.KindPut,
		annotation.KindPatch, annotation.KindDelete:
		args := []string{fmt.Sprintf("%q", occ.MethodName()), fmt.Sprintf("%q", occ.Path)}
		for _, p := range occ.Params {
			args = append(args, renderParam(p))
		}
		return fmt.Sprintf("annotation.%s(%s)", verbOptions[occ.Kind], strings.Join(args, ", ")), true

	case annotation.KindJWTPublic:
		return fmt.Sprintf("annotation.Public(%q)", occ.MethodName()), true

	case annotation.KindJWTController:
		return fmt.Sprintf("annotation.Authorize(%t%s)", occ.RequireAll, renderNames(occ.Validators)), true

	case annotation.KindJWTEndpoint:
		return fmt.Sprintf("annotation.AuthorizeMethod(%q, %t%s)",
			occ.MethodName(), occ.RequireAll, renderNames(occ.Validators)), true
	}
	return "", false
}

func renderNames(names []string) string {
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, ", %q", n)
	}
	return b.String()
}

func renderParam(p annotation.ParamSpec) string {
	var b strings.Builder
	switch p.Source {
	case annotation.SourcePath:
		fmt.Fprintf(&b, "annotation.PathParam(%q)", p.Name)
		if !p.Required {
			b.WriteString(".AsOptional()")
		}
	case annotation.SourceQuery:
		fmt.Fprintf(&b, "annotation.QueryParam(%q)", p.Name)
		if p.Required {
			b.WriteString(".AsRequired()")
		}
	case annotation.SourceHeader:
		fmt.Fprintf(&b, "annotation.HeaderParam(%q)", p.Name)
		if p.Required {
			b.WriteString(".AsRequired()")
		}
	case annotation.SourceBody:
		b.WriteString("annotation.BodyParam()")
		if !p.Required {
			b.WriteString(".AsOptional()")
		}
	case annotation.SourceContext:
		fmt.Fprintf(&b, "annotation.ContextParam(%q)", p.Name)
		if p.Required {
			b.WriteString(".AsRequired()")
		}
	}
	if p.Default != "" {
		fmt.Fprintf(&b, ".WithDefault(%q)", p.Default)
	}
	return b.String()
}
