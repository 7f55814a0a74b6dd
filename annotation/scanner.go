package annotation

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/SaiNageswarS/go-rest-boot/logger"
	"go.uber.org/zap"
)

// Prefix marks a comment line as a go-rest-boot annotation, e.g.
//
//	//rest:controller /api/users
//	//rest:get /{id}
//	//rest:public
//	//rest:auth validators=admin_only,same_user mode=any
//	//rest:param query verbose default=false
const Prefix = "rest:"

// Scanner recovers annotation occurrences from Go source comments. A
// malformed annotation is logged and skipped; it never aborts the scan.
type Scanner struct {
	fset *token.FileSet
}

func NewScanner() *Scanner {
	return &Scanner{fset: token.NewFileSet()}
}

// ScanDir walks root recursively and extracts annotations from every non-test
// .go file. When include paths are given, only files under those root-relative
// prefixes are scanned.
func (s *Scanner) ScanDir(root string, include ...string) ([]Occurrence, error) {
	var occurrences []Occurrence

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		if !included(root, path, include) {
			return nil
		}

		occs, err := s.ScanFile(path)
		if err != nil {
			// Unparseable file: discovery is best-effort.
			logger.Warn("skipping unparseable file", zap.String("file", path), zap.Error(err))
			return nil
		}
		occurrences = append(occurrences, occs...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return occurrences, nil
}

func included(root, path string, include []string) bool {
	if len(include) == 0 {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, inc := range include {
		if rel == inc || strings.HasPrefix(rel, strings.TrimSuffix(inc, "/")+"/") {
			return true
		}
	}
	return false
}

// ScanFile extracts annotations from a single source file.
func (s *Scanner) ScanFile(path string) ([]Occurrence, error) {
	file, err := parser.ParseFile(s.fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s.extract(file, path), nil
}

// ParseSource parses source code from a string. Used by tests and tooling.
func (s *Scanner) ParseSource(filename, source string) ([]Occurrence, error) {
	file, err := parser.ParseFile(s.fset, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return s.extract(file, filename), nil
}

func (s *Scanner) extract(file *ast.File, fileName string) []Occurrence {
	var occurrences []Occurrence

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok != token.TYPE || node.Doc == nil {
				return true
			}
			for _, spec := range node.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := typeSpec.Type.(*ast.StructType); !ok {
					continue
				}
				occurrences = append(occurrences,
					s.extractDecl(node.Doc, typeSpec.Name.Name, true, fileName)...)
			}
		case *ast.FuncDecl:
			if node.Doc == nil || node.Recv == nil || len(node.Recv.List) == 0 {
				return true
			}
			recv := receiverName(node.Recv.List[0].Type)
			if recv == "" {
				return true
			}
			target := recv + "." + node.Name.Name
			occurrences = append(occurrences,
				s.extractDecl(node.Doc, target, false, fileName)...)
		}
		return true
	})

	return occurrences
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

// extractDecl parses all annotation lines of one declaration. Param lines are
// folded into the verb occurrence of the same declaration.
func (s *Scanner) extractDecl(doc *ast.CommentGroup, target string, classLevel bool, fileName string) []Occurrence {
	var occs []Occurrence
	var params []ParamSpec
	var verbIdxs []int

	for _, comment := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		if !strings.HasPrefix(text, Prefix) {
			continue
		}
		text = strings.TrimPrefix(text, Prefix)

		occ, param, err := parseAnnotation(text, target, classLevel)
		if err != nil {
			logger.Warn("skipping malformed annotation",
				zap.String("file", fileName),
				zap.String("target", target),
				zap.String("annotation", text),
				zap.Error(err))
			continue
		}

		if param != nil {
			params = append(params, *param)
			continue
		}

		occ.File = fileName
		occs = append(occs, occ)
		if _, isVerb := occ.Kind.HTTPMethod(); isVerb {
			verbIdxs = append(verbIdxs, len(occs)-1)
		}
	}

	if len(params) > 0 {
		if len(verbIdxs) == 0 {
			logger.Warn("param annotations without a verb annotation",
				zap.String("file", fileName), zap.String("target", target))
		} else {
			// A declaration may carry several verbs; each gets its own copy of
			// the declared params.
			for _, i := range verbIdxs {
				occs[i].Params = append([]ParamSpec(nil), params...)
			}
		}
	}

	return occs
}

func parseAnnotation(text, target string, classLevel bool) (Occurrence, *ParamSpec, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Occurrence{}, nil, fmt.Errorf("empty annotation")
	}

	switch fields[0] {
	case "controller":
		if !classLevel {
			return Occurrence{}, nil, fmt.Errorf("controller annotation on a method")
		}
		if len(fields) < 2 {
			return Occurrence{}, nil, fmt.Errorf("controller annotation missing base path")
		}
		return Occurrence{Kind: KindRestController, Target: target, Path: fields[1]}, nil, nil

	case "get", "post", "put", "patch", "delete":
		if classLevel {
			return Occurrence{}, nil, fmt.Errorf("%s annotation on a type", fields[0])
		}
		if len(fields) < 2 {
			return Occurrence{}, nil, fmt.Errorf("%s annotation missing path", fields[0])
		}
		kinds := map[string]Kind{
			"get": KindGet, "post": KindPost, "put": KindPut,
			"patch": KindPatch, "delete": KindDelete,
		}
		return Occurrence{Kind: kinds[fields[0]], Target: target, Path: fields[1]}, nil, nil

	case "public":
		if classLevel {
			return Occurrence{}, nil, fmt.Errorf("public annotation on a type")
		}
		return Occurrence{Kind: KindJWTPublic, Target: target}, nil, nil

	case "auth":
		occ := Occurrence{Target: target, RequireAll: true}
		if classLevel {
			occ.Kind = KindJWTController
		} else {
			occ.Kind = KindJWTEndpoint
		}
		for _, f := range fields[1:] {
			switch {
			case strings.HasPrefix(f, "validators="):
				occ.Validators = strings.Split(strings.TrimPrefix(f, "validators="), ",")
			case f == "mode=all":
				occ.RequireAll = true
			case f == "mode=any":
				occ.RequireAll = false
			default:
				return Occurrence{}, nil, fmt.Errorf("unknown auth option %q", f)
			}
		}
		return occ, nil, nil

	case "param":
		if classLevel {
			return Occurrence{}, nil, fmt.Errorf("param annotation on a type")
		}
		spec, err := parseParam(fields[1:])
		if err != nil {
			return Occurrence{}, nil, err
		}
		return Occurrence{}, spec, nil
	}

	return Occurrence{}, nil, fmt.Errorf("unknown annotation kind %q", fields[0])
}

func parseParam(fields []string) (*ParamSpec, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("param annotation missing source")
	}

	spec := ParamSpec{}
	switch fields[0] {
	case "path":
		spec.Source = SourcePath
		spec.Required = true
	case "query":
		spec.Source = SourceQuery
	case "header":
		spec.Source = SourceHeader
	case "body":
		spec.Source = SourceBody
		spec.Required = true
	case "context":
		spec.Source = SourceContext
	default:
		return nil, fmt.Errorf("unknown param source %q", fields[0])
	}

	rest := fields[1:]
	if spec.Source != SourceBody {
		if len(rest) == 0 {
			return nil, fmt.Errorf("%s param missing name", fields[0])
		}
		spec.Name = rest[0]
		rest = rest[1:]
	}

	for _, f := range rest {
		switch {
		case f == "required":
			spec.Required = true
		case f == "optional":
			spec.Required = false
		case strings.HasPrefix(f, "default="):
			spec.Default = strings.TrimPrefix(f, "default=")
		default:
			return nil, fmt.Errorf("unknown param option %q", f)
		}
	}

	return &spec, nil
}
