package load

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// marker is the comment prefix of builder attributes, both on record
// declarations ("+builder") and on fields ("+builder(each = "arg")").
const marker = "+builder"

// Extract returns the record described by the given type declaration.
// It fails with an UnsupportedShapeError when the declaration is not a
// flat named-field struct.
func Extract(fset *token.FileSet, file *ast.File, spec *ast.TypeSpec, imports map[string]string) (*Record, error) {
	name := spec.Name.Name
	pos := fset.Position(spec.Pos()).String()
	if spec.TypeParams != nil && spec.TypeParams.NumFields() > 0 {
		return nil, NewUnsupportedShapeError(name, pos, "generic records are not supported")
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, NewUnsupportedShapeError(name, pos, fmt.Sprintf("expected a struct type, got %s", typeKind(spec.Type)))
	}
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return nil, NewUnsupportedShapeError(name, pos, "record has no named fields")
	}
	if imports == nil {
		imports = FileImports(file, nil)
	}
	r := &Record{
		Name:    name,
		Package: file.Name.Name,
		Pos:     pos,
	}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			return nil, NewUnsupportedShapeError(name, fset.Position(f.Pos()).String(),
				fmt.Sprintf("embedded field %s is positional", NewTypeExpr(f.Type, imports)))
		}
		attrs := append(Attributes(f.Doc), Attributes(f.Comment)...)
		for _, ident := range f.Names {
			if ident.Name == "_" {
				return nil, NewUnsupportedShapeError(name, fset.Position(ident.Pos()).String(), "blank field cannot be set by name")
			}
			r.Fields = append(r.Fields, &Field{
				Name:       ident.Name,
				Type:       NewTypeExpr(f.Type, imports),
				Attributes: attrs,
				Pos:        fset.Position(ident.Pos()).String(),
			})
		}
	}
	return r, nil
}

// ParseSource parses a single Go source file and extracts the named records.
// When no names are given, every type marked with a "+builder" comment is
// extracted. The src argument follows the go/parser.ParseFile conventions.
func ParseSource(filename string, src any, names ...string) (*Spec, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	records, err := extractFiles(fset, []*ast.File{file}, nil, names)
	if err != nil {
		return nil, err
	}
	return &Spec{Package: file.Name.Name, Records: records}, nil
}

// extractFiles extracts records from the files of one package. Named
// records are returned in the order of names, marked records in source
// order.
func extractFiles(fset *token.FileSet, files []*ast.File, known map[string]string, names []string) ([]*Record, error) {
	found := make(map[string]*Record)
	var marked []*Record
	for _, file := range files {
		imports := FileImports(file, known)
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				want := len(names) > 0 && slices.Contains(names, typeSpec.Name.Name)
				mark := len(names) == 0 && (hasMarker(typeSpec.Doc) || len(genDecl.Specs) == 1 && hasMarker(genDecl.Doc))
				if !want && !mark {
					continue
				}
				r, err := Extract(fset, file, typeSpec, imports)
				if err != nil {
					return nil, err
				}
				if want {
					found[r.Name] = r
				} else {
					marked = append(marked, r)
				}
			}
		}
	}
	if len(names) == 0 {
		return marked, nil
	}
	records := make([]*Record, 0, len(names))
	for _, name := range names {
		r, ok := found[name]
		if !ok {
			return nil, fmt.Errorf("type %q not found", name)
		}
		records = append(records, r)
	}
	return records, nil
}

// Attributes returns the raw builder attributes of a comment group, in
// source order. A comment line `// +builder(each = "arg")` yields
// `builder(each = "arg")`.
func Attributes(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}
	var attrs []string
	for _, c := range cg.List {
		for _, line := range commentLines(c.Text) {
			if isMarker(line) {
				attrs = append(attrs, strings.TrimPrefix(line, "+"))
			}
		}
	}
	return attrs
}

// hasMarker reports whether the comment group holds a bare "+builder" line.
func hasMarker(cg *ast.CommentGroup) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		for _, line := range commentLines(c.Text) {
			if line == marker {
				return true
			}
		}
	}
	return false
}

func commentLines(text string) []string {
	switch {
	case strings.HasPrefix(text, "//"):
		return []string{strings.TrimSpace(text[2:])}
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
		lines := strings.Split(text, "\n")
		for i := range lines {
			lines[i] = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(lines[i]), "*"))
		}
		return lines
	}
	return nil
}

// isMarker reports whether line starts with "+builder" followed by a
// non-identifier character, so "+buildergen" is not a marker.
func isMarker(line string) bool {
	if !strings.HasPrefix(line, marker) {
		return false
	}
	rest := line[len(marker):]
	if rest == "" {
		return true
	}
	r := rune(rest[0])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// FileImports maps the package qualifiers used in file to import paths.
// Package names are taken from known (import path to package name) when
// present, and guessed from the import path otherwise.
func FileImports(file *ast.File, known map[string]string) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		var name string
		switch {
		case spec.Name != nil:
			name = spec.Name.Name
		case known[p] != "":
			name = known[p]
		default:
			name = guessPackageName(p)
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = p
	}
	return imports
}

// guessPackageName follows the usual naming conventions of import paths:
// gopkg.in/yaml.v3 is yaml, github.com/x/y/v2 is y and go-json is json.
func guessPackageName(importPath string) string {
	base := path.Base(importPath)
	if isMajorVersion(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, base)
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

func typeKind(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.InterfaceType:
		return "interface"
	case *ast.FuncType:
		return "func"
	case *ast.ChanType:
		return "chan"
	case *ast.MapType:
		return "map"
	case *ast.ArrayType:
		return "array or slice"
	default:
		return "named type " + NewTypeExpr(expr, nil).String()
	}
}
