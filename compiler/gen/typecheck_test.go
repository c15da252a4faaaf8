package gen

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen/compiler/load"
)

// sourceImporter type-checks packages from in-memory sources, and imports
// the standard library through the default importer.
type sourceImporter struct {
	fset *token.FileSet
	srcs map[string]string
	pkgs map[string]*types.Package
	std  types.Importer
}

func (imp *sourceImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := imp.pkgs[path]; ok {
		return pkg, nil
	}
	src, ok := imp.srcs[path]
	if !ok {
		return imp.std.Import(path)
	}
	file, err := parser.ParseFile(imp.fset, path+".go", src, 0)
	if err != nil {
		return nil, err
	}
	pkg, err := (&types.Config{Importer: imp}).Check(path, imp.fset, []*ast.File{file}, nil)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	imp.pkgs[path] = pkg
	return pkg, nil
}

// typecheck renders the builder of r and type-checks it together with
// the record declaration in src. deps holds the sources of the packages
// imported by either file that are not in the standard library. It
// returns the rendered builder with whitespace collapsed.
func typecheck(t *testing.T, c *Config, r *load.Record, src string, deps map[string]string) string {
	t.Helper()
	typ, err := NewType(c, r)
	require.NoError(t, err, spew.Sdump(r))
	out, err := Render(typ)
	require.NoError(t, err)

	runtime, err := os.ReadFile(filepath.Join("..", "..", "errors.go"))
	require.NoError(t, err)
	fset := token.NewFileSet()
	imp := &sourceImporter{
		fset: fset,
		srcs: map[string]string{RuntimePackage: string(runtime)},
		pkgs: make(map[string]*types.Package),
		std:  importer.Default(),
	}
	for path, dep := range deps {
		imp.srcs[path] = dep
	}
	record, err := parser.ParseFile(fset, "record.go", src, parser.ParseComments)
	require.NoError(t, err)
	builder, err := parser.ParseFile(fset, typ.Filename(), out, 0)
	require.NoError(t, err, string(out))

	pkgPath := typ.PkgPath
	if pkgPath == "" {
		pkgPath = typ.Package
	}
	_, err = (&types.Config{Importer: imp}).Check(pkgPath, fset, []*ast.File{record, builder}, nil)
	require.NoError(t, err, string(out))
	return space.ReplaceAllString(string(out), " ")
}

// parseRecord extracts the single marked record of src.
func parseRecord(t *testing.T, src string) *load.Record {
	t.Helper()
	spec, err := load.ParseSource("record.go", src)
	require.NoError(t, err)
	require.Len(t, spec.Records, 1)
	return spec.Records[0]
}
