package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// Config holds the configuration for loading records from a Go package.
type Config struct {
	// Path is the package pattern or directory to load, e.g. "./models".
	Path string
	// Names are the record type names to extract. If empty, all types
	// marked with a "+builder" comment are extracted.
	Names []string
	// BuildFlags are forwarded to the build system, e.g. "-tags=dev".
	BuildFlags []string
	// Dir is the working directory of the build system. Empty means
	// the current directory.
	Dir string
}

// Load loads the package at c.Path and extracts its records.
func (c *Config) Load(ctx context.Context) (*Spec, error) {
	if c.Path == "" {
		return nil, errors.New("load: missing package path")
	}
	pkgs, err := packages.Load(&packages.Config{
		Context:    ctx,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedImports,
	}, c.Path)
	if err != nil {
		return nil, fmt.Errorf("loading package %s: %w", c.Path, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("load: expected one package for %s, got %d", c.Path, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("loading package %s: %w", c.Path, pkg.Errors[0])
	}
	known := make(map[string]string, len(pkg.Imports))
	for p, imp := range pkg.Imports {
		known[p] = imp.Name
	}
	records, err := extractFiles(pkg.Fset, pkg.Syntax, known, c.Names)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", pkg.PkgPath, err)
	}
	for _, r := range records {
		r.PkgPath = pkg.PkgPath
	}
	spec := &Spec{
		Package: pkg.Name,
		PkgPath: pkg.PkgPath,
		Records: records,
	}
	if len(pkg.GoFiles) > 0 {
		spec.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	return spec, nil
}
