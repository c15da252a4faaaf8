// Package compiler joins the Go package loader and the builder generator.
//
//	err := compiler.Generate(ctx, "./command", &gen.Config{})
package compiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

// Option allows for managing the package loading configuration.
type Option func(*load.Config) error

// BuildFlags appends the given flags to the build system flags.
func BuildFlags(flags ...string) Option {
	return func(c *load.Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// BuildTags appends the given tags to the build system flags.
func BuildTags(tags ...string) Option {
	return func(c *load.Config) error {
		if len(tags) == 0 {
			return nil
		}
		c.BuildFlags = append(c.BuildFlags, "-tags", strings.Join(tags, ","))
		return nil
	}
}

// Types restricts loading to the named record types. Named types do not
// need a "+builder" marker.
func Types(names ...string) Option {
	return func(c *load.Config) error {
		for _, name := range names {
			if name == "" {
				return errors.New("compiler: empty type name")
			}
		}
		c.Names = append(c.Names, names...)
		return nil
	}
}

// Dir sets the working directory of the build system.
func Dir(dir string) Option {
	return func(c *load.Config) error {
		c.Dir = dir
		return nil
	}
}

// LoadGraph loads the records of the package at path and returns their
// graph. When cfg has no target, builders are generated next to the
// package sources. The given config is not modified.
func LoadGraph(ctx context.Context, path string, cfg *gen.Config, opts ...Option) (*gen.Graph, error) {
	lc := &load.Config{Path: path}
	for _, opt := range opts {
		if err := opt(lc); err != nil {
			return nil, err
		}
	}
	spec, err := lc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(spec.Records) == 0 {
		return nil, fmt.Errorf("compiler: no records found in %s", path)
	}
	c := &gen.Config{}
	if cfg != nil {
		*c = *cfg
	}
	if c.Target == "" {
		c.Target = spec.Dir
	}
	if c.Package == "" {
		c.Package = spec.PkgPath
	}
	return gen.NewGraphFromSpec(c, spec)
}

// Generate loads the package at path and writes the builders of its
// records.
func Generate(ctx context.Context, path string, cfg *gen.Config, opts ...Option) error {
	graph, err := LoadGraph(ctx, path, cfg, opts...)
	if err != nil {
		return err
	}
	return graph.Gen(ctx)
}
