package gen

import (
	"fmt"
	"runtime"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by buildergen. DO NOT EDIT."

// Config holds the global codegen configuration.
type Config struct {
	// Package is the import path of the package the builders are
	// generated into. Records loaded from Go source carry their own
	// package path, and this value is only used as a fallback.
	Package string
	// Target is the directory generated files are written to.
	Target string
	// Header is the header comment of generated files.
	Header string
	// Features are the enabled feature-flags.
	Features []Feature
	// Disabled are feature-flags turned off, including ones enabled by
	// default. Disabling wins over enabling.
	Disabled []Feature
	// OptionalWrappers and RepeatedWrappers configure the classifier.
	// Empty values mean DefaultWrappers.
	OptionalWrappers []Wrapper
	RepeatedWrappers []string
	// LenientDirectives ignores directives attached to fields that are
	// not repeated wrappers instead of rejecting them.
	LenientDirectives bool
	// Workers limits the number of files rendered in parallel.
	Workers int
}

// Wrappers returns the wrappers recognized by the classifier.
func (c *Config) Wrappers() Wrappers {
	w := DefaultWrappers
	if c == nil {
		return w
	}
	if len(c.OptionalWrappers) > 0 {
		w.Optional = c.OptionalWrappers
	}
	if len(c.RepeatedWrappers) > 0 {
		w.Repeated = c.RepeatedWrappers
	}
	return w
}

// FeatureEnabled reports if the given feature name is enabled.
// It returns an error if the feature name does not exist.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if f.Name != name {
			continue
		}
		if c == nil {
			return f.Default, nil
		}
		for _, d := range c.Disabled {
			if d.Name == name {
				return false, nil
			}
		}
		for _, e := range c.Features {
			if e.Name == name {
				return true, nil
			}
		}
		return f.Default, nil
	}
	return false, fmt.Errorf("unexpected feature name %q", name)
}

// HeaderComment returns the header comment of generated files.
func (c *Config) HeaderComment() string {
	if c == nil || c.Header == "" {
		return DefaultHeader
	}
	return c.Header
}

// workers returns the number of parallel render workers.
func (c *Config) workers() int {
	if c == nil || c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}
