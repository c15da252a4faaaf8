package gen

import (
	"errors"
	"go/token"
	"strings"

	"github.com/syssam/buildergen/compiler/load"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/models".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithoutFeatures disables specific features, including default ones.
func WithoutFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Disabled = append(c.Disabled, features...)
		return nil
	}
}

// WithFeatureNames enables features by name, as used in configuration files.
// A name prefixed with "-" disables the feature.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			disable := strings.HasPrefix(name, "-")
			f, ok := FeatureByName(strings.TrimPrefix(name, "-"))
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			if disable {
				c.Disabled = append(c.Disabled, f)
			} else {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithOptionalWrappers replaces the optional wrappers recognized by the
// classifier. Include {Name: "*"} to keep pointers optional.
func WithOptionalWrappers(wrappers ...Wrapper) Option {
	return func(c *Config) error {
		for _, w := range wrappers {
			if err := checkWrapperName("OptionalWrappers", w.Name); err != nil {
				return err
			}
			if w.Name == load.WrapperSlice {
				return NewConfigError("OptionalWrappers", w.Name, "slices cannot be optional wrappers")
			}
			if w.Name != load.WrapperPointer && !token.IsIdentifier(w.Some) {
				return NewConfigError("OptionalWrappers", w.Name, "generic optional wrappers require a Some function")
			}
		}
		c.OptionalWrappers = append([]Wrapper(nil), wrappers...)
		return nil
	}
}

// WithRepeatedWrappers replaces the repeated wrappers recognized by the
// classifier. Generic repeated wrappers must have a slice underlying type,
// e.g. type List[T any] []T.
func WithRepeatedWrappers(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if err := checkWrapperName("RepeatedWrappers", name); err != nil {
				return err
			}
			if name == load.WrapperPointer {
				return NewConfigError("RepeatedWrappers", name, "pointers cannot be repeated wrappers")
			}
		}
		c.RepeatedWrappers = append([]string(nil), names...)
		return nil
	}
}

// WithLenientDirectives ignores builder directives on fields that are not
// repeated wrappers. By default such directives fail generation.
func WithLenientDirectives() Option {
	return func(c *Config) error {
		c.LenientDirectives = true
		return nil
	}
}

// WithWorkers sets the number of files rendered in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// checkWrapperName accepts "*", "[]", Name and pkg.Name.
func checkWrapperName(option, name string) error {
	if name == load.WrapperPointer || name == load.WrapperSlice {
		return nil
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return NewConfigError(option, name, "invalid wrapper name")
	}
	for _, p := range parts {
		if !token.IsIdentifier(p) {
			return NewConfigError(option, name, "invalid wrapper name")
		}
	}
	return nil
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
