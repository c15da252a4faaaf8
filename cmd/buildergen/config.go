package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/syssam/buildergen/compiler"
	"github.com/syssam/buildergen/compiler/gen"
)

// DefaultConfigFile is looked up in the package directory when no
// configuration file is given.
const DefaultConfigFile = ".buildergen.yaml"

// Configuration is the content of a .buildergen.yaml file.
type Configuration struct {
	// Header replaces the header comment of generated files.
	Header string `yaml:"header"`
	// Target is the output directory. Defaults to the package directory.
	Target string `yaml:"target"`
	// Types restricts generation to the named record types.
	Types []string `yaml:"types"`
	// Features are the names of the enabled features. A "-" prefix
	// disables a feature enabled by default.
	Features []string `yaml:"features"`
	// BuildTags are passed to the package loader.
	BuildTags []string `yaml:"build_tags"`
	// LenientDirectives ignores builder directives on non-repeated fields.
	LenientDirectives bool `yaml:"lenient_directives"`
	// Workers limits the number of files rendered in parallel.
	Workers int `yaml:"workers"`
	// Wrappers configures the classifier.
	Wrappers struct {
		Optional []gen.Wrapper `yaml:"optional"`
		Repeated []string      `yaml:"repeated"`
	} `yaml:"wrappers"`
	// Log configures the command logger.
	Log struct {
		Level     string `yaml:"level"`
		Formatter string `yaml:"formatter"`
	} `yaml:"log"`
}

// ParseConfiguration parses a YAML configuration.
func ParseConfiguration(buf []byte) (*Configuration, error) {
	c := &Configuration{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return c, nil
}

// resolveConfiguration reads the configuration file at path. An empty path
// looks up DefaultConfigFile in dir, and a missing default file yields an
// empty configuration.
func resolveConfiguration(path, dir string) (*Configuration, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultConfigFile)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Configuration{}, nil
		}
		return nil, err
	}
	c, err := ParseConfiguration(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// options returns the codegen options of the configuration.
func (c *Configuration) options() []gen.Option {
	opts := []gen.Option{gen.WithFeatureNames(c.Features...)}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Target != "" {
		opts = append(opts, gen.WithTarget(c.Target))
	}
	if len(c.Wrappers.Optional) > 0 {
		opts = append(opts, gen.WithOptionalWrappers(c.Wrappers.Optional...))
	}
	if len(c.Wrappers.Repeated) > 0 {
		opts = append(opts, gen.WithRepeatedWrappers(c.Wrappers.Repeated...))
	}
	if c.LenientDirectives {
		opts = append(opts, gen.WithLenientDirectives())
	}
	if c.Workers != 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts
}

// loadOptions returns the package loading options of the configuration.
func (c *Configuration) loadOptions(dir string) []compiler.Option {
	return []compiler.Option{
		compiler.Dir(dir),
		compiler.Types(c.Types...),
		compiler.BuildTags(c.BuildTags...),
	}
}

// merge overrides the configuration with the command line flags.
func (c *Configuration) merge(f *flags) {
	c.Types = append(c.Types, f.types...)
	c.Features = append(c.Features, f.features...)
	c.BuildTags = append(c.BuildTags, f.tags...)
	if f.target != "" {
		c.Target = f.target
	}
	if f.header != "" {
		c.Header = f.header
	}
	if f.lenient {
		c.LenientDirectives = true
	}
}

// configureLogging sets the level and formatter of the logger.
func configureLogging(c *Configuration, verbose bool) error {
	level := log.InfoLevel
	if c.Log.Level != "" {
		l, err := log.ParseLevel(c.Log.Level)
		if err != nil {
			return err
		}
		level = l
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	switch c.Log.Formatter {
	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return fmt.Errorf("unsupported logging formatter: %q", c.Log.Formatter)
	}
	if c.Log.Formatter != "" {
		log.Debugf("using %q logging formatter", c.Log.Formatter)
	}
	return nil
}
