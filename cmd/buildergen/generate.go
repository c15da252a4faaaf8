package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/syssam/buildergen/compiler"
	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

// flags are the input flags shared by generate, describe and watch.
type flags struct {
	verbose  *bool
	dir      string
	config   string
	schema   string
	file     string
	target   string
	header   string
	types    []string
	features []string
	tags     []string
	lenient  bool
}

func (f *flags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.dir, "dir", ".", "directory of the package holding the records")
	fs.StringVar(&f.config, "config", "", "configuration file (default <dir>/"+DefaultConfigFile+")")
	fs.StringVar(&f.schema, "schema", "", "read the records from a JSON file instead of a Go package")
	fs.StringVar(&f.file, "file", "", "read the records from a single Go source file instead of a package")
	fs.StringVar(&f.target, "target", "", "output directory (default <dir>)")
	fs.StringVar(&f.header, "header", "", "header comment of generated files")
	fs.StringSliceVarP(&f.types, "type", "t", nil, "record types to generate, marked types if empty")
	fs.StringSliceVar(&f.features, "feature", nil, "features to enable")
	fs.StringSliceVar(&f.tags, "tags", nil, "build tags passed to the package loader")
	fs.BoolVar(&f.lenient, "lenient", false, "ignore builder directives on non-repeated fields")
}

// args accepts the package directory as an optional argument.
func (f *flags) args(args []string) {
	if len(args) == 1 {
		f.dir = args[0]
	}
}

// graph resolves the configuration and loads the records.
func (f *flags) graph(ctx context.Context) (*gen.Graph, error) {
	c, err := resolveConfiguration(f.config, f.dir)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	c.merge(f)
	if err := configureLogging(c, f.verbose != nil && *f.verbose); err != nil {
		return nil, fmt.Errorf("unable to configure logging: %w", err)
	}
	cfg, err := gen.NewConfig(c.options()...)
	if err != nil {
		return nil, err
	}
	if f.schema == "" && f.file == "" {
		log.WithField("dir", f.dir).Debug("loading package")
		return compiler.LoadGraph(ctx, ".", cfg, c.loadOptions(f.dir)...)
	}
	spec, err := f.spec(c.Types)
	if err != nil {
		return nil, err
	}
	if cfg.Target == "" {
		cfg.Target = f.dir
		if f.file != "" {
			cfg.Target = filepath.Dir(f.file)
		}
	}
	if cfg.Package == "" && spec.PkgPath != "" {
		cfg.Package = spec.PkgPath
	}
	return gen.NewGraphFromSpec(cfg, spec)
}

// spec reads the records from the --schema or --file input.
func (f *flags) spec(types []string) (*load.Spec, error) {
	if f.schema != "" && f.file != "" {
		return nil, errors.New("--schema and --file are mutually exclusive")
	}
	if f.file != "" {
		log.WithField("file", f.file).Debug("parsing source file")
		return load.ParseSource(f.file, nil, types...)
	}
	log.WithField("schema", f.schema).Debug("loading schema")
	buf, err := os.ReadFile(f.schema)
	if err != nil {
		return nil, err
	}
	spec, err := load.UnmarshalSpec(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.schema, err)
	}
	return spec, nil
}

// generate loads the records and writes their builders.
func (f *flags) generate(ctx context.Context) error {
	graph, err := f.graph(ctx)
	if err != nil {
		return err
	}
	if err := graph.Gen(ctx); err != nil {
		return err
	}
	for _, t := range graph.Nodes {
		log.WithFields(log.Fields{
			"record": t.Name,
			"file":   filepath.Join(graph.Target, t.Filename()),
		}).Debug("generated builder")
	}
	log.WithField("records", len(graph.Nodes)).Info("generation completed")
	return nil
}

// NewGenerateCmd returns the command writing one builder file per record.
func NewGenerateCmd(verbose *bool) *cobra.Command {
	f := &flags{verbose: verbose}
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "`generate` writes the builders of the records in a package",
		Example: "  buildergen generate\n" +
			"  buildergen generate --type Command ./command\n" +
			"  buildergen generate --schema records.json --target ./model",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.args(args)
			return f.generate(cmd.Context())
		},
	}
	f.register(cmd)
	return cmd
}
