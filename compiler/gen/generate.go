package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// Generator renders the builders of a graph with jennifer. Imports are
// tracked by jennifer, and files are formatted and streamed to disk.
type Generator struct {
	graph   *Graph
	workers int
	outDir  string
}

// NewGenerator creates a new generator writing to outDir. An empty outDir
// uses the graph's target directory.
//
// Example:
//
//	graph, err := gen.NewGraph(cfg, records...)
//	if err != nil {
//		return err
//	}
//	err = gen.NewGenerator(graph, dir).Generate(ctx)
func NewGenerator(g *Graph, outDir string) *Generator {
	if outDir == "" && g.Config != nil {
		outDir = g.Config.Target
	}
	return &Generator{
		graph:   g,
		workers: g.Config.workers(),
		outDir:  outDir,
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Generate writes one file per record type. Records share no state, so
// their files are rendered in parallel.
func (g *Generator) Generate(ctx context.Context) error {
	if g.outDir == "" {
		return NewConfigError("Target", nil, "missing output directory")
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return NewGenerationError("mkdir", g.outDir, "create output directory", err)
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, t := range g.graph.Nodes {
		t := t
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.writeFile(g.File(t), t.Filename())
		})
	}
	return errg.Wait()
}

// File renders the builder of the given type into a new file of the
// record's package.
func (g *Generator) File(t *Type) *jen.File {
	f := newFile(t)
	imports(f, t)
	f.ImportName(RuntimePackage, "buildergen")
	for _, code := range Emit(t).Code() {
		f.Add(code)
		f.Line()
	}
	return f
}

// Files renders the builders of all types in the graph, keyed by file name.
func (g *Generator) Files() map[string]*jen.File {
	files := make(map[string]*jen.File, len(g.graph.Nodes))
	for _, t := range g.graph.Nodes {
		files[t.Filename()] = g.File(t)
	}
	return files
}

// writeFile renders the file to the output directory.
func (g *Generator) writeFile(f *jen.File, filename string) (err error) {
	path := filepath.Join(g.outDir, filename)
	out, err := os.Create(path)
	if err != nil {
		return NewGenerationError("create", path, "create file", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = NewGenerationError("close", path, "close file", cerr)
		}
	}()
	// Jennifer renders with correct imports and formatting.
	if err := f.Render(out); err != nil {
		return NewGenerationError("render", path, "render builder", err)
	}
	return nil
}

// newFile creates a new jennifer file with the header comment.
func newFile(t *Type) *jen.File {
	var f *jen.File
	if t.PkgPath != "" {
		f = jen.NewFilePathName(t.PkgPath, t.Package)
	} else {
		f = jen.NewFile(t.Package)
	}
	f.HeaderComment(t.Config.HeaderComment())
	return f
}

// Render renders the builder of the given type as formatted Go source.
func Render(t *Type) ([]byte, error) {
	var b bytes.Buffer
	if err := (&Generator{}).File(t).Render(&b); err != nil {
		return nil, NewGenerationError("render", t.Filename(), fmt.Sprintf("render builder of %s", t.Name), err)
	}
	return b.Bytes(), nil
}
