// testgen demonstrates the jennifer-based builder generator on an
// in-memory record.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

const source = `package command

import "time"

// +builder
type Command struct {
	Executable string
	// +builder(each = "Arg")
	Args       []string
	CurrentDir *string
	Timeout    time.Duration
}
`

func main() {
	outDir, err := os.MkdirTemp("", "buildergen-test-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	spec, err := load.ParseSource("command.go", source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse source: %v\n", err)
		os.Exit(1)
	}

	config, err := gen.NewConfig(
		gen.WithPackage("example.com/command"),
		gen.WithTarget(outDir),
		gen.WithFeatures(gen.FeatureBuildX),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}

	graph, err := gen.NewGraphFromSpec(config, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generating builders with jennifer...")
	if err := graph.Gen(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	err = filepath.Walk(outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(outDir, path)
		fmt.Printf("  %s (%d bytes)\n", rel, info.Size())
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list files: %v\n", err)
		os.Exit(1)
	}
}
