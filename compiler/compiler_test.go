package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen/compiler/gen"
)

func TestLoadGraph(t *testing.T) {
	cfg := &gen.Config{}
	graph, err := LoadGraph(context.Background(), "./load/testdata/command", cfg)
	require.NoError(t, err)
	require.Len(t, graph.Nodes, 1)

	typ := graph.Nodes[0]
	assert.Equal(t, "Command", typ.Name)
	assert.Equal(t, "github.com/syssam/buildergen/compiler/load/testdata/command", typ.PkgPath)
	assert.Equal(t, "command", typ.Package)
	assert.True(t, filepath.IsAbs(graph.Config.Target))
	assert.Equal(t, "command", filepath.Base(graph.Config.Target))
	assert.Empty(t, cfg.Target, "caller config is not modified")

	args := typ.Fields[1]
	assert.Equal(t, gen.Repeated, args.Shape)
	assert.Equal(t, "arg", args.Method())
}

func TestLoadGraph_Types(t *testing.T) {
	graph, err := LoadGraph(context.Background(), "./load/testdata/command", &gen.Config{}, Types("Unmarked"))
	require.NoError(t, err)
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, "Unmarked", graph.Nodes[0].Name)

	_, err = LoadGraph(context.Background(), "./load/testdata/command", &gen.Config{}, Types(""))
	require.Error(t, err)
}

func TestLoadGraph_BuildTags(t *testing.T) {
	graph, err := LoadGraph(context.Background(), "./load/testdata/buildflags", &gen.Config{})
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 2)

	graph, err = LoadGraph(context.Background(), "./load/testdata/buildflags", &gen.Config{}, BuildTags("hidegroups"))
	require.NoError(t, err)
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, "User", graph.Nodes[0].Name)
}

func TestLoadGraph_Errors(t *testing.T) {
	_, err := LoadGraph(context.Background(), "./load/testdata/invalid", &gen.Config{})
	require.Error(t, err)

	_, err = LoadGraph(context.Background(), "", &gen.Config{})
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	target := t.TempDir()
	err := Generate(context.Background(), "./load/testdata/command", &gen.Config{Target: target, Features: []gen.Feature{gen.FeatureBuildX}})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(target, "command_builder.go"))
	require.NoError(t, err)
	for _, want := range []string{
		"package command",
		`"io"`,
		`"time"`,
		"func NewCommandBuilder() *CommandBuilder",
		"func (b *CommandBuilder) arg(arg string) *CommandBuilder",
		"func (b *CommandBuilder) env(env string) *CommandBuilder",
		"func (b *CommandBuilder) Timeout(timeout time.Duration) *CommandBuilder",
		"func (b *CommandBuilder) BuildX() *Command",
	} {
		assert.Contains(t, string(content), want)
	}
}
