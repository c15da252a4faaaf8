package gen

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/buildergen/compiler/load"
)

// Graph holds the record types of one generation pass.
type Graph struct {
	*Config
	// Nodes are the record types, in load order.
	Nodes []*Type
}

// NewGraph creates a new graph from the loaded records. It fails on the
// first record that cannot be classified, and on records sharing a name.
func NewGraph(c *Config, records ...*load.Record) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing configuration")
	}
	g := &Graph{Config: c, Nodes: make([]*Type, 0, len(records))}
	seen := make(map[string]*load.Record, len(records))
	for _, r := range records {
		if r == nil {
			return nil, errors.New("nil record")
		}
		if prev, ok := seen[r.Name]; ok {
			return nil, NewConflictError(r.Name, r.Name+"Builder", recordMember(prev), recordMember(r))
		}
		seen[r.Name] = r
		t, err := NewType(c, r)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
	}
	return g, nil
}

// NewGraphFromSpec creates a new graph from a loaded package spec.
func NewGraphFromSpec(c *Config, spec *load.Spec) (*Graph, error) {
	if spec == nil {
		return nil, errors.New("nil spec")
	}
	return NewGraph(c, spec.Records...)
}

// Gen generates the builders of the graph into the configured target.
func (g *Graph) Gen(ctx context.Context) error {
	return NewGenerator(g, "").Generate(ctx)
}

// Type returns the node with the given record name.
func (g *Graph) Type(name string) (*Type, bool) {
	for _, t := range g.Nodes {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

func recordMember(r *load.Record) string {
	if r.Pos == "" {
		return fmt.Sprintf("record %s", r.Name)
	}
	return fmt.Sprintf("record %s (%s)", r.Name, r.Pos)
}
