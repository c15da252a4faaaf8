package gen

// Description is the serializable view of a classified record, printed
// by the describe command.
type Description struct {
	Name        string              `json:"name" yaml:"name"`
	Package     string              `json:"package,omitempty" yaml:"package,omitempty"`
	Pos         string              `json:"pos,omitempty" yaml:"pos,omitempty"`
	Builder     string              `json:"builder" yaml:"builder"`
	Constructor string              `json:"constructor" yaml:"constructor"`
	File        string              `json:"file" yaml:"file"`
	Fields      []*FieldDescription `json:"fields" yaml:"fields"`
}

// FieldDescription describes the classification of one field.
type FieldDescription struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Shape   string `json:"shape" yaml:"shape"`
	Inner   string `json:"inner" yaml:"inner"`
	Each    string `json:"each,omitempty" yaml:"each,omitempty"`
	Wrapper string `json:"wrapper,omitempty" yaml:"wrapper,omitempty"`
	Method  string `json:"method" yaml:"method"`
	Slot    string `json:"slot" yaml:"slot"`
}

// Describe returns the description of the type.
func (t *Type) Describe() *Description {
	d := &Description{
		Name:        t.Name,
		Package:     t.PkgPath,
		Pos:         t.Pos(),
		Builder:     t.BuilderName(),
		Constructor: t.Constructor(),
		File:        t.Filename(),
		Fields:      make([]*FieldDescription, 0, len(t.Fields)),
	}
	for _, f := range t.Fields {
		fd := &FieldDescription{
			Name:   f.Name,
			Type:   f.Type.String(),
			Shape:  f.Shape.String(),
			Inner:  f.Inner.String(),
			Each:   f.Each,
			Method: f.Method(),
			Slot:   f.Slot,
		}
		if f.Wrapper != nil {
			fd.Wrapper = f.Wrapper.Name
		}
		d.Fields = append(d.Fields, fd)
	}
	return d
}

// Describe returns the descriptions of all types in the graph.
func (g *Graph) Describe() []*Description {
	ds := make([]*Description, len(g.Nodes))
	for i, t := range g.Nodes {
		ds[i] = t.Describe()
	}
	return ds
}
