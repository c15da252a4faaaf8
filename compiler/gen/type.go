package gen

import (
	"errors"
	"fmt"
	"go/ast"
	"path"

	"github.com/syssam/buildergen/compiler/load"
)

// The following types and their exported methods are used by the
// emitter to generate the builders.
type (
	// Type represents one record and the classification of its fields.
	Type struct {
		*Config
		record *load.Record
		// Name holds the record type name.
		Name string
		// Package and PkgPath identify the package of the record. Builders
		// are generated into the same package.
		Package string
		PkgPath string
		// Fields holds the classified fields in declaration order.
		Fields []*Field
		// qualifiers holds the package names referenced by the generated
		// code. Locals of the builder methods must not shadow them.
		qualifiers map[string]struct{}
	}

	// Field holds the information of a record field used by the emitter.
	Field struct {
		def *load.Field
		typ *Type
		// Name is the name of the record field.
		Name string
		// Type is the declared type of the field.
		Type *load.TypeExpr
		// Directive is the parsed builder directive, if any.
		Directive *Directive
		// Classification is the construction shape of the field.
		Classification
		// Slot is the name of the builder struct field storing the value.
		Slot string
		// Param is the parameter name of the field's mutator.
		Param string
	}
)

// NewType creates a new type and classifies its fields. The directives of
// all fields are validated before any field is classified, so a single
// malformed directive rejects the whole record.
func NewType(c *Config, r *load.Record) (*Type, error) {
	if r == nil || r.Name == "" {
		return nil, errors.New("record name cannot be empty")
	}
	if len(r.Fields) == 0 {
		return nil, load.NewUnsupportedShapeError(r.Name, r.Pos, "record has no named fields")
	}
	directives := make([]*Directive, len(r.Fields))
	for i, f := range r.Fields {
		if f.Type == nil {
			return nil, fmt.Errorf("record %q: missing type for field %q", r.Name, f.Name)
		}
		d, err := ParseDirective(f.Attributes)
		if err != nil {
			return nil, annotate(err, r, f)
		}
		directives[i] = d
	}
	typ := &Type{
		Config:  c,
		record:  r,
		Name:    r.Name,
		Package: r.Package,
		PkgPath: r.PkgPath,
		Fields:  make([]*Field, 0, len(r.Fields)),
	}
	if typ.PkgPath == "" && c != nil {
		typ.PkgPath = c.Package
	}
	wrappers := c.Wrappers()
	for i, f := range r.Fields {
		cl := Classify(f, directives[i], wrappers)
		if directives[i] != nil && cl.Shape != Repeated && (c == nil || !c.LenientDirectives) {
			return nil, annotate(&DirectiveError{
				Kind:      TypeMismatch,
				Attribute: fmt.Sprintf("%s(each = %q)", DirectivePath, directives[i].Each),
				Message:   fmt.Sprintf("directive requires a repeated field, got %s", f.Type),
			}, r, f)
		}
		typ.Fields = append(typ.Fields, &Field{
			def:            f,
			typ:            typ,
			Name:           f.Name,
			Type:           f.Type,
			Directive:      directives[i],
			Classification: cl,
		})
	}
	typ.qualifiers = qualifiers(typ.Fields)
	if err := typ.resolveNames(); err != nil {
		return nil, err
	}
	return typ, nil
}

// annotate attaches the record and field to a directive error.
func annotate(err error, r *load.Record, f *load.Field) error {
	var dirErr *DirectiveError
	if errors.As(err, &dirErr) {
		dirErr.Type = r.Name
		dirErr.Field = f.Name
		dirErr.Pos = f.Pos
	}
	return err
}

// resolveNames assigns the mutator, slot and parameter names, and fails
// if two generated methods share a name.
func (t *Type) resolveNames() error {
	methods := make(map[string]string)
	add := func(name, member string) error {
		if prev, ok := methods[name]; ok {
			return NewConflictError(t.Name, name, prev, member)
		}
		methods[name] = member
		return nil
	}
	for _, f := range t.Fields {
		if err := add(f.Method(), fmt.Sprintf("field %s", f.Name)); err != nil {
			return err
		}
	}
	if err := add(t.BuildMethod(), "the build method"); err != nil {
		return err
	}
	if t.featureEnabled(FeatureBuildX) {
		if err := add(t.BuildXMethod(), "the panicking build method"); err != nil {
			return err
		}
	}
	if t.featureEnabled(FeatureRecordBuilder) {
		for _, f := range t.Fields {
			if f.Name == t.RecordMethod() {
				return NewConflictError(t.Name, f.Name, fmt.Sprintf("field %s", f.Name), "the record builder method")
			}
		}
	}
	slots := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		slot := builderField(lowerCamel(f.Name))
		for {
			_, taken := slots[slot]
			_, method := methods[slot]
			if !taken && !method {
				break
			}
			slot = "_" + slot
		}
		slots[slot] = struct{}{}
		f.Slot = slot
		f.Param = paramName(lowerCamel(f.Method()), t.Receiver())
	}
	return nil
}

func (t *Type) featureEnabled(f Feature) bool {
	enabled, _ := t.Config.FeatureEnabled(f.Name)
	return enabled
}

// BuilderName returns the name of the builder type, e.g. CommandBuilder.
func (t *Type) BuilderName() string {
	return t.Name + "Builder"
}

// Constructor returns the name of the builder initializer, e.g.
// NewCommandBuilder. Unexported records get an unexported constructor.
func (t *Type) Constructor() string {
	if ast.IsExported(t.Name) {
		return "New" + t.BuilderName()
	}
	return "new" + pascal(t.Name) + "Builder"
}

// BuildMethod returns the name of the assembly method.
func (t *Type) BuildMethod() string {
	return "Build"
}

// BuildXMethod returns the name of the panicking assembly method.
func (t *Type) BuildXMethod() string {
	return "BuildX"
}

// RecordMethod returns the name of the record method returning a builder.
func (t *Type) RecordMethod() string {
	return "Builder"
}

// Receiver returns the receiver name of the builder methods.
func (t *Type) Receiver() string {
	return t.local("b")
}

// local returns name, prefixed with "_" until it does not shadow a
// package used by the generated code.
func (t *Type) local(name string) string {
	for {
		if _, ok := t.qualifiers[name]; !ok {
			return name
		}
		name = "_" + name
	}
}

// qualifiers returns the package names referenced by the field types,
// including the runtime package.
func qualifiers(fields []*Field) map[string]struct{} {
	names := map[string]struct{}{path.Base(RuntimePackage): {}}
	var walk func(*load.TypeExpr)
	walk = func(x *load.TypeExpr) {
		if x == nil {
			return
		}
		if x.Qualifier != "" {
			names[x.Qualifier] = struct{}{}
		}
		for q := range x.Imports {
			names[q] = struct{}{}
		}
		for _, arg := range x.Args {
			walk(arg)
		}
	}
	for _, f := range fields {
		walk(f.Type)
	}
	return names
}

// Filename returns the name of the generated file.
func (t *Type) Filename() string {
	return snake(t.Name) + "_builder.go"
}

// Pos returns the filename:line position information of this type.
func (t *Type) Pos() string {
	return t.record.Pos
}

// Record returns the loaded record the type was created from.
func (t *Type) Record() *load.Record {
	return t.record
}

// Required returns the plain fields, checked by the assembly method.
func (t *Type) Required() []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if f.IsPlain() {
			fields = append(fields, f)
		}
	}
	return fields
}

// Method returns the name of the field's mutator: the accumulator name
// for repeated fields and the field name otherwise.
func (f *Field) Method() string {
	if f.Shape == Repeated {
		return f.Each
	}
	return f.Name
}

// IsPlain reports whether the field is required.
func (f *Field) IsPlain() bool { return f.Shape == Plain }

// IsOptional reports whether the field is an optional wrapper.
func (f *Field) IsOptional() bool { return f.Shape == Optional }

// IsRepeated reports whether the field is an accumulated repeated wrapper.
func (f *Field) IsRepeated() bool { return f.Shape == Repeated }

// Pos returns the filename:line position information of this field.
func (f *Field) Pos() string {
	return f.def.Pos
}
