package gen

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildergen/compiler/load"
)

// RuntimePackage is the import path of the package imported by generated
// builders.
const RuntimePackage = "github.com/syssam/buildergen"

// Artifact holds the code emitted for one record. Every fragment is derived
// from the same field classification, in declaration order.
type Artifact struct {
	// Layout is the builder struct declaration.
	Layout jen.Code
	// Initializer is the constructor returning an empty builder.
	Initializer jen.Code
	// Mutators holds one chainable method per field.
	Mutators []jen.Code
	// Assembly is the fallible Build method.
	Assembly jen.Code
	// Extras holds the code of enabled features.
	Extras []jen.Code
}

// Code returns all fragments in rendering order.
func (a *Artifact) Code() []jen.Code {
	code := []jen.Code{a.Layout, a.Initializer}
	code = append(code, a.Mutators...)
	code = append(code, a.Assembly)
	return append(code, a.Extras...)
}

// Emit generates the builder of the given type.
func Emit(t *Type) *Artifact {
	a := &Artifact{
		Layout:      emitLayout(t),
		Initializer: emitInitializer(t),
		Assembly:    emitAssembly(t),
	}
	for _, f := range t.Fields {
		a.Mutators = append(a.Mutators, emitMutator(t, f))
	}
	if t.featureEnabled(FeatureBuildX) {
		a.Extras = append(a.Extras, emitBuildX(t))
	}
	if t.featureEnabled(FeatureRecordBuilder) {
		a.Extras = append(a.Extras, emitRecordBuilder(t))
	}
	return a
}

func emitLayout(t *Type) jen.Code {
	return jen.Commentf("%s is a builder for %s.", t.BuilderName(), t.Name).Line().
		Type().Id(t.BuilderName()).StructFunc(func(g *jen.Group) {
			for _, f := range t.Fields {
				if f.IsRepeated() {
					g.Id(f.Slot).Index().Add(typeCode(f.Inner))
				} else {
					g.Id(f.Slot).Op("*").Add(typeCode(f.Inner))
				}
			}
		})
}

func emitInitializer(t *Type) jen.Code {
	return jen.Commentf("%s returns a new builder for %s.", t.Constructor(), t.Name).Line().
		Func().Id(t.Constructor()).Params().Op("*").Id(t.BuilderName()).Block(
		jen.Return(jen.Op("&").Id(t.BuilderName()).ValuesFunc(func(g *jen.Group) {
			for _, f := range t.Fields {
				if f.IsRepeated() {
					g.Id(f.Slot).Op(":").Index().Add(typeCode(f.Inner)).Values()
				}
			}
		})),
	)
}

func emitMutator(t *Type, f *Field) jen.Code {
	recv := t.Receiver()
	slot := jen.Id(recv).Dot(f.Slot)
	var (
		doc    *jen.Statement
		assign *jen.Statement
	)
	if f.IsRepeated() {
		doc = jen.Commentf("%s appends a value to the %s field.", f.Method(), f.Name)
		assign = slot.Clone().Op("=").Append(slot.Clone(), jen.Id(f.Param))
	} else {
		doc = jen.Commentf("%s sets the %s field.", f.Method(), f.Name)
		assign = slot.Clone().Op("=").Op("&").Id(f.Param)
	}
	return doc.Line().
		Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).
		Id(f.Method()).Params(jen.Id(f.Param).Add(typeCode(f.Inner))).
		Op("*").Id(t.BuilderName()).
		Block(assign, jen.Return(jen.Id(recv)))
}

func emitAssembly(t *Type) jen.Code {
	var (
		recv  = t.Receiver()
		v     = t.local("v")
		value = t.local("value")
	)
	return jen.Commentf("%s returns a new %s, or an error if a required field was not set.", t.BuildMethod(), t.Name).Line().
		Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).
		Id(t.BuildMethod()).Params().Params(jen.Op("*").Id(t.Name), jen.Error()).
		BlockFunc(func(g *jen.Group) {
			for _, f := range t.Required() {
				g.If(jen.Id(recv).Dot(f.Slot).Op("==").Nil()).Block(
					jen.Return(jen.Nil(), jen.Qual(RuntimePackage, "NewMissingFieldError").Call(jen.Lit(t.Name), jen.Lit(f.Name))),
				)
			}
			g.Id(v).Op(":=").Op("&").Id(t.Name).Values()
			for _, f := range t.Fields {
				slot := jen.Id(recv).Dot(f.Slot)
				switch f.Shape {
				case Plain:
					g.Id(v).Dot(f.Name).Op("=").Op("*").Add(slot)
				case Repeated:
					values := jen.Append(jen.Index().Add(typeCode(f.Inner)).Values(), slot.Clone().Op("..."))
					if f.Type.Kind != load.KindSlice {
						values = typeCode(f.Type).Call(values)
					}
					g.Id(v).Dot(f.Name).Op("=").Add(values)
				case Optional:
					var set *jen.Statement
					if f.Wrapper == nil || f.Wrapper.Name == load.WrapperPointer {
						set = jen.Id(value).Op(":=").Op("*").Add(slot.Clone()).Line().
							Id(v).Dot(f.Name).Op("=").Op("&").Id(value)
					} else {
						set = jen.Id(v).Dot(f.Name).Op("=").Add(wrapperFunc(f)).Call(jen.Op("*").Add(slot.Clone()))
					}
					g.If(slot.Clone().Op("!=").Nil()).Block(set)
				}
			}
			g.Return(jen.Id(v), jen.Nil())
		})
}

func emitBuildX(t *Type) jen.Code {
	recv := t.Receiver()
	return jen.Commentf("%s is like %s, but panics if an error occurs.", t.BuildXMethod(), t.BuildMethod()).Line().
		Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).
		Id(t.BuildXMethod()).Params().Op("*").Id(t.Name).
		Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(recv).Dot(t.BuildMethod()).Call(),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Panic(jen.Err())),
			jen.Return(jen.Id("v")),
		)
}

func emitRecordBuilder(t *Type) jen.Code {
	return jen.Commentf("%s returns a new builder for %s.", t.RecordMethod(), t.Name).Line().
		Func().Params(jen.Id(t.Name)).Id(t.RecordMethod()).Params().Op("*").Id(t.BuilderName()).
		Block(jen.Return(jen.Id(t.Constructor()).Call()))
}

// wrapperFunc returns the function wrapping a value into the optional
// wrapper of the field, resolved in the package of the wrapper type.
func wrapperFunc(f *Field) jen.Code {
	switch {
	case f.Type.PkgPath != "":
		return jen.Qual(f.Type.PkgPath, f.Wrapper.Some)
	case f.Type.Qualifier != "":
		return jen.Id(f.Type.Qualifier + "." + f.Wrapper.Some)
	default:
		return jen.Id(f.Wrapper.Some)
	}
}

// typeCode returns the jennifer code of a type expression.
func typeCode(t *load.TypeExpr) *jen.Statement {
	if t == nil {
		return jen.Id("any")
	}
	switch t.Kind {
	case load.KindIdent:
		return identCode(t)
	case load.KindPointer:
		return jen.Op("*").Add(typeCode(elem(t)))
	case load.KindSlice:
		return jen.Index().Add(typeCode(elem(t)))
	case load.KindArray:
		return jen.Index(rawCode(t.Name, t.Imports)).Add(typeCode(elem(t)))
	case load.KindMap:
		if len(t.Args) != 2 {
			return jen.Id(t.String())
		}
		return jen.Map(typeCode(t.Args[0])).Add(typeCode(t.Args[1]))
	case load.KindGeneric:
		args := make([]jen.Code, len(t.Args))
		for i, arg := range t.Args {
			args[i] = typeCode(arg)
		}
		return identCode(t).Types(args...)
	default:
		return rawCode(t.Raw, t.Imports)
	}
}

func identCode(t *load.TypeExpr) *jen.Statement {
	switch {
	case t.PkgPath != "":
		return jen.Qual(t.PkgPath, t.Name)
	case t.Qualifier != "":
		return jen.Id(t.Qualifier + "." + t.Name)
	default:
		return jen.Id(t.Name)
	}
}

func elem(t *load.TypeExpr) *load.TypeExpr {
	if len(t.Args) == 0 {
		return nil
	}
	return t.Args[0]
}

// imports registers the package names used by the record for the
// qualified types of its fields, so generated code keeps the qualifiers
// of the source.
func imports(f *jen.File, t *Type) {
	register := func(pkgPath, qualifier string) {
		switch {
		case pkgPath == "" || qualifier == "" || pkgPath == t.PkgPath:
		case path.Base(pkgPath) == qualifier:
			f.ImportName(pkgPath, qualifier)
		default:
			f.ImportAlias(pkgPath, qualifier)
		}
	}
	var walk func(*load.TypeExpr)
	walk = func(x *load.TypeExpr) {
		if x == nil {
			return
		}
		register(x.PkgPath, x.Qualifier)
		for qualifier, pkgPath := range x.Imports {
			register(pkgPath, qualifier)
		}
		for _, arg := range x.Args {
			walk(arg)
		}
	}
	for _, fd := range t.Fields {
		walk(fd.Type)
	}
}
