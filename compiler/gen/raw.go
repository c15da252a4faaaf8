package gen

import (
	"go/ast"
	"go/parser"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// rawCode returns the jennifer code of a type or constant expression kept
// as source text. Qualified identifiers found in imports are rendered with
// jen.Qual, so the generated file imports their packages.
func rawCode(src string, imports map[string]string) *jen.Statement {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return jen.Id(src)
	}
	return exprCode(expr, imports)
}

func exprCode(expr ast.Expr, imports map[string]string) *jen.Statement {
	switch x := expr.(type) {
	case *ast.Ident:
		return jen.Id(x.Name)
	case *ast.BasicLit:
		return jen.Id(x.Value)
	case *ast.SelectorExpr:
		if q, ok := x.X.(*ast.Ident); ok {
			if path, ok := imports[q.Name]; ok {
				return jen.Qual(path, x.Sel.Name)
			}
		}
	case *ast.ParenExpr:
		return jen.Parens(exprCode(x.X, imports))
	case *ast.StarExpr:
		return jen.Op("*").Add(exprCode(x.X, imports))
	case *ast.UnaryExpr:
		return jen.Op(x.Op.String()).Add(exprCode(x.X, imports))
	case *ast.BinaryExpr:
		return exprCode(x.X, imports).Op(x.Op.String()).Add(exprCode(x.Y, imports))
	case *ast.CallExpr:
		args := make([]jen.Code, len(x.Args))
		for i, arg := range x.Args {
			args[i] = exprCode(arg, imports)
		}
		return exprCode(x.Fun, imports).Call(args...)
	case *ast.Ellipsis:
		return jen.Op("...").Add(exprCode(x.Elt, imports))
	case *ast.ArrayType:
		switch {
		case x.Len == nil:
			return jen.Index().Add(exprCode(x.Elt, imports))
		case isEllipsis(x.Len):
			return jen.Index(jen.Op("...")).Add(exprCode(x.Elt, imports))
		default:
			return jen.Index(exprCode(x.Len, imports)).Add(exprCode(x.Elt, imports))
		}
	case *ast.MapType:
		return jen.Map(exprCode(x.Key, imports)).Add(exprCode(x.Value, imports))
	case *ast.ChanType:
		elt := exprCode(x.Value, imports)
		switch x.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(elt)
		case ast.RECV:
			return jen.Op("<-").Chan().Add(elt)
		default:
			return jen.Chan().Add(elt)
		}
	case *ast.FuncType:
		return jen.Func().Add(signature(x, imports))
	case *ast.InterfaceType:
		return jen.InterfaceFunc(func(g *jen.Group) {
			for _, m := range x.Methods.List {
				ft, ok := m.Type.(*ast.FuncType)
				if !ok || len(m.Names) == 0 {
					// Embedded interface or type constraint.
					g.Add(exprCode(m.Type, imports))
					continue
				}
				g.Id(m.Names[0].Name).Add(signature(ft, imports))
			}
		})
	case *ast.StructType:
		return jen.StructFunc(func(g *jen.Group) {
			for _, f := range x.Fields.List {
				var field *jen.Statement
				if names := fieldNames(f); len(names) > 0 {
					field = g.List(names...).Add(exprCode(f.Type, imports))
				} else {
					field = g.Add(exprCode(f.Type, imports))
				}
				if f.Tag != nil {
					field.Op(f.Tag.Value)
				}
			}
		})
	case *ast.IndexExpr:
		return exprCode(x.X, imports).Types(exprCode(x.Index, imports))
	case *ast.IndexListExpr:
		args := make([]jen.Code, len(x.Indices))
		for i, idx := range x.Indices {
			args[i] = exprCode(idx, imports)
		}
		return exprCode(x.X, imports).Types(args...)
	}
	return jen.Id(types.ExprString(expr))
}

// signature returns the parameters and results of a function type.
func signature(ft *ast.FuncType, imports map[string]string) *jen.Statement {
	s := jen.Params(fieldList(ft.Params, imports)...)
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return s
	}
	if r := ft.Results.List; len(r) == 1 && len(r[0].Names) == 0 {
		return s.Add(exprCode(r[0].Type, imports))
	}
	return s.Params(fieldList(ft.Results, imports)...)
}

func fieldList(fl *ast.FieldList, imports map[string]string) []jen.Code {
	if fl == nil {
		return nil
	}
	code := make([]jen.Code, 0, len(fl.List))
	for _, f := range fl.List {
		names := fieldNames(f)
		if len(names) == 0 {
			code = append(code, exprCode(f.Type, imports))
			continue
		}
		code = append(code, jen.List(names...).Add(exprCode(f.Type, imports)))
	}
	return code
}

func fieldNames(f *ast.Field) []jen.Code {
	names := make([]jen.Code, len(f.Names))
	for i, n := range f.Names {
		names[i] = jen.Id(n.Name)
	}
	return names
}

func isEllipsis(expr ast.Expr) bool {
	_, ok := expr.(*ast.Ellipsis)
	return ok
}
