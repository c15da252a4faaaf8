package load

import (
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"
)

// TypeKind describes the syntactic shape of a TypeExpr.
type TypeKind uint8

// Type kinds.
const (
	KindInvalid TypeKind = iota
	KindIdent            // string, Command, time.Time
	KindPointer          // *T
	KindSlice            // []T
	KindArray            // [N]T
	KindMap              // map[K]V
	KindGeneric          // Name[A, ...]
	KindOther            // func, chan, interface and inline struct types
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindIdent:   "ident",
	KindPointer: "pointer",
	KindSlice:   "slice",
	KindArray:   "array",
	KindMap:     "map",
	KindGeneric: "generic",
	KindOther:   "other",
}

// String returns the name of the kind.
func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TypeKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = TypeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown type kind %q", text)
}

// Wrapper names of the built-in Go wrappers.
const (
	WrapperPointer = "*"
	WrapperSlice   = "[]"
)

// TypeExpr is a structural description of a type reference. It carries
// enough of the syntax tree to answer "is this Wrapper[Inner]" without
// resolving any type.
type TypeExpr struct {
	Kind TypeKind `json:"kind"`
	// Name holds the identifier for KindIdent and KindGeneric, and the
	// length expression for KindArray.
	Name string `json:"name,omitempty"`
	// Qualifier is the package name of a qualified identifier ("time"),
	// and PkgPath its resolved import path ("time").
	Qualifier string `json:"qualifier,omitempty"`
	PkgPath   string `json:"pkg_path,omitempty"`
	// Args holds the element type of pointers, slices and arrays, the
	// key and value of maps, and the type arguments of generic types.
	Args []*TypeExpr `json:"args,omitempty"`
	// Raw is the source text of KindOther expressions.
	Raw string `json:"raw,omitempty"`
	// Imports maps the package qualifiers used inside Raw or an array
	// length to their import paths.
	Imports map[string]string `json:"imports,omitempty"`
}

// Ident returns an identifier type expression.
func Ident(name string) *TypeExpr {
	return &TypeExpr{Kind: KindIdent, Name: name}
}

// Qualified returns a qualified identifier type expression, like time.Time.
func Qualified(pkgPath, qualifier, name string) *TypeExpr {
	return &TypeExpr{Kind: KindIdent, Name: name, Qualifier: qualifier, PkgPath: pkgPath}
}

// Pointer returns *elem.
func Pointer(elem *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindPointer, Args: []*TypeExpr{elem}}
}

// Slice returns []elem.
func Slice(elem *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindSlice, Args: []*TypeExpr{elem}}
}

// Generic returns the instantiation name[args...].
func Generic(name string, args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindGeneric, Name: name, Args: args}
}

// WrapperName returns the name used to match this expression against a
// wrapper: "*" for pointers, "[]" for slices and the (qualified) type name
// for generic instantiations. Other kinds have no wrapper name.
func (t *TypeExpr) WrapperName() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case KindPointer:
		return WrapperPointer
	case KindSlice:
		return WrapperSlice
	case KindGeneric:
		return t.qualifiedName()
	default:
		return ""
	}
}

// TypeArg returns the inner type if t has the shape wrapper[Inner] with
// exactly one type argument.
func (t *TypeExpr) TypeArg(wrapper string) (*TypeExpr, bool) {
	if t == nil || wrapper == "" || t.WrapperName() != wrapper || len(t.Args) != 1 {
		return nil, false
	}
	return t.Args[0], true
}

// String returns the Go source form of the type expression.
func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *TypeExpr) write(b *strings.Builder) {
	switch t.Kind {
	case KindIdent:
		b.WriteString(t.qualifiedName())
	case KindPointer:
		b.WriteString("*")
		t.elem().write(b)
	case KindSlice:
		b.WriteString("[]")
		t.elem().write(b)
	case KindArray:
		b.WriteString("[" + t.Name + "]")
		t.elem().write(b)
	case KindMap:
		b.WriteString("map[")
		if len(t.Args) == 2 {
			t.Args[0].write(b)
			b.WriteString("]")
			t.Args[1].write(b)
		} else {
			b.WriteString("]")
		}
	case KindGeneric:
		b.WriteString(t.qualifiedName())
		b.WriteString("[")
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.write(b)
		}
		b.WriteString("]")
	default:
		b.WriteString(t.Raw)
	}
}

func (t *TypeExpr) elem() *TypeExpr {
	if len(t.Args) == 0 {
		return &TypeExpr{Kind: KindOther}
	}
	return t.Args[0]
}

func (t *TypeExpr) qualifiedName() string {
	if t.Qualifier != "" {
		return t.Qualifier + "." + t.Name
	}
	return t.Name
}

// NewTypeExpr converts a type expression of the syntax tree. The imports
// map resolves package qualifiers to import paths.
func NewTypeExpr(expr ast.Expr, imports map[string]string) *TypeExpr {
	switch x := expr.(type) {
	case *ast.Ident:
		return Ident(x.Name)
	case *ast.SelectorExpr:
		if q, ok := x.X.(*ast.Ident); ok {
			return Qualified(imports[q.Name], q.Name, x.Sel.Name)
		}
	case *ast.ParenExpr:
		return NewTypeExpr(x.X, imports)
	case *ast.StarExpr:
		return Pointer(NewTypeExpr(x.X, imports))
	case *ast.ArrayType:
		if x.Len == nil {
			return Slice(NewTypeExpr(x.Elt, imports))
		}
		return &TypeExpr{
			Kind:    KindArray,
			Name:    types.ExprString(x.Len),
			Args:    []*TypeExpr{NewTypeExpr(x.Elt, imports)},
			Imports: usedImports(x.Len, imports),
		}
	case *ast.MapType:
		return &TypeExpr{
			Kind: KindMap,
			Args: []*TypeExpr{NewTypeExpr(x.Key, imports), NewTypeExpr(x.Value, imports)},
		}
	case *ast.IndexExpr:
		return genericExpr(x.X, []ast.Expr{x.Index}, imports, expr)
	case *ast.IndexListExpr:
		return genericExpr(x.X, x.Indices, imports, expr)
	}
	return rawExpr(expr, imports)
}

func rawExpr(expr ast.Expr, imports map[string]string) *TypeExpr {
	return &TypeExpr{Kind: KindOther, Raw: source(expr), Imports: usedImports(expr, imports)}
}

// source prints expr. Unlike types.ExprString it keeps struct tags, which
// are part of the type identity.
func source(expr ast.Expr) string {
	var b strings.Builder
	if err := printer.Fprint(&b, token.NewFileSet(), expr); err != nil {
		return types.ExprString(expr)
	}
	return b.String()
}

// usedImports returns the imports referenced by qualified identifiers
// inside expr, or nil if there are none.
func usedImports(expr ast.Expr, imports map[string]string) map[string]string {
	var used map[string]string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if q, ok := sel.X.(*ast.Ident); ok {
			if path, ok := imports[q.Name]; ok {
				if used == nil {
					used = make(map[string]string)
				}
				used[q.Name] = path
			}
		}
		return false
	})
	return used
}

func genericExpr(base ast.Expr, indices []ast.Expr, imports map[string]string, expr ast.Expr) *TypeExpr {
	head := NewTypeExpr(base, imports)
	if head.Kind != KindIdent {
		return rawExpr(expr, imports)
	}
	t := &TypeExpr{
		Kind:      KindGeneric,
		Name:      head.Name,
		Qualifier: head.Qualifier,
		PkgPath:   head.PkgPath,
	}
	for _, idx := range indices {
		t.Args = append(t.Args, NewTypeExpr(idx, imports))
	}
	return t
}
