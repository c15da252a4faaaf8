package gen

import (
	"github.com/syssam/buildergen/compiler/load"
)

// Shape is the construction shape of a field.
type Shape uint8

// Field shapes.
const (
	// Plain fields are required: Build fails when they were never set.
	Plain Shape = iota
	// Optional fields wrap their value in an optional wrapper (*T by
	// default). Unset optional fields build to the wrapper's zero value.
	Optional
	// Repeated fields are repeated wrappers ([]T by default) carrying a
	// builder directive. They are populated one value at a time.
	Repeated
)

var shapeNames = [...]string{
	Plain:    "plain",
	Optional: "optional",
	Repeated: "repeated",
}

// String returns the name of the shape.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "invalid"
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Wrapper describes an optional wrapper type.
type Wrapper struct {
	// Name is matched against load.TypeExpr.WrapperName: "*" for
	// pointers, or a one-parameter generic type such as "Option" or
	// "opt.Value".
	Name string `yaml:"name"`
	// Some is the function wrapping a value, e.g. "Some" for
	// func Some[T any](v T) Option[T]. It is resolved in the package of
	// the wrapper type and is ignored for pointers.
	Some string `yaml:"some"`
}

// Wrappers holds the wrapper names recognized by the classifier.
type Wrappers struct {
	Optional []Wrapper
	Repeated []string
}

// DefaultWrappers are the Go built-in wrappers: *T for optional values
// and []T for repeated values.
var DefaultWrappers = Wrappers{
	Optional: []Wrapper{{Name: load.WrapperPointer}},
	Repeated: []string{load.WrapperSlice},
}

// Classification is the construction decision for one field.
type Classification struct {
	Shape Shape
	// Inner is the value type accepted by the field's mutator: the inner
	// type of optional and repeated wrappers, or the declared type.
	Inner *load.TypeExpr
	// Each is the accumulator method name of repeated fields.
	Each string
	// Wrapper is the matched optional wrapper.
	Wrapper *Wrapper
}

// Classify decides the shape of a field from its declared type and its
// (already validated) directive:
//
//  1. a directive on a repeated wrapper makes the field Repeated,
//  2. otherwise an optional wrapper makes it Optional,
//  3. otherwise it is Plain.
//
// Classify is pure and never fails. A directive that does not apply to
// the field's type is ignored here; NewType decides whether it is an error.
func Classify(f *load.Field, d *Directive, w Wrappers) Classification {
	if d != nil {
		for _, name := range w.Repeated {
			if inner, ok := f.Type.TypeArg(name); ok {
				return Classification{Shape: Repeated, Inner: inner, Each: d.Each}
			}
		}
	}
	for i := range w.Optional {
		if inner, ok := f.Type.TypeArg(w.Optional[i].Name); ok {
			return Classification{Shape: Optional, Inner: inner, Wrapper: &w.Optional[i]}
		}
	}
	return Classification{Shape: Plain, Inner: f.Type}
}
