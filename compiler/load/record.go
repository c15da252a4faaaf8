package load

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Record represents a flat, named-field struct that was extracted from a
// user package. Fields are kept in declaration order.
type Record struct {
	Name    string   `json:"name,omitempty"`
	Package string   `json:"package,omitempty"`
	PkgPath string   `json:"pkg_path,omitempty"`
	Pos     string   `json:"-"`
	Fields  []*Field `json:"fields,omitempty"`
}

// Field represents one named field of a Record.
type Field struct {
	Name string    `json:"name,omitempty"`
	Type *TypeExpr `json:"type,omitempty"`
	// Attributes holds the raw text of the builder markers attached to
	// the field, with the leading "+" removed. For example:
	//
	//	// +builder(each = "arg")
	//	Args []string
	//
	// yields the attribute `builder(each = "arg")`.
	Attributes []string `json:"attributes,omitempty"`
	Pos        string   `json:"-"`
}

// Spec holds the records loaded from one package.
type Spec struct {
	Package string    `json:"package,omitempty"`
	PkgPath string    `json:"pkg_path,omitempty"`
	Records []*Record `json:"records,omitempty"`
	// Dir is the directory of the package source files, if loaded from
	// disk.
	Dir string `json:"-"`
}

// Field returns the field with the given name, or nil.
func (r *Record) Field(name string) *Field {
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// MarshalRecord encodes the record into JSON, the format accepted by
// UnmarshalRecord and by the "generate --schema" command.
func MarshalRecord(r *Record) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord decodes the given buffer to a record and verifies it
// still describes a flat named-field record.
func UnmarshalRecord(buf []byte) (*Record, error) {
	r := &Record{}
	if err := json.Unmarshal(buf, r); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if err := r.check(); err != nil {
		return nil, err
	}
	return r, nil
}

// UnmarshalSpec decodes a JSON encoded Spec.
func UnmarshalSpec(buf []byte) (*Spec, error) {
	s := &Spec{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("decoding spec: %w", err)
	}
	for _, r := range s.Records {
		if r.Package == "" {
			r.Package = s.Package
		}
		if r.PkgPath == "" {
			r.PkgPath = s.PkgPath
		}
		if err := r.check(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// check validates records that did not go through the extractor.
func (r *Record) check() error {
	if r.Name == "" {
		return fmt.Errorf("record name cannot be empty")
	}
	if len(r.Fields) == 0 {
		return NewUnsupportedShapeError(r.Name, r.Pos, "record has no named fields")
	}
	for i, f := range r.Fields {
		switch {
		case f == nil || f.Name == "":
			return NewUnsupportedShapeError(r.Name, r.Pos, fmt.Sprintf("field %d is positional", i))
		case f.Name == "_":
			return NewUnsupportedShapeError(r.Name, f.Pos, "blank field cannot be set by name")
		case f.Type == nil:
			return fmt.Errorf("record %q: missing type for field %q", r.Name, f.Name)
		}
	}
	return nil
}
