package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen/compiler/load"
)

// commandRecord returns the record of:
//
//	type Command struct {
//		Executable string
//		Args       []string // +builder(each = "arg")
//		CurrentDir *string
//	}
func commandRecord() *load.Record {
	return &load.Record{
		Name:    "Command",
		Package: "command",
		PkgPath: "example.com/command",
		Pos:     "command.go:3:6",
		Fields: []*load.Field{
			{Name: "Executable", Type: load.Ident("string"), Pos: "command.go:4:2"},
			{Name: "Args", Type: load.Slice(load.Ident("string")), Attributes: []string{`builder(each = "arg")`}, Pos: "command.go:5:2"},
			{Name: "CurrentDir", Type: load.Pointer(load.Ident("string")), Pos: "command.go:6:2"},
		},
	}
}

func TestNewType(t *testing.T) {
	typ, err := NewType(&Config{}, commandRecord())
	require.NoError(t, err)
	assert.Equal(t, "Command", typ.Name)
	assert.Equal(t, "CommandBuilder", typ.BuilderName())
	assert.Equal(t, "NewCommandBuilder", typ.Constructor())
	assert.Equal(t, "command_builder.go", typ.Filename())
	assert.Equal(t, "command.go:3:6", typ.Pos())
	require.Len(t, typ.Fields, 3)

	exe, args, dir := typ.Fields[0], typ.Fields[1], typ.Fields[2]
	assert.True(t, exe.IsPlain())
	assert.Equal(t, "Executable", exe.Method())
	assert.Equal(t, "executable", exe.Slot)
	assert.Equal(t, "executable", exe.Param)

	assert.True(t, args.IsRepeated())
	assert.Equal(t, "arg", args.Method())
	assert.Equal(t, "args", args.Slot)
	assert.Equal(t, "arg", args.Param)
	assert.Equal(t, "string", args.Inner.String())

	assert.True(t, dir.IsOptional())
	assert.Equal(t, "CurrentDir", dir.Method())
	assert.Equal(t, "currentDir", dir.Slot)
	assert.Equal(t, "command.go:6:2", dir.Pos())

	assert.Equal(t, []*Field{exe}, typ.Required())
}

func TestNewType_Unexported(t *testing.T) {
	typ, err := NewType(&Config{}, &load.Record{
		Name:   "request",
		Fields: []*load.Field{{Name: "url", Type: load.Ident("string")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "requestBuilder", typ.BuilderName())
	assert.Equal(t, "newRequestBuilder", typ.Constructor())
	// The slot of an unexported field collides with its mutator.
	assert.Equal(t, "_url", typ.Fields[0].Slot)
	assert.Equal(t, "url", typ.Fields[0].Method())
}

func TestNewType_Names(t *testing.T) {
	typ, err := NewType(&Config{}, &load.Record{
		Name: "Request",
		Fields: []*load.Field{
			{Name: "HTTPCode", Type: load.Ident("int")},
			{Name: "URL", Type: load.Ident("string")},
			{Name: "Type", Type: load.Ident("string")},
			{Name: "Len", Type: load.Ident("int")},
			{Name: "B", Type: load.Ident("byte")},
			{Name: "Items", Type: load.Slice(load.Ident("string")), Attributes: []string{`builder(each = "items")`}},
		},
	})
	require.NoError(t, err)
	slots := make([]string, len(typ.Fields))
	params := make([]string, len(typ.Fields))
	for i, f := range typ.Fields {
		slots[i], params[i] = f.Slot, f.Param
	}
	assert.Equal(t, []string{"httpCode", "url", "_type", "len", "b", "_items"}, slots)
	assert.Equal(t, []string{"httpCode", "url", "_type", "_len", "_b", "items"}, params)
}

func TestNewType_Conflicts(t *testing.T) {
	tests := []struct {
		name     string
		fields   []*load.Field
		features []Feature
		conflict string
	}{
		{
			name: "duplicate accumulators",
			fields: []*load.Field{
				{Name: "A", Type: load.Slice(load.Ident("int")), Attributes: []string{`builder(each = "add")`}},
				{Name: "B", Type: load.Slice(load.Ident("int")), Attributes: []string{`builder(each = "add")`}},
			},
			conflict: "add",
		},
		{
			name: "accumulator named after a field",
			fields: []*load.Field{
				{Name: "Name", Type: load.Ident("string")},
				{Name: "Names", Type: load.Slice(load.Ident("string")), Attributes: []string{`builder(each = "Name")`}},
			},
			conflict: "Name",
		},
		{
			name:     "field named Build",
			fields:   []*load.Field{{Name: "Build", Type: load.Ident("string")}},
			conflict: "Build",
		},
		{
			name:     "field named BuildX",
			fields:   []*load.Field{{Name: "BuildX", Type: load.Ident("string")}},
			features: []Feature{FeatureBuildX},
			conflict: "BuildX",
		},
		{
			name:     "field named Builder",
			fields:   []*load.Field{{Name: "Builder", Type: load.Ident("string")}},
			features: []Feature{FeatureRecordBuilder},
			conflict: "Builder",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewType(&Config{Features: tt.features}, &load.Record{Name: "R", Fields: tt.fields})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNameConflict))
			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, "R", conflict.Type)
			assert.Equal(t, tt.conflict, conflict.Name)
			assert.Len(t, conflict.Members, 2)
		})
	}

	t.Run("field named BuildX without the feature", func(t *testing.T) {
		_, err := NewType(&Config{}, &load.Record{Name: "R", Fields: []*load.Field{{Name: "BuildX", Type: load.Ident("string")}}})
		require.NoError(t, err)
	})
}

func TestNewType_DirectiveTypeMismatch(t *testing.T) {
	r := &load.Record{
		Name: "R",
		Fields: []*load.Field{
			{Name: "Count", Type: load.Ident("int"), Attributes: []string{`builder(each = "inc")`}, Pos: "r.go:2:2"},
		},
	}
	_, err := NewType(&Config{}, r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDirectiveTypeMismatch))
	assert.False(t, errors.Is(err, ErrMalformedDirective))
	var dirErr *DirectiveError
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, "R", dirErr.Type)
	assert.Equal(t, "Count", dirErr.Field)
	assert.Equal(t, "r.go:2:2", dirErr.Pos)

	typ, err := NewType(&Config{LenientDirectives: true}, r)
	require.NoError(t, err)
	assert.True(t, typ.Fields[0].IsPlain())
	assert.Equal(t, "Count", typ.Fields[0].Method())
	assert.Equal(t, &Directive{Each: "inc"}, typ.Fields[0].Directive)
}

func TestNewType_MalformedDirectiveRejectsRecord(t *testing.T) {
	r := &load.Record{
		Name: "R",
		Fields: []*load.Field{
			{Name: "A", Type: load.Ident("int")},
			{Name: "B", Type: load.Slice(load.Ident("int")), Attributes: []string{`builder(eac = "push")`}, Pos: "r.go:3:2"},
			{Name: "C", Type: load.Slice(load.Ident("int")), Attributes: []string{`builder(each = 5)`}, Pos: "r.go:4:2"},
		},
	}
	typ, err := NewType(&Config{LenientDirectives: true}, r)
	require.Error(t, err)
	assert.Nil(t, typ)
	assert.True(t, errors.Is(err, ErrMalformedDirective))
	var dirErr *DirectiveError
	require.True(t, errors.As(err, &dirErr))
	// The first malformed field in declaration order is reported.
	assert.Equal(t, "B", dirErr.Field)
	assert.Contains(t, err.Error(), "r.go:3:2: ")
	assert.Contains(t, err.Error(), "on type R field B")
}

func TestNewType_InvalidRecord(t *testing.T) {
	_, err := NewType(&Config{}, &load.Record{Name: "Empty"})
	require.Error(t, err)
	assert.True(t, load.IsUnsupportedShape(err))

	_, err = NewType(&Config{}, &load.Record{})
	require.Error(t, err)

	_, err = NewType(&Config{}, &load.Record{Name: "R", Fields: []*load.Field{{Name: "A"}}})
	require.EqualError(t, err, `record "R": missing type for field "A"`)
}

func TestNewType_NilConfig(t *testing.T) {
	typ, err := NewType(nil, commandRecord())
	require.NoError(t, err)
	assert.Equal(t, Repeated, typ.Fields[1].Shape)
	assert.Equal(t, DefaultHeader, typ.Config.HeaderComment())
}
