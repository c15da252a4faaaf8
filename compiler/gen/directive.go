package gen

import (
	"go/scanner"
	"go/token"
	"strconv"
)

// DirectivePath is the attribute path of builder directives.
const DirectivePath = "builder"

// directiveKey is the only key accepted by builder directives.
const directiveKey = "each"

// Directive holds a parsed builder(each = "name") attribute. It marks a
// repeated field as an accumulator and names the generated method that
// appends one value to it.
type Directive struct {
	// Each is the name of the accumulator method.
	Each string `json:"each" yaml:"each"`
}

// ParseDirective parses the raw attributes of one field. It returns nil
// when no builder attribute is present, the directive when exactly one
// well-formed attribute is present, and a *DirectiveError otherwise.
// Attributes with a path other than "builder" are ignored.
func ParseDirective(attrs []string) (*Directive, error) {
	var d *Directive
	for _, attr := range attrs {
		toks, err := scan(attr)
		if len(toks) == 0 || toks[0].tok != token.IDENT || toks[0].lit != DirectivePath {
			continue
		}
		if err != nil {
			return nil, err
		}
		if d != nil {
			return nil, newMalformed(attr, "duplicate builder attribute")
		}
		if d, err = parseDirective(attr, toks[1:]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// parseDirective parses the tokens following the "builder" path:
//
//	"(" "each" "=" string_lit ")"
func parseDirective(attr string, toks []item) (*Directive, error) {
	expect := func(i int, tok token.Token) bool {
		return i < len(toks) && toks[i].tok == tok
	}
	switch {
	case !expect(0, token.LPAREN):
		return nil, newMalformed(attr, `expected builder(each = "...")`)
	case !expect(1, token.IDENT) || toks[1].lit != directiveKey:
		return nil, newMalformed(attr, `expected builder(each = "...")`)
	case !expect(2, token.ASSIGN):
		return nil, newMalformed(attr, "expected = after %q", directiveKey)
	case !expect(3, token.STRING):
		if len(toks) > 3 && toks[3].tok != token.RPAREN {
			return nil, newMalformed(attr, "value of %q must be a string literal, got %s", directiveKey, toks[3])
		}
		return nil, newMalformed(attr, "missing value for %q", directiveKey)
	case !expect(4, token.RPAREN):
		return nil, newMalformed(attr, "expected ) after value")
	case len(toks) > 5:
		return nil, newMalformed(attr, "unexpected %s after directive", toks[5])
	}
	name, err := strconv.Unquote(toks[3].lit)
	if err != nil {
		return nil, newMalformed(attr, "invalid string literal %s", toks[3].lit)
	}
	if !token.IsIdentifier(name) {
		return nil, newMalformed(attr, "%q is not a valid method name", name)
	}
	return &Directive{Each: name}, nil
}

type item struct {
	tok token.Token
	lit string
}

// String returns the token in the form used by diagnostics.
func (i item) String() string {
	if i.lit != "" {
		return i.lit
	}
	return i.tok.String()
}

// scan tokenizes one attribute using the Go scanner. The automatic
// semicolons inserted at the end of the input are dropped. On error, the
// tokens scanned so far are returned with it.
func scan(attr string) ([]item, error) {
	var (
		s    scanner.Scanner
		errs scanner.ErrorList
		toks []item
	)
	fset := token.NewFileSet()
	src := []byte(attr)
	file := fset.AddFile("", fset.Base(), len(src))
	s.Init(file, src, func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		toks = append(toks, item{tok: tok, lit: lit})
	}
	if err := errs.Err(); err != nil {
		return toks, newMalformed(attr, "%v", err)
	}
	return toks, nil
}
