package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/bitschema/errors"
	"github.com/wippyai/bitschema/schema/internal/ast"
	"github.com/wippyai/bitschema/schema/internal/token"
)

// reserved is the name masked composites use for their own presence entry.
const reserved = "MASK"

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse reads "Name = Type;" declarations until the tokens run out.
func (p *Parser) Parse() ([]ast.Decl, error) {
	var decls []ast.Decl
	for p.peek() != nil {
		name, pos, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
			return nil, errors.InvalidName(pos, name)
		}
		if err := p.expect("="); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		decls = append(decls, ast.Decl{Name: name, Type: typ, Position: pos})
	}
	return decls, nil
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) next() (*token.Token, error) {
	if p.pos >= len(p.tokens) {
		return nil, errors.UnexpectedEOF()
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t, nil
}

// backup pushes the last token back. Only the mask prefix needs it.
func (p *Parser) backup() {
	p.pos--
}

func (p *Parser) expect(symbol string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t.Category != token.Symbol || t.Value != symbol {
		return errors.Syntax(t.Position, "expected %q, got %q", symbol, t.Value)
	}
	return nil
}

func (p *Parser) parseName() (string, int, error) {
	t, err := p.next()
	if err != nil {
		return "", 0, err
	}
	if t.Category != token.Name {
		return "", 0, errors.Syntax(t.Position, "expected name, got %q", t.Value)
	}
	if t.Value == reserved {
		return "", 0, errors.ReservedName(t.Position, t.Value)
	}
	return t.Value, t.Position, nil
}

func (p *Parser) parseNumber() (int, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	if t.Category != token.Number {
		return 0, errors.Syntax(t.Position, "expected number, got %q", t.Value)
	}
	return t.Number, nil
}

// parseMask reads an optional "//" or "/N/" prefix.
func (p *Parser) parseMask() (masked bool, bits int, err error) {
	t, err := p.next()
	if err != nil {
		return false, 0, err
	}
	if t.Value != "/" {
		p.backup()
		return false, 0, nil
	}
	t, err = p.next()
	if err != nil {
		return false, 0, err
	}
	if t.Value == "/" {
		return true, 0, nil
	}
	if t.Category != token.Number {
		return false, 0, errors.Syntax(t.Position, "expected \"/\" or number, got %q", t.Value)
	}
	bits = t.Number
	if err := p.expect("/"); err != nil {
		return false, 0, err
	}
	return true, bits, nil
}

func (p *Parser) parseType() (*ast.Type, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case t.Category == token.Number:
		return nil, errors.Syntax(t.Position, "unexpected number %q, type expected", t.Value)
	case t.Category == token.Name:
		return &ast.Type{Category: ast.Named, Name: t.Value, Position: t.Position}, nil
	case t.Value == "{":
		return p.parseMap(t.Position)
	case t.Value == "[":
		return p.parseArray(t.Position)
	case t.Value == "(":
		return p.parseTuple(t.Position)
	}
	return nil, errors.Syntax(t.Position, "unexpected token when describing type: %q", t.Value)
}

// parseMap reads {<MASK> name:Type, name:Type, ...}.
func (p *Parser) parseMap(pos int) (*ast.Type, error) {
	masked, bits, err := p.parseMask()
	if err != nil {
		return nil, err
	}
	typ := &ast.Type{Category: ast.MapUnmasked, Position: pos}
	if masked {
		typ.Category, typ.MaskBits = ast.MapMasked, bits
	}
	for {
		name, namePos, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		child, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ.Fields = append(typ.Fields, ast.Field{Name: name, Type: child, Position: namePos})

		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.Value == "}" {
			return typ, nil
		}
		if t.Value != "," {
			return nil, errors.Syntax(t.Position, "unexpected token after map element: %q", t.Value)
		}
	}
}

// parseTuple reads (<MASK> Type, Type, ...).
func (p *Parser) parseTuple(pos int) (*ast.Type, error) {
	masked, bits, err := p.parseMask()
	if err != nil {
		return nil, err
	}
	typ := &ast.Type{Category: ast.TupleUnmasked, Position: pos}
	if masked {
		typ.Category, typ.MaskBits = ast.TupleMasked, bits
	}
	for {
		child, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ.Elems = append(typ.Elems, child)

		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.Value == ")" {
			return typ, nil
		}
		if t.Value != "," {
			return nil, errors.Syntax(t.Position, "unexpected token after tuple element: %q", t.Value)
		}
	}
}

// parseArray reads [<MASK> Type:N].
func (p *Parser) parseArray(pos int) (*ast.Type, error) {
	masked, bits, err := p.parseMask()
	if err != nil {
		return nil, err
	}
	typ := &ast.Type{Category: ast.ArrayUnmasked, Position: pos}
	if masked {
		typ.Category, typ.MaskBits = ast.ArrayMasked, bits
	}
	if typ.Elem, err = p.parseType(); err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	if typ.Count, err = p.parseNumber(); err != nil {
		return nil, err
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	return typ, nil
}
