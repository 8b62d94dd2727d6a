package step

import (
	"fmt"
	"io"
	"os"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// Open reads a model from the STEP file at path.
func Open(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Read parses a STEP physical file into a model. Forward references are
// legal in the data section: entities are registered in a first pass and
// their attributes resolved in a second.
func Read(r io.Reader) (*model.Model, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	toks, err := newLexer(string(src)).tokens()
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks, model: model.New(model.IFC4())}
	if err := p.parseFile(); err != nil {
		return nil, err
	}
	return p.model, nil
}

type instanceRecord struct {
	id       int
	typeName string
	argPos   int // token index of the opening paren of the attribute list
}

type parser struct {
	toks  []token
	pos   int
	model *model.Model
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) take() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.take()
	if t.kind != kind {
		return token{}, fmt.Errorf("line %d: expected %s, found %s", t.line, what, t)
	}
	return t, nil
}

func (p *parser) expectKeyword(word string) error {
	t, err := p.expect(tokIdent, word)
	if err != nil {
		return err
	}
	if t.text != word {
		return fmt.Errorf("line %d: expected %s, found %s", t.line, word, t.text)
	}
	_, err = p.expect(tokSemi, ";")
	return err
}

func (p *parser) parseFile() error {
	if err := p.expectKeyword("ISO-10303-21"); err != nil {
		return err
	}
	if err := p.expectKeyword("HEADER"); err != nil {
		return err
	}
	if err := p.parseHeader(); err != nil {
		return err
	}
	if err := p.expectKeyword("DATA"); err != nil {
		return err
	}
	if err := p.parseData(); err != nil {
		return err
	}
	return p.expectKeyword("END-ISO-10303-21")
}

// parseHeader consumes header entries up to and including ENDSEC.
func (p *parser) parseHeader() error {
	for {
		t, err := p.expect(tokIdent, "header entry")
		if err != nil {
			return err
		}
		if t.text == "ENDSEC" {
			_, err := p.expect(tokSemi, ";")
			return err
		}

		args, err := p.parseAggregate(nil)
		if err != nil {
			return err
		}
		if _, err := p.expect(tokSemi, ";"); err != nil {
			return err
		}

		switch t.text {
		case "FILE_DESCRIPTION":
			if len(args) > 0 {
				p.model.Header.Description = stringList(args[0])
			}
		case "FILE_NAME":
			h := &p.model.Header
			h.Name = stringArg(args, 0)
			h.Timestamp = stringArg(args, 1)
			if len(args) > 2 {
				h.Authors = stringList(args[2])
			}
			if len(args) > 3 {
				h.Organizations = stringList(args[3])
			}
			h.Preprocessor = stringArg(args, 4)
			h.Origin = stringArg(args, 5)
			h.Authorization = stringArg(args, 6)
		case "FILE_SCHEMA":
			if len(args) > 0 {
				ids := stringList(args[0])
				if len(ids) > 0 && ids[0] != p.model.Schema().Name() {
					return fmt.Errorf("unsupported schema %q, want %s", ids[0], p.model.Schema().Name())
				}
			}
		}
	}
}

// parseData registers every instance in a first pass, then resolves the
// attribute lists against the registered handles.
func (p *parser) parseData() error {
	var records []instanceRecord

	for {
		t := p.take()
		if t.kind == tokIdent && t.text == "ENDSEC" {
			if _, err := p.expect(tokSemi, ";"); err != nil {
				return err
			}
			break
		}
		if t.kind != tokRef {
			return fmt.Errorf("line %d: expected entity instance, found %s", t.line, t)
		}
		id := int(t.ival)

		if _, err := p.expect(tokEq, "="); err != nil {
			return err
		}
		name, err := p.expect(tokIdent, "entity type name")
		if err != nil {
			return err
		}
		if p.peek().kind != tokLParen {
			return fmt.Errorf("line %d: expected attribute list after %s", name.line, name.text)
		}

		if _, err := p.model.NewEntityWithHandle(id, name.text); err != nil {
			return fmt.Errorf("line %d: #%d: %w", name.line, id, err)
		}
		records = append(records, instanceRecord{id: id, typeName: name.text, argPos: p.pos})

		if err := p.skipAggregate(); err != nil {
			return err
		}
		if _, err := p.expect(tokSemi, ";"); err != nil {
			return err
		}
	}

	after := p.pos
	for _, rec := range records {
		if err := p.fillInstance(rec); err != nil {
			return err
		}
	}
	p.pos = after
	return nil
}

func (p *parser) fillInstance(rec instanceRecord) error {
	e := p.model.ByHandle(rec.id)
	p.pos = rec.argPos
	args, err := p.parseAggregate(e)
	if err != nil {
		return fmt.Errorf("#%d=%s: %w", rec.id, e.Type(), err)
	}
	if len(args) != e.AttrCount() {
		return fmt.Errorf("#%d=%s: has %d attributes, schema requires %d",
			rec.id, e.Type(), len(args), e.AttrCount())
	}
	for i, v := range args {
		if err := e.SetAttrAt(i, v); err != nil {
			return err
		}
	}
	return nil
}

// skipAggregate consumes a balanced parenthesized token run without
// interpreting it.
func (p *parser) skipAggregate() error {
	if _, err := p.expect(tokLParen, "("); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		t := p.take()
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		case tokEOF:
			return fmt.Errorf("line %d: unterminated attribute list", t.line)
		}
	}
	return nil
}

// parseAggregate parses a parenthesized value list. owner is the entity
// being filled; it is nil in the header, where references are illegal.
func (p *parser) parseAggregate(owner *model.Entity) ([]model.Value, error) {
	if _, err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	var out []model.Value
	if p.peek().kind == tokRParen {
		p.take()
		return out, nil
	}
	for {
		v, err := p.parseValue(owner)
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		t := p.take()
		if t.kind == tokRParen {
			return out, nil
		}
		if t.kind != tokComma {
			return nil, fmt.Errorf("line %d: expected , or ), found %s", t.line, t)
		}
	}
}

func (p *parser) parseValue(owner *model.Entity) (model.Value, error) {
	t := p.take()
	switch t.kind {
	case tokDollar:
		return model.Null{}, nil
	case tokStar:
		return model.Derived{}, nil
	case tokString:
		return model.Str(t.text), nil
	case tokInt:
		return model.Int(t.ival), nil
	case tokReal:
		return model.Real(t.num), nil
	case tokEnum:
		switch t.text {
		case "T":
			return model.Boolean(true), nil
		case "F":
			return model.Boolean(false), nil
		}
		return model.Enum(t.text), nil
	case tokRef:
		if owner == nil {
			return nil, fmt.Errorf("line %d: entity reference not allowed here", t.line)
		}
		target := p.model.ByHandle(int(t.ival))
		if target == nil {
			return nil, fmt.Errorf("line %d: reference to undefined instance #%d", t.line, t.ival)
		}
		return model.RefTo(target), nil
	case tokLParen:
		p.pos-- // parseAggregate re-reads the paren
		values, err := p.parseAggregate(owner)
		if err != nil {
			return nil, err
		}
		return model.List(values), nil
	case tokIdent:
		// Typed value like IFCLABEL('Antenna'): one value in parens.
		inner, err := p.parseAggregate(owner)
		if err != nil {
			return nil, err
		}
		if len(inner) != 1 {
			return nil, fmt.Errorf("line %d: typed value %s must wrap exactly one value", t.line, t.text)
		}
		return model.Typed{Type: t.text, Inner: inner[0]}, nil
	}
	return nil, fmt.Errorf("line %d: unexpected %s in attribute list", t.line, t)
}

func stringArg(args []model.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	s, _ := model.AsString(args[i])
	return s
}

func stringList(v model.Value) []string {
	list, ok := model.AsList(v)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := model.AsString(item); ok {
			out = append(out, s)
		}
	}
	return out
}
