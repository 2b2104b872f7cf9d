package river

import (
	"fmt"
	"strconv"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

// SyntaxError describes why an expression could not be parsed.
type SyntaxError struct {
	// Offset is the byte offset of the offending input.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Parse parses a complete River type expression. Whitespace is allowed
// between tokens; anything left after the expression is an error.
func Parse(input string) (*Type, error) {
	p := &parser{src: input}
	p.skipSpace()
	t, err := p.parseType(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing input %q", p.rest(8))
	}
	return t, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) rest(limit int) string {
	r := p.src[p.pos:]
	if len(r) > limit {
		r = r[:limit]
	}
	return r
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return p.errorf("expected %q, got end of input", c)
	}
	if p.src[p.pos] != c {
		return p.errorf("expected %q, got %q", c, p.src[p.pos])
	}
	p.pos++
	p.skipSpace()
	return nil
}

func (p *parser) parseType(depth int) (*Type, error) {
	if depth > maxDepth {
		return nil, p.errorf("nesting deeper than %d", maxDepth)
	}

	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		if p.pos >= len(p.src) {
			return nil, p.errorf("expected type name, got end of input")
		}
		return nil, p.errorf("expected type name, got %q", p.src[p.pos])
	}
	kind, ok := kindsByName[name]
	if !ok {
		p.pos = start
		return nil, p.errorf("unknown type %q", name)
	}

	if err := p.expect('<'); err != nil {
		return nil, err
	}

	var t *Type
	switch {
	case kind == KindBits:
		width, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		t = Bits(width)
	case kind.Stream():
		elem, err := p.parseType(depth + 1)
		if err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		t = Stream(kind, elem, params)
	default:
		fields, err := p.parseFields(depth + 1)
		if err != nil {
			return nil, err
		}
		t = &Type{Kind: kind, Fields: fields}
	}

	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) parseParams() (Params, error) {
	var vals [3]uint64
	for i := range vals {
		if err := p.expect(','); err != nil {
			return Params{}, err
		}
		n, err := p.parseNumber()
		if err != nil {
			return Params{}, err
		}
		vals[i] = n
	}
	return Params{Elements: vals[0], Complexity: vals[1], UserBits: vals[2]}, nil
}

func (p *parser) parseFields(depth int) ([]*Type, error) {
	var fields []*Type
	for {
		f, err := p.parseType(depth)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ',' {
			return fields, nil
		}
		p.pos++
		p.skipSpace()
	}
}

func (p *parser) parseNumber() (uint64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		if p.pos >= len(p.src) {
			return 0, p.errorf("expected number, got end of input")
		}
		return 0, p.errorf("expected number, got %q", p.src[p.pos])
	}
	digits := p.src[start:p.pos]
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("number %s out of range", digits)
	}
	return n, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
