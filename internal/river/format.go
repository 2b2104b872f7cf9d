package river

import (
	"strconv"
	"strings"
)

// String prints t in canonical form: ", " between arguments and no other
// whitespace. Parse(t.String()) yields a type equal to t.
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	b.WriteString(t.Kind.String())
	b.WriteByte('<')
	switch {
	case t.Kind == KindBits:
		b.WriteString(strconv.FormatUint(t.Width, 10))
	case t.Kind.Stream():
		t.Elem.write(b)
		b.WriteString(", ")
		b.WriteString(t.Params.String())
	default:
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			f.write(b)
		}
	}
	b.WriteByte('>')
}

// String prints the parameters as "N, C, U".
func (p Params) String() string {
	return strconv.FormatUint(p.Elements, 10) + ", " +
		strconv.FormatUint(p.Complexity, 10) + ", " +
		strconv.FormatUint(p.UserBits, 10)
}

// label is the text drawn for t in the graph: the constructor and its own
// arguments, without the children that become separate nodes.
func (t *Type) label() string {
	switch {
	case t.Kind == KindBits:
		return "Bits<" + strconv.FormatUint(t.Width, 10) + ">"
	case t.Kind.Stream():
		return t.Kind.String() + "<" + t.Params.String() + ">"
	default:
		return t.Kind.String()
	}
}
