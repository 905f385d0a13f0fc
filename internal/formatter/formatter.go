package formatter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-xmljson/ast"
)

const (
	defaultIndent = 2
)

// Formatter writes a value tree as JSON text. Constructors are written in
// the new Name(args) form.
type Formatter struct {
	w      io.Writer
	indent string
	depth  int
	colors *Colors
	err    error
}

// New returns a new formatter that writes to w. A nil indentSpaces selects
// the default indentation; zero selects compact output.
func New(w io.Writer, indentSpaces *int) *Formatter {
	spaces := defaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	var indentStr string
	if spaces > 0 {
		indentStr = strings.Repeat(" ", spaces)
	}
	return &Formatter{w: w, indent: indentStr}
}

// WithColors enables coloured output.
func (f *Formatter) WithColors(c *Colors) *Formatter {
	f.colors = c
	return f
}

// Format writes the JSON representation of node to the writer.
func (f *Formatter) Format(node ast.Node) error {
	f.writeNode(node)
	return f.err
}

func (f *Formatter) write(s string) {
	if f.err != nil {
		return
	}
	_, f.err = io.WriteString(f.w, s)
}

func (f *Formatter) punct(s string) {
	f.write(f.colors.Color(PunctRole, s))
}

func (f *Formatter) newline() {
	if f.indent == "" {
		return
	}
	f.write("\n")
	for i := 0; i < f.depth; i++ {
		f.write(f.indent)
	}
}

func (f *Formatter) writeNode(node ast.Node) {
	if f.err != nil {
		return
	}
	switch n := node.(type) {
	case *ast.Document:
		if n.Value == nil {
			f.err = fmt.Errorf("xmljson: cannot format an empty document")
			return
		}
		f.writeNode(n.Value)

	case *ast.ObjectLiteral:
		f.punct("{")
		if len(n.Pairs) > 0 {
			f.depth++
			for i, pair := range n.Pairs {
				if i > 0 {
					f.punct(",")
				}
				f.newline()
				f.write(f.colors.Color(KeyRole, Quote(pair.Key)))
				f.punct(":")
				if f.indent != "" {
					f.write(" ")
				}
				f.writeNode(pair.Value)
			}
			f.depth--
			f.newline()
		}
		f.punct("}")

	case *ast.ArrayLiteral:
		f.punct("[")
		if len(n.Elements) > 0 {
			f.depth++
			for i, elem := range n.Elements {
				if i > 0 {
					f.punct(",")
				}
				f.newline()
				f.writeNode(elem)
			}
			f.depth--
			f.newline()
		}
		f.punct("]")

	case *ast.ConstructorLiteral:
		f.write(f.colors.Color(ConstructorRole, "new "+n.Name))
		f.punct("(")
		for i, arg := range n.Arguments {
			if i > 0 {
				f.punct(",")
				if f.indent != "" {
					f.write(" ")
				}
			}
			f.writeNode(arg)
		}
		f.punct(")")

	case *ast.StringLiteral:
		f.write(f.colors.Color(StringRole, Quote(n.Value)))

	case *ast.IntegerLiteral:
		f.write(f.colors.Color(NumberRole, strconv.FormatInt(n.Value, 10)))

	case *ast.FloatLiteral:
		f.write(f.colors.Color(NumberRole, FormatFloat(n.Value)))

	case *ast.BooleanLiteral:
		f.write(f.colors.Color(BoolRole, strconv.FormatBool(n.Value)))

	case *ast.NullLiteral:
		f.write(f.colors.Color(NullRole, "null"))

	default:
		f.err = fmt.Errorf("xmljson: unsupported node type for formatting: %T", n)
	}
}

// FormatFloat renders v as a JSON number. Non-finite values use the
// NaN, Infinity and -Infinity literals, which the parser reads back.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return ast.FormatFloat(v)
}

const hex = "0123456789abcdef"

// Quote returns s as a double-quoted JSON string. Non-ASCII text is kept
// as is; control characters are escaped.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b.WriteByte('\\')
				b.WriteByte(c)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			default:
				if c < 0x20 || c == 0x7f {
					b.WriteString(`\u00`)
					b.WriteByte(hex[c>>4])
					b.WriteByte(hex[c&0xf])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(`\ufffd`)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
