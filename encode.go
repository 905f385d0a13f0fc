package xmljson

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-xmljson/ast"
	"github.com/KimNorgaard/go-xmljson/dom"
	"github.com/KimNorgaard/go-xmljson/internal/formatter"
	"github.com/KimNorgaard/go-xmljson/internal/yamlconv"
)

// Encoder writes markup trees to an output stream as value-tree text.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode converts n to a value tree and writes it to the stream in the
// configured text format. JSON output is followed by a newline.
func (e *Encoder) Encode(n dom.Node) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	doc, err := Serialize(n, e.opts...)
	if err != nil {
		return err
	}
	if err := writeText(e.w, doc, o); err != nil {
		return err
	}
	if o.format == FormatJSON {
		_, err = io.WriteString(e.w, "\n")
	}
	return err
}

func writeText(w io.Writer, doc *ast.Document, o *options) error {
	switch o.format {
	case FormatYAML:
		indent := 2
		if o.indent != nil {
			indent = *o.indent
		}
		b, err := yamlconv.Marshal(doc, indent)
		if err != nil {
			return fmt.Errorf("xmljson: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		f := formatter.New(w, o.indent)
		if o.colors {
			f = f.WithColors(formatter.NewColors())
		}
		return f.Format(doc)
	}
}
