package xmljson

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-xmljson/ast"
	"github.com/KimNorgaard/go-xmljson/dom"
	"github.com/KimNorgaard/go-xmljson/internal/lexer"
	"github.com/KimNorgaard/go-xmljson/internal/parser"
	"github.com/KimNorgaard/go-xmljson/internal/yamlconv"
	"github.com/KimNorgaard/go-xmljson/stream"
)

// Decoder reads value-tree text from an input stream and converts it to
// markup documents.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder may buffer data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the value-tree text from its input and returns the markup
// document it describes.
//
// If the input contains syntax errors, Decode returns an
// errors.ParseErrors value.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode() (*dom.Document, error) {
	if d.r == nil {
		return nil, fmt.Errorf("xmljson: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	doc, err := parseText(data, o)
	if err != nil {
		return nil, err
	}
	return Deserialize(stream.NewNodeReader(doc.Value), d.opts...)
}

// parseText parses JSON or YAML text into a value tree. Empty input is an
// UnexpectedToken failure.
func parseText(data []byte, o *options) (*ast.Document, error) {
	var doc *ast.Document
	switch o.format {
	case FormatYAML:
		v, err := yamlconv.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("xmljson: %w", err)
		}
		doc = &ast.Document{Value: v}
	default:
		p := parser.New(lexer.New(bytes.NewReader(data)))
		doc = p.Parse()
		if len(p.Errors()) > 0 {
			return nil, p.Errors()
		}
	}
	if doc.Value == nil {
		return nil, newError(UnexpectedToken, "empty value tree")
	}
	return doc, nil
}
