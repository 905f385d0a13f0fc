package xmljson

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-xmljson/contract"
	"github.com/KimNorgaard/go-xmljson/dom"
	"github.com/KimNorgaard/go-xmljson/stream"
)

// Marshal returns the value-tree text of the markup tree rooted at n.
func Marshal(n dom.Node, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := Serialize(n, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeText(&buf, doc, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses value-tree text and returns the markup document it
// describes.
func Unmarshal(data []byte, opts ...Option) (*dom.Document, error) {
	return NewDecoder(bytes.NewReader(data), opts...).Decode()
}

// FromXML reads XML text from r and returns its value-tree text.
func FromXML(r io.Reader, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(r, o.parseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("xmljson: %w", err)
	}
	return Marshal(doc, opts...)
}

// ToXML converts value-tree text to XML text.
func ToXML(data []byte, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := Unmarshal(data, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := dom.Write(&buf, doc, o.writeOptions()...); err != nil {
		return nil, fmt.Errorf("xmljson: %w", err)
	}
	return buf.Bytes(), nil
}

// ValueToXML converts a Go value to a markup document. Structs are mapped
// through their contract properties, so tags such as `xj:"@id"` produce
// attributes.
func ValueToXML(v any, opts ...Option) (*dom.Document, error) {
	expr, err := contract.ToValue(v)
	if err != nil {
		return nil, fmt.Errorf("xmljson: %w", err)
	}
	return Deserialize(stream.NewNodeReader(expr), opts...)
}

// XMLToValue converts the markup tree rooted at n into a value tree and
// stores it in the value pointed to by v, which is usually a struct
// describing the document element's content:
//
//	var p struct {
//		Person struct {
//			ID   int    `xj:"@id"`
//			Name string `xj:"name"`
//		} `xj:"person"`
//	}
//	err := xmljson.XMLToValue(doc, &p)
func XMLToValue(n dom.Node, v any, opts ...Option) error {
	doc, err := Serialize(n, opts...)
	if err != nil {
		return err
	}
	if err := contract.Populate(doc.Value, v); err != nil {
		return fmt.Errorf("xmljson: %w", err)
	}
	return nil
}
