package xmljson

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-xmljson/dom"
	"github.com/KimNorgaard/go-xmljson/internal/nsscope"
	"github.com/KimNorgaard/go-xmljson/internal/qname"
	"github.com/KimNorgaard/go-xmljson/stream"
)

// Deserialize builds a markup document from a value-tree token stream.
//
// The stream must hold exactly one object. Without a RootElement option that
// object must have a single property, which becomes the document element;
// with one, the object becomes the content of a new element of that name.
// Reserved keys (#text, #cdata-section, #comment, #whitespace,
// #significant-whitespace, ?xml and ?target) produce the matching node kinds,
// @-keys leading an object produce attributes, and arrays produce one
// sibling element per member.
func Deserialize(r stream.Reader, opts ...Option) (*dom.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	d := &deserializer{
		r:        &tokenReader{r: r},
		doc:      dom.NewDocument(),
		ns:       nsscope.New(),
		maxDepth: o.maxDepth,
	}

	tok, err := d.r.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != stream.StartObject {
		return nil, unexpected(tok, "value tree must start with an object")
	}

	if o.rootElement != "" {
		err = d.element(o.rootElement, d.doc)
	} else {
		err = d.deserializeNode(d.doc)
	}
	if err != nil {
		return nil, err
	}

	switch tok, err := r.Next(); {
	case errors.Is(err, io.EOF):
		return d.doc, nil
	case err != nil:
		return nil, err
	default:
		return nil, unexpected(tok, "trailing token after the top-level object")
	}
}

// tokenReader wraps a stream.Reader with one token of lookahead. Running out
// of tokens inside the top-level object is an UnexpectedToken failure.
type tokenReader struct {
	r       stream.Reader
	pending *stream.Token
}

func (t *tokenReader) next() (stream.Token, error) {
	if t.pending != nil {
		tok := *t.pending
		t.pending = nil
		return tok, nil
	}
	tok, err := t.r.Next()
	if errors.Is(err, io.EOF) {
		return tok, newError(UnexpectedToken, "unexpected end of value stream")
	}
	return tok, err
}

func (t *tokenReader) unread(tok stream.Token) {
	t.pending = &tok
}

type deserializer struct {
	r        *tokenReader
	doc      *dom.Document
	ns       *nsscope.Manager
	maxDepth int
	depth    int
}

func unexpected(tok stream.Token, context string) *Error {
	return newError(UnexpectedToken, "%s: got %s", context, tok)
}

// deserializeNode reads properties into parent until the end of the
// enclosing object.
func (d *deserializer) deserializeNode(parent dom.Node) error {
	for {
		tok, err := d.r.next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case stream.EndObject:
			return nil
		case stream.PropertyName:
		default:
			return unexpected(tok, "expected a property name")
		}

		name := tok.Text()
		if doc, ok := parent.(*dom.Document); ok && doc.DocumentElement() != nil {
			return newError(MultipleRootProperties,
				"top-level object has more than one property; %q follows the root element <%s>",
				name, doc.DocumentElement().Name())
		}
		if strings.HasPrefix(name, string(attributeMarker)) {
			return newError(UnexpectedToken, "attribute property %q must lead an element object", name)
		}

		val, err := d.r.next()
		if err != nil {
			return err
		}
		if val.Kind != stream.StartArray {
			if err := d.deserializeValue(name, val, parent); err != nil {
				return err
			}
			continue
		}
		if err := d.deserializeMembers(name, parent, stream.EndArray); err != nil {
			return err
		}
	}
}

// deserializeMembers deserializes each member of an array or constructor
// under name until the closing token of kind end.
func (d *deserializer) deserializeMembers(name string, parent dom.Node, end stream.Kind) error {
	for {
		tok, err := d.r.next()
		if err != nil {
			return err
		}
		if tok.Kind == end {
			return nil
		}
		if err := d.deserializeValue(name, tok, parent); err != nil {
			return err
		}
	}
}

// deserializeValue appends to parent the node that property name with the
// value starting at tok describes.
func (d *deserializer) deserializeValue(name string, tok stream.Token, parent dom.Node) error {
	d.depth++
	defer func() { d.depth-- }()
	if d.maxDepth > 0 && d.depth > d.maxDepth {
		return newError(MaxDepthExceeded, "value nesting exceeds %d", d.maxDepth)
	}

	switch name {
	case TextKey, CDataKey, CommentKey, WhitespaceKey, SignificantWhitespaceKey:
		text, err := scalarText(tok)
		if err != nil {
			return err
		}
		return d.appendChild(parent, d.charData(name, text))
	case DeclarationKey:
		return d.declaration(tok, parent)
	}

	if strings.HasPrefix(name, string(instructionMarker)) {
		text, err := scalarText(tok)
		if err != nil {
			return err
		}
		return d.appendChild(parent, d.doc.CreateProcessingInstruction(name[1:], text))
	}

	switch {
	case tok.Kind == stream.StartArray:
		// An array nested in an array has no sibling group to spread into.
		el, err := d.createElement(name, nil)
		if err != nil {
			return err
		}
		if err := d.appendChild(parent, el); err != nil {
			return err
		}
		return d.deserializeMembers(name, el, stream.EndArray)

	case tok.Kind.IsScalar():
		el, err := d.createElement(name, nil)
		if err != nil {
			return err
		}
		if tok.Kind != stream.Null {
			text, err := scalarText(tok)
			if err != nil {
				return err
			}
			if err := el.AppendChild(d.doc.CreateTextNode(text)); err != nil {
				return fmt.Errorf("xmljson: %w", err)
			}
		}
		return d.appendChild(parent, el)

	case tok.Kind == stream.StartConstructor:
		el, err := d.createElement(name, nil)
		if err != nil {
			return err
		}
		if err := d.appendChild(parent, el); err != nil {
			return err
		}
		return d.deserializeMembers(string(constructorMarker)+tok.Text(), el, stream.EndConstructor)

	case tok.Kind == stream.StartObject:
		return d.element(name, parent)
	}
	return unexpected(tok, fmt.Sprintf("invalid value for property %q", name))
}

func (d *deserializer) charData(key, text string) dom.Node {
	switch key {
	case TextKey:
		return d.doc.CreateTextNode(text)
	case CDataKey:
		return d.doc.CreateCDataSection(text)
	case CommentKey:
		return d.doc.CreateComment(text)
	case WhitespaceKey:
		return d.doc.CreateWhitespace(text)
	}
	return d.doc.CreateSignificantWhitespace(text)
}

// declaration reads the object of a ?xml property.
func (d *deserializer) declaration(tok stream.Token, parent dom.Node) error {
	if tok.Kind != stream.StartObject {
		return unexpected(tok, "declaration must be an object")
	}
	var version, encoding, standalone string
	for {
		tok, err := d.r.next()
		if err != nil {
			return err
		}
		if tok.Kind == stream.EndObject {
			break
		}
		if tok.Kind != stream.PropertyName {
			return unexpected(tok, "expected a declaration property")
		}
		var target *string
		switch tok.Text() {
		case "@version":
			target = &version
		case "@encoding":
			target = &encoding
		case "@standalone":
			target = &standalone
		default:
			return newError(UnexpectedDeclarationProperty, "unexpected property %q in XML declaration", tok.Text())
		}
		val, err := d.r.next()
		if err != nil {
			return err
		}
		if *target, err = scalarText(val); err != nil {
			return err
		}
	}
	return d.appendChild(parent, d.doc.CreateDeclaration(version, encoding, standalone))
}

type attrSpec struct {
	name, value string
}

// element reads the object of an element property. The opening StartObject
// has already been consumed.
func (d *deserializer) element(name string, parent dom.Node) error {
	d.ns.PushScope()
	defer d.ns.PopScope()

	var attrs []attrSpec
	for {
		tok, err := d.r.next()
		if err != nil {
			return err
		}
		if tok.Kind != stream.PropertyName || !strings.HasPrefix(tok.Text(), string(attributeMarker)) {
			d.r.unread(tok)
			break
		}
		attrName := tok.Text()[1:]
		val, err := d.r.next()
		if err != nil {
			return err
		}
		text, err := scalarText(val)
		if err != nil {
			return err
		}
		if prefix, ok := qname.NamespaceDeclPrefix(attrName); ok {
			d.ns.AddNamespace(prefix, text)
		}
		attrs = append(attrs, attrSpec{name: attrName, value: text})
	}

	el, err := d.createElement(name, attrs)
	if err != nil {
		return err
	}
	if err := d.appendChild(parent, el); err != nil {
		return err
	}
	return d.deserializeNode(el)
}

// createElement creates an element, resolving its namespace in the current
// scope, and attaches attrs to it.
func (d *deserializer) createElement(name string, attrs []attrSpec) (*dom.Element, error) {
	uri, _ := d.ns.LookupNamespace(qname.Prefix(name))
	el := d.doc.CreateElement(name, uri)
	for _, spec := range attrs {
		var uri string
		if _, ok := qname.NamespaceDeclPrefix(spec.name); ok {
			uri = nsscope.XMLNSNamespace
		} else if prefix := qname.Prefix(spec.name); prefix != "" {
			uri, _ = d.ns.LookupNamespace(prefix)
		}
		a := d.doc.CreateAttribute(spec.name, uri)
		a.SetValue(spec.value)
		if el.AttributeNS(a.LocalName(), uri) != nil {
			return nil, newError(UnexpectedToken, "duplicate attribute %q on element <%s>", spec.name, name)
		}
		if _, err := el.SetAttributeNode(a); err != nil {
			return nil, fmt.Errorf("xmljson: %w", err)
		}
	}
	return el, nil
}

func (d *deserializer) appendChild(parent, child dom.Node) error {
	var err error
	switch p := parent.(type) {
	case *dom.Document:
		err = p.AppendChild(child)
	case *dom.Element:
		err = p.AppendChild(child)
	case *dom.Fragment:
		err = p.AppendChild(child)
	default:
		err = fmt.Errorf("%w: %s cannot hold children", dom.ErrHierarchy, parent.NodeType())
	}
	if err != nil {
		return fmt.Errorf("xmljson: %w", err)
	}
	return nil
}

// scalarText renders a scalar token as markup text. Null renders as the
// empty string.
func scalarText(tok stream.Token) (string, error) {
	switch tok.Kind {
	case stream.String:
		return tok.Text(), nil
	case stream.Integer:
		switch v := tok.Value.(type) {
		case int64:
			return strconv.FormatInt(v, 10), nil
		case int:
			return strconv.Itoa(v), nil
		}
	case stream.Float:
		if v, ok := tok.Value.(float64); ok {
			return formatXMLFloat(v), nil
		}
	case stream.Boolean:
		if v, ok := tok.Value.(bool); ok {
			return strconv.FormatBool(v), nil
		}
	case stream.Null:
		return "", nil
	default:
		return "", unexpected(tok, "expected a scalar value")
	}
	return "", unexpected(tok, "malformed scalar token")
}

// formatXMLFloat writes f in xsd:double lexical form.
func formatXMLFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'G', -1, 64)
}
