package dom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-xmljson/internal/nsscope"
	"github.com/KimNorgaard/go-xmljson/internal/qname"
)

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	preserveWhitespace bool
}

// PreserveWhitespace keeps whitespace-only text as Whitespace nodes. By
// default such text is dropped unless an xml:space="preserve" scope turns
// it into SignificantWhitespace.
func PreserveWhitespace() ParseOption {
	return func(c *parseConfig) { c.preserveWhitespace = true }
}

// ParseString parses an XML document held in s.
func ParseString(s string, opts ...ParseOption) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

type openElement struct {
	elem     *Element
	preserve bool
}

type domParser struct {
	cfg   parseConfig
	data  []byte
	dec   *xml.Decoder
	doc   *Document
	ns    *nsscope.Manager
	stack []openElement
}

// Parse reads an XML document. Prefixes are kept as written and namespace
// URIs are resolved against the in-scope declarations.
func Parse(r io.Reader, opts ...ParseOption) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &domParser{
		data: data,
		dec:  xml.NewDecoder(bytes.NewReader(data)),
		doc:  NewDocument(),
		ns:   nsscope.New(),
	}
	for _, opt := range opts {
		opt(&p.cfg)
	}
	if err := p.run(); err != nil {
		line, col := p.dec.InputPos()
		return nil, fmt.Errorf("dom: line %d, column %d: %w", line, col, err)
	}
	return p.doc, nil
}

func (p *domParser) run() error {
	for {
		start := p.dec.InputOffset()
		tok, err := p.dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		raw := p.data[start:p.dec.InputOffset()]
		if err := p.handle(tok, raw); err != nil {
			return err
		}
	}
	if len(p.stack) > 0 {
		return fmt.Errorf("element <%s> not closed", p.stack[len(p.stack)-1].elem.Name())
	}
	if p.doc.DocumentElement() == nil {
		return errors.New("no root element")
	}
	return nil
}

func (p *domParser) appendNode(n Node) error {
	if len(p.stack) == 0 {
		return p.doc.AppendChild(n)
	}
	return p.stack[len(p.stack)-1].elem.AppendChild(n)
}

func (p *domParser) handle(tok xml.Token, raw []byte) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return p.startElement(t)
	case xml.EndElement:
		return p.endElement(t)
	case xml.CharData:
		return p.charData(string(t), raw)
	case xml.Comment:
		return p.appendNode(p.doc.CreateComment(string(t)))
	case xml.ProcInst:
		if t.Target == "xml" {
			return p.appendNode(parseDeclaration(string(t.Inst)))
		}
		data := strings.TrimLeft(string(t.Inst), " \t\r\n")
		return p.appendNode(p.doc.CreateProcessingInstruction(t.Target, data))
	case xml.Directive:
		if !bytes.HasPrefix(t, []byte("DOCTYPE")) {
			return fmt.Errorf("unsupported directive <!%s>", t)
		}
		return p.appendNode(&DocumentType{Raw: string(t)})
	}
	return fmt.Errorf("unexpected token %T", tok)
}

func (p *domParser) startElement(t xml.StartElement) error {
	if len(p.stack) == 0 && p.doc.DocumentElement() != nil {
		return fmt.Errorf("unexpected element <%s> after root element", qname.Join(t.Name.Space, t.Name.Local))
	}
	p.ns.PushScope()
	preserve := len(p.stack) > 0 && p.stack[len(p.stack)-1].preserve
	for _, a := range t.Attr {
		name := qname.Join(a.Name.Space, a.Name.Local)
		if prefix, ok := qname.NamespaceDeclPrefix(name); ok {
			p.ns.AddNamespace(prefix, a.Value)
		}
		if name == "xml:space" {
			preserve = a.Value == "preserve"
		}
	}

	uri, err := p.resolve(t.Name.Space, false)
	if err != nil {
		return err
	}
	elem := p.doc.CreateElement(qname.Join(t.Name.Space, t.Name.Local), uri)
	for _, a := range t.Attr {
		name := qname.Join(a.Name.Space, a.Name.Local)
		if elem.Attribute(name) != nil {
			return fmt.Errorf("duplicate attribute %s on <%s>", name, elem.Name())
		}
		var auri string
		if _, ok := qname.NamespaceDeclPrefix(name); ok {
			auri = nsscope.XMLNSNamespace
		} else if auri, err = p.resolve(a.Name.Space, true); err != nil {
			return err
		}
		attr := p.doc.CreateAttribute(name, auri)
		attr.SetValue(a.Value)
		if _, err := elem.SetAttributeNode(attr); err != nil {
			return err
		}
	}
	if err := p.appendNode(elem); err != nil {
		return err
	}
	p.stack = append(p.stack, openElement{elem: elem, preserve: preserve})
	return nil
}

// resolve maps a prefix to its namespace URI. Unprefixed attributes are in
// no namespace; unprefixed elements take the default namespace.
func (p *domParser) resolve(prefix string, attr bool) (string, error) {
	if prefix == "" && attr {
		return "", nil
	}
	uri, ok := p.ns.LookupNamespace(prefix)
	if !ok {
		return "", fmt.Errorf("undeclared namespace prefix %q", prefix)
	}
	return uri, nil
}

func (p *domParser) endElement(t xml.EndElement) error {
	name := qname.Join(t.Name.Space, t.Name.Local)
	if len(p.stack) == 0 {
		return fmt.Errorf("unexpected end element </%s>", name)
	}
	top := p.stack[len(p.stack)-1]
	if top.elem.Name() != name {
		return fmt.Errorf("element <%s> closed by </%s>", top.elem.Name(), name)
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.ns.PopScope()
	return nil
}

func (p *domParser) charData(s string, raw []byte) error {
	if bytes.HasPrefix(raw, []byte("<![CDATA[")) {
		if len(p.stack) == 0 {
			return errors.New("CDATA section outside root element")
		}
		return p.appendNode(p.doc.CreateCDataSection(s))
	}
	if !isXMLSpace(s) {
		if len(p.stack) == 0 {
			return errors.New("character data outside root element")
		}
		return p.appendNode(p.doc.CreateTextNode(s))
	}
	switch {
	case len(p.stack) > 0 && p.stack[len(p.stack)-1].preserve:
		return p.appendNode(p.doc.CreateSignificantWhitespace(s))
	case p.cfg.preserveWhitespace:
		return p.appendNode(p.doc.CreateWhitespace(s))
	}
	return nil
}

func isXMLSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// parseDeclaration reads the version, encoding and standalone
// pseudo-attributes of an XML declaration.
func parseDeclaration(inst string) *Declaration {
	return &Declaration{
		Version:    pseudoAttr(inst, "version"),
		Encoding:   pseudoAttr(inst, "encoding"),
		Standalone: pseudoAttr(inst, "standalone"),
	}
}

func pseudoAttr(s, name string) string {
	for s != "" {
		s = strings.TrimLeft(s, " \t\r\n")
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return ""
		}
		key := strings.TrimSpace(s[:eq])
		s = strings.TrimLeft(s[eq+1:], " \t\r\n")
		if s == "" || (s[0] != '"' && s[0] != '\'') {
			return ""
		}
		end := strings.IndexByte(s[1:], s[0])
		if end < 0 {
			return ""
		}
		if key == name {
			return s[1 : end+1]
		}
		s = s[end+2:]
	}
	return ""
}
