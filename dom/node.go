// Package dom is an ordered, attributed XML node tree. It keeps prefixes,
// comments, CDATA sections, processing instructions and the XML
// declaration, so that a document can be converted node by node.
package dom

import (
	"slices"
	"strconv"

	"github.com/KimNorgaard/go-xmljson/internal/qname"
)

// NodeType classifies nodes in the tree.
type NodeType int

const (
	DocumentNode NodeType = iota + 1
	DocumentFragmentNode
	ElementNode
	AttributeNode
	TextNode
	CDataNode
	CommentNode
	WhitespaceNode
	SignificantWhitespaceNode
	ProcessingInstructionNode
	DeclarationNode
	DocumentTypeNode
)

var nodeTypeNames = [...]string{
	DocumentNode:              "Document",
	DocumentFragmentNode:      "DocumentFragment",
	ElementNode:               "Element",
	AttributeNode:             "Attribute",
	TextNode:                  "Text",
	CDataNode:                 "CDATA",
	CommentNode:               "Comment",
	WhitespaceNode:            "Whitespace",
	SignificantWhitespaceNode: "SignificantWhitespace",
	ProcessingInstructionNode: "ProcessingInstruction",
	DeclarationNode:           "XmlDeclaration",
	DocumentTypeNode:          "DocumentType",
}

func (t NodeType) String() string {
	if t > 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Node is implemented by every node in the tree. The set of node types is
// closed.
type Node interface {
	NodeType() NodeType
	// Name returns the qualified name for elements and attributes, the
	// target for processing instructions and a #-prefixed kind name for
	// everything else.
	Name() string
	LocalName() string
	Prefix() string
	NamespaceURI() string
	// Value returns the character content of attributes, character data
	// and processing instructions.
	Value() string
	// Parent returns the owning node: the element for an attribute, nil for
	// a detached node or a document.
	Parent() Node
	Children() []Node
	Attributes() []*Attr

	setParent(Node)
}

type base struct {
	parent Node
}

func (b *base) Parent() Node         { return b.parent }
func (b *base) setParent(p Node)     { b.parent = p }
func (b *base) Prefix() string       { return "" }
func (b *base) NamespaceURI() string { return "" }
func (b *base) Value() string        { return "" }
func (b *base) Children() []Node     { return nil }
func (b *base) Attributes() []*Attr  { return nil }

// Document is the root of a tree. It holds at most one element.
type Document struct {
	base
	children []Node
}

// NewDocument returns an empty document.
func NewDocument() *Document { return &Document{} }

func (d *Document) NodeType() NodeType { return DocumentNode }
func (d *Document) Name() string       { return "#document" }
func (d *Document) LocalName() string  { return "#document" }
func (d *Document) Children() []Node   { return slices.Clone(d.children) }

// DocumentElement returns the root element, or nil.
func (d *Document) DocumentElement() *Element {
	for _, c := range d.children {
		if e, ok := c.(*Element); ok {
			return e
		}
	}
	return nil
}

// Declaration returns the XML declaration, or nil.
func (d *Document) Declaration() *Declaration {
	if len(d.children) > 0 {
		if decl, ok := d.children[0].(*Declaration); ok {
			return decl
		}
	}
	return nil
}

// Fragment is a parentless container of nodes.
type Fragment struct {
	base
	children []Node
}

func (f *Fragment) NodeType() NodeType { return DocumentFragmentNode }
func (f *Fragment) Name() string       { return "#document-fragment" }
func (f *Fragment) LocalName() string  { return "#document-fragment" }
func (f *Fragment) Children() []Node   { return slices.Clone(f.children) }

// Element is an XML element with ordered attributes and children.
type Element struct {
	base
	prefix   string
	local    string
	uri      string
	attrs    []*Attr
	children []Node
}

func (e *Element) NodeType() NodeType   { return ElementNode }
func (e *Element) Name() string         { return qname.Join(e.prefix, e.local) }
func (e *Element) LocalName() string    { return e.local }
func (e *Element) Prefix() string       { return e.prefix }
func (e *Element) NamespaceURI() string { return e.uri }
func (e *Element) Children() []Node     { return slices.Clone(e.children) }
func (e *Element) Attributes() []*Attr  { return slices.Clone(e.attrs) }

// Attribute returns the attribute with the qualified name, or nil.
func (e *Element) Attribute(name string) *Attr {
	for _, a := range e.attrs {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// AttributeNS returns the attribute with the local name in namespace uri,
// or nil.
func (e *Element) AttributeNS(local, uri string) *Attr {
	for _, a := range e.attrs {
		if a.local == local && a.uri == uri {
			return a
		}
	}
	return nil
}

// Attr is an attribute. It never has children.
type Attr struct {
	base
	prefix string
	local  string
	uri    string
	value  string
}

func (a *Attr) NodeType() NodeType   { return AttributeNode }
func (a *Attr) Name() string         { return qname.Join(a.prefix, a.local) }
func (a *Attr) LocalName() string    { return a.local }
func (a *Attr) Prefix() string       { return a.prefix }
func (a *Attr) NamespaceURI() string { return a.uri }
func (a *Attr) Value() string        { return a.value }

// SetValue replaces the attribute value.
func (a *Attr) SetValue(v string) { a.value = v }

// CharData is a text, CDATA, comment or whitespace node.
type CharData struct {
	base
	kind NodeType
	data string
}

var charDataNames = map[NodeType]string{
	TextNode:                  "#text",
	CDataNode:                 "#cdata-section",
	CommentNode:               "#comment",
	WhitespaceNode:            "#whitespace",
	SignificantWhitespaceNode: "#significant-whitespace",
}

func (c *CharData) NodeType() NodeType { return c.kind }
func (c *CharData) Name() string       { return charDataNames[c.kind] }
func (c *CharData) LocalName() string  { return charDataNames[c.kind] }
func (c *CharData) Value() string      { return c.data }

// ProcInst is a processing instruction other than the XML declaration.
type ProcInst struct {
	base
	Target string
	Data   string
}

func (p *ProcInst) NodeType() NodeType { return ProcessingInstructionNode }
func (p *ProcInst) Name() string       { return p.Target }
func (p *ProcInst) LocalName() string  { return p.Target }
func (p *ProcInst) Value() string      { return p.Data }

// Declaration is the <?xml ...?> declaration. Empty fields are omitted
// when written.
type Declaration struct {
	base
	Version    string
	Encoding   string
	Standalone string
}

func (d *Declaration) NodeType() NodeType { return DeclarationNode }
func (d *Declaration) Name() string       { return "xml" }
func (d *Declaration) LocalName() string  { return "xml" }

// Value returns the declaration's pseudo-attributes as written.
func (d *Declaration) Value() string {
	var s string
	add := func(name, v string) {
		if v == "" {
			return
		}
		if s != "" {
			s += " "
		}
		s += name + `="` + v + `"`
	}
	add("version", d.Version)
	add("encoding", d.Encoding)
	add("standalone", d.Standalone)
	return s
}

// DocumentType holds a <!DOCTYPE ...> directive verbatim. Its internal
// subset is not interpreted.
type DocumentType struct {
	base
	Raw string
}

func (d *DocumentType) NodeType() NodeType { return DocumentTypeNode }
func (d *DocumentType) Name() string       { return "#doctype" }
func (d *DocumentType) LocalName() string  { return "#doctype" }
func (d *DocumentType) Value() string      { return d.Raw }
