package dom

import (
	"errors"
	"fmt"

	"github.com/KimNorgaard/go-xmljson/internal/qname"
)

// ErrHierarchy is returned when a node cannot be inserted where requested.
var ErrHierarchy = errors.New("dom: invalid hierarchy")

// CreateElement returns a detached element with the qualified name and
// namespace URI.
func (d *Document) CreateElement(name, uri string) *Element {
	prefix, local := qname.Split(name)
	return &Element{prefix: prefix, local: local, uri: uri}
}

// CreateAttribute returns a detached attribute with the qualified name and
// namespace URI.
func (d *Document) CreateAttribute(name, uri string) *Attr {
	prefix, local := qname.Split(name)
	return &Attr{prefix: prefix, local: local, uri: uri}
}

// CreateTextNode returns a text node.
func (d *Document) CreateTextNode(data string) *CharData {
	return &CharData{kind: TextNode, data: data}
}

// CreateCDataSection returns a CDATA section.
func (d *Document) CreateCDataSection(data string) *CharData {
	return &CharData{kind: CDataNode, data: data}
}

// CreateComment returns a comment.
func (d *Document) CreateComment(data string) *CharData {
	return &CharData{kind: CommentNode, data: data}
}

// CreateWhitespace returns an insignificant whitespace node.
func (d *Document) CreateWhitespace(data string) *CharData {
	return &CharData{kind: WhitespaceNode, data: data}
}

// CreateSignificantWhitespace returns a whitespace node inside an
// xml:space="preserve" scope.
func (d *Document) CreateSignificantWhitespace(data string) *CharData {
	return &CharData{kind: SignificantWhitespaceNode, data: data}
}

// CreateProcessingInstruction returns a processing instruction.
func (d *Document) CreateProcessingInstruction(target, data string) *ProcInst {
	return &ProcInst{Target: target, Data: data}
}

// CreateDeclaration returns an XML declaration.
func (d *Document) CreateDeclaration(version, encoding, standalone string) *Declaration {
	return &Declaration{Version: version, Encoding: encoding, Standalone: standalone}
}

// CreateDocumentFragment returns an empty fragment.
func (d *Document) CreateDocumentFragment() *Fragment {
	return &Fragment{}
}

// AppendChild appends child to the document. A document holds at most one
// element, and a declaration only as its first child. Text and CDATA are
// rejected.
func (d *Document) AppendChild(child Node) error {
	if err := checkInsert(d, child); err != nil {
		return err
	}
	switch child.NodeType() {
	case ElementNode:
		if d.DocumentElement() != nil {
			return fmt.Errorf("%w: document already has a root element", ErrHierarchy)
		}
	case DeclarationNode:
		if len(d.children) > 0 {
			return fmt.Errorf("%w: declaration must be the first node of the document", ErrHierarchy)
		}
	case DocumentTypeNode:
		if d.DocumentElement() != nil {
			return fmt.Errorf("%w: document type after root element", ErrHierarchy)
		}
	case CommentNode, ProcessingInstructionNode, WhitespaceNode, SignificantWhitespaceNode:
	default:
		return fmt.Errorf("%w: cannot add %s to a document", ErrHierarchy, child.NodeType())
	}
	d.children = append(d.children, child)
	child.setParent(d)
	return nil
}

// AppendChild appends child to the fragment.
func (f *Fragment) AppendChild(child Node) error {
	if err := checkContent(f, child); err != nil {
		return err
	}
	f.children = append(f.children, child)
	child.setParent(f)
	return nil
}

// AppendChild appends child to the element.
func (e *Element) AppendChild(child Node) error {
	if err := checkContent(e, child); err != nil {
		return err
	}
	e.children = append(e.children, child)
	child.setParent(e)
	return nil
}

// SetAttributeNode adds a to the element, replacing any attribute with the
// same local name and namespace URI. The replaced attribute is returned
// detached.
func (e *Element) SetAttributeNode(a *Attr) (*Attr, error) {
	if a.parent != nil && a.parent != Node(e) {
		return nil, fmt.Errorf("%w: attribute %s is owned by another element", ErrHierarchy, a.Name())
	}
	for i, old := range e.attrs {
		if old.local == a.local && old.uri == a.uri {
			if old == a {
				return nil, nil
			}
			e.attrs[i] = a
			a.setParent(e)
			old.setParent(nil)
			return old, nil
		}
	}
	e.attrs = append(e.attrs, a)
	a.setParent(e)
	return nil, nil
}

// checkContent validates child as element or fragment content.
func checkContent(parent, child Node) error {
	if err := checkInsert(parent, child); err != nil {
		return err
	}
	switch child.NodeType() {
	case ElementNode, TextNode, CDataNode, CommentNode, WhitespaceNode,
		SignificantWhitespaceNode, ProcessingInstructionNode:
		return nil
	}
	return fmt.Errorf("%w: cannot add %s to %s", ErrHierarchy, child.NodeType(), parent.NodeType())
}

func checkInsert(parent, child Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrHierarchy)
	}
	if child.Parent() != nil {
		return fmt.Errorf("%w: %s %q already has a parent", ErrHierarchy, child.NodeType(), child.Name())
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == child {
			return fmt.Errorf("%w: cannot add an ancestor as a child", ErrHierarchy)
		}
	}
	return nil
}
