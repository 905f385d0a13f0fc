package xmljson

import (
	"github.com/KimNorgaard/go-xmljson/dom"
)

// Reserved vocabulary shared by both directions of the conversion.
const (
	// ArrayNamespace is the namespace of the array marker attribute.
	ArrayNamespace = "http://james.newtonking.com/projects/json"
	// ArrayAttribute is the local name of the array marker attribute. When
	// it is true on an element that is alone in its sibling group, the
	// element is written as a one-element array.
	ArrayAttribute = "Array"

	TextKey                  = "#text"
	CDataKey                 = "#cdata-section"
	CommentKey               = "#comment"
	WhitespaceKey            = "#whitespace"
	SignificantWhitespaceKey = "#significant-whitespace"
	DeclarationKey           = "?xml"

	attributeMarker   = '@'
	instructionMarker = '?'
	constructorMarker = '-'
)

// PropertyName returns the key under which n is filed in a value tree.
func PropertyName(n dom.Node) (string, error) {
	switch n.NodeType() {
	case dom.AttributeNode:
		return string(attributeMarker) + n.Name(), nil
	case dom.CDataNode:
		return CDataKey, nil
	case dom.CommentNode:
		return CommentKey, nil
	case dom.ElementNode:
		return n.Name(), nil
	case dom.ProcessingInstructionNode:
		return string(instructionMarker) + n.Name(), nil
	case dom.DeclarationNode:
		return DeclarationKey, nil
	case dom.SignificantWhitespaceNode:
		return SignificantWhitespaceKey, nil
	case dom.TextNode:
		return TextKey, nil
	case dom.WhitespaceNode:
		return WhitespaceKey, nil
	}
	return "", newError(UnsupportedNodeKind, "no property name for %s node", n.NodeType())
}
