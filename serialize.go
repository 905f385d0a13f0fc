package xmljson

import (
	"strings"

	"github.com/KimNorgaard/go-xmljson/ast"
	"github.com/KimNorgaard/go-xmljson/dom"
	"github.com/KimNorgaard/go-xmljson/stream"
)

// Serialize converts a markup tree into a value tree. The result is always
// an object: a document or fragment contributes its grouped children, any
// other node a single property.
//
// Sibling nodes are grouped by PropertyName in first-seen order. A group of
// two or more nodes becomes an array; a single node becomes a plain value
// unless it is an element whose array marker attribute is true.
func Serialize(root dom.Node, opts ...Option) (*ast.Document, error) {
	w := stream.NewNodeWriter()
	if err := WriteTo(w, root, opts...); err != nil {
		return nil, err
	}
	v, err := w.Result()
	if err != nil {
		return nil, err
	}
	return &ast.Document{Value: v}, nil
}

// WriteTo writes the value-tree tokens of root to w.
func WriteTo(w stream.Writer, root dom.Node, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	s := &serializer{w: w, maxDepth: o.maxDepth}
	if err := s.write(stream.BeginObjectToken); err != nil {
		return err
	}
	if err := s.serializeNode(root, true); err != nil {
		return err
	}
	return s.write(stream.EndObjectToken)
}

type serializer struct {
	w        stream.Writer
	maxDepth int
	depth    int
}

func (s *serializer) write(toks ...stream.Token) error {
	for _, tok := range toks {
		if err := s.w.WriteToken(tok); err != nil {
			return err
		}
	}
	return nil
}

func (s *serializer) serializeNode(n dom.Node, writeName bool) error {
	s.depth++
	defer func() { s.depth-- }()
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		return newError(MaxDepthExceeded, "markup nesting exceeds %d", s.maxDepth)
	}

	switch n.NodeType() {
	case dom.DocumentNode, dom.DocumentFragmentNode:
		return s.serializeGroupedNodes(n)

	case dom.ElementNode:
		if writeName {
			if err := s.write(stream.Property(n.Name())); err != nil {
				return err
			}
		}
		return s.serializeElement(n)

	case dom.CommentNode:
		if !writeName {
			return nil
		}
		return s.write(stream.Property(CommentKey), stream.StringValue(n.Value()))

	case dom.AttributeNode, dom.TextNode, dom.CDataNode, dom.ProcessingInstructionNode,
		dom.WhitespaceNode, dom.SignificantWhitespaceNode:
		if isArrayMetadata(n) {
			return nil
		}
		if writeName {
			name, err := PropertyName(n)
			if err != nil {
				return err
			}
			if err := s.write(stream.Property(name)); err != nil {
				return err
			}
		}
		return s.write(stream.StringValue(n.Value()))

	case dom.DeclarationNode:
		decl := n.(*dom.Declaration)
		if writeName {
			if err := s.write(stream.Property(DeclarationKey)); err != nil {
				return err
			}
		}
		if err := s.write(stream.BeginObjectToken); err != nil {
			return err
		}
		for _, pa := range []struct{ name, value string }{
			{"@version", decl.Version},
			{"@encoding", decl.Encoding},
			{"@standalone", decl.Standalone},
		} {
			if pa.value == "" {
				continue
			}
			if err := s.write(stream.Property(pa.name), stream.StringValue(pa.value)); err != nil {
				return err
			}
		}
		return s.write(stream.EndObjectToken)
	}
	return newError(UnsupportedNodeKind, "cannot serialize %s node", n.NodeType())
}

func (s *serializer) serializeElement(n dom.Node) error {
	attrs := n.Attributes()
	children := n.Children()

	switch {
	case countValueAttributes(attrs) == 0 && len(children) == 1 && children[0].NodeType() == dom.TextNode:
		// A leaf element collapses to its text.
		return s.write(stream.StringValue(children[0].Value()))

	case len(children) == 0 && len(attrs) == 0:
		return s.write(stream.NullToken)
	}

	if name, ok := constructorName(children); ok {
		if err := s.write(stream.Constructor(name)); err != nil {
			return err
		}
		for _, c := range children {
			if err := s.serializeNode(c, false); err != nil {
				return err
			}
		}
		return s.write(stream.EndConstructorToken)
	}

	if err := s.write(stream.BeginObjectToken); err != nil {
		return err
	}
	for _, a := range attrs {
		if err := s.serializeNode(a, true); err != nil {
			return err
		}
	}
	if err := s.serializeGroupedNodes(n); err != nil {
		return err
	}
	return s.write(stream.EndObjectToken)
}

type nodeGroup struct {
	key   string
	nodes []dom.Node
}

// groupChildren partitions the children of n by property name, keeping the
// order in which each name is first seen.
func groupChildren(n dom.Node) ([]*nodeGroup, error) {
	var groups []*nodeGroup
	byKey := make(map[string]*nodeGroup)
	for _, c := range n.Children() {
		key, err := PropertyName(c)
		if err != nil {
			return nil, err
		}
		g, ok := byKey[key]
		if !ok {
			g = &nodeGroup{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.nodes = append(g.nodes, c)
	}
	return groups, nil
}

func (s *serializer) serializeGroupedNodes(n dom.Node) error {
	groups, err := groupChildren(n)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if len(g.nodes) == 1 {
			forced, err := hasArrayMarker(g.nodes[0])
			if err != nil {
				return err
			}
			if !forced {
				if err := s.serializeNode(g.nodes[0], true); err != nil {
					return err
				}
				continue
			}
		}

		if err := s.write(stream.Property(g.key), stream.BeginArrayToken); err != nil {
			return err
		}
		for _, c := range g.nodes {
			if err := s.serializeNode(c, false); err != nil {
				return err
			}
		}
		if err := s.write(stream.EndArrayToken); err != nil {
			return err
		}
	}
	return nil
}

// hasArrayMarker reports whether n is an element carrying a true array
// marker attribute.
func hasArrayMarker(n dom.Node) (bool, error) {
	e, ok := n.(*dom.Element)
	if !ok {
		return false, nil
	}
	a := e.AttributeNS(ArrayAttribute, ArrayNamespace)
	if a == nil {
		return false, nil
	}
	v, ok := parseXMLBool(a.Value())
	if !ok {
		return false, newError(InvalidArrayMarkerValue, "%s=%q on <%s> is not a boolean", a.Name(), a.Value(), e.Name())
	}
	return v, nil
}

// parseXMLBool parses an xsd:boolean lexical value.
func parseXMLBool(s string) (bool, bool) {
	switch strings.Trim(s, " \t\r\n") {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// isArrayMetadata reports whether n belongs to the array marker protocol:
// a declaration binding the marker namespace, or a node in that namespace.
func isArrayMetadata(n dom.Node) bool {
	if n.Prefix() == "xmlns" && n.Value() == ArrayNamespace {
		return true
	}
	return n.NamespaceURI() == ArrayNamespace
}

// countValueAttributes counts the attributes that are written as
// properties, leaving out the array marker and its namespace declaration.
func countValueAttributes(attrs []*dom.Attr) int {
	n := 0
	for _, a := range attrs {
		if !isArrayMetadata(a) {
			n++
		}
	}
	return n
}

// constructorName reports whether more than one child element uses the
// constructor naming convention, and if so returns the name carried by the
// first of them.
func constructorName(children []dom.Node) (string, bool) {
	var name string
	count := 0
	for _, c := range children {
		if c.NodeType() != dom.ElementNode || !strings.HasPrefix(c.Name(), string(constructorMarker)) {
			continue
		}
		if count == 0 {
			name = c.Name()[1:]
		}
		count++
	}
	return name, count > 1
}
