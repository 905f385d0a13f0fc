package dom

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteOption configures XML output.
type WriteOption func(*writeConfig)

type writeConfig struct {
	indent          string
	omitDeclaration bool
}

// Indent indents nested elements by prefix per level. Elements holding
// text are written without added whitespace.
func Indent(prefix string) WriteOption {
	return func(c *writeConfig) { c.indent = prefix }
}

// OmitDeclaration leaves out the document's XML declaration.
func OmitDeclaration() WriteOption {
	return func(c *writeConfig) { c.omitDeclaration = true }
}

// WriteTo writes the document as XML text.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return Write(w, d)
}

// Render returns n as XML text.
func Render(n Node, opts ...WriteOption) (string, error) {
	var sb strings.Builder
	if _, err := Write(&sb, n, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes n and its descendants as XML text.
func Write(w io.Writer, n Node, opts ...WriteOption) (int64, error) {
	cw := &countingWriter{w: w}
	xw := &xmlWriter{w: bufio.NewWriter(cw)}
	for _, opt := range opts {
		opt(&xw.cfg)
	}
	xw.node(n, 0)
	if xw.err == nil {
		xw.err = xw.w.Flush()
	}
	return cw.n, xw.err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type xmlWriter struct {
	w   *bufio.Writer
	cfg writeConfig
	err error
	// wrote reports whether anything has been written yet.
	wrote bool
}

func (x *xmlWriter) write(s string) {
	if x.err != nil {
		return
	}
	x.wrote = true
	_, x.err = x.w.WriteString(s)
}

func (x *xmlWriter) newline(depth int) {
	if x.cfg.indent == "" || !x.wrote {
		return
	}
	x.write("\n")
	x.write(strings.Repeat(x.cfg.indent, depth))
}

func (x *xmlWriter) node(n Node, depth int) {
	if x.err != nil {
		return
	}
	switch n := n.(type) {
	case *Document:
		for _, c := range n.children {
			if x.cfg.omitDeclaration && c.NodeType() == DeclarationNode {
				continue
			}
			x.child(c, depth, true)
		}
	case *Fragment:
		for _, c := range n.children {
			x.child(c, depth, true)
		}
	case *Element:
		x.write("<" + n.Name())
		for _, a := range n.attrs {
			x.write(" " + a.Name() + `="` + escapeAttr(a.value) + `"`)
		}
		if len(n.children) == 0 {
			x.write(" />")
			return
		}
		x.write(">")
		indent := x.cfg.indent != "" && !hasTextContent(n.children)
		for _, c := range n.children {
			x.child(c, depth+1, indent)
		}
		if indent {
			x.newline(depth)
		}
		x.write("</" + n.Name() + ">")
	case *Attr:
		x.write(n.Name() + `="` + escapeAttr(n.value) + `"`)
	case *CharData:
		switch n.kind {
		case TextNode:
			x.write(escapeText(n.data))
		case CDataNode:
			x.write("<![CDATA[" + strings.ReplaceAll(n.data, "]]>", "]]]]><![CDATA[>") + "]]>")
		case CommentNode:
			x.write("<!--" + n.data + "-->")
		default:
			x.write(n.data)
		}
	case *ProcInst:
		if n.Data == "" {
			x.write("<?" + n.Target + "?>")
		} else {
			x.write("<?" + n.Target + " " + n.Data + "?>")
		}
	case *Declaration:
		x.write("<?xml " + n.Value() + "?>")
	case *DocumentType:
		x.write("<!" + n.Raw + ">")
	default:
		x.err = fmt.Errorf("dom: cannot write %T", n)
	}
}

// child writes c at depth. Whitespace nodes are dropped when indenting so
// that the added layout replaces them.
func (x *xmlWriter) child(c Node, depth int, indent bool) {
	if indent && x.cfg.indent != "" {
		if c.NodeType() == WhitespaceNode {
			return
		}
		x.newline(depth)
	}
	x.node(c, depth)
}

func hasTextContent(children []Node) bool {
	for _, c := range children {
		switch c.NodeType() {
		case TextNode, CDataNode, SignificantWhitespaceNode:
			return true
		}
	}
	return false
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
