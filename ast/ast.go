package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-xmljson/token"
)

// Node is the base interface for all value tree nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token associated with the node.
	TokenLiteral() string
	// String returns a string representation of the node.
	String() string
}

// Expression is a node that represents a value.
type Expression interface {
	Node
	expressionNode()
}

// Document is the root of a parsed value tree. It holds a single value.
type Document struct {
	Value Expression
}

// TokenLiteral returns the literal value of the token associated with the node.
func (d *Document) TokenLiteral() string {
	if d.Value != nil {
		return d.Value.TokenLiteral()
	}
	return ""
}

// String returns a string representation of the node.
func (d *Document) String() string {
	if d.Value != nil {
		return d.Value.String()
	}
	return ""
}

// BooleanLiteral represents a boolean literal.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return strconv.FormatBool(b.Value) }

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return strconv.FormatInt(il.Value, 10) }

// FloatLiteral represents a float literal. Floats are kept distinct from
// integers even when their value is integral.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return FormatFloat(fl.Value) }

// StringLiteral represents a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

// NullLiteral represents a null literal.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) String() string       { return "null" }

// ArrayLiteral represents an array literal.
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("[")
	out.WriteString(joinExpressions(al.Elements))
	out.WriteString("]")
	return out.String()
}

// ObjectLiteral represents an ordered object literal.
type ObjectLiteral struct {
	Token token.Token // the '{' token
	Pairs []*PairExpression
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(ol.Pairs))
	for _, p := range ol.Pairs {
		pairs = append(pairs, p.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ","))
	out.WriteString("}")
	return out.String()
}

// Get returns the value of the first pair named key.
func (ol *ObjectLiteral) Get(key string) (Expression, bool) {
	for _, p := range ol.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Keys returns the pair keys in order.
func (ol *ObjectLiteral) Keys() []string {
	keys := make([]string, len(ol.Pairs))
	for i, p := range ol.Pairs {
		keys[i] = p.Key
	}
	return keys
}

// PairExpression represents a key-value pair in an object literal.
type PairExpression struct {
	Token token.Token // the key token
	Key   string
	Value Expression
}

func (pe *PairExpression) expressionNode()      {}
func (pe *PairExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PairExpression) String() string {
	return strconv.Quote(pe.Key) + ":" + pe.Value.String()
}

// ConstructorLiteral represents a named constructor call such as
// new Date(1, "UTC").
type ConstructorLiteral struct {
	Token     token.Token // the 'new' token
	Name      string
	Arguments []Expression
}

func (cl *ConstructorLiteral) expressionNode()      {}
func (cl *ConstructorLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *ConstructorLiteral) String() string {
	return "new " + cl.Name + "(" + joinExpressions(cl.Arguments) + ")"
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ",")
}

// FormatFloat formats f so that it always reads back as a float: integral
// values keep a trailing ".0".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
