package ast

import (
	"strconv"

	"github.com/KimNorgaard/go-xmljson/token"
)

// NewString returns a string literal holding s.
func NewString(s string) *StringLiteral {
	return &StringLiteral{Token: token.Token{Type: token.STRING, Literal: s}, Value: s}
}

// NewInteger returns an integer literal holding i.
func NewInteger(i int64) *IntegerLiteral {
	return &IntegerLiteral{Token: token.Token{Type: token.INT, Literal: strconv.FormatInt(i, 10)}, Value: i}
}

// NewFloat returns a float literal holding f.
func NewFloat(f float64) *FloatLiteral {
	return &FloatLiteral{Token: token.Token{Type: token.FLOAT, Literal: FormatFloat(f)}, Value: f}
}

// NewBoolean returns a boolean literal holding b.
func NewBoolean(b bool) *BooleanLiteral {
	typ := token.FALSE
	if b {
		typ = token.TRUE
	}
	return &BooleanLiteral{Token: token.Token{Type: typ, Literal: strconv.FormatBool(b)}, Value: b}
}

// NewNull returns a null literal.
func NewNull() *NullLiteral {
	return &NullLiteral{Token: token.Token{Type: token.NULL, Literal: "null"}}
}

// NewArray returns an array literal holding elems.
func NewArray(elems ...Expression) *ArrayLiteral {
	if elems == nil {
		elems = []Expression{}
	}
	return &ArrayLiteral{Token: token.Token{Type: token.LBRACK, Literal: "["}, Elements: elems}
}

// NewObject returns an empty object literal.
func NewObject() *ObjectLiteral {
	return &ObjectLiteral{Token: token.Token{Type: token.LBRACE, Literal: "{"}, Pairs: []*PairExpression{}}
}

// NewConstructor returns a constructor literal named name.
func NewConstructor(name string, args ...Expression) *ConstructorLiteral {
	if args == nil {
		args = []Expression{}
	}
	return &ConstructorLiteral{Token: token.Token{Type: token.NEW, Literal: "new"}, Name: name, Arguments: args}
}

// Add appends a pair to the object and returns the object.
func (ol *ObjectLiteral) Add(key string, value Expression) *ObjectLiteral {
	ol.Pairs = append(ol.Pairs, &PairExpression{
		Token: token.Token{Type: token.STRING, Literal: key},
		Key:   key,
		Value: value,
	})
	return ol
}
