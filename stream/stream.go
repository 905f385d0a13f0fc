// Package stream defines the value-tree token stream shared by the
// converter's two directions: a pull Reader and a push Writer.
package stream

import (
	"fmt"
	"strconv"
)

// Kind is the kind of a value-tree token.
type Kind int

const (
	None Kind = iota
	StartObject
	EndObject
	StartArray
	EndArray
	PropertyName
	String
	Integer
	Float
	Boolean
	Null
	StartConstructor
	EndConstructor
)

var kindNames = [...]string{
	None:             "None",
	StartObject:      "StartObject",
	EndObject:        "EndObject",
	StartArray:       "StartArray",
	EndArray:         "EndArray",
	PropertyName:     "PropertyName",
	String:           "String",
	Integer:          "Integer",
	Float:            "Float",
	Boolean:          "Boolean",
	Null:             "Null",
	StartConstructor: "StartConstructor",
	EndConstructor:   "EndConstructor",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsScalar reports whether k carries a single scalar value.
func (k Kind) IsScalar() bool {
	switch k {
	case String, Integer, Float, Boolean, Null:
		return true
	}
	return false
}

// Token is one value-tree token. Value holds the payload: a string for
// PropertyName, String and StartConstructor, an int64 for Integer, a float64
// for Float, a bool for Boolean, and nil otherwise.
type Token struct {
	Kind  Kind
	Value any
}

func (t Token) String() string {
	switch t.Kind {
	case PropertyName, String, StartConstructor:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	case Integer, Float, Boolean:
		return fmt.Sprintf("%s(%v)", t.Kind, t.Value)
	}
	return t.Kind.String()
}

// Text returns the payload of a string-carrying token.
func (t Token) Text() string {
	s, _ := t.Value.(string)
	return s
}

var (
	BeginObjectToken    = Token{Kind: StartObject}
	EndObjectToken      = Token{Kind: EndObject}
	BeginArrayToken     = Token{Kind: StartArray}
	EndArrayToken       = Token{Kind: EndArray}
	NullToken           = Token{Kind: Null}
	EndConstructorToken = Token{Kind: EndConstructor}
)

// Property returns a PropertyName token.
func Property(name string) Token { return Token{Kind: PropertyName, Value: name} }

// StringValue returns a String token.
func StringValue(s string) Token { return Token{Kind: String, Value: s} }

// IntegerValue returns an Integer token.
func IntegerValue(i int64) Token { return Token{Kind: Integer, Value: i} }

// FloatValue returns a Float token.
func FloatValue(f float64) Token { return Token{Kind: Float, Value: f} }

// BooleanValue returns a Boolean token.
func BooleanValue(b bool) Token { return Token{Kind: Boolean, Value: b} }

// Constructor returns a StartConstructor token.
func Constructor(name string) Token { return Token{Kind: StartConstructor, Value: name} }

// Reader is a pull reader over a value-tree token stream. Next returns
// io.EOF once the stream is exhausted.
type Reader interface {
	Next() (Token, error)
}

// Writer is a push writer accepting a value-tree token stream.
type Writer interface {
	WriteToken(tok Token) error
}

// SliceReader reads tokens from a slice.
type SliceReader struct {
	toks []Token
	pos  int
}

// NewSliceReader returns a Reader over toks.
func NewSliceReader(toks ...Token) *SliceReader {
	return &SliceReader{toks: toks}
}
