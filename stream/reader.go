package stream

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-xmljson/ast"
)

// Next returns the next token, or io.EOF when all tokens have been read.
func (r *SliceReader) Next() (Token, error) {
	if r.pos >= len(r.toks) {
		return Token{}, io.EOF
	}
	tok := r.toks[r.pos]
	r.pos++
	return tok, nil
}

// NodeReader reads the token stream of a value tree.
type NodeReader struct {
	SliceReader
	err error
}

// NewNodeReader returns a Reader producing the tokens of n in document
// order. An *ast.Document yields the tokens of its value.
func NewNodeReader(n ast.Node) *NodeReader {
	r := &NodeReader{}
	r.err = r.emit(n)
	return r
}

// Next returns the next token. If the tree holds a node that has no token
// representation, the first call reports it.
func (r *NodeReader) Next() (Token, error) {
	if r.err != nil {
		return Token{}, r.err
	}
	return r.SliceReader.Next()
}

func (r *NodeReader) push(tok Token) {
	r.toks = append(r.toks, tok)
}

func (r *NodeReader) emit(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Document:
		if n.Value == nil {
			return fmt.Errorf("%w: empty document", ErrInvalidToken)
		}
		return r.emit(n.Value)
	case *ast.ObjectLiteral:
		r.push(BeginObjectToken)
		for _, pair := range n.Pairs {
			r.push(Property(pair.Key))
			if err := r.emit(pair.Value); err != nil {
				return err
			}
		}
		r.push(EndObjectToken)
	case *ast.ArrayLiteral:
		r.push(BeginArrayToken)
		for _, elem := range n.Elements {
			if err := r.emit(elem); err != nil {
				return err
			}
		}
		r.push(EndArrayToken)
	case *ast.ConstructorLiteral:
		r.push(Constructor(n.Name))
		for _, arg := range n.Arguments {
			if err := r.emit(arg); err != nil {
				return err
			}
		}
		r.push(EndConstructorToken)
	case *ast.StringLiteral:
		r.push(StringValue(n.Value))
	case *ast.IntegerLiteral:
		r.push(IntegerValue(n.Value))
	case *ast.FloatLiteral:
		r.push(FloatValue(n.Value))
	case *ast.BooleanLiteral:
		r.push(BooleanValue(n.Value))
	case *ast.NullLiteral:
		r.push(NullToken)
	default:
		return fmt.Errorf("%w: no token representation for %T", ErrInvalidToken, n)
	}
	return nil
}
