package stream

import (
	"errors"
	"fmt"

	"github.com/KimNorgaard/go-xmljson/ast"
)

// ErrInvalidToken is returned when a token cannot appear at the current
// position of a stream.
var ErrInvalidToken = errors.New("stream: invalid token")

type frame struct {
	obj    *ast.ObjectLiteral
	arr    *ast.ArrayLiteral
	ctor   *ast.ConstructorLiteral
	key    string
	hasKey bool
}

func (f *frame) kind() Kind {
	switch {
	case f.obj != nil:
		return StartObject
	case f.arr != nil:
		return StartArray
	}
	return StartConstructor
}

// NodeWriter builds a value tree from a token stream. Objects may receive
// the same property name more than once while they are open; when the
// object is closed the repeated values are merged, in order, into an array
// held by the first occurrence.
type NodeWriter struct {
	stack []*frame
	root  ast.Expression
}

// NewNodeWriter returns an empty NodeWriter.
func NewNodeWriter() *NodeWriter {
	return &NodeWriter{}
}

// WriteToken adds tok to the tree under construction.
func (w *NodeWriter) WriteToken(tok Token) error {
	switch tok.Kind {
	case StartObject:
		obj := ast.NewObject()
		if err := w.attach(obj, tok); err != nil {
			return err
		}
		w.stack = append(w.stack, &frame{obj: obj})
	case StartArray:
		arr := ast.NewArray()
		if err := w.attach(arr, tok); err != nil {
			return err
		}
		w.stack = append(w.stack, &frame{arr: arr})
	case StartConstructor:
		name, ok := tok.Value.(string)
		if !ok || name == "" {
			return fmt.Errorf("%w: constructor without a name", ErrInvalidToken)
		}
		ctor := ast.NewConstructor(name)
		if err := w.attach(ctor, tok); err != nil {
			return err
		}
		w.stack = append(w.stack, &frame{ctor: ctor})
	case EndObject, EndArray, EndConstructor:
		return w.close(tok)
	case PropertyName:
		top := w.top()
		if top == nil || top.obj == nil || top.hasKey {
			return w.unexpected(tok)
		}
		name, ok := tok.Value.(string)
		if !ok {
			return fmt.Errorf("%w: property name of type %T", ErrInvalidToken, tok.Value)
		}
		top.key, top.hasKey = name, true
	default:
		v, err := scalarNode(tok)
		if err != nil {
			return err
		}
		return w.attach(v, tok)
	}
	return nil
}

// Result returns the finished tree.
func (w *NodeWriter) Result() (ast.Expression, error) {
	if len(w.stack) > 0 {
		return nil, fmt.Errorf("%w: %d unclosed containers", ErrInvalidToken, len(w.stack))
	}
	if w.root == nil {
		return nil, fmt.Errorf("%w: no value written", ErrInvalidToken)
	}
	return w.root, nil
}

func (w *NodeWriter) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return w.stack[len(w.stack)-1]
}

func (w *NodeWriter) unexpected(tok Token) error {
	if top := w.top(); top != nil {
		return fmt.Errorf("%w: %s inside %s", ErrInvalidToken, tok, top.kind())
	}
	return fmt.Errorf("%w: %s at top level", ErrInvalidToken, tok)
}

func (w *NodeWriter) attach(v ast.Expression, tok Token) error {
	top := w.top()
	switch {
	case top == nil:
		if w.root != nil {
			return fmt.Errorf("%w: second top-level value %s", ErrInvalidToken, tok)
		}
		w.root = v
	case top.obj != nil:
		if !top.hasKey {
			return w.unexpected(tok)
		}
		top.obj.Add(top.key, v)
		top.hasKey = false
	case top.arr != nil:
		top.arr.Elements = append(top.arr.Elements, v)
	default:
		top.ctor.Arguments = append(top.ctor.Arguments, v)
	}
	return nil
}

func (w *NodeWriter) close(tok Token) error {
	top := w.top()
	if top == nil {
		return w.unexpected(tok)
	}
	want := map[Kind]Kind{EndObject: StartObject, EndArray: StartArray, EndConstructor: StartConstructor}[tok.Kind]
	if top.kind() != want || top.hasKey {
		return w.unexpected(tok)
	}
	if top.obj != nil {
		mergePairs(top.obj)
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

func mergePairs(obj *ast.ObjectLiteral) {
	if len(obj.Pairs) < 2 {
		return
	}
	index := make(map[string]int, len(obj.Pairs))
	var merged map[string]*ast.ArrayLiteral
	pairs := make([]*ast.PairExpression, 0, len(obj.Pairs))
	for _, p := range obj.Pairs {
		i, seen := index[p.Key]
		if !seen {
			index[p.Key] = len(pairs)
			pairs = append(pairs, p)
			continue
		}
		arr := merged[p.Key]
		if arr == nil {
			if merged == nil {
				merged = make(map[string]*ast.ArrayLiteral)
			}
			arr = ast.NewArray(pairs[i].Value)
			pairs[i].Value = arr
			merged[p.Key] = arr
		}
		arr.Elements = append(arr.Elements, p.Value)
	}
	obj.Pairs = pairs
}

func scalarNode(tok Token) (ast.Expression, error) {
	switch tok.Kind {
	case String:
		if s, ok := tok.Value.(string); ok {
			return ast.NewString(s), nil
		}
	case Integer:
		switch v := tok.Value.(type) {
		case int64:
			return ast.NewInteger(v), nil
		case int:
			return ast.NewInteger(int64(v)), nil
		}
	case Float:
		if f, ok := tok.Value.(float64); ok {
			return ast.NewFloat(f), nil
		}
	case Boolean:
		if b, ok := tok.Value.(bool); ok {
			return ast.NewBoolean(b), nil
		}
	case Null:
		return ast.NewNull(), nil
	default:
		return nil, fmt.Errorf("%w: unknown token kind %s", ErrInvalidToken, tok.Kind)
	}
	return nil, fmt.Errorf("%w: %s token with %T payload", ErrInvalidToken, tok.Kind, tok.Value)
}
