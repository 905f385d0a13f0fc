package xmljson

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies conversion failures.
type ErrorKind int

const (
	// UnsupportedNodeKind: the markup tree holds a node kind that has no
	// value-tree form, such as a document type.
	UnsupportedNodeKind ErrorKind = iota + 1
	// UnexpectedToken: a value token is not legal at its position.
	UnexpectedToken
	// MultipleRootProperties: the top-level object has more than one
	// property and no root element name was given.
	MultipleRootProperties
	// UnexpectedDeclarationProperty: a declaration object holds a property
	// other than @version, @encoding or @standalone.
	UnexpectedDeclarationProperty
	// InvalidArrayMarkerValue: the array marker attribute is not a boolean.
	InvalidArrayMarkerValue
	// MaxDepthExceeded: nesting is deeper than the MaxDepth option allows.
	MaxDepthExceeded
)

var kindNames = map[ErrorKind]string{
	UnsupportedNodeKind:           "unsupported node kind",
	UnexpectedToken:               "unexpected token",
	MultipleRootProperties:        "multiple root properties",
	UnexpectedDeclarationProperty: "unexpected declaration property",
	InvalidArrayMarkerValue:       "invalid array marker value",
	MaxDepthExceeded:              "maximum depth exceeded",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is a conversion failure. Use errors.Is with the Err* sentinels to
// test its kind.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return "xmljson: " + msg + ": " + e.Err.Error()
	}
	return "xmljson: " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnsupportedNodeKind           = &Error{Kind: UnsupportedNodeKind}
	ErrUnexpectedToken               = &Error{Kind: UnexpectedToken}
	ErrMultipleRootProperties        = &Error{Kind: MultipleRootProperties}
	ErrUnexpectedDeclarationProperty = &Error{Kind: UnexpectedDeclarationProperty}
	ErrInvalidArrayMarkerValue       = &Error{Kind: InvalidArrayMarkerValue}
	ErrMaxDepth                      = &Error{Kind: MaxDepthExceeded}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
