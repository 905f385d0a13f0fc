package xmljson

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-xmljson/dom"
)

// Option configures conversion and encoding.
type Option func(*options) error

// TextFormat selects the textual form of a value tree.
type TextFormat int

const (
	// FormatJSON is JSON with new Name(...) constructors.
	FormatJSON TextFormat = iota
	// FormatYAML is YAML. Constructors cannot be written as YAML.
	FormatYAML
)

type options struct {
	indent             *int
	rootElement        string
	maxDepth           int
	format             TextFormat
	colors             bool
	omitDeclaration    bool
	preserveWhitespace bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Indent sets the number of spaces per nesting level of text output. Zero
// selects compact JSON, flow-style YAML and unindented XML. JSON and YAML
// default to two spaces; XML defaults to no indentation.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("xmljson: indent must be non-negative")
		}
		o.indent = &n
		return nil
	}
}

// RootElement names a synthetic root element that receives the top-level
// properties when converting a value tree to markup. It allows top-level
// objects with more than one property.
func RootElement(name string) Option {
	return func(o *options) error {
		o.rootElement = name
		return nil
	}
}

// MaxDepth limits the nesting depth of both conversions. By default depth is
// not limited.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("xmljson: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// Format selects the text format read and written by the Encoder, Decoder
// and the text helpers.
func Format(f TextFormat) Option {
	return func(o *options) error {
		if f != FormatJSON && f != FormatYAML {
			return fmt.Errorf("xmljson: unknown text format %d", f)
		}
		o.format = f
		return nil
	}
}

// Colors enables terminal colours in JSON output.
func Colors(on bool) Option {
	return func(o *options) error {
		o.colors = on
		return nil
	}
}

// OmitDeclaration leaves the XML declaration out of XML text output.
func OmitDeclaration(on bool) Option {
	return func(o *options) error {
		o.omitDeclaration = on
		return nil
	}
}

// PreserveWhitespace keeps whitespace-only text when reading XML text, so
// that it appears under #whitespace keys.
func PreserveWhitespace(on bool) Option {
	return func(o *options) error {
		o.preserveWhitespace = on
		return nil
	}
}

func (o *options) parseOptions() []dom.ParseOption {
	if o.preserveWhitespace {
		return []dom.ParseOption{dom.PreserveWhitespace()}
	}
	return nil
}

func (o *options) writeOptions() []dom.WriteOption {
	var opts []dom.WriteOption
	if o.indent != nil && *o.indent > 0 {
		opts = append(opts, dom.Indent(strings.Repeat(" ", *o.indent)))
	}
	if o.omitDeclaration {
		opts = append(opts, dom.OmitDeclaration())
	}
	return opts
}
