/*
Package xmljson converts between XML markup trees and JSON value trees. The
API mirrors the standard `encoding/json` package where it can.

The package offers two layers depending on the use case:

1. Text Conversion

FromXML and ToXML convert XML text to JSON (or YAML) text and back. Marshal
and Unmarshal do the same between a parsed markup tree (package dom) and
value-tree text, and Encoder and Decoder wrap them around streams.

	r := strings.NewReader(`<person id="1"><name>Alan</name></person>`)
	out, err := xmljson.FromXML(r, xmljson.Indent(0))
	if err != nil {
		// handle error
	}
	// out is {"person":{"@id":"1","name":"Alan"}}

2. Tree Conversion

Serialize turns a markup tree into a value tree (package ast), and
Deserialize builds a markup document from a value-tree token stream
(package stream). Both are single synchronous walks; neither touches
global state.

# Mapping

Elements are filed under their qualified name and attributes under "@"
followed by their qualified name. Text, CDATA, comments and whitespace use
the reserved keys #text, #cdata-section, #comment, #whitespace and
#significant-whitespace. Processing instructions use "?" followed by the
target, and the XML declaration uses ?xml.

Sibling nodes sharing a key are written as one array. An element that is
alone under its key is written as a plain value unless it carries a true
Array attribute in the ArrayNamespace namespace:

	<root xmlns:json="http://james.newtonking.com/projects/json">
	  <item json:Array="true">one</item>
	</root>

gives {"root":{"item":["one"]}}. The attribute is consumed by the
conversion and is not restored when converting back.

An element with no attributes and a single text child collapses to its text,
and an empty element becomes null. An element with more than one child named
"-Name" becomes the constructor new Name(...).

# Errors

Failures are reported as *Error values. Use errors.Is with
ErrUnsupportedNodeKind, ErrUnexpectedToken, ErrMultipleRootProperties,
ErrUnexpectedDeclarationProperty, ErrInvalidArrayMarkerValue and ErrMaxDepth
to tell them apart. Syntax errors in JSON text are reported as an
errors.ParseErrors value.
*/
package xmljson
