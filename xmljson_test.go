package xmljson_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-xmljson"
	"github.com/KimNorgaard/go-xmljson/dom"
)

func TestFromXML(t *testing.T) {
	out, err := xmljson.FromXML(strings.NewReader(`<person id="1"><name>Alan</name></person>`), xmljson.Indent(0))
	require.NoError(t, err)
	require.Equal(t, `{"person":{"@id":"1","name":"Alan"}}`, string(out))

	out, err = xmljson.FromXML(strings.NewReader("<r>\n <a/>\n</r>"), xmljson.Indent(0), xmljson.PreserveWhitespace(true))
	require.NoError(t, err)
	require.Equal(t, `{"r":{"#whitespace":["\n ","\n"],"a":null}}`, string(out))

	_, err = xmljson.FromXML(strings.NewReader(`<a><b></a>`))
	require.ErrorContains(t, err, "xmljson: dom: line 1")
}

func TestToXML(t *testing.T) {
	out, err := xmljson.ToXML([]byte(`{"a":{"b":[1,2]}}`))
	require.NoError(t, err)
	require.Equal(t, `<a><b>1</b><b>2</b></a>`, string(out))

	out, err = xmljson.ToXML([]byte(`{"a":{"b":[1,2]}}`), xmljson.Indent(2))
	require.NoError(t, err)
	require.Equal(t, "<a>\n  <b>1</b>\n  <b>2</b>\n</a>", string(out))

	out, err = xmljson.ToXML([]byte(`{"?xml":{"@version":"1.0"},"r":null}`), xmljson.OmitDeclaration(true))
	require.NoError(t, err)
	require.Equal(t, `<r />`, string(out))

	out, err = xmljson.ToXML([]byte(`{"x":1,"y":2}`), xmljson.RootElement("root"))
	require.NoError(t, err)
	require.Equal(t, `<root><x>1</x><y>2</y></root>`, string(out))
}

func TestMarshal(t *testing.T) {
	doc := mustParse(t, `<r><a>1</a><d/></r>`)

	out, err := xmljson.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"r\": {\n    \"a\": \"1\",\n    \"d\": null\n  }\n}", string(out))

	out, err = xmljson.Marshal(doc, xmljson.Indent(0))
	require.NoError(t, err)
	require.Equal(t, `{"r":{"a":"1","d":null}}`, string(out))
}

func TestMarshalColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	out, err := xmljson.Marshal(mustParse(t, `<r>1</r>`), xmljson.Colors(true))
	require.NoError(t, err)
	assert.Contains(t, string(out), "\x1b[")
	assert.Contains(t, string(out), `"r"`)
}

func TestYAML(t *testing.T) {
	doc := mustParse(t, `<r id="7"><a>1</a><a>two</a><e/></r>`)

	out, err := xmljson.Marshal(doc, xmljson.Format(xmljson.FormatYAML))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "r:\n"), "got %q", out)

	back, err := xmljson.Unmarshal(out, xmljson.Format(xmljson.FormatYAML))
	require.NoError(t, err)
	require.Equal(t, render(t, doc), render(t, back))

	flow, err := xmljson.Marshal(doc, xmljson.Format(xmljson.FormatYAML), xmljson.Indent(0))
	require.NoError(t, err)
	back, err = xmljson.Unmarshal(flow, xmljson.Format(xmljson.FormatYAML))
	require.NoError(t, err)
	require.Equal(t, render(t, doc), render(t, back))
}

func TestYAMLConstructor(t *testing.T) {
	doc, err := xmljson.Unmarshal([]byte(`{"d":new Date(1,2)}`))
	require.NoError(t, err)
	_, err = xmljson.Marshal(doc, xmljson.Format(xmljson.FormatYAML))
	require.ErrorContains(t, err, `constructor "Date" has no YAML representation`)
}

func TestEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	enc := xmljson.NewEncoder(&buf, xmljson.Indent(0))
	require.NoError(t, enc.Encode(mustParse(t, `<a><b>1</b></a>`)))
	require.NoError(t, enc.Encode(mustParse(t, `<c/>`)))
	require.Equal(t, "{\"a\":{\"b\":\"1\"}}\n{\"c\":null}\n", buf.String())

	doc, err := xmljson.NewDecoder(strings.NewReader(`{"a":{"b":"1"}}`)).Decode()
	require.NoError(t, err)
	require.Equal(t, `<a><b>1</b></a>`, render(t, doc))

	_, err = xmljson.NewDecoder(nil).Decode()
	require.EqualError(t, err, "xmljson: Decode(nil reader)")

	err = xmljson.NewEncoder(&buf).Encode(mustParse(t, `<!DOCTYPE x><x/>`))
	require.ErrorIs(t, err, xmljson.ErrUnsupportedNodeKind)
}

func TestValueToXML(t *testing.T) {
	type item struct {
		ID    int      `xj:"@id"`
		Name  string   `xj:"name"`
		Tags  []string `xj:"tag"`
		Notes string   `xj:"notes,omitempty"`
	}

	doc, err := xmljson.ValueToXML(map[string]any{
		"item": item{ID: 7, Name: "x", Tags: []string{"a", "b"}},
	})
	require.NoError(t, err)
	require.Equal(t, `<item id="7"><name>x</name><tag>a</tag><tag>b</tag></item>`, render(t, doc))

	doc, err = xmljson.ValueToXML(item{ID: 1, Name: "y"}, xmljson.RootElement("item"))
	require.NoError(t, err)
	require.Equal(t, `<item id="1"><name>y</name><tag /></item>`, render(t, doc))

	_, err = xmljson.ValueToXML(make(chan int))
	require.EqualError(t, err, "xmljson: contract: unsupported type chan int")
}

func TestOptions(t *testing.T) {
	doc := dom.NewDocument()
	tests := []struct {
		opt xmljson.Option
		msg string
	}{
		{xmljson.Indent(-1), "xmljson: indent must be non-negative"},
		{xmljson.MaxDepth(0), "xmljson: max depth must be a positive integer"},
		{xmljson.Format(xmljson.TextFormat(9)), "xmljson: unknown text format 9"},
	}
	for _, tt := range tests {
		_, err := xmljson.Marshal(doc, tt.opt)
		require.EqualError(t, err, tt.msg)
		_, err = xmljson.Unmarshal([]byte(`{"a":1}`), tt.opt)
		require.EqualError(t, err, tt.msg)
	}
}

func TestErrorKinds(t *testing.T) {
	_, err := xmljson.Unmarshal([]byte(`{"a":1,"b":2}`))

	var xe *xmljson.Error
	require.True(t, errors.As(err, &xe))
	assert.Equal(t, xmljson.MultipleRootProperties, xe.Kind)
	assert.Equal(t, "multiple root properties", xe.Kind.String())
	assert.False(t, errors.Is(err, xmljson.ErrUnexpectedToken))

	assert.Equal(t, "ErrorKind(42)", xmljson.ErrorKind(42).String())
	assert.Equal(t, "xmljson: maximum depth exceeded", xmljson.ErrMaxDepth.Error())

	wrapped := &xmljson.Error{Kind: xmljson.UnexpectedToken, Msg: "bad", Err: errors.New("cause")}
	assert.Equal(t, "xmljson: bad: cause", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "cause")
}

func TestXMLToValue(t *testing.T) {
	type person struct {
		ID    int      `xj:"@id"`
		Name  string   `xj:"name"`
		Roles []string `xj:"role"`
		Empty *string  `xj:"empty"`
	}
	var v struct {
		People struct {
			Person []person `xj:"person"`
		} `xj:"people"`
	}

	doc := mustParse(t, `<people>
  <person id="1"><name>Alan</name><role>Admin</role><empty/></person>
  <person id="2"><name>Louis</name><role>Admin</role><role>Editor</role></person>
</people>`)
	require.NoError(t, xmljson.XMLToValue(doc, &v))
	require.Equal(t, []person{
		{ID: 1, Name: "Alan", Roles: []string{"Admin"}},
		{ID: 2, Name: "Louis", Roles: []string{"Admin", "Editor"}},
	}, v.People.Person)

	var n int
	err := xmljson.XMLToValue(mustParse(t, `<a>x</a>`), &n)
	require.ErrorContains(t, err, "xmljson: contract: cannot populate int from")
}
