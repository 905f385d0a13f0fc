package formatter_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-xmljson/ast"
	"github.com/KimNorgaard/go-xmljson/internal/formatter"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// Centralized test cases to be used across different format settings.
var testCases = []struct {
	name             string
	node             ast.Node
	expectedCompact  string
	expectedIndented string // 2 spaces
}{
	{
		name:             "String Literal",
		node:             &ast.StringLiteral{Value: "hello world"},
		expectedCompact:  `"hello world"`,
		expectedIndented: `"hello world"`,
	},
	{
		name:             "Integer Literal",
		node:             &ast.IntegerLiteral{Value: 123},
		expectedCompact:  "123",
		expectedIndented: "123",
	},
	{
		name:             "Integral Float Literal",
		node:             &ast.FloatLiteral{Value: 2},
		expectedCompact:  "2.0",
		expectedIndented: "2.0",
	},
	{
		name:             "Empty Array",
		node:             ast.NewArray(),
		expectedCompact:  "[]",
		expectedIndented: "[]",
	},
	{
		name:             "Array with scalars",
		node:             ast.NewArray(ast.NewInteger(1), ast.NewString("two"), ast.NewNull(), ast.NewBoolean(false)),
		expectedCompact:  `[1,"two",null,false]`,
		expectedIndented: "[\n  1,\n  \"two\",\n  null,\n  false\n]",
	},
	{
		name:             "Empty Object",
		node:             ast.NewObject(),
		expectedCompact:  "{}",
		expectedIndented: "{}",
	},
	{
		name:             "Object with pairs",
		node:             ast.NewObject().Add("key1", ast.NewString("value1")).Add("@key2", ast.NewInteger(123)),
		expectedCompact:  `{"key1":"value1","@key2":123}`,
		expectedIndented: "{\n  \"key1\": \"value1\",\n  \"@key2\": 123\n}",
	},
	{
		name: "Nested Object and Array",
		node: ast.NewObject().Add("data", ast.NewArray(
			ast.NewObject().Add("id", ast.NewInteger(1)).Add("status", ast.NewString("ok")),
			ast.NewInteger(2),
		)),
		expectedCompact:  `{"data":[{"id":1,"status":"ok"},2]}`,
		expectedIndented: "{\n  \"data\": [\n    {\n      \"id\": 1,\n      \"status\": \"ok\"\n    },\n    2\n  ]\n}",
	},
	{
		name:             "Constructor",
		node:             ast.NewObject().Add("d", ast.NewConstructor("Date", ast.NewInteger(1), ast.NewString("UTC"))),
		expectedCompact:  `{"d":new Date(1,"UTC")}`,
		expectedIndented: "{\n  \"d\": new Date(1, \"UTC\")\n}",
	},
}

func TestFormatter_Indentation(t *testing.T) {
	t.Run("Default Indent (2 spaces)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				f := formatter.New(&buf, nil)
				err := f.Format(tc.node)
				require.NoError(t, err)
				require.Equal(t, tc.expectedIndented, buf.String())
			})
		}
	})

	t.Run("Compact Output (indent 0)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				zero := 0
				f := formatter.New(&buf, &zero)
				err := f.Format(tc.node)
				require.NoError(t, err)
				require.Equal(t, tc.expectedCompact, buf.String())
			})
		}
	})

	t.Run("Custom Indent (4 spaces)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				four := 4
				f := formatter.New(&buf, &four)
				expected := strings.ReplaceAll(tc.expectedIndented, "  ", "    ")
				err := f.Format(tc.node)
				require.NoError(t, err)
				require.Equal(t, expected, buf.String())
			})
		}
	})
}

func TestFormatter_Errors(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, formatter.New(&buf, nil).Format(&ast.Document{}))
	require.Error(t, formatter.New(&buf, nil).Format(&ast.PairExpression{Key: "k"}))
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\tnew\nline\r", `"tab\tnew\nline\r"`},
		{"\x01\x7f", `"\u0001\u007f"`},
		{"héllo 😀", `"héllo 😀"`},
		{"bad\xffbyte", `"bad\ufffdbyte"`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, formatter.Quote(tt.in))
	}
}

func TestFormatFloat(t *testing.T) {
	require.Equal(t, "NaN", formatter.FormatFloat(math.NaN()))
	require.Equal(t, "Infinity", formatter.FormatFloat(math.Inf(1)))
	require.Equal(t, "-Infinity", formatter.FormatFloat(math.Inf(-1)))
	require.Equal(t, "0.5", formatter.FormatFloat(0.5))
}

func TestColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	zero := 0
	err := formatter.New(&buf, &zero).WithColors(formatter.NewColors()).
		Format(ast.NewObject().Add("k", ast.NewString("100%")))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "\x1b[")
	require.Contains(t, buf.String(), `"100%"`)
	require.NotContains(t, buf.String(), "%!")

	var nilColors *formatter.Colors
	require.Equal(t, "x", nilColors.Color(formatter.KeyRole, "x"))
}
