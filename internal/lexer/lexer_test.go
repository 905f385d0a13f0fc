package lexer_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-xmljson/internal/lexer"
	"github.com/KimNorgaard/go-xmljson/token"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := `{
  // note
  "key": "v\u00e9\ud83d\ude00",
  n: -100, f: 6.626e-34,
  ok: true, no: false, z: null,
  d: new Date(1),
  /* block */ x: NaN
}`
	expected := []struct {
		typ    token.Type
		lit    string
		line   int
		column int
	}{
		{token.LBRACE, "{", 1, 1},
		{token.COMMENT, " note", 2, 3},
		{token.STRING, "key", 3, 3},
		{token.COLON, ":", 3, 8},
		{token.STRING, "vé😀", 3, 10},
		{token.COMMA, ",", 3, 31},
		{token.IDENT, "n", 4, 3},
		{token.COLON, ":", 4, 4},
		{token.INT, "-100", 4, 6},
		{token.COMMA, ",", 4, 10},
		{token.IDENT, "f", 4, 12},
		{token.COLON, ":", 4, 13},
		{token.FLOAT, "6.626e-34", 4, 15},
		{token.COMMA, ",", 4, 24},
		{token.IDENT, "ok", 5, 3},
		{token.COLON, ":", 5, 5},
		{token.TRUE, "true", 5, 7},
		{token.COMMA, ",", 5, 11},
		{token.IDENT, "no", 5, 13},
		{token.COLON, ":", 5, 15},
		{token.FALSE, "false", 5, 17},
		{token.COMMA, ",", 5, 22},
		{token.IDENT, "z", 5, 24},
		{token.COLON, ":", 5, 25},
		{token.NULL, "null", 5, 27},
		{token.COMMA, ",", 5, 31},
		{token.IDENT, "d", 6, 3},
		{token.COLON, ":", 6, 4},
		{token.NEW, "new", 6, 6},
		{token.IDENT, "Date", 6, 10},
		{token.LPAREN, "(", 6, 14},
		{token.INT, "1", 6, 15},
		{token.RPAREN, ")", 6, 16},
		{token.COMMA, ",", 6, 17},
		{token.COMMENT, " block ", 7, 3},
		{token.IDENT, "x", 7, 15},
		{token.COLON, ":", 7, 16},
		{token.IDENT, "NaN", 7, 18},
		{token.RBRACE, "}", 8, 1},
		{token.EOF, "", 8, 2},
	}

	l := lexer.New(strings.NewReader(input))
	for i, want := range expected {
		tok := l.NextToken()
		require.Equal(t, want.typ, tok.Type, "tests[%d] - wrong type, literal %q", i, tok.Literal)
		require.Equal(t, want.lit, tok.Literal, "tests[%d] - wrong literal", i)
		require.Equal(t, want.line, tok.Line, "tests[%d] - wrong line", i)
		require.Equal(t, want.column, tok.Column, "tests[%d] - wrong column", i)
	}
}

func TestSingleQuotedString(t *testing.T) {
	tok := lexer.New(strings.NewReader(`'it\'s "here"'`)).NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, `it's "here"`, tok.Literal)
}

func TestIllegalTokens(t *testing.T) {
	tests := []struct {
		input string
		lit   string
	}{
		{`"open`, "unterminated string"},
		{"\"line\nbreak\"", "unterminated string"},
		{`"\x"`, `invalid escape sequence \x`},
		{`"\u12"`, "invalid unicode escape"},
		{`"\ud83dx"`, "invalid unicode scalar value (unpaired surrogate)"},
		{`"\ude00"`, "invalid unicode scalar value (unpaired surrogate)"},
		{"\"tab\there\"", "forbidden control character U+0009 in string"},
		{"/* never closed", "unterminated comment"},
		{"/x", `unexpected character 'x' after '/'`},
		{"@", "@"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexer.New(strings.NewReader(tt.input)).NextToken()
			require.Equal(t, token.ILLEGAL, tok.Type)
			require.Equal(t, tt.lit, tok.Literal)
		})
	}
}

func TestParseAsNumber(t *testing.T) {
	tests := []struct {
		in  string
		typ token.Type
		ok  bool
	}{
		{"0", token.INT, true},
		{"-12", token.INT, true},
		{"1.5", token.FLOAT, true},
		{"1e10", token.FLOAT, true},
		{"-0.5E+3", token.FLOAT, true},
		{"", token.ILLEGAL, false},
		{"-", token.ILLEGAL, false},
		{"01", token.ILLEGAL, false},
		{"1.", token.ILLEGAL, false},
		{"1e", token.ILLEGAL, false},
		{"1x", token.ILLEGAL, false},
		{"-Infinity", token.ILLEGAL, false},
	}
	for _, tt := range tests {
		typ, ok := lexer.ParseAsNumber(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.typ, typ, tt.in)
	}
}
