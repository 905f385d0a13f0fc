package contract_test

import (
	"math"
	"net"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-xmljson/contract"
	"github.com/KimNorgaard/go-xmljson/internal/lexer"
	"github.com/KimNorgaard/go-xmljson/internal/parser"
	"github.com/stretchr/testify/require"
)

func populate(t *testing.T, input string, v any) error {
	t.Helper()
	p := parser.New(lexer.New(strings.NewReader(input)))
	doc := p.Parse()
	require.Empty(t, p.Errors())
	return contract.Populate(doc.Value, v)
}

func TestPopulate(t *testing.T) {
	t.Run("Scalar Types", func(t *testing.T) {
		var s string
		require.NoError(t, populate(t, `"hello world"`, &s))
		require.Equal(t, "hello world", s)

		var i int
		require.NoError(t, populate(t, `123`, &i))
		require.Equal(t, 123, i)

		var f float64
		require.NoError(t, populate(t, `3.14`, &f))
		require.Equal(t, 3.14, f)

		var b bool
		require.NoError(t, populate(t, `true`, &b))
		require.True(t, b)
	})

	t.Run("Text Coercion", func(t *testing.T) {
		var i int8
		require.NoError(t, populate(t, `" 12 "`, &i))
		require.Equal(t, int8(12), i)

		var u uint
		require.NoError(t, populate(t, `"7"`, &u))
		require.Equal(t, uint(7), u)

		var f float64
		require.NoError(t, populate(t, `"-INF"`, &f))
		require.True(t, math.IsInf(f, -1))

		var b bool
		require.NoError(t, populate(t, `"1"`, &b))
		require.True(t, b)

		var s string
		require.NoError(t, populate(t, `42`, &s))
		require.Equal(t, "42", s)
	})

	t.Run("Null Handling", func(t *testing.T) {
		s := "preset"
		require.NoError(t, populate(t, `null`, &s))
		require.Equal(t, "", s, "null should set string to its zero value")

		n := 5
		p := &n
		require.NoError(t, populate(t, `null`, &p))
		require.Nil(t, p, "null should set pointer to nil")
	})

	t.Run("Slices", func(t *testing.T) {
		var ints []int
		require.NoError(t, populate(t, `["1", "2", 3]`, &ints))
		require.Equal(t, []int{1, 2, 3}, ints)

		var single []string
		require.NoError(t, populate(t, `"only"`, &single))
		require.Equal(t, []string{"only"}, single)

		var raw []byte
		require.NoError(t, populate(t, `"aGk="`, &raw))
		require.Equal(t, []byte("hi"), raw)
	})

	t.Run("Arrays", func(t *testing.T) {
		var arr [3]int
		require.NoError(t, populate(t, `[1, 2, 3]`, &arr))
		require.Equal(t, [3]int{1, 2, 3}, arr)

		var arr2 [2]int
		err := populate(t, `[1, 2, 3]`, &arr2)
		require.ErrorContains(t, err, "cannot populate array of length 3 into Go array of length 2")
	})

	t.Run("Maps", func(t *testing.T) {
		var m map[string]int
		require.NoError(t, populate(t, `{ a: 1, b: "2" }`, &m))
		require.Equal(t, map[string]int{"a": 1, "b": 2}, m)

		var m2 map[string]any
		require.NoError(t, populate(t, `{ str: "s", int: 1, bool: true, float: 1.2, list: [null], ctor: new D(1) }`, &m2))
		expected := map[string]any{
			"str":   "s",
			"int":   int64(1),
			"bool":  true,
			"float": float64(1.2),
			"list":  []any{nil},
			"ctor":  []any{int64(1)},
		}
		require.Equal(t, expected, m2)
	})

	t.Run("Text Unmarshaler", func(t *testing.T) {
		var ip net.IP
		require.NoError(t, populate(t, `"10.0.0.1"`, &ip))
		require.Equal(t, "10.0.0.1", ip.String())
	})

	t.Run("Type Mismatch Errors", func(t *testing.T) {
		var i int
		require.ErrorContains(t, populate(t, `"not a number"`, &i), `cannot populate int from "not a number"`)

		var s string
		require.ErrorContains(t, populate(t, `{}`, &s), "cannot populate string from {}")

		var i8 int8
		require.ErrorContains(t, populate(t, `128`, &i8), `cannot populate int8 from "128"`)

		var st struct{ A int }
		require.ErrorContains(t, populate(t, `[1]`, &st), "cannot populate struct { A int } from [1]")

		var iface interface{ M() }
		require.ErrorContains(t, populate(t, `1`, &iface), "cannot populate non-empty interface")
	})

	t.Run("Non-pointer", func(t *testing.T) {
		var i int
		require.EqualError(t, populate(t, `1`, i), "contract: Populate(non-pointer int or nil)")
	})
}

func TestPopulateStructs(t *testing.T) {
	type address struct {
		City string `xj:"city"`
	}
	type person struct {
		*address
		ID       int     `xj:"@id,required"`
		Name     string  `xj:"name"`
		Nick     *string `xj:"nick"`
		Color    string  `xj:"color" default:"red"`
		Computed int     `xj:"computed,readonly"`
		Ignored  string  `xj:"-"`
		Tags     []string
	}

	t.Run("Mapping with tags", func(t *testing.T) {
		var p person
		err := populate(t, `{"@id": "4", "name": "Ann", "nick": "A", "computed": 9, "Ignored": "x", "Tags": "solo", "extra": 1}`, &p)
		require.NoError(t, err)
		require.Equal(t, 4, p.ID)
		require.Equal(t, "Ann", p.Name)
		require.NotNil(t, p.Nick)
		require.Equal(t, "A", *p.Nick)
		require.Equal(t, "red", p.Color)
		require.Equal(t, 0, p.Computed, "readonly properties are not populated")
		require.Equal(t, "", p.Ignored)
		require.Equal(t, []string{"solo"}, p.Tags)
		require.Nil(t, p.address)
	})

	t.Run("Unexported embedded pointer", func(t *testing.T) {
		var p person
		err := populate(t, `{"@id": 1, "city": "Oslo"}`, &p)
		require.ErrorContains(t, err, "cannot set embedded pointer to unexported struct")
	})

	t.Run("Required property", func(t *testing.T) {
		var p person
		err := populate(t, `{"name": "Ann"}`, &p)
		require.ErrorContains(t, err, `required property "@id"`)
	})
}
