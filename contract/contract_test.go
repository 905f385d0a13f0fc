package contract_test

import (
	"net"
	"reflect"
	"testing"

	"github.com/KimNorgaard/go-xmljson/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Base struct {
	ID      int    `xj:"@id"`
	Created string `xj:"created,omitempty"`
}

type Item struct {
	Base
	Name     string            `xj:"name,required"`
	Color    string            `xj:"color" default:"red"`
	Tags     []string          `xj:"tag,omitempty"`
	Secret   string            `xj:"-"`
	Token    string            `xj:"token,writeonly"`
	Computed int               `xj:"computed,readonly"`
	Attrs    map[string]string `xj:"attrs,omitempty"`
	Owner    *string           `xj:"owner"`
	hidden   int
}

func TestResolve(t *testing.T) {
	props, err := contract.Resolve(reflect.TypeFor[*Item]())
	require.NoError(t, err)

	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"name", "color", "tag", "Secret", "token", "computed", "attrs", "owner", "@id", "created"}, names)

	byName := map[string]contract.Property{}
	for _, p := range props {
		byName[p.Name] = p
	}
	assert.True(t, byName["name"].Required)
	assert.True(t, byName["color"].HasDefault)
	assert.Equal(t, "red", byName["color"].Default)
	assert.True(t, byName["Secret"].Ignored)
	assert.False(t, byName["Secret"].Readable)
	assert.False(t, byName["token"].Readable)
	assert.True(t, byName["token"].Writable)
	assert.True(t, byName["computed"].Readable)
	assert.False(t, byName["computed"].Writable)
	assert.Equal(t, []int{0, 0}, byName["@id"].Index)
	assert.Equal(t, "ID", byName["@id"].FieldName)
}

func TestResolveCached(t *testing.T) {
	a, err := contract.Resolve(reflect.TypeFor[Item]())
	require.NoError(t, err)
	b, err := contract.Resolve(reflect.TypeFor[Item]())
	require.NoError(t, err)
	require.Equal(t, reflect.ValueOf(a).Pointer(), reflect.ValueOf(b).Pointer())
}

func TestResolveErrors(t *testing.T) {
	_, err := contract.Resolve(reflect.TypeFor[int]())
	require.EqualError(t, err, "contract: int is not a struct type")

	type badOption struct {
		A int `xj:"a,sometimes"`
	}
	_, err = contract.Resolve(reflect.TypeFor[badOption]())
	require.ErrorContains(t, err, `unknown tag option "sometimes"`)

	type both struct {
		A int `xj:"a,readonly,writeonly"`
	}
	_, err = contract.Resolve(reflect.TypeFor[both]())
	require.ErrorContains(t, err, "both readonly and writeonly")

	type twice struct {
		A int `xj:"x"`
		B int `xj:"x"`
	}
	_, err = contract.Resolve(reflect.TypeFor[twice]())
	require.ErrorContains(t, err, `property "x" is defined twice`)
}

func TestResolveShadowing(t *testing.T) {
	type inner struct {
		Name string
		Deep string
	}
	type outer struct {
		*inner
		Name string
	}
	props, err := contract.Resolve(reflect.TypeFor[outer]())
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "Name", props[0].Name)
	assert.Equal(t, []int{1}, props[0].Index)
	assert.Equal(t, "Deep", props[1].Name)
	assert.Equal(t, []int{0, 1}, props[1].Index)
}

func TestToValue(t *testing.T) {
	owner := "ann"
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, `null`},
		{"string", "x", `"x"`},
		{"int", int8(-3), `-3`},
		{"uint", uint16(7), `7`},
		{"float", 1.5, `1.5`},
		{"bool", true, `true`},
		{"bytes", []byte("hi"), `"aGk="`},
		{"nil slice", []int(nil), `null`},
		{"array", [2]int{1, 2}, `[1,2]`},
		{"map sorted", map[string]int{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"text marshaler", net.ParseIP("10.0.0.1"), `"10.0.0.1"`},
		{
			"struct",
			Item{Base: Base{ID: 4}, Name: "n", Token: "t", Computed: 9, Owner: &owner},
			`{"name":"n","color":"red","computed":9,"owner":"ann","@id":4}`,
		},
		{
			"struct with values",
			&Item{Name: "n", Color: "blue", Tags: []string{"a"}, Attrs: map[string]string{"k": "v"}},
			`{"name":"n","color":"blue","tag":["a"],"computed":0,"attrs":{"k":"v"},"owner":null,"@id":0}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := contract.ToValue(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v.String())
		})
	}
}

func TestToValueErrors(t *testing.T) {
	type req struct {
		P *int `xj:"p,required"`
	}
	_, err := contract.ToValue(req{})
	require.ErrorContains(t, err, `required property "p"`)

	_, err = contract.ToValue(map[int]string{1: "a"})
	require.ErrorContains(t, err, "map key type must be a string")

	_, err = contract.ToValue(uint64(1 << 63))
	require.ErrorContains(t, err, "overflows int64")

	_, err = contract.ToValue(make(chan int))
	require.EqualError(t, err, "contract: unsupported type chan int")
}
