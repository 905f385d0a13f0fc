package qname_test

import (
	"testing"

	"github.com/KimNorgaard/go-xmljson/internal/qname"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name, prefix, local string
	}{
		{"a", "", "a"},
		{"p:a", "p", "a"},
		{":a", "", ":a"},
		{"a:", "", "a:"},
		{"p:a:b", "p", "a:b"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, l := qname.Split(tt.name)
			require.Equal(t, tt.prefix, p)
			require.Equal(t, tt.local, l)
			require.Equal(t, tt.prefix, qname.Prefix(tt.name))
			require.Equal(t, tt.local, qname.LocalName(tt.name))
		})
	}
}

func TestJoin(t *testing.T) {
	require.Equal(t, "a", qname.Join("", "a"))
	require.Equal(t, "p:a", qname.Join("p", "a"))
}

func TestNamespaceDeclPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		ok     bool
	}{
		{"xmlns", "", true},
		{"xmlns:json", "json", true},
		{"xmlnsx", "", false},
		{"id", "", false},
		{"xml:lang", "", false},
	}
	for _, tt := range tests {
		p, ok := qname.NamespaceDeclPrefix(tt.name)
		require.Equal(t, tt.ok, ok, tt.name)
		require.Equal(t, tt.prefix, p, tt.name)
	}
}
