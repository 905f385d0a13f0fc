// Package yamlconv converts value trees to and from YAML. Object key order
// is kept in both directions.
package yamlconv

import (
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/KimNorgaard/go-xmljson/ast"
)

// Marshal renders node as YAML. An indent of zero selects flow style.
func Marshal(node ast.Node, indent int) ([]byte, error) {
	v, err := ToValue(node)
	if err != nil {
		return nil, err
	}
	opts := []yaml.EncodeOption{}
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}
	return yaml.MarshalWithOptions(v, opts...)
}

// Unmarshal parses a YAML document into a value tree.
func Unmarshal(data []byte) (ast.Expression, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return FromValue(v)
}

// ToValue converts node to plain Go values: objects become yaml.MapSlice,
// arrays []any and scalars their Go counterparts. Constructors have no
// YAML form and are rejected.
func ToValue(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.Document:
		if n.Value == nil {
			return nil, nil
		}
		return ToValue(n.Value)
	case *ast.ObjectLiteral:
		out := make(yaml.MapSlice, 0, len(n.Pairs))
		for _, p := range n.Pairs {
			v, err := ToValue(p.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, yaml.MapItem{Key: p.Key, Value: v})
		}
		return out, nil
	case *ast.ArrayLiteral:
		out := make([]any, 0, len(n.Elements))
		for _, e := range n.Elements {
			v, err := ToValue(e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *ast.StringLiteral:
		return n.Value, nil
	case *ast.IntegerLiteral:
		return n.Value, nil
	case *ast.FloatLiteral:
		return n.Value, nil
	case *ast.BooleanLiteral:
		return n.Value, nil
	case *ast.NullLiteral:
		return nil, nil
	case *ast.ConstructorLiteral:
		return nil, fmt.Errorf("xmljson: constructor %q has no YAML representation", n.Name)
	}
	return nil, fmt.Errorf("xmljson: unsupported node type for YAML: %T", node)
}

// FromValue converts decoded YAML values into a value tree.
func FromValue(v any) (ast.Expression, error) {
	switch v := v.(type) {
	case nil:
		return ast.NewNull(), nil
	case string:
		return ast.NewString(v), nil
	case bool:
		return ast.NewBoolean(v), nil
	case int:
		return ast.NewInteger(int64(v)), nil
	case int64:
		return ast.NewInteger(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return ast.NewFloat(float64(v)), nil
		}
		return ast.NewInteger(int64(v)), nil
	case float32:
		return ast.NewFloat(float64(v)), nil
	case float64:
		return ast.NewFloat(v), nil
	case yaml.MapSlice:
		obj := ast.NewObject()
		for _, item := range v {
			val, err := FromValue(item.Value)
			if err != nil {
				return nil, err
			}
			obj.Add(keyString(item.Key), val)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := ast.NewObject()
		for _, k := range keys {
			val, err := FromValue(v[k])
			if err != nil {
				return nil, err
			}
			obj.Add(k, val)
		}
		return obj, nil
	case []any:
		arr := ast.NewArray()
		for _, e := range v {
			val, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, val)
		}
		return arr, nil
	}
	return nil, fmt.Errorf("xmljson: unsupported YAML value of type %T", v)
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
