package contract

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/KimNorgaard/go-xmljson/ast"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// ToValue converts v into a value tree. Structs become objects holding their
// readable properties, maps become objects with sorted keys, slices and
// arrays become arrays, and []byte becomes a base64 string. Values
// implementing encoding.TextMarshaler are written as strings.
func ToValue(v any) (ast.Expression, error) {
	return toValue(reflect.ValueOf(v))
}

func toValue(v reflect.Value) (ast.Expression, error) {
	if !v.IsValid() {
		return ast.NewNull(), nil
	}
	if v.Type().Implements(textMarshalerType) && !isNilRef(v) {
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, fmt.Errorf("contract: %s: %w", v.Type(), err)
		}
		return ast.NewString(string(b)), nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return ast.NewNull(), nil
		}
		return toValue(v.Elem())
	case reflect.String:
		return ast.NewString(v.String()), nil
	case reflect.Bool:
		return ast.NewBoolean(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.NewInteger(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("contract: %d overflows int64", u)
		}
		return ast.NewInteger(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ast.NewFloat(v.Float()), nil
	case reflect.Slice:
		if v.IsNil() {
			return ast.NewNull(), nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return ast.NewString(base64.StdEncoding.EncodeToString(v.Bytes())), nil
		}
		return arrayValue(v)
	case reflect.Array:
		return arrayValue(v)
	case reflect.Map:
		return mapValue(v)
	case reflect.Struct:
		return structValue(v)
	}
	return nil, fmt.Errorf("contract: unsupported type %s", v.Type())
}

func arrayValue(v reflect.Value) (ast.Expression, error) {
	elems := make([]ast.Expression, v.Len())
	for i := range elems {
		e, err := toValue(v.Index(i))
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return ast.NewArray(elems...), nil
}

func mapValue(v reflect.Value) (ast.Expression, error) {
	if v.IsNil() {
		return ast.NewNull(), nil
	}
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: k, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	obj := ast.NewObject()
	for _, e := range entries {
		val, err := toValue(e.value)
		if err != nil {
			return nil, err
		}
		obj.Add(e.key, val)
	}
	return obj, nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("contract: map key %v: %w", k, err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("contract: map key type must be a string, got %s", k.Type())
}

func structValue(v reflect.Value) (ast.Expression, error) {
	props, err := Resolve(v.Type())
	if err != nil {
		return nil, err
	}
	obj := ast.NewObject()
	for _, p := range props {
		if !p.Readable {
			continue
		}
		fv, ok := fieldByIndex(v, p.Index)
		if !ok || fv.IsZero() {
			switch {
			case p.HasDefault:
				obj.Add(p.Name, ast.NewString(p.Default))
				continue
			case p.Required && (!ok || isNullable(fv)):
				return nil, fmt.Errorf("contract: required property %q of %s is null", p.Name, v.Type())
			case p.OmitEmpty || !ok:
				continue
			}
		} else if p.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		val, err := toValue(fv)
		if err != nil {
			return nil, fmt.Errorf("contract: property %q: %w", p.Name, err)
		}
		obj.Add(p.Name, val)
	}
	return obj, nil
}

// fieldByIndex is reflect.Value.FieldByIndex without the panic on nil
// embedded pointers.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func isNilRef(v reflect.Value) bool {
	return (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil()
}

func isNullable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

// isEmptyValue reports whether v is empty in the encoding/json sense:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
