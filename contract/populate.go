package contract

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-xmljson/ast"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// Populate stores the value tree expr in the value pointed to by v.
//
// Markup carries text only, so strings are converted to numbers and
// booleans where the target needs them, and a non-array value fills a
// slice as its single element. Struct properties are matched by name;
// unknown keys and properties that are not writable are skipped. A
// required property missing from the object is an error, and a missing
// property with a default is set from the default text.
func Populate(expr ast.Expression, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("contract: Populate(non-pointer %T or nil)", v)
	}
	return populate(expr, rv.Elem())
}

func populate(expr ast.Expression, rv reflect.Value) error {
	if !rv.CanSet() {
		return fmt.Errorf("contract: cannot set value of type %s", rv.Type())
	}
	if _, ok := expr.(*ast.NullLiteral); ok {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if reflect.PointerTo(rv.Type()).Implements(textUnmarshalerType) {
		s, ok := scalarString(expr)
		if !ok {
			return fmt.Errorf("contract: cannot populate %s from %s", rv.Type(), expr.String())
		}
		if err := rv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("contract: %s: %w", rv.Type(), err)
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return populate(expr, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("contract: cannot populate non-empty interface %s", rv.Type())
		}
		if pv := plainValue(expr); pv != nil {
			rv.Set(reflect.ValueOf(pv))
		}
		return nil
	case reflect.Slice:
		return populateSlice(expr, rv)
	case reflect.Array:
		arr, ok := expr.(*ast.ArrayLiteral)
		if !ok {
			return fmt.Errorf("contract: cannot populate %s from %s", rv.Type(), expr.String())
		}
		if len(arr.Elements) != rv.Len() {
			return fmt.Errorf("contract: cannot populate array of length %d into Go array of length %d", len(arr.Elements), rv.Len())
		}
		for i, e := range arr.Elements {
			if err := populate(e, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		obj, ok := expr.(*ast.ObjectLiteral)
		if !ok {
			return fmt.Errorf("contract: cannot populate %s from %s", rv.Type(), expr.String())
		}
		return populateMap(obj, rv)
	case reflect.Struct:
		obj, ok := expr.(*ast.ObjectLiteral)
		if !ok {
			return fmt.Errorf("contract: cannot populate %s from %s", rv.Type(), expr.String())
		}
		return populateStruct(obj, rv)
	}

	s, ok := scalarString(expr)
	if !ok {
		return fmt.Errorf("contract: cannot populate %s from %s", rv.Type(), expr.String())
	}
	return setScalar(s, rv)
}

// setScalar parses the text s into the scalar rv.
func setScalar(s string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("contract: cannot populate bool from %q", s)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil || rv.OverflowInt(i) {
			return fmt.Errorf("contract: cannot populate %s from %q", rv.Type(), s)
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil || rv.OverflowUint(u) {
			return fmt.Errorf("contract: cannot populate %s from %q", rv.Type(), s)
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := parseFloat(strings.TrimSpace(s))
		if err != nil || rv.OverflowFloat(f) {
			return fmt.Errorf("contract: cannot populate %s from %q", rv.Type(), s)
		}
		rv.SetFloat(f)
	default:
		return fmt.Errorf("contract: unsupported type %s", rv.Type())
	}
	return nil
}

// parseFloat accepts the xsd:double special values alongside Go syntax.
func parseFloat(s string) (float64, error) {
	switch s {
	case "INF":
		s = "+Inf"
	case "-INF":
		s = "-Inf"
	}
	return strconv.ParseFloat(s, 64)
}

func populateSlice(expr ast.Expression, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		if s, ok := expr.(*ast.StringLiteral); ok {
			b, err := base64.StdEncoding.DecodeString(s.Value)
			if err != nil {
				return fmt.Errorf("contract: %w", err)
			}
			rv.SetBytes(b)
			return nil
		}
	}

	elems := []ast.Expression{expr}
	if arr, ok := expr.(*ast.ArrayLiteral); ok {
		elems = arr.Elements
	}
	s := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
	for i, e := range elems {
		if err := populate(e, s.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(s)
	return nil
}

func populateMap(obj *ast.ObjectLiteral, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("contract: map key type must be a string, got %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	for _, pair := range obj.Pairs {
		val := reflect.New(mapType.Elem()).Elem()
		if err := populate(pair.Value, val); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(pair.Key).Convert(mapType.Key()), val)
	}
	return nil
}

func populateStruct(obj *ast.ObjectLiteral, rv reflect.Value) error {
	props, err := Resolve(rv.Type())
	if err != nil {
		return err
	}
	for _, p := range props {
		if !p.Writable {
			continue
		}
		val, found := obj.Get(p.Name)
		switch {
		case found:
		case p.Required:
			return fmt.Errorf("contract: required property %q of %s is missing", p.Name, rv.Type())
		case p.HasDefault:
			val = ast.NewString(p.Default)
		default:
			continue
		}
		fv, err := settableField(rv, p.Index)
		if err != nil {
			return err
		}
		if err := populate(val, fv); err != nil {
			return fmt.Errorf("contract: property %q: %w", p.Name, err)
		}
	}
	return nil
}

// settableField returns the field at index, allocating nil embedded
// pointers on the way.
func settableField(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("contract: cannot set embedded pointer to unexported struct %s", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}

// scalarString returns the text of a scalar literal.
func scalarString(expr ast.Expression) (string, bool) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return e.Value, true
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10), true
	case *ast.FloatLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64), true
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value), true
	}
	return "", false
}

// plainValue converts expr to the Go values an empty interface receives:
// map[string]any, []any, string, int64, float64, bool or nil.
func plainValue(expr ast.Expression) any {
	switch e := expr.(type) {
	case *ast.ObjectLiteral:
		m := make(map[string]any, len(e.Pairs))
		for _, p := range e.Pairs {
			m[p.Key] = plainValue(p.Value)
		}
		return m
	case *ast.ArrayLiteral:
		s := make([]any, len(e.Elements))
		for i, el := range e.Elements {
			s[i] = plainValue(el)
		}
		return s
	case *ast.ConstructorLiteral:
		s := make([]any, len(e.Arguments))
		for i, el := range e.Arguments {
			s[i] = plainValue(el)
		}
		return s
	case *ast.StringLiteral:
		return e.Value
	case *ast.IntegerLiteral:
		return e.Value
	case *ast.FloatLiteral:
		return e.Value
	case *ast.BooleanLiteral:
		return e.Value
	}
	return nil
}
