// Package contract resolves the ordered property list of Go struct types and
// converts Go values into value trees using it.
//
// Struct fields are configured with the xj tag:
//
//	type Item struct {
//		ID    int    `xj:"@id"`
//		Name  string `xj:"name,required"`
//		Notes string `xj:",omitempty"`
//		Color string `xj:"color" default:"red"`
//		Cache []byte `xj:"-"`
//	}
//
// The tag name overrides the property name; "-" marks the property ignored.
// The options are omitempty, required, readonly and writeonly.
package contract

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Property describes one serializable member of a struct type.
type Property struct {
	// Name is the property name in the value tree.
	Name string
	// FieldName is the Go field name.
	FieldName string
	// Index is the field index sequence for reflect.Value.FieldByIndex.
	Index []int
	Type  reflect.Type

	// Readable properties are written by ToValue.
	Readable bool
	// Writable properties may be assigned when reading a value tree.
	Writable bool
	// Ignored properties are neither read nor written.
	Ignored bool

	Required  bool
	OmitEmpty bool

	// Default is written in place of a zero value when HasDefault is set.
	Default    string
	HasDefault bool
}

var propertyCache sync.Map // map[reflect.Type][]Property

// Resolve returns the properties of the struct type t, or of the struct t
// points to, in declaration order. Fields of embedded structs are promoted
// unless a shallower field already claims the name.
func Resolve(t reflect.Type) ([]Property, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("contract: %s is not a struct type", t)
	}
	if p, ok := propertyCache.Load(t); ok {
		return p.([]Property), nil
	}

	props, err := resolveFields(t)
	if err != nil {
		return nil, err
	}
	p, _ := propertyCache.LoadOrStore(t, props)
	return p.([]Property), nil
}

type embedded struct {
	t     reflect.Type
	index []int
}

func resolveFields(root reflect.Type) ([]Property, error) {
	var props []Property
	seen := make(map[string]bool)
	level := []embedded{{t: root}}
	visited := map[reflect.Type]bool{root: true}

	for len(level) > 0 {
		var next []embedded
		claimed := make(map[string]bool)
		for _, e := range level {
			for i := 0; i < e.t.NumField(); i++ {
				sf := e.t.Field(i)
				index := append(append([]int(nil), e.index...), i)
				tag, hasTag := sf.Tag.Lookup("xj")

				if sf.Anonymous && !hasTag {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if ft.Kind() == reflect.Struct {
						if !visited[ft] {
							visited[ft] = true
							next = append(next, embedded{t: ft, index: index})
						}
						continue
					}
				}
				if !sf.IsExported() {
					continue
				}

				p, err := newProperty(sf, tag, index)
				if err != nil {
					return nil, fmt.Errorf("contract: %s.%s: %w", e.t, sf.Name, err)
				}
				if seen[p.Name] {
					continue
				}
				if claimed[p.Name] {
					return nil, fmt.Errorf("contract: %s: property %q is defined twice", root, p.Name)
				}
				claimed[p.Name] = true
				props = append(props, p)
			}
		}
		for name := range claimed {
			seen[name] = true
		}
		level = next
	}
	return props, nil
}

func newProperty(sf reflect.StructField, tag string, index []int) (Property, error) {
	p := Property{
		Name:      sf.Name,
		FieldName: sf.Name,
		Index:     index,
		Type:      sf.Type,
		Readable:  true,
		Writable:  true,
	}
	if tag == "-" {
		p.Ignored = true
		p.Readable = false
		p.Writable = false
		return p, nil
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name != "" {
		p.Name = name
	}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		switch strings.TrimSpace(opt) {
		case "omitempty":
			p.OmitEmpty = true
		case "required":
			p.Required = true
		case "readonly":
			p.Writable = false
		case "writeonly":
			p.Readable = false
		case "":
		default:
			return p, fmt.Errorf("unknown tag option %q", opt)
		}
	}
	if !p.Readable && !p.Writable {
		return p, fmt.Errorf("property %q is both readonly and writeonly", p.Name)
	}
	p.Default, p.HasDefault = sf.Tag.Lookup("default")
	return p, nil
}
