package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeFor[time.Time]()

// locationTags maps struct tags to the request location they declare, in
// lookup order.
var locationTags = []struct {
	tag      string
	location string
}{
	{"param", LocationParams},
	{"query", LocationQuery},
	{"header", LocationHeaders},
	{"json", LocationBody},
}

// FromStruct builds a schema from the fields of a struct value or type.
//
// The location of each field is taken from its param, query, header or json
// tag. The validate tag (go-playground/validator syntax) contributes
// required, oneof, gt, min and max; the doc tag contributes description,
// pattern, default and enum (values separated by |).
//
//	type GetUser struct {
//	    ID    string `param:"id" doc:"pattern=^[0-9]+$"`
//	    Limit int    `query:"limit" validate:"min=1" doc:"description=Page size"`
//	}
func FromStruct(v any) (*Schema, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("validation: FromStruct expects a struct, got %v", t)
	}

	s := NewSchema()
	err := collectFields(t, func(location string, f Field) {
		s.With(location, f)
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// collectFields walks exported struct fields, inlining untagged embedded
// structs, and reports each documented field with its location.
func collectFields(t reflect.Type, emit func(location string, f Field)) error {
	for i := range t.NumField() {
		field := t.Field(i)

		location, name, ok := fieldLocation(field)

		// embedded structs are inlined even when their type is unexported,
		// matching encoding/json
		if field.Anonymous && !ok {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := collectFields(ft, emit); err != nil {
					return err
				}
				continue
			}
		}

		if !ok || !field.IsExported() {
			continue
		}

		node, err := nodeForType(field.Type)
		if err != nil {
			return err
		}
		applyValidateTag(node, field.Tag.Get("validate"))
		if err := applyDocTag(node, field.Tag.Get("doc")); err != nil {
			return fmt.Errorf("validation: field %s: %w", field.Name, err)
		}

		emit(location, Key(name, node))
	}

	return nil
}

func fieldLocation(field reflect.StructField) (location, name string, ok bool) {
	for _, lt := range locationTags {
		tag, found := field.Tag.Lookup(lt.tag)
		if !found {
			continue
		}
		name, _, _ = strings.Cut(tag, ",")
		if name == "-" {
			return "", "", false
		}
		if name == "" {
			name = field.Name
		}
		return lt.location, name, true
	}

	return "", "", false
}

// nodeForType maps a Go type onto a node kind. Struct fields of nested
// structs become object fields keyed by their json names.
func nodeForType(t reflect.Type) (*Node, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return Date(), nil
	}

	switch t.Kind() {
	case reflect.String:
		return String(), nil
	case reflect.Bool:
		return Boolean(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number().Integer(), nil
	case reflect.Float32, reflect.Float64:
		return Number(), nil
	case reflect.Slice, reflect.Array:
		return Array(), nil
	case reflect.Map:
		return Object(), nil
	case reflect.Struct:
		obj := Object()
		err := collectFields(t, func(_ string, f Field) {
			obj.Fields = append(obj.Fields, f)
		})
		return obj, err
	default:
		return Any(), nil
	}
}

// applyValidateTag maps the subset of validator rules that change the
// documented shape.
func applyValidateTag(n *Node, tag string) {
	if tag == "" {
		return
	}

	for rule := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(rule), "=")

		switch key {
		case "required":
			n.Require()
		case "oneof":
			for v := range strings.FieldsSeq(value) {
				n.Valid(parseTagValue(n, v))
			}
		case "gt":
			if value == "0" && n.Kind == KindNumber {
				n.Positive()
			}
		case "min":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				n.Min(f)
			}
		case "max":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				n.Max(f)
			}
		}
	}
}

func applyDocTag(n *Node, tag string) error {
	if tag == "" {
		return nil
	}

	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "description":
			n.Description(value)
		case "pattern":
			re, err := regexp.Compile(value)
			if err != nil {
				return err
			}
			n.Tests = append(n.Tests, Test{Name: TestPattern, Arg: re})
		case "default":
			n.DefaultValue(parseTagValue(n, value))
		case "enum":
			for v := range strings.SplitSeq(value, "|") {
				n.Valid(parseTagValue(n, v))
			}
		case "name":
			n.As(value)
		}
	}

	return nil
}

// parseTagValue converts a tag value to the Go type implied by the node.
func parseTagValue(n *Node, value string) any {
	switch n.Kind {
	case KindNumber:
		if n.HasTest(TestInteger) {
			if v, err := strconv.ParseInt(value, 10, 64); err == nil {
				return v
			}
		}
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case KindBoolean:
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}

	return value
}
