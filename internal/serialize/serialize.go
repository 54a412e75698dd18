// Package serialize converts declared resource values to CloudFormation
// property maps.
package serialize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	auditwire "github.com/auditwire/auditwire-go"
)

// RefTable maps declared resource values back to their logical names so a
// direct struct reference inside another resource serializes as {"Ref": name}.
// Values are matched by resource type plus canonical JSON, since a copied
// struct value carries no identity of its own.
type RefTable struct {
	names map[string]string
}

// NewRefTable builds a RefTable from logical name to resource value.
func NewRefTable(resources map[string]auditwire.Resource) (*RefTable, error) {
	t := &RefTable{names: make(map[string]string, len(resources))}
	for name, r := range resources {
		sig, err := signature(r)
		if err != nil {
			return nil, fmt.Errorf("signature for %s: %w", name, err)
		}
		t.names[sig] = name
	}
	return t, nil
}

// Lookup returns the logical name for a resource value.
func (t *RefTable) Lookup(r auditwire.Resource) (string, bool) {
	if t == nil {
		return "", false
	}
	sig, err := signature(r)
	if err != nil {
		return "", false
	}
	name, ok := t.names[sig]
	return name, ok
}

func signature(r auditwire.Resource) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return r.ResourceType() + ":" + string(data), nil
}

// Resource serializes a resource struct to CloudFormation properties:
// PascalCase property names from json tags, zero values omitted, nested
// resource references converted to Ref, intrinsics via their marshalers.
func Resource(v any, refs *RefTable) (map[string]any, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, nil
	}

	result := make(map[string]any)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !field.IsExported() {
			continue
		}
		name, omitempty := fieldName(field)
		if name == "-" {
			continue
		}
		if omitempty && isZeroValue(fieldVal) {
			continue
		}

		serialized, err := Value(fieldVal.Interface(), refs)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if serialized == nil && omitempty {
			continue
		}
		result[name] = serialized
	}

	return result, nil
}

// Value serializes a single property value. Nested resource values become
// Ref, json.Marshaler values (intrinsics, parameters, attr refs) marshal
// themselves, plain structs serialize field by field.
func Value(v any, refs *RefTable) (any, error) {
	if v == nil {
		return nil, nil
	}

	// Direct reference to another declared resource.
	if r, ok := v.(auditwire.Resource); ok {
		if name, found := refs.Lookup(r); found {
			return map[string]any{"Ref": name}, nil
		}
	}

	// Intrinsics, parameters, and attr refs carry their own encoding.
	if marshaler, ok := v.(json.Marshaler); ok {
		data, err := marshaler.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return nil, nil
		}
		return Value(val.Elem().Interface(), refs)

	case reflect.Struct:
		return Resource(v, refs)

	case reflect.Slice:
		if val.Len() == 0 {
			return nil, nil
		}
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			elem, err := Value(val.Index(i).Interface(), refs)
			if err != nil {
				return nil, err
			}
			result[i] = elem
		}
		return result, nil

	case reflect.Map:
		if val.Len() == 0 {
			return nil, nil
		}
		result := make(map[string]any)
		iter := val.MapRange()
		for iter.Next() {
			elem, err := Value(iter.Value().Interface(), refs)
			if err != nil {
				return nil, err
			}
			result[iter.Key().String()] = elem
		}
		return result, nil

	case reflect.String:
		return val.String(), nil
	case reflect.Bool:
		return val.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return val.Float(), nil

	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return result, nil
	}
}

// fieldName returns the property name and omitempty flag for a struct field.
func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, true
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}
	omitempty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

// isZeroValue reports whether the value is the zero value for its type.
// Types with an IsZero method decide for themselves.
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		if v.CanInterface() {
			if zeroer, ok := v.Interface().(interface{ IsZero() bool }); ok {
				return zeroer.IsZero()
			}
		}
		return false
	default:
		return false
	}
}

// ToPascalCase converts snake_case to PascalCase.
// e.g., "bucket_name" -> "BucketName"
func ToPascalCase(s string) string {
	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToSnakeCase converts PascalCase to snake_case.
// e.g., "BucketName" -> "bucket_name"
func ToSnakeCase(s string) string {
	var result strings.Builder

	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
