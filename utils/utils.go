package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// StructToMap converts a Go struct into a map[string]any.
//
// The struct is marshaled to JSON and decoded back into a map, so `json`
// tags, `omitempty` and embedded structs behave exactly as they do for
// encoding/json. Numbers are decoded as json.Number, which keeps integers
// distinguishable from fractional values.
//
// The input `record` must be a struct or a pointer to a struct.
//
// Example:
//
//	type Person struct {
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//	m, err := StructToMap(Person{Name: "Alice", Age: 30})
//	// m == map[string]any{"name": "Alice", "age": json.Number("30")}
func StructToMap[T any](record T) (map[string]any, error) {
	val := reflect.ValueOf(record)

	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("StructToMap: failed to marshal input record to JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.UseNumber()
	var result map[string]any
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("StructToMap: failed to decode JSON into map[string]any: %w", err)
	}

	return result, nil
}

// MapToStruct is the inverse of StructToMap: it converts a map into a new
// instance of the struct type T by way of JSON.
//
// If T is a pointer type (e.g., `*MyStruct`), the function unmarshals into
// the pointed-to struct and returns the pointer.
func MapToStruct[T any](input map[string]any) (T, error) {
	var zero T

	if input == nil {
		return zero, fmt.Errorf("MapToStruct: input map cannot be nil")
	}

	typ := reflect.TypeOf(zero)
	if typ == nil {
		return zero, fmt.Errorf("MapToStruct: generic type T must be a struct type")
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("MapToStruct: generic type T must be a struct type (or pointer to struct), got %s", typ.Kind())
	}

	jsonBytes, err := json.Marshal(input)
	if err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to marshal input map to JSON: %w", err)
	}

	var result T
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to unmarshal JSON to target struct: %w", err)
	}

	return result, nil
}
