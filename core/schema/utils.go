package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/utils"
)

// ToValue converts an untyped Go value into a Value. Integers of every width,
// json.Number values holding an integer, strings and byte slices are
// accepted. Floats, booleans, nil and nested structures are rejected with
// core.ErrInvalidArgument.
func ToValue(v any) (Value, error) {
	switch val := v.(type) {
	case IntValue:
		return val, nil
	case StringValue:
		return val, nil
	case int:
		return IntValue(val), nil
	case int8:
		return IntValue(val), nil
	case int16:
		return IntValue(val), nil
	case int32:
		return IntValue(val), nil
	case int64:
		return IntValue(val), nil
	case uint:
		return uintValue(uint64(val))
	case uint8:
		return IntValue(val), nil
	case uint16:
		return IntValue(val), nil
	case uint32:
		return IntValue(val), nil
	case uint64:
		return uintValue(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return nil, core.InvalidArgument("value %q is not an integer", val.String())
		}
		return IntValue(i), nil
	case string:
		return StringValue(val), nil
	case []byte:
		return StringValue(val), nil
	case nil:
		return nil, core.InvalidArgument("value should be an int or a string, got null")
	default:
		return nil, core.InvalidArgument("value should be an int or a string, got %T", v)
	}
}

func uintValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, core.InvalidArgument("integer %d overflows int64", u)
	}
	return IntValue(u), nil
}

// FromDocument converts a Document into a Record, rejecting any field whose
// value is not an integer or a string.
func FromDocument(doc Document) (Record, error) {
	record := make(Record, len(doc))
	for key, raw := range doc {
		v, err := ToValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		record[key] = v
	}
	return record, nil
}

// FromDocuments converts a slice of Documents into a Collection. The
// conversion is all-or-nothing.
func FromDocuments(docs []Document) (Collection, error) {
	out := make(Collection, 0, len(docs))
	for i, doc := range docs {
		record, err := FromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, record)
	}
	return out, nil
}

// FromAny converts loosely typed data, typically the result of decoding JSON
// into an interface value, into a Collection. The input must be a list whose
// elements are all mappings.
func FromAny(data any) (Collection, error) {
	switch v := data.(type) {
	case Collection:
		return v, nil
	case []Record:
		return Collection(v), nil
	case []Document:
		return FromDocuments(v)
	case []map[string]any:
		docs := make([]Document, len(v))
		for i, m := range v {
			docs[i] = m
		}
		return FromDocuments(docs)
	case []any:
		docs := make([]Document, len(v))
		for i, item := range v {
			switch m := item.(type) {
			case map[string]any:
				docs[i] = m
			case Document:
				docs[i] = m
			default:
				return nil, core.InvalidArgument("data should be a list of records, element %d is %T", i, item)
			}
		}
		return FromDocuments(docs)
	default:
		return nil, core.InvalidArgument("data should be a list, got %T", data)
	}
}

// DecodeCollection parses a JSON array of flat objects. Numbers are decoded
// with json.Number so that integers keep their exact value and fractional
// numbers are rejected.
func DecodeCollection(data []byte) (Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, core.InvalidArgument("malformed collection JSON: %v", err)
	}
	return FromAny(raw)
}

// UnmarshalJSON implements json.Unmarshaler using DecodeCollection.
func (c *Collection) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeCollection(data)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

// FromStructs converts a slice of flat structs into a Collection, honouring
// their json tags.
func FromStructs[T any](items []T) (Collection, error) {
	docs := make([]Document, 0, len(items))
	for i, item := range items {
		m, err := utils.StructToMap(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		docs = append(docs, m)
	}
	return FromDocuments(docs)
}

// ToDocument converts a Record back to its untyped form.
func ToDocument(r Record) Document {
	doc := make(Document, len(r))
	for key, v := range r {
		switch val := v.(type) {
		case IntValue:
			doc[key] = int64(val)
		case StringValue:
			doc[key] = string(val)
		}
	}
	return doc
}

// ToStructs converts a Collection into a slice of structs of type T.
func ToStructs[T any](c Collection) ([]T, error) {
	out := make([]T, 0, len(c))
	for i, record := range c {
		item, err := utils.MapToStruct[T](ToDocument(record))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}
