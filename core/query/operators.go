package query

import (
	"slices"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/schema"
)

// FieldKey is the set of key types accepted by Filter. Record keys are
// always strings; integer keys are tolerated for compatibility and simply
// never match.
type FieldKey interface {
	string | int
}

// Filter returns the records whose value at key equals value, in their
// original order. Equality is strict: IntValue(1) does not match
// StringValue("1").
//
// Records that do not contain key are treated as non-matching rather than
// as an error, unlike FilterAbove, SortByKey and Aggregate, which all
// require the key.
func Filter[K FieldKey](records schema.Collection, key K, value schema.Value) (schema.Collection, error) {
	if value == nil {
		return nil, core.InvalidArgument("value should be an int or a string")
	}

	result := make(schema.Collection, 0)
	name, ok := any(key).(string)
	if !ok {
		return result, nil
	}

	for _, record := range records {
		if v, exists := record[name]; exists && schema.Equal(v, value) {
			result = append(result, record)
		}
	}
	return result, nil
}

// FilterAbove returns the records whose value at key, coerced to an
// integer, is strictly greater than threshold. Every record must contain
// key and hold an integer or a numeric string there; the whole collection is
// validated before anything is returned.
func FilterAbove(records schema.Collection, key string, threshold int64) (schema.Collection, error) {
	validator := schema.NewValidator(schema.KeyRequirement{
		Key:      key,
		Required: true,
		Numeric:  true,
	})
	if err := validator.Check(records); err != nil {
		return nil, err
	}

	result := make(schema.Collection, 0)
	for _, record := range records {
		n, _ := schema.ToInt64(record[key])
		if n > threshold {
			result = append(result, record)
		}
	}
	return result, nil
}

// SortByKey returns a new collection ordered ascending by the value at key.
// Integers compare numerically, strings by Unicode code point, and records
// with equal keys keep their relative order. The input is not modified.
//
// The collection must be non-empty, every record must contain key, and all
// values at key must be of the same kind (core.ErrNonUniformType otherwise).
func SortByKey(records schema.Collection, key string) (schema.Collection, error) {
	validator := schema.NewValidator(schema.KeyRequirement{
		Key:      key,
		Required: true,
		Uniform:  true,
		NonEmpty: true,
	})
	if err := validator.Check(records); err != nil {
		return nil, err
	}

	sorted := records.Clone()
	slices.SortStableFunc(sorted, func(a, b schema.Record) int {
		return schema.Compare(a[key], b[key])
	})
	return sorted, nil
}

// Aggregate counts how many records hold each value at key. The table is
// keyed by the value's string form, so its counts always sum to
// len(records).
func Aggregate(records schema.Collection, key string) (schema.FrequencyTable, error) {
	validator := schema.NewValidator(schema.KeyRequirement{
		Key:      key,
		Required: true,
	})
	if err := validator.Check(records); err != nil {
		return nil, err
	}

	table := make(schema.FrequencyTable)
	for _, record := range records {
		table[record[key].Format()]++
	}
	return table, nil
}
