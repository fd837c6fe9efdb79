// Package schema defines the record data model shared by the qsdata
// operators: flat records mapping string keys to integer-or-string values,
// ordered collections of such records and the frequency tables produced by
// aggregation.
package schema

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind string

const (
	KindInvalid Kind = "invalid" // nil Value
	KindInt     Kind = "integer" // IntValue
	KindString  Kind = "string"  // StringValue
)

// Value is the value stored under a record key. It is a closed sum type:
// the only implementations are IntValue and StringValue.
//
// Equality between Values is strict. IntValue(1) and StringValue("1") are
// different values, and comparing two Values with == does the right thing.
type Value interface {
	// Kind reports the variant held by the value.
	Kind() Kind
	// Format returns the value's string form, as used for frequency table keys.
	Format() string

	recordValue()
}

// IntValue is the integer variant of Value.
type IntValue int64

// StringValue is the string variant of Value.
type StringValue string

func (IntValue) Kind() Kind    { return KindInt }
func (StringValue) Kind() Kind { return KindString }

func (v IntValue) Format() string    { return strconv.FormatInt(int64(v), 10) }
func (v StringValue) Format() string { return string(v) }

func (IntValue) recordValue()    {}
func (StringValue) recordValue() {}

// KindOf returns the kind of v, or KindInvalid when v is nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}

// Equal reports whether a and b hold the same variant and the same payload.
// A nil Value is never equal to anything, including another nil.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// Compare orders two values of the same kind: integers numerically, strings
// by Unicode code point. It panics when the kinds differ, callers are
// expected to have checked uniformity first.
func Compare(a, b Value) int {
	switch x := a.(type) {
	case IntValue:
		y := b.(IntValue)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case StringValue:
		y := b.(StringValue)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("schema: cannot compare %T", a))
	}
}

// Record is a flat mapping from string keys to values. Operators never
// modify the records they are given.
type Record map[string]Value

// Get returns the value stored under key and whether the key is present.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r[key]
	return v, ok
}

// Collection is an ordered sequence of records. Order is insertion order
// and is preserved by every filtering operation.
type Collection []Record

// Len returns the number of records in the collection.
func (c Collection) Len() int { return len(c) }

// Clone returns a shallow copy of the collection. The records themselves are
// shared, which is safe because operators treat them as read-only.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// FrequencyTable maps the string form of a value to its number of
// occurrences. Iteration order carries no meaning.
type FrequencyTable map[string]int

// Total returns the sum of all counts.
func (f FrequencyTable) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Document is the untyped form of a record, as produced by JSON decoding,
// SQL rows or struct conversion. Convert it with FromDocument.
type Document map[string]any

// Issue represents a validation finding on a collection.
type Issue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity,omitempty"` // e.g., "error", "warning"
}

// ValidationResult bundles the outcome of a validation run.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}
