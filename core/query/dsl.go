// Package query provides the record-collection operators (equality filter,
// threshold filter, key sort and frequency aggregation) together with a small
// DSL for chaining them into a single pipeline.
package query

import (
	"bytes"
	"encoding/json"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/schema"
)

// ComparisonOperator defines the set of operators that can be used in a filter condition.
type ComparisonOperator string

// Supported comparison operators.
const (
	ComparisonOperatorEq ComparisonOperator = "eq"
	ComparisonOperatorGt ComparisonOperator = "gt"
)

// FilterValue represents the value used in a filter condition. Standard
// operators require an integer or a string; custom operators receive it
// untouched.
type FilterValue any

// FilterCondition defines a single condition applied to every record.
type FilterCondition struct {
	Field    string             `json:"field"`
	Operator ComparisonOperator `json:"operator"`
	Value    FilterValue        `json:"value"`
}

// SortConfiguration names the key a pipeline sorts by. Sorting is always
// ascending.
type SortConfiguration struct {
	Field string `json:"field"`
}

// AggregationType specifies the type of aggregation to be performed.
type AggregationType string

// Supported aggregation types.
const (
	AggregationTypeCount AggregationType = "count"
)

// AggregationConfiguration defines an aggregation operation to be performed on a field.
type AggregationConfiguration struct {
	Type  AggregationType `json:"type"`
	Field string          `json:"field"`
	Alias string          `json:"alias,omitempty"`
}

// Name returns the key under which the aggregation appears in a QueryResult.
func (a AggregationConfiguration) Name() string {
	if a.Alias != "" {
		return a.Alias
	}
	return a.Field
}

// QueryDSL describes a pipeline: filters are applied in order, then the
// optional sort, then the aggregations run over the surviving records.
type QueryDSL struct {
	Filters      []FilterCondition          `json:"filters,omitempty"`
	Sort         *SortConfiguration         `json:"sort,omitempty"`
	Aggregations []AggregationConfiguration `json:"aggregations,omitempty"`
}

// QueryResult is the output of a pipeline run.
type QueryResult struct {
	Data         schema.Collection                `json:"data"`
	Count        int                              `json:"count"`
	Aggregations map[string]schema.FrequencyTable `json:"aggregations,omitempty"`
}

// standardComparisonOperators is a set of all the standard, built-in comparison operators.
var standardComparisonOperators = map[ComparisonOperator]struct{}{
	ComparisonOperatorEq: {},
	ComparisonOperatorGt: {},
}

// IsStandard checks if a comparison operator is one of the standard, built-in operators.
func (c ComparisonOperator) IsStandard() bool {
	_, ok := standardComparisonOperators[c]
	return ok
}

// ParseQueryDSL decodes a JSON pipeline description. Numbers are kept as
// json.Number so integer filter values survive decoding intact.
func ParseQueryDSL(data []byte) (*QueryDSL, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	var dsl QueryDSL
	if err := dec.Decode(&dsl); err != nil {
		return nil, core.InvalidArgument("malformed query: %v", err)
	}
	return &dsl, nil
}
