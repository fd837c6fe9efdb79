package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/asaidimu/go-qsdata/core"
)

// QueryBuilder provides a fluent API for building QueryDSL pipelines.
//
//	dsl := NewQueryBuilder().
//		Where("city").Eq("Paris").
//		Where("age").Gt(24).
//		OrderBy("age").
//		CountBy("name", "").
//		Build()
type QueryBuilder struct {
	query QueryDSL
}

// NewQueryBuilder creates a new, empty query builder instance.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		query: QueryDSL{},
	}
}

// Build returns the constructed QueryDSL object.
func (qb *QueryBuilder) Build() QueryDSL {
	return qb.query
}

// Clone creates a copy of the current query builder so that derived
// queries can be built without modifying the original.
func (qb *QueryBuilder) Clone() *QueryBuilder {
	clone := &QueryBuilder{query: QueryDSL{
		Filters:      slices.Clone(qb.query.Filters),
		Aggregations: slices.Clone(qb.query.Aggregations),
	}}
	if qb.query.Sort != nil {
		sort := *qb.query.Sort
		clone.query.Sort = &sort
	}
	return clone
}

// Reset clears all configurations from the query builder, returning it to its initial state.
func (qb *QueryBuilder) Reset() *QueryBuilder {
	qb.query = QueryDSL{}
	return qb
}

// FilterConditionBuilder is used to build a single filter condition (e.g., field = value).
type FilterConditionBuilder struct {
	parent *QueryBuilder
	field  string
}

// Where begins the construction of a filter condition for a specific field.
func (qb *QueryBuilder) Where(field string) *FilterConditionBuilder {
	return &FilterConditionBuilder{parent: qb, field: field}
}

// Eq adds an equality condition to the query.
func (fcb *FilterConditionBuilder) Eq(value FilterValue) *QueryBuilder {
	return fcb.addCondition(ComparisonOperatorEq, value)
}

// Gt adds a strictly-greater-than condition to the query. The value must
// be an integer.
func (fcb *FilterConditionBuilder) Gt(value FilterValue) *QueryBuilder {
	return fcb.addCondition(ComparisonOperatorGt, value)
}

// Custom adds a condition handled by a predicate registered on the
// DataProcessor.
func (fcb *FilterConditionBuilder) Custom(operator ComparisonOperator, value FilterValue) *QueryBuilder {
	return fcb.addCondition(operator, value)
}

func (fcb *FilterConditionBuilder) addCondition(operator ComparisonOperator, value FilterValue) *QueryBuilder {
	fcb.parent.query.Filters = append(fcb.parent.query.Filters, FilterCondition{
		Field:    fcb.field,
		Operator: operator,
		Value:    value,
	})
	return fcb.parent
}

// OrderBy sorts the pipeline output ascending by field. A later call
// replaces an earlier one.
func (qb *QueryBuilder) OrderBy(field string) *QueryBuilder {
	qb.query.Sort = &SortConfiguration{Field: field}
	return qb
}

// Aggregate adds an aggregation to the query.
func (qb *QueryBuilder) Aggregate(aggType AggregationType, field string, alias string) *QueryBuilder {
	qb.query.Aggregations = append(qb.query.Aggregations, AggregationConfiguration{
		Type:  aggType,
		Field: field,
		Alias: alias,
	})
	return qb
}

// CountBy adds a frequency count of the values at field.
func (qb *QueryBuilder) CountBy(field string, alias string) *QueryBuilder {
	return qb.Aggregate(AggregationTypeCount, field, alias)
}

// QueryValidationError represents an error found during query validation.
type QueryValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for a QueryValidationError.
func (ve QueryValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// Unwrap classifies every query validation error as an invalid argument.
func (ve QueryValidationError) Unwrap() error { return core.ErrInvalidArgument }

// QueryValidationResult contains the results of a query validation.
type QueryValidationResult struct {
	IsValid bool
	Errors  []QueryValidationError
}

// Validate checks the built query for structural mistakes that would make
// the pipeline fail regardless of the data.
func (qb *QueryBuilder) Validate() QueryValidationResult {
	return ValidateDSL(&qb.query)
}

// ValidateDSL checks a QueryDSL for structural mistakes: empty field names,
// empty operators, threshold values that are not integers and unsupported
// aggregation types.
func ValidateDSL(dsl *QueryDSL) QueryValidationResult {
	var errors []QueryValidationError

	for i, cond := range dsl.Filters {
		if cond.Field == "" {
			errors = append(errors, QueryValidationError{
				Field:   fmt.Sprintf("filters[%d].field", i),
				Message: "field cannot be empty",
			})
		}
		if cond.Operator == "" {
			errors = append(errors, QueryValidationError{
				Field:   fmt.Sprintf("filters[%d].operator", i),
				Message: "operator cannot be empty",
			})
		}
		if cond.Operator == ComparisonOperatorGt {
			if _, err := thresholdValue(cond.Value); err != nil {
				errors = append(errors, QueryValidationError{
					Field:   fmt.Sprintf("filters[%d].value", i),
					Message: "threshold must be an integer",
				})
			}
		}
	}

	if dsl.Sort != nil && dsl.Sort.Field == "" {
		errors = append(errors, QueryValidationError{
			Field:   "sort.field",
			Message: "field cannot be empty",
		})
	}

	for i, agg := range dsl.Aggregations {
		if agg.Type != AggregationTypeCount {
			errors = append(errors, QueryValidationError{
				Field:   fmt.Sprintf("aggregations[%d].type", i),
				Message: fmt.Sprintf("unsupported aggregation type %q", agg.Type),
			})
		}
		if agg.Field == "" {
			errors = append(errors, QueryValidationError{
				Field:   fmt.Sprintf("aggregations[%d].field", i),
				Message: "field is required",
			})
		}
	}

	return QueryValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

// String returns a human-readable representation of the built query.
func (qb *QueryBuilder) String() string {
	var parts []string

	if len(qb.query.Filters) > 0 {
		conds := make([]string, len(qb.query.Filters))
		for i, c := range qb.query.Filters {
			conds[i] = fmt.Sprintf("%s %s %v", c.Field, c.Operator, c.Value)
		}
		parts = append(parts, fmt.Sprintf("WHERE: %s", strings.Join(conds, " AND ")))
	}

	if qb.query.Sort != nil {
		parts = append(parts, fmt.Sprintf("ORDER BY: %s", qb.query.Sort.Field))
	}

	if len(qb.query.Aggregations) > 0 {
		parts = append(parts, fmt.Sprintf("AGGREGATIONS: %d", len(qb.query.Aggregations)))
	}

	if len(parts) == 0 {
		return "EMPTY QUERY"
	}

	return strings.Join(parts, " | ")
}
