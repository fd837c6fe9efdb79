package query

import (
	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/schema"
)

// filterValue converts the value of an equality condition into a record
// value.
func filterValue(v FilterValue) (schema.Value, error) {
	return schema.ToValue(v)
}

// thresholdValue converts the value of a greater-than condition into an
// integer. Numeric strings are not accepted here: the threshold itself must
// be an integer, only record values are coerced.
func thresholdValue(v FilterValue) (int64, error) {
	val, err := schema.ToValue(v)
	if err != nil {
		return 0, err
	}
	i, ok := val.(schema.IntValue)
	if !ok {
		return 0, core.InvalidArgument("threshold should be an int, got %q", val.Format())
	}
	return int64(i), nil
}
