package sequence

import (
	"encoding/json"
	"math"

	"github.com/asaidimu/go-qsdata/core"
)

// ParseNumbers converts loosely typed values, such as a decoded JSON array,
// into float64s. Every element must be numeric: Go integer and float kinds
// and json.Number are accepted, anything else (strings, booleans, nil) is
// rejected with core.ErrInvalidArgument.
func ParseNumbers(values []any) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := toFloat64(v)
		if !ok {
			return nil, core.InvalidArgument("element %d should be a number, got %T", i, v)
		}
		out[i] = f
	}
	return out, nil
}

// ParseIntegers converts loosely typed values into int64s. Fractional
// numbers and non-numeric elements are rejected with core.ErrInvalidArgument.
func ParseIntegers(values []any) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		n, ok := toInt64(v)
		if !ok {
			return nil, core.InvalidArgument("element %d should be an integer, got %v", i, v)
		}
		out[i] = n
	}
	return out, nil
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || val >= math.MaxInt64 || val < math.MinInt64 {
			return 0, false
		}
		return int64(val), true
	case json.Number:
		n, err := val.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
