package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
		valid    bool
	}{
		{"int", 10, IntValue(10), true},
		{"int8", int8(-2), IntValue(-2), true},
		{"int64", int64(50), IntValue(50), true},
		{"uint32", uint32(7), IntValue(7), true},
		{"uint64 overflow", uint64(math.MaxUint64), nil, false},
		{"json integer", json.Number("42"), IntValue(42), true},
		{"json fraction", json.Number("4.2"), nil, false},
		{"string", "Paris", StringValue("Paris"), true},
		{"bytes", []byte("abc"), StringValue("abc"), true},
		{"value passthrough", IntValue(3), IntValue(3), true},
		{"float", 1.5, nil, false},
		{"bool", true, nil, false},
		{"nil", nil, nil, false},
		{"nested", map[string]any{"a": 1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ToValue(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, core.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestFromAny(t *testing.T) {
	t.Run("list of maps", func(t *testing.T) {
		c, err := FromAny([]any{
			map[string]any{"name": "Alice", "age": 30},
			map[string]any{"name": "Bob"},
		})
		require.NoError(t, err)
		assert.Equal(t, Collection{
			{"name": StringValue("Alice"), "age": IntValue(30)},
			{"name": StringValue("Bob")},
		}, c)
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := FromAny(map[string]any{"a": 1})
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("element not a record", func(t *testing.T) {
		_, err := FromAny([]any{map[string]any{"a": 1}, "oops"})
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("unsupported field value", func(t *testing.T) {
		_, err := FromAny([]map[string]any{{"a": []any{1}}})
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func TestDecodeCollection(t *testing.T) {
	c, err := DecodeCollection([]byte(`[{"name":"Alice","age":30},{"name":"Bob","age":25}]`))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, IntValue(30), c[0]["age"])

	_, err = DecodeCollection([]byte(`[{"age":30.5}]`))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = DecodeCollection([]byte(`{"age":30}`))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = DecodeCollection([]byte(`[`))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	var viaUnmarshal Collection
	require.NoError(t, json.Unmarshal([]byte(`[{"city":"Paris"}]`), &viaUnmarshal))
	assert.Equal(t, Collection{{"city": StringValue("Paris")}}, viaUnmarshal)
}

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	City string `json:"city,omitempty"`
}

func TestStructRoundTrip(t *testing.T) {
	people := []person{{Name: "Alice", Age: 30, City: "Paris"}, {Name: "Bob", Age: 25}}
	c, err := FromStructs(people)
	require.NoError(t, err)
	assert.Equal(t, Record{"name": StringValue("Bob"), "age": IntValue(25)}, c[1])

	back, err := ToStructs[person](c)
	require.NoError(t, err)
	assert.Equal(t, people, back)
}
