package schema

import (
	"errors"
	"testing"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	records := Collection{
		{"age": IntValue(30), "city": StringValue("Paris")},
		{"age": StringValue("25")},
		{"city": StringValue("London")},
	}

	t.Run("required key", func(t *testing.T) {
		ok, issues := NewValidator(KeyRequirement{Key: "city", Required: true}).Validate(records)
		assert.False(t, ok)
		require.Len(t, issues, 1)
		assert.Equal(t, IssueMissingKey, issues[0].Code)
		assert.Equal(t, "[1].city", issues[0].Path)
	})

	t.Run("optional key", func(t *testing.T) {
		ok, issues := NewValidator(KeyRequirement{Key: "city"}).Validate(records)
		assert.True(t, ok)
		assert.Empty(t, issues)
	})

	t.Run("uniform", func(t *testing.T) {
		ok, issues := NewValidator(KeyRequirement{Key: "age", Uniform: true}).Validate(records)
		assert.False(t, ok)
		require.Len(t, issues, 1)
		assert.Equal(t, IssueNonUniformType, issues[0].Code)
	})

	t.Run("numeric", func(t *testing.T) {
		ok, _ := NewValidator(KeyRequirement{Key: "age", Numeric: true}).Validate(records)
		assert.True(t, ok)

		ok, issues := NewValidator(KeyRequirement{Key: "city", Numeric: true}).Validate(records)
		assert.False(t, ok)
		assert.Equal(t, IssueNotNumeric, issues[0].Code)
	})

	t.Run("null value", func(t *testing.T) {
		ok, issues := NewValidator(KeyRequirement{Key: "a"}).Validate(Collection{{"a": nil}})
		assert.False(t, ok)
		assert.Equal(t, IssueInvalidValue, issues[0].Code)
	})

	t.Run("non-empty", func(t *testing.T) {
		ok, issues := NewValidator(KeyRequirement{Key: "a", NonEmpty: true}).Validate(Collection{})
		assert.False(t, ok)
		assert.Equal(t, IssueEmptyCollection, issues[0].Code)
	})

	t.Run("reusable", func(t *testing.T) {
		v := NewValidator(KeyRequirement{Key: "city", Required: true})
		ok, _ := v.Validate(records)
		assert.False(t, ok)
		ok, issues := v.Validate(Collection{{"city": StringValue("Rome")}})
		assert.True(t, ok)
		assert.Empty(t, issues)
	})
}

func TestValidator_Check(t *testing.T) {
	records := Collection{
		{"age": IntValue(30)},
		{"name": StringValue("Bob")},
	}

	err := NewValidator(KeyRequirement{Key: "age", Required: true}).Check(records)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingKey)
	var mk *core.MissingKeyError
	require.True(t, errors.As(err, &mk))
	assert.Equal(t, 1, mk.Index)
	assert.Equal(t, "age", mk.Key)

	err = NewValidator(KeyRequirement{Key: "v", Uniform: true}).Check(Collection{
		{"v": IntValue(1)}, {"v": StringValue("a")},
	})
	assert.ErrorIs(t, err, core.ErrNonUniformType)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	assert.NoError(t, NewValidator(KeyRequirement{Key: "age"}).Check(records))
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		input    Value
		expected int64
		ok       bool
	}{
		{IntValue(5), 5, true},
		{StringValue("42"), 42, true},
		{StringValue(" -3 "), -3, true},
		{StringValue("+8"), 8, true},
		{StringValue("4.2"), 0, false},
		{StringValue("Paris"), 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToInt64(tt.input)
		assert.Equal(t, tt.ok, ok, "input %v", tt.input)
		if tt.ok {
			assert.Equal(t, tt.expected, got)
		}
	}
}
