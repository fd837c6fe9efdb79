package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	assert.Equal(t, KindInt, KindOf(IntValue(3)))
	assert.Equal(t, KindString, KindOf(StringValue("x")))
	assert.Equal(t, KindInvalid, KindOf(nil))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(IntValue(1), IntValue(1)))
	assert.True(t, Equal(StringValue("1"), StringValue("1")))
	assert.False(t, Equal(IntValue(1), StringValue("1")), "equality is type-sensitive")
	assert.False(t, Equal(nil, nil))
	assert.False(t, Equal(IntValue(0), nil))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(IntValue(2), IntValue(10)))
	assert.Equal(t, 1, Compare(StringValue("Paris"), StringValue("London")))
	assert.Equal(t, 0, Compare(StringValue("é"), StringValue("é")))
	// Code point order: uppercase sorts before lowercase.
	assert.Equal(t, -1, Compare(StringValue("Zebra"), StringValue("apple")))
	assert.Panics(t, func() { Compare(IntValue(1), StringValue("1")) })
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "30", IntValue(30).Format())
	assert.Equal(t, "-7", IntValue(-7).Format())
	assert.Equal(t, "New York", StringValue("New York").Format())
}

func TestCollectionClone(t *testing.T) {
	c := Collection{{"a": IntValue(1)}, {"a": IntValue(2)}}
	clone := c.Clone()
	clone[0] = Record{"a": IntValue(9)}
	assert.Equal(t, IntValue(1), c[0]["a"])
	assert.Nil(t, Collection(nil).Clone())
	assert.Equal(t, 2, c.Len())
}

func TestFrequencyTableTotal(t *testing.T) {
	assert.Equal(t, 5, FrequencyTable{"Paris": 3, "London": 1, "New York": 1}.Total())
	assert.Equal(t, 0, FrequencyTable{}.Total())
}

func TestRecordJSON(t *testing.T) {
	r := Record{"name": StringValue("Alice"), "age": IntValue(30)}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice","age":30}`, string(data))

	v, ok := r.Get("age")
	assert.True(t, ok)
	assert.Equal(t, IntValue(30), v)
	_, ok = r.Get("city")
	assert.False(t, ok)
}
