package query

import (
	"errors"
	"testing"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() schema.Collection {
	return schema.Collection{
		{"name": schema.StringValue("Alice"), "age": schema.IntValue(30), "city": schema.StringValue("Paris")},
		{"name": schema.StringValue("Bob"), "age": schema.IntValue(25), "city": schema.StringValue("Paris")},
		{"name": schema.StringValue("Charlie"), "age": schema.IntValue(35), "city": schema.StringValue("London")},
		{"name": schema.StringValue("David"), "age": schema.IntValue(40), "city": schema.StringValue("New York")},
		{"name": schema.StringValue("Eve"), "age": schema.IntValue(22), "city": schema.StringValue("Paris")},
	}
}

func names(c schema.Collection) []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r["name"].Format()
	}
	return out
}

func TestFilter(t *testing.T) {
	data := sampleData()

	t.Run("matches in order", func(t *testing.T) {
		result, err := Filter(data, "city", schema.StringValue("Paris"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob", "Eve"}, names(result))
	})

	t.Run("integer values", func(t *testing.T) {
		result, err := Filter(data, "age", schema.IntValue(35))
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie"}, names(result))
	})

	t.Run("type sensitive", func(t *testing.T) {
		result, err := Filter(data, "age", schema.StringValue("35"))
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("missing key is a non-match", func(t *testing.T) {
		mixed := append(data.Clone(), schema.Record{"name": schema.StringValue("Zed")})
		result, err := Filter(mixed, "city", schema.StringValue("Paris"))
		require.NoError(t, err)
		assert.Len(t, result, 3)

		result, err = Filter(data, "country", schema.StringValue("France"))
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("integer key never matches", func(t *testing.T) {
		result, err := Filter(data, 1, schema.StringValue("city"))
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("nil value", func(t *testing.T) {
		_, err := Filter(data, "city", nil)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("empty collection", func(t *testing.T) {
		result, err := Filter(schema.Collection{}, "city", schema.StringValue("Paris"))
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestFilterAbove(t *testing.T) {
	data := sampleData()

	t.Run("strictly greater", func(t *testing.T) {
		result, err := FilterAbove(data, "age", 30)
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie", "David"}, names(result))
		for _, r := range result {
			assert.Greater(t, int64(r["age"].(schema.IntValue)), int64(30))
		}
	})

	t.Run("numeric strings are coerced", func(t *testing.T) {
		records := schema.Collection{
			{"score": schema.StringValue("12")},
			{"score": schema.IntValue(3)},
			{"score": schema.StringValue(" 40 ")},
		}
		result, err := FilterAbove(records, "score", 10)
		require.NoError(t, err)
		assert.Equal(t, schema.Collection{records[0], records[2]}, result)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		result, err := FilterAbove(data, "city", 30)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
		assert.Nil(t, result)
	})

	t.Run("missing key", func(t *testing.T) {
		records := append(data.Clone(), schema.Record{"name": schema.StringValue("Zed")})
		result, err := FilterAbove(records, "age", 0)
		assert.ErrorIs(t, err, core.ErrMissingKey)
		assert.Nil(t, result, "no partial result on failure")
		var mk *core.MissingKeyError
		require.True(t, errors.As(err, &mk))
		assert.Equal(t, 5, mk.Index)
	})
}

func TestSortByKey(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		data := sampleData()
		result, err := SortByKey(data, "age")
		require.NoError(t, err)
		require.Len(t, result, len(data))
		assert.Equal(t, schema.IntValue(22), result[0]["age"])
		assert.Equal(t, schema.IntValue(40), result[len(result)-1]["age"])
		for i := 1; i < len(result); i++ {
			assert.LessOrEqual(t, schema.Compare(result[i-1]["age"], result[i]["age"]), 0)
		}
	})

	t.Run("numeric not lexicographic", func(t *testing.T) {
		records := schema.Collection{{"n": schema.IntValue(10)}, {"n": schema.IntValue(9)}, {"n": schema.IntValue(100)}}
		result, err := SortByKey(records, "n")
		require.NoError(t, err)
		assert.Equal(t, schema.Collection{records[1], records[0], records[2]}, result)
	})

	t.Run("strings", func(t *testing.T) {
		records := schema.Collection{{"city": schema.StringValue("Paris")}, {"city": schema.StringValue("London")}}
		result, err := SortByKey(records, "city")
		require.NoError(t, err)
		assert.Equal(t, schema.StringValue("London"), result[0]["city"])
		assert.Equal(t, schema.StringValue("Paris"), result[1]["city"])
	})

	t.Run("stable", func(t *testing.T) {
		result, err := SortByKey(sampleData(), "city")
		require.NoError(t, err)
		want := []string{"Charlie", "David", "Alice", "Bob", "Eve"}
		if diff := cmp.Diff(want, names(result)); diff != "" {
			t.Errorf("sort order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		data := sampleData()
		_, err := SortByKey(data, "age")
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob", "Charlie", "David", "Eve"}, names(data))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := SortByKey(sampleData(), "country")
		assert.ErrorIs(t, err, core.ErrMissingKey)
	})

	t.Run("non-uniform types", func(t *testing.T) {
		records := schema.Collection{{"v": schema.IntValue(1)}, {"v": schema.StringValue("a")}}
		_, err := SortByKey(records, "v")
		assert.ErrorIs(t, err, core.ErrNonUniformType)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := SortByKey(schema.Collection{}, "v")
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func TestAggregate(t *testing.T) {
	data := sampleData()

	result, err := Aggregate(data, "city")
	require.NoError(t, err)
	assert.Equal(t, schema.FrequencyTable{"Paris": 3, "London": 1, "New York": 1}, result)
	assert.Equal(t, len(data), result.Total())

	byAge, err := Aggregate(data, "age")
	require.NoError(t, err)
	assert.Equal(t, 1, byAge["30"])

	_, err = Aggregate(data, "London")
	assert.ErrorIs(t, err, core.ErrMissingKey)

	_, err = Aggregate(schema.Collection{{"k": nil}}, "k")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	empty, err := Aggregate(schema.Collection{}, "city")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
