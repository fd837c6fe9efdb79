package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email,omitempty"`
}

func TestStructToMap(t *testing.T) {
	m, err := StructToMap(person{Name: "Alice", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Alice", "age": json.Number("30")}, m)

	m, err = StructToMap(&person{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", m["email"])

	var nilPerson *person
	_, err = StructToMap(nilPerson)
	assert.Error(t, err)

	_, err = StructToMap(42)
	assert.Error(t, err)
}

func TestMapToStruct(t *testing.T) {
	p, err := MapToStruct[person](map[string]any{"name": "Alice", "age": json.Number("30")})
	require.NoError(t, err)
	assert.Equal(t, person{Name: "Alice", Age: 30}, p)

	ptr, err := MapToStruct[*person](map[string]any{"name": "Eve"})
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Equal(t, "Eve", ptr.Name)

	_, err = MapToStruct[person](nil)
	assert.Error(t, err)

	_, err = MapToStruct[int](map[string]any{})
	assert.Error(t, err)

	_, err = MapToStruct[person](map[string]any{"age": "old"})
	assert.Error(t, err)
}
