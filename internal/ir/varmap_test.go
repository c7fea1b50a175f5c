package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarMap_SetIfAbsent(t *testing.T) {
	m := NewVarMap()
	m.Set("companyName", "Acme Corp")

	stored := m.SetIfAbsent("companyName", "Other Corp")
	assert.False(t, stored)
	assert.Equal(t, "Acme Corp", m.Lookup("companyName"))

	stored = m.SetIfAbsent("state", "Delaware")
	assert.True(t, stored)
	assert.Equal(t, "Delaware", m.Lookup("state"))
}

func TestVarMap_NamesSorted(t *testing.T) {
	m := NewVarMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("c", "3")

	assert.Equal(t, []string{"a", "b", "c"}, m.Names())
}

func TestVarMap_CloneIsolation(t *testing.T) {
	m := NewVarMap()
	m.Set("name", "jane")
	m.SetGroup("founders", []LoopItem{{"name": "jane", "first": true}})

	c := m.Clone()
	c.Set("name", "john")
	items, ok := c.Group("founders")
	require.True(t, ok)
	items[0]["name"] = "john"

	assert.Equal(t, "jane", m.Lookup("name"))
	orig, _ := m.Group("founders")
	assert.Equal(t, "jane", orig[0]["name"], "clone must deep-copy loop items")
}

func TestVarMap_MarshalJSONIncludesGroups(t *testing.T) {
	m := NewVarMap()
	m.Set("companyName", "Acme Corp")
	m.SetGroup("founders", []LoopItem{{"name": "Jane Doe", "isIndividual": true}})

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Acme Corp", out["companyName"])

	founders, ok := out["founders"].([]any)
	require.True(t, ok)
	require.Len(t, founders, 1)
	first := founders[0].(map[string]any)
	assert.Equal(t, "Jane Doe", first["name"])
	assert.Equal(t, true, first["isIndividual"])
}
