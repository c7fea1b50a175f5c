package ir

import (
	"encoding/json"
	"sort"
)

// LoopItem is one record of a loop-ready group array handed to the
// document renderer. Values are strings for substitution plus booleans
// for section flags (first, last, isCorporation, ...).
type LoopItem map[string]any

// CloneLoopItem returns a shallow copy of the item.
func CloneLoopItem(item LoopItem) LoopItem {
	out := make(LoopItem, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

// VarMap is the engine's output: a flat variable-name -> formatted-string
// map plus, for repeating groups, loop-ready arrays of records consumed by
// the renderer's {#group}...{/group} expansion.
//
// String keys fan out into case-insensitive aliases (see the alias stage);
// group entries are passed through unchanged.
type VarMap struct {
	values map[string]string
	groups map[string][]LoopItem
}

// NewVarMap creates an empty variable map.
func NewVarMap() *VarMap {
	return &VarMap{
		values: make(map[string]string),
		groups: make(map[string][]LoopItem),
	}
}

// Set stores a string variable, overwriting any existing value.
func (m *VarMap) Set(name, value string) {
	m.values[name] = value
}

// SetIfAbsent stores a string variable only when the name is unset.
// Returns true when the value was stored.
func (m *VarMap) SetIfAbsent(name, value string) bool {
	if _, ok := m.values[name]; ok {
		return false
	}
	m.values[name] = value
	return true
}

// Get returns a string variable.
func (m *VarMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Lookup returns the variable value or "" when unset.
func (m *VarMap) Lookup(name string) string {
	return m.values[name]
}

// Has reports whether a string variable is set.
func (m *VarMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// SetGroup stores a loop-ready group array, overwriting any existing one.
func (m *VarMap) SetGroup(name string, items []LoopItem) {
	m.groups[name] = items
}

// Group returns a loop-ready group array.
func (m *VarMap) Group(name string) ([]LoopItem, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// Names returns all string variable names, sorted.
func (m *VarMap) Names() []string {
	out := make([]string, 0, len(m.values))
	for k := range m.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GroupNames returns all group array names, sorted.
func (m *VarMap) GroupNames() []string {
	out := make([]string, 0, len(m.groups))
	for k := range m.groups {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of string variables.
func (m *VarMap) Len() int {
	return len(m.values)
}

// Clone returns a deep copy of the string variables and a per-item shallow
// copy of the group arrays. Used by per-person expansion so each person's
// overlay never leaks into the base map.
func (m *VarMap) Clone() *VarMap {
	out := NewVarMap()
	for k, v := range m.values {
		out.values[k] = v
	}
	for k, items := range m.groups {
		copied := make([]LoopItem, len(items))
		for i, item := range items {
			copied[i] = CloneLoopItem(item)
		}
		out.groups[k] = copied
	}
	return out
}

// MarshalJSON renders the map with sorted keys so snapshots are
// deterministic. Group arrays are embedded under their names alongside
// the string variables, matching what the renderer receives.
func (m *VarMap) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(m.values)+len(m.groups))
	for k, v := range m.values {
		flat[k] = v
	}
	for k, g := range m.groups {
		flat[k] = g
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// encoding/json sorts map keys itself, but building the ordered
	// document explicitly keeps golden files stable if that ever changes.
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		b, err := json.Marshal(flat[k])
		if err != nil {
			return nil, err
		}
		out[k] = b
	}
	return json.Marshal(out)
}
