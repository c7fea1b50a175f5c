package ir

import (
	"encoding/json"
	"fmt"
)

// Value is a sealed interface representing the three answer shapes a survey
// can produce. Only Scalar, MultiSelect, and Group implement it.
//
// The variant is closed on purpose: every consumer type-switches over
// exactly these three cases instead of probing with reflection. A new
// answer shape is a breaking change to the whole pipeline and must be
// added here first.
type Value interface {
	answerValue() // Sealed - only these types implement it
}

// Scalar is a single free-text answer.
type Scalar string

func (Scalar) answerValue() {}

// MultiSelect is an ordered list of chosen options.
type MultiSelect []string

func (MultiSelect) answerValue() {}

// GroupItem is one record of a repeating group. Keys are field names
// (name, address, email, type, cash, ceoName, ...), values are raw strings.
type GroupItem map[string]string

// Group is an ordered sequence of person-like records, e.g. the answer to
// a "list your founders" question.
type Group []GroupItem

func (Group) answerValue() {}

// Field returns the named field of a group item, or "" when absent.
func (gi GroupItem) Field(name string) string {
	return gi[name]
}

// Clone returns a shallow copy of the item. Derived fields are injected
// into copies so the raw survey record is never mutated.
func (gi GroupItem) Clone() GroupItem {
	out := make(GroupItem, len(gi))
	for k, v := range gi {
		out[k] = v
	}
	return out
}

// MarshalValue serializes a Value to JSON bytes.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Scalar:
		return json.Marshal(string(val))
	case MultiSelect:
		return json.Marshal([]string(val))
	case Group:
		return json.Marshal([]GroupItem(val))
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

// UnmarshalValue decodes JSON into the matching Value variant.
//
// Shape detection follows the wire format, not guessing:
//   - JSON string        -> Scalar
//   - array of strings   -> MultiSelect
//   - array of objects   -> Group
//
// A heterogeneous array (mixed strings and objects) is rejected. Numbers
// and booleans are accepted as scalars by string conversion because
// upstream question widgets are not strict about quoting.
func UnmarshalValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return Scalar(s), nil

	case '[':
		return unmarshalSequence(data)

	case 't', 'f', 'n':
		var b any
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		if b == nil {
			return Scalar(""), nil
		}
		return Scalar(fmt.Sprintf("%v", b)), nil

	case '{':
		return nil, fmt.Errorf("bare object is not a valid answer value")

	default:
		// Number - keep the raw text so precision survives round-trips.
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return Scalar(n.String()), nil
	}
}

// unmarshalSequence decodes a JSON array into MultiSelect or Group
// depending on the element type.
func unmarshalSequence(data []byte) (Value, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return MultiSelect{}, nil
	}

	switch raw[0][0] {
	case '"':
		out := make(MultiSelect, len(raw))
		for i, elem := range raw {
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				return nil, fmt.Errorf("array index %d: %w", i, err)
			}
			out[i] = s
		}
		return out, nil

	case '{':
		out := make(Group, len(raw))
		for i, elem := range raw {
			item, err := unmarshalGroupItem(elem)
			if err != nil {
				return nil, fmt.Errorf("array index %d: %w", i, err)
			}
			out[i] = item
		}
		return out, nil

	default:
		return nil, fmt.Errorf("array elements must be strings or records, got %s", string(raw[0]))
	}
}

// unmarshalGroupItem decodes one group record. Non-string field values
// (numbers, booleans) are stringified; nested structures are rejected.
func unmarshalGroupItem(data []byte) (GroupItem, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	item := make(GroupItem, len(raw))
	for k, v := range raw {
		if len(v) == 0 {
			continue
		}
		switch v[0] {
		case '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			item[k] = s
		case '[', '{':
			return nil, fmt.Errorf("field %q: nested structures are not allowed in group records", k)
		case 'n':
			item[k] = ""
		default:
			var n any
			if err := json.Unmarshal(v, &n); err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			item[k] = fmt.Sprintf("%v", n)
		}
	}
	return item, nil
}
