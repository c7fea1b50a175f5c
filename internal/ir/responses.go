package ir

import "sort"

// ResponseSet indexes survey responses by question id with last-write-wins
// semantics. It is a read-only view; the engine never mutates the
// underlying responses.
type ResponseSet struct {
	byID  map[string]Value
	order []string
}

// NewResponseSet builds an index over the given responses. Duplicate
// question ids keep the last value but the first position.
func NewResponseSet(responses []SurveyResponse) *ResponseSet {
	rs := &ResponseSet{byID: make(map[string]Value, len(responses))}
	for _, r := range responses {
		if r.QuestionID == "" || r.Value == nil {
			continue
		}
		if _, seen := rs.byID[r.QuestionID]; !seen {
			rs.order = append(rs.order, r.QuestionID)
		}
		rs.byID[r.QuestionID] = r.Value
	}
	return rs
}

// Get returns the raw value for a question id.
func (rs *ResponseSet) Get(questionID string) (Value, bool) {
	v, ok := rs.byID[questionID]
	return v, ok
}

// Scalar returns the scalar answer for a question id. A multi-select or
// repeating-group answer is not a scalar.
func (rs *ResponseSet) Scalar(questionID string) (string, bool) {
	v, ok := rs.byID[questionID]
	if !ok {
		return "", false
	}
	s, ok := v.(Scalar)
	return string(s), ok
}

// MultiSelect returns the multi-select answer for a question id.
func (rs *ResponseSet) MultiSelect(questionID string) (MultiSelect, bool) {
	v, ok := rs.byID[questionID]
	if !ok {
		return nil, false
	}
	m, ok := v.(MultiSelect)
	return m, ok
}

// Group returns the repeating-group answer for a question id.
func (rs *ResponseSet) Group(questionID string) (Group, bool) {
	v, ok := rs.byID[questionID]
	if !ok {
		return nil, false
	}
	g, ok := v.(Group)
	return g, ok
}

// QuestionIDs returns all answered question ids in submission order.
func (rs *ResponseSet) QuestionIDs() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// GroupIDs returns the question ids of all repeating-group answers,
// sorted for deterministic iteration.
func (rs *ResponseSet) GroupIDs() []string {
	var out []string
	for id, v := range rs.byID {
		if _, ok := v.(Group); ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct answered questions.
func (rs *ResponseSet) Len() int {
	return len(rs.byID)
}
