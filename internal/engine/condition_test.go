package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

func testResponses() *ir.ResponseSet {
	return ir.NewResponseSet([]ir.SurveyResponse{
		{QuestionID: "state", Value: ir.Scalar("Delaware")},
		{QuestionID: "foundersCountAnswer", Value: ir.Scalar("5")},
		{QuestionID: "minimum", Value: ir.Scalar("3")},
		{QuestionID: "industries", Value: ir.MultiSelect{"Software", "Biotech"}},
		{QuestionID: "founders", Value: ir.Group{{"name": "jane"}}},
	})
}

func TestEvalCondition_Equality(t *testing.T) {
	rs := testResponses()

	testCases := []struct {
		name string
		cond ir.RuleCondition
		want bool
	}{
		{
			"case-insensitive equals",
			ir.RuleCondition{QuestionID: "state", Operator: ir.OpEquals, Value: "delaware"},
			true,
		},
		{
			"not equals on differing value",
			ir.RuleCondition{QuestionID: "state", Operator: ir.OpNotEquals, Value: "Nevada"},
			true,
		},
		{
			"numeric coercion for equals",
			ir.RuleCondition{QuestionID: "foundersCountAnswer", Operator: ir.OpEquals, Value: "5.0"},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evalCondition(tc.cond, rs, nil))
		})
	}
}

func TestEvalCondition_MissingAnswer(t *testing.T) {
	rs := testResponses()

	// Unset is different from anything: only != is true.
	cond := ir.RuleCondition{QuestionID: "nothing", Operator: ir.OpNotEquals, Value: "x"}
	assert.True(t, evalCondition(cond, rs, nil))

	for _, op := range []ir.Operator{ir.OpEquals, ir.OpContains, ir.OpIn, ir.OpGreater, ir.OpLessEq} {
		cond := ir.RuleCondition{QuestionID: "nothing", Operator: op, Value: "x"}
		assert.False(t, evalCondition(cond, rs, nil), "operator %s", op)
	}
}

func TestEvalCondition_GroupAnswerCountsAsMissing(t *testing.T) {
	rs := testResponses()
	cond := ir.RuleCondition{QuestionID: "founders", Operator: ir.OpEquals, Value: "jane"}
	assert.False(t, evalCondition(cond, rs, nil))
}

func TestEvalCondition_Ordering(t *testing.T) {
	rs := testResponses()

	testCases := []struct {
		name string
		cond ir.RuleCondition
		want bool
	}{
		{
			"numeric greater",
			ir.RuleCondition{QuestionID: "foundersCountAnswer", Operator: ir.OpGreater, Value: "3"},
			true,
		},
		{
			"numeric less-equal false",
			ir.RuleCondition{QuestionID: "foundersCountAnswer", Operator: ir.OpLessEq, Value: "4"},
			false,
		},
		{
			"non-numeric operand is false",
			ir.RuleCondition{QuestionID: "state", Operator: ir.OpGreater, Value: "Alaska"},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evalCondition(tc.cond, rs, nil))
		})
	}
}

func TestEvalCondition_InList(t *testing.T) {
	rs := testResponses()
	cond := ir.RuleCondition{
		QuestionID: "state",
		Operator:   ir.OpIn,
		Value:      "California, delaware , Nevada",
	}
	assert.True(t, evalCondition(cond, rs, nil))

	cond.Value = "California, Nevada"
	assert.False(t, evalCondition(cond, rs, nil))
}

func TestEvalCondition_ContainsOnMultiSelect(t *testing.T) {
	rs := testResponses()
	cond := ir.RuleCondition{QuestionID: "industries", Operator: ir.OpContains, Value: "biotech"}
	assert.True(t, evalCondition(cond, rs, nil))

	cond = ir.RuleCondition{QuestionID: "industries", Operator: ir.OpNotContains, Value: "finance"}
	assert.True(t, evalCondition(cond, rs, nil))
}

func TestEvalCondition_QuestionOperand(t *testing.T) {
	rs := testResponses()
	cond := ir.RuleCondition{
		QuestionID:      "foundersCountAnswer",
		Operator:        ir.OpGreater,
		ValueType:       ir.ValueTypeQuestion,
		ValueQuestionID: "minimum",
	}
	assert.True(t, evalCondition(cond, rs, nil), "5 > 3 via numeric coercion")
}

func TestEvalCondition_ComputedSource(t *testing.T) {
	rs := testResponses()
	computed := map[string]string{"foundersCount": "1", "hasIndividualFounder": "true"}

	cond := ir.RuleCondition{
		QuestionID: "hasIndividualFounder",
		Operator:   ir.OpEquals,
		Value:      "true",
		SourceType: ir.SourceTypeComputed,
	}
	assert.True(t, evalCondition(cond, rs, computed))

	// A computed source never falls back to the answers.
	cond.QuestionID = "state"
	cond.Value = "Delaware"
	assert.False(t, evalCondition(cond, rs, computed))
}
