package engine

import (
	"strconv"
	"strings"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// evalCondition evaluates one rule condition against the answer set and
// the computed-variable table.
//
// The actual value comes from either a real answer (sourceType=question)
// or a derived count/flag (sourceType=computed). The operand comes from a
// literal or from another answer (valueType=question).
//
// A missing actual value makes the condition false - except under "!=",
// which is true: unset is different from anything.
func evalCondition(c ir.RuleCondition, rs *ir.ResponseSet, computed map[string]string) bool {
	actual, ok := resolveActual(c, rs, computed)
	if !ok {
		return c.Operator == ir.OpNotEquals
	}

	operand, ok := resolveOperand(c, rs)
	if !ok {
		return c.Operator == ir.OpNotEquals
	}

	switch c.Operator {
	case ir.OpEquals:
		return looseEquals(actual, operand)
	case ir.OpNotEquals:
		return !looseEquals(actual, operand)
	case ir.OpContains:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(operand))
	case ir.OpNotContains:
		return !strings.Contains(strings.ToLower(actual), strings.ToLower(operand))
	case ir.OpIn:
		return inList(actual, operand)
	case ir.OpGreater, ir.OpGreaterEq, ir.OpLess, ir.OpLessEq:
		return compareNumeric(c.Operator, actual, operand)
	default:
		return false
	}
}

// resolveActual finds the condition's left-hand value.
func resolveActual(c ir.RuleCondition, rs *ir.ResponseSet, computed map[string]string) (string, bool) {
	if c.SourceType == ir.SourceTypeComputed {
		v, ok := computed[c.QuestionID]
		return v, ok
	}
	return responseText(rs, c.QuestionID)
}

// resolveOperand finds the condition's right-hand value.
func resolveOperand(c ir.RuleCondition, rs *ir.ResponseSet) (string, bool) {
	if c.ValueType == ir.ValueTypeQuestion {
		return responseText(rs, c.ValueQuestionID)
	}
	return c.Value, true
}

// responseText reads an answer as comparison text. Multi-selects join
// with commas so "contains" and "in" see every chosen option; repeating
// groups have no scalar reading and count as missing.
func responseText(rs *ir.ResponseSet, questionID string) (string, bool) {
	v, ok := rs.Get(questionID)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case ir.Scalar:
		return string(val), true
	case ir.MultiSelect:
		return strings.Join(val, ","), true
	case ir.Group:
		return "", false
	default:
		return "", false
	}
}

// looseEquals compares numerically when both sides parse as numbers,
// case-insensitively otherwise. "Delaware" equals "delaware"; "5" equals
// "5.0".
func looseEquals(a, b string) bool {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		return fa == fb
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// inList treats the operand as a comma-separated allow-list.
func inList(actual, operand string) bool {
	for _, item := range strings.Split(operand, ",") {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(actual)) {
			return true
		}
	}
	return false
}

// compareNumeric applies an ordering operator. Both operands must parse
// as numbers; otherwise the condition is false.
func compareNumeric(op ir.Operator, a, b string) bool {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA != nil || errB != nil {
		return false
	}
	switch op {
	case ir.OpGreater:
		return fa > fb
	case ir.OpGreaterEq:
		return fa >= fb
	case ir.OpLess:
		return fa < fb
	case ir.OpLessEq:
		return fa <= fb
	default:
		return false
	}
}
