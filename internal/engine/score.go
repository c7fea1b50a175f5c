package engine

import (
	"sort"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Score is the outcome of evaluating a template's selection rules.
type Score struct {
	// Value is the fraction of rules (not conditions) that matched,
	// in 0..1.
	Value float64

	// AlwaysInclude is set when any rule short-circuits the template
	// into the required bucket.
	AlwaysInclude bool

	// ManualOnly is set when the template must never be auto-selected.
	ManualOnly bool
}

// ScoreTemplate aggregates a template's rules into a match score.
//
// Short circuits, in order: any always-include rule forces 1.0 regardless
// of every other rule; otherwise any manual-only rule forces 0 with the
// manual flag set. Otherwise each rule with at least one condition is
// evaluated under its logical operator and the score is matched rules over
// total rules.
//
// Rules are evaluated in ascending priority. Priority does not affect the
// score today - only whether each rule matched matters - but the ordering
// is kept for compatibility with planned tie-breaking.
func ScoreTemplate(tpl ir.Template, rs *ir.ResponseSet, computed map[string]string) Score {
	if len(tpl.Rules) == 0 {
		return Score{}
	}

	for _, rule := range tpl.Rules {
		if rule.IsAlwaysInclude {
			return Score{Value: 1.0, AlwaysInclude: true}
		}
	}
	for _, rule := range tpl.Rules {
		if rule.IsManualOnly {
			return Score{ManualOnly: true}
		}
	}

	ordered := make([]ir.SelectionRule, len(tpl.Rules))
	copy(ordered, tpl.Rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	total := 0
	matched := 0
	for _, rule := range ordered {
		if len(rule.Conditions) == 0 {
			continue
		}
		total++
		if evalRule(rule, rs, computed) {
			matched++
		}
	}
	if total == 0 {
		return Score{}
	}
	return Score{Value: float64(matched) / float64(total)}
}

// evalRule combines a rule's conditions under its logical operator:
// AND requires every condition, OR requires at least one. An unset
// operator defaults to AND.
func evalRule(rule ir.SelectionRule, rs *ir.ResponseSet, computed map[string]string) bool {
	if rule.LogicalOperator == ir.LogicalOr {
		for _, c := range rule.Conditions {
			if evalCondition(c, rs, computed) {
				return true
			}
		}
		return false
	}
	for _, c := range rule.Conditions {
		if !evalCondition(c, rs, computed) {
			return false
		}
	}
	return true
}
