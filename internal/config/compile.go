package config

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// CompileError is a template compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileTemplate parses one evaluated CUE template value into an
// ir.Template. The value is the template struct itself; its id comes from
// the struct label:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`template: boardConsent: { ... }`)
//	tpl, err := CompileTemplate(v.LookupPath(cue.ParsePath("template.boardConsent")))
func CompileTemplate(v cue.Value) (*ir.Template, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tpl := &ir.Template{IsActive: true}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		tpl.ID = labels[len(labels)-1].String()
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	tpl.Name = name

	if activeVal := v.LookupPath(cue.ParsePath("active")); activeVal.Exists() {
		active, err := activeVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		tpl.IsActive = active
	}

	if repeatVal := v.LookupPath(cue.ParsePath("repeatForPersons")); repeatVal.Exists() {
		repeat, err := repeatVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		tpl.RepeatForPersons = repeat
	}

	if filterVal := v.LookupPath(cue.ParsePath("personTypeFilter")); filterVal.Exists() {
		filter, err := filterVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if !ir.ValidPersonFilters[filter] {
			return nil, &CompileError{
				Field:   "personTypeFilter",
				Message: fmt.Sprintf("unknown person filter %q", filter),
				Pos:     filterVal.Pos(),
			}
		}
		tpl.PersonTypeFilter = filter
	}

	tpl.Rules, err = parseRules(v)
	if err != nil {
		return nil, err
	}

	tpl.Variables, err = parseVariables(v)
	if err != nil {
		return nil, err
	}

	return tpl, nil
}

// parseRules extracts the selection rules. Rules are optional: a template
// without rules scores zero and lands in the optional bucket.
func parseRules(v cue.Value) ([]ir.SelectionRule, error) {
	rulesVal := v.LookupPath(cue.ParsePath("rule"))
	if !rulesVal.Exists() {
		return nil, nil
	}

	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rules []ir.SelectionRule
	for iter.Next() {
		rule, err := parseRule(iter.Value())
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseRule(v cue.Value) (ir.SelectionRule, error) {
	var rule ir.SelectionRule

	if pVal := v.LookupPath(cue.ParsePath("priority")); pVal.Exists() {
		p, err := pVal.Int64()
		if err != nil {
			return rule, formatCUEError(err)
		}
		rule.Priority = int(p)
	}

	if opVal := v.LookupPath(cue.ParsePath("logicalOperator")); opVal.Exists() {
		op, err := opVal.String()
		if err != nil {
			return rule, formatCUEError(err)
		}
		if op != ir.LogicalAnd && op != ir.LogicalOr {
			return rule, &CompileError{
				Field:   "rule.logicalOperator",
				Message: fmt.Sprintf("must be %q or %q, got %q", ir.LogicalAnd, ir.LogicalOr, op),
				Pos:     opVal.Pos(),
			}
		}
		rule.LogicalOperator = op
	}

	for _, flag := range []struct {
		path string
		dst  *bool
	}{
		{"alwaysInclude", &rule.IsAlwaysInclude},
		{"manualOnly", &rule.IsManualOnly},
	} {
		if fVal := v.LookupPath(cue.ParsePath(flag.path)); fVal.Exists() {
			b, err := fVal.Bool()
			if err != nil {
				return rule, formatCUEError(err)
			}
			*flag.dst = b
		}
	}

	whenVal := v.LookupPath(cue.ParsePath("when"))
	if whenVal.Exists() {
		iter, err := whenVal.List()
		if err != nil {
			return rule, formatCUEError(err)
		}
		for iter.Next() {
			cond, err := parseCondition(iter.Value())
			if err != nil {
				return rule, err
			}
			rule.Conditions = append(rule.Conditions, cond)
		}
	}

	if len(rule.Conditions) == 0 && !rule.IsAlwaysInclude && !rule.IsManualOnly {
		return rule, &CompileError{
			Field:   "rule.when",
			Message: "a rule needs conditions, alwaysInclude, or manualOnly",
			Pos:     v.Pos(),
		}
	}

	return rule, nil
}

func parseCondition(v cue.Value) (ir.RuleCondition, error) {
	var cond ir.RuleCondition

	questionVal := v.LookupPath(cue.ParsePath("question"))
	if !questionVal.Exists() {
		return cond, &CompileError{
			Field:   "when.question",
			Message: "condition question is required",
			Pos:     v.Pos(),
		}
	}
	question, err := questionVal.String()
	if err != nil {
		return cond, formatCUEError(err)
	}
	cond.QuestionID = question

	opVal := v.LookupPath(cue.ParsePath("operator"))
	if !opVal.Exists() {
		return cond, &CompileError{
			Field:   "when.operator",
			Message: "condition operator is required",
			Pos:     v.Pos(),
		}
	}
	op, err := opVal.String()
	if err != nil {
		return cond, formatCUEError(err)
	}
	if !ir.ValidOperators[ir.Operator(op)] {
		return cond, &CompileError{
			Field:   "when.operator",
			Message: fmt.Sprintf("unknown operator %q", op),
			Pos:     opVal.Pos(),
		}
	}
	cond.Operator = ir.Operator(op)

	if valueVal := v.LookupPath(cue.ParsePath("value")); valueVal.Exists() {
		value, err := valueVal.String()
		if err != nil {
			return cond, formatCUEError(err)
		}
		cond.Value = value
	}

	if vtVal := v.LookupPath(cue.ParsePath("valueType")); vtVal.Exists() {
		vt, err := vtVal.String()
		if err != nil {
			return cond, formatCUEError(err)
		}
		if vt != ir.ValueTypeLiteral && vt != ir.ValueTypeQuestion {
			return cond, &CompileError{
				Field:   "when.valueType",
				Message: fmt.Sprintf("must be %q or %q, got %q", ir.ValueTypeLiteral, ir.ValueTypeQuestion, vt),
				Pos:     vtVal.Pos(),
			}
		}
		cond.ValueType = vt
	}

	if vqVal := v.LookupPath(cue.ParsePath("valueQuestion")); vqVal.Exists() {
		vq, err := vqVal.String()
		if err != nil {
			return cond, formatCUEError(err)
		}
		cond.ValueQuestionID = vq
	}

	if stVal := v.LookupPath(cue.ParsePath("sourceType")); stVal.Exists() {
		st, err := stVal.String()
		if err != nil {
			return cond, formatCUEError(err)
		}
		if st != ir.SourceTypeQuestion && st != ir.SourceTypeComputed {
			return cond, &CompileError{
				Field:   "when.sourceType",
				Message: fmt.Sprintf("must be %q or %q, got %q", ir.SourceTypeQuestion, ir.SourceTypeComputed, st),
				Pos:     stVal.Pos(),
			}
		}
		cond.SourceType = st
	}

	return cond, nil
}

// parseVariables extracts the variable mappings.
func parseVariables(v cue.Value) ([]ir.VariableMapping, error) {
	varsVal := v.LookupPath(cue.ParsePath("variable"))
	if !varsVal.Exists() {
		return nil, nil
	}

	iter, err := varsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var mappings []ir.VariableMapping
	for iter.Next() {
		m, err := parseVariable(iter.Value())
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

func parseVariable(v cue.Value) (ir.VariableMapping, error) {
	var m ir.VariableMapping

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return m, &CompileError{
			Field:   "variable.name",
			Message: "variable name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return m, formatCUEError(err)
	}
	m.VariableName = name

	questionVal := v.LookupPath(cue.ParsePath("question"))
	if !questionVal.Exists() {
		return m, &CompileError{
			Field:   "variable.question",
			Message: fmt.Sprintf("variable %q: question is required", name),
			Pos:     v.Pos(),
		}
	}
	question, err := questionVal.String()
	if err != nil {
		return m, formatCUEError(err)
	}
	m.QuestionID = question

	if dtVal := v.LookupPath(cue.ParsePath("dataType")); dtVal.Exists() {
		dt, err := dtVal.String()
		if err != nil {
			return m, formatCUEError(err)
		}
		if !ir.ValidDataTypes[ir.DataType(dt)] {
			return m, &CompileError{
				Field:   "variable.dataType",
				Message: fmt.Sprintf("variable %q: unknown data type %q", name, dt),
				Pos:     dtVal.Pos(),
			}
		}
		m.DataType = ir.DataType(dt)
	}

	for _, field := range []struct {
		path string
		dst  *string
	}{
		{"transform", &m.TransformRule},
		{"default", &m.DefaultValue},
		{"formula", &m.Formula},
	} {
		if fVal := v.LookupPath(cue.ParsePath(field.path)); fVal.Exists() {
			s, err := fVal.String()
			if err != nil {
				return m, formatCUEError(err)
			}
			*field.dst = s
		}
	}

	if reqVal := v.LookupPath(cue.ParsePath("required")); reqVal.Exists() {
		req, err := reqVal.Bool()
		if err != nil {
			return m, formatCUEError(err)
		}
		m.Required = req
	}

	if m.QuestionID == ir.QuestionCalculated && m.Formula == "" {
		return m, &CompileError{
			Field:   "variable.formula",
			Message: fmt.Sprintf("variable %q: calculated variables need a formula", name),
			Pos:     v.Pos(),
		}
	}

	return m, nil
}

// formatCUEError extracts position info from CUE evaluation errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
