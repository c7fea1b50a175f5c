package engine

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inkwell-docs/inkwell/internal/format"
	"github.com/inkwell-docs/inkwell/internal/formula"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// List transform rules accepted on group and multi-select mappings.
const (
	transformListAnd     = "list_and"
	transformListOr      = "list_or"
	transformListComma   = "list_comma"
	transformListNewline = "list_newline"
)

// applyMappings resolves every variable mapping against the answers and
// the variables generated so far. Calculated mappings are deferred so
// their formulas can reference variables any mapping produces, regardless
// of declaration order.
func (t *Transformer) applyMappings(s *runState) {
	for _, m := range s.mappings {
		switch {
		case m.QuestionID == ir.QuestionCalculated:
			s.deferred = append(s.deferred, m)
		case m.QuestionID == ir.QuestionAuto:
			t.applyAutoMapping(s, m)
		case m.QuestionID == ir.QuestionManual:
			// Admin fills manual variables directly; the mapping only
			// backfills the default.
			if !s.vars.Has(m.VariableName) && m.DefaultValue != "" {
				s.vars.Set(m.VariableName, m.DefaultValue)
			}
		case ir.IsSentinelID(m.QuestionID):
			t.applySentinelMapping(s, m)
		default:
			t.applyQuestionMapping(s, m)
		}
	}
}

// applyCalculated evaluates the deferred formula mappings against the
// variable map built by every earlier stage.
func (t *Transformer) applyCalculated(s *runState) {
	for _, m := range s.deferred {
		result := formula.Evaluate(m.Formula, s.vars.Get)
		if result == "" {
			t.log.Debug("formula produced no result",
				zap.String("variable", m.VariableName),
				zap.String("formula", m.Formula))
			t.applyFallback(s, m)
			continue
		}
		s.vars.Set(m.VariableName, t.applyDataType(m, result))
	}
}

// applyAutoMapping re-transforms a variable that group or alias expansion
// already produced.
func (t *Transformer) applyAutoMapping(s *runState, m ir.VariableMapping) {
	v, ok := s.vars.Get(m.VariableName)
	if !ok {
		t.applyFallback(s, m)
		return
	}
	s.vars.Set(m.VariableName, t.applyDataType(m, v))
}

// applySentinelMapping resolves a "__"-prefixed question reference:
// a dotted repeating-group reference, an indexed reference, a group count,
// or an admin-set override answered under its sentinel id.
func (t *Transformer) applySentinelMapping(s *runState, m ir.VariableMapping) {
	ref := strings.TrimPrefix(m.QuestionID, ir.SentinelPrefix)

	if strings.Contains(ref, ".") {
		t.applyGroupReference(s, m, ref)
		return
	}

	if group, ok := strings.CutSuffix(ref, "Count"); ok {
		if v, found := s.computed[group+"Count"]; found {
			s.vars.Set(m.VariableName, t.applyDataType(m, v))
			return
		}
		t.applyFallback(s, m)
		return
	}

	// Admin overrides (__COIDate, __fairMarketValue, ...) arrive as
	// responses keyed by the sentinel id itself.
	if v, ok := s.rs.Scalar(m.QuestionID); ok {
		s.vars.Set(m.VariableName, t.applyDataType(m, v))
		return
	}
	t.applyFallback(s, m)
}

// applyGroupReference resolves "__{group}.{field}" into a joined list and
// "__{singular}.{N}.{field}" into the matching per-index alias.
func (t *Transformer) applyGroupReference(s *runState, m ir.VariableMapping, ref string) {
	parts := strings.Split(ref, ".")
	switch len(parts) {
	case 2:
		group, ok := s.rs.Group(parts[0])
		if !ok {
			t.applyFallback(s, m)
			return
		}
		values := make([]string, 0, len(group))
		for _, item := range group {
			values = append(values, formatGroupField(parts[0], item, parts[1]))
		}
		s.vars.Set(m.VariableName, joinByRule(values, m.TransformRule))

	case 3:
		// {singular}.{N}.{field} resolves to the {singular}{N}{Field}
		// alias emitted by group expansion.
		alias := parts[0] + parts[1] + format.FirstUpper(parts[2])
		v, ok := s.vars.Get(alias)
		if !ok {
			t.log.Debug("indexed group reference not found",
				zap.String("variable", m.VariableName),
				zap.String("alias", alias))
			t.applyFallback(s, m)
			return
		}
		s.vars.Set(m.VariableName, v)

	default:
		t.applyFallback(s, m)
	}
}

// applyQuestionMapping resolves a mapping that names a real answered
// question.
func (t *Transformer) applyQuestionMapping(s *runState, m ir.VariableMapping) {
	v, ok := s.rs.Get(m.QuestionID)
	if !ok {
		t.applyFallback(s, m)
		return
	}

	switch val := v.(type) {
	case ir.Scalar:
		s.vars.Set(m.VariableName, t.applyDataType(m, string(val)))
	case ir.MultiSelect:
		// A plain array answer produces the main join plus list-helper
		// variables for templates that want a different shape.
		s.vars.Set(m.VariableName, joinByRule(val, m.TransformRule))
		s.vars.SetIfAbsent(m.VariableName+"List", format.JoinComma(val))
		s.vars.SetIfAbsent(m.VariableName+"OrList", format.JoinOr(val))
	case ir.Group:
		// Group answers are referenced through dotted sentinels, not
		// directly.
		t.applyFallback(s, m)
	}
}

// applyFallback stores the mapping's default, if any. A mapping that
// resolves nowhere and has no default stays unset so validation can
// report it as missing.
func (t *Transformer) applyFallback(s *runState, m ir.VariableMapping) {
	if m.DefaultValue != "" {
		s.vars.Set(m.VariableName, m.DefaultValue)
	}
}

// joinByRule joins list values per the mapping's transform rule,
// defaulting to the prose "and" join.
func joinByRule(values []string, rule string) string {
	switch rule {
	case transformListOr:
		return format.JoinOr(values)
	case transformListComma:
		return format.JoinComma(values)
	case transformListNewline:
		return format.JoinNewline(values)
	default:
		return format.JoinAnd(values)
	}
}

// Text transform rules accepted on text mappings.
const (
	transformUppercase  = "uppercase"
	transformLowercase  = "lowercase"
	transformCapitalize = "capitalize"
	transformCorporate  = "corporate"
	transformTrim       = "trim"
)

// Number transform rules spelling a numeric value out in words.
const (
	transformWords       = "words"
	transformWordsKorean = "words_korean"
	transformOrdinal     = "ordinal"
)

// applyDataType formats a resolved value per the mapping's data type and
// transform rule. Unknown rules pass the value through untouched rather
// than failing the document.
func (t *Transformer) applyDataType(m ir.VariableMapping, value string) string {
	switch m.DataType {
	case ir.DataTypeDate:
		return format.FormatDate(value, m.TransformRule)
	case ir.DataTypeNumber:
		return formatNumberByRule(value, m.TransformRule)
	case ir.DataTypeCurrency:
		return format.FormatCurrency(value)
	case ir.DataTypePhone:
		style := m.TransformRule
		if style == "" {
			style = format.PhoneDashed
		}
		return format.FormatPhone(value, style)
	case ir.DataTypeEmail:
		return strings.ToLower(strings.TrimSpace(value))
	case ir.DataTypeList:
		// A scalar under a list mapping is a one-item list.
		return strings.TrimSpace(value)
	default:
		return applyTextRule(value, m.TransformRule)
	}
}

// formatNumberByRule renders a number as grouped digits or as words.
func formatNumberByRule(value, rule string) string {
	switch rule {
	case transformWords:
		if n, ok := parseInt(value); ok {
			return format.NumberToEnglishWords(n)
		}
		return ""
	case transformWordsKorean:
		if n, ok := parseInt(value); ok {
			return format.NumberToKoreanWords(n)
		}
		return ""
	case transformOrdinal:
		if n, ok := parseInt(value); ok {
			return format.OrdinalWords(int(n))
		}
		return ""
	default:
		return format.FormatNumberWithComma(value)
	}
}

// applyTextRule applies a text-case transform.
func applyTextRule(value, rule string) string {
	switch rule {
	case transformUppercase:
		return strings.ToUpper(value)
	case transformLowercase:
		return strings.ToLower(value)
	case transformCapitalize:
		return format.TitleCase(value)
	case transformCorporate:
		return format.CorporateCapitalize(value)
	case transformTrim:
		return strings.TrimSpace(value)
	default:
		return value
	}
}

// parseInt reads a numeric string (possibly formatted with commas or a
// currency sign) as an integer, truncating any decimal part.
func parseInt(value string) (int64, bool) {
	f, ok := parseNumber(value)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// parseNumber reads a numeric string, tolerating the "$" prefix and comma
// grouping earlier formatting stages add.
func parseNumber(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
