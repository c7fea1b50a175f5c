package ir

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SurveyResponse is one answered question. QuestionID is unique within a
// response set; when duplicated, the last response wins.
type SurveyResponse struct {
	QuestionID string `json:"question_id"`
	Value      Value  `json:"value"`
}

// surveyResponseJSON mirrors SurveyResponse for wire decoding, deferring
// the polymorphic value field.
type surveyResponseJSON struct {
	QuestionID string          `json:"question_id"`
	Value      json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler for SurveyResponse.
func (r SurveyResponse) MarshalJSON() ([]byte, error) {
	val, err := MarshalValue(r.Value)
	if err != nil {
		return nil, fmt.Errorf("response %q: %w", r.QuestionID, err)
	}
	return json.Marshal(surveyResponseJSON{QuestionID: r.QuestionID, Value: val})
}

// UnmarshalJSON implements json.Unmarshaler for SurveyResponse.
func (r *SurveyResponse) UnmarshalJSON(data []byte) error {
	var raw surveyResponseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, err := UnmarshalValue(raw.Value)
	if err != nil {
		return fmt.Errorf("response %q: %w", raw.QuestionID, err)
	}
	r.QuestionID = raw.QuestionID
	r.Value = val
	return nil
}

// Sentinel question ids carried by VariableMapping.QuestionID. A sentinel
// tells the transformation engine where the value comes from instead of
// naming a real answered question.
const (
	// QuestionManual marks a variable the admin fills in directly; the
	// mapping only supplies a default when nothing was entered.
	QuestionManual = "__manual__"

	// QuestionCalculated marks a variable produced by evaluating the
	// mapping's Formula against the variable map built so far.
	QuestionCalculated = "__calculated__"

	// QuestionAuto marks a variable already produced by group or alias
	// expansion; the mapping only applies a transform on top.
	QuestionAuto = "__auto__"
)

// Admin-set override sentinels. These arrive as regular responses whose
// question id starts with "__" and are resolved by dedicated pipeline
// stages rather than by mapping application.
const (
	SentinelCOIDate         = "__COIDate"
	SentinelSignDate        = "__SIGNDate"
	SentinelAuthorizedShares = "__authorizedShares"
	SentinelParValue         = "__parValue"
	SentinelFairMarketValue  = "__fairMarketValue"
)

// SentinelPrefix marks question ids that are engine directives rather than
// real answers (admin overrides, group references, count references).
const SentinelPrefix = "__"

// IsSentinelID reports whether a question id is a sentinel reference.
func IsSentinelID(id string) bool {
	return strings.HasPrefix(id, SentinelPrefix)
}

// DataType describes how a mapped value is formatted before substitution.
type DataType string

const (
	DataTypeText     DataType = "text"
	DataTypeList     DataType = "list"
	DataTypeDate     DataType = "date"
	DataTypeNumber   DataType = "number"
	DataTypeCurrency DataType = "currency"
	DataTypeEmail    DataType = "email"
	DataTypePhone    DataType = "phone"
)

// ValidDataTypes defines the allowed data types for a variable mapping.
var ValidDataTypes = map[DataType]bool{
	DataTypeText:     true,
	DataTypeList:     true,
	DataTypeDate:     true,
	DataTypeNumber:   true,
	DataTypeCurrency: true,
	DataTypeEmail:    true,
	DataTypePhone:    true,
}

// VariableMapping binds one template variable to its source and formatting.
type VariableMapping struct {
	VariableName  string   `json:"variable_name"`
	QuestionID    string   `json:"question_id"`
	DataType      DataType `json:"data_type"`
	TransformRule string   `json:"transform_rule,omitempty"`
	Required      bool     `json:"required"`
	DefaultValue  string   `json:"default_value,omitempty"`
	Formula       string   `json:"formula,omitempty"`
}

// Operator is a rule-condition comparison operator.
type Operator string

const (
	OpEquals      Operator = "=="
	OpNotEquals   Operator = "!="
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpIn          Operator = "in"
	OpGreater     Operator = ">"
	OpGreaterEq   Operator = ">="
	OpLess        Operator = "<"
	OpLessEq      Operator = "<="
)

// ValidOperators defines the allowed condition operators.
var ValidOperators = map[Operator]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpContains:    true,
	OpNotContains: true,
	OpIn:          true,
	OpGreater:     true,
	OpGreaterEq:   true,
	OpLess:        true,
	OpLessEq:      true,
}

// Condition operand and source kinds.
const (
	ValueTypeLiteral  = "literal"
	ValueTypeQuestion = "question"

	SourceTypeQuestion = "question"
	SourceTypeComputed = "computed"
)

// RuleCondition compares one resolved value against an operand.
//
// When SourceType is "computed", QuestionID must name an entry of the
// computed-variable table (group counts and flags), not a real answer id.
// When ValueType is "question", ValueQuestionID names the response whose
// value is the comparison operand.
type RuleCondition struct {
	QuestionID      string   `json:"question_id"`
	Operator        Operator `json:"operator"`
	Value           string   `json:"value"`
	ValueType       string   `json:"value_type,omitempty"`
	ValueQuestionID string   `json:"value_question_id,omitempty"`
	SourceType      string   `json:"source_type,omitempty"`
}

// Logical operators combining conditions inside one rule.
const (
	LogicalAnd = "AND"
	LogicalOr  = "OR"
)

// SelectionRule is one condition-set on a template.
//
// IsAlwaysInclude and IsManualOnly short-circuit condition evaluation
// entirely; Priority orders rule evaluation but does not affect the score.
type SelectionRule struct {
	Conditions      []RuleCondition `json:"conditions"`
	LogicalOperator string          `json:"logical_operator,omitempty"`
	Priority        int             `json:"priority"`
	IsAlwaysInclude bool            `json:"is_always_include,omitempty"`
	IsManualOnly    bool            `json:"is_manual_only,omitempty"`
}

// Person-type filters for per-person document generation.
const (
	PersonFilterAll               = "all"
	PersonFilterIndividual        = "individual"
	PersonFilterIndividualFounder = "individual_founder"
	PersonFilterCorporation       = "corporation"
	PersonFilterCorporationFounder = "corporation_founder"
)

// ValidPersonFilters defines the allowed personTypeFilter values.
var ValidPersonFilters = map[string]bool{
	PersonFilterAll:                true,
	PersonFilterIndividual:         true,
	PersonFilterIndividualFounder:  true,
	PersonFilterCorporation:        true,
	PersonFilterCorporationFounder: true,
}

// Template is a legal-document template's selection and variable
// configuration. The binary document body lives with the external
// renderer; the engine only sees this metadata.
type Template struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Rules            []SelectionRule   `json:"rules,omitempty"`
	Variables        []VariableMapping `json:"variables,omitempty"`
	IsActive         bool              `json:"is_active"`
	RepeatForPersons bool              `json:"repeat_for_persons,omitempty"`
	PersonTypeFilter string            `json:"person_type_filter,omitempty"`
}

// TemplateSelection partitions active templates by match score.
type TemplateSelection struct {
	Required  []Template `json:"required"`
	Suggested []Template `json:"suggested"`
	Optional  []Template `json:"optional"`
}

// ValidationResult reports incomplete data back to the document-generation
// workflow. It warns, it never blocks: the caller decides whether a
// missing variable stops generation.
type ValidationResult struct {
	IsValid          bool     `json:"is_valid"`
	MissingVariables []string `json:"missing_variables,omitempty"`
	EmptyRequired    []string `json:"empty_required,omitempty"`
}
