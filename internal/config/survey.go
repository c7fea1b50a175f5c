package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Survey is one answered questionnaire loaded from YAML.
type Survey struct {
	// SurveyID identifies the survey run; stored alongside the answers.
	SurveyID string `yaml:"surveyId"`

	// Responses lists the answers, one per question.
	Responses []surveyAnswer `yaml:"responses"`
}

// surveyAnswer is one YAML answer entry. Exactly one of value, values, or
// items must be set; which one decides the answer's shape.
type surveyAnswer struct {
	QuestionID string `yaml:"questionId"`

	// Value is a scalar answer. Numbers decode as strings to preserve
	// precision ("0.0001" stays "0.0001").
	Value *string `yaml:"value,omitempty"`

	// Values is a multi-select answer.
	Values []string `yaml:"values,omitempty"`

	// Items is a repeating-group answer: one map of string fields per
	// record.
	Items []map[string]string `yaml:"items,omitempty"`
}

// LoadSurvey reads and parses a survey YAML file. Unknown fields are
// rejected: a typo in an answer file must fail loudly, not drop the
// answer.
func LoadSurvey(path string) (*Survey, []ir.SurveyResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read survey file: %w", err)
	}
	return parseSurvey(data)
}

func parseSurvey(data []byte) (*Survey, []ir.SurveyResponse, error) {
	var survey Survey
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&survey); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	responses, err := survey.toResponses()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid survey: %w", err)
	}
	return &survey, responses, nil
}

// toResponses converts the YAML answers into IR responses.
func (s *Survey) toResponses() ([]ir.SurveyResponse, error) {
	if len(s.Responses) == 0 {
		return nil, fmt.Errorf("responses list is required and must be non-empty")
	}

	out := make([]ir.SurveyResponse, 0, len(s.Responses))
	for i, a := range s.Responses {
		if a.QuestionID == "" {
			return nil, fmt.Errorf("responses[%d]: questionId is required", i)
		}

		set := 0
		var value ir.Value
		if a.Value != nil {
			set++
			value = ir.Scalar(*a.Value)
		}
		if a.Values != nil {
			set++
			value = ir.MultiSelect(a.Values)
		}
		if a.Items != nil {
			set++
			group := make(ir.Group, 0, len(a.Items))
			for _, item := range a.Items {
				group = append(group, ir.GroupItem(item))
			}
			value = group
		}
		if set != 1 {
			return nil, fmt.Errorf("responses[%d] (%s): exactly one of value, values, or items is required", i, a.QuestionID)
		}

		out = append(out, ir.SurveyResponse{QuestionID: a.QuestionID, Value: value})
	}
	return out, nil
}
