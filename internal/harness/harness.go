package harness

import (
	"fmt"
	"time"

	"github.com/inkwell-docs/inkwell/internal/config"
	"github.com/inkwell-docs/inkwell/internal/engine"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: true when every
	// assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty when Pass is
	// true.
	Errors []string `json:"errors,omitempty"`

	// Variables is the full variable map the pipeline produced.
	Variables *ir.VarMap `json:"variables"`

	// Selection is the template partition, empty when the scenario has
	// no template directory.
	Selection ir.TemplateSelection `json:"selection"`

	// Validation is the missing-data report over all active templates'
	// mappings.
	Validation ir.ValidationResult `json:"validation"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Variables:  ir.NewVarMap(),
		Validation: ir.ValidationResult{IsValid: true},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario: load survey, load templates, transform,
// select, validate, then check every assertion. Returns an error only
// for setup failures; assertion failures are reported on the Result.
func Run(scenario *Scenario) (*Result, error) {
	_, responses, err := config.LoadSurvey(scenario.Survey)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	var templates []ir.Template
	if scenario.Templates != "" {
		loaded, errs := config.LoadTemplates(scenario.Templates, config.LoadModeFailFast)
		if len(errs) > 0 {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, errs[0])
		}
		templates = loaded.Templates
	}

	var mappings []ir.VariableMapping
	for _, tpl := range templates {
		if !tpl.IsActive {
			continue
		}
		mappings = append(mappings, tpl.Variables...)
	}

	clock := scenario.clockTime()
	transformer := engine.NewTransformer(
		engine.WithClock(func() time.Time { return clock }),
		engine.WithDocumentNumber(func() string { return defaultDocumentNumber }),
	)

	result := NewResult()
	result.Variables = transformer.Transform(responses, mappings)
	result.Validation = engine.Validate(result.Variables, mappings)
	if len(templates) > 0 {
		result.Selection = engine.SelectTemplates(templates, ir.NewResponseSet(responses))
	}

	for i, a := range scenario.Assertions {
		checkAssertion(result, i, a)
	}
	return result, nil
}
