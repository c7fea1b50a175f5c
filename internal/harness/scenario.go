package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one survey run through
// the full pipeline, with assertions on the output.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed
	// by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Survey is the path to the survey answer YAML, relative to the
	// scenario file location.
	Survey string `yaml:"survey"`

	// Templates is an optional path to a CUE template directory. When
	// set, template selection runs and every active template's variable
	// mappings are applied.
	Templates string `yaml:"templates,omitempty"`

	// Clock fixes the pipeline's notion of "now", RFC 3339. Defaults
	// to a constant so scenario output is deterministic.
	Clock string `yaml:"clock,omitempty"`

	// Assertions validate the result. Supported types: variable_equals,
	// variable_absent, selection_bucket, validation_missing.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a scenario result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "variable_equals": Variable resolves to exactly Value
	// - "variable_absent": Variable is not in the map at all
	// - "selection_bucket": Template landed in Bucket
	// - "validation_missing": Variable is reported missing by validation
	Type string `yaml:"type"`

	// Variable names the variable (variable_* and validation_missing).
	Variable string `yaml:"variable,omitempty"`

	// Value is the expected value (variable_equals).
	Value string `yaml:"value,omitempty"`

	// Template is the template id (selection_bucket).
	Template string `yaml:"template,omitempty"`

	// Bucket is "required", "suggested", "optional", or "excluded"
	// (selection_bucket).
	Bucket string `yaml:"bucket,omitempty"`
}

// Assertion type constants.
const (
	AssertVariableEquals    = "variable_equals"
	AssertVariableAbsent    = "variable_absent"
	AssertSelectionBucket   = "selection_bucket"
	AssertValidationMissing = "validation_missing"
)

// Selection bucket names for AssertSelectionBucket.
const (
	BucketRequired  = "required"
	BucketSuggested = "suggested"
	BucketOptional  = "optional"
	BucketExcluded  = "excluded"
)

// Scenario run defaults. Fixed values keep golden files stable across
// machines and dates.
var defaultClock = time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)

const defaultDocumentNumber = "test-doc-0001"

// LoadScenario reads and parses a scenario YAML file, resolving the
// survey and template paths relative to the scenario file's directory.
// Unknown YAML fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	if scenario.Survey != "" && !filepath.IsAbs(scenario.Survey) {
		scenario.Survey = filepath.Join(base, scenario.Survey)
	}
	if scenario.Templates != "" && !filepath.IsAbs(scenario.Templates) {
		scenario.Templates = filepath.Join(base, scenario.Templates)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Survey == "" {
		return fmt.Errorf("survey is required")
	}
	if _, err := os.Stat(s.Survey); os.IsNotExist(err) {
		return fmt.Errorf("survey file not found: %s", s.Survey)
	}
	if s.Templates != "" {
		if _, err := os.Stat(s.Templates); os.IsNotExist(err) {
			return fmt.Errorf("template directory not found: %s", s.Templates)
		}
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	if s.Clock != "" {
		if _, err := time.Parse(time.RFC3339, s.Clock); err != nil {
			return fmt.Errorf("clock must be RFC 3339: %w", err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertVariableEquals:
		if a.Variable == "" {
			return fmt.Errorf("assertions[%d]: variable is required for variable_equals", index)
		}
	case AssertVariableAbsent, AssertValidationMissing:
		if a.Variable == "" {
			return fmt.Errorf("assertions[%d]: variable is required for %s", index, a.Type)
		}
	case AssertSelectionBucket:
		if a.Template == "" {
			return fmt.Errorf("assertions[%d]: template is required for selection_bucket", index)
		}
		switch a.Bucket {
		case BucketRequired, BucketSuggested, BucketOptional, BucketExcluded:
		default:
			return fmt.Errorf("assertions[%d]: unknown bucket %q", index, a.Bucket)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// clockTime returns the scenario's fixed clock.
func (s *Scenario) clockTime() time.Time {
	if s.Clock == "" {
		return defaultClock
	}
	t, err := time.Parse(time.RFC3339, s.Clock)
	if err != nil {
		return defaultClock
	}
	return t
}
