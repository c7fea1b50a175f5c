package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()

	// A minimal survey so path validation passes.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "survey.yaml"), []byte(`
surveyId: s1
responses:
  - questionId: companyName1
    value: "acme corp"
`), 0o644))

	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: Checks company name casing.
survey: survey.yaml
clock: "2026-03-10T14:30:00Z"
assertions:
  - type: variable_equals
    variable: companyName1
    value: "Acme Corp"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "basic", scenario.Name)
	// The survey path resolves relative to the scenario file.
	assert.Equal(t, filepath.Join(filepath.Dir(path), "survey.yaml"), scenario.Survey)
	assert.Equal(t, time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC), scenario.clockTime())
}

func TestLoadScenarioDefaultClock(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: Uses the default clock.
survey: survey.yaml
assertions:
  - type: variable_absent
    variable: nothing
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, defaultClock, scenario.clockTime())
}

func TestLoadScenarioRejectsUnknownField(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: d
survey: survey.yaml
assertion:
  - type: variable_absent
    variable: x
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing name",
			"description: d\nsurvey: survey.yaml\nassertions: [{type: variable_absent, variable: x}]",
			"name is required",
		},
		{
			"missing description",
			"name: n\nsurvey: survey.yaml\nassertions: [{type: variable_absent, variable: x}]",
			"description is required",
		},
		{
			"missing survey",
			"name: n\ndescription: d\nassertions: [{type: variable_absent, variable: x}]",
			"survey is required",
		},
		{
			"survey not found",
			"name: n\ndescription: d\nsurvey: ghost.yaml\nassertions: [{type: variable_absent, variable: x}]",
			"survey file not found",
		},
		{
			"no assertions",
			"name: n\ndescription: d\nsurvey: survey.yaml",
			"assertions",
		},
		{
			"bad clock",
			"name: n\ndescription: d\nsurvey: survey.yaml\nclock: yesterday\nassertions: [{type: variable_absent, variable: x}]",
			"clock",
		},
		{
			"unknown assertion type",
			"name: n\ndescription: d\nsurvey: survey.yaml\nassertions: [{type: trace_contains, variable: x}]",
			"unknown assertion type",
		},
		{
			"equals without variable",
			"name: n\ndescription: d\nsurvey: survey.yaml\nassertions: [{type: variable_equals, value: v}]",
			"variable is required",
		},
		{
			"bucket without template",
			"name: n\ndescription: d\nsurvey: survey.yaml\nassertions: [{type: selection_bucket, bucket: required}]",
			"template is required",
		},
		{
			"unknown bucket",
			"name: n\ndescription: d\nsurvey: survey.yaml\nassertions: [{type: selection_bucket, template: t, bucket: maybe}]",
			"unknown bucket",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
