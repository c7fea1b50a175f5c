package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSurveyFile writes a small but representative survey answer file
// and returns its path.
func writeSurveyFile(t *testing.T, dir string) string {
	t.Helper()
	content := `surveyId: acme-incorporation
responses:
  - questionId: companyName1
    value: "acme corp"
  - questionId: stateName1
    value: "Delaware"
  - questionId: founders
    items:
      - name: "jane doe"
        type: "individual"
        cash: "50000"
`
	path := filepath.Join(dir, "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeTemplatesDir writes a CUE template catalog with one
// always-include template, one conditional and one inactive, and
// returns the directory path.
func writeTemplatesDir(t *testing.T, dir string) string {
	t.Helper()
	content := `template: boardConsent: {
	name: "Board Consent"
	rule: [{alwaysInclude: true}]
}

template: certOfInc: {
	name: "Certificate of Incorporation"
	rule: [{
		when: [{question: "stateName1", operator: "==", value: "Delaware"}]
	}]
	variable: [{
		name:     "stateName"
		question: "stateName1"
		dataType: "text"
		required: true
	}, {
		name:     "investorName"
		question: "investorName1"
		dataType: "text"
		required: true
	}]
}

template: oldCharter: {
	name:   "Old Charter"
	active: false
}
`
	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "templates.cue"), []byte(content), 0644))
	return tplDir
}

// writeBrokenTemplatesDir writes a template catalog with a missing
// name, which LoadTemplates reports as E101.
func writeBrokenTemplatesDir(t *testing.T, dir string) string {
	t.Helper()
	content := `template: nameless: {
	rule: [{alwaysInclude: true}]
}
`
	tplDir := filepath.Join(dir, "broken")
	require.NoError(t, os.MkdirAll(tplDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "templates.cue"), []byte(content), 0644))
	return tplDir
}

// writeScenarioDir writes a self-contained scenario directory whose
// single scenario passes, and returns the directory path.
func writeScenarioDir(t *testing.T, dir string, pass bool) string {
	t.Helper()
	expected := "Acme Corp"
	if !pass {
		expected = "Wrong Name"
	}
	scenario := `name: company-name
description: Company name is title-cased.
survey: ../survey.yaml
assertions:
  - type: variable_equals
    variable: companyName1
    value: "` + expected + `"
`
	scenDir := filepath.Join(dir, "scenarios")
	require.NoError(t, os.MkdirAll(scenDir, 0755))
	writeSurveyFile(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(scenDir, "company-name.yaml"), []byte(scenario), 0644))
	return scenDir
}
