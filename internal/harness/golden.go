package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Snapshot captures a scenario's complete observable output for golden
// comparison: the full variable map, the selection partition by id, and
// the validation report.
type Snapshot struct {
	ScenarioName string              `json:"scenario_name"`
	Variables    *ir.VarMap          `json:"variables"`
	Selection    selectionIDs        `json:"selection"`
	Validation   ir.ValidationResult `json:"validation"`
}

// selectionIDs is the selection partition reduced to template ids; the
// full template payloads would bloat golden files without adding signal.
type selectionIDs struct {
	Required  []string `json:"required"`
	Suggested []string `json:"suggested"`
	Optional  []string `json:"optional"`
}

func snapshotSelection(sel ir.TemplateSelection) selectionIDs {
	ids := func(templates []ir.Template) []string {
		out := make([]string, 0, len(templates))
		for _, tpl := range templates {
			out = append(out, tpl.ID)
		}
		return out
	}
	return selectionIDs{
		Required:  ids(sel.Required),
		Suggested: ids(sel.Suggested),
		Optional:  ids(sel.Optional),
	}
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error for setup failures; a snapshot mismatch fails the test
// through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result against the golden
// file for the given scenario name.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Variables:    result.Variables,
		Selection:    snapshotSelection(result.Selection),
		Validation:   result.Validation,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
