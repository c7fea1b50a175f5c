package cli

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/inkwell-docs/inkwell/internal/config"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// loadActiveTemplates compiles the template directory and returns the
// active templates plus the union of their variable mappings.
func loadActiveTemplates(dir string) ([]ir.Template, []ir.VariableMapping, error) {
	result, loadErrs := config.LoadTemplates(dir, config.LoadModeFailFast)
	if len(loadErrs) > 0 {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load templates from %s", dir), loadErrs[0])
	}

	var active []ir.Template
	var mappings []ir.VariableMapping
	for _, tpl := range result.Templates {
		if !tpl.IsActive {
			continue
		}
		active = append(active, tpl)
		mappings = append(mappings, tpl.Variables...)
	}
	return active, mappings, nil
}

// loadAllTemplates compiles the template directory and returns every
// template, inactive ones included. Used by catalog management where
// the active flag must round-trip.
func loadAllTemplates(dir string) ([]ir.Template, error) {
	result, loadErrs := config.LoadTemplates(dir, config.LoadModeFailFast)
	if len(loadErrs) > 0 {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load templates from %s", dir), loadErrs[0])
	}
	return result.Templates, nil
}

// loadSurveyResponses reads a survey answer file and wraps a path error
// with a command exit code.
func loadSurveyResponses(path string) (*config.Survey, []ir.SurveyResponse, error) {
	survey, responses, err := config.LoadSurvey(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load survey %s", path), err)
	}
	return survey, responses, nil
}

// parseClock parses an optional RFC3339 --clock flag into a fixed clock
// function. A zero value means the caller should use the real clock.
func parseClock(value string) (func() time.Time, error) {
	if value == "" {
		return nil, nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid clock %q: %w", value, err)
	}
	return func() time.Time { return at }, nil
}

// buildLogger returns a development zap logger in verbose mode, a nop
// logger otherwise.
func buildLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// loadErrorCode extracts the structured code from a load error chain,
// falling back to the generic code.
func loadErrorCode(err error) string {
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return config.ErrCodeGeneric
}
