package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-docs/inkwell/internal/engine"
	"github.com/inkwell-docs/inkwell/internal/ir"
	"github.com/inkwell-docs/inkwell/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Database  string
	Clock     string
	DocNumber string
}

// GenerateResult is the generate command's combined payload: the full
// variable map, the template partition, the missing-data report and the
// ids of any recorded generations.
type GenerateResult struct {
	SurveyID    string               `json:"survey_id"`
	Variables   *ir.VarMap           `json:"variables"`
	Selection   ir.TemplateSelection `json:"selection"`
	Validation  ir.ValidationResult  `json:"validation"`
	Generations []string             `json:"generations,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <survey-file> <templates-dir>",
		Short: "Run the full document-preparation workflow",
		Long: `Run the full workflow for one survey: expand answers into variables,
partition the templates, and report missing data.

With --db, the survey and one generation record per required template
are persisted so the run can be audited later.

Examples:
  inkwell generate ./answers.yaml ./templates
  inkwell generate ./answers.yaml ./templates --db ./inkwell.db --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for persistence")
	cmd.Flags().StringVar(&opts.Clock, "clock", "", "fixed RFC3339 time for date variables (defaults to now)")
	cmd.Flags().StringVar(&opts.DocNumber, "doc-number", "", "document number override")

	return cmd
}

func runGenerate(opts *GenerateOptions, surveyPath, templatesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	survey, responses, err := loadSurveyResponses(surveyPath)
	if err != nil {
		return err
	}
	templates, mappings, err := loadActiveTemplates(templatesDir)
	if err != nil {
		return err
	}
	formatter.VerboseLog("survey %s: %d responses, %d active templates", survey.SurveyID, len(responses), len(templates))

	transformOpts := &TransformOptions{
		RootOptions: opts.RootOptions,
		Clock:       opts.Clock,
		DocNumber:   opts.DocNumber,
	}
	vars, err := transformVariables(transformOpts, responses, mappings)
	if err != nil {
		return err
	}

	result := GenerateResult{
		SurveyID:   survey.SurveyID,
		Variables:  vars,
		Selection:  engine.SelectTemplates(templates, ir.NewResponseSet(responses)),
		Validation: engine.Validate(vars, mappings),
	}

	if opts.Database != "" {
		generations, err := persistGeneration(cmd, opts.Database, survey.SurveyID, responses, result.Selection.Required, vars)
		if err != nil {
			return err
		}
		result.Generations = generations
		formatter.VerboseLog("recorded %d generation(s) in %s", len(generations), opts.Database)
	}

	if opts.Format == "json" {
		return formatter.SuccessJSON(result)
	}
	return writeGenerateText(formatter, result)
}

// persistGeneration saves the survey and one generation row per
// required template.
func persistGeneration(cmd *cobra.Command, dbPath, surveyID string, responses []ir.SurveyResponse, required []ir.Template, vars *ir.VarMap) ([]string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.SaveSurvey(ctx, surveyID, responses); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to save survey", err)
	}

	var generations []string
	for _, tpl := range required {
		id, err := st.RecordGeneration(ctx, "", surveyID, tpl.ID, vars)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to record generation for template %s", tpl.ID), err)
		}
		generations = append(generations, id)
	}
	return generations, nil
}

func writeGenerateText(formatter *OutputFormatter, result GenerateResult) error {
	fmt.Fprintf(formatter.Writer, "Survey: %s\n", result.SurveyID)
	fmt.Fprintf(formatter.Writer, "Variables: %d\n\n", result.Variables.Len())
	writeSelectionText(formatter, result.Selection)
	if result.Validation.IsValid {
		fmt.Fprintln(formatter.Writer, "\nValidation: complete")
	} else {
		fmt.Fprintf(formatter.Writer, "\nValidation: missing %v", result.Validation.MissingVariables)
		if len(result.Validation.EmptyRequired) > 0 {
			fmt.Fprintf(formatter.Writer, ", empty %v", result.Validation.EmptyRequired)
		}
		fmt.Fprintln(formatter.Writer)
	}
	for _, id := range result.Generations {
		fmt.Fprintf(formatter.Writer, "Recorded generation %s\n", id)
	}
	return nil
}
