package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-docs/inkwell/internal/engine"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// TransformOptions holds flags for the transform command.
type TransformOptions struct {
	*RootOptions
	Templates string
	Clock     string
	DocNumber string
}

// NewTransformCommand creates the transform command.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransformOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transform <survey-file>",
		Short: "Expand survey answers into document variables",
		Long: `Expand a survey answer file into the full document variable map.

Runs the whole variable pipeline: formatting, case aliases, computed
variables, group expansion, share math and sign dates. When a template
directory is given its variable mappings are applied as well.

Examples:
  inkwell transform ./answers.yaml
  inkwell transform ./answers.yaml --templates ./templates --format json
  inkwell transform ./answers.yaml --clock 2026-03-10T14:30:00Z`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Templates, "templates", "", "template directory whose variable mappings to apply")
	cmd.Flags().StringVar(&opts.Clock, "clock", "", "fixed RFC3339 time for date variables (defaults to now)")
	cmd.Flags().StringVar(&opts.DocNumber, "doc-number", "", "document number override")

	return cmd
}

func runTransform(opts *TransformOptions, surveyPath string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("loaded survey %s with %d responses", survey.SurveyID, len(responses))

	var mappings []ir.VariableMapping
	if opts.Templates != "" {
		_, m, err := loadActiveTemplates(opts.Templates)
		if err != nil {
			return err
		}
		mappings = m
		formatter.VerboseLog("applying %d variable mappings", len(mappings))
	}

	vars, err := transformVariables(opts, responses, mappings)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return formatter.SuccessJSON(vars)
	}
	return writeVariablesText(formatter, vars)
}

// transformVariables builds a transformer from the shared flags and
// runs the pipeline.
func transformVariables(opts *TransformOptions, responses []ir.SurveyResponse, mappings []ir.VariableMapping) (*ir.VarMap, error) {
	engineOpts := []engine.Option{engine.WithLogger(buildLogger(opts.Verbose))}

	clock, err := parseClock(opts.Clock)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "bad clock flag", err)
	}
	if clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(clock))
	}
	if opts.DocNumber != "" {
		docNumber := opts.DocNumber
		engineOpts = append(engineOpts, engine.WithDocumentNumber(func() string { return docNumber }))
	}

	return engine.NewTransformer(engineOpts...).Transform(responses, mappings), nil
}

// writeVariablesText prints the variable map as sorted name = value
// lines followed by a loop-group summary.
func writeVariablesText(formatter *OutputFormatter, vars *ir.VarMap) error {
	for _, name := range vars.Names() {
		fmt.Fprintf(formatter.Writer, "%s = %s\n", name, vars.Lookup(name))
	}
	for _, group := range vars.GroupNames() {
		items, _ := vars.Group(group)
		fmt.Fprintf(formatter.Writer, "%s = [%d items]\n", group, len(items))
	}
	fmt.Fprintf(formatter.Writer, "\n%d variables\n", vars.Len())
	return nil
}
