package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-docs/inkwell/internal/engine"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <survey-file> <templates-dir>",
		Short: "Partition templates into required, suggested and optional",
		Long: `Score the active templates' selection rules against a survey and
partition them into required, suggested and optional buckets.

Templates whose rules all match (or that carry an always-include rule)
come back required. Partial matches are suggested. Manual-only and
rule-less templates are optional.

Examples:
  inkwell select ./answers.yaml ./templates
  inkwell select ./answers.yaml ./templates --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runSelect(opts *RootOptions, surveyPath, templatesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	_, responses, err := loadSurveyResponses(surveyPath)
	if err != nil {
		return err
	}
	templates, _, err := loadActiveTemplates(templatesDir)
	if err != nil {
		return err
	}
	formatter.VerboseLog("scoring %d active templates", len(templates))

	selection := engine.SelectTemplates(templates, ir.NewResponseSet(responses))

	if opts.Format == "json" {
		return formatter.SuccessJSON(selection)
	}
	return writeSelectionText(formatter, selection)
}

func writeSelectionText(formatter *OutputFormatter, sel ir.TemplateSelection) error {
	writeBucket(formatter, "Required", sel.Required)
	writeBucket(formatter, "Suggested", sel.Suggested)
	writeBucket(formatter, "Optional", sel.Optional)
	return nil
}

func writeBucket(formatter *OutputFormatter, label string, templates []ir.Template) {
	fmt.Fprintf(formatter.Writer, "%s (%d):\n", label, len(templates))
	for _, tpl := range templates {
		fmt.Fprintf(formatter.Writer, "  %s  %s\n", tpl.ID, tpl.Name)
	}
}
