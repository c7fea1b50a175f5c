package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-docs/inkwell/internal/config"
)

// ValidationIssue is one template-loading problem with its location.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// TemplateValidation is the validate command's result payload.
type TemplateValidation struct {
	Valid     bool              `json:"valid"`
	Templates int               `json:"templates"`
	Errors    []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <templates-dir>",
		Short: "Check template definitions without running anything",
		Long: `Compile every CUE template definition in a directory and report all
problems at once: malformed rules, unknown operators, bad data types,
missing names.

Exit codes:
  0 - All templates valid
  1 - One or more templates invalid
  2 - Command error (directory missing, no CUE files)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateTemplates(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidateTemplates(opts *RootOptions, templatesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, loadErrs := config.LoadTemplates(templatesDir, config.LoadModeCollectAll)
	if result == nil && len(loadErrs) > 0 {
		// Directory-level failure: nothing was compiled at all.
		err := loadErrs[0]
		if outErr := formatter.Error(loadErrorCode(err), err.Error(), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, err.Error())
	}

	formatter.VerboseLog("compiled %d CUE file(s) from %s", result.FileCount, templatesDir)

	validation := TemplateValidation{
		Valid:     len(loadErrs) == 0,
		Templates: len(result.Templates),
	}
	for _, err := range loadErrs {
		validation.Errors = append(validation.Errors, toValidationIssue(err))
	}

	if opts.Format == "json" {
		if err := formatter.SuccessJSON(validation); err != nil {
			return err
		}
	} else {
		writeValidationText(formatter, validation)
	}

	if !validation.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d template error(s)", len(validation.Errors)))
	}
	return nil
}

func toValidationIssue(err error) ValidationIssue {
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		issue := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
		if loadErr.Pos.IsValid() {
			issue.File = loadErr.Pos.Filename()
			issue.Line = loadErr.Pos.Line()
		}
		return issue
	}
	return ValidationIssue{Code: config.ErrCodeGeneric, Message: err.Error()}
}

func writeValidationText(formatter *OutputFormatter, v TemplateValidation) {
	if v.Valid {
		fmt.Fprintf(formatter.Writer, "OK: %d template(s) valid\n", v.Templates)
		return
	}
	for _, issue := range v.Errors {
		if issue.File != "" {
			fmt.Fprintf(formatter.Writer, "%s:%d: [%s] %s\n", issue.File, issue.Line, issue.Code, issue.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "[%s] %s\n", issue.Code, issue.Message)
		}
	}
	fmt.Fprintf(formatter.Writer, "\n%d error(s)\n", len(v.Errors))
}
