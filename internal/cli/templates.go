package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-docs/inkwell/internal/store"
)

// TemplatesOptions holds flags shared by the templates subcommands.
type TemplatesOptions struct {
	*RootOptions
	Database string
	All      bool
}

// NewTemplatesCommand creates the templates command group.
func NewTemplatesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TemplatesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the template catalog in a database",
	}

	push := &cobra.Command{
		Use:   "push <templates-dir>",
		Short: "Compile a template directory and store the catalog",
		Long: `Compile every CUE template definition in a directory and upsert the
results into the database catalog. Existing templates with the same id
are replaced.

Example:
  inkwell templates push ./templates --db ./inkwell.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesPush(opts, args[0], cmd)
		},
	}
	push.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = push.MarkFlagRequired("db")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List templates stored in the database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = list.MarkFlagRequired("db")
	list.Flags().BoolVar(&opts.All, "all", false, "include inactive templates")

	cmd.AddCommand(push)
	cmd.AddCommand(list)

	return cmd
}

func runTemplatesPush(opts *TemplatesOptions, templatesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	templates, err := loadAllTemplates(templatesDir)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	for _, tpl := range templates {
		if err := st.SaveTemplate(ctx, tpl); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to save template %s", tpl.ID), err)
		}
		formatter.VerboseLog("saved template %s (%s)", tpl.ID, tpl.Name)
	}

	return formatter.Success(fmt.Sprintf("Pushed %d template(s) to %s", len(templates), opts.Database))
}

func runTemplatesList(opts *TemplatesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	templates, err := st.ListTemplates(cmd.Context(), !opts.All)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list templates", err)
	}

	if opts.Format == "json" {
		return formatter.SuccessJSON(templates)
	}
	for _, tpl := range templates {
		state := "active"
		if !tpl.IsActive {
			state = "inactive"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s  [%s]  %d rule(s), %d variable(s)\n",
			tpl.ID, tpl.Name, state, len(tpl.Rules), len(tpl.Variables))
	}
	fmt.Fprintf(formatter.Writer, "\n%d template(s)\n", len(templates))
	return nil
}
