package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	cvID       string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cvbuilder",
		Short: "Build, store and export CVs",
		Long: "cvbuilder edits structured CVs section by section, saves them to the configured storage " +
			"and exports them as PDF or Word documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	cmd.PersistentFlags().StringVar(&opts.cvID, "cv", "", "ID of the CV to work on (default: most recently updated)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newNewCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newSetCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newRemoveCmd(opts),
		newToggleCmd(opts),
		newReorderCmd(opts),
		newTemplateCmd(opts),
		newLanguageCmd(opts),
		newDuplicateCmd(opts),
		newResetCmd(opts),
		newDeleteCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}
