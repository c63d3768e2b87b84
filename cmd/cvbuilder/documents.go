package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var example bool
	var title string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a CV and print its ID",
		Args:  cobra.NoArgs,
		RunE: runApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			create := a.store.CreateNew
			if example {
				create = a.store.CreateFromExample
			}
			id, err := create(ctx)
			if err != nil {
				return err
			}
			if title != "" {
				if err := a.store.UpdateTitle(title); err != nil {
					return err
				}
			}
			if err := a.store.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&example, "example", false, "Prefill the CV with example content")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title of the CV")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored CVs, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: runApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			summaries, err := a.summaries(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Title, s.UpdatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		}),
	}
}

func newDuplicateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate",
		Short: "Save a copy of the CV and print the copy's ID",
		Args:  cobra.NoArgs,
		RunE: withCV(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			id, err := a.store.Duplicate(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every section of the CV, keeping its ID",
		Args:  cobra.NoArgs,
		RunE: withCV(opts, func(ctx context.Context, _ *cobra.Command, a *app, _ []string) error {
			if err := a.store.Reset(); err != nil {
				return err
			}
			return a.store.Save(ctx)
		}),
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored CV",
		Args:  cobra.ExactArgs(1),
		RunE: runApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			if a.remote != nil {
				if !a.remote.Remove(ctx, args[0]) {
					fmt.Fprintf(cmd.ErrOrStderr(), "CV %s was not deleted\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			}
			ok, err := a.store.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("CV %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var asNew bool
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the CV content with a JSON document or snapshot",
		Long: "Reads either a bare CV document or a saved snapshot (with a \"cvData\" key) and replaces " +
			"the content of the active CV with it. The CV keeps its ID.",
		Args: cobra.ExactArgs(1),
		RunE: runApp(opts, func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if asNew {
				if _, err := a.store.CreateNew(ctx); err != nil {
					return err
				}
			} else if err := a.open(ctx, opts.cvID); err != nil {
				return err
			}
			if err := a.store.ImportDocument(ctx, doc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.store.ID())
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asNew, "new", false, "Import into a new CV instead of the active one")
	return cmd
}

// readDocument accepts a snapshot file or a bare document.
func readDocument(path string) (types.CVDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CVDocument{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.ValidateImport(data); err != nil {
		return types.CVDocument{}, fmt.Errorf("invalid CV in %s: %w", path, err)
	}
	var wrapped struct {
		CVData *types.CVDocument `json:"cvData"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return types.CVDocument{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if wrapped.CVData != nil {
		return *wrapped.CVData, nil
	}
	var doc types.CVDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.CVDocument{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
