package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var asJSON, asHTML bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the CV outline, its snapshot as JSON, or its rendered HTML",
		Args:  cobra.NoArgs,
		RunE: withCV(opts, func(_ context.Context, cmd *cobra.Command, a *app, _ []string) error {
			snap := a.store.Snapshot()
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			case asHTML:
				html, err := rendering.RenderPreview(&snap)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, html)
				return err
			}
			printer := observability.NewPrinter(out)
			printer.PrintOutline(snap, a.store.Warnings())
			printer.PrintExperiences(snap.Document)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored snapshot as JSON")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the rendered preview page")
	cmd.MarkFlagsMutuallyExclusive("json", "html")
	return cmd
}
