package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRasterizer returns the rasterizer named by cfg.Rasterizer.
func newRasterizer(cfg *config.Config, log *zap.Logger) export.Rasterizer {
	if cfg.Rasterizer == config.RasterizerText {
		return export.TextRasterizer{}
	}
	return &export.ChromeRasterizer{Log: log}
}

func newExporter(cfg *config.Config, log *zap.Logger) *export.Exporter {
	return export.NewExporter(newRasterizer(cfg, log), cfg.ExportScale, log)
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format, outDir string
	var link bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the CV as PDF, Word or both",
		Args:  cobra.NoArgs,
		RunE: withCV(opts, func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
			if link {
				if a.remote == nil {
					return fmt.Errorf("--link needs remote storage")
				}
				if err := a.store.Flush(ctx); err != nil {
					return fmt.Errorf("failed to save before export: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), a.remote.PDFURL(a.store.ID()))
				return nil
			}
			var formats []export.Format
			if format == "all" {
				formats = []export.Format{export.FormatPDF, export.FormatWord}
			} else {
				f, err := export.ParseFormat(format)
				if err != nil {
					return err
				}
				formats = []export.Format{f}
			}

			// pending edits must be in the exported file
			if err := a.store.Flush(ctx); err != nil {
				return fmt.Errorf("failed to save before export: %w", err)
			}
			snap := a.store.Snapshot()

			files, err := newExporter(a.cfg, a.log).ExportAll(ctx, &snap, formats...)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for _, file := range files {
				path := filepath.Join(outDir, file.Name)
				if err := os.WriteFile(path, file.Data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Export format: pdf, doc or all")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write the exported files to")
	cmd.Flags().BoolVar(&link, "link", false, "Print the registry URL of the PDF instead of rendering it (remote storage only)")
	return cmd
}
