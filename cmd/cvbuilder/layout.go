package main

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <section> [field]",
		Short: "Show or hide a section, or an optional field of a section",
		Example: `  cvbuilder toggle projects
  cvbuilder toggle personalInfo nationality`,
		Args: cobra.RangeArgs(1, 2),
		RunE: withCV(opts, func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			key, err := parseSection(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				if err := a.store.ToggleOptionalField(ctx, key, args[1]); err != nil {
					return err
				}
				state := onOff(a.store.Layout().OptionalFieldEnabled(key, args[1]))
				fmt.Fprintf(cmd.OutOrStdout(), "%s.%s %s\n", key, args[1], state)
				return nil
			}
			if err := a.store.ToggleSectionVisibility(ctx, key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", key, onOff(a.store.Layout().VisibleSections[key]))
			return nil
		}),
	}
}

func onOff(b bool) string {
	if b {
		return "shown"
	}
	return "hidden"
}

func newReorderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <section>...",
		Short: "Set the order in which sections are rendered",
		Args:  cobra.MinimumNArgs(1),
		RunE: withCV(opts, func(ctx context.Context, _ *cobra.Command, a *app, args []string) error {
			order := make([]types.SectionKey, 0, len(args))
			for _, arg := range args {
				key, err := parseSection(arg)
				if err != nil {
					return err
				}
				order = append(order, key)
			}
			return a.store.ReorderSections(ctx, order)
		}),
	}
}

func newTemplateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "template <name>",
		Short:     "Select the visual template",
		Args:      cobra.ExactArgs(1),
		ValidArgs: types.Templates,
		RunE: withCV(opts, func(ctx context.Context, _ *cobra.Command, a *app, args []string) error {
			return a.store.UpdateTemplate(ctx, args[0])
		}),
	}
}

func newLanguageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "language <fr|en>",
		Short:     "Select the language of headings and labels",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{types.LanguageFrench, types.LanguageEnglish},
		RunE: withCV(opts, func(ctx context.Context, _ *cobra.Command, a *app, args []string) error {
			return a.store.UpdateLanguage(ctx, args[0])
		}),
	}
}
