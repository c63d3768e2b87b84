package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

// itemOps binds a repeated section to its store operations.
type itemOps struct {
	add    func(*store.Store, context.Context) (string, error)
	update func(*store.Store, string, string, any) error
	remove func(*store.Store, context.Context, string) error
	ids    func(types.CVDocument) []string
}

var itemSections = map[types.SectionKey]itemOps{
	types.SectionExperience: {
		(*store.Store).AddExperience, (*store.Store).UpdateExperienceField, (*store.Store).DeleteExperience,
		func(d types.CVDocument) []string { return idsOf(d.Experiences) },
	},
	types.SectionEducation: {
		(*store.Store).AddEducation, (*store.Store).UpdateEducationField, (*store.Store).DeleteEducation,
		func(d types.CVDocument) []string { return idsOf(d.Educations) },
	},
	types.SectionSkills: {
		(*store.Store).AddSkill, (*store.Store).UpdateSkillField, (*store.Store).DeleteSkill,
		func(d types.CVDocument) []string { return idsOf(d.Skills) },
	},
	types.SectionLanguages: {
		(*store.Store).AddLanguage, (*store.Store).UpdateLanguageField, (*store.Store).DeleteLanguage,
		func(d types.CVDocument) []string { return idsOf(d.Languages) },
	},
	types.SectionCertifications: {
		(*store.Store).AddCertification, (*store.Store).UpdateCertificationField, (*store.Store).DeleteCertification,
		func(d types.CVDocument) []string { return idsOf(d.Certifications) },
	},
	types.SectionProjects: {
		(*store.Store).AddProject, (*store.Store).UpdateProjectField, (*store.Store).DeleteProject,
		func(d types.CVDocument) []string { return idsOf(d.Projects) },
	},
}

func idsOf[T types.Identified](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.GetID()
	}
	return out
}

// resolveItem turns a 0-based position into the id of the item there. Ids
// pass through, and so does anything unknown, which the store then rejects.
func (ops itemOps) resolveItem(doc types.CVDocument, ref string) string {
	ids := ops.ids(doc)
	for _, id := range ids {
		if id == ref {
			return ref
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(ids) {
		return ids[i]
	}
	return ref
}

func parseSection(s string) (types.SectionKey, error) {
	key := types.SectionKey(s)
	if !types.IsKnownSection(key) {
		return "", fmt.Errorf("%w: %q", store.ErrUnknownSection, s)
	}
	return key, nil
}

func itemSection(s string) (types.SectionKey, itemOps, error) {
	key, err := parseSection(s)
	if err != nil {
		return "", itemOps{}, err
	}
	ops, ok := itemSections[key]
	if !ok {
		return "", itemOps{}, fmt.Errorf("section %q has no items", s)
	}
	return key, ops, nil
}

// parseAssignments splits field=value arguments.
func parseAssignments(args []string) ([][2]string, error) {
	out := make([][2]string, 0, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		out = append(out, [2]string{field, value})
	}
	return out, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hobby index %q", s)
	}
	return i, nil
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set the title, the summary or a personal information field",
		Example: `  cvbuilder set title "CV Data"
  cvbuilder set firstName Marie
  cvbuilder set drivingLicense "B, C1"
  cvbuilder set photo ./portrait.jpg`,
		Args: cobra.ExactArgs(2),
		RunE: withCV(opts, func(_ context.Context, _ *cobra.Command, a *app, args []string) error {
			field, value := args[0], args[1]
			switch field {
			case "title":
				return a.store.UpdateTitle(value)
			case "summary":
				return a.store.UpdateSummary(value)
			case "photo":
				uri, err := photoDataURI(value)
				if err != nil {
					return err
				}
				return a.store.UpdatePersonalInfoField(field, uri)
			default:
				return a.store.UpdatePersonalInfoField(field, value)
			}
		}),
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <section> [field=value...]",
		Short: "Add an item to a section and print its ID",
		Example: `  cvbuilder add experience jobTitle="Data Engineer" company=Acme current=true
  cvbuilder add hobbies "Trail running"`,
		Args: cobra.MinimumNArgs(1),
		RunE: withCV(opts, func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			if args[0] == string(types.SectionHobbies) {
				if len(args) != 2 {
					return fmt.Errorf("usage: add hobbies <text>")
				}
				return a.store.AddHobby(ctx, args[1])
			}
			_, ops, err := itemSection(args[0])
			if err != nil {
				return err
			}
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			id, err := ops.add(a.store, ctx)
			if err != nil {
				return err
			}
			for _, kv := range assignments {
				if err := ops.update(a.store, id, kv[0], kv[1]); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <section> <id|index> field=value...",
		Short: "Update fields of an item, given its ID or its 0-based position",
		Example: `  cvbuilder update experience exp_123 endDate=2024-06
  cvbuilder update skills 0 level=4
  cvbuilder update hobbies 0 "Chess"`,
		Args: cobra.MinimumNArgs(3),
		RunE: withCV(opts, func(_ context.Context, _ *cobra.Command, a *app, args []string) error {
			if args[0] == string(types.SectionHobbies) {
				index, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return a.store.UpdateHobby(index, strings.Join(args[2:], " "))
			}
			_, ops, err := itemSection(args[0])
			if err != nil {
				return err
			}
			assignments, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			id := ops.resolveItem(a.store.Document(), args[1])
			for _, kv := range assignments {
				if err := ops.update(a.store, id, kv[0], kv[1]); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <section> <id|index>",
		Short: "Remove an item from a section, given its ID or its 0-based position",
		Args:  cobra.ExactArgs(2),
		RunE: withCV(opts, func(ctx context.Context, _ *cobra.Command, a *app, args []string) error {
			if args[0] == string(types.SectionHobbies) {
				index, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return a.store.DeleteHobby(ctx, index)
			}
			_, ops, err := itemSection(args[0])
			if err != nil {
				return err
			}
			return ops.remove(a.store, ctx, ops.resolveItem(a.store.Document(), args[1]))
		}),
	}
}

// maxPhotoBytes bounds photos embedded in a CV.
const maxPhotoBytes = 2 << 20

// photoDataURI turns an image file into a data URI. Empty values and values
// that already are data URIs pass through.
func photoDataURI(value string) (string, error) {
	if value == "" || strings.HasPrefix(value, "data:image/") {
		return value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return "", fmt.Errorf("photo %s is larger than %d bytes", value, maxPhotoBytes)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("photo %s is not an image (%s)", value, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
