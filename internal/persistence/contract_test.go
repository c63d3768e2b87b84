package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(id string) *types.Snapshot {
	n := 0
	ids := func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%s_%d", prefix, id, n)
	}
	snap := &types.Snapshot{
		Document:         types.ExampleDocument(id, ids),
		SelectedTemplate: types.TemplateClassic,
		Language:         types.LanguageFrench,
		Layout:           types.DefaultLayout(),
		UpdatedAt:        time.Now().UTC().Truncate(time.Millisecond),
	}
	return snap
}

// runAdapterContract exercises the behavior every Adapter must share.
func runAdapterContract(t *testing.T, adapter Adapter) {
	t.Helper()
	ctx := context.Background()

	t.Run("read missing", func(t *testing.T) {
		_, err := adapter.Read(ctx, "cv_missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		snap := testSnapshot("cv_roundtrip")
		snap.SectionsOrder = []types.SectionKey{types.SectionSkills, types.SectionSummary}
		snap.VisibleSections[types.SectionLanguages] = true
		snap.OptionalFields[types.SectionPersonalInfo]["nationality"] = true
		require.NoError(t, adapter.Write(ctx, snap))

		got, err := adapter.Read(ctx, "cv_roundtrip")
		require.NoError(t, err)
		assert.Equal(t, snap.Document, got.Document)
		assert.Equal(t, snap.SectionsOrder, got.SectionsOrder)
		assert.Equal(t, snap.VisibleSections, got.VisibleSections)
		assert.Equal(t, snap.OptionalFields, got.OptionalFields)
		assert.Equal(t, snap.SelectedTemplate, got.SelectedTemplate)
	})

	t.Run("overwrite replaces everything", func(t *testing.T) {
		first := testSnapshot("cv_overwrite")
		require.NoError(t, adapter.Write(ctx, first))

		second := types.Snapshot{
			Document:  types.NewDocument("cv_overwrite"),
			Layout:    types.DefaultLayout(),
			UpdatedAt: time.Now().UTC(),
		}
		second.Document.Title = "Second"
		require.NoError(t, adapter.Write(ctx, &second))

		got, err := adapter.Read(ctx, "cv_overwrite")
		require.NoError(t, err)
		assert.Equal(t, "Second", got.Document.Title)
		assert.Empty(t, got.Document.Experiences)
		assert.Empty(t, got.Document.PersonalInfo.FirstName)
	})

	t.Run("concurrent writes never mix", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				snap := testSnapshot("cv_race")
				snap.Document.Title = fmt.Sprintf("title-%d", i)
				snap.Document.Summary = fmt.Sprintf("summary-%d", i)
				assert.NoError(t, adapter.Write(ctx, snap))
			}(i)
		}
		wg.Wait()

		got, err := adapter.Read(ctx, "cv_race")
		require.NoError(t, err)
		var n int
		_, err = fmt.Sscanf(got.Document.Title, "title-%d", &n)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("summary-%d", n), got.Document.Summary)
	})

	t.Run("list and delete", func(t *testing.T) {
		require.NoError(t, adapter.Write(ctx, testSnapshot("cv_listed")))

		list, err := adapter.List(ctx)
		require.NoError(t, err)
		found := false
		for _, s := range list {
			if s.ID == "cv_listed" {
				found = true
				assert.Equal(t, "Mon CV", s.Title)
			}
		}
		assert.True(t, found)

		require.NoError(t, adapter.Delete(ctx, "cv_listed"))
		_, err = adapter.Read(ctx, "cv_listed")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, adapter.Delete(ctx, "cv_listed"), ErrNotFound)
	})

	t.Run("rejects snapshot without id", func(t *testing.T) {
		snap := testSnapshot("")
		assert.Error(t, adapter.Write(ctx, snap))
	})
}
