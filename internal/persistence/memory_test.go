package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	runAdapterContract(t, NewMemoryStore())
}

func TestMemoryStore_ReadReturnsIndependentCopies(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Write(ctx, testSnapshot("cv_copy")))

	a, err := m.Read(ctx, "cv_copy")
	require.NoError(t, err)
	a.Document.Skills[0].Name = "changed"

	b, err := m.Read(ctx, "cv_copy")
	require.NoError(t, err)
	assert.Equal(t, "React", b.Document.Skills[0].Name)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryStore_WriteCopiesInput(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	snap := testSnapshot("cv_input")
	require.NoError(t, m.Write(ctx, snap))

	snap.Document.Title = "mutated after write"

	got, err := m.Read(ctx, "cv_input")
	require.NoError(t, err)
	assert.Equal(t, "Mon CV", got.Document.Title)
}
