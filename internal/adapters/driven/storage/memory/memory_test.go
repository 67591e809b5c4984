package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func testDocument(path string) *domain.Document {
	return &domain.Document{
		ID:        domain.DocumentID(path),
		Path:      path,
		Title:     domain.TitleFromPath(path),
		Status:    domain.StatusPending,
		DateAdded: time.Now().UTC(),
	}
}

func TestDocumentStore_Roundtrip(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := testDocument("/library/a.pdf")
	require.NoError(t, store.Insert(ctx, doc))

	assert.ErrorIs(t, store.Insert(ctx, testDocument("/library/a.pdf")), domain.ErrDuplicatePath)

	got, err := store.GetByPath(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	// Returned documents are copies; mutating one must not leak back.
	got.Title = "mutated"
	fresh, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", fresh.Title)
}

func TestDocumentStore_FailWrites(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, testDocument("/library/a.pdf")))

	store.SetFailWrites(true)
	id := domain.DocumentID("/library/a.pdf")

	assert.ErrorIs(t, store.SetStatus(ctx, id, domain.StatusIndexing), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, store.Ping(ctx), domain.ErrStorageUnavailable)

	// Reads keep working during the outage.
	_, err := store.Get(ctx, id)
	assert.NoError(t, err)

	store.SetFailWrites(false)
	assert.NoError(t, store.Ping(ctx))
}

func TestGroupStore_DeleteDetaches(t *testing.T) {
	docs := NewDocumentStore()
	groups := NewGroupStore(docs)
	ctx := context.Background()

	require.NoError(t, groups.Create(ctx, &domain.Group{ID: "g1", Name: "Papers"}))
	assert.ErrorIs(t, groups.Create(ctx, &domain.Group{ID: "g2", Name: "Papers"}),
		domain.ErrDuplicateName)

	doc := testDocument("/library/a.pdf")
	doc.GroupID = "g1"
	require.NoError(t, docs.Insert(ctx, doc))

	require.NoError(t, groups.Delete(ctx, "g1"))
	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.GroupID)

	assert.ErrorIs(t, groups.Delete(ctx, "g1"), domain.ErrNotFound)
}

func TestGroupStore_ListSorted(t *testing.T) {
	groups := NewGroupStore(nil)
	ctx := context.Background()

	require.NoError(t, groups.Create(ctx, &domain.Group{ID: "g1", Name: "zeta"}))
	require.NoError(t, groups.Create(ctx, &domain.Group{ID: "g2", Name: "alpha"}))

	list, err := groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)
}
