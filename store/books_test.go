package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(NewMemKV())
}

func validListing(title string) Book {
	return Book{
		Title:      title,
		Author:     "Frank Herbert",
		Price:      "50",
		Category:   "Scifi",
		Year:       "1965",
		Publisher:  "Ace",
		City:       "Aarhus",
		PostalCode: "8000",
	}
}

func TestAppendAndList(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	added, err := mgr.Books.Append(ctx, validListing("Dune"))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID, "append assigns an id")

	got, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, added, got[0])
}

func TestAppendPreservesOrder(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	titles := []string{"Dune", "Ringenes Herre", "Kvinden i buret"}
	for _, title := range titles {
		_, err := mgr.Books.Append(ctx, validListing(title))
		require.NoError(t, err)
	}

	got, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, got[i].Title)
	}
}

func TestAppendRejectsDuplicateTitle(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Books.Append(ctx, validListing("Dune"))
	require.NoError(t, err)

	_, err = mgr.Books.Append(ctx, validListing("Dune"))
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	got, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "rejected append must not grow the collection")
}

func TestAppendValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Book)
		missing []string
	}{
		{"blank title", func(b *Book) { b.Title = "" }, []string{"title"}},
		{"blank author", func(b *Book) { b.Author = "" }, []string{"author"}},
		{"blank price", func(b *Book) { b.Price = "" }, []string{"price"}},
		{"blank category", func(b *Book) { b.Category = "" }, []string{"category"}},
		{"blank year", func(b *Book) { b.Year = "" }, []string{"year"}},
		{"blank publisher", func(b *Book) { b.Publisher = "" }, []string{"publisher"}},
		{"blank city", func(b *Book) { b.City = "" }, []string{"city"}},
		{"blank postal code", func(b *Book) { b.PostalCode = "" }, []string{"postalCode"}},
		{"whitespace only counts as blank", func(b *Book) { b.Title = "   " }, []string{"title"}},
		{
			"all blank",
			func(b *Book) { *b = Book{} },
			[]string{"title", "category", "year", "publisher", "price", "author", "postalCode", "city"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mgr := newTestManager(t)
			b := validListing("Dune")
			tc.mutate(&b)

			_, err := mgr.Books.Append(context.Background(), b)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.missing, ve.Missing)

			got, err := mgr.Books.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got, "invalid listing must not be persisted")
		})
	}
}

func TestAppendAllowsOptionalFieldsBlank(t *testing.T) {
	mgr := newTestManager(t)

	b := validListing("Dune")
	b.Subcategory = ""
	b.Description = ""
	b.ImageURI = ""

	_, err := mgr.Books.Append(context.Background(), b)
	assert.NoError(t, err)
}

func TestRemoveByTitle(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Books.Append(ctx, validListing("Dune"))
	require.NoError(t, err)
	_, err = mgr.Books.Append(ctx, validListing("Ringenes Herre"))
	require.NoError(t, err)

	require.NoError(t, mgr.Books.RemoveByTitle(ctx, "Dune"))

	got, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ringenes Herre", got[0].Title)
}

func TestRemoveByTitleUnknown(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	err := mgr.Books.RemoveByTitle(ctx, "Dune")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = mgr.Books.Append(ctx, validListing("Ringenes Herre"))
	require.NoError(t, err)

	err = mgr.Books.RemoveByTitle(ctx, "Dune")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "failed remove must not change the collection")
}

func TestGetByTitle(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	added, err := mgr.Books.Append(ctx, validListing("Dune"))
	require.NoError(t, err)

	got, err := mgr.Books.GetByTitle(ctx, "Dune")
	require.NoError(t, err)
	assert.Equal(t, added, got)

	_, err = mgr.Books.GetByTitle(ctx, "Hobbitten")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchByTitle(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	for _, title := range []string{"Dune", "Dune Messiah", "Ringenes Herre"} {
		_, err := mgr.Books.Append(ctx, validListing(title))
		require.NoError(t, err)
	}

	got, err := mgr.Books.SearchByTitle(ctx, "dune")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "Dune Messiah", got[1].Title)

	got, err = mgr.Books.SearchByTitle(ctx, "herre")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ringenes Herre", got[0].Title)

	got, err = mgr.Books.SearchByTitle(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3, "blank term matches everything")

	got, err = mgr.Books.SearchByTitle(ctx, "hobbit")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListSurfacesStorageError(t *testing.T) {
	kv := NewMemKV()
	mgr := NewManager(kv)

	boom := errors.New("disk I/O error")
	kv.GetErr = boom

	_, err := mgr.Books.List(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load books")
}

func TestAppendStorageErrorLeavesCollectionUnchanged(t *testing.T) {
	kv := NewMemKV()
	mgr := NewManager(kv)
	ctx := context.Background()

	_, err := mgr.Books.Append(ctx, validListing("Dune"))
	require.NoError(t, err)

	boom := errors.New("disk I/O error")
	kv.SetErr = boom
	_, err = mgr.Books.Append(ctx, validListing("Ringenes Herre"))
	require.ErrorIs(t, err, boom)

	kv.SetErr = nil
	got, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)

	// Once the storage recovers the same append goes through.
	_, err = mgr.Books.Append(ctx, validListing("Ringenes Herre"))
	require.NoError(t, err)
}

func TestSellThenDeleteScenario(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	dune := Book{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Price:       "50",
		Category:    "Scifi",
		Year:        "1965",
		Publisher:   "Ace",
		City:        "Aarhus",
		PostalCode:  "8000",
		Description: "Let brugt.",
	}
	added, err := mgr.Books.Append(ctx, dune)
	require.NoError(t, err)

	// The listing comes back with every submitted field intact.
	got, err := mgr.Books.GetByTitle(ctx, "Dune")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, "50", got.Price)
	assert.Equal(t, "Let brugt.", got.Description)
	assert.Equal(t, added.ID, got.ID)

	require.NoError(t, mgr.Books.RemoveByTitle(ctx, "Dune"))

	books, err := mgr.Books.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
	_, err = mgr.Books.GetByTitle(ctx, "Dune")
	assert.True(t, errors.Is(err, ErrNotFound))
}
