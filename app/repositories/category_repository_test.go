package repositories

import (
	"context"
	"testing"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIsAncestor(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	jewelry := testdb.CreateCategory(t, db, "Jewelry", nil)
	rings := testdb.CreateCategory(t, db, "Rings", &jewelry.ID)
	bands := testdb.CreateCategory(t, db, "Wedding Bands", &rings.ID)
	watches := testdb.CreateCategory(t, db, "Watches", nil)

	tests := []struct {
		name     string
		ancestor uint
		start    uint
		want     bool
	}{
		{"self", rings.ID, rings.ID, true},
		{"grandparent", jewelry.ID, bands.ID, true},
		{"descendant is not ancestor", bands.ID, jewelry.ID, false},
		{"unrelated", watches.ID, bands.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.IsAncestor(ctx, tt.ancestor, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryListActiveOrdering(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	b := testdb.CreateCategory(t, db, "Bracelets", nil)
	testdb.CreateCategory(t, db, "Anklets", nil)
	hidden := testdb.CreateCategory(t, db, "Hidden", nil)
	require.NoError(t, repo.Update(ctx, hidden.ID, map[string]any{"is_active": false}))
	require.NoError(t, repo.Update(ctx, b.ID, map[string]any{"sort_order": -1}))

	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Bracelets", categories[0].Name)
	assert.Equal(t, "Anklets", categories[1].Name)

	byName, err := repo.GetByName(ctx, "Anklets")
	require.NoError(t, err)
	require.NotNil(t, byName)

	missing, err := repo.GetByID(ctx, 4242)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
