package repositories

import (
	"context"
	"testing"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/testdb"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewUniqueIndexAndSummary(t *testing.T) {
	db := testdb.Open(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	seller := testdb.CreateUser(t, db, models.RoleSeller)
	alice := testdb.CreateUser(t, db, models.RoleCustomer)
	bob := testdb.CreateUser(t, db, models.RoleCustomer)
	p := testdb.CreateProduct(t, db, seller.ID)

	require.NoError(t, repo.Create(ctx, nil, &models.Review{AuthorID: alice.ID, ProductID: p.ID, Rating: 5, IsApproved: true}))
	require.NoError(t, repo.Create(ctx, nil, &models.Review{AuthorID: bob.ID, ProductID: p.ID, Rating: 2, IsApproved: true}))

	err := repo.Create(ctx, nil, &models.Review{AuthorID: alice.ID, ProductID: p.ID, Rating: 1, IsApproved: true})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	exists, err := repo.Exists(ctx, nil, alice.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	summary, err := repo.Summary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 3.5, summary.Average, 0.001)

	reviews, total, err := repo.List(ctx, &p.ID, pagination.NewParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)
}

func TestReviewSummaryEmpty(t *testing.T) {
	db := testdb.Open(t)
	seller := testdb.CreateUser(t, db, models.RoleSeller)
	p := testdb.CreateProduct(t, db, seller.ID)

	summary, err := NewReviewRepository(db).Summary(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, RatingSummary{}, summary)
}
