package seeders

import (
	"context"
	"testing"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/fakers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/testdb"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDBSeed(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	res, err := DBSeed(ctx, db, zap.NewNop(), Options{Sellers: 2, Customers: 1, Products: 12})
	require.NoError(t, err)
	assert.Len(t, res.Categories, len(fakers.CategoryNames))
	assert.Equal(t, 12, res.Products)

	var products []models.Product
	require.NoError(t, db.Preload("Categories").Find(&products).Error)
	require.Len(t, products, 12)
	for _, p := range products {
		assert.False(t, p.Price.IsNegative())
		assert.GreaterOrEqual(t, p.InventoryCount, 0)
		assert.NotEmpty(t, p.Sku)
		assert.Len(t, p.Categories, 1)
	}

	users := repositories.NewUserRepository(db)
	seller, err := users.FindByEmail(ctx, res.Sellers[0].Email)
	require.NoError(t, err)
	require.NotNil(t, seller)
	assert.Equal(t, models.RoleSeller, seller.Role)
	assert.True(t, users.CheckPassword(seller, fakers.DefaultPassword))

	_, err = DBSeed(ctx, db, zap.NewNop(), Options{Sellers: 1, Products: 1})
	require.NoError(t, err)

	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(len(fakers.CategoryNames)+1), categories)
}
