// Package testdb opens throwaway SQLite databases with the application schema
// and provides fixtures for package tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a migrated database backed by a file in t.TempDir. The pool is
// limited to one connection so that transactions serialize the way row locks
// do on MySQL.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gemcart.db")
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	n := seq.Add(1)
	u := &models.User{
		Username:  fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

type ProductOption func(*models.Product)

func WithPrice(price string) ProductOption {
	return func(p *models.Product) { p.Price = decimal.RequireFromString(price) }
}

func WithStock(n int) ProductOption {
	return func(p *models.Product) { p.InventoryCount = n }
}

func WithTitle(title string) ProductOption {
	return func(p *models.Product) { p.Title = title }
}

func WithDescription(desc string) ProductOption {
	return func(p *models.Product) { p.Description = desc }
}

func WithCategories(categories ...models.Category) ProductOption {
	return func(p *models.Product) { p.Categories = categories }
}

func Inactive() ProductOption {
	return func(p *models.Product) { p.IsActive = false }
}

func CreateProduct(t testing.TB, db *gorm.DB, sellerID uint, opts ...ProductOption) *models.Product {
	t.Helper()

	n := seq.Add(1)
	p := &models.Product{
		Title:          fmt.Sprintf("Product %d", n),
		Description:    "Handcrafted piece",
		Price:          decimal.NewFromInt(100),
		InventoryCount: 10,
		Sku:            fmt.Sprintf("SKU-%05d", n),
		IsActive:       true,
		SellerID:       sellerID,
	}
	for _, opt := range opts {
		opt(p)
	}

	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateCategory(t testing.TB, db *gorm.DB, name string, parentID *uint) *models.Category {
	t.Helper()

	n := seq.Add(1)
	c := &models.Category{
		Name:     name,
		Slug:     fmt.Sprintf("cat-%d", n),
		ParentID: parentID,
		IsActive: true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
