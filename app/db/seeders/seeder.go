package seeders

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/fakers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Sellers   int
	Customers int
	Products  int
}

type Result struct {
	Categories []models.Category
	Sellers    []models.User
	Customers  []models.User
	Products   int
}

func DefaultOptions() Options {
	return Options{Sellers: 2, Customers: 3, Products: 30}
}

// DBSeed fills an empty catalog with fake jewelry data. Categories are reused
// when they already exist, so seeding twice only adds users and products.
func DBSeed(ctx context.Context, db *gorm.DB, log *zap.Logger, opts Options) (*Result, error) {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)

	res := &Result{}

	root := fakers.CategoryFaker("Jewelry", nil, 0)
	if err := db.WithContext(ctx).Where(models.Category{Name: root.Name}).FirstOrCreate(root).Error; err != nil {
		return nil, fmt.Errorf("failed to seed root category: %w", err)
	}
	for i, name := range fakers.CategoryNames {
		c := fakers.CategoryFaker(name, &root.ID, i+1)
		if err := db.WithContext(ctx).Where(models.Category{Name: name}).FirstOrCreate(c).Error; err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		res.Categories = append(res.Categories, *c)
	}

	for i := 0; i < opts.Sellers; i++ {
		u := fakers.UserFaker(models.RoleSeller)
		if err := userRepo.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to seed seller: %w", err)
		}
		res.Sellers = append(res.Sellers, *u)
	}
	for i := 0; i < opts.Customers; i++ {
		u := fakers.UserFaker(models.RoleCustomer)
		if err := userRepo.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to seed customer: %w", err)
		}
		res.Customers = append(res.Customers, *u)
	}

	if opts.Products > 0 && len(res.Sellers) == 0 {
		return nil, fmt.Errorf("cannot seed products without sellers")
	}
	for i := 0; i < opts.Products; i++ {
		seller := res.Sellers[rand.Intn(len(res.Sellers))]
		category := res.Categories[rand.Intn(len(res.Categories))]
		p := fakers.ProductFaker(seller.ID, category)
		if err := productRepo.Create(ctx, nil, p); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", p.Sku, err)
		}
		res.Products++
	}

	log.Info("database seeded",
		zap.Int("categories", len(res.Categories)+1),
		zap.Int("sellers", len(res.Sellers)),
		zap.Int("customers", len(res.Customers)),
		zap.Int("products", res.Products))
	return res, nil
}
