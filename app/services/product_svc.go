package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Title          string          `json:"title" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	InventoryCount int             `json:"inventory_count" validate:"gte=0"`
	Sku            string          `json:"sku" validate:"required,min=1,max=100"`
	Weight         decimal.Decimal `json:"weight"`
	Material       string          `json:"material" validate:"max=100"`
	Gemstone       string          `json:"gemstone" validate:"max=100"`
	Size           string          `json:"size" validate:"max=50"`
	IsFeatured     bool            `json:"is_featured"`
	CategoryIDs    []uint          `json:"category_ids"`
}

// UpdateProductInput is a partial update; nil fields are left unchanged. The SKU cannot change.
type UpdateProductInput struct {
	Title          *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	InventoryCount *int             `json:"inventory_count" validate:"omitempty,gte=0"`
	Weight         *decimal.Decimal `json:"weight"`
	Material       *string          `json:"material" validate:"omitempty,max=100"`
	Gemstone       *string          `json:"gemstone" validate:"omitempty,max=100"`
	Size           *string          `json:"size" validate:"omitempty,max=50"`
	IsFeatured     *bool            `json:"is_featured"`
	IsActive       *bool            `json:"is_active"`
	CategoryIDs    *[]uint          `json:"category_ids"`
}

type ProductService struct {
	db           *gorm.DB
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	reviewRepo   repositories.ReviewRepository
	log          *zap.Logger
}

func NewProductService(
	db *gorm.DB,
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	reviewRepo repositories.ReviewRepository,
	log *zap.Logger,
) *ProductService {
	return &ProductService{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		log:          log,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter, page pagination.Params) (pagination.Page[models.Product], error) {
	filter.IncludeInactive = false
	filter.SellerID = nil

	products, total, err := s.productRepo.Search(ctx, filter, page)
	if err != nil {
		return pagination.Page[models.Product]{}, fmt.Errorf("failed to search products: %w", err)
	}
	return pagination.NewPage(products, total, page), nil
}

// ListSellerProducts includes inactive listings. Sellers see their own products,
// admins see every seller's.
func (s *ProductService) ListSellerProducts(ctx context.Context, actor *models.User, filter repositories.ProductFilter, page pagination.Params) (pagination.Page[models.Product], error) {
	if !actor.Role.CanSell() {
		return pagination.Page[models.Product]{}, apperr.PermissionDenied("Only sellers can list their products")
	}
	filter.IncludeInactive = true
	filter.SellerID = nil
	if !actor.Role.IsAdmin() {
		filter.SellerID = &actor.ID
	}

	products, total, err := s.productRepo.Search(ctx, filter, page)
	if err != nil {
		return pagination.Page[models.Product]{}, fmt.Errorf("failed to search products: %w", err)
	}
	return pagination.NewPage(products, total, page), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}

	summary, err := s.reviewRepo.Summary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise reviews for product %d: %w", id, err)
	}
	avg := summary.Average
	product.AverageRating = &avg
	product.ReviewCount = &summary.Count
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, actor *models.User, in CreateProductInput) (*models.Product, error) {
	if !actor.Role.CanSell() {
		return nil, apperr.PermissionDenied("Only sellers and admins can create products")
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Sku = strings.TrimSpace(in.Sku)
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, apperr.Validation("price", "Price must not be negative")
	}
	if in.Weight.IsNegative() {
		return nil, apperr.Validation("weight", "Weight must not be negative")
	}

	exists, err := s.productRepo.SkuExists(ctx, in.Sku)
	if err != nil {
		return nil, fmt.Errorf("failed to check sku: %w", err)
	}
	if exists {
		return nil, apperr.DuplicateSKU(in.Sku)
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	product := &models.Product{
		Title:          in.Title,
		Description:    in.Description,
		Price:          in.Price.Round(2),
		InventoryCount: in.InventoryCount,
		Sku:            in.Sku,
		Weight:         in.Weight,
		Material:       in.Material,
		Gemstone:       in.Gemstone,
		Size:           in.Size,
		IsActive:       true,
		IsFeatured:     in.IsFeatured,
		SellerID:       actor.ID,
		Categories:     categories,
	}
	if err := s.productRepo.Create(ctx, nil, product); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, apperr.DuplicateSKU(in.Sku)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("product created", zap.Uint("product_id", product.ID), zap.String("sku", product.Sku), zap.Uint("seller_id", actor.ID))
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, actor *models.User, id uint, in UpdateProductInput) (*models.Product, error) {
	in.Title = helpers.TrimPtr(in.Title)
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	product, err := s.ownedProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperr.Validation("price", "Price must not be negative")
		}
		fields["price"] = in.Price.Round(2)
	}
	if in.InventoryCount != nil {
		fields["inventory_count"] = *in.InventoryCount
	}
	if in.Weight != nil {
		if in.Weight.IsNegative() {
			return nil, apperr.Validation("weight", "Weight must not be negative")
		}
		fields["weight"] = *in.Weight
	}
	if in.Material != nil {
		fields["material"] = *in.Material
	}
	if in.Gemstone != nil {
		fields["gemstone"] = *in.Gemstone
	}
	if in.Size != nil {
		fields["size"] = *in.Size
	}
	if in.IsFeatured != nil {
		fields["is_featured"] = *in.IsFeatured
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	var categories []models.Category
	if in.CategoryIDs != nil {
		categories, err = s.categoryRepo.FindByIDs(ctx, *in.CategoryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Update(ctx, tx, id, fields); err != nil {
			return fmt.Errorf("failed to update product %d: %w", id, err)
		}
		if in.CategoryIDs == nil {
			return nil
		}
		if err := s.productRepo.ReplaceCategories(ctx, tx, product, categories); err != nil {
			return fmt.Errorf("failed to update categories of product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct deactivates the product. Rows stay so past orders and reviews keep their references.
func (s *ProductService) DeleteProduct(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.ownedProduct(ctx, actor, id); err != nil {
		return err
	}
	if err := s.productRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate product %d: %w", id, err)
	}
	s.log.Info("product deactivated", zap.Uint("product_id", id), zap.Uint("actor_id", actor.ID))
	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, actor *models.User, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}
	if product.SellerID != actor.ID && !actor.Role.IsAdmin() {
		return nil, apperr.PermissionDenied("You can only modify your own products")
	}
	return product, nil
}
