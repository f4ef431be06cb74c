package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Product, error)
	Search(ctx context.Context, filter ProductFilter, page pagination.Params) ([]models.Product, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	ReplaceCategories(ctx context.Context, tx *gorm.DB, product *models.Product, categories []models.Category) error
	SetActive(ctx context.Context, id uint, active bool) error
	SkuExists(ctx context.Context, sku string) (bool, error)

	LockForOrder(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Product, error)
	DecrementInventory(ctx context.Context, tx *gorm.DB, id uint, quantity int) (bool, error)
	IncrementInventory(ctx context.Context, tx *gorm.DB, id uint, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, tx *gorm.DB, product *models.Product) error {
	return use(p.db, tx).WithContext(ctx).Create(product).Error
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Categories").
		First(&product, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetActiveByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Scopes(ActiveProducts).
		Preload("Categories").
		First(&product, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Search(ctx context.Context, filter ProductFilter, page pagination.Params) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	base := p.db.WithContext(ctx).Model(&models.Product{}).Scopes(filter.Scopes()...)

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Session(&gorm.Session{}).
		Scopes(SortProducts(filter.Sort), Paginate(page)).
		Preload("Categories").
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return use(p.db, tx).WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumns(fields).Error
}

func (p *productRepository) ReplaceCategories(ctx context.Context, tx *gorm.DB, product *models.Product, categories []models.Category) error {
	return use(p.db, tx).WithContext(ctx).Model(product).Association("Categories").Replace(categories)
}

func (p *productRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"is_active": active, "updated_at": time.Now()}).Error
}

func (p *productRepository) SkuExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

// LockForOrder loads the given products inside tx, locking their rows in ascending
// id order so concurrent orders over overlapping products cannot deadlock.
// Missing ids are simply absent from the result.
func (p *productRepository) LockForOrder(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := forUpdate(tx.WithContext(ctx)).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

// DecrementInventory subtracts quantity only if enough stock remains on an active
// product. It reports false when the guard rejected the update.
func (p *productRepository) DecrementInventory(ctx context.Context, tx *gorm.DB, id uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}
	res := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND inventory_count >= ?", id, true, quantity).
		UpdateColumns(map[string]any{
			"inventory_count": gorm.Expr("inventory_count - ?", quantity),
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (p *productRepository) IncrementInventory(ctx context.Context, tx *gorm.DB, id uint, quantity int) error {
	return tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"inventory_count": gorm.Expr("inventory_count + ?", quantity),
			"updated_at":      time.Now(),
		}).Error
}

// forUpdate adds SELECT ... FOR UPDATE on engines that support row locks.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
