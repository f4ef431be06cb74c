package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetForCustomer(ctx context.Context, id, customerID uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint, page pagination.Params) ([]models.Order, int64, error)
	ListAll(ctx context.Context, status models.OrderStatus, page pagination.Params) ([]models.Order, int64, error)
	LockByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	HasPurchased(ctx context.Context, tx *gorm.DB, customerID, productID uint) (bool, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *gormOrderRepository) GetForCustomer(ctx context.Context, id, customerID uint) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Where("customer_id = ?", customerID).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *gormOrderRepository) ListByCustomer(ctx context.Context, customerID uint, page pagination.Params) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Session(&gorm.Session{}).
		Preload("Items", orderItemsByID).
		Order("created_at DESC").
		Order("id ASC").
		Scopes(Paginate(page)).
		Find(&orders).Error

	return orders, total, err
}

func (r *gormOrderRepository) ListAll(ctx context.Context, status models.OrderStatus, page pagination.Params) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		base = base.Where("status = ?", status)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Session(&gorm.Session{}).
		Preload("Items", orderItemsByID).
		Order("created_at DESC").
		Order("id ASC").
		Scopes(Paginate(page)).
		Find(&orders).Error

	return orders, total, err
}

func (r *gormOrderRepository) LockByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := forUpdate(tx.WithContext(ctx)).
		Preload("Items", orderItemsByID).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	return use(r.db, tx).WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).UpdateColumns(fields).Error
}

// HasPurchased reports whether the customer has a non-cancelled order containing the product.
func (r *gormOrderRepository) HasPurchased(ctx context.Context, tx *gorm.DB, customerID, productID uint) (bool, error) {
	var count int64
	err := use(r.db, tx).WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders o ON o.id = order_items.order_id").
		Where("o.customer_id = ? AND order_items.product_id = ?", customerID, productID).
		Where("o.status NOT IN ?", []models.OrderStatus{models.OrderStatusCancelled, models.OrderStatusRefunded}).
		Count(&count).Error
	return count > 0, err
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}
