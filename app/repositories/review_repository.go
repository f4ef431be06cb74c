package repositories

import (
	"context"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"gorm.io/gorm"
)

type RatingSummary struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	Exists(ctx context.Context, tx *gorm.DB, authorID, productID uint) (bool, error)
	List(ctx context.Context, productID *uint, page pagination.Params) ([]models.Review, int64, error)
	Summary(ctx context.Context, productID uint) (RatingSummary, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return use(r.db, tx).WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Exists(ctx context.Context, tx *gorm.DB, authorID, productID uint) (bool, error) {
	var count int64
	err := use(r.db, tx).WithContext(ctx).
		Model(&models.Review{}).
		Where("author_id = ? AND product_id = ?", authorID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) List(ctx context.Context, productID *uint, page pagination.Params) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Review{}).Where("is_approved = ?", true)
	if productID != nil {
		base = base.Where("product_id = ?", *productID)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id ASC").
		Scopes(Paginate(page)).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *reviewRepository) Summary(ctx context.Context, productID uint) (RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, err
	}

	summary := RatingSummary{Count: row.Count}
	if row.Average != nil {
		summary.Average = *row.Average
	}
	return summary, nil
}
