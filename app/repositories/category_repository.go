package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"gorm.io/gorm"
)

// maxCategoryDepth bounds the ancestor walk so corrupt data cannot loop forever.
const maxCategoryDepth = 64

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	IsAncestor(ctx context.Context, ancestorID, categoryID uint) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).UpdateColumns(fields).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// IsAncestor reports whether ancestorID appears on the parent chain starting at
// categoryID, including categoryID itself.
func (r *categoryRepository) IsAncestor(ctx context.Context, ancestorID, categoryID uint) (bool, error) {
	current := &categoryID
	for depth := 0; current != nil && depth < maxCategoryDepth; depth++ {
		if *current == ancestorID {
			return true, nil
		}
		var c models.Category
		err := r.db.WithContext(ctx).Select("id", "parent_id").First(&c, "id = ?", *current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		current = c.ParentID
	}
	if current != nil {
		// chain deeper than maxCategoryDepth; treat as a cycle
		return true, nil
	}
	return false, nil
}
