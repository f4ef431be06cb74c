package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"go.uber.org/zap"
)

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"max=100"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
	// ClearParent moves the category to the top level.
	ClearParent bool  `json:"clear_parent"`
	SortOrder   *int  `json:"sort_order"`
	IsActive    *bool `json:"is_active"`
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, log: log}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if err := s.ensureExists(ctx, *in.ParentID); err != nil {
			return nil, err
		}
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = helpers.GenerateSlug(in.Name)
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, apperr.Validation("slug", "Category name or slug already exists")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.log.Info("category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// UpdateCategory rejects a parent that would make the category its own ancestor.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, in UpdateCategoryInput) (*models.Category, error) {
	in.Name = helpers.TrimPtr(in.Name)
	in.Slug = helpers.TrimPtr(in.Slug)
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		if err := s.ensureNameFree(ctx, *in.Name, id); err != nil {
			return nil, err
		}
		fields["name"] = *in.Name
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.SortOrder != nil {
		fields["sort_order"] = *in.SortOrder
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	switch {
	case in.ClearParent:
		fields["parent_id"] = nil
	case in.ParentID != nil:
		if err := s.ensureExists(ctx, *in.ParentID); err != nil {
			return nil, err
		}
		cycle, err := s.categoryRepo.IsAncestor(ctx, id, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category tree: %w", err)
		}
		if cycle {
			return nil, apperr.Validation("parent_id", "A category cannot be placed under itself or one of its descendants")
		}
		fields["parent_id"] = *in.ParentID
	}

	if len(fields) > 0 {
		if err := s.categoryRepo.Update(ctx, id, fields); err != nil {
			if repositories.IsDuplicateKey(err) {
				return nil, apperr.Validation("slug", "Category name or slug already exists")
			}
			return nil, fmt.Errorf("failed to update category %d: %w", id, err)
		}
	}
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) ensureExists(ctx context.Context, id uint) error {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get category %d: %w", id, err)
	}
	if c == nil {
		return apperr.NotFound("Category %d not found", id)
	}
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	if existing != nil && existing.ID != selfID {
		return apperr.Validation("name", "Category %q already exists", name)
	}
	return nil
}
