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
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"max=200"`
	Body      string `json:"body"`
}

type ReviewService struct {
	db          *gorm.DB
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	log         *zap.Logger
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	log *zap.Logger,
) *ReviewService {
	return &ReviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		log:         log,
	}
}

// CreateReview allows one review per author and product. The existence check runs
// in the insert's transaction and the unique index catches concurrent submissions.
func (s *ReviewService) CreateReview(ctx context.Context, authorID uint, in CreateReviewInput) (*models.Review, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", in.ProductID, err)
	}
	if product == nil {
		return nil, apperr.ProductNotFound(in.ProductID)
	}

	review := &models.Review{
		AuthorID:   authorID,
		ProductID:  in.ProductID,
		Rating:     in.Rating,
		Title:      strings.TrimSpace(in.Title),
		Body:       in.Body,
		IsApproved: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.reviewRepo.Exists(ctx, tx, authorID, in.ProductID)
		if err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}
		if exists {
			return apperr.DuplicateReview()
		}

		verified, err := s.orderRepo.HasPurchased(ctx, tx, authorID, in.ProductID)
		if err != nil {
			return fmt.Errorf("failed to check purchase history: %w", err)
		}
		review.IsVerifiedPurchase = verified

		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			if repositories.IsDuplicateKey(err) {
				return apperr.DuplicateReview()
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("review created",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", review.ProductID),
		zap.Bool("verified_purchase", review.IsVerifiedPurchase))
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID *uint, page pagination.Params) (pagination.Page[models.Review], error) {
	reviews, total, err := s.reviewRepo.List(ctx, productID, page)
	if err != nil {
		return pagination.Page[models.Review]{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	return pagination.NewPage(reviews, total, page), nil
}
