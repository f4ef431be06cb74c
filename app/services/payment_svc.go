package services

import (
	"context"
	"fmt"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentNotification is the status reported by the external payment provider.
// Its contents are trusted as-is; verifying the provider is not done here.
type PaymentNotification struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" validate:"required"`
}

type PaymentService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
	orders    *OrderService
	log       *zap.Logger
}

func NewPaymentService(db *gorm.DB, orderRepo repositories.OrderRepository, orders *OrderService, log *zap.Logger) *PaymentService {
	return &PaymentService{db: db, orderRepo: orderRepo, orders: orders, log: log}
}

// RecordPaymentStatus stores the payment status on the order. A successful
// payment confirms a pending order; a failed payment cancels it and restocks.
func (s *PaymentService) RecordPaymentStatus(ctx context.Context, orderID uint, in PaymentNotification) (*models.Order, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if !in.PaymentStatus.Valid() {
		return nil, apperr.Validation("payment_status", "Unknown payment status %q", in.PaymentStatus)
	}

	var changed bool
	var restored int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to load order %d: %w", orderID, err)
		}
		if order == nil {
			return apperr.NotFound("Order not found")
		}

		next := order.Status
		if order.Status == models.OrderStatusPending {
			switch in.PaymentStatus {
			case models.PaymentStatusPaid:
				next = models.OrderStatusConfirmed
			case models.PaymentStatusFailed:
				next = models.OrderStatusCancelled
			}
		}

		s.log.Info("payment notification",
			zap.String("order_number", order.OrderNumber),
			zap.String("payment_status", string(in.PaymentStatus)),
			zap.String("order_status", string(next)))

		changed, restored, err = s.orders.transition(ctx, tx, order, next, "",
			map[string]any{"payment_status": in.PaymentStatus})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.orders.metrics.InventoryRestored.Add(float64(restored))
	return s.orders.afterTransition(ctx, orderID, changed)
}
