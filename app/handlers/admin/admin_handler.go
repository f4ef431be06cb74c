package admin

import (
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
	"go.uber.org/zap"
)

type AdminHandler struct {
	rs          *renderer.Responder
	log         *zap.Logger
	userRepo    repositories.UserRepository
	orderSvc    *services.OrderService
	paymentSvc  *services.PaymentService
	categorySvc *services.CategoryService
}

func NewAdminHandler(
	rs *renderer.Responder,
	log *zap.Logger,
	userRepo repositories.UserRepository,
	orderSvc *services.OrderService,
	paymentSvc *services.PaymentService,
	categorySvc *services.CategoryService,
) *AdminHandler {
	return &AdminHandler{
		rs:          rs,
		log:         log,
		userRepo:    userRepo,
		orderSvc:    orderSvc,
		paymentSvc:  paymentSvc,
		categorySvc: categorySvc,
	}
}
