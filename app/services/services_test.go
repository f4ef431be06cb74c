package services

import (
	"testing"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/testdb"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/events"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	products  repositories.ProductRepository
	orders    repositories.OrderRepository
	metrics   *metrics.Metrics
	publisher *events.MemoryPublisher

	orderSvc    *OrderService
	paymentSvc  *PaymentService
	productSvc  *ProductService
	categorySvc *CategoryService
	reviewSvc   *ReviewService
}

func newTestEnv(t *testing.T, cfg OrderServiceConfig) *testEnv {
	t.Helper()

	db := testdb.Open(t)
	log := zap.NewNop()
	m := metrics.New()
	pub := &events.MemoryPublisher{}

	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	orderSvc := NewOrderService(db, productRepo, orderRepo, orderItemRepo, pub, m, log, cfg)

	return &testEnv{
		db:          db,
		products:    productRepo,
		orders:      orderRepo,
		metrics:     m,
		publisher:   pub,
		orderSvc:    orderSvc,
		paymentSvc:  NewPaymentService(db, orderRepo, orderSvc, log),
		productSvc:  NewProductService(db, productRepo, categoryRepo, reviewRepo, log),
		categorySvc: NewCategoryService(categoryRepo, log),
		reviewSvc:   NewReviewService(db, reviewRepo, productRepo, orderRepo, log),
	}
}

func shipping() ShippingAddress {
	return ShippingAddress{
		FirstName:    "Wanjiru",
		LastName:     "Kamau",
		AddressLine1: "12 Moi Avenue",
		City:         "Nairobi",
		State:        "Nairobi",
		PostalCode:   "00100",
		Country:      "Kenya",
	}
}

func orderFor(lines ...OrderLine) PlaceOrderInput {
	return PlaceOrderInput{Items: lines, ShippingAddress: shipping()}
}
