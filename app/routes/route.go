package routes

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/events"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/handlers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/handlers/admin"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/middlewares"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/metrics"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/token"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	DB          *gorm.DB
	Log         *zap.Logger
	Metrics     *metrics.Metrics
	Publisher   events.Publisher
	Tokens      *token.Manager
	Orders      services.OrderServiceConfig
	Development bool
}

func NewRouter(d Dependencies) *mux.Router {
	rs := renderer.NewResponder(renderer.New(d.Development), d.Log)

	userRepo := repositories.NewUserRepository(d.DB)
	productRepo := repositories.NewProductRepository(d.DB)
	categoryRepo := repositories.NewCategoryRepository(d.DB)
	orderRepo := repositories.NewOrderRepository(d.DB)
	orderItemRepo := repositories.NewOrderItemRepository(d.DB)
	reviewRepo := repositories.NewReviewRepository(d.DB)

	orderSvc := services.NewOrderService(d.DB, productRepo, orderRepo, orderItemRepo, d.Publisher, d.Metrics, d.Log, d.Orders)
	paymentSvc := services.NewPaymentService(d.DB, orderRepo, orderSvc, d.Log)
	productSvc := services.NewProductService(d.DB, productRepo, categoryRepo, reviewRepo, d.Log)
	categorySvc := services.NewCategoryService(categoryRepo, d.Log)
	reviewSvc := services.NewReviewService(d.DB, reviewRepo, productRepo, orderRepo, d.Log)

	healthHandler := handlers.NewHealthHandler(d.DB, rs, d.Log)
	productHandler := handlers.NewProductHandler(productSvc, rs)
	categoryHandler := handlers.NewCategoryHandler(categorySvc, rs)
	orderHandler := handlers.NewOrderHandler(orderSvc, rs)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, rs)
	adminHandler := admin.NewAdminHandler(rs, d.Log, userRepo, orderSvc, paymentSvc, categorySvc)

	authenticate := middlewares.Authenticate(d.Tokens, userRepo, rs, d.Log)
	sellerOnly := middlewares.RequireSeller(rs, d.Log)
	adminOnly := middlewares.RequireAdmin(rs, d.Log)

	router := mux.NewRouter()
	router.Use(middlewares.Recover(d.Log), middlewares.RequestLogger(d.Log, d.Metrics))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.JSON(w, http.StatusNotFound, renderer.ErrorBody{Message: "Not found", Error: "not_found"})
	})

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/products", productHandler.Products).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.ProductDetail).Methods(http.MethodGet)
	api.HandleFunc("/categories", categoryHandler.Categories).Methods(http.MethodGet)
	api.HandleFunc("/reviews", reviewHandler.Reviews).Methods(http.MethodGet)

	user := api.NewRoute().Subrouter()
	user.Use(authenticate)
	user.HandleFunc("/orders", orderHandler.OrderList).Methods(http.MethodGet)
	user.HandleFunc("/orders", orderHandler.CreateOrder).Methods(http.MethodPost)
	user.HandleFunc("/orders/{id:[0-9]+}", orderHandler.OrderDetail).Methods(http.MethodGet)
	user.HandleFunc("/reviews", reviewHandler.CreateReview).Methods(http.MethodPost)

	seller := api.NewRoute().Subrouter()
	seller.Use(authenticate, sellerOnly)
	seller.HandleFunc("/products", productHandler.CreateProduct).Methods(http.MethodPost)
	seller.HandleFunc("/products/{id:[0-9]+}", productHandler.UpdateProduct).Methods(http.MethodPut)
	seller.HandleFunc("/products/{id:[0-9]+}", productHandler.DeleteProduct).Methods(http.MethodDelete)
	seller.HandleFunc("/seller/products", productHandler.SellerProducts).Methods(http.MethodGet)

	adminRoutes := api.NewRoute().Subrouter()
	adminRoutes.Use(authenticate, adminOnly)
	adminRoutes.HandleFunc("/categories", adminHandler.CreateCategory).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/categories/{id:[0-9]+}", adminHandler.UpdateCategory).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/orders/{id:[0-9]+}/status", adminHandler.UpdateOrderStatus).Methods(http.MethodPatch)
	adminRoutes.HandleFunc("/orders/{id:[0-9]+}/payment", adminHandler.PaymentCallback).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/admin/orders", adminHandler.Orders).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/admin/users", adminHandler.Users).Methods(http.MethodGet)

	return router
}
