package handlers

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/format"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
)

type OrderHandler struct {
	orders *services.OrderService
	rs     *renderer.Responder
}

func NewOrderHandler(orders *services.OrderService, rs *renderer.Responder) *OrderHandler {
	return &OrderHandler{orders: orders, rs: rs}
}

// OrderView adds display-only fields to an order.
type OrderView struct {
	*models.Order
	TotalDisplay string `json:"total_display"`
}

func NewOrderView(o *models.Order) OrderView {
	return OrderView{Order: o, TotalDisplay: format.Money(o.TotalAmount)}
}

func NewOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = NewOrderView(&orders[i])
	}
	return views
}

type orderResponse struct {
	Message string    `json:"message,omitempty"`
	Order   OrderView `json:"order"`
}

type OrderListResponse struct {
	Orders     []OrderView     `json:"orders"`
	Pagination pagination.Meta `json:"pagination"`
}

func (h *OrderHandler) OrderList(w http.ResponseWriter, r *http.Request) {
	userID := helpers.GetUserIDFromContext(r.Context())
	page, err := h.orders.ListOrders(r.Context(), userID,
		pagination.ParseParams(r.URL.Query(), pagination.DefaultPerPageOrders))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, OrderListResponse{Orders: NewOrderViews(page.Items), Pagination: page.Meta})
}

// CreateOrder answers an unknown or unavailable product with 400, not 404.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in services.PlaceOrderInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), helpers.GetUserIDFromContext(r.Context()), in)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			h.rs.ErrorStatus(w, r, http.StatusBadRequest, err)
			return
		}
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, orderResponse{Message: "Order created successfully", Order: NewOrderView(order)})
}

func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	order, err := h.orders.GetOrder(r.Context(), helpers.GetUserIDFromContext(r.Context()), id)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, orderResponse{Order: NewOrderView(order)})
}
