package admin

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/handlers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"go.uber.org/zap"
)

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.orderSvc.ListAllOrders(r.Context(),
		models.OrderStatus(q.Get("status")),
		pagination.ParseParams(q, pagination.DefaultPerPageAdmin))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, handlers.OrderListResponse{Orders: handlers.NewOrderViews(page.Items), Pagination: page.Meta})
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var in services.UpdateStatusInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), id, in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.log.Info("order status updated by admin",
		zap.Uint("admin_id", helpers.GetUserIDFromContext(r.Context())),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)))
	h.rs.JSON(w, http.StatusOK, map[string]any{"message": "Order status updated", "order": handlers.NewOrderView(order)})
}

// PaymentCallback records the status reported by the payment provider.
func (h *AdminHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var in services.PaymentNotification
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	order, err := h.paymentSvc.RecordPaymentStatus(r.Context(), id, in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]any{"message": "Payment status recorded", "order": handlers.NewOrderView(order)})
}
