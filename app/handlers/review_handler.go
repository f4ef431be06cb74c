package handlers

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
)

type ReviewHandler struct {
	reviews *services.ReviewService
	rs      *renderer.Responder
}

func NewReviewHandler(reviews *services.ReviewService, rs *renderer.Responder) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, rs: rs}
}

type reviewListResponse struct {
	Reviews    []models.Review `json:"reviews"`
	Pagination pagination.Meta `json:"pagination"`
}

// Reviews lists approved reviews, optionally for one product (?product_id=).
// An unparsable product_id is ignored like other bad query parameters.
func (h *ReviewHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var productID *uint
	if id, ok := helpers.ParseID(q.Get("product_id")); ok {
		productID = &id
	}

	page, err := h.reviews.ListReviews(r.Context(), productID,
		pagination.ParseParams(q, pagination.DefaultPerPageReviews))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, reviewListResponse{Reviews: page.Items, Pagination: page.Meta})
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in services.CreateReviewInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	review, err := h.reviews.CreateReview(r.Context(), helpers.GetUserIDFromContext(r.Context()), in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, map[string]any{"message": "Review created successfully", "review": review})
}
