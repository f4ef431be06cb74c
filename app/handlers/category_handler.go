package handlers

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
)

type CategoryHandler struct {
	categories *services.CategoryService
	rs         *renderer.Responder
}

func NewCategoryHandler(categories *services.CategoryService, rs *renderer.Responder) *CategoryHandler {
	return &CategoryHandler{categories: categories, rs: rs}
}

func (h *CategoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]any{"categories": categories})
}
