package admin

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
)

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCategoryInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	category, err := h.categorySvc.CreateCategory(r.Context(), in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, map[string]any{"message": "Category created successfully", "category": category})
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var in services.UpdateCategoryInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	category, err := h.categorySvc.UpdateCategory(r.Context(), id, in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]any{"message": "Category updated successfully", "category": category})
}
