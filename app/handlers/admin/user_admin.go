package admin

import (
	"fmt"
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
)

type userListResponse struct {
	Users      []models.User   `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var role models.Role
	if raw := q.Get("role"); raw != "" {
		parsed, ok := models.ParseRole(raw)
		if !ok {
			h.rs.Error(w, r, apperr.Validation("role", "Unknown role %q", raw))
			return
		}
		role = parsed
	}

	params := pagination.ParseParams(q, pagination.DefaultPerPageAdmin)
	users, total, err := h.userRepo.List(r.Context(), role, params)
	if err != nil {
		h.rs.Error(w, r, fmt.Errorf("failed to list users: %w", err))
		return
	}
	page := pagination.NewPage(users, total, params)
	h.rs.JSON(w, http.StatusOK, userListResponse{Users: page.Items, Pagination: page.Meta})
}
