package handlers

import (
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
)

type ProductHandler struct {
	products *services.ProductService
	rs       *renderer.Responder
}

func NewProductHandler(products *services.ProductService, rs *renderer.Responder) *ProductHandler {
	return &ProductHandler{products: products, rs: rs}
}

type productListResponse struct {
	Products   []models.Product `json:"products"`
	Pagination pagination.Meta  `json:"pagination"`
}

type productResponse struct {
	Message string          `json:"message,omitempty"`
	Product *models.Product `json:"product"`
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.products.ListProducts(r.Context(),
		helpers.ParseProductFilter(q),
		pagination.ParseParams(q, pagination.DefaultPerPageProducts))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, productListResponse{Products: page.Items, Pagination: page.Meta})
}

func (h *ProductHandler) SellerProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.products.ListSellerProducts(r.Context(),
		helpers.UserFromContext(r.Context()),
		helpers.ParseProductFilter(q),
		pagination.ParseParams(q, pagination.DefaultPerPageProducts))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, productListResponse{Products: page.Items, Pagination: page.Meta})
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, productResponse{Product: product})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.CreateProductInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	product, err := h.products.CreateProduct(r.Context(), helpers.UserFromContext(r.Context()), in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, productResponse{Message: "Product created successfully", Product: product})
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var in services.UpdateProductInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	product, err := h.products.UpdateProduct(r.Context(), helpers.UserFromContext(r.Context()), id, in)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, productResponse{Message: "Product updated successfully", Product: product})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	if err := h.products.DeleteProduct(r.Context(), helpers.UserFromContext(r.Context()), id); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
