package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/testdb"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/events"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/metrics"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/token"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type server struct {
	t      *testing.T
	db     *gorm.DB
	router http.Handler
	tokens *token.Manager
	pub    *events.MemoryPublisher
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testdb.Open(t)
	tokens := token.NewManager("test-secret", time.Hour)
	pub := &events.MemoryPublisher{}
	router := NewRouter(Dependencies{
		DB:        db,
		Log:       zap.NewNop(),
		Metrics:   metrics.New(),
		Publisher: pub,
		Tokens:    tokens,
	})
	return &server{t: t, db: db, router: router, tokens: tokens, pub: pub}
}

func (s *server) user(role models.Role) (*models.User, string) {
	s.t.Helper()
	u := testdb.CreateUser(s.t, s.db, role)
	raw, err := s.tokens.Issue(u)
	require.NoError(s.t, err)
	return u, raw
}

func (s *server) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func orderBody(lines ...map[string]any) map[string]any {
	return map[string]any{
		"items":                  lines,
		"shipping_first_name":    "Achieng",
		"shipping_last_name":     "Otieno",
		"shipping_address_line1": "4 Kenyatta Avenue",
		"shipping_city":          "Kisumu",
		"shipping_state":         "Kisumu",
		"shipping_postal_code":   "40100",
		"shipping_country":       "Kenya",
	}
}

func line(productID uint, qty int) map[string]any {
	return map[string]any{"product_id": productID, "quantity": qty}
}

func TestCreateOrderProductAExample(t *testing.T) {
	s := newServer(t)
	seller, _ := s.user(models.RoleSeller)
	_, first := s.user(models.RoleCustomer)
	_, second := s.user(models.RoleCustomer)
	a := testdb.CreateProduct(t, s.db, seller.ID, testdb.WithPrice("100.00"), testdb.WithStock(5))

	rec := s.do(http.MethodPost, "/api/orders", first, orderBody(line(a.ID, 3)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "Order created successfully", body["message"])
	order := body["order"].(map[string]any)
	assert.True(t, decimal.RequireFromString(order["total_amount"].(string)).Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "$300.00", order["total_display"])
	assert.Equal(t, "pending", order["status"])
	assert.Len(t, order["items"], 1)

	rec = s.do(http.MethodPost, "/api/orders", second, orderBody(line(a.ID, 3)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "insufficient_inventory", body["error"])
	assert.Equal(t, float64(a.ID), body["product_id"])
	assert.Contains(t, body["message"], "Available: 2, Requested: 3")

	var stock int
	require.NoError(t, s.db.Model(&models.Product{}).Where("id = ?", a.ID).Pluck("inventory_count", &stock).Error)
	assert.Equal(t, 2, stock)
	assert.Len(t, s.pub.Events(), 1)
}

func TestCreateOrderErrors(t *testing.T) {
	s := newServer(t)
	seller, _ := s.user(models.RoleSeller)
	_, buyer := s.user(models.RoleCustomer)
	p := testdb.CreateProduct(t, s.db, seller.ID)

	tests := []struct {
		name   string
		bearer string
		body   any
		status int
		kind   string
	}{
		{"no token", "", orderBody(line(p.ID, 1)), http.StatusUnauthorized, "unauthenticated"},
		{"bad token", "garbage", orderBody(line(p.ID, 1)), http.StatusUnauthorized, "unauthenticated"},
		{"unknown product", buyer, orderBody(line(4242, 1)), http.StatusBadRequest, "not_found"},
		{"zero quantity", buyer, orderBody(line(p.ID, 0)), http.StatusBadRequest, "validation_error"},
		{"empty items", buyer, orderBody(), http.StatusBadRequest, "validation_error"},
		{"malformed json", buyer, `{"items": [`, http.StatusBadRequest, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/orders", tt.bearer, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.kind, decode(t, rec)["error"])
		})
	}
}

func TestOrderVisibility(t *testing.T) {
	s := newServer(t)
	seller, _ := s.user(models.RoleSeller)
	_, alice := s.user(models.RoleCustomer)
	_, bob := s.user(models.RoleCustomer)
	p := testdb.CreateProduct(t, s.db, seller.ID, testdb.WithStock(10))

	rec := s.do(http.MethodPost, "/api/orders", alice, orderBody(line(p.ID, 1)))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(decode(t, rec)["order"].(map[string]any)["id"].(float64))

	path := fmt.Sprintf("/api/orders/%d", id)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, bob, nil).Code)

	list := decode(t, s.do(http.MethodGet, "/api/orders", bob, nil))
	assert.Empty(t, list["orders"])
	assert.Equal(t, float64(1), list["pagination"].(map[string]any)["pages"])
}

func TestAdminOrderEndpoints(t *testing.T) {
	s := newServer(t)
	seller, _ := s.user(models.RoleSeller)
	_, buyer := s.user(models.RoleCustomer)
	_, adminToken := s.user(models.RoleAdmin)
	p := testdb.CreateProduct(t, s.db, seller.ID, testdb.WithStock(4))

	rec := s.do(http.MethodPost, "/api/orders", buyer, orderBody(line(p.ID, 4)))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(decode(t, rec)["order"].(map[string]any)["id"].(float64))

	statusPath := fmt.Sprintf("/api/orders/%d/status", id)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, statusPath, buyer, map[string]any{"status": "confirmed"}).Code)

	rec = s.do(http.MethodPatch, statusPath, adminToken, map[string]any{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/payment", id), adminToken, map[string]any{"payment_status": "failed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order := decode(t, rec)["order"].(map[string]any)
	assert.Equal(t, "cancelled", order["status"])
	assert.Equal(t, "failed", order["payment_status"])

	var stock int
	require.NoError(t, s.db.Model(&models.Product{}).Where("id = ?", p.ID).Pluck("inventory_count", &stock).Error)
	assert.Equal(t, 4, stock)

	list := decode(t, s.do(http.MethodGet, "/api/admin/orders?status=cancelled", adminToken, nil))
	assert.Len(t, list["orders"], 1)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/admin/orders?status=lost", adminToken, nil).Code)

	users := decode(t, s.do(http.MethodGet, "/api/admin/users?per_page=2", adminToken, nil))
	assert.Len(t, users["users"], 2)
	assert.Equal(t, float64(2), users["pagination"].(map[string]any)["pages"])
	assert.NotContains(t, s.do(http.MethodGet, "/api/admin/users", adminToken, nil).Body.String(), "password")

	sellers := decode(t, s.do(http.MethodGet, "/api/admin/users?role=seller", adminToken, nil))
	require.Len(t, sellers["users"], 1)
	assert.Equal(t, "seller", sellers["users"].([]any)[0].(map[string]any)["role"])
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/admin/users?role=jeweler", adminToken, nil).Code)
}

func TestProductEndpoints(t *testing.T) {
	s := newServer(t)
	_, sellerToken := s.user(models.RoleSeller)
	_, rivalToken := s.user(models.RoleSeller)
	_, customerToken := s.user(models.RoleCustomer)

	create := map[string]any{
		"title":           "Tanzanite Drop Earrings",
		"description":     "Hand set in white gold",
		"price":           "420.00",
		"inventory_count": 3,
		"sku":             "TZ-EAR-01",
	}

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/products", "", create).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/products", customerToken, create).Code)

	rec := s.do(http.MethodPost, "/api/products", sellerToken, create)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := uint(decode(t, rec)["product"].(map[string]any)["id"].(float64))

	rec = s.do(http.MethodPost, "/api/products", sellerToken, create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "duplicate_sku", decode(t, rec)["error"])

	path := fmt.Sprintf("/api/products/%d", id)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPut, path, rivalToken, map[string]any{"title": "Mine now"}).Code)

	rec = s.do(http.MethodPut, path, sellerToken, map[string]any{"price": "399.99"})
	require.Equal(t, http.StatusOK, rec.Code)

	detail := decode(t, s.do(http.MethodGet, path, "", nil))["product"].(map[string]any)
	assert.Equal(t, "Tanzanite Drop Earrings", detail["title"])
	assert.Equal(t, float64(0), detail["review_count"])

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, sellerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, "", nil).Code)

	own := decode(t, s.do(http.MethodGet, "/api/seller/products", sellerToken, nil))
	assert.Len(t, own["products"], 1)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/products/abc", "", nil).Code)
}

func TestProductListing(t *testing.T) {
	s := newServer(t)
	seller, _ := s.user(models.RoleSeller)
	rings := testdb.CreateCategory(t, s.db, "Rings", nil)
	for i := 0; i < 5; i++ {
		testdb.CreateProduct(t, s.db, seller.ID,
			testdb.WithTitle(fmt.Sprintf("Ring %d", i)),
			testdb.WithPrice(fmt.Sprintf("%d.00", 100*(i+1))),
			testdb.WithCategories(*rings))
	}
	testdb.CreateProduct(t, s.db, seller.ID, testdb.WithTitle("Chain"), testdb.WithPrice("50.00"))
	testdb.CreateProduct(t, s.db, seller.ID, testdb.WithTitle("Hidden Ring"), testdb.Inactive())

	body := decode(t, s.do(http.MethodGet, "/api/products?category=Rings&sort=price_desc&per_page=2&page=2", "", nil))
	products := body["products"].([]any)
	require.Len(t, products, 2)
	assert.Equal(t, "Ring 2", products[0].(map[string]any)["title"])
	assert.Equal(t, "Ring 1", products[1].(map[string]any)["title"])

	meta := body["pagination"].(map[string]any)
	assert.Equal(t, float64(5), meta["total"])
	assert.Equal(t, float64(3), meta["pages"])
	assert.Equal(t, true, meta["has_prev"])
	assert.Equal(t, true, meta["has_next"])

	body = decode(t, s.do(http.MethodGet, "/api/products?search=ring&min_price=abc&per_page=500", "", nil))
	assert.Equal(t, float64(5), body["pagination"].(map[string]any)["total"])
	assert.Equal(t, float64(100), body["pagination"].(map[string]any)["per_page"])

	body = decode(t, s.do(http.MethodGet, "/api/products?page=99", "", nil))
	assert.Empty(t, body["products"])
}

func TestReviewEndpoints(t *testing.T) {
	s := newServer(t)
	seller, _ := s.user(models.RoleSeller)
	_, author := s.user(models.RoleCustomer)
	p := testdb.CreateProduct(t, s.db, seller.ID)

	review := map[string]any{"product_id": p.ID, "rating": 5, "title": "Sparkles"}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/reviews", author, review).Code)

	rec := s.do(http.MethodPost, "/api/reviews", author, review)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "duplicate_review", decode(t, rec)["error"])

	rec = s.do(http.MethodPost, "/api/reviews", author, map[string]any{"product_id": 999, "rating": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	list := decode(t, s.do(http.MethodGet, fmt.Sprintf("/api/reviews?product_id=%d", p.ID), "", nil))
	assert.Len(t, list["reviews"], 1)
}

func TestCategoryEndpoints(t *testing.T) {
	s := newServer(t)
	_, adminToken := s.user(models.RoleAdmin)
	_, sellerToken := s.user(models.RoleSeller)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/categories", sellerToken, map[string]any{"name": "Rings"}).Code)

	rec := s.do(http.MethodPost, "/api/categories", adminToken, map[string]any{"name": "Rings"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := uint(decode(t, rec)["category"].(map[string]any)["id"].(float64))

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/categories/%d", id), adminToken, map[string]any{"parent_id": id})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parent_id", decode(t, rec)["field"])

	list := decode(t, s.do(http.MethodGet, "/api/categories", "", nil))
	assert.Len(t, list["categories"], 1)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	s.do(http.MethodGet, "/api/products", "", nil)
	rec = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `gemcart_http_requests_total{method="GET",route="/api/products",status="200"} 1`))

	rec = s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
