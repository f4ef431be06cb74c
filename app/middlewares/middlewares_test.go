package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/metrics"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeTokens map[string]uint

func (f fakeTokens) Parse(raw string) (uint, error) {
	id, ok := f[raw]
	if !ok {
		return 0, errors.New("bad token")
	}
	return id, nil
}

type fakeUsers map[uint]*models.User

func (f fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	return f[id], nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(user.Username))
}

func TestAuthenticate(t *testing.T) {
	log := zap.NewNop()
	rs := renderer.NewResponder(renderer.New(false), log)
	tokens := fakeTokens{"good": 1, "ghost": 2, "disabled": 3}
	users := fakeUsers{
		1: {ID: 1, Username: "amina", Role: models.RoleCustomer, IsActive: true},
		3: {ID: 3, Username: "old", Role: models.RoleCustomer, IsActive: false},
	}
	h := Authenticate(tokens, users, rs, log)(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"user gone", "Bearer ghost", http.StatusUnauthorized},
		{"user disabled", "Bearer disabled", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "amina", rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	log := zap.NewNop()
	rs := renderer.NewResponder(renderer.New(false), log)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name  string
		user  *models.User
		guard func(http.Handler) http.Handler
		want  int
	}{
		{"admin passes admin", &models.User{Role: models.RoleAdmin}, RequireAdmin(rs, log), http.StatusNoContent},
		{"seller blocked from admin", &models.User{Role: models.RoleSeller}, RequireAdmin(rs, log), http.StatusForbidden},
		{"seller passes seller", &models.User{Role: models.RoleSeller}, RequireSeller(rs, log), http.StatusNoContent},
		{"admin passes seller", &models.User{Role: models.RoleAdmin}, RequireSeller(rs, log), http.StatusNoContent},
		{"customer blocked from seller", &models.User{Role: models.RoleCustomer}, RequireSeller(rs, log), http.StatusForbidden},
		{"anonymous", nil, RequireSeller(rs, log), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tt.user != nil {
				req = req.WithContext(helpers.WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			tt.guard(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestLoggerRecordsRouteTemplate(t *testing.T) {
	m := metrics.New()
	router := mux.NewRouter()
	router.Use(RequestLogger(zap.NewNop(), m))
	router.HandleFunc("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/products/{id}", "404")))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}
