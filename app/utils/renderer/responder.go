package renderer

import (
	"errors"
	"net/http"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const retryAfterSeconds = "1"

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Message   string            `json:"message"`
	Error     string            `json:"error"`
	Field     string            `json:"field,omitempty"`
	ProductID uint              `json:"product_id,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

type Responder struct {
	render *render.Render
	log    *zap.Logger
}

func NewResponder(r *render.Render, log *zap.Logger) *Responder {
	return &Responder{render: r, log: log}
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, v any) {
	if err := rs.render.JSON(w, status, v); err != nil {
		rs.log.Error("failed to write response", zap.Error(err))
	}
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindInsufficientInventory,
		apperr.KindDuplicateReview, apperr.KindDuplicateSKU:
		return http.StatusBadRequest
	case apperr.KindPermissionDenied:
		return http.StatusForbidden
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	rs.ErrorStatus(w, r, StatusOf(err), err)
}

// ErrorStatus writes err with an explicit status. Internal errors are logged
// and their message is not exposed.
func (rs *Responder) ErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	kind := apperr.KindOf(err)
	body := ErrorBody{Error: kind.String()}

	var ae *apperr.Error
	if kind != apperr.KindInternal && errors.As(err, &ae) {
		body.Message = ae.Message
		if body.Message == "" {
			body.Message = kind.String()
		}
		body.Field = ae.Field
		body.ProductID = ae.ProductID
		body.Errors = ae.Fields
	} else {
		body.Message = "Internal server error"
		rs.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	if kind == apperr.KindTransient {
		body.Retryable = true
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	rs.JSON(w, status, body)
}
