package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mherran/stockroute-backend/api/responses"
	"github.com/mherran/stockroute-backend/api/validators"
	"github.com/mherran/stockroute-backend/internal/orders"
	pkgerrors "github.com/mherran/stockroute-backend/pkg/errors"
	"github.com/mherran/stockroute-backend/pkg/logger"
	"github.com/mherran/stockroute-backend/pkg/metrics"
)

// CommitOrder re-quotes the request and persists the order atomically.
// Conflicts with concurrent commits surface as retryable 409s.
func CommitOrder(svc orders.Service, flow *metrics.OrderFlowMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload orderRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			flow.IncOutcome("commit", "rejected")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		result, err := svc.Commit(r.Context(), payload.toRequest())
		flow.ObserveDuration("commit", time.Since(start))
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
				flow.IncConflict()
			}
			flow.IncOutcome("commit", "failed")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flow.IncOutcome("commit", "success")
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetOrder returns a persisted order aggregate.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "orderId must be a valid UUID"))
			return
		}

		order, err := svc.FindOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
