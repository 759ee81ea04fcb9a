package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mherran/stockroute-backend/api/responses"
	"github.com/mherran/stockroute-backend/api/validators"
	"github.com/mherran/stockroute-backend/internal/quotes"
	pkgerrors "github.com/mherran/stockroute-backend/pkg/errors"
	"github.com/mherran/stockroute-backend/pkg/logger"
	"github.com/mherran/stockroute-backend/pkg/metrics"
	"github.com/mherran/stockroute-backend/pkg/types"
)

type orderRequestPayload struct {
	Items    []orderItemPayload   `json:"items" validate:"required,min=1,dive"`
	Customer types.GeographyPoint `json:"customer"`
}

type orderItemPayload struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

func (p orderRequestPayload) toRequest() quotes.OrderRequest {
	req := quotes.OrderRequest{Customer: p.Customer}
	for _, item := range p.Items {
		req.Items = append(req.Items, quotes.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return req
}

// BuildQuote previews pricing and allocation for a candidate order. It
// never mutates stock; an invalid quote is still a successful response
// with per-item issues attached.
func BuildQuote(svc quotes.Service, flow *metrics.OrderFlowMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload orderRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			flow.IncOutcome("quote", "rejected")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		quote, err := svc.BuildQuote(r.Context(), payload.toRequest())
		flow.ObserveDuration("quote", time.Since(start))
		if err != nil {
			flow.IncOutcome("quote", "rejected")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if quote.Valid {
			flow.IncOutcome("quote", "valid")
		} else {
			flow.IncOutcome("quote", "invalid")
		}
		responses.WriteSuccess(w, quote)
	}
}
