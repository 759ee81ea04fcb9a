package orders

import (
	"github.com/mherran/stockroute-backend/internal/quotes"
	"github.com/mherran/stockroute-backend/pkg/db/models"
)

// CommitResult pairs the persisted order with the quote it was priced
// from. The quote reflects stock as observed inside the transaction.
type CommitResult struct {
	Order *models.Order `json:"order"`
	Quote *quotes.Quote `json:"quote"`
}
