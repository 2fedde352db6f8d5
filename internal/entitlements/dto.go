package entitlements

import (
	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
)

// CreateOrderInput carries the purchase payload after transport decoding.
type CreateOrderInput struct {
	Plan     enums.Plan
	TeamSize int
}

// OrderSummary is the wire shape for a single order.
type OrderSummary struct {
	ID            int64               `json:"id"`
	Plan          enums.Plan          `json:"plan"`
	TeamSize      int                 `json:"teamSize"`
	RerunCredits  int                 `json:"rerunCredits"`
	AmountCents   int64               `json:"amountCents"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	CreatedAt     int64               `json:"createdAt"`
}

func summarize(order *models.Order) OrderSummary {
	return OrderSummary{
		ID:            order.ID,
		Plan:          order.Plan,
		TeamSize:      order.TeamSize,
		RerunCredits:  order.RerunCredits,
		AmountCents:   order.AmountCents,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt.Unix(),
	}
}
