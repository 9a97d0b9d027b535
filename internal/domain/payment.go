package domain

import "time"

// Estados de un pago reportado por la pasarela.
const (
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GatewayID   string    `json:"gateway_payment_id,omitempty"`
	OrderID     string    `json:"gateway_order_id,omitempty"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	PaymentType string    `json:"payment_type"`
	CreatedAt   time.Time `json:"created_at"`
}
