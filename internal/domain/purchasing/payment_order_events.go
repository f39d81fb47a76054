package purchasing

import (
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventTypePaymentOrderConfirmed is emitted when a payment order is confirmed
const EventTypePaymentOrderConfirmed = "purchasing.payment_order.confirmed"

// PaymentOrderConfirmedEvent carries the confirmed batch summary
type PaymentOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	SupplierID  string          `json:"supplier_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewPaymentOrderConfirmedEvent creates a new PaymentOrderConfirmedEvent
func NewPaymentOrderConfirmedEvent(po *PaymentOrder) *PaymentOrderConfirmedEvent {
	return &PaymentOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentOrderConfirmed, "PaymentOrder", po.ID, po.TenantID),
		Number:          po.Number,
		SupplierID:      po.SupplierID.String(),
		TotalAmount:     po.TotalAmount(),
		ItemCount:       len(po.Items),
	}
}
