package purchasing

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentOrderStatus represents the status of a payment order
type PaymentOrderStatus string

const (
	PaymentOrderStatusDraft     PaymentOrderStatus = "DRAFT"
	PaymentOrderStatusConfirmed PaymentOrderStatus = "CONFIRMED"
	PaymentOrderStatusCancelled PaymentOrderStatus = "CANCELLED"
)

// paymentOrderTransitions is the allowed-transition table for payment
// orders. A confirmed order has already marked invoices paid and cannot be
// cancelled; corrections go through a new document.
var paymentOrderTransitions = shared.TransitionTable[PaymentOrderStatus]{
	PaymentOrderStatusDraft: {PaymentOrderStatusConfirmed, PaymentOrderStatusCancelled},
}

// IsValid checks if the status is a valid PaymentOrderStatus
func (s PaymentOrderStatus) IsValid() bool {
	switch s {
	case PaymentOrderStatusDraft, PaymentOrderStatusConfirmed, PaymentOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PaymentOrderStatus
func (s PaymentOrderStatus) String() string {
	return string(s)
}

// CountsTowardPaid reports whether this order's items count toward invoice
// paid amounts. Only confirmed orders do.
func (s PaymentOrderStatus) CountsTowardPaid() bool {
	return s == PaymentOrderStatusConfirmed
}

// PaymentOrderItem applies part of a payment order to one invoice
type PaymentOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	PaymentOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentOrderItem) TableName() string {
	return "payment_order_items"
}

// PaymentOrder is a payment batch applying amounts to supplier invoices
type PaymentOrder struct {
	shared.TenantAggregateRoot
	Number       string             `gorm:"type:varchar(30);not null;uniqueIndex:idx_payment_order_tenant_number,priority:2"`
	SupplierID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	PaymentDate  time.Time          `gorm:"not null"`
	Status       PaymentOrderStatus `gorm:"type:varchar(20);not null;index"`
	CancelReason string             `gorm:"type:varchar(500)"`
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time

	Items []PaymentOrderItem `gorm:"foreignKey:PaymentOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PaymentOrder) TableName() string {
	return "payment_orders"
}

// NewPaymentOrder creates a new payment order in DRAFT
func NewPaymentOrder(tenantID uuid.UUID, number string, supplierID uuid.UUID, paymentDate time.Time) (*PaymentOrder, error) {
	if number == "" {
		return nil, shared.NewValidationError("Payment order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}

	return &PaymentOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		SupplierID:          supplierID,
		PaymentDate:         paymentDate,
		Status:              PaymentOrderStatusDraft,
		Items:               make([]PaymentOrderItem, 0),
	}, nil
}

// AddItem applies an amount to one invoice while the order is a draft
func (po *PaymentOrder) AddItem(invoiceID uuid.UUID, amount valueobject.Money) error {
	if po.Status != PaymentOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Payment order items are immutable once confirmed")
	}
	if invoiceID == uuid.Nil {
		return shared.NewValidationError("Invoice ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Payment amount must be positive")
	}

	now := time.Now()
	po.Items = append(po.Items, PaymentOrderItem{
		ID:             uuid.New(),
		PaymentOrderID: po.ID,
		InvoiceID:      invoiceID,
		Amount:         amount.Amount(),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	po.UpdatedAt = now
	po.IncrementVersion()
	return nil
}

// TotalAmount returns the sum of all item amounts
func (po *PaymentOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range po.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// Confirm moves the order from DRAFT to CONFIRMED. From this point its items
// count toward invoice paid amounts; the caller re-derives each referenced
// invoice's payment status in the same transaction.
func (po *PaymentOrder) Confirm() error {
	if err := paymentOrderTransitions.Ensure("PaymentOrder", po.Status, PaymentOrderStatusConfirmed); err != nil {
		return err
	}
	if len(po.Items) == 0 {
		return shared.NewBusinessRuleError("Cannot confirm a payment order without items")
	}

	now := time.Now()
	po.Status = PaymentOrderStatusConfirmed
	po.ConfirmedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPaymentOrderConfirmedEvent(po))
	return nil
}

// Cancel cancels a draft order. Confirmed orders cannot be cancelled.
func (po *PaymentOrder) Cancel(reason string) error {
	if err := paymentOrderTransitions.Ensure("PaymentOrder", po.Status, PaymentOrderStatusCancelled); err != nil {
		return err
	}
	if reason == "" {
		return shared.NewValidationError("Cancel reason is required")
	}

	now := time.Now()
	po.Status = PaymentOrderStatusCancelled
	po.CancelReason = reason
	po.CancelledAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()
	return nil
}
