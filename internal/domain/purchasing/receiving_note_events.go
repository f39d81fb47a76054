package purchasing

import (
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for receiving notes
const (
	EventTypeReceivingNoteConfirmed = "purchasing.receiving_note.confirmed"
	EventTypeReceivingNoteCancelled = "purchasing.receiving_note.cancelled"
)

// ReceivingNoteConfirmedEvent is emitted when a receiving note is confirmed
type ReceivingNoteConfirmedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	WarehouseID   string          `json:"warehouse_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	LineCount     int             `json:"line_count"`
}

// NewReceivingNoteConfirmedEvent creates a new ReceivingNoteConfirmedEvent
func NewReceivingNoteConfirmedEvent(rn *ReceivingNote) *ReceivingNoteConfirmedEvent {
	return &ReceivingNoteConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingNoteConfirmed, "ReceivingNote", rn.ID, rn.TenantID),
		Number:          rn.Number,
		WarehouseID:     rn.WarehouseID.String(),
		TotalQuantity:   rn.TotalQuantity(),
		LineCount:       len(rn.Lines),
	}
}

// ReceivingNoteCancelledEvent is emitted when a confirmed note is cancelled
type ReceivingNoteCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewReceivingNoteCancelledEvent creates a new ReceivingNoteCancelledEvent
func NewReceivingNoteCancelledEvent(rn *ReceivingNote, reason string) *ReceivingNoteCancelledEvent {
	return &ReceivingNoteCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingNoteCancelled, "ReceivingNote", rn.ID, rn.TenantID),
		Number:          rn.Number,
		Reason:          reason,
	}
}
