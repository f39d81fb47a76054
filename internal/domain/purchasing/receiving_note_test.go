package purchasing

import (
	"testing"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReceivingNote(t *testing.T) *ReceivingNote {
	t.Helper()
	rn, err := NewReceivingNote(uuid.New(), "REM-0001-00000001", uuid.New(), uuid.New(), nil, nil)
	require.NoError(t, err)
	return rn
}

func TestNewReceivingNote(t *testing.T) {
	tests := []struct {
		name        string
		number      string
		supplierID  uuid.UUID
		warehouseID uuid.UUID
		wantErr     bool
	}{
		{"valid", "REM-0001-00000001", uuid.New(), uuid.New(), false},
		{"empty number", "", uuid.New(), uuid.New(), true},
		{"empty supplier", "REM-0001-00000001", uuid.Nil, uuid.New(), true},
		{"empty warehouse", "REM-0001-00000001", uuid.New(), uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rn, err := NewReceivingNote(uuid.New(), tt.number, tt.supplierID, tt.warehouseID, nil, nil)
			if tt.wantErr {
				assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ReceivingNoteStatusDraft, rn.Status)
		})
	}
}

func TestReceivingNoteLifecycle(t *testing.T) {
	rn := newTestReceivingNote(t)
	orderLineID := uuid.New()

	require.NoError(t, rn.AddLine(uuid.New(), decimal.NewFromInt(10), &orderLineID))
	require.NoError(t, rn.AddLine(uuid.New(), decimal.RequireFromString("2.5"), nil))
	assert.Equal(t, "12.5", rn.TotalQuantity().String())

	require.NoError(t, rn.Confirm())
	assert.Equal(t, ReceivingNoteStatusConfirmed, rn.Status)
	assert.NotNil(t, rn.ConfirmedAt)

	events := rn.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeReceivingNoteConfirmed, events[0].EventType())
	rn.ClearDomainEvents()

	require.NoError(t, rn.Cancel("wrong warehouse"))
	assert.Equal(t, ReceivingNoteStatusCancelled, rn.Status)
	assert.Equal(t, "wrong warehouse", rn.CancelReason)

	events = rn.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeReceivingNoteCancelled, events[0].EventType())

	t.Run("double cancel fails", func(t *testing.T) {
		err := rn.Cancel("again")
		assert.True(t, shared.IsInvalidTransition(err))
	})
}

func TestReceivingNoteConfirmValidation(t *testing.T) {
	t.Run("confirm without lines fails", func(t *testing.T) {
		rn := newTestReceivingNote(t)
		err := rn.Confirm()
		assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))
	})

	t.Run("draft cannot be cancelled", func(t *testing.T) {
		rn := newTestReceivingNote(t)
		err := rn.Cancel("never touched stock")
		assert.True(t, shared.IsInvalidTransition(err))
	})

	t.Run("lines immutable once confirmed", func(t *testing.T) {
		rn := newTestReceivingNote(t)
		require.NoError(t, rn.AddLine(uuid.New(), decimal.NewFromInt(1), nil))
		require.NoError(t, rn.Confirm())

		err := rn.AddLine(uuid.New(), decimal.NewFromInt(1), nil)
		assert.Equal(t, shared.CodeInvalidStateTransition, shared.CodeOf(err))
	})
}

func TestReceivingNoteAddLineValidation(t *testing.T) {
	rn := newTestReceivingNote(t)

	err := rn.AddLine(uuid.Nil, decimal.NewFromInt(1), nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	err = rn.AddLine(uuid.New(), decimal.Zero, nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	err = rn.AddLine(uuid.New(), decimal.NewFromInt(-3), nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestReceivingNoteEnsureDeletable(t *testing.T) {
	rn := newTestReceivingNote(t)
	assert.NoError(t, rn.EnsureDeletable())

	require.NoError(t, rn.AddLine(uuid.New(), decimal.NewFromInt(1), nil))
	require.NoError(t, rn.Confirm())
	assert.Equal(t, shared.CodeInvalidStateTransition, shared.CodeOf(rn.EnsureDeletable()))
}
