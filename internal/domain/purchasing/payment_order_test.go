package purchasing

import (
	"testing"
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaymentOrder(t *testing.T) *PaymentOrder {
	t.Helper()
	po, err := NewPaymentOrder(uuid.New(), "OP-0001-00000001", uuid.New(),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return po
}

func TestNewPaymentOrder(t *testing.T) {
	t.Run("valid order starts as draft", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		assert.Equal(t, PaymentOrderStatusDraft, po.Status)
		assert.False(t, po.Status.CountsTowardPaid())
	})

	t.Run("empty number", func(t *testing.T) {
		_, err := NewPaymentOrder(uuid.New(), "", uuid.New(), time.Now())
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("empty supplier", func(t *testing.T) {
		_, err := NewPaymentOrder(uuid.New(), "OP-0001-00000001", uuid.Nil, time.Now())
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestPaymentOrderAddItem(t *testing.T) {
	po := newTestPaymentOrder(t)

	require.NoError(t, po.AddItem(uuid.New(), valueobject.NewMoneyARSFromFloat(400)))
	require.NoError(t, po.AddItem(uuid.New(), valueobject.NewMoneyARSFromFloat(250.50)))
	assert.Equal(t, "650.5", po.TotalAmount().String())

	t.Run("rejects non-positive amount", func(t *testing.T) {
		err := po.AddItem(uuid.New(), valueobject.ZeroARS())
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("rejects empty invoice", func(t *testing.T) {
		err := po.AddItem(uuid.Nil, valueobject.NewMoneyARSFromFloat(10))
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestPaymentOrderConfirm(t *testing.T) {
	t.Run("confirm with items", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		require.NoError(t, po.AddItem(uuid.New(), valueobject.NewMoneyARSFromFloat(400)))

		require.NoError(t, po.Confirm())
		assert.Equal(t, PaymentOrderStatusConfirmed, po.Status)
		assert.True(t, po.Status.CountsTowardPaid())

		events := po.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentOrderConfirmed, events[0].EventType())
	})

	t.Run("confirm without items fails", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		err := po.Confirm()
		assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))
	})

	t.Run("items immutable after confirm", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		require.NoError(t, po.AddItem(uuid.New(), valueobject.NewMoneyARSFromFloat(400)))
		require.NoError(t, po.Confirm())

		err := po.AddItem(uuid.New(), valueobject.NewMoneyARSFromFloat(1))
		assert.Equal(t, shared.CodeInvalidStateTransition, shared.CodeOf(err))
	})
}

func TestPaymentOrderCancel(t *testing.T) {
	t.Run("cancel draft", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		require.NoError(t, po.Cancel("duplicate batch"))
		assert.Equal(t, PaymentOrderStatusCancelled, po.Status)
	})

	t.Run("confirmed order cannot be cancelled", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		require.NoError(t, po.AddItem(uuid.New(), valueobject.NewMoneyARSFromFloat(400)))
		require.NoError(t, po.Confirm())

		err := po.Cancel("too late")
		assert.True(t, shared.IsInvalidTransition(err))
	})

	t.Run("requires reason", func(t *testing.T) {
		po := newTestPaymentOrder(t)
		err := po.Cancel("")
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}
