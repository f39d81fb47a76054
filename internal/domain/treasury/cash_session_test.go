package treasury

import (
	"testing"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenSession(t *testing.T) *CashSession {
	t.Helper()
	cs, err := NewCashSession(uuid.New(), uuid.New(), 1, decimal.NewFromInt(5000))
	require.NoError(t, err)
	return cs
}

func TestNewCashSession(t *testing.T) {
	t.Run("valid session opens", func(t *testing.T) {
		cs := newOpenSession(t)
		assert.Equal(t, CashSessionStatusOpen, cs.Status)
		assert.Equal(t, "5000", cs.ExpectedBalance.String())
		assert.Nil(t, cs.ActualBalance)
		assert.Nil(t, cs.Difference)
	})

	t.Run("empty register rejected", func(t *testing.T) {
		_, err := NewCashSession(uuid.New(), uuid.Nil, 1, decimal.Zero)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("non-positive session number rejected", func(t *testing.T) {
		_, err := NewCashSession(uuid.New(), uuid.New(), 0, decimal.Zero)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("negative opening balance rejected", func(t *testing.T) {
		_, err := NewCashSession(uuid.New(), uuid.New(), 1, decimal.NewFromInt(-1))
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestCashSessionAdjustExpected(t *testing.T) {
	cs := newOpenSession(t)

	require.NoError(t, cs.AdjustExpected(decimal.NewFromInt(1500)))
	require.NoError(t, cs.AdjustExpected(decimal.NewFromInt(-300)))
	assert.Equal(t, "6200", cs.ExpectedBalance.String())

	t.Run("zero delta rejected", func(t *testing.T) {
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(cs.AdjustExpected(decimal.Zero)))
	})

	t.Run("closed session rejects adjustments", func(t *testing.T) {
		require.NoError(t, cs.Close(decimal.NewFromInt(6200), ""))
		err := cs.AdjustExpected(decimal.NewFromInt(100))
		assert.True(t, shared.IsInvalidTransition(err))
	})
}

func TestCashSessionClose(t *testing.T) {
	t.Run("records actual and difference", func(t *testing.T) {
		cs := newOpenSession(t)
		require.NoError(t, cs.AdjustExpected(decimal.NewFromInt(2000)))

		require.NoError(t, cs.Close(decimal.NewFromInt(6850), "billete roto descartado"))
		assert.Equal(t, CashSessionStatusClosed, cs.Status)
		assert.Equal(t, "6850", cs.ActualBalance.String())
		assert.Equal(t, "-150", cs.Difference.String())
		assert.Equal(t, "billete roto descartado", cs.Notes)
		assert.NotNil(t, cs.ClosedAt)

		events := cs.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCashSessionClosed, events[0].EventType())
	})

	t.Run("large difference is informational", func(t *testing.T) {
		cs := newOpenSession(t)
		require.NoError(t, cs.Close(decimal.Zero, ""))
		assert.Equal(t, "-5000", cs.Difference.String())
	})

	t.Run("double close fails", func(t *testing.T) {
		cs := newOpenSession(t)
		require.NoError(t, cs.Close(decimal.NewFromInt(5000), ""))
		err := cs.Close(decimal.NewFromInt(5000), "")
		assert.True(t, shared.IsInvalidTransition(err))
	})

	t.Run("negative actual rejected", func(t *testing.T) {
		cs := newOpenSession(t)
		err := cs.Close(decimal.NewFromInt(-10), "")
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}
