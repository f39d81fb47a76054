package partner

import (
	"testing"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active supplier", func(t *testing.T) {
		s, err := NewSupplier(tenantID, "PROV-001", "Distribuidora Norte", "30-11222333-9", 30)
		require.NoError(t, err)
		assert.Equal(t, "PROV-001", s.Code)
		assert.Equal(t, "30-11222333-9", s.TaxID)
		assert.Equal(t, 30, s.PaymentTermsDays)
		assert.True(t, s.Active)
		assert.Equal(t, 1, s.Version)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewSupplier(tenantID, "", "X", "30-1-1", 0)
		assert.Error(t, err)
		_, err = NewSupplier(tenantID, "C", "", "30-1-1", 0)
		assert.Error(t, err)
		_, err = NewSupplier(tenantID, "C", "X", "", 0)
		assert.Error(t, err)
		_, err = NewSupplier(tenantID, "C", "X", "30-1-1", -1)
		assert.Error(t, err)
	})
}

func TestSupplier_ChangeTaxID(t *testing.T) {
	s, err := NewSupplier(uuid.New(), "PROV-001", "Distribuidora Norte", "30-11222333-9", 30)
	require.NoError(t, err)

	t.Run("allowed while no confirmed documents exist", func(t *testing.T) {
		require.NoError(t, s.ChangeTaxID("30-99888777-1", false))
		assert.Equal(t, "30-99888777-1", s.TaxID)
	})

	t.Run("locked once confirmed documents exist", func(t *testing.T) {
		err := s.ChangeTaxID("30-00000000-0", true)
		require.Error(t, err)
		assert.Equal(t, "SUPPLIER_TAX_ID_LOCKED", shared.CodeOf(err))
		assert.Equal(t, "30-99888777-1", s.TaxID)
	})
}

func TestSupplier_EnsureDeletable(t *testing.T) {
	s, err := NewSupplier(uuid.New(), "PROV-001", "Distribuidora Norte", "30-11222333-9", 30)
	require.NoError(t, err)

	assert.NoError(t, s.EnsureDeletable(0))

	err = s.EnsureDeletable(3)
	require.Error(t, err)
	assert.Equal(t, "SUPPLIER_HAS_DOCUMENTS", shared.CodeOf(err))
}
