package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	cfg := Config{Enabled: false}

	tp, err := NewTracerProvider(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	// Shutdown on a no-op provider is a no-op
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, "postgresql", cfg.DBName)
}
