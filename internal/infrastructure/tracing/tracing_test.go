package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavian/nexus-inventory/internal/infrastructure/tracing"
)

func TestSetup_SinEndpointEsNoop(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), "  ", "svc", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_ConEndpoint(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), "http://127.0.0.1:4318", "svc", "test")
	require.NoError(t, err)
	// sin spans pendientes el apagado no necesita contactar al colector
	assert.NoError(t, shutdown(context.Background()))
}
