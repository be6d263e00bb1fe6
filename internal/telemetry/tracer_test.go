package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracer_NoEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitTracer(context.Background(), Options{ServiceName: "blog"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, before, otel.GetTracerProvider(), "provider must not change without an endpoint")
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_WithEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	// The gRPC exporter connects lazily, so no collector is needed here.
	shutdown, err := InitTracer(context.Background(), Options{
		Endpoint:    "127.0.0.1:4317",
		ServiceName: "blog",
		Env:         "test",
	})
	require.NoError(t, err)
	assert.NotEqual(t, before, otel.GetTracerProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
