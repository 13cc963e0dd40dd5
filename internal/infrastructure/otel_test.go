package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInitializeOTel_MetricsCollection(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:   "protclean-test",
		EnableMetrics: true,
	}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	counter, err := providers.Meter.Int64Counter("rows_removed_total",
		metric.WithDescription("rows removed by cleaning stages"))
	require.NoError(t, err)

	ctx := context.Background()
	counter.Add(ctx, 3)
	counter.Add(ctx, 4)

	rm, err := providers.Collect(ctx)
	require.NoError(t, err)
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(7), sum.DataPoints[0].Value)
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{}, nil)
	require.NoError(t, err)

	// Noop providers still hand out usable tracer and meter.
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	_, span := providers.Tracer.Start(context.Background(), "stage")
	span.End()

	rm, err := providers.Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rm.ScopeMetrics)

	assert.NoError(t, providers.Shutdown(context.Background()))
}
