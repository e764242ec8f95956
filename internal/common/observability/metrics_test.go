package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestObservability_RecordsIntoRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New(Options{ServiceName: "salesfit-test", Registerer: reg})
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordAssessmentProcessed(ctx, "succeeded")
	obs.RecordAssessmentDuration(ctx, 250*time.Millisecond, "succeeded")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "assessments_processed_total")
	assert.Contains(t, names, "assessments_duration_milliseconds")
	for _, name := range names {
		assert.NotContains(t, name, ".", "metric %q is not a legacy prometheus name", name)
	}
}

func TestObservability_StartSpan(t *testing.T) {
	obs := New(Options{ServiceName: "salesfit-test", Registerer: promclient.NewRegistry()})
	defer obs.Shutdown()

	ctx, span := obs.StartSpan(context.Background(), "compose-prompt", attribute.String("requestId", "r-1"))
	require.NotNil(t, ctx)
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var obs Observability
	assert.NotPanics(t, func() {
		obs.RecordAssessmentProcessed(context.Background(), "failed")
		obs.RecordAssessmentDuration(context.Background(), time.Second, "failed")
		_, span := obs.StartSpan(context.Background(), "noop")
		span.End()
		obs.Shutdown()
	})
}
