package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_ExposesCounters(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "decision-service"})
	require.NoError(t, err)
	defer provider.Shutdown(context.Background()) //nolint:errcheck

	counter, err := provider.Meter("test").Int64Counter("decision_probe_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "decision_probe_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestInitTracer_WithoutEndpoint(t *testing.T) {
	provider, err := InitTracer(context.Background(), TracingConfig{ServiceName: "decision-service"})
	require.NoError(t, err)
	defer provider.Shutdown(context.Background()) //nolint:errcheck

	_, span := provider.Tracer("test").Start(context.Background(), "probe")
	span.End()
	assert.True(t, span.SpanContext().IsValid())
}
