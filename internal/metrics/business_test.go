package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks the Prometheus output for a sample with the given
// name, partial label pattern and value. The exporter injects extra OTel
// scope labels, hence the regex.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestObserve(t *testing.T) {
	provider, err := NewProvider("observe_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "observe_test")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	Observe(ctx, bm, "delivery", "create", start, nil)
	Observe(ctx, bm, "delivery", "create", start, nil)
	Observe(ctx, bm, "delivery", "update", start, errors.New("slot occupied"))

	output := scrape(t, provider)

	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="delivery".*operation="create".*status="success"`, `2`)
	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="delivery".*operation="update".*status="error"`, `1`)
	assert.Contains(t, output, "observe_test_operation_duration_seconds")
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	require.NotNil(t, noOp)

	noOp.RecordOperation(context.Background(), "catalog", "create", StatusSuccess)
	noOp.RecordDuration(context.Background(), "catalog", "create", time.Millisecond, StatusSuccess)
	Observe(context.Background(), noOp, "catalog", "resolve", time.Now(), nil)
}
