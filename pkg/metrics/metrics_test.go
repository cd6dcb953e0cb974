package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAudit(t *testing.T) {
	m := New()

	m.ObserveAudit("completed", 2*time.Second, 4)
	m.ObserveAudit("completed", time.Second, 2)
	m.ObserveAudit("failed", time.Second, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.auditsTotal.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditsTotal.WithLabelValues("failed")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveAudit("completed", time.Second, 3)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gitaudit_audits_total{status="completed"} 1`)
	assert.Contains(t, w.Body.String(), "gitaudit_audit_duration_seconds_count 1")
	assert.Contains(t, w.Body.String(), "gitaudit_audit_authors_sum 3")
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveAudit("failed", time.Second, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.auditsTotal.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.auditsTotal.WithLabelValues("failed")))
}
