package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.PatternFolds.WithLabelValues("folded").Add(3)
	m.JobRunsTotal.WithLabelValues("pattern_fold", Result(errors.New("x"))).Inc()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.PatternFolds.WithLabelValues("folded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("pattern_fold", "error")))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "socialpulse_pattern_folds_total")
}
