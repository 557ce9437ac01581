package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/motion-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/motion-gateway/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middlewarectx.MetricsMiddleware)
	r.Get("/probe/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/plain", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	teapot := metrics.HTTPRequests.WithLabelValues("/probe/{id}", http.MethodGet, "418")
	plain := metrics.HTTPRequests.WithLabelValues("/plain", http.MethodGet, "200")
	beforeTeapot := testutil.ToFloat64(teapot)
	beforePlain := testutil.ToFloat64(plain)

	for _, path := range []string{"/probe/1", "/probe/2", "/plain"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, beforeTeapot+2, testutil.ToFloat64(teapot))
	assert.Equal(t, beforePlain+1, testutil.ToFloat64(plain))
}
