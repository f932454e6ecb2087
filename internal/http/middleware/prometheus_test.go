package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountedApp(t *testing.T) (*fiber.App, *PrometheusMiddleware) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m
}

func TestPrometheusCountsRequests(t *testing.T) {
	app, m := newCountedApp(t)

	app.Post("/intake", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/signatures", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "fallo")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/intake", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = app.Test(httptest.NewRequest(http.MethodPost, "/signatures", nil))
	require.NoError(t, err)

	ok := testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/intake", "200"))
	assert.Equal(t, float64(1), ok)

	failed := testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/signatures", "500"))
	assert.Equal(t, float64(1), failed)
}

func TestPrometheusLabelsRoutePattern(t *testing.T) {
	app, m := newCountedApp(t)

	app.Get("/historias/:documento", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/historias/1020304050", nil))
	require.NoError(t, err)

	// The document number must never become a label value.
	count := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/historias/:documento", "200"))
	assert.Equal(t, float64(1), count)
}

func TestPrometheusExcludesScrapeEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			assert.Empty(t, mf.GetMetric(), "scraping must not count itself")
		}
	}
}
