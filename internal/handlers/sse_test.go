package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/services"
	"supermarket-dashboard/internal/testutil"
)

func newSSE(t *testing.T) *SSEHandlers {
	t.Helper()
	return NewSSEHandlers(createTestAnalytics(t), testutil.NewTestLogger(t), testView)
}

func postSignals(t *testing.T, h *SSEHandlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sse/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)
	return rec
}

func TestSSEHandlers_HandleReport(t *testing.T) {
	t.Run("filtered selection", func(t *testing.T) {
		rec := postSignals(t, newSSE(t), `{"categories":["Food"]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `id="warning"`)
		assert.Contains(t, body, `id="kpis"`)
		assert.Contains(t, body, "AED 150.00")
		assert.Contains(t, body, "AED 75.00")
		assert.Contains(t, body, "10.00%")
		assert.Contains(t, body, `id="raw-data"`)
		assert.Contains(t, body, `{"_charts":[{"id":"chart-monthly"`)
		assert.NotContains(t, body, services.NoDataMessage)
	})

	t.Run("empty selection shows warning", func(t *testing.T) {
		rec := postSignals(t, newSSE(t), `{"months":[]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, services.NoDataMessage)
		assert.Contains(t, body, `<section id="kpis" class="kpis"></section>`)
		assert.Contains(t, body, `<div id="raw-data" class="raw-data"></div>`)
		assert.Contains(t, body, `{"_charts":[]}`)
	})

	t.Run("get with datastar query", func(t *testing.T) {
		h := newSSE(t)
		q := url.Values{"datastar": {`{"paymentMethods":["E-wallet"]}`}}
		req := httptest.NewRequest(http.MethodGet, "/sse/report?"+q.Encode(), nil)
		rec := httptest.NewRecorder()

		h.HandleReport(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "AED 40.00")
	})

	t.Run("malformed signals", func(t *testing.T) {
		rec := postSignals(t, newSSE(t), `{"months":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
	})
}

func TestPageHandlers_HandleDashboard(t *testing.T) {
	h := NewPageHandlers(createTestAnalytics(t), testutil.NewTestLogger(t), testView)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"Supermarket Sales &amp; Profit Dashboard",
		"<h2>Filters</h2>",
		"AED 330.00",
		"View Raw Data",
		`value="Household" checked`,
		"/sse/report",
	} {
		assert.Contains(t, body, want)
	}
	assert.Contains(t, body, `<div id="warning" class="warning" hidden></div>`)
}
