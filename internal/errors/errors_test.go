package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/observability"
	"supermarket-dashboard/internal/testutil"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{BadRequest("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{MethodNotAllowed("nope"), http.StatusMethodNotAllowed},
		{RateLimit("slow down"), http.StatusTooManyRequests},
		{ServiceUnavailable("down"), http.StatusServiceUnavailable},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := BadRequestWrap(cause, "could not parse")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestWriteError(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	t.Run("app error keeps code and request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
		req = req.WithContext(observability.WithRequestID(req.Context(), "req-1"))
		rec := httptest.NewRecorder()

		WriteError(rec, req, logger, BadRequest("bad filter").WithDetails("month"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code      string `json:"code"`
				Message   string `json:"message"`
				Details   string `json:"details"`
				RequestID string `json:"request_id"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
		assert.Equal(t, "bad filter", body.Error.Message)
		assert.Equal(t, "month", body.Error.Details)
		assert.Equal(t, "req-1", body.Error.RequestID)
	})

	t.Run("wrapped app error is found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		WriteError(rec, req, logger, fmt.Errorf("handler: %w", NotFound("no such thing")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("plain error hides its text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		WriteError(rec, req, logger, fmt.Errorf("secret connection string"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	})
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccessWithHeaders(rec, testutil.NewTestLogger(t), map[string]int{"rows": 3}, map[string]string{"Cache-Control": "no-cache"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"success":true,"data":{"rows":3}}`, rec.Body.String())
}
