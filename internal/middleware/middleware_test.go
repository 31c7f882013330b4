package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Admintools08/BP/internal/ctxkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) VerifyJWT(token string) (string, error) {
	if token == "good" {
		return "user-1", nil
	}
	return "", errors.New("bad token")
}

func TestAuthMiddleware(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.UserID(r.Context())
	}), AuthMiddleware(stubVerifier{}))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", "Bearer good", "user-1"},
		{"lowercase scheme", "bearer good", "user-1"},
		{"invalid token", "Bearer bad", ""},
		{"no header", "", ""},
		{"wrong scheme", "Basic good", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = "unset"
			req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	h(rec, req.WithContext(ctxkeys.WithUserID(req.Context(), "user-1")))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.requests)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(NewRateLimiter(1, time.Minute))(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	rec := httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var id string
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = ctxkeys.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", id)
}
