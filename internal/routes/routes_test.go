package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Admintools08/BP/internal/app"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/config"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func setup(t *testing.T) (http.Handler, *clock.Fixed) {
	t.Helper()

	cfg := &config.Config{
		AppEnv:             "development",
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		MonthlyTargetHours: 6,
	}
	clk := clock.NewFixed(time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC))
	a := app.Wire(cfg, testutil.OpenTestDB(t), clk, nil)

	return SetupRoutes(a), clk
}

func register(t *testing.T, h http.Handler, email string) *client {
	t.Helper()

	c := &client{t: t, handler: h}
	rec := c.do(http.MethodPost, "/api/register", map[string]any{
		"email":     email,
		"password":  "correct horse battery",
		"full_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[struct {
		Token string `json:"token"`
	}](t, rec)
	require.NotEmpty(t, resp.Token)
	c.token = resp.Token
	return c
}

func TestLearningFlow(t *testing.T) {
	h, clk := setup(t)
	ada := register(t, h, "ada@example.com")

	rec := ada.do(http.MethodPost, "/api/goals", model.GoalInput{
		Title:            "Learn Rust",
		Description:      "ownership, traits, async",
		TargetCompletion: "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	goal := decode[model.Goal](t, rec)

	clk.Set(time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC))
	rec = ada.do(http.MethodPost, "/api/milestones", map[string]any{
		"goal_id":         goal.ID,
		"what_learned":    "ownership",
		"learning_source": "Rustlings",
		"hours_invested":  3,
		"skill_tags":      []string{"rust"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	clk.Set(time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC))
	rec = ada.do(http.MethodPost, "/api/milestones", map[string]any{
		"goal_id":         goal.ID,
		"what_learned":    "traits",
		"learning_source": "Rustlings",
		"hours_invested":  2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	april := decode[model.Milestone](t, rec)

	clk.Set(time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC))
	rec = ada.do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[model.DashboardStats](t, rec)
	assert.Equal(t, 2.0, stats.CurrentMonthHours)
	assert.Equal(t, 5.0, stats.TotalHours)
	assert.Equal(t, 33, stats.ProgressPercentage)
	assert.Equal(t, 1, stats.ActiveGoals)
	assert.Equal(t, 2, stats.TotalMilestones)

	rec = ada.do(http.MethodGet, "/api/milestones?month=2026-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Milestone](t, rec), 1)

	rec = ada.do(http.MethodGet, "/api/milestones", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Milestone](t, rec), 2)

	rec = ada.do(http.MethodGet, "/api/milestones/current-month", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, decode[model.MonthProgress](t, rec).TotalHours)

	rec = ada.do(http.MethodGet, "/api/milestones/"+april.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[struct {
		ID   string      `json:"id"`
		Goal *model.Goal `json:"goal"`
	}](t, rec)
	assert.Equal(t, april.ID, detail.ID)
	require.NotNil(t, detail.Goal)
	assert.Equal(t, goal.ID, detail.Goal.ID)

	rec = ada.do(http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resources := decode[[]model.Resource](t, rec)
	require.Len(t, resources, 1)
	assert.Equal(t, "Rustlings", resources[0].Name)
	assert.Equal(t, 2, resources[0].UsageCount)
	assert.Equal(t, 5.0, resources[0].TotalHours)

	rec = ada.do(http.MethodPost, "/api/goals/"+goal.ID+"/status", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ada.do(http.MethodDelete, "/api/milestones/"+april.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ada.do(http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test User", decode[model.Profile](t, rec).FullName)
}

func TestErrorStatusMapping(t *testing.T) {
	h, _ := setup(t)
	ada := register(t, h, "ada@example.com")
	bob := register(t, h, "bob@example.com")

	rec := ada.do(http.MethodPost, "/api/goals", model.GoalInput{
		Title:            "Learn Rust",
		Description:      "d",
		TargetCompletion: "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	goal := decode[model.Goal](t, rec)

	rec = ada.do(http.MethodPost, "/api/goals/"+goal.ID+"/status", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)

	anonymous := &client{t: t, handler: h}

	tests := []struct {
		name   string
		c      *client
		method string
		path   string
		body   any
		status int
	}{
		{"negative hours", ada, http.MethodPost, "/api/milestones",
			map[string]any{"what_learned": "x", "learning_source": "Rustlings", "hours_invested": -1}, http.StatusBadRequest},
		{"unknown field", ada, http.MethodPost, "/api/goals", map[string]any{"name": "x"}, http.StatusBadRequest},
		{"bad month", ada, http.MethodGet, "/api/milestones?month=April", nil, http.StatusBadRequest},
		{"missing goal", ada, http.MethodGet, "/api/goals/missing", nil, http.StatusNotFound},
		{"milestone for missing goal", ada, http.MethodPost, "/api/milestones",
			map[string]any{"goal_id": "missing", "what_learned": "x", "learning_source": "Rustlings", "hours_invested": 1}, http.StatusNotFound},
		{"other user's goal", bob, http.MethodGet, "/api/goals/" + goal.ID, nil, http.StatusForbidden},
		{"milestone for other user's goal", bob, http.MethodPost, "/api/milestones",
			map[string]any{"goal_id": goal.ID, "what_learned": "x", "learning_source": "Rustlings", "hours_invested": 1}, http.StatusForbidden},
		{"completed to active", ada, http.MethodPost, "/api/goals/" + goal.ID + "/status", map[string]string{"status": "active"}, http.StatusConflict},
		{"no token", anonymous, http.MethodGet, "/api/dashboard/stats", nil, http.StatusUnauthorized},
		{"bad login", anonymous, http.MethodPost, "/api/login",
			map[string]string{"email": "ada@example.com", "password": "wrong horse battery"}, http.StatusUnauthorized},
		{"storage disabled", ada, http.MethodPost, "/api/milestones/whatever/certificate", nil, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.c.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	rec = ada.do(http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "rejected milestones leave the ledger untouched")
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := setup(t)
	c := &client{t: t, handler: h}

	rec := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimited(t *testing.T) {
	h, _ := setup(t)
	c := &client{t: t, handler: h}

	var last int
	for i := range 6 {
		rec := c.do(http.MethodPost, "/api/login", map[string]string{
			"email":    fmt.Sprintf("user%d@example.com", i),
			"password": "correct horse battery",
		})
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
