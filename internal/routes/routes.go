package routes

import (
	"net/http"

	"github.com/Admintools08/BP/internal/app"
	"github.com/Admintools08/BP/internal/handler"
	"github.com/Admintools08/BP/internal/metrics"
	"github.com/Admintools08/BP/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	profile := handler.NewProfileHandler(app.ProfileService)
	goal := handler.NewGoalHandler(app.GoalService)
	milestone := handler.NewMilestoneHandler(
		app.MilestoneService,
		app.ProgressService,
		app.CertificateService,
		app.Clock,
		app.Cfg.MonthlyTargetHours,
	)
	resource := handler.NewResourceHandler(app.ResourceLedger)
	dashboard := handler.NewDashboardHandler(app.ProgressService, app.Clock, app.Cfg.MonthlyTargetHours)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Get))
	mux.HandleFunc("PUT /api/profile", middleware.RequireAuth(profile.Update))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("POST /api/goals/{id}/status", middleware.RequireAuth(goal.Transition))

	// Milestones
	mux.HandleFunc("GET /api/milestones", middleware.RequireAuth(milestone.List))
	mux.HandleFunc("POST /api/milestones", middleware.RequireAuth(milestone.Create))
	mux.HandleFunc("GET /api/milestones/current-month", middleware.RequireAuth(milestone.CurrentMonth))
	mux.HandleFunc("GET /api/milestones/{id}", middleware.RequireAuth(milestone.Get))
	mux.HandleFunc("PATCH /api/milestones/{id}", middleware.RequireAuth(milestone.Update))
	mux.HandleFunc("DELETE /api/milestones/{id}", middleware.RequireAuth(milestone.Delete))
	mux.HandleFunc("POST /api/milestones/{id}/certificate", middleware.RequireAuth(milestone.UploadCertificate))

	// Ledger and dashboard
	mux.HandleFunc("GET /api/resources", middleware.RequireAuth(resource.List))
	mux.HandleFunc("GET /api/dashboard/stats", middleware.RequireAuth(dashboard.Stats))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
		metrics.Middleware, // Innermost so the matched route pattern is visible
	)

	return handler
}
