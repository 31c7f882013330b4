package app

import (
	"context"
	"fmt"

	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/config"
	"github.com/Admintools08/BP/internal/db"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/service"
	"github.com/Admintools08/BP/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	Clock              clock.Clock
	AuthService        *service.AuthService
	UserService        *service.UserService
	ProfileService     *service.ProfileService
	GoalService        *service.GoalService
	MilestoneService   *service.MilestoneService
	ProgressService    *service.ProgressService
	ResourceLedger     *service.ResourceLedger
	CertificateService *service.CertificateService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := Wire(cfg, database, clock.Real(), fileStorage)
	return a, nil
}

// Wire builds the service graph over an open, migrated database.
// A nil store disables certificate uploads.
func Wire(cfg *config.Config, database *sqlx.DB, clk clock.Clock, store storage.Storage) *App {
	repos := repository.New(database)
	tx := repository.NewTransactor(database)

	ledger := service.NewResourceLedger(repos.Resources, clk)
	goalService := service.NewGoalService(repos.Goals, clk)
	links := service.NewCertificateLinks(repos.Files, store)
	milestoneService := service.NewMilestoneService(repos.Milestones, repos.Goals, tx, goalService, ledger, links, clk)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		Clock:              clk,
		AuthService:        service.NewAuthService(repos.Users, repos.Profiles, tx, clk, cfg.JWTSecret, cfg.JWTExpiry),
		UserService:        service.NewUserService(repos.Users),
		ProfileService:     service.NewProfileService(repos.Profiles, clk),
		GoalService:        goalService,
		MilestoneService:   milestoneService,
		ProgressService:    service.NewProgressService(repos.Milestones, repos.Goals, links),
		ResourceLedger:     ledger,
		CertificateService: service.NewCertificateService(repos.Files, milestoneService, store, clk),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
