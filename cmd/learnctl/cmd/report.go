package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/config"
	"github.com/Admintools08/BP/internal/db"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/service"
	"github.com/Admintools08/BP/internal/validation"
	"github.com/spf13/cobra"
)

func StatsCmd(cfg *config.Config) *cobra.Command {
	var userID, month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := clock.Real().Now()
			if month != "" {
				year, m, err := validation.ParseMonth("month", month)
				if err != nil {
					return err
				}
				now = time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			}

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			repos := repository.New(database)
			progress := service.NewProgressService(repos.Milestones, repos.Goals, nil)

			stats, err := progress.DashboardStats(cmd.Context(), userID, now, cfg.MonthlyTargetHours)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func ResourcesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "Print the shared resource ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			ledger := service.NewResourceLedger(repository.NewResourceRepository(database), clock.Real())

			resources, err := ledger.ListResources(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range resources {
				_, err = fmt.Fprintf(w, "%-40s uses=%-4d hours=%.2f skills=%v\n", r.Name, r.UsageCount, r.TotalHours, r.SkillsTaught)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
