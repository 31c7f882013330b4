package main

import (
	"os"

	"github.com/Admintools08/BP/cmd/learnctl/cmd"
	"github.com/Admintools08/BP/internal/config"
	"github.com/Admintools08/BP/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadDatabase()
	logger.Init(cfg.IsDevelopment(), "")

	rootCmd := &cobra.Command{
		Use:          "learnctl",
		Short:        "Operational tools for the learning tracker",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd(cfg))
	rootCmd.AddCommand(cmd.StatsCmd(cfg))
	rootCmd.AddCommand(cmd.ResourcesCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
