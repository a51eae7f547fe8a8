package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wys-platform/project-service/config"
	"github.com/wys-platform/project-service/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "project-service",
	Short: "WYS project records and project detail assembly",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logging.SetLevel(cfg.App.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, revokeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
