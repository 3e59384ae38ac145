package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safar/pantry-pickup/internal/config"
	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/logger"
	"github.com/safar/pantry-pickup/migrations"
)

// pantry migrate [up|down]
var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the embedded SQL migrations",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := database.Up
		if len(args) == 1 {
			d, err := database.ParseDirection(args[0])
			if err != nil {
				return err
			}
			direction = d
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.New(cfg.Log)

		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		n, err := database.Migrate(cmd.Context(), db, migrations.FS, direction, log)
		if err != nil {
			return err
		}

		log.Info("migrations complete", "direction", string(direction), "applied", n)
		return nil
	},
}
