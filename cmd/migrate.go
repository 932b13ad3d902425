package cmd

import (
	"context"
	"fmt"
	"log"

	"bjjtracker/internal/config"
	"bjjtracker/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables (SQL) or indexes (MongoDB) and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile(cmd))
		if err != nil {
			return err
		}
		// Open migrates the SQL schema or ensures the Mongo indexes.
		store, err := database.Open(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		defer store.Close()
		log.Printf("Schema ready (%s).", cfg.DBDriver)
		return nil
	},
}
