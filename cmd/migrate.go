package cmd

import (
	"fmt"
	"log"

	"github.com/killallgit/labeler-api/internal/database"
	"github.com/killallgit/labeler-api/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply schema migrations to the export history database.

The serve command migrates automatically on startup; this command exists
for preparing a database ahead of time or after upgrading.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("db", "", "database path (overrides config)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath == "" {
		return fmt.Errorf("no database path configured")
	}

	db, err := database.Initialize(dbPath, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	log.Printf("migrations applied to %s", dbPath)
	return nil
}
