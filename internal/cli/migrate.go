package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lems-app/lems-server/internal/config"
	"github.com/lems-app/lems-server/internal/database"
	"github.com/lems-app/lems-server/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  lems-server migrate      # Run all pending migrations
  lems-server migrate 1    # Migrate to version 1
  lems-server migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	db, err := database.New(cfg.DatabaseURL, cfg.AuthToken)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := migrate.EnsureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("ensuring migrations table: %w", err)
	}

	current, dirty, err := migrate.CurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("reading current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, resolve manually", current)
	}

	all, err := migrate.Load()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	fmt.Printf("Current version: %d\n", current)

	if len(args) == 0 {
		if err := migrate.Up(ctx, db, all, current); err != nil {
			return err
		}
		newVersion, _, _ := migrate.CurrentVersion(ctx, db)
		if newVersion == current {
			fmt.Println("No migrations to run")
		} else {
			fmt.Printf("Migrated to version %d\n", newVersion)
		}
		return nil
	}

	target, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version number: %s", args[0])
	}

	switch {
	case target > current:
		for _, m := range all {
			if m.Version <= current || m.Version > target {
				continue
			}
			if err := migrate.Run(ctx, db, m, true); err != nil {
				return err
			}
		}
	case target < current:
		for v := current; v > target; v-- {
			if err := migrate.Down(ctx, db, all, v); err != nil {
				return err
			}
		}
	default:
		fmt.Println("Already at target version")
		return nil
	}

	fmt.Printf("Migrated to version %d\n", target)
	return nil
}
