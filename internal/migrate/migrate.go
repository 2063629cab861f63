// Package migrate applies the embedded SQL migrations against a libsql
// database, tracking progress in a schema_migrations table.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lems-app/lems-server/migrations"
)

// Migration represents a single database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// EnsureMigrationsTable creates the schema_migrations table if it doesn't exist.
func EnsureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// CurrentVersion returns the applied migration version and dirty state.
func CurrentVersion(ctx context.Context, db *sql.DB) (int, bool, error) {
	var version, dirty int
	err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty == 1, nil
}

func setVersion(ctx context.Context, db *sql.DB, version int, dirty bool) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version == 0 {
		return nil
	}
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}
	_, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// Load reads all embedded migration files and returns them sorted by version.
func Load() ([]Migration, error) {
	upPattern := regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

	var result []Migration
	err := fs.WalkDir(migrations.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(filepath.Base(path))
		if matches == nil {
			return nil
		}

		version, _ := strconv.Atoi(matches[1])
		name := matches[2]

		upSQL, err := fs.ReadFile(migrations.FS, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		downSQL, err := fs.ReadFile(migrations.FS, fmt.Sprintf("%03d_%s.down.sql", version, name))
		if err != nil {
			downSQL = nil
		}

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

// Run executes a single migration in the given direction, marking the
// version dirty while the statements execute.
func Run(ctx context.Context, db *sql.DB, m Migration, up bool) error {
	sqlContent := m.UpSQL
	targetVersion := m.Version
	if !up {
		sqlContent = m.DownSQL
		targetVersion = m.Version - 1
	}

	if err := setVersion(ctx, db, m.Version, true); err != nil {
		return fmt.Errorf("setting dirty flag: %w", err)
	}

	for _, stmt := range strings.Split(sqlContent, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing migration %d_%s: %w", m.Version, m.Name, err)
		}
	}

	if err := setVersion(ctx, db, targetVersion, false); err != nil {
		return fmt.Errorf("clearing dirty flag: %w", err)
	}
	return nil
}

// Up applies every pending migration above currentVersion.
func Up(ctx context.Context, db *sql.DB, all []Migration, currentVersion int) error {
	for _, m := range all {
		if m.Version <= currentVersion {
			continue
		}
		if err := Run(ctx, db, m, true); err != nil {
			return err
		}
	}
	return nil
}

// Down rolls back the most recently applied migration.
func Down(ctx context.Context, db *sql.DB, all []Migration, currentVersion int) error {
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Version == currentVersion {
			return Run(ctx, db, all[i], false)
		}
	}
	return fmt.Errorf("no applied migration at version %d", currentVersion)
}

// RunAll brings the database to the latest schema version.
func RunAll(ctx context.Context, db *sql.DB) error {
	if err := EnsureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("ensuring migrations table: %w", err)
	}

	current, dirty, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, resolve manually", current)
	}

	all, err := Load()
	if err != nil {
		return err
	}
	return Up(ctx, db, all, current)
}
