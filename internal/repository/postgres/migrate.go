package postgres

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations against connString.
// Already-applied migrations are a no-op.
func RunMigrations(connString string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(connString))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// migrateURL rewrites the connection URL scheme to the one the migrate
// pgx/v5 driver registers under.
func migrateURL(connString string) string {
	if after, ok := strings.CutPrefix(connString, "postgresql://"); ok {
		return "pgx5://" + after
	}
	if after, ok := strings.CutPrefix(connString, "postgres://"); ok {
		return "pgx5://" + after
	}
	return connString
}
