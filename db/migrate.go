package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the given backend.
// Migration files are embedded so the binary carries its own schema.
func RunMigrations(conn *sql.DB, dbType DBType) error {
	var (
		driver database.Driver
		dir    string
		err    error
	)

	switch dbType {
	case Postgres:
		driver, err = migratepg.WithInstance(conn, &migratepg.Config{})
		dir = "migrations/postgres"
	case SQLite:
		driver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("unsupported db type %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("could not start migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dbType), driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	log.Println("migrations applied")
	return nil
}
