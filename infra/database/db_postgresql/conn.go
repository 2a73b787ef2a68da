package db_postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"time"

	"roadside/infra/database"

	_ "github.com/lib/pq"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const pingTimeout = 10 * time.Second

func NewConnection(config *database.Config) (*sql.DB, error) {
	db, err := sql.Open(config.Driver, BuildDSN(config))
	if err != nil {
		return nil, errConnection(config.Environment, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errConnection(config.Environment, err)
	}

	if err := runMigrations(db, config.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, errConnection(config.Environment, err)
	}

	return db, nil
}

// BuildDSN returns a postgres URL; the password is escaped so reserved
// characters do not break the URL.
func BuildDSN(config *database.Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.User, config.Password),
		Host:   net.JoinHostPort(config.Host, config.Port),
		Path:   "/" + config.Database,
	}
	if config.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{config.SSLMode}}.Encode()
	}
	return u.String()
}

func errConnection(environment string, err error) error {
	return fmt.Errorf("failed to connect %s postgres database: %w", environment, err)
}

func runMigrations(conn *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
