package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger() // package logger instance

//go:embed sql/*.sql
var sqlFiles embed.FS

// RunMigrations applies every pending up migration against dbURL.
func RunMigrations(dbURL string) error {
	log.Info("RunMigrations: applying schema migrations")

	src, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return fmt.Errorf("migrations: open embedded source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("RunMigrations: failed to close migrate instance",
				zap.NamedError("sourceErr", srcErr),
				zap.NamedError("dbErr", dbErr),
			)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}
	version, dirty, err := m.Version()
	if err == nil {
		log.Info("RunMigrations: schema up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}
