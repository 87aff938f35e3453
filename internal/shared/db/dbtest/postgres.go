// Package dbtest starts a disposable PostgreSQL container for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niazroky/Commerce/internal/shared/db"
	"github.com/niazroky/Commerce/internal/shared/db/migrations"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// Postgres is a migrated database running in a container.
type Postgres struct {
	Pool *pgxpool.Pool
	DSN  string

	docker   *dockertest.Pool
	resource *dockertest.Resource
}

// StartPostgres runs postgres in docker and applies every migration.
// It returns an error when docker is not reachable, callers skip their tests then.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not construct docker pool: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}
	pool.MaxWait = 90 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=commerce",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=commerce_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start postgres: %w", err)
	}
	_ = resource.Expire(300)

	pg := &Postgres{
		DSN:      fmt.Sprintf("postgres://commerce:secret@%s/commerce_test?sslmode=disable", resource.GetHostPort("5432/tcp")),
		docker:   pool,
		resource: resource,
	}

	if err := pool.Retry(func() error {
		p, err := db.NewPostgresDBPool(ctx, pg.DSN)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pg.Pool = p
		return nil
	}); err != nil {
		pg.Close()
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := migrations.RunMigrations(pg.DSN); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

// Reset empties every table between tests.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `TRUNCATE watchlist_entries, comments, bids, listings RESTART IDENTITY CASCADE`)
	return err
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
	if p.resource != nil {
		_ = p.docker.Purge(p.resource)
	}
}
