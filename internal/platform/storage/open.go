// Package storage picks the ledger backend from configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/royalty_settlement_app/internal/platform/config"
	"github.com/SscSPs/royalty_settlement_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/royalty_settlement_app/internal/repositories/memory"
	"github.com/SscSPs/royalty_settlement_app/pkg/database"
)

// Options controls what Open does besides connecting.
type Options struct {
	RunMigrations bool
}

// Open returns repositories backed by Postgres when PGSQL_URL is set, otherwise by a seeded
// in-memory store. The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		store := memory.NewStore()
		memory.SeedDemo(store, cfg.DemoBrandID)
		logger.Info("Using in-memory store", slog.String("demo_brand_id", cfg.DemoBrandID))
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	closeFn := func() { database.ClosePgxPool(pool) }

	if opts.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			closeFn()
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}
	return pgsql.NewRepositoryProvider(pool), closeFn, nil
}
